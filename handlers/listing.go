// handlers/listing.go — route wiring
package handlers

import (
	"sponsor-dashboard-system/middleware"
	"sponsor-dashboard-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupListingRoutes(app *fiber.App, listingService *services.ListingService) {
	// All listing routes require an authenticated user context
	secured := app.Group("/api", middleware.UserContextMiddleware(listingService.Cfg.JWTSecret))

	secured.Get("/listings", listingService.GetSponsorListings)
	secured.Post("/listings/draft", listingService.CreateDraft)
	secured.Post("/listings/update/:id", listingService.UpdateListing)
	secured.Post("/listings/delete/:id", listingService.DeleteDraft)
	secured.Post("/sponsors/logo", listingService.UploadSponsorLogo)
}
