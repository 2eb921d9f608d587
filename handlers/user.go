package handlers

import (
	"sponsor-dashboard-system/middleware"
	"sponsor-dashboard-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService, jwtSecret []byte) {
	secured := app.Group("/api/user", middleware.UserContextMiddleware(jwtSecret))

	secured.Get("/stats", userService.GetUserStats)
}
