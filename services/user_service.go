package services

import (
	"errors"
	"log"

	"sponsor-dashboard-system/middleware"
	"sponsor-dashboard-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// GetUserStats returns the caller's participation and win counts. A win only
// counts once the parent listing's winners are publicly announced.
func (s *UserService) GetUserStats(c *fiber.Ctx) error {
	email := middleware.UserEmail(c)
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token"})
	}

	var user models.User
	err := s.DB.Preload("Submissions.Listing").First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[USER] stats: no user for email %s", email)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		log.Printf("[USER] stats query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error occurred while processing the request.",
		})
	}

	participations := len(user.Submissions)
	wins := 0
	for _, sub := range user.Submissions {
		if sub.IsWinner && sub.Listing.IsWinnersAnnounced {
			wins++
		}
	}

	return c.JSON(fiber.Map{
		"participations": participations,
		"wins":           wins,
	})
}
