package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"sponsor-dashboard-system/handlers"
	"sponsor-dashboard-system/models"
	"sponsor-dashboard-system/services"
	"sponsor-dashboard-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New()

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	webhookURL := os.Getenv("ZAPIER_BOUNTY_WEBHOOK")
	if webhookURL == "" {
		log.Fatal("ZAPIER_BOUNTY_WEBHOOK environment variable not set")
	}

	senderEmail := os.Getenv("RESEND_EMAIL")
	if senderEmail == "" {
		log.Fatal("RESEND_EMAIL environment variable not set")
	}

	senderName := os.Getenv("RESEND_SENDER_NAME")
	if senderName == "" {
		senderName = "Sponsor Dashboard"
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	cfg := services.Config{
		JWTSecret:        []byte(jwtSecret),
		SenderName:       senderName,
		SenderEmail:      senderEmail,
		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		WebhookURL:       webhookURL,
		FrontendBaseURL:  frontendURL,
		AirtableToken:    os.Getenv("AIRTABLE_API_TOKEN"),
		AirtableUnsubURL: os.Getenv("AIRTABLE_UNSUB_URL"),
	}

	if err := utils.InitR2(utils.R2Config{
		AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		AccessKeySecret: os.Getenv("R2_ACCESS_KEY_SECRET"),
		Bucket:          os.Getenv("R2_BUCKET_NAME"),
		CDNBaseURL:      os.Getenv("CDN_BASE_URL"),
	}); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Sponsor{},
		&models.User{},
		&models.Listing{},
		&models.Submission{},
		&models.SubscribeListing{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	mailer := services.NewResendMailer(cfg)
	unsubs := services.NewAirtableClient(cfg)

	listingService := services.NewListingService(db, cfg, mailer, unsubs)
	userService := services.NewUserService(db)

	listingService.StartDeadlineScheduler()

	handlers.SetupListingRoutes(app, listingService)
	handlers.SetupUserRoutes(app, userService, cfg.JWTSecret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", port)
	log.Println("Deadline review scheduler running (every 1m)")
	log.Printf("CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
