package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	api "taskpro-backend/cmd/api"
	authdomain "taskpro-backend/internal/auth/domain"
	authRepo "taskpro-backend/internal/auth/repository"
	"taskpro-backend/internal/auth/token"
	authUsecase "taskpro-backend/internal/auth/usecase"
	helpDelivery "taskpro-backend/internal/help/delivery"
	helpUsecase "taskpro-backend/internal/help/usecase"
	kanbanDelivery "taskpro-backend/internal/kanban/delivery"
	kanbandomain "taskpro-backend/internal/kanban/domain"
	kanbanRepo "taskpro-backend/internal/kanban/repository"
	kanbanUsecase "taskpro-backend/internal/kanban/usecase"
	"taskpro-backend/internal/reminder"
	"taskpro-backend/pkg/config"
	"taskpro-backend/pkg/database"
	"taskpro-backend/pkg/fcm"
	"taskpro-backend/pkg/mailer"
	"taskpro-backend/pkg/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	models := append([]any{&authdomain.User{}, &authdomain.DeviceToken{}}, kanbandomain.Models()...)
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	deviceRepo := authRepo.NewDeviceTokenRepository(db)
	boardRepo := kanbanRepo.NewBoardRepository(db)
	columnRepo := kanbanRepo.NewColumnRepository(db)
	cardRepo := kanbanRepo.NewCardRepository(db)

	// External services
	mail := mailer.NewBrevoSender(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoBaseURL)
	if cfg.BrevoAPIKey == "" {
		log.Printf("[WARN] BREVO_API_KEY not set, password reset and help emails will fail")
	}

	var uploader storage.Uploader = storage.Disabled{}
	if cfg.S3Bucket != "" {
		s3Uploader, err := storage.NewS3Uploader(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Printf("[WARN] Failed to initialize S3 uploader (uploads disabled): %v", err)
		} else {
			uploader = s3Uploader
		}
	} else {
		log.Printf("[WARN] S3_BUCKET not set, avatar and background uploads disabled")
	}

	// Initialize use cases (dependency injection)
	authUc := authUsecase.NewAuthUsecase(userRepo, deviceRepo, authUsecase.Options{
		Tokens:             token.NewManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry),
		Mailer:             mail,
		Uploader:           uploader,
		ClientBaseURL:      cfg.ClientBaseURL(),
		ResetTokenLifetime: cfg.ResetTokenLifetime,
	})
	ownership := kanbanUsecase.NewOwnership(boardRepo, columnRepo, cardRepo)
	boardUc := kanbanUsecase.NewBoardUsecase(boardRepo, ownership, uploader, cfg.BoardDeleteCascade)
	columnUc := kanbanUsecase.NewColumnUsecase(columnRepo, ownership)
	cardUc := kanbanUsecase.NewCardUsecase(cardRepo, ownership, nil)
	helpUc := helpUsecase.NewHelpUsecase(mail, mail.SupportAddress())

	// Deadline reminders over FCM
	var pusher reminder.Pusher
	if cfg.FirebaseCredentials != "" {
		fcmClient, err := fcm.NewClient(ctx, cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		} else {
			pusher = fcmClient
		}
	} else {
		log.Printf("[DEBUG] No Firebase credentials configured, FCM disabled")
	}
	scheduler := reminder.NewScheduler(cardRepo, deviceRepo, pusher, cfg.ReminderInterval, cfg.ClientBaseURL())
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(
		authUc,
		kanbanDelivery.NewKanbanHandler(boardUc, columnUc, cardUc, cfg.MaxUploadSize),
		helpDelivery.NewHelpHandler(helpUc),
		cfg,
	)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
	log.Println("Server stopped")
}
