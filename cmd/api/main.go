package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/alumnet-go-api/internal/config"
	"github.com/noah-isme/alumnet-go-api/internal/database"
	"github.com/noah-isme/alumnet-go-api/internal/handler"
	"github.com/noah-isme/alumnet-go-api/internal/middleware"
	"github.com/noah-isme/alumnet-go-api/internal/models"
	"github.com/noah-isme/alumnet-go-api/internal/repository"
	"github.com/noah-isme/alumnet-go-api/internal/router"
	"github.com/noah-isme/alumnet-go-api/internal/service"
	cloud "github.com/noah-isme/alumnet-go-api/pkg/cloudinary"
	"github.com/noah-isme/alumnet-go-api/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Enrollment{},
		&models.UserActivity{},
		&models.Connection{},
		&models.Community{},
		&models.CommunityMember{},
		&models.CommunityPost{},
		&models.PostLike{},
		&models.PostComment{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	mailService := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	postRepo := repository.NewPostRepository(db)

	activityService := service.NewActivityService(activityRepo, redisClient, logger)
	authService := service.NewAuthService(userRepo, enrollmentRepo, activityService, redisClient, mailService, validate, service.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		OTPTTL:    cfg.OTPTTL,
		ResetTTL:  cfg.ResetTokenTTL,
	}, logger)
	directoryService := service.NewDirectoryService(userRepo, logger)
	profileService := service.NewProfileService(userRepo, uploader, activityService, validate, logger)
	connectionService := service.NewConnectionService(connectionRepo, userRepo, logger)
	communityService := service.NewCommunityService(communityRepo, postRepo, validate, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, activityService, validate, logger)
	adminService := service.NewAdminService(userRepo, connectionRepo, postRepo, redisClient, cfg.DashboardCacheTTL, logger)
	broadcastService := service.NewBroadcastService(userRepo, mailService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:           handler.NewAuthHandler(authService, logger),
		AlumniHandler:         handler.NewDirectoryHandler(directoryService, models.RoleAlumni, logger),
		StudentHandler:        handler.NewDirectoryHandler(directoryService, models.RoleStudent, logger),
		ProfileHandler:        handler.NewProfileHandler(profileService, logger),
		ConnectionHandler:     handler.NewConnectionHandler(connectionService, logger),
		CommunityHandler:      handler.NewCommunityHandler(communityService, logger),
		AdminUserHandler:      handler.NewAdminUserHandler(adminService, logger),
		AdminActivityHandler:  handler.NewAdminActivityHandler(activityService, logger),
		AdminBroadcastHandler: handler.NewAdminBroadcastHandler(broadcastService, logger),
		EnrollmentHandler:     handler.NewEnrollmentHandler(enrollmentService, logger),
		JWTMiddleware:         middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
