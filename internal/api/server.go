package api

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/yigaglobal/fellowship_service/config"
	"github.com/yigaglobal/fellowship_service/infra/queue"
	"github.com/yigaglobal/fellowship_service/internal/api/rest/handlers"
	"github.com/yigaglobal/fellowship_service/internal/api/rest/middleware"
	"github.com/yigaglobal/fellowship_service/internal/domain"
	"github.com/yigaglobal/fellowship_service/internal/helper"
	"github.com/yigaglobal/fellowship_service/internal/repository"
	"github.com/yigaglobal/fellowship_service/internal/services"
	"github.com/yigaglobal/fellowship_service/pkg/cloudinary"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.BaseURL,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + BOOTSTRAP (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260811

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.Account{},
		&domain.Application{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	storage := cloudinary.NewCloudinaryStorage(cld)

	if cfg.AccessSecret == "" {
		log.Fatal("ACCESS_SECRET must be set")
	}
	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	accountRepo := repository.NewAccountRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	// ---------- Services ----------
	accountSvc := services.NewAccountService(accountRepo, authHelper, kafkaProducer)
	applicationSvc := services.NewApplicationService(applicationRepo, storage, kafkaProducer)

	if err := accountSvc.EnsureBootstrap(
		context.Background(),
		cfg.BootstrapUsername,
		cfg.BootstrapPassword,
		cfg.BootstrapName,
	); err != nil {
		log.Fatalf("bootstrap superadmin error: %v", err)
	}

	// ---------- Handlers ----------
	authMW := middleware.AuthMiddleware(authHelper, accountSvc)
	superadminMW := middleware.SuperadminOnly()

	handlers.NewAuthHandler(accountSvc, authHelper).SetupRoutes(app, authMW)
	handlers.NewApplicationHandler(applicationSvc).SetupRoutes(app, authMW)
	handlers.NewAdminHandler(accountSvc).SetupRoutes(app, authMW, superadminMW)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
