package main

import (
	"keyshop-backend/config"
	"keyshop-backend/internal/api"
	"keyshop-backend/internal/database"
	"keyshop-backend/internal/models"
	"keyshop-backend/pkg/logger"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// @title keyshop-backend API
// @version 1.0
// @description Digital license key storefront backend.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter()
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	// Migrate the schema
	err = database.DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.BalanceTransaction{},
		&models.PaymentConfig{},
		&models.TopUpOrder{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	initAdminUser(cfg)

	if err := router.Run(":8080"); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

// initAdminUser seeds the configured admin account if it does not exist yet.
// Skipped when ADMIN_PASSWORD is unset; the first registered user still gets
// the admin role in that case.
func initAdminUser(cfg *config.Config) {
	if cfg.AdminPassword == "" {
		return
	}

	var adminUser models.User
	result := database.DB.Where("email = ?", cfg.AdminEmail).First(&adminUser)
	if result.Error == nil {
		log.Println("Admin user already exists.")
		return
	}
	if result.Error.Error() != "record not found" {
		log.Fatalf("failed to check for admin user: %v", result.Error)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	adminUser = models.User{
		Username: "admin",
		Email:    cfg.AdminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}
	if err := database.DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}
	log.Println("Admin user created successfully!")
}
