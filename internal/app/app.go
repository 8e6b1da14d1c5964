package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"stride/internal/config"
	"stride/internal/db"
	"stride/internal/repository"
	"stride/internal/service"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	AuthService        *service.AuthService
	UserService        *service.UserService
	EmailService       *service.EmailService
	GoalService        *service.GoalService
	SettingsService    *service.SettingsService
	CelebrationService *service.CelebrationService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	stepRepository := repository.NewStepRepository(database)
	settingsRepository := repository.NewSettingsRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		tokenRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenEmailVerifyExpiry,
		cfg.TokenPasswordResetExpiry,
	)
	userService := service.NewUserService(userRepository)
	celebrationService := service.NewCelebrationService(service.DefaultCelebrationDuration)
	goalService := service.NewGoalService(goalRepository, stepRepository, celebrationService)
	settingsService := service.NewSettingsService(settingsRepository)

	return &App{
		Cfg:                cfg,
		DB:                 database,
		AuthService:        authService,
		UserService:        userService,
		EmailService:       emailService,
		GoalService:        goalService,
		SettingsService:    settingsService,
		CelebrationService: celebrationService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
