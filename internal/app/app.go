package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sueta_backend/internal/auth"
	"sueta_backend/internal/config"
	"sueta_backend/internal/database"
	"sueta_backend/internal/handlers"
	"sueta_backend/internal/logger"
	"sueta_backend/internal/middleware"
	"sueta_backend/internal/models"
	platformredis "sueta_backend/internal/platform/redis"
	"sueta_backend/internal/repositories"
	"sueta_backend/internal/routes"
	"sueta_backend/internal/services"
	"sueta_backend/internal/storage"
	"sueta_backend/internal/ticketqr"
	"sueta_backend/internal/validator"
	"sueta_backend/pkg/apperrors"
	"sueta_backend/web"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Deps - внешние ресурсы приложения. Run открывает их сам, тесты подставляют свои.
type Deps struct {
	DB       *gorm.DB
	Storage  storage.Storage
	Sessions repositories.SessionRepository
}

func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.IsDevelopment())
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Security.SecretKey == config.DefaultSecretKey {
		logger.Warn("SECRET_KEY is not set, using the built-in default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database connected")

	if err := seedFirstAdmin(ctx, db, cfg); err != nil {
		return fmt.Errorf("seed first admin: %w", err)
	}

	store, err := storage.NewStorage(storageConfig(cfg))
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	sessions, closeSessions, err := openSessions(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeSessions()

	if removed, err := sessions.DeleteExpired(ctx, time.Now()); err != nil {
		logger.Warn("Failed to remove expired sessions", "error", err)
	} else if removed > 0 {
		logger.Info("Expired sessions removed", "count", removed)
	}

	ginRouter, err := SetupRouter(cfg, Deps{DB: db, Storage: store, Sessions: sessions})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      ginRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", cfg.Address())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server startup error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// SetupRouter собирает сервисы, хэндлеры и gin-движок
func SetupRouter(cfg *config.Config, deps Deps) (*gin.Engine, error) {
	if deps.Sessions == nil {
		deps.Sessions = repositories.NewSessionRepository(deps.DB)
	}

	// cookie живет столько же, сколько подписанный токен
	tokens := auth.NewTokenManager(cfg.Security.SecretKey, cfg.Session.TTL)
	serviceContainer := initializeServices(cfg, deps, tokens)
	appHandlers := initializeHandlers(cfg, serviceContainer, deps.DB, tokens.TTL())

	ginRouter, err := initializeGinRouter(cfg, serviceContainer.AuthService)
	if err != nil {
		return nil, err
	}

	staticDir := ""
	if local, ok := deps.Storage.(*storage.LocalStorage); ok {
		staticDir = local.BasePath()
	}
	routes.RegisterRoutes(ginRouter, appHandlers, staticDir)

	return ginRouter, nil
}

func initializeServices(cfg *config.Config, deps Deps, tokens *auth.TokenManager) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(deps.DB)

	generator := ticketqr.NewGenerator(cfg.Server.PublicBaseURL, cfg.Ticket.QRSize)

	return &services.ServiceContainer{
		AuthService: services.NewAuthService(userRepo, deps.Sessions, tokens, validator.New(), cfg.Security.BcryptCost),
		TicketService: services.NewTicketService(userRepo, deps.Storage, generator, services.TicketConfig{
			Price:    cfg.Ticket.Price,
			Currency: cfg.Ticket.Currency,
			Contact:  cfg.Ticket.Contact,
			MinAge:   cfg.Ticket.MinAge,
			MaxAge:   cfg.Ticket.MaxAge,
		}),
		ReportService: services.NewReportService(userRepo, cfg.Ticket.Price),
	}
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer, db *gorm.DB, sessionTTL time.Duration) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler()

	return &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, svc.AuthService, handlers.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			TTL:    sessionTTL,
		}),
		TicketHandler: handlers.NewTicketHandler(baseHandler, svc.TicketService),
		AdminHandler:  handlers.NewAdminHandler(baseHandler, svc.ReportService),
		PagesHandler:  handlers.NewPagesHandler(baseHandler),
		HealthHandler: handlers.NewHealthHandler(db),
	}
}

func initializeGinRouter(cfg *config.Config, authService services.AuthService) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.SessionMiddleware(authService, cfg.Session.CookieName))
	return router, nil
}

func storageConfig(cfg *config.Config) storage.Config {
	return storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	}
}

// openSessions выбирает хранилище сессий: таблица sessions или Redis
func openSessions(ctx context.Context, cfg *config.Config, db *gorm.DB) (repositories.SessionRepository, func(), error) {
	if cfg.Session.Store != "redis" {
		return repositories.NewSessionRepository(db), func() {}, nil
	}

	client, err := platformredis.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Redis connected", "addr", cfg.Redis.Addr)

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}
	return repositories.NewRedisSessionRepository(client.Client), closeFn, nil
}

func seedFirstAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	username := cfg.Admin.Username
	password := cfg.Admin.Password

	if username == "" || password == "" {
		logger.Warn("FIRST_ADMIN_USERNAME or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ?", username).First(&existing).Error
		if err == nil {
			logger.Info("Admin user already exists. Skipping creation.", "username", username)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", err)
		}

		logger.Warn("No admin user found with specified username. Creating first admin...", "username", username)

		hash, err := auth.HashPassword(password, cfg.Security.BcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &models.User{
			FirstName:    "Admin",
			LastName:     "Admin",
			MiddleName:   "-",
			BirthDate:    "",
			Username:     username,
			PasswordHash: hash,
			TicketStatus: models.TicketStatusNotPaid,
			IsAdmin:      true,
			Gender:       models.GenderMale,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user in database: %w", err)
		}

		logger.Info("Successfully created first admin user", "username", username, "user_id", admin.ID)
		return nil
	})
}
