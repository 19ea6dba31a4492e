package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salon-booking/config"
	deliveryHttp "salon-booking/internal/delivery/http"
	"salon-booking/internal/delivery/http/handler"
	"salon-booking/internal/delivery/http/middleware"
	"salon-booking/internal/infrastructure/cache"
	"salon-booking/internal/infrastructure/database"
	"salon-booking/internal/infrastructure/logger"
	"salon-booking/internal/notifier"
	"salon-booking/internal/repository"
	"salon-booking/internal/service"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Reminders   *service.ReminderService
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	// Setup logger
	log := logger.New(cfg.Log)
	app.Log = log

	// Initialize database
	db, err := database.NewConnection(cfg.DB, cfg.App.Env, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Infof("Database connected successfully (driver=%s)", cfg.DB.Driver)

	if cfg.DB.AutoMigrate {
		if err := prepareSchema(cfg, db, log); err != nil {
			app.Close()
			return nil, err
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	if err := app.initialize(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// prepareSchema brings the schema up to date. SQLite databases are migrated
// from the entities, Postgres through the versioned migrations.
func prepareSchema(cfg *config.Config, db *gorm.DB, log *logrus.Logger) error {
	if cfg.DB.Driver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		if err := database.SeedTreatments(db); err != nil {
			return fmt.Errorf("failed to seed treatments: %w", err)
		}
		log.Info("SQLite schema migrated")
		return nil
	}

	if err := database.MigrateUp(cfg.DB, log); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (app *App) initialize() error {
	cfg := app.Config
	log := app.Log
	db := app.DB

	// Initialize validator
	customValidator := validator.NewValidator(validator.WithPhoneRegion(cfg.App.PhoneRegion))

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	treatmentRepo := repository.NewTreatmentRepository()
	notificationLogRepo := repository.NewNotificationLogRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize notifier and message templates
	messageNotifier := notifier.NewFromConfig(cfg.Twilio, log)
	templates, err := service.NewMessageTemplates(cfg.Notify.Templates)
	if err != nil {
		return fmt.Errorf("invalid message templates: %w", err)
	}

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	slotChecker := service.NewSlotChecker(appointmentRepo)
	appointmentStore := service.NewAppointmentStore(log, appointmentRepo, slotChecker, auditService)
	dispatcher := service.NewNotificationDispatcher(db, log, messageNotifier, notificationLogRepo, templates, cfg.App.SalonName, cfg.Notify.Timeout)
	app.Reminders = service.NewReminderService(db, log, appointmentRepo, notificationLogRepo, dispatcher, cfg.Reminder.Schedule, cfg.Reminder.LeadDays)

	// Initialize usecases
	bookingUsecase := usecase.NewBookingUsecase(db, log, customerRepo, treatmentRepo, notificationLogRepo, appointmentStore, dispatcher, auditService)
	treatmentUsecase := usecase.NewTreatmentUsecase(db, log, treatmentRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	treatmentHandler := handler.NewTreatmentHandler(treatmentUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	var rateLimitMiddleware *middleware.RateLimitMiddleware
	if cfg.RateLimit.Enabled {
		rateLimitMiddleware = middleware.NewRateLimitMiddleware(app.newLimiter(), cfg.RateLimit.Window, cfg.RateLimit.TrustProxy, log)
	}

	// Initialize router
	router := deliveryHttp.NewRouter(bookingHandler, treatmentHandler, auditLogHandler, corsMiddleware, loggingMiddleware, rateLimitMiddleware)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// newLimiter shares counters through Redis when it is available so that
// several instances enforce one budget.
func (app *App) newLimiter() middleware.Limiter {
	cfg := app.Config.RateLimit
	if app.RedisClient != nil {
		return middleware.NewRedisLimiter(app.RedisClient, cfg.Requests, cfg.Window, "salon:ratelimit")
	}
	return middleware.NewMemoryLimiter(cfg.Requests, cfg.Window)
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	if app.Config.Reminder.Enabled {
		if err := app.Reminders.Start(); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case <-quit:
	case serveErr = <-errCh:
		app.Log.Errorf("Failed to start server: %v", serveErr)
	}

	app.shutdown()
	return serveErr
}

func (app *App) shutdown() {
	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	if app.Config.Reminder.Enabled {
		app.Reminders.Stop()
	}

	app.Close()
	app.Log.Info("Server shutdown complete")
}

// RunReminders sends the reminders that are due now and exits.
func (app *App) RunReminders(ctx context.Context) (int, error) {
	return app.Reminders.SendDueReminders(ctx)
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
