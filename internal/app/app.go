package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"mwork_admission/internal/admission"
	"mwork_admission/internal/auth"
	"mwork_admission/internal/config"
	"mwork_admission/internal/email"
	"mwork_admission/internal/events"
	"mwork_admission/internal/handlers"
	"mwork_admission/internal/logger"
	"mwork_admission/internal/repositories"
	"mwork_admission/internal/routes"
	"mwork_admission/internal/services"
	"mwork_admission/internal/validator"
	"mwork_admission/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// App - собранное приложение: роутер и фоновые компоненты.
type App struct {
	Router      *gin.Engine
	Coordinator *admission.Coordinator
	Dispatcher  *events.Dispatcher
	Worker      *workers.CastingWorker

	kafka *events.KafkaSink
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := OpenDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := repositories.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate schema", "error", err)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	application := Build(cfg, gormDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("🚀 Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	application.Stop()
	logger.Info("Server stopped")
}

// OpenDatabase подключается к Postgres. Нарушения уникальности приходят как gorm.ErrDuplicatedKey.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.Server.Env == "development" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Build собирает зависимости поверх готового подключения к БД.
func Build(cfg *config.Config, gormDB *gorm.DB) *App {
	// --- Репозитории ---
	userRepo := repositories.NewUserRepository()
	castingRepo := repositories.NewCastingRepository()
	assignmentRepo := repositories.NewAssignmentRepository()
	notificationRepo := repositories.NewNotificationRepository()
	directory := repositories.NewDirectory(gormDB, userRepo, castingRepo)

	// --- События ---
	app := &App{}
	sinks := []events.Sink{
		events.NewNotificationSink(gormDB, notificationRepo, castingRepo),
		events.NewEmailSink(gormDB, userRepo, castingRepo, emailProvider(cfg), email.NewTemplateManager()),
	}
	if cfg.KafkaEnabled() {
		app.kafka = events.NewKafkaSink(cfg.Notifications.Kafka.Brokers, cfg.Notifications.Kafka.Topic)
		sinks = append(sinks, app.kafka)
		logger.Info("Kafka sink enabled", "topic", cfg.Notifications.Kafka.Topic)
	}
	app.Dispatcher = events.NewDispatcher(cfg.Admission.DispatchBuffer, cfg.Admission.DispatchWorkers, sinks...)

	// --- Допуск ---
	app.Coordinator = admission.NewCoordinator(gormDB, castingRepo, assignmentRepo, directory, directory,
		admission.WithLockTimeout(cfg.Admission.LockTimeout),
		admission.WithNotifier(app.Dispatcher),
	)
	ledger := admission.NewLedger(gormDB, castingRepo, assignmentRepo)

	// --- Сервисы и хэндлеры ---
	svc := services.NewServiceContainer(gormDB, app.Coordinator, ledger, directory, castingRepo, notificationRepo)

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		CastingHandler:      handlers.NewCastingHandler(base, svc.CastingService),
		AssignmentHandler:   handlers.NewAssignmentHandler(base, svc.AdmissionService),
		NotificationHandler: handlers.NewNotificationHandler(base, svc.NotificationService),
	}

	app.Router = routes.NewRouter(appHandlers, auth.NewVerifier(cfg.JWT.Secret))
	app.Worker = workers.NewCastingWorker(gormDB, castingRepo, cfg.Admission.WorkerInterval)
	return app
}

// Start запускает доставку событий и воркер кастингов до отмены ctx.
func (a *App) Start(ctx context.Context) {
	a.Dispatcher.Start(context.WithoutCancel(ctx))
	a.Worker.Start(ctx)
}

// Stop дожидается воркера и досылает события из очереди. ctx из Start уже должен быть отменен.
func (a *App) Stop() {
	a.Worker.Wait()
	a.Dispatcher.Stop()
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			logger.Error("Failed to close kafka writer", "error", err)
		}
	}
}

func emailProvider(cfg *config.Config) email.Provider {
	if !cfg.EmailEnabled() {
		logger.Warn("SMTP is not configured, emails are only logged")
		return &LogEmailProvider{}
	}
	smtp := cfg.Notifications.Email
	return email.NewGomailProvider(email.SMTPConfig{
		Host:      smtp.SMTPHost,
		Port:      smtp.SMTPPort,
		Username:  smtp.SMTPUsername,
		Password:  smtp.SMTPPassword,
		FromEmail: smtp.FromEmail,
		FromName:  smtp.FromName,
	})
}
