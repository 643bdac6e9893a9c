package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/admisiones-pro/internal/application/auth"
	"github.com/tu-usuario/admisiones-pro/internal/application/ports"
	"github.com/tu-usuario/admisiones-pro/internal/application/usecase"
	"github.com/tu-usuario/admisiones-pro/internal/domain/scope"
	"github.com/tu-usuario/admisiones-pro/internal/infrastructure/events"
	"github.com/tu-usuario/admisiones-pro/internal/infrastructure/mail"
	"github.com/tu-usuario/admisiones-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/admisiones-pro/internal/infrastructure/storage"
	httpRouter "github.com/tu-usuario/admisiones-pro/internal/interfaces/http"
	"github.com/tu-usuario/admisiones-pro/pkg/config"
	"github.com/tu-usuario/admisiones-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	agentRepo := postgres.NewAgentRepository(pool)
	studentRepo := postgres.NewStudentRepository(pool)
	applicationRepo := postgres.NewApplicationRepository(pool)
	universityRepo := postgres.NewUniversityRepository(pool)
	programmeRepo := postgres.NewProgrammeRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := scope.NewResolver(agentRepo)

	// Stream de notificaciones: opcional por configuración.
	var publisher ports.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Kafka")
		}
		defer producer.Close()
		publisher = producer
	}

	// Correo transaccional: opcional, sin host configurado no se envía.
	var mailer ports.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSender(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	// Object storage de documentos: opcional, sin endpoint la subida responde 503.
	var fileStorage ports.FileStorage
	if cfg.Storage.Endpoint != "" {
		client, err := storage.NewClient(ctx, storage.Config{
			Endpoint:      cfg.Storage.Endpoint,
			AccessKey:     cfg.Storage.AccessKey,
			SecretKey:     cfg.Storage.SecretKey,
			Bucket:        cfg.Storage.Bucket,
			UseSSL:        cfg.Storage.UseSSL,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a object storage")
		}
		fileStorage = client
	}

	notificationUC := usecase.NewNotificationUseCase(notificationRepo, publisher, log)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	agentUC := usecase.NewAgentUseCase(agentRepo, userRepo, resolver, txRunner)
	studentUC := usecase.NewStudentUseCase(studentRepo, agentRepo, resolver)
	applicationUC := usecase.NewApplicationUseCase(
		applicationRepo, studentRepo, agentRepo, programmeRepo,
		resolver, notificationUC, mailer, log,
	)
	universityUC := usecase.NewUniversityUseCase(universityRepo)
	programmeUC := usecase.NewProgrammeUseCase(programmeRepo, universityRepo)
	searchUC := usecase.NewSearchUseCase(studentRepo, applicationRepo, resolver)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Admisiones Pro API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		AgentUC:        agentUC,
		StudentUC:      studentUC,
		ApplicationUC:  applicationUC,
		UniversityUC:   universityUC,
		ProgrammeUC:    programmeUC,
		SearchUC:       searchUC,
		NotificationUC: notificationUC,
		Storage:        fileStorage,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
