package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadilmartias/resume-api/internal/config"
	"github.com/fadilmartias/resume-api/internal/domain/fiber/handler"
	"github.com/fadilmartias/resume-api/internal/middleware"
	"github.com/fadilmartias/resume-api/internal/model"
	"github.com/fadilmartias/resume-api/internal/repository"
	"github.com/fadilmartias/resume-api/internal/service"
	"github.com/fadilmartias/resume-api/internal/storage"
	"github.com/fadilmartias/resume-api/internal/usecase"
	"github.com/fadilmartias/resume-api/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	if err := config.ValidateAll(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	slogger := newLogger(appConfig)
	slog.SetDefault(slogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: appConfig.MaxUploadBytes,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    code,
				Message: message,
			}, err)
		},
	})
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.PropagateRequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	storageConfig := config.LoadStorageConfig()
	mongoConfig := config.LoadMongoConfig()

	db := ConnectDB()
	mongoClient := ConnectMongo(ctx)

	s3Client, err := storage.NewS3Client(ctx, storageConfig)
	if err != nil {
		log.Fatalf("Could not create object storage client: %v", err)
	}
	chat, err := newChatCompleter(ctx, appConfig, slogger)
	if err != nil {
		log.Fatalf("Could not create chat client: %v", err)
	}

	uc := usecase.NewResumeUsecase(usecase.Dependencies{
		Storage:       storage.NewS3Storage(s3Client, storageConfig.Bucket, slogger),
		Metadata:      repository.NewResumeMetadataRepository(db),
		Candidates:    repository.NewCandidateRepository(mongoClient.Database(mongoConfig.Database).Collection(mongoConfig.Collection), slogger),
		Extractor:     util.NewTextExtractor(config.LoadExtractorConfig().PDFEngine, slogger),
		Parser:        service.NewResumeParserService(chat, slogger),
		Answerer:      service.NewCandidateQAService(chat, slogger),
		Exporter:      service.NewCandidateExportService(slogger),
		StoragePrefix: storageConfig.PathPrefix,
		CallTimeout:   appConfig.ExternalCallTimeout,
		Logger:        slogger,
	})
	handler.NewResumeHandler(uc).RegisterRoutes(app)

	go func() {
		<-ctx.Done()
		slogger.Info("server.shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slogger.Error("server.shutdown_failed", "error", err)
		}
	}()

	slogger.Info("server.start", "port", appConfig.Port, "env", appConfig.Env)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}

	disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mongoClient.Disconnect(disconnectCtx); err != nil {
		slogger.Error("mongo.disconnect_failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newLogger(appConfig *config.AppConfig) *slog.Logger {
	if appConfig.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newChatCompleter(ctx context.Context, appConfig *config.AppConfig, logger *slog.Logger) (service.ChatCompleter, error) {
	llmConfig := config.LoadLLMConfig()
	if llmConfig.Provider == config.ProviderGemini {
		gemini, err := service.NewGeminiService(ctx, config.LoadGeminiConfig(), logger)
		if err != nil {
			return nil, err
		}
		return gemini, nil
	}
	return service.NewOpenAIChatService(llmConfig, appConfig.ExternalCallTimeout, logger), nil
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.ResumeMetadata{}); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}

func ConnectMongo(ctx context.Context) *mongo.Client {
	mongoConfig := config.LoadMongoConfig()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(mongoConfig.URI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		log.Fatalf("Could not connect to mongo: %v", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		log.Fatalf("Could not ping mongo: %v", err)
	}
	return client
}
