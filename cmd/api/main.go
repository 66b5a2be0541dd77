package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Gfx-Boy/sovereign-ledger/docs"
	"github.com/Gfx-Boy/sovereign-ledger/internal/config"
	"github.com/Gfx-Boy/sovereign-ledger/internal/database"
	"github.com/Gfx-Boy/sovereign-ledger/internal/database/migration"
	handlers "github.com/Gfx-Boy/sovereign-ledger/internal/http/handler"
	"github.com/Gfx-Boy/sovereign-ledger/internal/http/middleware"
	"github.com/Gfx-Boy/sovereign-ledger/internal/otel"
	"github.com/Gfx-Boy/sovereign-ledger/internal/repository/postgres"
	"github.com/Gfx-Boy/sovereign-ledger/internal/service"
	"github.com/Gfx-Boy/sovereign-ledger/internal/stamp"
	"github.com/Gfx-Boy/sovereign-ledger/internal/storage"
)

// @title Sovereign Ledger API
// @version 1.0
// @description Document recording service: stamps uploaded PDFs and files them under sequential record numbers.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Tracing is optional; a failed exporter degrades to a noop provider.
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Initialize repositories and services
	recRepo := postgres.NewRecordPostgres(db)
	folderRepo := postgres.NewFolderPostgres(db)
	stamper := stamp.New(cfg.Stamp.BatchSize)
	recSvc := service.NewRecordService(objStore, recRepo, stamper)
	folderSvc := service.NewFolderService(folderRepo, recRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    50 * 1024 * 1024,
	})

	// Register global middleware
	// otelfiber starts a server span per request against the provider from otel.Init
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, recSvc, folderSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
