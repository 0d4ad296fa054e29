package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/personacolor/internal/application"
	appanalysis "github.com/bryanwahyu/personacolor/internal/application/analysis"
	appproducts "github.com/bryanwahyu/personacolor/internal/application/products"
	"github.com/bryanwahyu/personacolor/internal/config"
	aidomain "github.com/bryanwahyu/personacolor/internal/domain/ai"
	aierrdomain "github.com/bryanwahyu/personacolor/internal/domain/aierrors"
	domain "github.com/bryanwahyu/personacolor/internal/domain/analysis"
	productsdomain "github.com/bryanwahyu/personacolor/internal/domain/products"
	"github.com/bryanwahyu/personacolor/internal/infra/ai/gemini"
	"github.com/bryanwahyu/personacolor/internal/infra/ai/openaicompat"
	mysqlp "github.com/bryanwahyu/personacolor/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/personacolor/internal/infra/db/postgres"
	"github.com/bryanwahyu/personacolor/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/personacolor/internal/infra/storage"
	"github.com/bryanwahyu/personacolor/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect DB (driver dipilih lewat config)
	var db *sql.DB
	var historyRepo domain.Repository
	var productRepo productsdomain.Repository
	var failureRepo aierrdomain.Repository
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		historyRepo = postgresp.NewHistoryRepository(db)
		productRepo = postgresp.NewProductRepository(db)
		failureRepo = postgresp.NewAIErrorRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		historyRepo = mysqlp.NewHistoryRepository(db)
		productRepo = mysqlp.NewProductRepository(db)
		failureRepo = mysqlp.NewAIErrorRepository(db)
	}
	defer db.Close()

	// init minio (opsional)
	var images *minioStore.Store
	if cfg.Minio.Endpoint != "" {
		images, err = minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
	}

	// init AI client
	var aiClient aidomain.Client
	switch cfg.AI.Provider {
	case "openai":
		aiClient = openaicompat.NewClient(cfg.AI.APIKey, cfg.AI.Endpoint, cfg.AI.Model, cfg.AITimeout())
	default:
		aiClient = gemini.NewClient(cfg.AI.Endpoint, cfg.AI.APIKey, cfg.AITimeout())
	}

	productsSvc := appproducts.NewService(productRepo)
	analysisSvc := &appanalysis.Service{
		Repo:     historyRepo,
		AI:       aiClient,
		Products: productsSvc,
		Failures: failureRepo,
		Clock:    application.SystemClock{},
		Provider: cfg.AI.Provider,
	}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.APIKeyAuth(cfg.Auth.Keys))

	capacity, refill := cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate
	if capacity <= 0 {
		capacity = 30
	}
	if refill <= 0 {
		refill = 1
	}
	mux.Use(middleware.RateLimitMiddleware(capacity, refill))

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(analysisSvc, productsSvc, images))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // AI call happens inside the request
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
