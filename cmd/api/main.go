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

	"github.com/joho/godotenv"

	appanalysis "legalease/internal/application/analysis"
	appdocs "legalease/internal/application/documents"
	"legalease/internal/config"
	domanalysis "legalease/internal/domain/analysis"
	domdocs "legalease/internal/domain/documents"
	"legalease/internal/infra/ai/cohere"
	"legalease/internal/infra/ai/heuristic"
	"legalease/internal/infra/ai/openaix"
	"legalease/internal/infra/db/memory"
	"legalease/internal/infra/db/mysql"
	"legalease/internal/infra/db/postgres"
	"legalease/internal/infra/extract"
	"legalease/internal/infra/httpserver"
	minioStore "legalease/internal/infra/storage"
	"legalease/internal/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// repositories
	var (
		docRepo      domdocs.Repository
		analysisRepo domanalysis.Repository
		db           *sql.DB
	)
	switch cfg.Database.Driver {
	case "memory":
		repo := memory.New()
		docRepo, analysisRepo = repo, repo
	case "postgres":
		db, err = postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo := postgres.NewRepository(db)
		docRepo, analysisRepo = repo, repo
	case "mysql":
		db, err = mysql.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo := mysql.NewRepository(db)
		docRepo, analysisRepo = repo, repo
	default:
		log.Fatalf("unknown database driver %q", cfg.Database.Driver)
	}
	if db != nil {
		defer db.Close()
	}

	// optional raw-upload archive
	var archive domdocs.Archive
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
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
		archive = store
	}

	// provider cascade, in priority order; keyless providers are skipped
	var providers []domanalysis.Provider
	if cfg.Providers.Cohere.APIKey != "" {
		providers = append(providers, cohere.New(cohere.Config{
			APIKey:         cfg.Providers.Cohere.APIKey,
			Model:          cfg.Providers.Cohere.Model,
			BaseURL:        cfg.Providers.Cohere.BaseURL,
			AnalyzeExcerpt: cfg.Limits.AnalyzeExcerpt,
			AnswerExcerpt:  cfg.Limits.AnswerExcerpt,
			SummaryExcerpt: cfg.Limits.SummaryExcerpt,
		}))
	}
	if cfg.Providers.OpenAI.APIKey != "" {
		providers = append(providers, openaix.New(openaix.Config{
			APIKey:  cfg.Providers.OpenAI.APIKey,
			Model:   cfg.Providers.OpenAI.Model,
			BaseURL: cfg.Providers.OpenAI.BaseURL,
		}))
	}
	if len(providers) == 0 {
		log.Printf("no provider keys configured; analysis will run on the heuristic tier only")
	}

	orchestrator := appanalysis.NewService(providers, heuristic.New())

	svc := &appdocs.Service{
		Docs:      docRepo,
		Analyses:  analysisRepo,
		Extractor: extract.New(),
		Analyzer:  orchestrator,
		Archive:   archive,
		Clock:     appdocs.SystemClock{},
	}

	checkers := map[string]middleware.HealthChecker{}
	if db != nil {
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpserver.NewRouter(svc, checkers),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

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
