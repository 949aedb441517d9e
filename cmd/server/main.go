package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/echo/internal/api"
	"github.com/RMahshie/echo/internal/audio"
	"github.com/RMahshie/echo/internal/config"
	"github.com/RMahshie/echo/internal/processing"
	"github.com/RMahshie/echo/internal/repository/postgres"
	"github.com/RMahshie/echo/internal/storage"
	"github.com/RMahshie/echo/internal/transcription"
	"github.com/RMahshie/echo/migrations"
	"github.com/RMahshie/echo/pkg/models"
)

const (
	apiVersion = "1.0.0"
	urlExpiry  = 15 * time.Minute
)

func main() {
	// Configure zerolog for structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.Server.Env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := migrations.Apply(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	storeCfg := cfg.Storage.StoreConfig()
	storeCfg.URLExpiry = urlExpiry
	store, err := storage.New(storeCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create object store")
	}
	if err := store.EnsureBucket(ctx); err != nil {
		log.Fatal().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("Failed to prepare bucket")
	}

	converter, err := audio.NewFFmpegConverter(audio.FFmpegConfig{
		Binary:  cfg.Processing.FFmpegBin,
		Timeout: cfg.Processing.FFmpegTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Audio converter unavailable")
	}

	opts, err := cfg.Analysis.Options()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid analysis settings")
	}
	analyzer := transcription.NewAnalyzer(opts)

	users := postgres.NewPostgresUserRepository(db)
	folders := postgres.NewPostgresFolderRepository(db)
	sequences := postgres.NewPostgresSequenceRepository(db)

	recordings := processing.NewRecordingService(users, folders, sequences, store, converter, analyzer, processing.Config{
		WindowSeconds:       cfg.Analysis.WindowSeconds,
		BeatSeconds:         cfg.Analysis.BeatSeconds,
		MaxUploadBytes:      cfg.Processing.MaxUploadBytes,
		MaxRecordingSeconds: cfg.Processing.MaxRecordingSeconds,
	})

	// Create Chi router
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Create Huma API
	humaConfig := huma.DefaultConfig("Echo API", apiVersion)
	humaConfig.DocsPath = "/api/docs"
	humaAPI := humachi.New(router, humaConfig)

	// Register health endpoint
	huma.Register(humaAPI, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		if err := db.PingContext(ctx); err != nil {
			resp.Body.Status = "degraded"
		}
		resp.Body.Version = apiVersion
		resp.Body.Time = time.Now()
		return resp, nil
	})

	api.RegisterRoutes(humaAPI, api.Dependencies{
		Users:          users,
		Folders:        folders,
		Sequences:      sequences,
		Recordings:     recordings,
		MaxUploadBytes: cfg.Processing.MaxUploadBytes,
		URLExpiry:      urlExpiry,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting Echo API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologLogger returns a Chi middleware that logs HTTP requests using zerolog
func zerologLogger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info().
					Str("request_id", middleware.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("remote_ip", r.RemoteAddr).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("latency", time.Since(start)).
					Msg("HTTP request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
