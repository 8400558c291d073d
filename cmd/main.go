package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"

	"github.com/Vovarama1992/securesense-bridge/internal/ai"
	"github.com/Vovarama1992/securesense-bridge/internal/audit"
	"github.com/Vovarama1992/securesense-bridge/internal/chat"
	"github.com/Vovarama1992/securesense-bridge/internal/config"
	"github.com/Vovarama1992/securesense-bridge/internal/gcp"
	"github.com/Vovarama1992/securesense-bridge/internal/logging"
	"github.com/Vovarama1992/securesense-bridge/internal/metrics"
	"github.com/Vovarama1992/securesense-bridge/internal/middleware"
	"github.com/Vovarama1992/securesense-bridge/internal/transcribe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logging.New("info")
		boot.Fatal().Err(err).Msg("config")
	}
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// --- DB (optional) ---
	var recorder audit.Recorder = audit.Nop{}
	if cfg.DatabaseURL != "" {
		db, err := openDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("db")
		}
		defer db.Close()
		recorder = audit.NewRepo(db)
		logger.Info().Msg("verdict audit enabled")
	}

	// --- Completion backend ---
	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.CompletionProvider).Msg("completion backend")
	}
	invoker := ai.NewInvoker(gen, m)

	// --- Speech backend ---
	var transcriber transcribe.Transcriber
	sc, err := transcribe.NewSpeechClient(ctx, transcribe.SpeechOptions(cfg.GoogleCredentialsFile, cfg.SpeechEndpoint)...)
	if err != nil {
		logger.Warn().Err(err).Msg("speech credentials unavailable; uploads will report a transcription error")
		transcriber = transcribe.Unavailable{Err: err}
	} else {
		defer sc.Close()
		transcriber = sc
	}

	scratch, err := transcribe.NewScratch(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("upload dir")
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.AccessLog(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// --- Chat module wiring ---
	chatService := chat.NewService(invoker, chat.Models{
		EmailClassifier: ai.Variant(cfg.GeminiEmailModel),
		CallClassifier:  ai.Variant(cfg.GeminiCallModel),
		General:         ai.Variant(cfg.GeminiFlashModel),
		Default:         ai.Variant(cfg.GeminiDefaultModel),
	}, recorder, m)
	chat.RegisterRoutes(r, chat.NewHandler(chatService))

	// --- Transcribe module wiring ---
	transcribeService := transcribe.NewService(scratch, transcriber, m)
	transcribe.RegisterRoutes(r, transcribe.NewHandler(transcribeService, cfg.MaxUploadBytes()))

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().
		Str("addr", srv.Addr).
		Str("provider", cfg.CompletionProvider).
		Str("upload_dir", scratch.Dir()).
		Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server error")
	}
	logger.Info().Msg("stopped")
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	if err := audit.Migrate(pingCtx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func newGenerator(ctx context.Context, cfg *config.Config) (ai.Generator, error) {
	switch cfg.CompletionProvider {
	case config.ProviderOpenAI:
		return ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, &http.Client{Timeout: cfg.RemoteTimeout})
	default:
		opts := ai.GeminiOptions{
			BaseURL: cfg.GeminiBaseURL,
			APIKey:  cfg.GeminiAPIKey,
			Timeout: cfg.RemoteTimeout,
		}
		if opts.APIKey == "" {
			client, err := gcp.NewHTTPClient(ctx, cfg.GoogleCredentialsFile, cfg.RemoteTimeout, gcp.GenerativeLanguageScope)
			if err != nil {
				return nil, err
			}
			opts.HTTPClient = client
		}
		return ai.NewGeminiClient(opts)
	}
}
