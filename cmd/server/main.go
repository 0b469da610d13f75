package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"farmagent/internal/catalog"
	"farmagent/internal/config"
	"farmagent/internal/handler"
	"farmagent/internal/logging"
	"farmagent/internal/repository"
	"farmagent/internal/service"
	"farmagent/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "farmer agent: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Farmer Agent API",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// Interaction store
	repo, err := repository.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open interaction store: %w", err)
	}
	defer repo.Close()
	logger.Info("interaction store ready", zap.String("driver", cfg.Database.Driver))

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	seed := time.Now().UnixNano()
	weather := service.NewMockWeatherProvider(cat, rand.New(rand.NewSource(seed)))
	market := service.NewMockMarketProvider(cat, rand.New(rand.NewSource(seed+1)))

	if cfg.Analyzer.Enabled {
		logger.Info("vision analyzer enabled",
			zap.String("api_base", cfg.Analyzer.APIBase),
			zap.String("model", cfg.Analyzer.VisionModel),
		)
	} else {
		logger.Warn("vision analyzer disabled, image analysis uses the stub",
			zap.Duration("stub_delay", cfg.Analyzer.StubDelay),
		)
	}

	assistant := service.NewAssistantService(service.Dependencies{
		Weather:      weather,
		Market:       market,
		Analyzer:     service.NewImageAnalyzer(&cfg.Analyzer),
		Repo:         repo,
		Sessions:     session.NewStore(cfg.Chat.SessionCacheSize, cfg.Chat.SessionTTL),
		Logger:       logger.Named("assistant"),
		HistoryLimit: cfg.Chat.HistoryLimit,
	})
	defer assistant.Close()

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(logging.Recovery(logger), logging.RequestLogger(logger.Named("http")))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitList(cfg.Server.AllowedOrigins)
	corsConfig.AllowMethods = splitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = splitList(cfg.Server.AllowedHeaders)
	if len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "farmer-agent",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	handler.RegisterRoutes(router, handler.Options{
		Assistant:      assistant,
		Catalog:        cat,
		Weather:        weather,
		Market:         market,
		MaxUploadBytes: cfg.Upload.MaxBytes,
	})

	// Implemented in embed.go (production) or static_dev.go (development)
	if err := setupStaticFiles(router, cfg.Server.StaticDir, logger); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
