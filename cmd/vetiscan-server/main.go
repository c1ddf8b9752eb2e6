package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vetiscan/vetiscan/internal/config"
	"github.com/vetiscan/vetiscan/internal/domain/appointments"
	"github.com/vetiscan/vetiscan/internal/domain/cases"
	"github.com/vetiscan/vetiscan/internal/domain/catalog"
	"github.com/vetiscan/vetiscan/internal/platform/assistant"
	"github.com/vetiscan/vetiscan/internal/platform/auth"
	"github.com/vetiscan/vetiscan/internal/platform/db"
	"github.com/vetiscan/vetiscan/internal/platform/middleware"
	"github.com/vetiscan/vetiscan/internal/platform/telemetry"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vetiscan-server",
		Short: "Veterinary diagnostics lab API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations (postgres store backend only)",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Case store backend
	ctx := context.Background()
	var caseRepo cases.CaseRepository
	var apptRepo appointments.RequestRepository

	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		caseRepo = cases.NewCaseRepoPG(pool)
		apptRepo = appointments.NewRequestRepoPG(pool)
		logger.Info().Msg("using postgres store backend")
	default:
		caseRepo = cases.NewCaseRepoFile(cfg.StoreFile, logger)
		apptRepo = appointments.NewRequestRepoMem()
		logger.Info().Str("file", cfg.StoreFile).Msg("using file store backend")
	}

	// Services
	letterhead := cases.Letterhead{
		Name:         cfg.LabName,
		Registration: cfg.LabRegistration,
		Address:      cfg.LabAddress,
		Phone:        cfg.LabPhone,
		Email:        cfg.LabEmail,
		Pathologist:  cfg.LabPathologist,
	}
	caseSvc := cases.NewService(caseRepo, cases.NewDraftManager(), letterhead)
	apptSvc := appointments.NewService(apptRepo)
	aiClient := assistant.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, logger)

	authCfg := auth.Config{
		SigningKey: []byte(cfg.AuthSigningKey),
		Username:   cfg.StaffUsername,
		Password:   cfg.StaffPassword,
		DevBypass:  cfg.IsDev(),
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	metrics := telemetry.New("vetiscan")

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// API groups
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	public := apiV1.Group("/public", middleware.RateLimit(rateLimitCfg))
	staff := apiV1.Group("/staff", auth.StaffRequired(authCfg))

	// Routes
	auth.NewHandler(authCfg).RegisterRoutes(apiV1)
	catalog.NewHandler().RegisterRoutes(public, staff)
	cases.NewHandler(caseSvc).RegisterRoutes(public, staff)
	appointments.NewHandler(apptSvc).RegisterRoutes(public, staff)
	assistant.NewHandler(aiClient).RegisterRoutes(public)

	// Health and metrics
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/metrics", metrics.Handler())

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
