package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"childcare/internal/config"
	"childcare/internal/database"
	"childcare/internal/handlers"
	"childcare/internal/logging"
	"childcare/internal/metrics"
	"childcare/internal/repository"
	"childcare/internal/security"
	"childcare/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags; each overrides its environment variable when set
var (
	port        string
	dbType      string
	dbPath      string
	databaseURL string
	logLevel    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "childcare",
		Short: "Childcare association records API",
		Long:  `Serves the children, guardians, authorized persons and their links over a REST API.`,
		RunE:  serve,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&port, "port", "p", "", "HTTP server port (or set PORT env var)")
	flags.StringVar(&dbType, "db-type", "", "Database type: sqlite, postgres or mysql (or set DB_TYPE env var)")
	flags.StringVarP(&dbPath, "db-path", "d", "", "SQLite database path (or set DB_PATH env var)")
	flags.StringVar(&databaseURL, "database-url", "", "PostgreSQL/MySQL connection URL (or set DATABASE_URL env var)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (or set LOG_LEVEL env var)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run migrations and start the HTTP server",
			RunE:  serve,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations and exit",
			RunE:  migrate,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("childcare %s (commit: %s, built: %s)\n", version, commit, date)
			},
		},
		newBackupCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies flag overrides
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.ServerPort = port
	}
	if flags.Changed("db-type") {
		cfg.DatabaseType = dbType
	}
	if flags.Changed("db-path") {
		cfg.DatabasePath = dbPath
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL = databaseURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	logging.Apply(cfg.LogLevel, cfg.LogFile)
	return cfg
}

func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Info().Str("type", cfg.DatabaseType).Msg("Database connection established")

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func migrate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info().Msg("Migrations completed successfully")
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	log.Info().
		Str("version", version).
		Str("port", cfg.ServerPort).
		Str("database", cfg.DatabaseType).
		Msg("Starting childcare API")

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Initialize repositories
	childRepo := repository.NewChildRepository(db)
	guardianRepo := repository.NewGuardianRepository(db)
	personRepo := repository.NewAuthorizedPersonRepository(db)

	routerCfg := handlers.RouterConfig{
		Children:          service.NewChildRoster(childRepo),
		Guardians:         service.NewGuardianRoster(guardianRepo),
		AuthorizedPersons: service.NewAuthorizedPersonRoster(personRepo),
		DB:                db,
		RequestTimeout:    cfg.RequestTimeout,
		TrustProxy:        cfg.TrustProxy,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.RateLimit > 0 {
		limiter := security.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)
		go limiter.RunCleanup(ctx, cfg.RateLimitWindow*2)
		routerCfg.RateLimiter = limiter
		log.Info().Int("requests", cfg.RateLimit).Dur("window", cfg.RateLimitWindow).Msg("Rate limiting enabled")
	}

	var linkOpts []service.LinkOption
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		linkOpts = append(linkOpts, service.WithMetrics(metrics.New(registry)))
		routerCfg.Gatherer = registry
	}

	routerCfg.GuardianLinks = service.NewGuardianChildLinkManager(
		repository.NewGuardianChildLinkRepository(db), childRepo, guardianRepo, linkOpts...)
	routerCfg.AuthorizedPersonLinks = service.NewAuthorizedPersonChildLinkManager(
		repository.NewAuthorizedPersonChildLinkRepository(db), childRepo, personRepo, linkOpts...)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handlers.NewRouter(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Server shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
