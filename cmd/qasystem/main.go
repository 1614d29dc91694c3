package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/syntacsdev/qasystem/internal/auth"
	"github.com/syntacsdev/qasystem/internal/config"
	"github.com/syntacsdev/qasystem/internal/database"
	"github.com/syntacsdev/qasystem/internal/logging"
	"github.com/syntacsdev/qasystem/internal/qa"
	"github.com/syntacsdev/qasystem/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	port      int
	bind      string
	dbPath    string
	verbosity int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qasystem",
		Short: "QASystem - Q&A platform server",
		Long:  `QASystem is a question-and-answer platform server with peer review, messaging, and invitation-gated reviewer accounts.`,
		RunE:  run,
	}

	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (required, or set PORT env var)")
	rootCmd.Flags().StringVarP(&bind, "bind", "b", "", "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "./qasystem.db", "SQLite database path (or set DB_PATH env var)")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qasystem %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Check for PORT env var if flag not set
	if port == 0 {
		if envPort := os.Getenv("PORT"); envPort != "" {
			if _, err := fmt.Sscanf(envPort, "%d", &port); err != nil {
				return fmt.Errorf("invalid PORT environment variable %q: %w", envPort, err)
			}
		}
	}

	// Check for DB_PATH env var if using default
	if dbPath == "./qasystem.db" {
		if envDB := os.Getenv("DB_PATH"); envDB != "" {
			dbPath = envDB
		}
	}

	if port == 0 {
		return fmt.Errorf("--port flag or PORT environment variable is required")
	}
	if bind != "" {
		if ip := net.ParseIP(bind); ip == nil {
			return fmt.Errorf("invalid bind address: %s", bind)
		}
	}

	level := "info"
	switch {
	case verbosity == 1:
		level = "debug"
	case verbosity >= 2:
		level = "trace"
	}

	log.Info().
		Str("version", version).
		Int("port", port).
		Str("bind", bind).
		Str("database", dbPath).
		Msg("Starting QASystem")

	db, err := database.New(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Logging config (rotation sizes etc.) lives in the settings table
	loader := config.NewLoader(db)
	logging.Apply(level, loader, logging.FilePathForDB(dbPath))

	registry := qa.NewRegistry(db)
	if err := registry.FetchAll(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load caches from store")
	}

	if err := seedAdminUser(db, registry); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin user")
	}

	authService := auth.NewService(db, registry.Users)

	// Periodic session sweep
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 1h", func() {
		if n, err := db.DeleteExpiredSessions(); err != nil {
			log.Error().Err(err).Msg("Failed to sweep expired sessions")
		} else if n > 0 {
			log.Debug().Int64("count", n).Msg("Swept expired sessions")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule session sweep")
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := web.NewServer(registry, authService, port, bind)

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Server error")
		return err
	}

	log.Info().Msg("Shutdown complete")
	return nil
}

// seedAdminUser creates a default admin account on a fresh database. The
// generated password is printed once; change it after first login.
func seedAdminUser(db *database.DB, registry *qa.Registry) error {
	firstRun, err := db.IsFirstRun()
	if err != nil {
		return err
	}
	if !firstRun {
		return nil
	}

	raw := make([]byte, 12)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate admin password: %w", err)
	}
	password := hex.EncodeToString(raw)

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := registry.Users.Create("admin", hashed, "Admin", "", "", qa.RoleAdmin); err != nil {
		return err
	}

	log.Warn().
		Str("username", "admin").
		Str("password", password).
		Msg("Created initial admin account, change the password after first login")
	return nil
}
