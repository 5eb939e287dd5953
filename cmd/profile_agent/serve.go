package main

import (
	"fmt"
	"os"

	"github.com/candyhouse/talent-profile/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort   int
	sqlitePath  string
	databaseURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the talent API server",
	Long: `Start an HTTP server exposing /talent/register, /talent/login and
/talent/profile. Storage is PostgreSQL when DATABASE_URL is set, otherwise the
SQLite file named by --sqlite or SQLITE_PATH. JWT_SECRET is required.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database file (default $SQLITE_PATH)")
	serveCmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL (default $DATABASE_URL)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: firstNonEmpty(databaseURL, os.Getenv("DATABASE_URL")),
		SQLitePath:  firstNonEmpty(sqlitePath, os.Getenv("SQLITE_PATH")),
	}

	srv, err := server.New(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("serving talent API",
		zap.Int("port", cfg.Port),
		zap.Bool("postgres", cfg.DatabaseURL != ""),
	)
	return srv.Start(cmd.Context())
}
