// Command sitectl runs maintenance tasks against the site database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nexvstar/site/internal/bootstrap"
	"github.com/nexvstar/site/internal/config"
	"github.com/nexvstar/site/internal/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type env struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB
}

// open runs the shared bootstrap and connects to the database.
func open(ctx context.Context) (*env, error) {
	cfg, log, err := bootstrap.Init(ctx)
	if err != nil {
		return nil, err
	}
	gdb, err := db.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: gdb}, nil
}

var rootCmd = &cobra.Command{
	Use:   "sitectl",
	Short: "NexVstar site maintenance",
	Long: `Maintenance tasks for the NexVstar site backend.

Available subcommands:
  migrate                - Create or update the database tables
  create-admin           - Create an admin account
  seed                   - Load the sample posts and testimonials into empty tables
  requeue-notifications  - Republish sales notifications that failed to send`,
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := open(cmd.Context())
		if err != nil {
			return err
		}
		if err := db.Migrate(e.db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrated", len(db.Models()), "tables")
		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(migrateCmd, createAdminCmd, seedCmd, requeueCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
