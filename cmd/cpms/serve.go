package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/placementlabs/cpms/internal/config"
	"github.com/placementlabs/cpms/internal/db"
	"github.com/placementlabs/cpms/internal/scheduler"
	"github.com/placementlabs/cpms/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the placement API server",
		Long:  "Runs the CPMS HTTP API, migrates the database on startup and, when enabled, the drive lifecycle scheduler.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "cpms.yaml", "path to CPMS config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override the configured listen port")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	// A .env file may carry CPMS_JWT_SECRET; absence is fine.
	godotenv.Load()

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	if cfg.Scheduler.Enabled {
		sched := scheduler.New(gormDB, cfg.Scheduler, log)
		go func() {
			if err := sched.Run(ctx); err != nil {
				log.WithError(err).Error("scheduler stopped")
			}
		}()
	}

	return server.Start(ctx, server.New(gormDB, cfg.Server, log))
}

// connectFromConfig loads the config file and opens the configured database.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gormDB, nil
}
