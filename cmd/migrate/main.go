package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	mongoMigration "realty/internal/migrations/mongo"
	"realty/internal/users/repository"
	"realty/internal/users/service"
	"realty/internal/users/validator"
	"realty/pkg/app"
	"realty/pkg/config"
)

const (
	JobName    = "mongo-migration"
	jobTimeout = 120 * time.Second
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database maintenance for the realty services",
	}
	rootCmd.AddCommand(upCmd())
	rootCmd.AddCommand(seedAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create collections, validators and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), jobTimeout)
			defer cancel()

			cfg := connect()
			defer cfg.GracefulShutdown()

			db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
			if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			return nil
		},
	}
}

func seedAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")

			ctx, cancel := context.WithTimeout(cmd.Context(), jobTimeout)
			defer cancel()

			cfg := connect()
			defer cfg.GracefulShutdown()

			users := service.NewUserService(
				repository.NewMongoUserRepository(cfg),
				app.NewTokenManager(cfg),
				validator.NewUserValidator(cfg.Log),
				cfg,
			)
			user, err := users.SeedAdmin(ctx, email, password, name)
			if err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}

			cfg.Log.Info("Administrator created", "id", user.ID, "email", user.Email)
			return nil
		},
	}
	cmd.Flags().String("email", "", "Administrator email")
	cmd.Flags().String("password", "", "Administrator password (at least 8 characters)")
	cmd.Flags().String("name", "Administrator", "Display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func connect() *config.Config {
	cfg := config.Load(JobName)
	cfg.SetMongo()
	return cfg
}
