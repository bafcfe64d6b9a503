package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Wege0921/prodev-be-ecommerce/config"
	"github.com/Wege0921/prodev-be-ecommerce/database/seeders"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/database"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// prodev migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running migrations…")
		return migration.NewRunner(database.DB).Run()
	},
}

// prodev migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Rolling back last batch…")
		return migration.NewRunner(database.DB).Rollback()
	},
}

// prodev migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.NewRunner(database.DB).Status()
	},
}

// prodev seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the sample catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Seeding database…")
		return seeders.RunAll(database.DB)
	},
}
