package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations and seeders so their init() funcs register them.
	_ "github.com/Wege0921/prodev-be-ecommerce/database/migrations"
	_ "github.com/Wege0921/prodev-be-ecommerce/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "prodev",
	Short: "ProDev store backend CLI",
	Long:  "ProDev is the e-commerce store backend. Use this CLI to serve the API, manage the database and run queue workers.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(queueFailedCmd)
}
