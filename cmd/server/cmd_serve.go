package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Wege0921/prodev-be-ecommerce/internal/server"
)

// prodev serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// prodev route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print the registered route table",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, info := range server.RouteTable() {
			fmt.Printf("%-7s %-45s %s\n", info.Method, info.Path, info.Name)
		}
		return nil
	},
}
