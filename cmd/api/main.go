package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskhub/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskhub",
		Short: "TaskHub API Server",
		Long:  `TaskHub is a multi-tenant task tracking service with role-based access control and an audit trail.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
