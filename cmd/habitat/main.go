package main

import (
	"os"

	"github.com/spf13/cobra"

	"habitat/internal/interfaces/cli/migrate"
	"habitat/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "habitat",
		Short: "Habitat - property management notification service",
		Long:  `Habitat delivers notifications to residents across in-app, email, SMS, chat, and push channels.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
