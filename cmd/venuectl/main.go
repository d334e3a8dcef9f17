// Command venuectl is the operator CLI for the venue backend: it prints the
// resolved configuration, lists tournaments and signs test webhooks.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/becsite/backend/internal/config"
)

var Version = "dev"

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "venuectl",
		Short:         "venuectl - operator tooling for the Bakersfield Esports Center API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(webhookCmd())

	return rootCmd
}

// loadConfig resolves configuration from the environment, like the server.
func loadConfig() (*config.Config, error) {
	return config.Load()
}
