package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs the server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "dca-agent",
	Short: "Chat agent for DCA strategies on Arbitrum",
	Long: `dca-agent answers chat messages about dollar-cost-averaging strategies
and pushes every exchange to the connected WebSocket clients.

Configuration is read from DCA_* environment variables and an optional .env file.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
