package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs the server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "prospector",
	Short: "Find high-intent seller leads by ZIP code and reach out to them",
	Long: `prospector retrieves long-tenure, high-equity properties for a ZIP code,
scores each owner's intent to sell, drafts a personal email and SMS, stores
the leads and sends the best unsent ones on request.

Subcommands:
  serve    - Run the HTTP API and operator page (default)
  migrate  - Apply the database schema
  preview  - Print the scored properties of a ZIP code
  consume  - Log outreach events from the message queue`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, previewCmd, consumeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
