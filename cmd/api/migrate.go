package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-prospector/internal/infra/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long: `Create the leads table and its indexes on DATABASE_URL.
The statements are idempotent and safe to run on every deploy.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if a.db == nil {
			return errors.New("DATABASE_URL is required to migrate")
		}
		if err := database.Migrate(cmd.Context(), a.db); err != nil {
			return err
		}
		a.logger.Info("schema applied")
		return nil
	},
}
