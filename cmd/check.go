package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dkellner/seamplan/pkg/auth"
	"github.com/dkellner/seamplan/pkg/config"
	"github.com/dkellner/seamplan/pkg/sheets"
	"github.com/dkellner/seamplan/pkg/store"
)

// check verifies credentials and the worksheet schema without starting the
// server, so a misconfigured deployment fails fast and legibly.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify credentials and the worksheet schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx := context.Background()

		httpClient, err := auth.NewSheetsHTTPClient(ctx, cfg.CredentialsFile)
		if err != nil {
			return err
		}

		sheetClient, err := sheets.NewClient(ctx, httpClient, cfg.SpreadsheetID, cfg.WorksheetName)
		if err != nil {
			return err
		}

		tasks, err := store.New(sheetClient).Load(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("OK: worksheet '%s' has %d tasks and all required columns\n", cfg.WorksheetName, len(tasks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
