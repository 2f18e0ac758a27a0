package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/dkellner/seamplan/pkg/auth"
	"github.com/dkellner/seamplan/pkg/config"
	"github.com/dkellner/seamplan/pkg/sheets"
	"github.com/dkellner/seamplan/pkg/store"
	"github.com/dkellner/seamplan/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	Long:  "Serves the task table and summary dashboard backed by the production plan worksheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		httpClient, err := auth.NewSheetsHTTPClient(ctx, cfg.CredentialsFile)
		if err != nil {
			return err
		}

		sheetClient, err := sheets.NewClient(ctx, httpClient, cfg.SpreadsheetID, cfg.WorksheetName)
		if err != nil {
			return err
		}

		// One store adapter for the whole process, injected into the
		// handlers; no ambient client state.
		taskStore := store.New(sheetClient)

		e := echo.New()
		e.HideBanner = true
		e.Renderer = web.NewRenderer()
		e.Use(middleware.Logger(), middleware.Recover(), web.RequestID())
		web.Register(e, web.NewHandler(taskStore))

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
