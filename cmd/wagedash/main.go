package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ougirez/wagedash/internal/pkg/logger"
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd is the wagedash entry point
var rootCmd = &cobra.Command{
	Use:   "wagedash",
	Short: "Japanese wage statistics dashboard",
	Long: `wagedash loads the wage census tables and serves the dashboard views.

Available subcommands:
  serve  - Start the HTTP API
  export - Render one view to an XLSX or PNG file`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig(cmd.Context(), cfgFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml)")
	rootCmd.AddCommand(serveCmd, exportCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Fatal(ctx, err)
	}
}
