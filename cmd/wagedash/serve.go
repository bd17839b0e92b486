package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ougirez/wagedash/internal/api"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/ougirez/wagedash/internal/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

// serveCmd loads the dataset and starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Load the wage tables once and serve the dashboard views over HTTP.

A failed load aborts startup. SIGINT or SIGTERM shuts the server down gracefully.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address, overrides server.addr")
	_ = viper.BindPFlag(constants.ViperServerAddrKey, serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	defer logger.Sync()

	data, err := loadDataset(ctx)
	if err != nil {
		logger.Errorf(ctx, "loadDataset: %s", err.Error())
		return err
	}

	svc := api.NewAPIService(newWageService(data))
	addr := viper.GetString(constants.ViperServerAddrKey)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof(ctx, "listening on %s", addr)
		errCh <- svc.Serve(addr)
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("svc.Serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = svc.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("svc.Shutdown: %w", err)
	}
	return nil
}
