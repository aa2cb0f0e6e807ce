package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/dinebot/internal/httpapi"
	"github.com/cognicore/dinebot/internal/metrics"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query API over HTTP",
		Long: `Serve the HTTP API:

  GET  /health
  GET  /metrics
  POST /api/v1/query        {"query": "...", "explain": false}
  GET  /api/v1/menu         ?category=dessert
  GET  /api/v1/menu/:name
  GET  /api/v1/restaurant`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			m := metrics.New()
			rt, err := opts.setup(ctx, cmd.ErrOrStderr(), m)
			if err != nil {
				return err
			}
			defer rt.Close()
			m.CatalogItems.Set(float64(rt.engine.Catalog().Len()))

			cfg := rt.cfg.Server
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			srv, err := httpapi.NewServer(rt.engine, rt.logger, &httpapi.Config{
				Host:    cfg.Host,
				Port:    cfg.Port,
				Metrics: m.Handler(),
			})
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				rt.logger.Error("shutdown failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides server.host)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")
	return cmd
}
