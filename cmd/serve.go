package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"backoffice/internal/api"
	"backoffice/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP console API and the metrics server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(flags, false)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}
}

// serve runs the API and metrics servers until ctx is cancelled
func serve(ctx context.Context, a *app) error {
	gin.SetMode(gin.ReleaseMode)
	consoleAPI := api.NewConsoleAPI(a.svc, a.log, a.monitor)

	servers := []*http.Server{{
		Addr:    a.cfg.Addr(),
		Handler: consoleAPI.Router(),
	}}
	if a.cfg.Metrics.Enabled {
		servers = append(servers, metricsServer(a))
	}

	errs := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			a.log.Info("starting server", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
				return
			}
			errs <- nil
		}(srv)
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutting down servers")
	case runErr = <-errs:
		a.log.Error("server error", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("server shutdown error", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}
	return runErr
}

func metricsServer(a *app) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinLogger(a.log))
	router.GET(a.cfg.Metrics.Path, gin.WrapH(a.monitor.Handler()))

	return &http.Server{
		Addr:    a.cfg.MetricsAddr(),
		Handler: router,
	}
}
