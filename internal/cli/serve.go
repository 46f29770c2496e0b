package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"tax-engine/internal/handler"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tax engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&a.cfg.Port, "port", a.cfg.Port, "listen port")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	h := handler.New(a.engine, a.log)
	server := &fasthttp.Server{
		Handler:      h.Handle,
		Name:         "tax-engine",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("tax engine starting", zap.String("port", a.cfg.Port), zap.String("stage", a.cfg.Stage))
		errCh <- server.ListenAndServe(":" + a.cfg.Port)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return <-errCh
}
