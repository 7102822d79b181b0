package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"easywealth/internal/platform/config"
	"easywealth/internal/platform/logger"
)

const shutdownGrace = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != 0 {
				if port < 1 || port > 65535 {
					return fmt.Errorf("port %d out of range", port)
				}
				cfg.Addr = fmt.Sprintf(":%d", port)
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides EASYWEALTH_PORT)")
	return cmd
}

func serve(parent context.Context, cfg config.App) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Named("server")
	h, err := buildHandler(ctx, cfg)
	if err != nil {
		return err
	}

	srv := &fasthttp.Server{
		Handler:      h.Serve,
		Name:         "easywealth",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("easywealth engine starting")
		errc <- srv.ListenAndServe(cfg.Addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.ShutdownWithContext(sctx)
}
