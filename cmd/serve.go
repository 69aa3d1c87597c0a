package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"blogsmith/internal/web"
	"blogsmith/pkg/logger"
	"blogsmith/router"
	"blogsmith/socket"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		hub := socket.NewHub()
		rt, err := openRuntime(ctx, hub)
		if err != nil {
			return err
		}
		defer rt.Close()

		go hub.Run(ctx)

		pages, err := web.NewPages(rt.svc)
		if err != nil {
			return fmt.Errorf("loading templates: %w", err)
		}

		srv := &http.Server{
			Addr:         rt.cfg.Server.Addr,
			Handler:      router.Setup(rt.svc, hub, pages),
			ReadTimeout:  rt.cfg.Server.ReadTimeout,
			WriteTimeout: rt.cfg.Server.WriteTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Sugar.Infof("blogsmith listening on %s (store: %s, generator: %s)",
				srv.Addr, rt.cfg.Store.Driver, rt.cfg.Generator.Provider)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Sugar.Infof("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
