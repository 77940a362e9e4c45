package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/server"
)

// Serve runs the report server on addr until ctx is cancelled
func Serve(ctx context.Context, deps *cli.Deps, addr string) {
	srv := server.New(deps.Services)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr)
	}()

	_, _ = fmt.Fprintf(deps.Stdout, "Serving report on http://%s (Ctrl+C to stop)\n", addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fail(deps, "Server stopped", err, "Check that the address is free, or pick another with --addr")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fail(deps, "Failed to stop server", err, "")
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout, "Server stopped")
	}
}
