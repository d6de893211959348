package html

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ShutdownTimeout bounds how long in-flight requests get once Serve is asked to stop.
const ShutdownTimeout = 10 * time.Second

// Serve runs e on addr until ctx is done, then shuts it down gracefully. It
// returns the listener error if the server stops on its own.
func Serve(ctx context.Context, e *echo.Echo, addr string, logger *logrus.Logger) error {
	errc := make(chan error, 1)
	go func() {
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	if logger != nil {
		logger.Info("Shutting down preview server")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
