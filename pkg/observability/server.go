package observability

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Serve starts a metrics endpoint in the background and returns the server
// so the caller can shut it down when the run finishes. Listen errors are
// logged, not fatal: a busy metrics port must not abort a batch run.
func Serve(addr, path string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		slog.Info("metrics endpoint starting", "addr", addr, "path", path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Warn("metrics endpoint failed", "error", err)
		}
	}()

	return srv
}
