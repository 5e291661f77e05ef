package fp_api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_log"
	"github.com/rskv-p/fpmine/servs/s_fp/fp_serv"
)

// Router builds the HTTP API for svc.
func Router(svc *fp_serv.Service, auth *Auth) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	// Public endpoints
	r.Get("/healthz", handleHealth(svc))

	// Readers
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(constant.RoleReader))

		r.Route("/api", func(r chi.Router) {
			r.Get("/datasets", handleDatasets(svc))           // List catalog
			r.Get("/metrics", handleMetrics(svc))             // Service counters
			r.Get("/runs", handleRuns(svc))                   // List stored runs
			r.Get("/runs/{id}", handleRun(svc))               // One stored run
			r.Get("/runs/{id}/itemsets", handleItemsets(svc)) // Itemsets of a run
		})
	})

	// Miners
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(constant.RoleAdmin))

		r.Post("/api/mine", handleMine(svc)) // Run a job and return its itemsets
		r.Get("/ws/mine", handleWS(svc))     // Stream a job over websocket
	})

	return r
}

// requestLogger logs every request through x_log.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		x_log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("req_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

// Serve runs the API on addr until ctx ends.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		x_log.Info().Str("addr", addr).Msg("REST API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		x_log.Info().Msg("REST API shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
