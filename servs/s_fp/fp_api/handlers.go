package fp_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rskv-p/fpmine/codec"
	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_fptree"
	"github.com/rskv-p/fpmine/pkg/x_log"
	"github.com/rskv-p/fpmine/servs/s_fp/fp_serv"
)

// handleHealth reports liveness and attached backends; a critical check
// answers 503.
func handleHealth(svc *fp_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, checks := svc.Health(r.Context())
		code := http.StatusOK
		if status >= constant.StatusCritical {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]any{
			"status":   fp_serv.StatusText(status),
			"store":    svc.Store() != nil,
			"datasets": len(svc.Datasets()),
			"checks":   checks,
		})
	}
}

// handleMetrics returns the service counters.
func handleMetrics(svc *fp_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Metrics())
	}
}

// handleDatasets lists the dataset catalog.
func handleDatasets(svc *fp_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Datasets())
	}
}

// handleMine runs a job and returns every itemset in mining order.
func handleMine(svc *fp_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req codec.MineRequest
		if err := codec.ReadJSON(r.Body, &req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", constant.ErrBadRequest, err))
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		sum, err := svc.Run(r.Context(), jobFromRequest(req, true))
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, responseFromSummary(sum))
	}
}

// handleRuns lists stored runs; ?limit= bounds the list.
func handleRuns(svc *fp_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		runs, err := svc.Runs(r.Context(), limit)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, runs)
	}
}

// handleRun returns one stored run.
func handleRun(svc *fp_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := svc.GetRun(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, run)
	}
}

// handleItemsets returns the itemsets of a stored run; ?min_size= filters.
func handleItemsets(svc *fp_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minSize, _ := strconv.Atoi(r.URL.Query().Get("min_size"))
		rows, err := svc.RunItemsets(r.Context(), chi.URLParam(r, "id"), minSize)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// -------- Conversions --------

func jobFromRequest(req codec.MineRequest, collect bool) fp_serv.Job {
	job := fp_serv.Job{
		Dataset:    req.Dataset,
		MinSupport: req.MinSupport,
		Tree:       req.Tree,
		Collect:    collect,
		Store:      req.Store,
		Publish:    req.Publish,
	}
	if len(req.Transactions) > 0 {
		job.Transactions = x_fptree.Transactions(req.Transactions)
	}
	return job
}

func responseFromSummary(sum *fp_serv.RunSummary) codec.MineResponse {
	return codec.MineResponse{
		RunID:        sum.RunID,
		Dataset:      sum.Dataset,
		MinSupport:   sum.MinSupport,
		Transactions: sum.Transactions,
		Result:       sum.Result,
		ElapsedMs:    sum.Elapsed.Milliseconds(),
		Tree:         sum.Tree,
		Itemsets:     sum.Itemsets,
	}
}

// -------- Responses --------

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, constant.ErrRunNotFound), errors.Is(err, constant.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, constant.ErrStoreDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, constant.ErrUnauthorized):
		return http.StatusUnauthorized
	case fp_serv.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := codec.Marshal(v)
	if err != nil {
		x_log.Error().Err(err).Msg("encode response")
		status = http.StatusInternalServerError
		data, _ = codec.Marshal(map[string]string{constant.BodyKeyError: "internal error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		x_log.Warn().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{constant.BodyKeyError: err.Error()})
}
