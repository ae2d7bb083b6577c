package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"freight-assignment-engine/internal/domain"
	"freight-assignment-engine/internal/usecase"
)

type enqueueRequest struct {
	OrderID string `json:"orderId"`
}

type enqueueResponse struct {
	JobID      string    `json:"jobId"`
	OrderID    string    `json:"orderId"`
	Status     string    `json:"status"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

// enqueueHandler accepts an optimization request and returns as soon as the
// job is durably queued. The caller never waits for processing.
func enqueueHandler(subUC usecase.SubmissionUseCase, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req enqueueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		job, err := subUC.Enqueue(ctx, req.OrderID)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidArgument) {
				http.Error(w, "orderId is required", http.StatusUnprocessableEntity)
				return
			}
			log.Error().Err(err).Msg("failed to enqueue optimization job")
			http.Error(w, "Failed to enqueue optimization", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(enqueueResponse{
			JobID:      job.ID,
			OrderID:    job.OrderID,
			Status:     string(job.Status),
			EnqueuedAt: job.EnqueuedAt,
		})
	}
}

type jobStatusResponse struct {
	JobID     string `json:"jobId"`
	OrderID   string `json:"orderId"`
	Status    string `json:"status"`
	LastError string `json:"lastError,omitempty"`
}

// jobStatusHandler is the completion signal for monitoring collaborators.
func jobStatusHandler(subUC usecase.SubmissionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		job, err := subUC.GetJob(ctx, chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.Error(w, "Job not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to load job", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jobStatusResponse{
			JobID:     job.ID,
			OrderID:   job.OrderID,
			Status:    string(job.Status),
			LastError: job.LastError,
		})
	}
}
