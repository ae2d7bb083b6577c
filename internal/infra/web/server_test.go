package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"freight-assignment-engine/internal/domain"
	"freight-assignment-engine/internal/domain/model"
)

type fakeSubmission struct {
	jobs map[string]*model.OptimizationJob
}

func (f *fakeSubmission) Enqueue(ctx context.Context, orderID string) (*model.OptimizationJob, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, domain.ErrInvalidArgument
	}
	job := &model.OptimizationJob{
		ID:      "job-1",
		OrderID: orderID,
		Status:  model.OptimizationJobStatusQueued,
	}
	if f.jobs == nil {
		f.jobs = map[string]*model.OptimizationJob{}
	}
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeSubmission) GetJob(ctx context.Context, jobID string) (*model.OptimizationJob, error) {
	if j, ok := f.jobs[jobID]; ok {
		return j, nil
	}
	return nil, domain.ErrNotFound
}

func newTestServer() (*Server, *fakeSubmission) {
	l := zerolog.Nop()
	sub := &fakeSubmission{}
	return NewServer(sub, "secret", &l), sub
}

func TestEnqueueAccepted(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimization", strings.NewReader(`{"orderId":"o1"}`))
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	var resp enqueueResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "queued" || resp.OrderID != "o1" || resp.JobID == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestEnqueueRequiresAuth(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimization", strings.NewReader(`{"orderId":"o1"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/optimization", strings.NewReader(`{"orderId":"o1"}`))
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestEnqueueValidation(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimization", strings.NewReader(`not json`))
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/optimization", strings.NewReader(`{"orderId":""}`))
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestJobStatus(t *testing.T) {
	srv, sub := newTestServer()
	sub.jobs = map[string]*model.OptimizationJob{
		"job-9": {ID: "job-9", OrderID: "o1", Status: model.OptimizationJobStatusFailed, LastError: "store unavailable"},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/optimization/jobs/job-9", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp jobStatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "failed" || resp.LastError == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestJobStatusNotFound(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/optimization/jobs/missing", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHealthzOpen(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
