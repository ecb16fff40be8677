package export

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jobvault/jobvault/internal/auth"
	"github.com/jobvault/jobvault/internal/domain"
)

func TestExportHandlerDownload(t *testing.T) {
	jobs := &stubJobRepo{
		records: []domain.JobRecord{
			{JobTitle: "Engineer", Company: "Acme", Status: domain.JobStatusApplied},
		},
	}
	handler := NewHTTPHandler(newTestService(jobs, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/exports/jobs?userId="+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Errorf("expected text/csv content type, got %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "jobs.csv") {
		t.Errorf("expected attachment filename, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), "\"Engineer\"") {
		t.Errorf("expected record in download body, got %q", rec.Body.String())
	}
}

func TestExportHandlerRejectsUnknownKind(t *testing.T) {
	handler := NewHTTPHandler(newTestService(nil, nil, nil))
	req := httptest.NewRequest(http.MethodGet, "/exports/widgets?userId="+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestExportHandlerRejectsMissingUser(t *testing.T) {
	handler := NewHTTPHandler(newTestService(nil, nil, nil))
	req := httptest.NewRequest(http.MethodGet, "/exports/jobs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestExportHandlerRejectsWrongMethod(t *testing.T) {
	handler := NewHTTPHandler(newTestService(nil, nil, nil))
	req := httptest.NewRequest(http.MethodPost, "/exports/jobs?userId="+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestExportHandlerEnforcesScope(t *testing.T) {
	handler := NewHTTPHandler(newTestService(nil, nil, nil))
	req := httptest.NewRequest(http.MethodGet, "/exports/jobs?userId="+uuid.New().String(), nil)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for mismatched scope, got %d", rec.Code)
	}
}
