package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/jobvault/jobvault/internal/auth"
)

func multipartUpload(t *testing.T, userID, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("userId", userID); err != nil {
		t.Fatalf("failed to write userId field: %v", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write file content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestImportHandlerSuccess(t *testing.T) {
	jobs := &stubJobRepo{}
	handler := NewHTTPHandler(newTestService(jobs, nil, nil))

	body, contentType := multipartUpload(t, uuid.New().String(), "jobs.csv",
		"job_title,company\nEngineer,Acme")

	req := httptest.NewRequest(http.MethodPost, "/imports/jobs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if summary.Imported != 1 {
		t.Errorf("expected 1 imported, got %d", summary.Imported)
	}
	if len(jobs.inserted) != 1 {
		t.Errorf("expected record persisted")
	}
}

func TestImportHandlerRejectsUnknownKind(t *testing.T) {
	handler := NewHTTPHandler(newTestService(nil, nil, nil))
	body, contentType := multipartUpload(t, uuid.New().String(), "x.csv", "a,b\n1,2")

	req := httptest.NewRequest(http.MethodPost, "/imports/widgets", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestImportHandlerRejectsWrongMethod(t *testing.T) {
	handler := NewHTTPHandler(newTestService(nil, nil, nil))
	req := httptest.NewRequest(http.MethodGet, "/imports/jobs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestImportHandlerRejectsBadUserID(t *testing.T) {
	handler := NewHTTPHandler(newTestService(nil, nil, nil))
	body, contentType := multipartUpload(t, "not-a-uuid", "jobs.csv", "a,b\n1,2")

	req := httptest.NewRequest(http.MethodPost, "/imports/jobs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestImportHandlerEnforcesScope(t *testing.T) {
	handler := NewHTTPHandler(newTestService(nil, nil, nil))
	body, contentType := multipartUpload(t, uuid.New().String(), "jobs.csv",
		"job_title,company\nEngineer,Acme")

	req := httptest.NewRequest(http.MethodPost, "/imports/jobs", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for mismatched scope, got %d", rec.Code)
	}
}
