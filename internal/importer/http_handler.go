package importer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jobvault/jobvault/internal/auth"
	"github.com/jobvault/jobvault/internal/domain"
)

// maxUploadBytes caps in-memory multipart parsing.
const maxUploadBytes = 32 << 20

// Handler accepts multipart uploads at POST /imports/{jobs|contacts|interactions}.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the import service for HTTP.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	kind, ok := domain.ParseEntityKind(lastPathSegment(r.URL.Path))
	if !ok {
		http.Error(w, "unknown import target", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("invalid multipart payload: %v", err), http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(strings.TrimSpace(r.FormValue("userId")))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid userId: %v", err), http.StatusBadRequest)
		return
	}
	if err := auth.EnforceUserScope(r.Context(), userID); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("missing file upload: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	summary, err := h.service.Import(r.Context(), Request{
		UserID:   userID,
		Kind:     kind,
		FileName: header.Filename,
		Data:     file,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func lastPathSegment(path string) string {
	path = strings.TrimSuffix(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx == -1 {
		return path
	}
	return path[idx+1:]
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
