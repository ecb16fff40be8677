package export

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jobvault/jobvault/internal/auth"
	"github.com/jobvault/jobvault/internal/domain"
)

// Handler serves CSV downloads at GET /exports/{jobs|contacts|interactions}.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the export service for HTTP.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	kind, ok := domain.ParseEntityKind(lastPathSegment(r.URL.Path))
	if !ok {
		http.Error(w, "unknown export target", http.StatusNotFound)
		return
	}

	userID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("userId")))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid userId: %v", err), http.StatusBadRequest)
		return
	}
	if err := auth.EnforceUserScope(r.Context(), userID); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	doc, err := h.service.Export(r.Context(), userID, kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	_, _ = w.Write([]byte(doc.Content))
}

func lastPathSegment(path string) string {
	path = strings.TrimSuffix(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx == -1 {
		return path
	}
	return path[idx+1:]
}
