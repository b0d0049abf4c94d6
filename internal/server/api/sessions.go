package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/mudra/internal/store"
)

// SessionsHandler serves the recorded session event history.
type SessionsHandler struct {
	store *store.Store
}

// NewSessionsHandler creates a new SessionsHandler with the given store.
func NewSessionsHandler(s *store.Store) *SessionsHandler {
	return &SessionsHandler{store: s}
}

type sessionEventResponse struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	Detail    string `json:"detail"`
	CreatedAt string `json:"created_at"`
}

type listEventsResponse struct {
	Events []sessionEventResponse `json:"events"`
}

// ServeHTTP routes requests for /api/sessions and /api/sessions/{id}.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.TrimPrefix(path, "/")

	var (
		events []*store.SessionEvent
		err    error
	)
	if path == "" {
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, convErr := strconv.Atoi(v); convErr == nil {
				limit = n
			}
		}
		events, err = h.store.Sessions().Recent(limit)
	} else {
		events, err = h.store.Sessions().List(path)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		Events: make([]sessionEventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, sessionEventResponse{
			ID:        e.ID,
			SessionID: e.SessionID,
			Kind:      e.Kind,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
