// Package api provides HTTP API handlers for the control panel.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/store"
)

// ProfilesHandler handles HTTP requests for interaction profile resources.
type ProfilesHandler struct {
	store *store.Store
}

// NewProfilesHandler creates a new ProfilesHandler with the given store.
func NewProfilesHandler(s *store.Store) *ProfilesHandler {
	return &ProfilesHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *ProfilesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/profiles, /api/profiles/active,
	// /api/profiles/{id} or /api/profiles/{id}/activate
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/profiles
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if path == "active" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.getActive(w, r)
		return
	}

	if id, ok := strings.CutSuffix(path, "/activate"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.activate(w, r, id)
		return
	}

	// Item endpoint: /api/profiles/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type profileRequest struct {
	Name                 string   `json:"name"`
	DwellMs              *int     `json:"dwell_ms"`
	DollyGain            *float64 `json:"dolly_gain"`
	PanGain              *float64 `json:"pan_gain"`
	RotateGain           *float64 `json:"rotate_gain"`
	SmoothingAlpha       *float64 `json:"smoothing_alpha"`
	ClearFocusOnHandLoss *bool    `json:"clear_focus_on_hand_loss"`
}

type profileResponse struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	DwellMs              int     `json:"dwell_ms"`
	DollyGain            float64 `json:"dolly_gain"`
	PanGain              float64 `json:"pan_gain"`
	RotateGain           float64 `json:"rotate_gain"`
	SmoothingAlpha       float64 `json:"smoothing_alpha"`
	ClearFocusOnHandLoss bool    `json:"clear_focus_on_hand_loss"`
	Active               bool    `json:"active"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

type listProfilesResponse struct {
	Profiles []profileResponse `json:"profiles"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Profile to a profileResponse.
func toResponse(p *store.Profile) profileResponse {
	return profileResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		DwellMs:              p.DwellMs,
		DollyGain:            p.DollyGain,
		PanGain:              p.PanGain,
		RotateGain:           p.RotateGain,
		SmoothingAlpha:       p.SmoothingAlpha,
		ClearFocusOnHandLoss: p.ClearFocusOnHandLoss,
		Active:               p.Active,
		CreatedAt:            p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:            p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/profiles and returns all profiles.
func (h *ProfilesHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles")
		return
	}

	response := listProfilesResponse{
		Profiles: make([]profileResponse, 0, len(profiles)),
	}

	for _, p := range profiles {
		response.Profiles = append(response.Profiles, toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/profiles/{id} and returns a single profile.
func (h *ProfilesHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// getActive handles GET /api/profiles/active and returns the active profile.
func (h *ProfilesHandler) getActive(w http.ResponseWriter, r *http.Request) {
	profile, err := h.store.Profiles().GetActive()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No active profile")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get active profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// create handles POST /api/profiles and creates a new profile.
func (h *ProfilesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate required fields
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	// Start from the defaults and overlay provided fields
	profile := &store.Profile{
		ID:             uuid.New().String(),
		Name:           req.Name,
		DwellMs:        1200,
		DollyGain:      6.0,
		PanGain:        2.0,
		RotateGain:     4.0,
		SmoothingAlpha: 0.5,
	}
	applyRequest(profile, &req)

	if profile.SmoothingAlpha <= 0 || profile.SmoothingAlpha > 1 {
		writeError(w, http.StatusBadRequest, "Smoothing alpha must be in (0, 1]")
		return
	}
	if profile.DwellMs <= 0 {
		writeError(w, http.StatusBadRequest, "Dwell threshold must be positive")
		return
	}

	if err := h.store.Profiles().Create(profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(profile))
}

// update handles PUT /api/profiles/{id} and updates an existing profile.
func (h *ProfilesHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	applyRequest(profile, &req)

	if profile.SmoothingAlpha <= 0 || profile.SmoothingAlpha > 1 {
		writeError(w, http.StatusBadRequest, "Smoothing alpha must be in (0, 1]")
		return
	}
	if profile.DwellMs <= 0 {
		writeError(w, http.StatusBadRequest, "Dwell threshold must be positive")
		return
	}

	if err := h.store.Profiles().Update(profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// activate handles POST /api/profiles/{id}/activate.
func (h *ProfilesHandler) activate(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Profiles().SetActive(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to activate profile")
		return
	}

	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// delete handles DELETE /api/profiles/{id} and removes a profile.
func (h *ProfilesHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Profiles().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// applyRequest overlays the optional fields of a request onto a profile.
func applyRequest(p *store.Profile, req *profileRequest) {
	if req.DwellMs != nil {
		p.DwellMs = *req.DwellMs
	}
	if req.DollyGain != nil {
		p.DollyGain = *req.DollyGain
	}
	if req.PanGain != nil {
		p.PanGain = *req.PanGain
	}
	if req.RotateGain != nil {
		p.RotateGain = *req.RotateGain
	}
	if req.SmoothingAlpha != nil {
		p.SmoothingAlpha = *req.SmoothingAlpha
	}
	if req.ClearFocusOnHandLoss != nil {
		p.ClearFocusOnHandLoss = *req.ClearFocusOnHandLoss
	}
}
