// Package api provides HTTP API handlers for the irpoint tracking daemon.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/irpoint/internal/detector"
	"github.com/ayusman/irpoint/internal/store"
)

// ProfileApplier retunes the running tracker from a profile. It is
// implemented by app.App; a nil applier means tuning changes only take
// effect on restart.
type ProfileApplier interface {
	ApplyProfile(p *store.Profile) error
}

// ProfileHandler handles HTTP requests for tuning profile resources.
type ProfileHandler struct {
	store   *store.Store
	applier ProfileApplier
}

// NewProfileHandler creates a new ProfileHandler with the given store
// and applier.
func NewProfileHandler(s *store.Store, applier ProfileApplier) *ProfileHandler {
	return &ProfileHandler{store: s, applier: applier}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/profiles, /api/profiles/{id},
	// /api/profiles/{id}/activate
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
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

	if id, ok := strings.CutSuffix(path, "/activate"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.activate(w, r, id)
		return
	}

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
	Name     string   `json:"name"`
	HueMin   *int     `json:"hue_min"`
	HueMax   *int     `json:"hue_max"`
	ValueMin *int     `json:"value_min"`
	ValueMax *int     `json:"value_max"`
	Alpha    *float64 `json:"alpha"`
	MaxJump  *float64 `json:"max_jump"`
	DeadZone *float64 `json:"dead_zone"`
	Gain     *float64 `json:"gain"`
	InvertX  *bool    `json:"invert_x"`
}

type profileResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	HueMin    int     `json:"hue_min"`
	HueMax    int     `json:"hue_max"`
	ValueMin  int     `json:"value_min"`
	ValueMax  int     `json:"value_max"`
	Alpha     float64 `json:"alpha"`
	MaxJump   float64 `json:"max_jump"`
	DeadZone  float64 `json:"dead_zone"`
	Gain      float64 `json:"gain"`
	InvertX   bool    `json:"invert_x"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type listProfilesResponse struct {
	Profiles []profileResponse `json:"profiles"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Profile to a profileResponse.
func (h *ProfileHandler) toResponse(p *store.Profile) profileResponse {
	activeID, _ := h.store.Settings().Get(store.ActiveProfileKey)

	return profileResponse{
		ID:        p.ID,
		Name:      p.Name,
		HueMin:    p.HueMin,
		HueMax:    p.HueMax,
		ValueMin:  p.ValueMin,
		ValueMax:  p.ValueMax,
		Alpha:     p.Alpha,
		MaxJump:   p.MaxJump,
		DeadZone:  p.DeadZone,
		Gain:      p.Gain,
		InvertX:   p.InvertX,
		Active:    p.ID == activeID,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
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

// validateThresholds checks a profile's acceptance region against the
// detector invariants before it reaches the database.
func validateThresholds(p *store.Profile) error {
	cfg := detector.ThresholdConfig{
		HueMin:   p.HueMin,
		HueMax:   p.HueMax,
		ValueMin: p.ValueMin,
		ValueMax: p.ValueMax,
	}
	return cfg.Validate()
}

// list handles GET /api/profiles and returns all profiles.
func (h *ProfileHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles")
		return
	}

	response := listProfilesResponse{
		Profiles: make([]profileResponse, 0, len(profiles)),
	}
	for _, p := range profiles {
		response.Profiles = append(response.Profiles, h.toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/profiles/{id} and returns a single profile.
func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(profile))
}

// create handles POST /api/profiles and creates a new profile. Omitted
// fields fall back to the stock tuning values.
func (h *ProfileHandler) create(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	defaults := detector.DefaultThresholds()
	profile := &store.Profile{
		ID:       uuid.New().String(),
		Name:     req.Name,
		HueMin:   defaults.HueMin,
		HueMax:   defaults.HueMax,
		ValueMin: defaults.ValueMin,
		ValueMax: defaults.ValueMax,
		Alpha:    0.5,
		MaxJump:  150,
		DeadZone: 3,
		Gain:     1,
		InvertX:  true,
	}
	applyRequest(profile, &req)

	if err := validateThresholds(profile); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Profiles().Create(profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	writeJSON(w, http.StatusCreated, h.toResponse(profile))
}

// update handles PUT /api/profiles/{id}. If the updated profile is the
// active one, the running tracker is retuned immediately.
func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, id string) {
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

	if err := validateThresholds(profile); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Profiles().Update(profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	if h.applier != nil {
		if activeID, err := h.store.Settings().Get(store.ActiveProfileKey); err == nil && activeID == id {
			if err := h.applier.ApplyProfile(profile); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to apply profile")
				return
			}
		}
	}

	writeJSON(w, http.StatusOK, h.toResponse(profile))
}

// delete handles DELETE /api/profiles/{id}.
func (h *ProfileHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Profiles().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// activate handles POST /api/profiles/{id}/activate: it marks the
// profile active and retunes the running tracker.
func (h *ProfileHandler) activate(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	if err := h.store.Settings().Set(store.ActiveProfileKey, id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to activate profile")
		return
	}

	if h.applier != nil {
		if err := h.applier.ApplyProfile(profile); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to apply profile")
			return
		}
	}

	writeJSON(w, http.StatusOK, h.toResponse(profile))
}

// applyRequest copies the provided request fields onto a profile.
func applyRequest(p *store.Profile, req *profileRequest) {
	if req.HueMin != nil {
		p.HueMin = *req.HueMin
	}
	if req.HueMax != nil {
		p.HueMax = *req.HueMax
	}
	if req.ValueMin != nil {
		p.ValueMin = *req.ValueMin
	}
	if req.ValueMax != nil {
		p.ValueMax = *req.ValueMax
	}
	if req.Alpha != nil {
		p.Alpha = *req.Alpha
	}
	if req.MaxJump != nil {
		p.MaxJump = *req.MaxJump
	}
	if req.DeadZone != nil {
		p.DeadZone = *req.DeadZone
	}
	if req.Gain != nil {
		p.Gain = *req.Gain
	}
	if req.InvertX != nil {
		p.InvertX = *req.InvertX
	}
}
