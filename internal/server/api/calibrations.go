package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/hoopshot/internal/physics"
	"github.com/ayusman/hoopshot/internal/store"
)

// CalibrationHandler handles HTTP requests for saved rim calibrations.
type CalibrationHandler struct {
	store *store.Store
	game  Game
}

// NewCalibrationHandler creates a CalibrationHandler. Activating a
// calibration also applies it to g.
func NewCalibrationHandler(s *store.Store, g Game) *CalibrationHandler {
	return &CalibrationHandler{store: s, game: g}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *CalibrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/calibrations, /api/calibrations/{id} and
	// /api/calibrations/{id}/activate
	path := strings.TrimPrefix(r.URL.Path, "/api/calibrations")
	path = strings.Trim(path, "/")

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
	if strings.Contains(path, "/") {
		http.NotFound(w, r)
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

// calibrationRequest creates or updates a calibration. A create without a
// layout saves the live one.
type calibrationRequest struct {
	Name   string          `json:"name"`
	Layout *physics.Layout `json:"layout"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
}

type calibrationResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Layout    physics.Layout `json:"layout"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Active    bool           `json:"active"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

type listCalibrationsResponse struct {
	Calibrations []calibrationResponse `json:"calibrations"`
	Active       string                `json:"active,omitempty"`
}

func toResponse(c *store.Calibration, activeID string) calibrationResponse {
	return calibrationResponse{
		ID:        c.ID,
		Name:      c.Name,
		Layout:    c.Layout,
		Width:     c.Width,
		Height:    c.Height,
		Active:    c.ID == activeID,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

// activeID returns the active calibration ID, or "" when none is set.
func (h *CalibrationHandler) activeID() string {
	id, err := h.store.Settings().Get(store.KeyActiveCalibration)
	if err != nil {
		return ""
	}
	return id
}

// list handles GET /api/calibrations.
func (h *CalibrationHandler) list(w http.ResponseWriter, r *http.Request) {
	calibrations, err := h.store.Calibrations().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list calibrations")
		return
	}

	active := h.activeID()
	response := listCalibrationsResponse{
		Calibrations: make([]calibrationResponse, 0, len(calibrations)),
		Active:       active,
	}
	for _, c := range calibrations {
		response.Calibrations = append(response.Calibrations, toResponse(c, active))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/calibrations/{id}.
func (h *CalibrationHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.store.Calibrations().GetByID(id)
	if err != nil {
		h.storeError(w, err, "Failed to get calibration")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(c, h.activeID()))
}

// create handles POST /api/calibrations.
func (h *CalibrationHandler) create(w http.ResponseWriter, r *http.Request) {
	var req calibrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	var c *store.Calibration
	if req.Layout == nil {
		if h.game == nil {
			writeError(w, http.StatusBadRequest, "Layout is required")
			return
		}
		c = h.game.CurrentCalibration(req.Name)
	} else {
		c = &store.Calibration{
			Name:   req.Name,
			Layout: *req.Layout,
			Width:  req.Width,
			Height: req.Height,
		}
	}

	if err := h.store.Calibrations().Create(c); err != nil {
		h.storeError(w, err, "Failed to create calibration")
		return
	}
	writeJSON(w, http.StatusCreated, toResponse(c, h.activeID()))
}

// update handles PUT /api/calibrations/{id}.
func (h *CalibrationHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.store.Calibrations().GetByID(id)
	if err != nil {
		h.storeError(w, err, "Failed to get calibration")
		return
	}

	var req calibrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Update fields if provided
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Layout != nil {
		c.Layout = *req.Layout
		c.Width = req.Width
		c.Height = req.Height
	}

	if err := h.store.Calibrations().Update(c); err != nil {
		h.storeError(w, err, "Failed to update calibration")
		return
	}

	active := h.activeID()
	if c.ID == active && h.game != nil {
		if err := h.game.ApplyCalibration(c); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to apply calibration")
			return
		}
	}
	writeJSON(w, http.StatusOK, toResponse(c, active))
}

// delete handles DELETE /api/calibrations/{id}. The live layout is left as
// it is.
func (h *CalibrationHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Calibrations().Delete(id); err != nil {
		h.storeError(w, err, "Failed to delete calibration")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// activate handles POST /api/calibrations/{id}/activate.
func (h *CalibrationHandler) activate(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.store.Calibrations().GetByID(id)
	if err != nil {
		h.storeError(w, err, "Failed to get calibration")
		return
	}
	if h.game != nil {
		if err := h.game.ApplyCalibration(c); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := h.store.SetActiveCalibration(c.ID); err != nil {
		h.storeError(w, err, "Failed to activate calibration")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(c, c.ID))
}

// storeError maps store and layout errors to HTTP statuses.
func (h *CalibrationHandler) storeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Calibration not found")
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, "Calibration name already in use")
	case errors.Is(err, physics.ErrInvalidLayout):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
