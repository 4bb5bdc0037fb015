// FilePath: api/resources/api.resource.buttons.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/hubservice"
	"github.com/vivaria/terrahub/internal/models"
)

// ButtonHandlers encapsulates the button-related HTTP handlers
type ButtonHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Create a new button
// @Tags buttons
// @Accept json
// @Produce json
// @Param button body models.Button true "Button details"
// @Success 201 {object} models.Button
// @Failure 400 {object} errors.APIError
// @Router /buttons [post]
func (h *ButtonHandlers) CreateButton(w http.ResponseWriter, r *http.Request) {
	var button models.Button
	requestID := nuts.NID("req", 12)

	if err := json.NewDecoder(r.Body).Decode(&button); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateButton(r.Context(), &button); err != nil {
		respondWithServiceError(w, err, "failed to create button", requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, button)
}

// @Summary Get a button by ID
// @Tags buttons
// @Produce json
// @Param id path string true "Button ID"
// @Success 200 {object} models.Button
// @Failure 404 {object} errors.APIError
// @Router /buttons/{id} [get]
func (h *ButtonHandlers) GetButton(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	button, err := h.hubservice.GetButton(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err, "failed to get button", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, button)
}

// @Summary List buttons
// @Tags buttons
// @Produce json
// @Success 200 {array} models.Button
// @Router /buttons [get]
func (h *ButtonHandlers) ListButtons(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	buttons, err := h.hubservice.ListButtons(r.Context())
	if err != nil {
		respondWithServiceError(w, err, "failed to list buttons", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, buttons)
}

// @Summary Update a button
// @Tags buttons
// @Accept json
// @Produce json
// @Param id path string true "Button ID"
// @Param button body models.Button true "Updated button details"
// @Success 200 {object} models.Button
// @Failure 404 {object} errors.APIError
// @Router /buttons/{id} [put]
func (h *ButtonHandlers) UpdateButton(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var button models.Button
	if err := json.NewDecoder(r.Body).Decode(&button); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	updated, err := h.hubservice.UpdateButton(r.Context(), id, &button)
	if err != nil {
		respondWithServiceError(w, err, "failed to update button", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// @Summary Delete a button
// @Description Delete a button and all its state history
// @Tags buttons
// @Param id path string true "Button ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /buttons/{id} [delete]
func (h *ButtonHandlers) DeleteButton(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteButton(r.Context(), id); err != nil {
		respondWithServiceError(w, err, "failed to delete button", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Get button state
// @Tags buttons
// @Produce json
// @Param id path string true "Button ID"
// @Success 200 {object} hubservice.ButtonState
// @Failure 404 {object} errors.APIError
// @Router /buttons/{id}/state [get]
func (h *ButtonHandlers) GetButtonState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	state, err := h.hubservice.GetButtonState(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err, "failed to resolve button state", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, state)
}

// @Summary Get button history
// @Tags buttons
// @Produce json
// @Param id path string true "Button ID"
// @Param start query string false "Start time (RFC3339)"
// @Param end query string false "End time (RFC3339)"
// @Success 200 {array} models.ButtonHistory
// @Failure 404 {object} errors.APIError
// @Router /buttons/{id}/history [get]
func (h *ButtonHandlers) GetButtonHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	start, end, err := parseHistoryRange(r)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid time range", err).WithRequestID(requestID))
		return
	}

	entries, err := h.hubservice.GetButtonHistory(r.Context(), id, start, end)
	if err != nil {
		respondWithServiceError(w, err, "failed to get button history", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}
