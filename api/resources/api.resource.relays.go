// FilePath: api/resources/api.resource.relays.go
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

// RelayHandlers encapsulates the relay-related HTTP handlers
type RelayHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Create a new relay
// @Tags relays
// @Accept json
// @Produce json
// @Param relay body models.Relay true "Relay details"
// @Success 201 {object} models.Relay
// @Failure 400 {object} errors.APIError
// @Router /relays [post]
func (h *RelayHandlers) CreateRelay(w http.ResponseWriter, r *http.Request) {
	var relay models.Relay
	requestID := nuts.NID("req", 12)

	if err := json.NewDecoder(r.Body).Decode(&relay); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateRelay(r.Context(), &relay); err != nil {
		respondWithServiceError(w, err, "failed to create relay", requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, relay)
}

// @Summary Get a relay by ID
// @Tags relays
// @Produce json
// @Param id path string true "Relay ID"
// @Success 200 {object} models.Relay
// @Failure 404 {object} errors.APIError
// @Router /relays/{id} [get]
func (h *RelayHandlers) GetRelay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	relay, err := h.hubservice.GetRelay(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err, "failed to get relay", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, relay)
}

// @Summary List relays
// @Tags relays
// @Produce json
// @Success 200 {array} models.Relay
// @Router /relays [get]
func (h *RelayHandlers) ListRelays(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	relays, err := h.hubservice.ListRelays(r.Context())
	if err != nil {
		respondWithServiceError(w, err, "failed to list relays", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, relays)
}

// @Summary Update a relay
// @Tags relays
// @Accept json
// @Produce json
// @Param id path string true "Relay ID"
// @Param relay body models.Relay true "Updated relay details"
// @Success 200 {object} models.Relay
// @Failure 404 {object} errors.APIError
// @Router /relays/{id} [put]
func (h *RelayHandlers) UpdateRelay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var relay models.Relay
	if err := json.NewDecoder(r.Body).Decode(&relay); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	updated, err := h.hubservice.UpdateRelay(r.Context(), id, &relay)
	if err != nil {
		respondWithServiceError(w, err, "failed to update relay", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// @Summary Delete a relay
// @Description Delete a relay and all its state history
// @Tags relays
// @Param id path string true "Relay ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /relays/{id} [delete]
func (h *RelayHandlers) DeleteRelay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteRelay(r.Context(), id); err != nil {
		respondWithServiceError(w, err, "failed to delete relay", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Get relay state
// @Description Resolve the relay's current value with derived power and flow
// @Tags relays
// @Produce json
// @Param id path string true "Relay ID"
// @Success 200 {object} hubservice.RelayState
// @Failure 404 {object} errors.APIError
// @Router /relays/{id}/state [get]
func (h *RelayHandlers) GetRelayState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	state, err := h.hubservice.GetRelayState(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err, "failed to resolve relay state", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, state)
}

// @Summary Get relay history
// @Tags relays
// @Produce json
// @Param id path string true "Relay ID"
// @Param start query string false "Start time (RFC3339)"
// @Param end query string false "End time (RFC3339)"
// @Success 200 {array} models.RelayHistory
// @Failure 404 {object} errors.APIError
// @Router /relays/{id}/history [get]
func (h *RelayHandlers) GetRelayHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	start, end, err := parseHistoryRange(r)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid time range", err).WithRequestID(requestID))
		return
	}

	entries, err := h.hubservice.GetRelayHistory(r.Context(), id, start, end)
	if err != nil {
		respondWithServiceError(w, err, "failed to get relay history", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}
