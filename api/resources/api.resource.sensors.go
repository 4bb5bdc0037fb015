// FilePath: api/resources/api.resource.sensors.go
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

// SensorHandlers encapsulates the sensor-related HTTP handlers
type SensorHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Create a new sensor
// @Description Register a sensor with its type, address and thresholds
// @Tags sensors
// @Accept json
// @Produce json
// @Param sensor body models.Sensor true "Sensor details"
// @Success 201 {object} models.Sensor
// @Failure 400 {object} errors.APIError
// @Router /sensors [post]
func (h *SensorHandlers) CreateSensor(w http.ResponseWriter, r *http.Request) {
	var sensor models.Sensor
	requestID := nuts.NID("req", 12)

	if err := json.NewDecoder(r.Body).Decode(&sensor); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateSensor(r.Context(), &sensor); err != nil {
		respondWithServiceError(w, err, "failed to create sensor", requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, sensor)
}

// @Summary Get a sensor by ID
// @Tags sensors
// @Produce json
// @Param id path string true "Sensor ID"
// @Success 200 {object} models.Sensor
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id} [get]
func (h *SensorHandlers) GetSensor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	sensor, err := h.hubservice.GetSensor(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err, "failed to get sensor", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, sensor)
}

// @Summary List sensors
// @Tags sensors
// @Produce json
// @Success 200 {array} models.Sensor
// @Router /sensors [get]
func (h *SensorHandlers) ListSensors(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	sensors, err := h.hubservice.ListSensors(r.Context())
	if err != nil {
		respondWithServiceError(w, err, "failed to list sensors", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, sensors)
}

// @Summary Update a sensor
// @Tags sensors
// @Accept json
// @Produce json
// @Param id path string true "Sensor ID"
// @Param sensor body models.Sensor true "Updated sensor details"
// @Success 200 {object} models.Sensor
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id} [put]
func (h *SensorHandlers) UpdateSensor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var sensor models.Sensor
	if err := json.NewDecoder(r.Body).Decode(&sensor); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	updated, err := h.hubservice.UpdateSensor(r.Context(), id, &sensor)
	if err != nil {
		respondWithServiceError(w, err, "failed to update sensor", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// @Summary Delete a sensor
// @Description Delete a sensor and all its measurement history
// @Tags sensors
// @Param id path string true "Sensor ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id} [delete]
func (h *SensorHandlers) DeleteSensor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteSensor(r.Context(), id); err != nil {
		respondWithServiceError(w, err, "failed to delete sensor", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Get sensor state
// @Description Resolve the sensor's current value, alarm and error flags
// @Tags sensors
// @Produce json
// @Param id path string true "Sensor ID"
// @Success 200 {object} hubservice.SensorState
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id}/state [get]
func (h *SensorHandlers) GetSensorState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	state, err := h.hubservice.GetSensorState(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err, "failed to resolve sensor state", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, state)
}

// @Summary Get sensor history
// @Description Get minute-bucketed readings within a time range
// @Tags sensors
// @Produce json
// @Param id path string true "Sensor ID"
// @Param start query string false "Start time (RFC3339)"
// @Param end query string false "End time (RFC3339)"
// @Success 200 {array} models.SensorHistory
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id}/history [get]
func (h *SensorHandlers) GetSensorHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	start, end, err := parseHistoryRange(r)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid time range", err).WithRequestID(requestID))
		return
	}

	entries, err := h.hubservice.GetSensorHistory(r.Context(), id, start, end)
	if err != nil {
		respondWithServiceError(w, err, "failed to get sensor history", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}
