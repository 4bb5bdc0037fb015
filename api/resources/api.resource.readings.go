// FilePath: api/resources/api.resource.readings.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/hubservice"
)

// ReadingHandlers encapsulates the measurement ingestion HTTP handlers
type ReadingHandlers struct {
	hubservice *hubservice.HubService
}

// readingPayload is the body of a single reading submission. Value may be
// null to report "no measurement", which the engine drops silently. Force
// only applies to relays and buttons.
type readingPayload struct {
	Value *float64 `json:"value"`
	Force bool     `json:"force,omitempty"`
}

// batchReading is one element of a batch submission.
type batchReading struct {
	Kind  string   `json:"kind"`
	ID    string   `json:"id"`
	Value *float64 `json:"value"`
	Force bool     `json:"force,omitempty"`
}

// batchResult reports the per-reading outcome of a batch submission.
type batchResult struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

// @Summary Submit a sensor reading
// @Description Store a measurement in the sensor's minute bucket
// @Tags readings
// @Accept json
// @Param id path string true "Sensor ID"
// @Param reading body readingPayload true "Measurement"
// @Success 204 "No Content"
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id}/readings [post]
func (h *ReadingHandlers) SubmitSensorReading(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var payload readingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if _, err := h.hubservice.RecordSensorReading(r.Context(), id, payload.Value); err != nil {
		respondWithServiceError(w, err, "failed to record sensor reading", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Submit a relay state
// @Description Store a relay state change, dropped when the value repeats unless force is set
// @Tags readings
// @Accept json
// @Param id path string true "Relay ID"
// @Param reading body readingPayload true "State value"
// @Success 204 "No Content"
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /relays/{id}/state [post]
func (h *ReadingHandlers) SubmitRelayState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var payload readingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if _, err := h.hubservice.RecordRelayState(r.Context(), id, payload.Value, payload.Force); err != nil {
		respondWithServiceError(w, err, "failed to record relay state", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Submit a button state
// @Tags readings
// @Accept json
// @Param id path string true "Button ID"
// @Param reading body readingPayload true "State value"
// @Success 204 "No Content"
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /buttons/{id}/state [post]
func (h *ReadingHandlers) SubmitButtonState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var payload readingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if _, err := h.hubservice.RecordButtonState(r.Context(), id, payload.Value, payload.Force); err != nil {
		respondWithServiceError(w, err, "failed to record button state", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Submit a batch of readings
// @Description Store readings for multiple entities in one call. Failures
// are reported per reading; the rest of the batch still lands.
// @Tags readings
// @Accept json
// @Produce json
// @Param readings body []batchReading true "Readings"
// @Success 200 {array} batchResult
// @Failure 400 {object} errors.APIError
// @Router /readings [post]
func (h *ReadingHandlers) SubmitReadings(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var readings []batchReading
	if err := json.NewDecoder(r.Body).Decode(&readings); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	results := make([]batchResult, 0, len(readings))
	for _, reading := range readings {
		result := batchResult{Kind: reading.Kind, ID: reading.ID}
		var err error
		switch reading.Kind {
		case "sensor":
			_, err = h.hubservice.RecordSensorReading(r.Context(), reading.ID, reading.Value)
		case "relay":
			_, err = h.hubservice.RecordRelayState(r.Context(), reading.ID, reading.Value, reading.Force)
		case "button":
			_, err = h.hubservice.RecordButtonState(r.Context(), reading.ID, reading.Value, reading.Force)
		default:
			err = errors.NewValidationError("unknown reading kind: "+reading.Kind, nil)
		}
		if err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}

	respondWithJSON(w, http.StatusOK, results)
}
