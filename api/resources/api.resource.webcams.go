// FilePath: api/resources/api.resource.webcams.go
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

// WebcamHandlers encapsulates the webcam-related HTTP handlers
type WebcamHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Create a new webcam
// @Tags webcams
// @Accept json
// @Produce json
// @Param webcam body models.Webcam true "Webcam details"
// @Success 201 {object} models.Webcam
// @Failure 400 {object} errors.APIError
// @Router /webcams [post]
func (h *WebcamHandlers) CreateWebcam(w http.ResponseWriter, r *http.Request) {
	var webcam models.Webcam
	requestID := nuts.NID("req", 12)

	if err := json.NewDecoder(r.Body).Decode(&webcam); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateWebcam(r.Context(), &webcam); err != nil {
		respondWithServiceError(w, err, "failed to create webcam", requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, webcam)
}

// @Summary Get a webcam by ID
// @Tags webcams
// @Produce json
// @Param id path string true "Webcam ID"
// @Success 200 {object} models.Webcam
// @Failure 404 {object} errors.APIError
// @Router /webcams/{id} [get]
func (h *WebcamHandlers) GetWebcam(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	webcam, err := h.hubservice.GetWebcam(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err, "failed to get webcam", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, webcam)
}

// @Summary List webcams
// @Tags webcams
// @Produce json
// @Success 200 {array} models.Webcam
// @Router /webcams [get]
func (h *WebcamHandlers) ListWebcams(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	webcams, err := h.hubservice.ListWebcams(r.Context())
	if err != nil {
		respondWithServiceError(w, err, "failed to list webcams", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, webcams)
}

// @Summary Update a webcam
// @Tags webcams
// @Accept json
// @Produce json
// @Param id path string true "Webcam ID"
// @Param webcam body models.Webcam true "Updated webcam details"
// @Success 200 {object} models.Webcam
// @Failure 404 {object} errors.APIError
// @Router /webcams/{id} [put]
func (h *WebcamHandlers) UpdateWebcam(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var webcam models.Webcam
	if err := json.NewDecoder(r.Body).Decode(&webcam); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	updated, err := h.hubservice.UpdateWebcam(r.Context(), id, &webcam)
	if err != nil {
		respondWithServiceError(w, err, "failed to update webcam", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// @Summary Delete a webcam
// @Tags webcams
// @Param id path string true "Webcam ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /webcams/{id} [delete]
func (h *WebcamHandlers) DeleteWebcam(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteWebcam(r.Context(), id); err != nil {
		respondWithServiceError(w, err, "failed to delete webcam", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
