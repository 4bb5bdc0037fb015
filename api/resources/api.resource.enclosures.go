// FilePath: api/resources/api.resource.enclosures.go
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

// EnclosureHandlers encapsulates the enclosure-related HTTP handlers
type EnclosureHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Create a new enclosure
// @Description Create a new enclosure with the provided details
// @Tags enclosures
// @Accept json
// @Produce json
// @Param enclosure body models.Enclosure true "Enclosure details"
// @Success 201 {object} models.Enclosure
// @Failure 400 {object} errors.APIError
// @Router /enclosures [post]
func (h *EnclosureHandlers) CreateEnclosure(w http.ResponseWriter, r *http.Request) {
	var enclosure models.Enclosure
	requestID := nuts.NID("req", 12)

	if err := json.NewDecoder(r.Body).Decode(&enclosure); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateEnclosure(r.Context(), &enclosure); err != nil {
		respondWithServiceError(w, err, "failed to create enclosure", requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, enclosure)
}

// @Summary Get an enclosure by ID
// @Description Get detailed information about a specific enclosure
// @Tags enclosures
// @Produce json
// @Param id path string true "Enclosure ID"
// @Success 200 {object} models.Enclosure
// @Failure 404 {object} errors.APIError
// @Router /enclosures/{id} [get]
func (h *EnclosureHandlers) GetEnclosure(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	enclosure, err := h.hubservice.GetEnclosure(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err, "failed to get enclosure", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, enclosure)
}

// @Summary List enclosures
// @Description Get a paginated list of enclosures
// @Tags enclosures
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Enclosure
// @Router /enclosures [get]
func (h *EnclosureHandlers) ListEnclosures(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	enclosures, err := h.hubservice.ListEnclosures(r.Context(), offset, limit)
	if err != nil {
		respondWithServiceError(w, err, "failed to list enclosures", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, enclosures)
}

// @Summary Update an enclosure
// @Description Update an existing enclosure's details
// @Tags enclosures
// @Accept json
// @Produce json
// @Param id path string true "Enclosure ID"
// @Param enclosure body models.Enclosure true "Updated enclosure details"
// @Success 200 {object} models.Enclosure
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /enclosures/{id} [put]
func (h *EnclosureHandlers) UpdateEnclosure(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var enclosure models.Enclosure
	if err := json.NewDecoder(r.Body).Decode(&enclosure); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	updated, err := h.hubservice.UpdateEnclosure(r.Context(), id, &enclosure)
	if err != nil {
		respondWithServiceError(w, err, "failed to update enclosure", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// @Summary Delete an enclosure
// @Description Delete an enclosure, its areas and its image
// @Tags enclosures
// @Produce json
// @Param id path string true "Enclosure ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /enclosures/{id} [delete]
func (h *EnclosureHandlers) DeleteEnclosure(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteEnclosure(r.Context(), id); err != nil {
		respondWithServiceError(w, err, "failed to delete enclosure", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary List areas of an enclosure
// @Tags enclosures
// @Produce json
// @Param id path string true "Enclosure ID"
// @Success 200 {array} models.Area
// @Router /enclosures/{id}/areas [get]
func (h *EnclosureHandlers) ListAreas(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	areas, err := h.hubservice.ListAreas(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err, "failed to list areas", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, areas)
}

// @Summary Create an area inside an enclosure
// @Tags enclosures
// @Accept json
// @Produce json
// @Param id path string true "Enclosure ID"
// @Param area body models.Area true "Area details"
// @Success 201 {object} models.Area
// @Failure 400 {object} errors.APIError
// @Router /enclosures/{id}/areas [post]
func (h *EnclosureHandlers) CreateArea(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var area models.Area
	if err := json.NewDecoder(r.Body).Decode(&area); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	area.EnclosureID = id
	if err := h.hubservice.CreateArea(r.Context(), &area); err != nil {
		respondWithServiceError(w, err, "failed to create area", requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, area)
}

// @Summary Update an area
// @Tags enclosures
// @Accept json
// @Produce json
// @Param areaId path string true "Area ID"
// @Param area body models.Area true "Updated area details"
// @Success 200 {object} models.Area
// @Router /areas/{areaId} [put]
func (h *EnclosureHandlers) UpdateArea(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	areaID := vars["areaId"]
	requestID := nuts.NID("req", 12)

	var area models.Area
	if err := json.NewDecoder(r.Body).Decode(&area); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	updated, err := h.hubservice.UpdateArea(r.Context(), areaID, &area)
	if err != nil {
		respondWithServiceError(w, err, "failed to update area", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// @Summary Delete an area
// @Tags enclosures
// @Param areaId path string true "Area ID"
// @Success 204 "No Content"
// @Router /areas/{areaId} [delete]
func (h *EnclosureHandlers) DeleteArea(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	areaID := vars["areaId"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteArea(r.Context(), areaID); err != nil {
		respondWithServiceError(w, err, "failed to delete area", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
