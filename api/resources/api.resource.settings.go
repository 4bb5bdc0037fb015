// FilePath: api/resources/api.resource.settings.go
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

// SettingHandlers encapsulates settings and audiofile HTTP handlers
type SettingHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary List settings
// @Tags settings
// @Produce json
// @Success 200 {array} models.Setting
// @Router /settings [get]
func (h *SettingHandlers) ListSettings(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	settings, err := h.hubservice.ListSettings(r.Context())
	if err != nil {
		respondWithServiceError(w, err, "failed to list settings", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, settings)
}

// @Summary Get a setting by key
// @Tags settings
// @Produce json
// @Param id path string true "Setting key"
// @Success 200 {object} models.Setting
// @Failure 404 {object} errors.APIError
// @Router /settings/{id} [get]
func (h *SettingHandlers) GetSetting(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	setting, err := h.hubservice.GetSetting(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err, "failed to get setting", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, setting)
}

// @Summary Set a setting
// @Description Insert or replace a setting value
// @Tags settings
// @Accept json
// @Produce json
// @Param id path string true "Setting key"
// @Param setting body models.Setting true "Setting value"
// @Success 200 {object} models.Setting
// @Failure 400 {object} errors.APIError
// @Router /settings/{id} [put]
func (h *SettingHandlers) SetSetting(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var setting models.Setting
	if err := json.NewDecoder(r.Body).Decode(&setting); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	setting.ID = id
	if err := h.hubservice.SetSetting(r.Context(), &setting); err != nil {
		respondWithServiceError(w, err, "failed to set setting", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, setting)
}

// @Summary Delete a setting
// @Tags settings
// @Param id path string true "Setting key"
// @Success 204 "No Content"
// @Router /settings/{id} [delete]
func (h *SettingHandlers) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteSetting(r.Context(), id); err != nil {
		respondWithServiceError(w, err, "failed to delete setting", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary List audio files
// @Tags audiofiles
// @Produce json
// @Success 200 {array} models.Audiofile
// @Router /audiofiles [get]
func (h *SettingHandlers) ListAudiofiles(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	audiofiles, err := h.hubservice.ListAudiofiles(r.Context())
	if err != nil {
		respondWithServiceError(w, err, "failed to list audiofiles", requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, audiofiles)
}

// @Summary Register an audio file
// @Tags audiofiles
// @Accept json
// @Produce json
// @Param audiofile body models.Audiofile true "Audio file metadata"
// @Success 201 {object} models.Audiofile
// @Failure 400 {object} errors.APIError
// @Router /audiofiles [post]
func (h *SettingHandlers) CreateAudiofile(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var audiofile models.Audiofile
	if err := json.NewDecoder(r.Body).Decode(&audiofile); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateAudiofile(r.Context(), &audiofile); err != nil {
		respondWithServiceError(w, err, "failed to register audiofile", requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, audiofile)
}

// @Summary Delete an audio file record
// @Tags audiofiles
// @Param id path string true "Audiofile ID"
// @Success 204 "No Content"
// @Router /audiofiles/{id} [delete]
func (h *SettingHandlers) DeleteAudiofile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteAudiofile(r.Context(), id); err != nil {
		respondWithServiceError(w, err, "failed to delete audiofile", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
