// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
	"github.com/vivaria/terrahub/api/middleware"
	"github.com/vivaria/terrahub/api/resources"
	"github.com/vivaria/terrahub/internal/hubservice"
	"github.com/vivaria/terrahub/internal/monitoring"
)

type Router struct {
	router    *mux.Router
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, mon *monitoring.Service) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc),
	}

	r.resources.SetHealthCheck(handleHealth)
	r.resources.SetMetrics(mon.Handler())

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	r.router.Use(middleware.RequestID)

	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", r.resources.HealthCheck).Methods(http.MethodGet)
	api.Handle("/metrics", r.resources.Metrics).Methods(http.MethodGet)

	// Enclosures and areas
	enclosures := api.PathPrefix("/enclosures").Subrouter()
	enclosures.HandleFunc("", r.resources.Enclosures.ListEnclosures).Methods(http.MethodGet)
	enclosures.HandleFunc("", r.resources.Enclosures.CreateEnclosure).Methods(http.MethodPost)
	enclosures.HandleFunc("/{id}", r.resources.Enclosures.GetEnclosure).Methods(http.MethodGet)
	enclosures.HandleFunc("/{id}", r.resources.Enclosures.UpdateEnclosure).Methods(http.MethodPut)
	enclosures.HandleFunc("/{id}", r.resources.Enclosures.DeleteEnclosure).Methods(http.MethodDelete)
	enclosures.HandleFunc("/{id}/areas", r.resources.Enclosures.ListAreas).Methods(http.MethodGet)
	enclosures.HandleFunc("/{id}/areas", r.resources.Enclosures.CreateArea).Methods(http.MethodPost)
	api.HandleFunc("/areas/{areaId}", r.resources.Enclosures.UpdateArea).Methods(http.MethodPut)
	api.HandleFunc("/areas/{areaId}", r.resources.Enclosures.DeleteArea).Methods(http.MethodDelete)

	// Sensors
	sensors := api.PathPrefix("/sensors").Subrouter()
	sensors.HandleFunc("", r.resources.Sensors.ListSensors).Methods(http.MethodGet)
	sensors.HandleFunc("", r.resources.Sensors.CreateSensor).Methods(http.MethodPost)
	sensors.HandleFunc("/{id}", r.resources.Sensors.GetSensor).Methods(http.MethodGet)
	sensors.HandleFunc("/{id}", r.resources.Sensors.UpdateSensor).Methods(http.MethodPut)
	sensors.HandleFunc("/{id}", r.resources.Sensors.DeleteSensor).Methods(http.MethodDelete)
	sensors.HandleFunc("/{id}/state", r.resources.Sensors.GetSensorState).Methods(http.MethodGet)
	sensors.HandleFunc("/{id}/history", r.resources.Sensors.GetSensorHistory).Methods(http.MethodGet)
	sensors.HandleFunc("/{id}/readings", r.resources.Readings.SubmitSensorReading).Methods(http.MethodPost)

	// Relays
	relays := api.PathPrefix("/relays").Subrouter()
	relays.HandleFunc("", r.resources.Relays.ListRelays).Methods(http.MethodGet)
	relays.HandleFunc("", r.resources.Relays.CreateRelay).Methods(http.MethodPost)
	relays.HandleFunc("/{id}", r.resources.Relays.GetRelay).Methods(http.MethodGet)
	relays.HandleFunc("/{id}", r.resources.Relays.UpdateRelay).Methods(http.MethodPut)
	relays.HandleFunc("/{id}", r.resources.Relays.DeleteRelay).Methods(http.MethodDelete)
	relays.HandleFunc("/{id}/state", r.resources.Relays.GetRelayState).Methods(http.MethodGet)
	relays.HandleFunc("/{id}/state", r.resources.Readings.SubmitRelayState).Methods(http.MethodPost)
	relays.HandleFunc("/{id}/history", r.resources.Relays.GetRelayHistory).Methods(http.MethodGet)

	// Buttons
	buttons := api.PathPrefix("/buttons").Subrouter()
	buttons.HandleFunc("", r.resources.Buttons.ListButtons).Methods(http.MethodGet)
	buttons.HandleFunc("", r.resources.Buttons.CreateButton).Methods(http.MethodPost)
	buttons.HandleFunc("/{id}", r.resources.Buttons.GetButton).Methods(http.MethodGet)
	buttons.HandleFunc("/{id}", r.resources.Buttons.UpdateButton).Methods(http.MethodPut)
	buttons.HandleFunc("/{id}", r.resources.Buttons.DeleteButton).Methods(http.MethodDelete)
	buttons.HandleFunc("/{id}/state", r.resources.Buttons.GetButtonState).Methods(http.MethodGet)
	buttons.HandleFunc("/{id}/state", r.resources.Readings.SubmitButtonState).Methods(http.MethodPost)
	buttons.HandleFunc("/{id}/history", r.resources.Buttons.GetButtonHistory).Methods(http.MethodGet)

	// Webcams
	webcams := api.PathPrefix("/webcams").Subrouter()
	webcams.HandleFunc("", r.resources.Webcams.ListWebcams).Methods(http.MethodGet)
	webcams.HandleFunc("", r.resources.Webcams.CreateWebcam).Methods(http.MethodPost)
	webcams.HandleFunc("/{id}", r.resources.Webcams.GetWebcam).Methods(http.MethodGet)
	webcams.HandleFunc("/{id}", r.resources.Webcams.UpdateWebcam).Methods(http.MethodPut)
	webcams.HandleFunc("/{id}", r.resources.Webcams.DeleteWebcam).Methods(http.MethodDelete)

	// Settings and audio files
	settings := api.PathPrefix("/settings").Subrouter()
	settings.HandleFunc("", r.resources.Settings.ListSettings).Methods(http.MethodGet)
	settings.HandleFunc("/{id}", r.resources.Settings.GetSetting).Methods(http.MethodGet)
	settings.HandleFunc("/{id}", r.resources.Settings.SetSetting).Methods(http.MethodPut)
	settings.HandleFunc("/{id}", r.resources.Settings.DeleteSetting).Methods(http.MethodDelete)

	audiofiles := api.PathPrefix("/audiofiles").Subrouter()
	audiofiles.HandleFunc("", r.resources.Settings.ListAudiofiles).Methods(http.MethodGet)
	audiofiles.HandleFunc("", r.resources.Settings.CreateAudiofile).Methods(http.MethodPost)
	audiofiles.HandleFunc("/{id}", r.resources.Settings.DeleteAudiofile).Methods(http.MethodDelete)

	// Batch ingestion
	api.HandleFunc("/readings", r.resources.Readings.SubmitReadings).Methods(http.MethodPost)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
}
