// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/hubservice"
)

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// Resources holds all HTTP resource handlers
type Resources struct {
	Enclosures  *EnclosureHandlers
	Sensors     *SensorHandlers
	Relays      *RelayHandlers
	Buttons     *ButtonHandlers
	Webcams     *WebcamHandlers
	Settings    *SettingHandlers
	Readings    *ReadingHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
	Metrics     http.Handler
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService) *Resources {
	return &Resources{
		Enclosures: &EnclosureHandlers{hubservice: svc},
		Sensors:    &SensorHandlers{hubservice: svc},
		Relays:     &RelayHandlers{hubservice: svc},
		Buttons:    &ButtonHandlers{hubservice: svc},
		Webcams:    &WebcamHandlers{hubservice: svc},
		Settings:   &SettingHandlers{hubservice: svc},
		Readings:   &ReadingHandlers{hubservice: svc},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

// SetMetrics sets the metrics handler
func (r *Resources) SetMetrics(h http.Handler) {
	r.Metrics = h
}

// historyRangeQuery is the query-string shape of history endpoints.
// Start and end are RFC3339; end defaults to now, start to end minus one day.
type historyRangeQuery struct {
	Start string `schema:"start"`
	End   string `schema:"end"`
}

func parseHistoryRange(r *http.Request) (start, end time.Time, err error) {
	var q historyRangeQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = time.Now()
	if q.End != "" {
		end, err = time.Parse(time.RFC3339, q.End)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	start = end.Add(-24 * time.Hour)
	if q.Start != "" {
		start, err = time.Parse(time.RFC3339, q.Start)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

// Helper functions

func getPaginationParams(r *http.Request) (offset, limit int) {
	query := r.URL.Query()
	offset, _ = strconv.Atoi(query.Get("offset"))
	limit, _ = strconv.Atoi(query.Get("limit"))

	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	return offset, limit
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

// respondWithServiceError passes through typed service errors so not-found
// and validation keep their status codes.
func respondWithServiceError(w http.ResponseWriter, err error, fallback string, requestID string) {
	if apiErr, ok := err.(*errors.APIError); ok {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}
	respondWithError(w, errors.NewInternalError(fallback, err).WithRequestID(requestID))
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
