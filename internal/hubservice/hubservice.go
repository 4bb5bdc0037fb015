// FilePath: internal/hubservice/hubservice.go
package hubservice

import (
	"context"
	"time"

	"github.com/vivaria/terrahub/internal/cleanup"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
	"github.com/vivaria/terrahub/internal/repository"
)

// Staleness windows: a history row older than this no longer counts as the
// current value and the entity reads as in error.
const (
	sensorMaxValueAge = 5 * time.Minute
	relayMaxValueAge  = 65 * time.Minute
	buttonMaxValueAge = 65 * time.Minute
)

// Ingest outcomes reported to monitoring.
const (
	outcomeInserted = "inserted"
	outcomeMerged   = "merged"
	outcomeSkipped  = "skipped"
)

// ReadingPublisher broadcasts effective reading writes. Best effort,
// failures are logged by the implementation, never surfaced.
type ReadingPublisher interface {
	PublishReading(ctx context.Context, kind, id string, value float64, ts time.Time)
}

// IngestRecorder counts ingest outcomes per entity kind.
type IngestRecorder interface {
	RecordIngest(kind, outcome string)
}

// Repositories bundles all storage dependencies of the hub service.
type Repositories struct {
	Enclosures    repository.EnclosureRepository
	Areas         repository.AreaRepository
	Relays        repository.RelayRepository
	Sensors       repository.SensorRepository
	Buttons       repository.ButtonRepository
	Webcams       repository.WebcamRepository
	Settings      repository.SettingRepository
	Audiofiles    repository.AudiofileRepository
	SensorHistory repository.SensorHistoryRepository
	RelayHistory  repository.RelayHistoryRepository
	ButtonHistory repository.ButtonHistoryRepository
}

// HubService contains all repositories and service-wide dependencies
type HubService struct {
	Repositories
	Cleanup *cleanup.CleanupService

	clock      Clock
	mergeMode  models.MergeMode
	events     ReadingPublisher
	monitoring IngestRecorder
}

// Option configures optional HubService dependencies.
type Option func(*HubService)

// WithClock replaces the wall clock, used by tests.
func WithClock(c Clock) Option {
	return func(s *HubService) { s.clock = c }
}

// WithMergeMode sets the sensor merge policy for same-bucket readings.
func WithMergeMode(m models.MergeMode) Option {
	return func(s *HubService) { s.mergeMode = m }
}

// WithEvents attaches a reading event publisher.
func WithEvents(p ReadingPublisher) Option {
	return func(s *HubService) { s.events = p }
}

// WithMonitoring attaches an ingest outcome recorder.
func WithMonitoring(m IngestRecorder) Option {
	return func(s *HubService) { s.monitoring = m }
}

// New creates a new HubService instance
func New(repos Repositories, cleanupSvc *cleanup.CleanupService, opts ...Option) *HubService {
	svc := &HubService{
		Repositories: repos,
		Cleanup:      cleanupSvc,
		clock:        SystemClock(),
		mergeMode:    models.MergeAverage,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Validate checks if all required repositories are initialized
func (s *HubService) Validate() error {
	if s.Enclosures == nil {
		return ErrMissingRepository("enclosures")
	}
	if s.Areas == nil {
		return ErrMissingRepository("areas")
	}
	if s.Relays == nil {
		return ErrMissingRepository("relays")
	}
	if s.Sensors == nil {
		return ErrMissingRepository("sensors")
	}
	if s.Buttons == nil {
		return ErrMissingRepository("buttons")
	}
	if s.Webcams == nil {
		return ErrMissingRepository("webcams")
	}
	if s.Settings == nil {
		return ErrMissingRepository("settings")
	}
	if s.Audiofiles == nil {
		return ErrMissingRepository("audiofiles")
	}
	if s.SensorHistory == nil {
		return ErrMissingRepository("sensorHistory")
	}
	if s.RelayHistory == nil {
		return ErrMissingRepository("relayHistory")
	}
	if s.ButtonHistory == nil {
		return ErrMissingRepository("buttonHistory")
	}
	if !models.ValidMergeMode(s.mergeMode) {
		return errors.NewInternalError("invalid merge mode: "+string(s.mergeMode), nil)
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}

func (s *HubService) recordIngest(kind, outcome string) {
	if s.monitoring != nil {
		s.monitoring.RecordIngest(kind, outcome)
	}
}

func (s *HubService) publishReading(ctx context.Context, kind, id string, value float64, ts time.Time) {
	if s.events != nil {
		s.events.PublishReading(ctx, kind, id, value, ts)
	}
}
