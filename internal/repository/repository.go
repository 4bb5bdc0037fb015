// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// EnclosureRepository defines the interface for enclosure data operations
type EnclosureRepository interface {
	database.Repository
	Create(ctx context.Context, enclosure *models.Enclosure) error
	Get(ctx context.Context, id string) (*models.Enclosure, error)
	Update(ctx context.Context, enclosure *models.Enclosure) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.Enclosure, error)
}

// AreaRepository defines the interface for area data operations
type AreaRepository interface {
	Create(ctx context.Context, area *models.Area) error
	Get(ctx context.Context, id string) (*models.Area, error)
	Update(ctx context.Context, area *models.Area) error
	Delete(ctx context.Context, id string) error
	ListByEnclosure(ctx context.Context, enclosureID string) ([]*models.Area, error)
	DeleteByEnclosure(ctx context.Context, enclosureID string) error
}

// RelayRepository defines the interface for relay configuration
type RelayRepository interface {
	Create(ctx context.Context, relay *models.Relay) error
	Get(ctx context.Context, id string) (*models.Relay, error)
	Update(ctx context.Context, relay *models.Relay) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Relay, error)
}

// SensorRepository defines the interface for sensor configuration
type SensorRepository interface {
	Create(ctx context.Context, sensor *models.Sensor) error
	Get(ctx context.Context, id string) (*models.Sensor, error)
	Update(ctx context.Context, sensor *models.Sensor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Sensor, error)
}

// ButtonRepository defines the interface for button configuration
type ButtonRepository interface {
	Create(ctx context.Context, button *models.Button) error
	Get(ctx context.Context, id string) (*models.Button, error)
	Update(ctx context.Context, button *models.Button) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Button, error)
	ListByEnclosure(ctx context.Context, enclosureID string) ([]*models.Button, error)
	DetachFromEnclosure(ctx context.Context, enclosureID string) error
}

// WebcamRepository defines the interface for webcam configuration
type WebcamRepository interface {
	Create(ctx context.Context, webcam *models.Webcam) error
	Get(ctx context.Context, id string) (*models.Webcam, error)
	Update(ctx context.Context, webcam *models.Webcam) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Webcam, error)
}

// SettingRepository defines the interface for the flat settings key space
type SettingRepository interface {
	Get(ctx context.Context, id string) (*models.Setting, error)
	Set(ctx context.Context, setting *models.Setting) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Setting, error)
}

// AudiofileRepository defines the interface for audio file metadata
type AudiofileRepository interface {
	Create(ctx context.Context, audiofile *models.Audiofile) error
	Get(ctx context.Context, id string) (*models.Audiofile, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Audiofile, error)
}

// SensorHistoryRepository is the ledger of minute-bucketed sensor rows,
// keyed by (sensor_id, timestamp). Insert reports a conflict when the
// bucket already exists so callers can retry as a merge.
type SensorHistoryRepository interface {
	Insert(ctx context.Context, row *models.SensorHistory) error
	UpdateBucket(ctx context.Context, row *models.SensorHistory) error
	GetBucket(ctx context.Context, sensorID string, ts time.Time) (*models.SensorHistory, error)
	LatestSince(ctx context.Context, sensorID string, min time.Time) (*models.SensorHistory, error)
	ListRange(ctx context.Context, sensorID string, start, end time.Time) ([]models.SensorHistory, error)
	DeleteBySensorID(ctx context.Context, sensorID string) error
}

// RelayHistoryRepository is the ledger of relay state changes, keyed by
// (relay_id, timestamp).
type RelayHistoryRepository interface {
	Insert(ctx context.Context, row *models.RelayHistory) error
	LatestSince(ctx context.Context, relayID string, min time.Time) (*models.RelayHistory, error)
	ListRange(ctx context.Context, relayID string, start, end time.Time) ([]models.RelayHistory, error)
	DeleteByRelayID(ctx context.Context, relayID string) error
}

// ButtonHistoryRepository is the ledger of button state changes, keyed by
// (button_id, timestamp).
type ButtonHistoryRepository interface {
	Insert(ctx context.Context, row *models.ButtonHistory) error
	LatestSince(ctx context.Context, buttonID string, min time.Time) (*models.ButtonHistory, error)
	ListRange(ctx context.Context, buttonID string, start, end time.Time) ([]models.ButtonHistory, error)
	DeleteByButtonID(ctx context.Context, buttonID string) error
}
