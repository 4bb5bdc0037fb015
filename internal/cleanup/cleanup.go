// FilePath: internal/cleanup/cleanup.go
package cleanup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	nuts "github.com/vaudience/go-nuts"
	"github.com/vivaria/terrahub/internal/repository"
)

// CleanupService coordinates deletion of hierarchical data
type CleanupService struct {
	enclosures    repository.EnclosureRepository
	areas         repository.AreaRepository
	buttons       repository.ButtonRepository
	sensors       repository.SensorRepository
	sensorHistory repository.SensorHistoryRepository
	relays        repository.RelayRepository
	relayHistory  repository.RelayHistoryRepository
	buttonHistory repository.ButtonHistoryRepository
	fileBasePath  string
	events        *nuts.EventEmitter
}

// New creates a new CleanupService
func New(
	enclosures repository.EnclosureRepository,
	areas repository.AreaRepository,
	buttons repository.ButtonRepository,
	sensors repository.SensorRepository,
	sensorHistory repository.SensorHistoryRepository,
	relays repository.RelayRepository,
	relayHistory repository.RelayHistoryRepository,
	buttonHistory repository.ButtonHistoryRepository,
	fileBasePath string,
) *CleanupService {
	return &CleanupService{
		enclosures:    enclosures,
		areas:         areas,
		buttons:       buttons,
		sensors:       sensors,
		sensorHistory: sensorHistory,
		relays:        relays,
		relayHistory:  relayHistory,
		buttonHistory: buttonHistory,
		fileBasePath:  fileBasePath,
		events:        nuts.NewEventEmitter(),
	}
}

// DeleteEnclosure deletes an enclosure, its areas and its image, and
// detaches door buttons so they survive as standalone inputs. Children go
// first so a failure part-way leaves the enclosure intact and retryable.
func (s *CleanupService) DeleteEnclosure(ctx context.Context, enclosureID string) error {
	enclosure, err := s.enclosures.Get(ctx, enclosureID)
	if err != nil {
		return err
	}

	if err := s.areas.DeleteByEnclosure(ctx, enclosureID); err != nil {
		return fmt.Errorf("failed to delete areas: %w", err)
	}
	s.events.Emit("areas.deleted", enclosureID)

	if err := s.buttons.DetachFromEnclosure(ctx, enclosureID); err != nil {
		return fmt.Errorf("failed to detach buttons: %w", err)
	}

	if err := s.enclosures.Delete(ctx, enclosureID); err != nil {
		return fmt.Errorf("failed to delete enclosure: %w", err)
	}

	// Best effort, the record is already gone.
	if enclosure.Image != "" {
		imagePath := filepath.Join(s.fileBasePath, enclosure.Image)
		if err := os.Remove(imagePath); err != nil && !os.IsNotExist(err) {
			nuts.L.Warnf("[Cleanup] Failed to remove enclosure image %s: %v", imagePath, err)
		}
	}

	s.events.Emit("enclosure.deleted", enclosureID)
	return nil
}

// DeleteSensor deletes a sensor and its entire measurement history. The
// history lives in a separate database, so this is not transactional;
// history goes first so a failure leaves the sensor intact and retryable.
func (s *CleanupService) DeleteSensor(ctx context.Context, sensorID string) error {
	if _, err := s.sensors.Get(ctx, sensorID); err != nil {
		return err
	}

	if err := s.sensorHistory.DeleteBySensorID(ctx, sensorID); err != nil {
		return fmt.Errorf("failed to delete sensor history: %w", err)
	}

	if err := s.sensors.Delete(ctx, sensorID); err != nil {
		return fmt.Errorf("failed to delete sensor: %w", err)
	}

	s.events.Emit("sensor.deleted", sensorID)
	return nil
}

// DeleteRelay deletes a relay and its entire state history.
func (s *CleanupService) DeleteRelay(ctx context.Context, relayID string) error {
	if _, err := s.relays.Get(ctx, relayID); err != nil {
		return err
	}

	if err := s.relayHistory.DeleteByRelayID(ctx, relayID); err != nil {
		return fmt.Errorf("failed to delete relay history: %w", err)
	}

	if err := s.relays.Delete(ctx, relayID); err != nil {
		return fmt.Errorf("failed to delete relay: %w", err)
	}

	s.events.Emit("relay.deleted", relayID)
	return nil
}

// DeleteButton deletes a button and its entire state history.
func (s *CleanupService) DeleteButton(ctx context.Context, buttonID string) error {
	if _, err := s.buttons.Get(ctx, buttonID); err != nil {
		return err
	}

	if err := s.buttonHistory.DeleteByButtonID(ctx, buttonID); err != nil {
		return fmt.Errorf("failed to delete button history: %w", err)
	}

	if err := s.buttons.Delete(ctx, buttonID); err != nil {
		return fmt.Errorf("failed to delete button: %w", err)
	}

	s.events.Emit("button.deleted", buttonID)
	return nil
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id string)) {
	s.events.On(event, "cleanup_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}
