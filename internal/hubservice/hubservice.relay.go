// FilePath: internal/hubservice/hubservice.relay.go
package hubservice

import (
	"context"
	"math"
	"time"

	nuts "github.com/vaudience/go-nuts"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"

	"github.com/itsatony/struccy"
)

// RelayState is the resolved live view of a relay including its derived
// power and flow figures.
type RelayState struct {
	ID      string   `json:"id"`
	Kind    string   `json:"kind"`
	Value   *float64 `json:"value"`
	Error   bool     `json:"error"`
	On      bool     `json:"on"`
	Off     bool     `json:"off"`
	Wattage float64  `json:"wattage"`
	Flow    float64  `json:"flow"`
}

// CreateRelay creates a new relay
func (s *HubService) CreateRelay(ctx context.Context, relay *models.Relay) error {
	if relay.ID == "" {
		return errors.NewValidationError("relay id is required", nil)
	}
	relay.RefreshCapabilities()
	now := s.clock.Now()
	relay.CreatedAt = now
	relay.UpdatedAt = now
	if err := s.Relays.Create(ctx, relay); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Created %s %s", relay.Kind(), relay.ID)
	return nil
}

// GetRelay retrieves a relay by ID
func (s *HubService) GetRelay(ctx context.Context, id string) (*models.Relay, error) {
	return s.Relays.Get(ctx, id)
}

// ListRelays returns all relays
func (s *HubService) ListRelays(ctx context.Context) ([]*models.Relay, error) {
	return s.Relays.List(ctx)
}

// UpdateRelay merges the non-zero fields of the update into the stored relay.
func (s *HubService) UpdateRelay(ctx context.Context, id string, update *models.Relay) (*models.Relay, error) {
	existing, err := s.Relays.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	roles := []string{"system"}
	updatedFields, _, err := struccy.UpdateStructFields(existing, update, roles, true, true)
	if err != nil {
		return nil, errors.NewInternalError("failed to merge relay fields", err)
	}
	if len(updatedFields) == 0 {
		return existing, nil
	}
	existing.RefreshCapabilities()
	existing.UpdatedAt = s.clock.Now()
	if err := s.Relays.Update(ctx, existing); err != nil {
		return nil, err
	}
	nuts.L.Infof("[HubService] Updated relay %s fields %v", id, updatedFields)
	return existing, nil
}

// DeleteRelay removes a relay and its entire history.
func (s *HubService) DeleteRelay(ctx context.Context, id string) error {
	return s.Cleanup.DeleteRelay(ctx, id)
}

// RecordRelayState stores a relay state change. A nil value is a silent
// no-op. Repeats of the current value are dropped unless force is set, so
// the ledger only grows on effective changes. Power and flow are derived
// from the relay's rated figures at write time. Returns the stored row,
// nil when the call was deduplicated.
func (s *HubService) RecordRelayState(ctx context.Context, relayID string, value *float64, force bool) (*models.RelayHistory, error) {
	if value == nil {
		return nil, nil
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return nil, errors.NewValidationError("relay value must be a finite number", nil)
	}
	relay, err := s.Relays.Get(ctx, relayID)
	if err != nil {
		return nil, err
	}

	if !force {
		current, err := s.CurrentRelayValue(ctx, relayID)
		if err != nil {
			return nil, err
		}
		if current != nil && current.Value == *value {
			s.recordIngest("relay", outcomeSkipped)
			return nil, nil
		}
	}

	now := s.clock.Now()
	entry := &models.RelayHistory{
		RelayID:   relayID,
		Timestamp: now,
		Value:     *value,
		Wattage:   *value * relay.Wattage / 100,
		Flow:      *value * relay.Flow / 100,
	}
	if err := s.RelayHistory.Insert(ctx, entry); err != nil {
		return nil, err
	}
	s.recordIngest("relay", outcomeInserted)
	s.publishReading(ctx, "relay", relayID, *value, now)
	return entry, nil
}

// CurrentRelayValue returns the most recent state change inside the relay
// staleness window, or nil when the relay has gone quiet.
func (s *HubService) CurrentRelayValue(ctx context.Context, relayID string) (*models.RelayHistory, error) {
	since := s.clock.Now().Add(-relayMaxValueAge)
	entry, err := s.RelayHistory.LatestSince(ctx, relayID, since)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// GetRelayState resolves the live state of a relay.
func (s *HubService) GetRelayState(ctx context.Context, relayID string) (*RelayState, error) {
	relay, err := s.Relays.Get(ctx, relayID)
	if err != nil {
		return nil, err
	}
	state := &RelayState{
		ID:    relay.ID,
		Kind:  relay.Kind(),
		Error: true,
		Off:   true,
	}
	entry, err := s.CurrentRelayValue(ctx, relayID)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		state.Value = &entry.Value
		state.Error = false
		state.On = relay.IsOn(&entry.Value)
		state.Off = !state.On
		state.Wattage = relay.CurrentWattage(&entry.Value)
		state.Flow = relay.CurrentFlow(&entry.Value)
	}
	return state, nil
}

// GetRelayHistory returns relay state changes within the given time range.
func (s *HubService) GetRelayHistory(ctx context.Context, relayID string, from, to time.Time) ([]models.RelayHistory, error) {
	if _, err := s.Relays.Get(ctx, relayID); err != nil {
		return nil, err
	}
	entries, err := s.RelayHistory.ListRange(ctx, relayID, from, to)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.RelayHistory{}
	}
	return entries, nil
}
