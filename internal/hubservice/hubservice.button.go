// FilePath: internal/hubservice/hubservice.button.go
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

// ButtonState is the resolved live view of a button.
type ButtonState struct {
	ID    string   `json:"id"`
	Value *float64 `json:"value"`
	Error bool     `json:"error"`
}

// CreateButton creates a new button
func (s *HubService) CreateButton(ctx context.Context, button *models.Button) error {
	if button.ID == "" {
		return errors.NewValidationError("button id is required", nil)
	}
	if button.EnclosureID != nil {
		if _, err := s.Enclosures.Get(ctx, *button.EnclosureID); err != nil {
			return err
		}
	}
	now := s.clock.Now()
	button.CreatedAt = now
	button.UpdatedAt = now
	if err := s.Buttons.Create(ctx, button); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Created button %s", button.ID)
	return nil
}

// GetButton retrieves a button by ID
func (s *HubService) GetButton(ctx context.Context, id string) (*models.Button, error) {
	return s.Buttons.Get(ctx, id)
}

// ListButtons returns all buttons
func (s *HubService) ListButtons(ctx context.Context) ([]*models.Button, error) {
	return s.Buttons.List(ctx)
}

// UpdateButton merges the non-zero fields of the update into the stored button.
func (s *HubService) UpdateButton(ctx context.Context, id string, update *models.Button) (*models.Button, error) {
	existing, err := s.Buttons.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	roles := []string{"system"}
	updatedFields, _, err := struccy.UpdateStructFields(existing, update, roles, true, true)
	if err != nil {
		return nil, errors.NewInternalError("failed to merge button fields", err)
	}
	if len(updatedFields) == 0 {
		return existing, nil
	}
	if existing.EnclosureID != nil {
		if _, err := s.Enclosures.Get(ctx, *existing.EnclosureID); err != nil {
			return nil, err
		}
	}
	existing.UpdatedAt = s.clock.Now()
	if err := s.Buttons.Update(ctx, existing); err != nil {
		return nil, err
	}
	nuts.L.Infof("[HubService] Updated button %s fields %v", id, updatedFields)
	return existing, nil
}

// DeleteButton removes a button and its entire history.
func (s *HubService) DeleteButton(ctx context.Context, id string) error {
	return s.Cleanup.DeleteButton(ctx, id)
}

// RecordButtonState stores a button state change. Same dedupe gate as
// relays: repeats of the current value are dropped unless force is set.
// Returns the stored row, nil when the call was deduplicated.
func (s *HubService) RecordButtonState(ctx context.Context, buttonID string, value *float64, force bool) (*models.ButtonHistory, error) {
	if value == nil {
		return nil, nil
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return nil, errors.NewValidationError("button value must be a finite number", nil)
	}
	if _, err := s.Buttons.Get(ctx, buttonID); err != nil {
		return nil, err
	}

	if !force {
		current, err := s.CurrentButtonValue(ctx, buttonID)
		if err != nil {
			return nil, err
		}
		if current != nil && current.Value == *value {
			s.recordIngest("button", outcomeSkipped)
			return nil, nil
		}
	}

	now := s.clock.Now()
	entry := &models.ButtonHistory{
		ButtonID:  buttonID,
		Timestamp: now,
		Value:     *value,
	}
	if err := s.ButtonHistory.Insert(ctx, entry); err != nil {
		return nil, err
	}
	s.recordIngest("button", outcomeInserted)
	s.publishReading(ctx, "button", buttonID, *value, now)
	return entry, nil
}

// CurrentButtonValue returns the most recent state change inside the button
// staleness window, or nil when the button has gone quiet.
func (s *HubService) CurrentButtonValue(ctx context.Context, buttonID string) (*models.ButtonHistory, error) {
	since := s.clock.Now().Add(-buttonMaxValueAge)
	entry, err := s.ButtonHistory.LatestSince(ctx, buttonID, since)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// GetButtonState resolves the live state of a button.
func (s *HubService) GetButtonState(ctx context.Context, buttonID string) (*ButtonState, error) {
	button, err := s.Buttons.Get(ctx, buttonID)
	if err != nil {
		return nil, err
	}
	state := &ButtonState{ID: button.ID, Error: true}
	entry, err := s.CurrentButtonValue(ctx, buttonID)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		state.Value = &entry.Value
		state.Error = false
	}
	return state, nil
}

// GetButtonHistory returns button state changes within the given time range.
func (s *HubService) GetButtonHistory(ctx context.Context, buttonID string, from, to time.Time) ([]models.ButtonHistory, error) {
	if _, err := s.Buttons.Get(ctx, buttonID); err != nil {
		return nil, err
	}
	entries, err := s.ButtonHistory.ListRange(ctx, buttonID, from, to)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.ButtonHistory{}
	}
	return entries, nil
}
