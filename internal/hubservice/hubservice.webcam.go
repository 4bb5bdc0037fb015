// FilePath: internal/hubservice/hubservice.webcam.go
package hubservice

import (
	"context"

	nuts "github.com/vaudience/go-nuts"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"

	"github.com/itsatony/struccy"
)

// CreateWebcam creates a new webcam
func (s *HubService) CreateWebcam(ctx context.Context, webcam *models.Webcam) error {
	if webcam.ID == "" {
		return errors.NewValidationError("webcam id is required", nil)
	}
	webcam.RefreshCapabilities()
	now := s.clock.Now()
	webcam.CreatedAt = now
	webcam.UpdatedAt = now
	if err := s.Webcams.Create(ctx, webcam); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Created webcam %s (live=%t)", webcam.ID, webcam.LiveStream)
	return nil
}

// GetWebcam retrieves a webcam by ID
func (s *HubService) GetWebcam(ctx context.Context, id string) (*models.Webcam, error) {
	return s.Webcams.Get(ctx, id)
}

// ListWebcams returns all webcams
func (s *HubService) ListWebcams(ctx context.Context) ([]*models.Webcam, error) {
	return s.Webcams.List(ctx)
}

// UpdateWebcam merges the non-zero fields of the update into the stored webcam.
func (s *HubService) UpdateWebcam(ctx context.Context, id string, update *models.Webcam) (*models.Webcam, error) {
	existing, err := s.Webcams.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	roles := []string{"system"}
	updatedFields, _, err := struccy.UpdateStructFields(existing, update, roles, true, true)
	if err != nil {
		return nil, errors.NewInternalError("failed to merge webcam fields", err)
	}
	if len(updatedFields) == 0 {
		return existing, nil
	}
	existing.RefreshCapabilities()
	existing.UpdatedAt = s.clock.Now()
	if err := s.Webcams.Update(ctx, existing); err != nil {
		return nil, err
	}
	nuts.L.Infof("[HubService] Updated webcam %s fields %v", id, updatedFields)
	return existing, nil
}

// DeleteWebcam removes a webcam.
func (s *HubService) DeleteWebcam(ctx context.Context, id string) error {
	if err := s.Webcams.Delete(ctx, id); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Deleted webcam %s", id)
	return nil
}
