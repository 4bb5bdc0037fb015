// FilePath: internal/hubservice/hubservice.enclosure.go
package hubservice

import (
	"context"

	"github.com/google/uuid"
	nuts "github.com/vaudience/go-nuts"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"

	"github.com/itsatony/struccy"
)

// CreateEnclosure creates a new enclosure. The image path is normalized so
// its filename matches the enclosure id.
func (s *HubService) CreateEnclosure(ctx context.Context, enclosure *models.Enclosure) error {
	if enclosure.Name == "" {
		return errors.NewValidationError("enclosure name is required", nil)
	}
	if enclosure.ID == "" {
		enclosure.ID = uuid.NewString()
	}
	enclosure.NormalizeImage()
	now := s.clock.Now()
	enclosure.CreatedAt = now
	enclosure.UpdatedAt = now
	if err := s.Enclosures.Create(ctx, enclosure); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Created enclosure %s (%s)", enclosure.ID, enclosure.Name)
	return nil
}

// GetEnclosure retrieves an enclosure by ID
func (s *HubService) GetEnclosure(ctx context.Context, id string) (*models.Enclosure, error) {
	return s.Enclosures.Get(ctx, id)
}

// ListEnclosures returns a page of enclosures
func (s *HubService) ListEnclosures(ctx context.Context, offset, limit int) ([]*models.Enclosure, error) {
	return s.Enclosures.List(ctx, offset, limit)
}

// UpdateEnclosure merges the non-zero fields of the update into the stored
// enclosure and re-normalizes the image path.
func (s *HubService) UpdateEnclosure(ctx context.Context, id string, update *models.Enclosure) (*models.Enclosure, error) {
	existing, err := s.Enclosures.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	roles := []string{"system"}
	updatedFields, _, err := struccy.UpdateStructFields(existing, update, roles, true, true)
	if err != nil {
		return nil, errors.NewInternalError("failed to merge enclosure fields", err)
	}
	if len(updatedFields) == 0 {
		return existing, nil
	}
	existing.NormalizeImage()
	existing.UpdatedAt = s.clock.Now()
	if err := s.Enclosures.Update(ctx, existing); err != nil {
		return nil, err
	}
	nuts.L.Infof("[HubService] Updated enclosure %s fields %v", id, updatedFields)
	return existing, nil
}

// DeleteEnclosure removes an enclosure, its areas and its image, and
// detaches its buttons.
func (s *HubService) DeleteEnclosure(ctx context.Context, id string) error {
	return s.Cleanup.DeleteEnclosure(ctx, id)
}

// CreateArea creates a new area inside an enclosure.
func (s *HubService) CreateArea(ctx context.Context, area *models.Area) error {
	if area.Name == "" {
		return errors.NewValidationError("area name is required", nil)
	}
	if !models.ValidAreaType(area.Type) {
		return errors.NewValidationError("invalid area type: "+area.Type, nil)
	}
	if _, err := s.Enclosures.Get(ctx, area.EnclosureID); err != nil {
		return err
	}
	if area.ID == "" {
		area.ID = uuid.NewString()
	}
	if area.Mode == "" {
		area.Mode = models.AreaModeDisabled
	}
	now := s.clock.Now()
	area.CreatedAt = now
	area.UpdatedAt = now
	if err := s.Areas.Create(ctx, area); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Created area %s (%s) in enclosure %s", area.ID, area.Type, area.EnclosureID)
	return nil
}

// GetArea retrieves an area by ID
func (s *HubService) GetArea(ctx context.Context, id string) (*models.Area, error) {
	return s.Areas.Get(ctx, id)
}

// ListAreas returns all areas of an enclosure
func (s *HubService) ListAreas(ctx context.Context, enclosureID string) ([]*models.Area, error) {
	if _, err := s.Enclosures.Get(ctx, enclosureID); err != nil {
		return nil, err
	}
	return s.Areas.ListByEnclosure(ctx, enclosureID)
}

// UpdateArea merges the non-zero fields of the update into the stored area.
func (s *HubService) UpdateArea(ctx context.Context, id string, update *models.Area) (*models.Area, error) {
	existing, err := s.Areas.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	roles := []string{"system"}
	updatedFields, _, err := struccy.UpdateStructFields(existing, update, roles, true, true)
	if err != nil {
		return nil, errors.NewInternalError("failed to merge area fields", err)
	}
	if len(updatedFields) == 0 {
		return existing, nil
	}
	if !models.ValidAreaType(existing.Type) {
		return nil, errors.NewValidationError("invalid area type: "+existing.Type, nil)
	}
	existing.UpdatedAt = s.clock.Now()
	if err := s.Areas.Update(ctx, existing); err != nil {
		return nil, err
	}
	nuts.L.Infof("[HubService] Updated area %s fields %v", id, updatedFields)
	return existing, nil
}

// DeleteArea removes an area.
func (s *HubService) DeleteArea(ctx context.Context, id string) error {
	if err := s.Areas.Delete(ctx, id); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Deleted area %s", id)
	return nil
}
