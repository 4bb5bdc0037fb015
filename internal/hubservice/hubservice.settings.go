// FilePath: internal/hubservice/hubservice.settings.go
package hubservice

import (
	"context"

	nuts "github.com/vaudience/go-nuts"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

// GetSetting retrieves a setting by key
func (s *HubService) GetSetting(ctx context.Context, id string) (*models.Setting, error) {
	return s.Settings.Get(ctx, id)
}

// SetSetting inserts or replaces a setting value.
func (s *HubService) SetSetting(ctx context.Context, setting *models.Setting) error {
	if setting.ID == "" {
		return errors.NewValidationError("setting id is required", nil)
	}
	if err := s.Settings.Set(ctx, setting); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Set setting %s", setting.ID)
	return nil
}

// DeleteSetting removes a setting.
func (s *HubService) DeleteSetting(ctx context.Context, id string) error {
	return s.Settings.Delete(ctx, id)
}

// ListSettings returns all settings
func (s *HubService) ListSettings(ctx context.Context) ([]*models.Setting, error) {
	return s.Settings.List(ctx)
}

// CreateAudiofile registers an uploaded audio file.
func (s *HubService) CreateAudiofile(ctx context.Context, audiofile *models.Audiofile) error {
	if audiofile.ID == "" {
		return errors.NewValidationError("audiofile id is required", nil)
	}
	if audiofile.Filename == "" {
		return errors.NewValidationError("audiofile filename is required", nil)
	}
	if err := s.Audiofiles.Create(ctx, audiofile); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Registered audiofile %s (%s)", audiofile.ID, audiofile.Name)
	return nil
}

// GetAudiofile retrieves an audio file record by ID
func (s *HubService) GetAudiofile(ctx context.Context, id string) (*models.Audiofile, error) {
	return s.Audiofiles.Get(ctx, id)
}

// DeleteAudiofile removes an audio file record.
func (s *HubService) DeleteAudiofile(ctx context.Context, id string) error {
	return s.Audiofiles.Delete(ctx, id)
}

// ListAudiofiles returns all audio file records
func (s *HubService) ListAudiofiles(ctx context.Context) ([]*models.Audiofile, error) {
	return s.Audiofiles.List(ctx)
}
