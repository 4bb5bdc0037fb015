// FilePath: internal/repository/postgres/postgres.setting.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

type SettingRepo struct {
	PostgresBaseRepo
}

func NewSettingRepository(db database.DB) *SettingRepo {
	repo := &PostgresBaseRepo{db: db}
	return &SettingRepo{PostgresBaseRepo: *repo}
}

func (r *SettingRepo) Get(ctx context.Context, id string) (*models.Setting, error) {
	setting := &models.Setting{}
	query := `SELECT * FROM settings WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, setting, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("setting not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get setting", err)
	}
	return setting, nil
}

// Set upserts a setting, settings have no separate create path.
func (r *SettingRepo) Set(ctx context.Context, setting *models.Setting) error {
	query := `
		INSERT INTO settings (id, value)
		VALUES (:id, :value)
		ON CONFLICT (id) DO UPDATE SET value = EXCLUDED.value`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, setting)
	if err != nil {
		return errors.NewDatabaseError("failed to set setting", err)
	}
	return nil
}

func (r *SettingRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM settings WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete setting", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("setting not found", nil)
	}

	return nil
}

func (r *SettingRepo) List(ctx context.Context) ([]*models.Setting, error) {
	settings := []*models.Setting{}
	query := `SELECT * FROM settings ORDER BY id`

	err := r.db.GetDB().SelectContext(ctx, &settings, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list settings", err)
	}

	return settings, nil
}
