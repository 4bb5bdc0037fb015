// FilePath: internal/repository/postgres/postgres.area.go
package postgres

import (
	"context"
	"database/sql"

	nuts "github.com/vaudience/go-nuts"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

type AreaRepo struct {
	PostgresBaseRepo
}

func NewAreaRepository(db database.DB) *AreaRepo {
	repo := &PostgresBaseRepo{db: db}
	return &AreaRepo{PostgresBaseRepo: *repo}
}

func (r *AreaRepo) Create(ctx context.Context, area *models.Area) error {
	query := `
		INSERT INTO areas (
			id, enclosure_id, name, type, mode, setup, state,
			created_at, updated_at
		) VALUES (
			:id, :enclosure_id, :name, :type, :mode, :setup, :state,
			:created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, area)
	if err != nil {
		return errors.NewDatabaseError("failed to create area", err)
	}
	return nil
}

func (r *AreaRepo) Get(ctx context.Context, id string) (*models.Area, error) {
	area := &models.Area{}
	query := `SELECT * FROM areas WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, area, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("area not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get area", err)
	}
	return area, nil
}

func (r *AreaRepo) Update(ctx context.Context, area *models.Area) error {
	query := `
		UPDATE areas SET
			name = :name,
			type = :type,
			mode = :mode,
			setup = :setup,
			state = :state,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, area)
	if err != nil {
		return errors.NewDatabaseError("failed to update area", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("area not found", nil)
	}

	return nil
}

func (r *AreaRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM areas WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete area", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("area not found", nil)
	}

	return nil
}

func (r *AreaRepo) ListByEnclosure(ctx context.Context, enclosureID string) ([]*models.Area, error) {
	areas := []*models.Area{}
	query := `SELECT * FROM areas WHERE enclosure_id = $1 ORDER BY created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &areas, query, enclosureID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list areas", err)
	}

	return areas, nil
}

func (r *AreaRepo) DeleteByEnclosure(ctx context.Context, enclosureID string) error {
	query := `DELETE FROM areas WHERE enclosure_id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, enclosureID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete areas", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	nuts.L.Infof("[AreaRepo] Deleted %d areas for enclosure %s", rows, enclosureID)
	return nil
}
