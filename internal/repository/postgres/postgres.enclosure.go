// FilePath: internal/repository/postgres/postgres.enclosure.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

type EnclosureRepo struct {
	PostgresBaseRepo
}

func NewEnclosureRepository(db database.DB) *EnclosureRepo {
	repo := &PostgresBaseRepo{db: db}
	return &EnclosureRepo{PostgresBaseRepo: *repo}
}

func (r *EnclosureRepo) Create(ctx context.Context, enclosure *models.Enclosure) error {
	query := `
		INSERT INTO enclosures (
			id, name, image, description, created_at, updated_at
		) VALUES (
			:id, :name, :image, :description, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, enclosure)
	if err != nil {
		return errors.NewDatabaseError("failed to create enclosure", err)
	}
	return nil
}

func (r *EnclosureRepo) Get(ctx context.Context, id string) (*models.Enclosure, error) {
	enclosure := &models.Enclosure{}
	query := `SELECT * FROM enclosures WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, enclosure, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("enclosure not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get enclosure", err)
	}
	return enclosure, nil
}

func (r *EnclosureRepo) Update(ctx context.Context, enclosure *models.Enclosure) error {
	query := `
		UPDATE enclosures SET
			name = :name,
			image = :image,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, enclosure)
	if err != nil {
		return errors.NewDatabaseError("failed to update enclosure", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("enclosure not found", nil)
	}

	return nil
}

func (r *EnclosureRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM enclosures WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete enclosure", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("enclosure not found", nil)
	}

	return nil
}

func (r *EnclosureRepo) List(ctx context.Context, offset, limit int) ([]*models.Enclosure, error) {
	enclosures := []*models.Enclosure{}
	query := `SELECT * FROM enclosures ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.GetDB().SelectContext(ctx, &enclosures, query, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list enclosures", err)
	}

	return enclosures, nil
}
