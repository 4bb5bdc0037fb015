// FilePath: internal/repository/postgres/postgres.button.go
package postgres

import (
	"context"
	"database/sql"

	nuts "github.com/vaudience/go-nuts"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

type ButtonRepo struct {
	PostgresBaseRepo
}

func NewButtonRepository(db database.DB) *ButtonRepo {
	repo := &PostgresBaseRepo{db: db}
	return &ButtonRepo{PostgresBaseRepo: *repo}
}

func (r *ButtonRepo) Create(ctx context.Context, button *models.Button) error {
	query := `
		INSERT INTO buttons (
			id, hardware, name, address, enclosure_id, created_at, updated_at
		) VALUES (
			:id, :hardware, :name, :address, :enclosure_id, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, button)
	if err != nil {
		return errors.NewDatabaseError("failed to create button", err)
	}
	return nil
}

func (r *ButtonRepo) Get(ctx context.Context, id string) (*models.Button, error) {
	button := &models.Button{}
	query := `SELECT * FROM buttons WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, button, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("button not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get button", err)
	}
	return button, nil
}

func (r *ButtonRepo) Update(ctx context.Context, button *models.Button) error {
	query := `
		UPDATE buttons SET
			hardware = :hardware,
			name = :name,
			address = :address,
			enclosure_id = :enclosure_id,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, button)
	if err != nil {
		return errors.NewDatabaseError("failed to update button", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("button not found", nil)
	}

	return nil
}

func (r *ButtonRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM buttons WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete button", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("button not found", nil)
	}

	return nil
}

func (r *ButtonRepo) List(ctx context.Context) ([]*models.Button, error) {
	buttons := []*models.Button{}
	query := `SELECT * FROM buttons ORDER BY created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &buttons, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list buttons", err)
	}

	return buttons, nil
}

func (r *ButtonRepo) ListByEnclosure(ctx context.Context, enclosureID string) ([]*models.Button, error) {
	buttons := []*models.Button{}
	query := `SELECT * FROM buttons WHERE enclosure_id = $1 ORDER BY created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &buttons, query, enclosureID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list buttons", err)
	}

	return buttons, nil
}

// DetachFromEnclosure clears the enclosure reference on all door buttons of
// an enclosure. Buttons are hardware config, deleting the enclosure must not
// delete them.
func (r *ButtonRepo) DetachFromEnclosure(ctx context.Context, enclosureID string) error {
	query := `UPDATE buttons SET enclosure_id = NULL WHERE enclosure_id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, enclosureID)
	if err != nil {
		return errors.NewDatabaseError("failed to detach buttons", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	nuts.L.Infof("[ButtonRepo] Detached %d buttons from enclosure %s", rows, enclosureID)
	return nil
}
