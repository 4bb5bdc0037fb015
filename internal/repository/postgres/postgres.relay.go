// FilePath: internal/repository/postgres/postgres.relay.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

type RelayRepo struct {
	PostgresBaseRepo
}

func NewRelayRepository(db database.DB) *RelayRepo {
	repo := &PostgresBaseRepo{db: db}
	return &RelayRepo{PostgresBaseRepo: *repo}
}

func (r *RelayRepo) Create(ctx context.Context, relay *models.Relay) error {
	query := `
		INSERT INTO relays (
			id, hardware, name, address, wattage, flow, dimmer,
			manual_mode, calibration, created_at, updated_at
		) VALUES (
			:id, :hardware, :name, :address, :wattage, :flow, :dimmer,
			:manual_mode, :calibration, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, relay)
	if err != nil {
		return errors.NewDatabaseError("failed to create relay", err)
	}
	return nil
}

func (r *RelayRepo) Get(ctx context.Context, id string) (*models.Relay, error) {
	relay := &models.Relay{}
	query := `SELECT * FROM relays WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, relay, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("relay not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get relay", err)
	}
	return relay, nil
}

func (r *RelayRepo) Update(ctx context.Context, relay *models.Relay) error {
	query := `
		UPDATE relays SET
			hardware = :hardware,
			name = :name,
			address = :address,
			wattage = :wattage,
			flow = :flow,
			dimmer = :dimmer,
			manual_mode = :manual_mode,
			calibration = :calibration,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, relay)
	if err != nil {
		return errors.NewDatabaseError("failed to update relay", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("relay not found", nil)
	}

	return nil
}

func (r *RelayRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM relays WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete relay", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("relay not found", nil)
	}

	return nil
}

func (r *RelayRepo) List(ctx context.Context) ([]*models.Relay, error) {
	relays := []*models.Relay{}
	query := `SELECT * FROM relays ORDER BY created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &relays, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list relays", err)
	}

	return relays, nil
}
