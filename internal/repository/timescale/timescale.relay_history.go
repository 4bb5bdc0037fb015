// FilePath: internal/repository/timescale/timescale.relay_history.go
package timescale

import (
	"context"
	"database/sql"
	"time"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

type RelayHistoryRepo struct {
	TimescaleBaseRepo
}

func NewRelayHistoryRepository(db database.DB) (*RelayHistoryRepo, error) {
	repo := &RelayHistoryRepo{TimescaleBaseRepo: TimescaleBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *RelayHistoryRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS relay_history (
			relay_id TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			wattage DOUBLE PRECISION NOT NULL,
			flow DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (relay_id, timestamp)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_relay_history_relay_timestamp
         ON relay_history(relay_id, timestamp DESC)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize schema", err)
		}
	}

	r.tryHypertable("relay_history")
	return nil
}

func (r *RelayHistoryRepo) Insert(ctx context.Context, row *models.RelayHistory) error {
	query := `
		INSERT INTO relay_history (relay_id, timestamp, value, wattage, flow)
		VALUES (:relay_id, :timestamp, :value, :wattage, :flow)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, row)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("relay history row already exists", err)
		}
		return errors.NewDatabaseError("failed to insert relay history", err)
	}
	return nil
}

func (r *RelayHistoryRepo) LatestSince(ctx context.Context, relayID string, min time.Time) (*models.RelayHistory, error) {
	row := &models.RelayHistory{}
	query := `
		SELECT relay_id, timestamp, value, wattage, flow
		FROM relay_history
		WHERE relay_id = $1 AND timestamp >= $2
		ORDER BY timestamp DESC
		LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, row, query, relayID, min)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("no relay history in window", err)
		}
		return nil, errors.NewDatabaseError("failed to get latest relay history", err)
	}
	return row, nil
}

func (r *RelayHistoryRepo) ListRange(ctx context.Context, relayID string, start, end time.Time) ([]models.RelayHistory, error) {
	rows := []models.RelayHistory{}
	query := `
		SELECT relay_id, timestamp, value, wattage, flow
		FROM relay_history
		WHERE relay_id = $1 AND timestamp BETWEEN $2 AND $3
		ORDER BY timestamp DESC`

	err := r.db.GetDB().SelectContext(ctx, &rows, query, relayID, start, end)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list relay history", err)
	}
	return rows, nil
}

func (r *RelayHistoryRepo) DeleteByRelayID(ctx context.Context, relayID string) error {
	query := `DELETE FROM relay_history WHERE relay_id = $1`

	_, err := r.db.GetDB().ExecContext(ctx, query, relayID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete relay history", err)
	}
	return nil
}
