// FilePath: internal/repository/timescale/timescale.button_history.go
package timescale

import (
	"context"
	"database/sql"
	"time"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

type ButtonHistoryRepo struct {
	TimescaleBaseRepo
}

func NewButtonHistoryRepository(db database.DB) (*ButtonHistoryRepo, error) {
	repo := &ButtonHistoryRepo{TimescaleBaseRepo: TimescaleBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ButtonHistoryRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS button_history (
			button_id TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (button_id, timestamp)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_button_history_button_timestamp
         ON button_history(button_id, timestamp DESC)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize schema", err)
		}
	}

	r.tryHypertable("button_history")
	return nil
}

func (r *ButtonHistoryRepo) Insert(ctx context.Context, row *models.ButtonHistory) error {
	query := `
		INSERT INTO button_history (button_id, timestamp, value)
		VALUES (:button_id, :timestamp, :value)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, row)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("button history row already exists", err)
		}
		return errors.NewDatabaseError("failed to insert button history", err)
	}
	return nil
}

func (r *ButtonHistoryRepo) LatestSince(ctx context.Context, buttonID string, min time.Time) (*models.ButtonHistory, error) {
	row := &models.ButtonHistory{}
	query := `
		SELECT button_id, timestamp, value
		FROM button_history
		WHERE button_id = $1 AND timestamp >= $2
		ORDER BY timestamp DESC
		LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, row, query, buttonID, min)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("no button history in window", err)
		}
		return nil, errors.NewDatabaseError("failed to get latest button history", err)
	}
	return row, nil
}

func (r *ButtonHistoryRepo) ListRange(ctx context.Context, buttonID string, start, end time.Time) ([]models.ButtonHistory, error) {
	rows := []models.ButtonHistory{}
	query := `
		SELECT button_id, timestamp, value
		FROM button_history
		WHERE button_id = $1 AND timestamp BETWEEN $2 AND $3
		ORDER BY timestamp DESC`

	err := r.db.GetDB().SelectContext(ctx, &rows, query, buttonID, start, end)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list button history", err)
	}
	return rows, nil
}

func (r *ButtonHistoryRepo) DeleteByButtonID(ctx context.Context, buttonID string) error {
	query := `DELETE FROM button_history WHERE button_id = $1`

	_, err := r.db.GetDB().ExecContext(ctx, query, buttonID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete button history", err)
	}
	return nil
}
