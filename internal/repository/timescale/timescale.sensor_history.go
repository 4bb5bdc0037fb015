// FilePath: internal/repository/timescale/timescale.sensor_history.go
package timescale

import (
	"context"
	"database/sql"
	"time"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

type SensorHistoryRepo struct {
	TimescaleBaseRepo
}

func NewSensorHistoryRepository(db database.DB) (*SensorHistoryRepo, error) {
	repo := &SensorHistoryRepo{TimescaleBaseRepo: TimescaleBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SensorHistoryRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sensor_history (
			sensor_id TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			limit_min DOUBLE PRECISION NOT NULL,
			limit_max DOUBLE PRECISION NOT NULL,
			alarm_min DOUBLE PRECISION NOT NULL,
			alarm_max DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (sensor_id, timestamp)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_history_sensor_timestamp
         ON sensor_history(sensor_id, timestamp DESC)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize schema", err)
		}
	}

	r.tryHypertable("sensor_history")
	return nil
}

// Insert adds a new bucket row. A second insert for the same
// (sensor_id, timestamp) bucket returns a conflict error so the caller can
// re-read and merge instead.
func (r *SensorHistoryRepo) Insert(ctx context.Context, row *models.SensorHistory) error {
	query := `
		INSERT INTO sensor_history (
			sensor_id, timestamp, value, limit_min, limit_max, alarm_min, alarm_max
		) VALUES (
			:sensor_id, :timestamp, :value, :limit_min, :limit_max, :alarm_min, :alarm_max
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, row)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("sensor history bucket already exists", err)
		}
		return errors.NewDatabaseError("failed to insert sensor history", err)
	}
	return nil
}

// UpdateBucket rewrites the value and threshold snapshot of an existing
// bucket row.
func (r *SensorHistoryRepo) UpdateBucket(ctx context.Context, row *models.SensorHistory) error {
	query := `
		UPDATE sensor_history SET
			value = :value,
			limit_min = :limit_min,
			limit_max = :limit_max,
			alarm_min = :alarm_min,
			alarm_max = :alarm_max
		WHERE sensor_id = :sensor_id AND timestamp = :timestamp`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, row)
	if err != nil {
		return errors.NewDatabaseError("failed to update sensor history", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("sensor history bucket not found", nil)
	}

	return nil
}

func (r *SensorHistoryRepo) GetBucket(ctx context.Context, sensorID string, ts time.Time) (*models.SensorHistory, error) {
	row := &models.SensorHistory{}
	query := `
		SELECT sensor_id, timestamp, value, limit_min, limit_max, alarm_min, alarm_max
		FROM sensor_history
		WHERE sensor_id = $1 AND timestamp = $2`

	err := r.db.GetDB().GetContext(ctx, row, query, sensorID, ts)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("sensor history bucket not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get sensor history bucket", err)
	}
	return row, nil
}

// LatestSince returns the newest row at or after min. The query is bounded
// by the staleness window, never a full-history scan.
func (r *SensorHistoryRepo) LatestSince(ctx context.Context, sensorID string, min time.Time) (*models.SensorHistory, error) {
	row := &models.SensorHistory{}
	query := `
		SELECT sensor_id, timestamp, value, limit_min, limit_max, alarm_min, alarm_max
		FROM sensor_history
		WHERE sensor_id = $1 AND timestamp >= $2
		ORDER BY timestamp DESC
		LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, row, query, sensorID, min)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("no sensor history in window", err)
		}
		return nil, errors.NewDatabaseError("failed to get latest sensor history", err)
	}
	return row, nil
}

func (r *SensorHistoryRepo) ListRange(ctx context.Context, sensorID string, start, end time.Time) ([]models.SensorHistory, error) {
	rows := []models.SensorHistory{}
	query := `
		SELECT sensor_id, timestamp, value, limit_min, limit_max, alarm_min, alarm_max
		FROM sensor_history
		WHERE sensor_id = $1 AND timestamp BETWEEN $2 AND $3
		ORDER BY timestamp DESC`

	err := r.db.GetDB().SelectContext(ctx, &rows, query, sensorID, start, end)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list sensor history", err)
	}
	return rows, nil
}

func (r *SensorHistoryRepo) DeleteBySensorID(ctx context.Context, sensorID string) error {
	query := `DELETE FROM sensor_history WHERE sensor_id = $1`

	_, err := r.db.GetDB().ExecContext(ctx, query, sensorID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete sensor history", err)
	}
	return nil
}
