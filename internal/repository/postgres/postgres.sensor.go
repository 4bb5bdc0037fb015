// FilePath: internal/repository/postgres/postgres.sensor.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

type SensorRepo struct {
	PostgresBaseRepo
}

func NewSensorRepository(db database.DB) *SensorRepo {
	repo := &PostgresBaseRepo{db: db}
	return &SensorRepo{PostgresBaseRepo: *repo}
}

func (r *SensorRepo) Create(ctx context.Context, sensor *models.Sensor) error {
	query := `
		INSERT INTO sensors (
			id, hardware, type, name, address,
			limit_min, limit_max, alarm_min, alarm_max, max_diff,
			exclude_avg, calibration, created_at, updated_at
		) VALUES (
			:id, :hardware, :type, :name, :address,
			:limit_min, :limit_max, :alarm_min, :alarm_max, :max_diff,
			:exclude_avg, :calibration, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, sensor)
	if err != nil {
		return errors.NewDatabaseError("failed to create sensor", err)
	}
	return nil
}

func (r *SensorRepo) Get(ctx context.Context, id string) (*models.Sensor, error) {
	sensor := &models.Sensor{}
	query := `SELECT * FROM sensors WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, sensor, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("sensor not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get sensor", err)
	}
	return sensor, nil
}

func (r *SensorRepo) Update(ctx context.Context, sensor *models.Sensor) error {
	query := `
		UPDATE sensors SET
			hardware = :hardware,
			type = :type,
			name = :name,
			address = :address,
			limit_min = :limit_min,
			limit_max = :limit_max,
			alarm_min = :alarm_min,
			alarm_max = :alarm_max,
			max_diff = :max_diff,
			exclude_avg = :exclude_avg,
			calibration = :calibration,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, sensor)
	if err != nil {
		return errors.NewDatabaseError("failed to update sensor", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("sensor not found", nil)
	}

	return nil
}

func (r *SensorRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sensors WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete sensor", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("sensor not found", nil)
	}

	return nil
}

func (r *SensorRepo) List(ctx context.Context) ([]*models.Sensor, error) {
	sensors := []*models.Sensor{}
	query := `SELECT * FROM sensors ORDER BY created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &sensors, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list sensors", err)
	}

	return sensors, nil
}
