// FilePath: internal/repository/postgres/postgres.webcam.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

type WebcamRepo struct {
	PostgresBaseRepo
}

func NewWebcamRepository(db database.DB) *WebcamRepo {
	repo := &PostgresBaseRepo{db: db}
	return &WebcamRepo{PostgresBaseRepo: *repo}
}

func (r *WebcamRepo) Create(ctx context.Context, webcam *models.Webcam) error {
	query := `
		INSERT INTO webcams (
			id, hardware, name, address, width, height, rotation, awb,
			archive, archive_door, archive_light,
			motion_boxes, motion_threshold, motion_area, motion_frame,
			markers, live_stream, created_at, updated_at
		) VALUES (
			:id, :hardware, :name, :address, :width, :height, :rotation, :awb,
			:archive, :archive_door, :archive_light,
			:motion_boxes, :motion_threshold, :motion_area, :motion_frame,
			:markers, :live_stream, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, webcam)
	if err != nil {
		return errors.NewDatabaseError("failed to create webcam", err)
	}
	return nil
}

func (r *WebcamRepo) Get(ctx context.Context, id string) (*models.Webcam, error) {
	webcam := &models.Webcam{}
	query := `SELECT * FROM webcams WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, webcam, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("webcam not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get webcam", err)
	}
	return webcam, nil
}

func (r *WebcamRepo) Update(ctx context.Context, webcam *models.Webcam) error {
	query := `
		UPDATE webcams SET
			hardware = :hardware,
			name = :name,
			address = :address,
			width = :width,
			height = :height,
			rotation = :rotation,
			awb = :awb,
			archive = :archive,
			archive_door = :archive_door,
			archive_light = :archive_light,
			motion_boxes = :motion_boxes,
			motion_threshold = :motion_threshold,
			motion_area = :motion_area,
			motion_frame = :motion_frame,
			markers = :markers,
			live_stream = :live_stream,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, webcam)
	if err != nil {
		return errors.NewDatabaseError("failed to update webcam", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("webcam not found", nil)
	}

	return nil
}

func (r *WebcamRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM webcams WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete webcam", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("webcam not found", nil)
	}

	return nil
}

func (r *WebcamRepo) List(ctx context.Context) ([]*models.Webcam, error) {
	webcams := []*models.Webcam{}
	query := `SELECT * FROM webcams ORDER BY created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &webcams, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list webcams", err)
	}

	return webcams, nil
}
