// FilePath: internal/repository/postgres/postgres.audiofile.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"
)

type AudiofileRepo struct {
	PostgresBaseRepo
}

func NewAudiofileRepository(db database.DB) *AudiofileRepo {
	repo := &PostgresBaseRepo{db: db}
	return &AudiofileRepo{PostgresBaseRepo: *repo}
}

func (r *AudiofileRepo) Create(ctx context.Context, audiofile *models.Audiofile) error {
	query := `
		INSERT INTO audiofiles (id, name, filename, duration, filesize)
		VALUES (:id, :name, :filename, :duration, :filesize)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, audiofile)
	if err != nil {
		return errors.NewDatabaseError("failed to create audiofile", err)
	}
	return nil
}

func (r *AudiofileRepo) Get(ctx context.Context, id string) (*models.Audiofile, error) {
	audiofile := &models.Audiofile{}
	query := `SELECT * FROM audiofiles WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, audiofile, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("audiofile not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get audiofile", err)
	}
	return audiofile, nil
}

func (r *AudiofileRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM audiofiles WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete audiofile", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("audiofile not found", nil)
	}

	return nil
}

func (r *AudiofileRepo) List(ctx context.Context) ([]*models.Audiofile, error) {
	audiofiles := []*models.Audiofile{}
	query := `SELECT * FROM audiofiles ORDER BY name`

	err := r.db.GetDB().SelectContext(ctx, &audiofiles, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list audiofiles", err)
	}

	return audiofiles, nil
}
