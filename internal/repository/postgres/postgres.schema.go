// FilePath: internal/repository/postgres/postgres.schema.go
package postgres

import (
	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
)

// EnsureSchema creates the configuration entity tables if they do not
// exist yet. History tables live in the timescale package.
func EnsureSchema(db database.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS enclosures (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS areas (
			id UUID PRIMARY KEY,
			enclosure_id UUID NOT NULL REFERENCES enclosures(id),
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			mode TEXT NOT NULL,
			setup JSONB NOT NULL DEFAULT '{}',
			state JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS relays (
			id TEXT PRIMARY KEY,
			hardware TEXT NOT NULL,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			wattage DOUBLE PRECISION NOT NULL DEFAULT 0,
			flow DOUBLE PRECISION NOT NULL DEFAULT 0,
			dimmer BOOLEAN NOT NULL DEFAULT FALSE,
			manual_mode BOOLEAN NOT NULL DEFAULT FALSE,
			calibration JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sensors (
			id TEXT PRIMARY KEY,
			hardware TEXT NOT NULL,
			type TEXT NOT NULL,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			limit_min DOUBLE PRECISION NOT NULL DEFAULT 0,
			limit_max DOUBLE PRECISION NOT NULL DEFAULT 100,
			alarm_min DOUBLE PRECISION NOT NULL DEFAULT 0,
			alarm_max DOUBLE PRECISION NOT NULL DEFAULT 100,
			max_diff DOUBLE PRECISION NOT NULL DEFAULT 0,
			exclude_avg BOOLEAN NOT NULL DEFAULT FALSE,
			calibration JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS buttons (
			id TEXT PRIMARY KEY,
			hardware TEXT NOT NULL,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			enclosure_id UUID REFERENCES enclosures(id),
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS webcams (
			id TEXT PRIMARY KEY,
			hardware TEXT NOT NULL,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			rotation TEXT NOT NULL,
			awb TEXT NOT NULL,
			archive TEXT NOT NULL DEFAULT '',
			archive_door TEXT NOT NULL DEFAULT '',
			archive_light TEXT NOT NULL DEFAULT '',
			motion_boxes TEXT NOT NULL DEFAULT '',
			motion_threshold INTEGER NOT NULL DEFAULT 0,
			motion_area INTEGER NOT NULL DEFAULT 0,
			motion_frame TEXT NOT NULL DEFAULT '',
			markers JSONB NOT NULL DEFAULT '[]',
			live_stream BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id TEXT PRIMARY KEY,
			value TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS audiofiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			filename TEXT NOT NULL UNIQUE,
			duration DOUBLE PRECISION NOT NULL,
			filesize DOUBLE PRECISION NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_areas_enclosure ON areas(enclosure_id)`,
		`CREATE INDEX IF NOT EXISTS idx_buttons_enclosure ON buttons(enclosure_id)`,
	}

	for _, query := range queries {
		if _, err := db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize schema", err)
		}
	}
	return nil
}
