package timescale

import (
	"context"

	"github.com/lib/pq"
	nuts "github.com/vaudience/go-nuts"

	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/errors"
)

// pg error code for unique constraint violations
const uniqueViolation = "23505"

type TimescaleBaseRepo struct {
	db database.DB
}

func (r *TimescaleBaseRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to begin transaction", err)
	}
	return tx, nil
}

func (r *TimescaleBaseRepo) Ping(ctx context.Context) error {
	if err := r.db.GetDB().PingContext(ctx); err != nil {
		return errors.NewDatabaseError("failed to ping database", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a primary-key conflict, i.e.
// another writer already owns the (owner, timestamp) bucket.
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

// tryHypertable converts a ledger table into a hypertable when the
// timescaledb extension is present. Plain tables work the same for a
// single-node deployment, so failure only warns.
func (r *TimescaleBaseRepo) tryHypertable(table string) {
	query := `SELECT create_hypertable('` + table + `', 'timestamp',
		chunk_time_interval => INTERVAL '1 day',
		if_not_exists => TRUE
	)`
	if _, err := r.db.GetDB().Exec(query); err != nil {
		nuts.L.Warnf("[TimescaleDB] Hypertable for %s not created: %v", table, err)
	}
}
