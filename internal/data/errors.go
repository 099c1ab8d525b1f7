package data

import (
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Shared sentinel errors for data-layer repositories.
var (
	// ErrResultNotFound is returned when no record exists for a job ID.
	ErrResultNotFound = errors.New("notebook result not found")
	// ErrStoreUnavailable is returned when the result store cannot be reached.
	ErrStoreUnavailable = errors.New("result store unavailable")
	// ErrJobIDRequired is returned when an operation is missing its job ID.
	ErrJobIDRequired = errors.New("job_id is required")
)

// classifyStoreErr tags connectivity failures with ErrStoreUnavailable so
// callers can distinguish an unreachable store from a data-level error.
func classifyStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) {
		return errors.Join(ErrStoreUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsConnectionException(pgErr.Code) {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return err
}
