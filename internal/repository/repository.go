package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const queryTimeout = 3 * time.Second

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Services map it to the same conflict error as their pre-checks,
// so concurrent creates on one uniqueness key lose the race cleanly.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
