// Sentinel errors shared across repositories so services can branch on
// failure cause instead of matching driver messages.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert or update trips a unique
// constraint (usernames, emails, slugs, one review per author+title).
// For concurrent review creation the constraint, not the handler
// pre-check, is the source of truth.
var ErrDuplicate = errors.New("duplicate record")

// pg unique_violation
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
