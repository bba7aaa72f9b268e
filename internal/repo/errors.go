package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound       = errors.New("product not found")
	ErrInvalidQuantityChange = errors.New("stock quantity cannot become negative")
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")
	ErrUserNotFound          = errors.New("user not found")
	// ErrNotFound covers taxonomy entries, slides and translations.
	ErrNotFound = errors.New("record not found")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	return hasPgCode(err, uniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return hasPgCode(err, foreignKeyViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
