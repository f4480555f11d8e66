package mysqldialect

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers this package cares about.
const (
	errNoSuchTable            = 1146
	errSyntaxOrMissingSupport = 1064
)

// NoSuchTableError is returned when a reflected table does not exist on the
// server (error 1146).
type NoSuchTableError struct {
	Name string
}

func (e *NoSuchTableError) Error() string {
	return fmt.Sprintf("no such table: %s", e.Name)
}

// ArgumentError reports a malformed construction call, e.g. a DOUBLE with
// only one of precision/scale supplied.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return e.Msg }

func argumentErrorf(format string, args ...any) error {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidValueError reports a bound value rejected by strict client-side
// validation, e.g. an out-of-range ENUM value.
type InvalidValueError struct {
	Msg string
}

func (e *InvalidValueError) Error() string { return e.Msg }

// serverErrorCode extracts the MySQL error number from a driver error, or 0
// if err did not originate from the server.
func serverErrorCode(err error) uint16 {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number
	}
	return 0
}
