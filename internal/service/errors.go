package service

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stemsi/teachpay-backend/internal/payroll"
)

// Domain errors shared by the services. ErrNotFound is the payroll
// sentinel so one check covers both CRUD lookups and report inputs.
var (
	ErrNotFound             = payroll.ErrNotFound
	ErrConflict             = errors.New("resource already exists")
	ErrAlreadyConfigured    = errors.New("academic year is already configured")
	ErrDependencyExists     = errors.New("resource is still referenced")
	ErrInvalidReference     = errors.New("referenced resource does not exist")
	ErrClassAlreadyAssigned = errors.New("course class already has a teacher")
	ErrInvalidDateRange     = errors.New("end date must be after start date")
	ErrCannotDeleteSelf     = errors.New("cannot delete the signed-in account")
	ErrTeacherLinkRequired  = errors.New("teacher accounts must reference a teacher")
	ErrInvalidExportParams  = errors.New("export parameters do not match the report kind")
	ErrExportNotReady       = errors.New("export has not finished")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// writeErr classifies an insert or update failure.
func writeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	}
	switch pgCode(err) {
	case pgUniqueViolation:
		return ErrConflict
	case pgForeignKeyViolation:
		return ErrInvalidReference
	}
	return err
}

// readErr classifies a lookup failure.
func readErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// deleteErr classifies a delete failure.
func deleteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case pgCode(err) == pgForeignKeyViolation:
		return ErrDependencyExists
	}
	return err
}
