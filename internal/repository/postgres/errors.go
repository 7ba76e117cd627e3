package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the dossier repositories translate to domain errors
const (
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

// IsPgNoRowsError reports a lookup that matched no case, argument, source or profile
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError reports a reference to a missing case, parent or source
func IsPgForeignKeyError(err error) bool {
	return pgErrorCode(err) == codeForeignKeyViolation
}

// IsPgInvalidTextError reports a value Postgres could not cast, such as a
// parent ID that is not a UUID.
func IsPgInvalidTextError(err error) bool {
	return pgErrorCode(err) == codeInvalidText
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
