// Package sqlerr classifies PostgreSQL driver errors.
//
// It parses the SQLSTATE codes reported by the database and converts
// constraint violations into client-facing validation errors (e.g. a
// unique violation into a "already exists" 400 response), while any
// other driver failure stays an opaque 500 so no internal detail leaks.
package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrsarm/echo-contrib-rest/errs"
)

// Code is the category a SQLSTATE maps to.
type Code int

const (
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	ConnectionFailure
)

// MapCode maps a SQLSTATE code into a Code category. Class 08 states
// (connection exceptions) all map to ConnectionFailure.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	}
	if strings.HasPrefix(sqlstate, "08") {
		return ConnectionFailure
	}
	return Other
}

// Classify reports the Code of the *pgconn.PgError found in the error
// chain, or Other when the error doesn't come from the server.
func Classify(err error) Code {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	return Other
}

// ToAppError converts a low-level database error into an *errs.Error.
//
// Constraint violations describe a problem with the caller's input, so
// they become validation errors with a stable machine code
// (e.g. USER_ALREADY_EXISTS) and a user-friendly message. Everything
// else, connection failures included, becomes errs.DB so the client only
// receives the generic 500 body.
//
// Intended to be called in repositories after a DB write fails:
//
//	_, err = tx.Exec(ctx, "INSERT INTO users ...", ...)
//	if err != nil {
//	    return sqlerr.ToAppError(err)
//	}
func ToAppError(err error) *errs.Error {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return errs.DB(err)
	}

	code := MapCode(pgErr.Code)
	entity := entityName(pgErr.TableName, pgErr.ColumnName)
	switch code {
	case UniqueViolation:
		return errs.Validation(
			errorCode(pgErr.TableName, "ALREADY_EXISTS"),
			fmt.Sprintf("A %s with this %s already exists",
				entity, uniqueField(pgErr.ConstraintName)),
		)
	case ForeignKeyViolation:
		return errs.Validation(
			errorCode(pgErr.TableName, "NOT_FOUND"),
			fmt.Sprintf("The referenced %s does not exist", entity),
		)
	case NotNullViolation:
		return errs.Validation(
			errorCode(pgErr.TableName, "REQUIRED"),
			fmt.Sprintf("The %s is required", humanize(pgErr.ColumnName)),
		)
	case CheckViolation:
		return errs.Validation(
			errorCode(pgErr.TableName, "INVALID"),
			fmt.Sprintf("The %s value does not meet required conditions", entity),
		)
	default:
		return errs.DB(err)
	}
}

// errorCode builds a machine-readable code like USER_ALREADY_EXISTS out
// of the table name and the violation suffix. The table name is
// uppercased and crudely singularized.
func errorCode(tableName, suffix string) string {
	if tableName == "" {
		tableName = "RECORD"
	}
	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}
	return domain + "_" + suffix
}

// entityName picks the name the message will refer to: the column name
// without a trailing "_id" when present, otherwise the singularized
// table name, otherwise "record".
func entityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanize(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}
	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanize(entity)
	}
	return "record"
}

// uniqueField infers the column behind a unique constraint named with
// the "<table>_<column>_key" or "unique_<table>_<column>" conventions,
// falling back to "identifier".
func uniqueField(constraintName string) string {
	if constraintName == "" {
		return "identifier"
	}
	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return humanize(parts[len(parts)-1])
		}
	}
	trimmed := strings.TrimSuffix(strings.TrimSuffix(constraintName, "_key"), "_ukey")
	if trimmed != constraintName {
		parts := strings.Split(trimmed, "_")
		return humanize(parts[len(parts)-1])
	}
	return "identifier"
}

// humanize converts snake_case identifiers into title case,
// e.g. "first_name" -> "First Name".
func humanize(text string) string {
	if text == "" {
		return "field"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
