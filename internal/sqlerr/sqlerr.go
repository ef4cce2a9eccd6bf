// Package sqlerr converts database driver errors into application errors.
//
// Both supported drivers are understood: Postgres errors arrive as
// *pgconn.PgError carrying a SQLSTATE, SQLite errors as sqlite3.Error with
// an extended result code and a "<KIND> constraint failed: table.column"
// message.
package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"fsanano/go-orders/internal/errs"
)

type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
)

// Error is a driver-independent view of a constraint failure.
type Error struct {
	Code         Code
	DatabaseCode string
	Message      string
	TableName    string
	ColumnName   string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sql error %s (%s): %s", e.Code, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a Postgres SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:         MapCode(src.Code),
		DatabaseCode: src.Code,
		Message:      src.Message,
		TableName:    src.TableName,
		ColumnName:   src.ColumnName,
		driverErr:    src,
	}
}

func ConvertSQLiteError(src sqlite3.Error) *Error {
	out := &Error{
		Code:         Other,
		DatabaseCode: fmt.Sprintf("%d", int(src.ExtendedCode)),
		Message:      src.Error(),
		driverErr:    src,
	}

	switch src.ExtendedCode {
	case sqlite3.ErrConstraintNotNull:
		out.Code = NotNullViolation
	case sqlite3.ErrConstraintForeignKey:
		out.Code = ForeignKeyViolation
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		out.Code = UniqueViolation
	case sqlite3.ErrConstraintCheck:
		out.Code = CheckViolation
	}

	out.TableName, out.ColumnName = constraintTarget(out.Message)
	return out
}

// constraintTarget extracts table and column from SQLite messages such as
// "NOT NULL constraint failed: user.first_name".
func constraintTarget(msg string) (table, column string) {
	_, target, ok := strings.Cut(msg, "constraint failed: ")
	if !ok {
		return "", ""
	}
	target, _, _ = strings.Cut(target, ",")
	table, column, ok = strings.Cut(strings.TrimSpace(target), ".")
	if !ok {
		return "", ""
	}
	return table, column
}

// HandleError converts a low-level database error into an *errs.HTTPError.
// Errors that are already *errs.HTTPError pass through unchanged.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var sqlErr *Error
	var pgErr *pgconn.PgError
	var liteErr sqlite3.Error
	switch {
	case errors.As(err, &pgErr):
		sqlErr = ConvertPgError(pgErr)
	case errors.As(err, &liteErr):
		sqlErr = ConvertSQLiteError(liteErr)
	default:
		return errs.NewInternalServerError().WithCause(err)
	}

	code := generateErrorCode(sqlErr.TableName, sqlErr.Code)
	message := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case NotNullViolation:
		fieldErrors := []errs.FieldError{{Field: strings.ToLower(sqlErr.ColumnName), Error: "is required"}}
		return errs.NewBadRequestError(message, &code, fieldErrors).WithCause(sqlErr)
	case ForeignKeyViolation, UniqueViolation, CheckViolation:
		return errs.NewBadRequestError(message, &code, nil).WithCause(sqlErr)
	default:
		return errs.NewInternalServerError().WithCause(sqlErr)
	}
}

// generateErrorCode builds <TABLE>_<ACTION>, e.g. USER_REQUIRED.
func generateErrorCode(tableName string, code Code) string {
	domain := "RECORD"
	if tableName != "" {
		domain = strings.ToUpper(tableName)
	}

	action := "ERROR"
	switch code {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return domain + "_" + action
}

func formatUserFriendlyMessage(e *Error) string {
	switch e.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName(e.TableName, e.ColumnName))
	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName(e.TableName, ""))
	case NotNullViolation:
		field := humanizeText(e.ColumnName)
		if field == "" {
			field = "field"
		}
		return fmt.Sprintf("The %s is required", field)
	case CheckViolation:
		if field := humanizeText(e.ColumnName); field != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", field)
		}
		return "One or more values do not meet required conditions"
	default:
		return "An error occurred while processing your request"
	}
}

// entityName prefers the "<entity>_id" column of a reference over the table.
func entityName(tableName, columnName string) string {
	if base, ok := strings.CutSuffix(strings.ToLower(columnName), "_id"); ok && base != "" {
		return strings.ToLower(humanizeText(base))
	}
	if tableName != "" {
		return strings.ToLower(humanizeText(tableName))
	}
	return "record"
}

// humanizeText turns "first_name" into "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
