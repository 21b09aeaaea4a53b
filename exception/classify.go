package exception

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kbukum/errkit/errors"
	"github.com/kbukum/errkit/validation"
)

// Classifier converts a host error into an application error. It reports
// false when it does not recognize err.
type Classifier func(err error) (*errors.AppError, bool)

// PostgreSQL SQLSTATE codes handled by ClassifyPostgres.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// pgKeyDetail matches the column list in "Key (email)=(a@b.c) already exists."
var pgKeyDetail = regexp.MustCompile(`Key \(([^)]+)\)=`)

// DefaultClassifiers returns the built-in classifier chain in evaluation order.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		ClassifyAppError,
		ClassifyNoRows,
		ClassifyPostgres,
		ClassifyValidator,
		ClassifyJWT,
		ClassifyJSON,
		ClassifyPermission,
	}
}

// ClassifyAppError accepts errors that already are (or wrap) an AppError.
func ClassifyAppError(err error) (*errors.AppError, bool) {
	return errors.AsAppError(err)
}

// ClassifyNoRows maps missing rows from database/sql and pgx to not found.
func ClassifyNoRows(err error) (*errors.AppError, bool) {
	if stderrors.Is(err, sql.ErrNoRows) || stderrors.Is(err, pgx.ErrNoRows) {
		return errors.NotFound("").WithCause(err), true
	}
	return nil, false
}

// ClassifyPostgres maps constraint violations reported by PostgreSQL.
func ClassifyPostgres(err error) (*errors.AppError, bool) {
	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) {
		return nil, false
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		columns := pgColumns(pgErr)
		var appErr *errors.AppError
		switch len(columns) {
		case 0:
			appErr = errors.Unique("non_field_errors")
		case 1:
			appErr = errors.Unique(columns[0])
		default:
			msg := fmt.Sprintf("The fields %s must make a unique set.", strings.Join(columns, ", "))
			appErr = errors.ValidationFields(errors.Field(errors.ErrCodeUnique, msg, "non_field_errors"))
		}
		return appErr.WithCause(err), true
	case pgForeignKeyViolation:
		return errors.Protected(err), true
	case pgNotNullViolation:
		return errors.Required(pgErr.ColumnName).WithCause(err), true
	}
	return nil, false
}

func pgColumns(pgErr *pgconn.PgError) []string {
	if pgErr.ColumnName != "" {
		return []string{pgErr.ColumnName}
	}
	m := pgKeyDetail.FindStringSubmatch(pgErr.Detail)
	if m == nil {
		return nil
	}
	parts := strings.Split(m[1], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ClassifyValidator maps struct validation failures.
func ClassifyValidator(err error) (*errors.AppError, bool) {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return nil, false
	}
	return validation.FromValidationErrors(verrs), true
}

var jwtAuthErrors = []error{
	jwt.ErrTokenMalformed,
	jwt.ErrTokenUnverifiable,
	jwt.ErrTokenSignatureInvalid,
	jwt.ErrTokenRequiredClaimMissing,
	jwt.ErrTokenInvalidAudience,
	jwt.ErrTokenUsedBeforeIssued,
	jwt.ErrTokenInvalidIssuer,
	jwt.ErrTokenInvalidSubject,
	jwt.ErrTokenNotValidYet,
	jwt.ErrTokenInvalidId,
	jwt.ErrTokenInvalidClaims,
}

// ClassifyJWT maps token parsing and verification errors.
func ClassifyJWT(err error) (*errors.AppError, bool) {
	if stderrors.Is(err, jwt.ErrTokenExpired) {
		return errors.TokenExpired().WithCause(err), true
	}
	for _, target := range jwtAuthErrors {
		if stderrors.Is(err, target) {
			return errors.AuthenticationFailed("").WithCause(err), true
		}
	}
	return nil, false
}

// ClassifyJSON maps request body decoding failures to parse errors.
func ClassifyJSON(err error) (*errors.AppError, bool) {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &syntaxErr) || stderrors.As(err, &typeErr) {
		return errors.ParseError(err), true
	}
	return nil, false
}

// ClassifyPermission maps filesystem permission errors.
func ClassifyPermission(err error) (*errors.AppError, bool) {
	if stderrors.Is(err, fs.ErrPermission) {
		return errors.PermissionDenied("").WithCause(err), true
	}
	return nil, false
}
