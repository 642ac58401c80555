package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"roll-backend/internal/shared/apperr"
	"roll-backend/internal/shared/response"
)

// PostgreSQL error codes surfaced to clients
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRep      = "22P02"
)

// ErrorHandler renders the last error pushed with c.Error.
// Handlers push the error and return without writing a body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		ginErr := c.Errors.Last()
		status, code, message := classify(ginErr)

		event := log.Warn()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("request_id", c.GetString(RequestIDKey)).
			Str("code", code).
			Int("status", status).
			Err(ginErr.Err).
			Msg("Request failed")

		response.ErrorResponse(c, status, code, message)
	}
}

func classify(ginErr *gin.Error) (int, string, string) {
	err := ginErr.Err

	if appErr, ok := apperr.As(err); ok {
		if appErr.Kind == apperr.KindInternal {
			return http.StatusInternalServerError, apperr.CodeInternal, "Internal server error"
		}
		return appErr.HTTPStatus(), appErr.Code, appErr.Message
	}

	if ginErr.IsType(gin.ErrorTypeBind) {
		return http.StatusBadRequest, "INVALID_BODY", "Invalid request body: " + err.Error()
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return http.StatusConflict, apperr.CodeConflict, "Resource already exists"
		case pgForeignKeyViolation:
			return http.StatusBadRequest, apperr.CodeReferential, "Referenced resource does not exist or is still in use"
		case pgInvalidTextRep:
			return http.StatusBadRequest, apperr.CodeValidation, "Invalid identifier or value format"
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, apperr.CodeNotFound, "Resource not found"
	}

	return http.StatusInternalServerError, apperr.CodeInternal, "Internal server error"
}
