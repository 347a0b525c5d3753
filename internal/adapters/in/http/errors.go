package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"lechon/internal/core/application/usecases/commands"
	"lechon/internal/core/domain/model/order"
	"lechon/internal/core/domain/model/slot"
	"lechon/internal/api/servers"
	"lechon/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrStorageFailure):
		return http.StatusInternalServerError
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, slot.ErrSlotUnavailable),
		errors.Is(err, slot.ErrCapacityExceeded),
		errors.Is(err, slot.ErrSlotNotEmpty),
		errors.Is(err, order.ErrOrderAlreadyAssigned),
		errors.Is(err, order.ErrOrderNotAssigned),
		errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, commands.ErrUnassignContention):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(code int, err error) servers.Error {
	if code >= http.StatusInternalServerError {
		return servers.Error{Code: code, Message: http.StatusText(code)}
	}
	return servers.Error{Code: code, Message: err.Error()}
}

// problem writes err as the JSON error envelope.
func problem(ctx echo.Context, err error) error {
	code := statusFor(err)
	return ctx.JSON(code, errorBody(code, err))
}

// NewHTTPErrorHandler renders errors escaping the handlers, echo's own included,
// as the JSON error envelope.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var body servers.Error
		var he *echo.HTTPError
		if errors.As(err, &he) {
			body = servers.Error{Code: he.Code, Message: fmt.Sprint(he.Message)}
		} else {
			code := statusFor(err)
			body = errorBody(code, err)
		}

		if body.Code >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "request failed",
				"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(body.Code)
		} else {
			writeErr = ctx.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.WarnContext(ctx.Request().Context(), "write error response", "error", writeErr)
		}
	}
}
