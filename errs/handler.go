package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HTTPErrorHandler returns an echo.HTTPErrorHandler that converges every
// error returned by a handler into one well-formed JSON response:
//
//   - *Error values are rendered with their StatusCode and Payload.
//   - validator.ValidationErrors are rendered as 400 with field-level detail.
//   - *echo.HTTPError (router 404/405, bind failures, ...) keeps its status
//     code with the message rendered in the library's body shape.
//   - anything else falls back to the generic 500 body.
//
// 500-class causes are logged with their full detail before the response
// is built, so operators keep the diagnostic while clients only receive
// the canonical reason phrase. 400/404-class errors carry caller input
// detail and are not logged as errors.
//
// Register it at startup:
//
//	e := echo.New()
//	e.HTTPErrorHandler = errs.HTTPErrorHandler(&logger)
func HTTPErrorHandler(logger *zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		var payload any = &InternalErrorPayload{Error: http.StatusText(status)}

		var appErr *Error
		var verrs validator.ValidationErrors
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.StatusCode()
			payload = appErr.Payload()
			if status >= http.StatusInternalServerError {
				logger.Error().Err(err).Msg("request failed")
			}
		case errors.As(err, &verrs):
			status = http.StatusBadRequest
			payload = FromValidationErrors(verrs)
		case errors.As(err, &echoErr):
			status = echoErr.Code
			payload = &InternalErrorPayload{Error: fmt.Sprintf("%v", echoErr.Message)}
			if status >= http.StatusInternalServerError {
				logger.Error().Err(err).Msg("request failed")
			}
		default:
			logger.Error().Err(err).Msg("unexpected error handling request")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, payload)
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("failed to write error response")
		}
	}
}
