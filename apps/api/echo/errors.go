package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Allen-Davis-M/Attendify/core"
	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		origErr := errors.Cause(err)
		if fldErrs, ok := core.FieldErrors(origErr, translator); ok {
			code = http.StatusBadRequest
			message = fldErrs
		} else {
			switch origErr {
			case tracker.ErrSubjectNotFound, tracker.ErrEntryNotFound:
				code = http.StatusNotFound
				message = origErr.Error()
			default:
				if herr, ok := origErr.(*echo.HTTPError); ok {
					if herr.Internal != nil {
						if ierr, ok := herr.Internal.(*echo.HTTPError); ok {
							herr = ierr
						}
					}
					code = herr.Code
					message = herr.Message
					break
				}

				// any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg))

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
