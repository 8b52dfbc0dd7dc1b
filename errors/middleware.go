package errors

import (
	"errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewHTTPErrorHandler reports errors wrapping an HttpError with its status code and
// the full message of err, so rejection reasons reach the client. Errors echo does
// not know about are logged before the default handler answers with 500.
func NewHTTPErrorHandler(logger *zap.SugaredLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var h HttpError
		var he *echo.HTTPError
		switch {
		case errors.As(err, &h):
			err = echo.NewHTTPError(h.Code, err.Error())
		case errors.As(err, &he):
		default:
			logger.Errorw("unhandled request error", "method", c.Request().Method, "path", c.Path(), "error", err)
		}
		c.Echo().DefaultHTTPErrorHandler(err, c)
	}
}
