package api

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RouteSkipper matches requests by their registered route, not the raw url.
func RouteSkipper(routes []string) middleware.Skipper {
	skipped := mapset.NewThreadUnsafeSet(routes...)
	return func(c echo.Context) bool {
		return skipped.Contains(c.Path())
	}
}

// WithSkipper applies m only to requests the skipper does not match.
func WithSkipper(skipper middleware.Skipper, m echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		wrapped := m(next)
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}
			return wrapped(c)
		}
	}
}
