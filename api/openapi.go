package api

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	oapiMiddleware "github.com/oapi-codegen/echo-middleware"
)

//go:embed coach.yaml
var openapiDocument []byte

// GetSwagger parses and validates the embedded OpenAPI document of the API.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(openapiDocument)
	if err != nil {
		return nil, fmt.Errorf("error loading openapi document: %w", err)
	}
	if err := swagger.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return swagger, nil
}

// NewRequestValidator rejects requests that do not match the OpenAPI document with
// 400 before they reach a handler.
func NewRequestValidator(skipper middleware.Skipper) (echo.MiddlewareFunc, error) {
	swagger, err := GetSwagger()
	if err != nil {
		return nil, err
	}

	// Routes match on path alone, whatever host the server is reached on
	swagger.Servers = nil

	return oapiMiddleware.OapiRequestValidatorWithOptions(swagger, &oapiMiddleware.Options{
		Options: openapi3filter.Options{
			ExcludeResponseBody: true,
		},
		Skipper: skipper,
	}), nil
}
