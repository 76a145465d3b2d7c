// Package http provides the HTTP server implementation for the dispatcher.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/fleetop/dispatcher/internal/service"
	v1 "github.com/fleetop/dispatcher/internal/transport/http/v1"
)

// NewServer creates and configures the dispatcher HTTP server. Authentication
// terminates upstream; the identity headers it injects are trusted here.
func NewServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc)
	v1Handler.RegisterRoutes(e)

	return e
}
