package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"lechon/internal/adapters/in/http/auth"
	"lechon/internal/adapters/out/ws"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/api/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// RouterConfig carries everything the HTTP surface needs besides the use cases.
type RouterConfig struct {
	JWTSecret string
	Gatherer  prometheus.Gatherer
	Hub       *ws.Hub
	Logger    *slog.Logger
}

// adminOperations are the operations restricted to the admin role.
var adminOperations = map[string]bool{
	"CreateSlot":           true,
	"UpdateSlot":           true,
	"ChangeSlotStatus":     true,
	"DeleteSlot":           true,
	"ReconcileAssignments": true,
}

// NewRouter builds the echo instance serving the API, the docs, metrics and the
// slot event stream.
func NewRouter(server servers.ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, fmt.Errorf("build request validator: %w", err)
	}
	if err = registerDocs(); err != nil {
		return nil, err
	}

	logger := cfg.Logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authenticate := Authenticate(cfg.JWTSecret)
	if cfg.Hub != nil {
		e.GET("/ws/slots", slotEvents(cfg.Hub), authenticate)
	}

	requireAdmin := RequireRole(auth.RoleAdmin)
	servers.RegisterHandlersWithBaseURL(e, server, "", func(operationID string) []echo.MiddlewareFunc {
		chain := []echo.MiddlewareFunc{authenticate}
		if adminOperations[operationID] {
			chain = append(chain, requireAdmin)
		}
		return append(chain, validator)
	})

	return e, nil
}

// slotEvents upgrades to a websocket streaming slot events, for one slot when
// the slotId query parameter is set.
func slotEvents(hub *ws.Hub) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		slotID := ws.AllSlots
		if raw := ctx.QueryParam("slotId"); raw != "" {
			id, err := kernel.UUIDFromString(raw)
			if err != nil {
				return ctx.JSON(http.StatusNotFound, servers.Error{
					Code:    http.StatusNotFound,
					Message: "slot not found",
				})
			}
			slotID = id
		}
		return ws.ServeWS(hub, ctx.Response(), ctx.Request(), slotID)
	}
}

type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

var (
	docsOnce sync.Once
	docsErr  error
)

// registerDocs publishes the API document to the swagger UI once per process.
func registerDocs() error {
	docsOnce.Do(func() {
		raw, err := servers.SpecJSON()
		if err != nil {
			docsErr = err
			return
		}
		swag.Register(swag.Name, openAPIDoc{json: string(raw)})
	})
	return docsErr
}
