// Package servers holds the HTTP contract of the API: the embedded openapi.yml and
// the hand-maintained models and echo bindings that mirror it. The bindings follow
// the oapi-codegen echo layout but add per-operation middleware, so they are edited
// alongside the document; TestRegisterHandlers_MatchesDocument keeps both in step.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Register a cooking slot
	// (POST /api/v1/slots)
	CreateSlot(ctx echo.Context) error
	// Release an order from its slot
	// (DELETE /api/v1/slots/assign)
	UnassignOrderFromSlot(ctx echo.Context, params UnassignOrderFromSlotParams) error
	// Assign an order to a slot
	// (POST /api/v1/slots/assign)
	AssignOrderToSlot(ctx echo.Context) error
	// Delete an empty slot
	// (DELETE /api/v1/slots/{slotId})
	DeleteSlot(ctx echo.Context, slotId string) error
	// Read a slot with its occupants and history
	// (GET /api/v1/slots/{slotId})
	GetSlot(ctx echo.Context, slotId string) error
	// Edit the name, capacity, type or notes of a slot
	// (PUT /api/v1/slots/{slotId})
	UpdateSlot(ctx echo.Context, slotId string) error
	// Set the operator status of a slot
	// (PUT /api/v1/slots/{slotId}/status)
	ChangeSlotStatus(ctx echo.Context, slotId string) error
	// Take a new order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Read the cooking state of an order
	// (GET /api/v1/orders/{orderId}/cooking)
	GetOrderCooking(ctx echo.Context, orderId string) error
	// Repair drift between slots and orders
	// (POST /api/v1/reconciliations)
	ReconcileAssignments(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateSlot(ctx echo.Context) error {
	return w.Handler.CreateSlot(ctx)
}

func (w *ServerInterfaceWrapper) UnassignOrderFromSlot(ctx echo.Context) error {
	var params UnassignOrderFromSlotParams

	err := runtime.BindQueryParameter("form", true, true, "orderId", ctx.QueryParams(), &params.OrderId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return w.Handler.UnassignOrderFromSlot(ctx, params)
}

func (w *ServerInterfaceWrapper) AssignOrderToSlot(ctx echo.Context) error {
	return w.Handler.AssignOrderToSlot(ctx)
}

func (w *ServerInterfaceWrapper) DeleteSlot(ctx echo.Context) error {
	slotId, err := bindPathString(ctx, "slotId")
	if err != nil {
		return err
	}
	return w.Handler.DeleteSlot(ctx, slotId)
}

func (w *ServerInterfaceWrapper) GetSlot(ctx echo.Context) error {
	slotId, err := bindPathString(ctx, "slotId")
	if err != nil {
		return err
	}
	return w.Handler.GetSlot(ctx, slotId)
}

func (w *ServerInterfaceWrapper) UpdateSlot(ctx echo.Context) error {
	slotId, err := bindPathString(ctx, "slotId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateSlot(ctx, slotId)
}

func (w *ServerInterfaceWrapper) ChangeSlotStatus(ctx echo.Context) error {
	slotId, err := bindPathString(ctx, "slotId")
	if err != nil {
		return err
	}
	return w.Handler.ChangeSlotStatus(ctx, slotId)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrderCooking(ctx echo.Context) error {
	orderId, err := bindPathString(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrderCooking(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ReconcileAssignments(ctx echo.Context) error {
	return w.Handler.ReconcileAssignments(ctx)
}

func bindPathString(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RouteMiddleware returns the extra middleware for one operation, by operationId.
type RouteMiddleware func(operationID string) []echo.MiddlewareFunc

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "", nil)
}

// RegisterHandlersWithBaseURL registers the routes under baseURL. perRoute may
// attach middleware, such as role checks, to single operations.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string, perRoute RouteMiddleware) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}
	mw := func(operationID string) []echo.MiddlewareFunc {
		if perRoute == nil {
			return nil
		}
		return perRoute(operationID)
	}

	router.POST(baseURL+"/api/v1/slots", wrapper.CreateSlot, mw("CreateSlot")...)
	router.DELETE(baseURL+"/api/v1/slots/assign", wrapper.UnassignOrderFromSlot, mw("UnassignOrderFromSlot")...)
	router.POST(baseURL+"/api/v1/slots/assign", wrapper.AssignOrderToSlot, mw("AssignOrderToSlot")...)
	router.DELETE(baseURL+"/api/v1/slots/:slotId", wrapper.DeleteSlot, mw("DeleteSlot")...)
	router.GET(baseURL+"/api/v1/slots/:slotId", wrapper.GetSlot, mw("GetSlot")...)
	router.PUT(baseURL+"/api/v1/slots/:slotId", wrapper.UpdateSlot, mw("UpdateSlot")...)
	router.PUT(baseURL+"/api/v1/slots/:slotId/status", wrapper.ChangeSlotStatus, mw("ChangeSlotStatus")...)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder, mw("CreateOrder")...)
	router.GET(baseURL+"/api/v1/orders/:orderId/cooking", wrapper.GetOrderCooking, mw("GetOrderCooking")...)
	router.POST(baseURL+"/api/v1/reconciliations", wrapper.ReconcileAssignments, mw("ReconcileAssignments")...)
}
