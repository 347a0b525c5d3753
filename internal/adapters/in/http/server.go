package http

import (
	"context"
	"net/http"

	"lechon/internal/core/application/usecases/commands"
	"lechon/internal/core/application/usecases/queries"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/api/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	CreateSlotHandler interface {
		Handle(ctx context.Context, cmd commands.CreateSlotCommand) error
	}
	UpdateSlotHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateSlotCommand) error
	}
	ChangeSlotStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeSlotStatusCommand) error
	}
	DeleteSlotHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteSlotCommand) error
	}
	AssignOrderToSlotHandler interface {
		Handle(ctx context.Context, cmd commands.AssignOrderToSlotCommand) error
	}
	UnassignOrderFromSlotHandler interface {
		Handle(ctx context.Context, cmd commands.UnassignOrderFromSlotCommand) error
	}
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	ReconcileAssignmentsHandler interface {
		Handle(ctx context.Context, cmd commands.ReconcileAssignmentsCommand) (int, error)
	}
	GetSlotHandler interface {
		Handle(ctx context.Context, query queries.GetSlotQuery) (queries.GetSlotQueryResponse, error)
	}
	GetOrderCookingHandler interface {
		Handle(ctx context.Context, query queries.GetOrderCookingQuery) (queries.GetOrderCookingQueryResponse, error)
	}
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateSlot            CreateSlotHandler
	UpdateSlot            UpdateSlotHandler
	ChangeSlotStatus      ChangeSlotStatusHandler
	DeleteSlot            DeleteSlotHandler
	AssignOrderToSlot     AssignOrderToSlotHandler
	UnassignOrderFromSlot UnassignOrderFromSlotHandler
	CreateOrder           CreateOrderHandler
	ReconcileAssignments  ReconcileAssignmentsHandler
	GetSlot               GetSlotHandler
	GetOrderCooking       GetOrderCookingHandler
}

// Server implements servers.ServerInterface on top of the command and query handlers.
type Server struct {
	handlers Handlers
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// CreateSlot handles POST /api/v1/slots.
func (s *Server) CreateSlot(ctx echo.Context) error {
	var body servers.CreateSlotJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	var slotType, notes string
	if body.Type != nil {
		slotType = string(*body.Type)
	}
	if body.Notes != nil {
		notes = *body.Notes
	}

	cmd, err := commands.NewCreateSlotCommand(body.Name, body.Capacity, slotType, notes)
	if err != nil {
		return problem(ctx, err)
	}
	if err = s.handlers.CreateSlot.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: cmd.SlotID().Bytes()})
}

// GetSlot handles GET /api/v1/slots/{slotId}.
func (s *Server) GetSlot(ctx echo.Context, slotId string) error {
	query, err := queries.NewGetSlotQuery(slotId)
	if err != nil {
		return problem(ctx, err)
	}

	view, err := s.handlers.GetSlot.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	response := servers.Slot{
		Id:                view.ID.Bytes(),
		Name:              view.Name,
		Capacity:          view.Capacity,
		Type:              servers.LechonType(view.Type),
		Status:            view.Status,
		Notes:             view.Notes,
		CurrentOrders:     make([]openapi_types.UUID, len(view.CurrentOrders)),
		CanAcceptOrders:   view.CanAcceptOrders,
		AvailableCapacity: view.AvailableCapacity,
		History:           make([]servers.SlotHistoryItem, len(view.History)),
		CreatedAt:         view.CreatedAt,
		UpdatedAt:         view.UpdatedAt,
	}
	for i, id := range view.CurrentOrders {
		response.CurrentOrders[i] = id.Bytes()
	}
	for i, entry := range view.History {
		response.History[i] = servers.SlotHistoryItem{
			Id:           entry.ID.Bytes(),
			OrderId:      entry.OrderID.Bytes(),
			StartCooking: entry.StartCooking,
			EndCooking:   entry.EndCooking,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateSlot handles PUT /api/v1/slots/{slotId}. Omitted fields keep their value.
func (s *Server) UpdateSlot(ctx echo.Context, slotId string) error {
	var body servers.UpdateSlotJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	changes := commands.SlotChanges{
		Name:     body.Name,
		Capacity: body.Capacity,
		Notes:    body.Notes,
	}
	if body.Type != nil {
		slotType := string(*body.Type)
		changes.Type = &slotType
	}

	cmd, err := commands.NewUpdateSlotCommand(slotId, changes)
	if err != nil {
		return problem(ctx, err)
	}
	if err = s.handlers.UpdateSlot.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeSlotStatus handles PUT /api/v1/slots/{slotId}/status.
func (s *Server) ChangeSlotStatus(ctx echo.Context, slotId string) error {
	var body servers.ChangeSlotStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	cmd, err := commands.NewChangeSlotStatusCommand(slotId, body.Status)
	if err != nil {
		return problem(ctx, err)
	}
	if err = s.handlers.ChangeSlotStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteSlot handles DELETE /api/v1/slots/{slotId}.
func (s *Server) DeleteSlot(ctx echo.Context, slotId string) error {
	cmd, err := commands.NewDeleteSlotCommand(slotId)
	if err != nil {
		return problem(ctx, err)
	}
	if err = s.handlers.DeleteSlot.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignOrderToSlot handles POST /api/v1/slots/assign.
func (s *Server) AssignOrderToSlot(ctx echo.Context) error {
	var body servers.AssignOrderToSlotJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	cmd, err := commands.NewAssignOrderToSlotCommand(body.SlotId, body.OrderId)
	if err != nil {
		return problem(ctx, err)
	}
	if err = s.handlers.AssignOrderToSlot.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnassignOrderFromSlot handles DELETE /api/v1/slots/assign?orderId=.
func (s *Server) UnassignOrderFromSlot(ctx echo.Context, params servers.UnassignOrderFromSlotParams) error {
	cmd, err := commands.NewUnassignOrderFromSlotCommand(params.OrderId)
	if err != nil {
		return problem(ctx, err)
	}
	if err = s.handlers.UnassignOrderFromSlot.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateOrder handles POST /api/v1/orders. The caller becomes the order's creator.
func (s *Server) CreateOrder(ctx echo.Context) error {
	claims := ClaimsFrom(ctx)
	if claims == nil {
		return unauthorized(ctx, "not authenticated")
	}
	createdBy, err := kernel.UUIDFromString(claims.UserID.String())
	if err != nil {
		return unauthorized(ctx, "invalid token subject")
	}

	var body servers.CreateOrderJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	cmd, err := commands.NewCreateOrderCommand(body.CustomerName, body.LechonType, createdBy)
	if err != nil {
		return problem(ctx, err)
	}
	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: cmd.OrderID().Bytes()})
}

// GetOrderCooking handles GET /api/v1/orders/{orderId}/cooking.
func (s *Server) GetOrderCooking(ctx echo.Context, orderId string) error {
	query, err := queries.NewGetOrderCookingQuery(orderId)
	if err != nil {
		return problem(ctx, err)
	}

	view, err := s.handlers.GetOrderCooking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	response := servers.OrderCooking{
		OrderId:     view.OrderID.Bytes(),
		Status:      view.Status,
		CookingDate: view.CookingDate,
		CookedDate:  view.CookedDate,
	}
	if view.SlotID != nil {
		slotID := view.SlotID.Bytes()
		response.SlotId = &slotID
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReconcileAssignments handles POST /api/v1/reconciliations.
func (s *Server) ReconcileAssignments(ctx echo.Context) error {
	repaired, err := s.handlers.ReconcileAssignments.Handle(ctx.Request().Context(), commands.NewReconcileAssignmentsCommand())
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Reconciliation{Repaired: repaired})
}

func invalidBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}
