package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"lechon/internal/core/application/usecases/commands"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/order"
	"lechon/internal/core/domain/model/slot"
	"lechon/internal/pkg/errs"
	"lechon/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
)

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

type slotUoWFactory func() commands.SlotUoW

func (f slotUoWFactory) Create() commands.SlotUoW { return f() }

type orderUoWFactory func() commands.OrderUoW

func (f orderUoWFactory) Create() commands.OrderUoW { return f() }

// handlers wires the command handlers to the suite's unit of work factory.
type handlers struct {
	createSlot   commands.CreateSlotCommandHandler
	changeStatus commands.ChangeSlotStatusCommandHandler
	createOrder  commands.CreateOrderCommandHandler
	assign       commands.AssignOrderToSlotCommandHandler
	unassign     commands.UnassignOrderFromSlotCommandHandler
	reconcile    commands.ReconcileAssignmentsCommandHandler
}

// tickingClock advances one second per call and is safe for concurrent use.
func tickingClock() kernel.Clock {
	var ticks atomic.Int64
	return kernel.ClockFunc(func() time.Time {
		return testNow.Add(time.Duration(ticks.Add(1)) * time.Second)
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) handlers() handlers {
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	m, err := metrics.NewSlotMetrics(prometheus.NewRegistry())
	suite.Require().NoError(err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := tickingClock()

	both := uowFactory(func() commands.UoW { return suite.factory.Create() })
	slots := slotUoWFactory(func() commands.SlotUoW { return suite.factory.Create() })
	orders := orderUoWFactory(func() commands.OrderUoW { return suite.factory.Create() })

	return handlers{
		createSlot:   commands.NewCreateSlotCommandHandler(slots, clock),
		changeStatus: commands.NewChangeSlotStatusCommandHandler(slots, clock),
		createOrder:  commands.NewCreateOrderCommandHandler(orders, clock),
		assign:       commands.NewAssignOrderToSlotCommandHandler(both, clock, m),
		unassign:     commands.NewUnassignOrderFromSlotCommandHandler(both, clock, m, logger),
		reconcile:    commands.NewReconcileAssignmentsCommandHandler(both, clock, m, logger),
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createSlot(h handlers, name string, capacity int) string {
	cmd, err := commands.NewCreateSlotCommand(name, capacity, "", "")
	suite.Require().NoError(err)
	suite.Require().NoError(h.createSlot.Handle(context.Background(), cmd))
	return cmd.SlotID().String()
}

func (suite *UnitOfWorkIntegrationTestSuite) createOrder(h handlers) string {
	cmd, err := commands.NewCreateOrderCommand("Dela Cruz", "whole_pig", kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(h.createOrder.Handle(context.Background(), cmd))
	return cmd.OrderID().String()
}

func (suite *UnitOfWorkIntegrationTestSuite) assign(h handlers, slotID, orderID string) error {
	cmd, err := commands.NewAssignOrderToSlotCommand(slotID, orderID)
	suite.Require().NoError(err)
	return h.assign.Handle(context.Background(), cmd)
}

func (suite *UnitOfWorkIntegrationTestSuite) unassign(h handlers, orderID string) error {
	cmd, err := commands.NewUnassignOrderFromSlotCommand(orderID)
	suite.Require().NoError(err)
	return h.unassign.Handle(context.Background(), cmd)
}

func (suite *UnitOfWorkIntegrationTestSuite) loadSlot(id string) *slot.Slot {
	slotID, err := kernel.UUIDFromString(id)
	suite.Require().NoError(err)
	s, err := suite.factory.Create().SlotRepository().Get(context.Background(), slotID)
	suite.Require().NoError(err)
	return s
}

func (suite *UnitOfWorkIntegrationTestSuite) loadOrder(id string) *order.Order {
	orderID, err := kernel.UUIDFromString(id)
	suite.Require().NoError(err)
	o, err := suite.factory.Create().OrderRepository().Get(context.Background(), orderID)
	suite.Require().NoError(err)
	return o
}

func orderIDs(s *slot.Slot) []string {
	out := make([]string, 0, s.Occupancy())
	for _, id := range s.CurrentOrders() {
		out = append(out, id.String())
	}
	return out
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignment_EndToEndScenario() {
	h := suite.handlers()
	slotID := suite.createSlot(h, "Pit 1", 2)
	o1, o2, o3 := suite.createOrder(h), suite.createOrder(h), suite.createOrder(h)

	suite.Require().NoError(suite.assign(h, slotID, o1))
	s := suite.loadSlot(slotID)
	suite.Equal(slot.StatusAvailable, s.Status())
	suite.Equal([]string{o1}, orderIDs(s))
	first := suite.loadOrder(o1)
	suite.Equal(order.Cooking, first.Status())
	suite.Require().NotNil(first.SlotID())
	suite.Equal(slotID, first.SlotID().String())

	suite.Require().NoError(suite.assign(h, slotID, o2))
	s = suite.loadSlot(slotID)
	suite.Equal(slot.StatusOccupied, s.Status())
	suite.Equal([]string{o1, o2}, orderIDs(s))

	err := suite.assign(h, slotID, o3)
	suite.Require().ErrorIs(err, slot.ErrCapacityExceeded)
	suite.Nil(suite.loadOrder(o3).SlotID())

	suite.Require().NoError(suite.unassign(h, o1))
	s = suite.loadSlot(slotID)
	suite.Equal(slot.StatusAvailable, s.Status())
	suite.Equal([]string{o2}, orderIDs(s))
	released := suite.loadOrder(o1)
	suite.Nil(released.SlotID())
	suite.Equal(order.Cooked, released.Status())

	var closed *slot.HistoryEntry
	for _, entry := range s.History() {
		if entry.OrderID().String() == o1 {
			closed = entry
		}
	}
	suite.Require().NotNil(closed)
	suite.Require().NotNil(closed.EndCooking())
	suite.True(closed.StartCooking().Before(*closed.EndCooking()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignment_UnknownIDs() {
	h := suite.handlers()
	slotID := suite.createSlot(h, "Pit 1", 1)
	orderID := suite.createOrder(h)

	var notFound *errs.ObjectNotFoundError

	err := suite.assign(h, kernel.NewUUID().String(), orderID)
	suite.Require().ErrorAs(err, &notFound)
	suite.Equal("slot", notFound.ParamName)

	err = suite.assign(h, slotID, kernel.NewUUID().String())
	suite.Require().ErrorAs(err, &notFound)
	suite.Equal("order", notFound.ParamName)
	suite.Empty(suite.loadSlot(slotID).CurrentOrders())

	err = suite.unassign(h, "not-a-uuid")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignment_RejectsDoubleAssign() {
	h := suite.handlers()
	first, second := suite.createSlot(h, "Pit 1", 1), suite.createSlot(h, "Pit 2", 1)
	orderID := suite.createOrder(h)
	suite.Require().NoError(suite.assign(h, first, orderID))

	err := suite.assign(h, second, orderID)

	suite.Require().ErrorIs(err, order.ErrOrderAlreadyAssigned)
	suite.Empty(suite.loadSlot(second).CurrentOrders())
	suite.Equal(first, suite.loadOrder(orderID).SlotID().String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignment_ConcurrentAssignsRespectCapacity() {
	h := suite.handlers()

	for round := range 5 {
		slotID := suite.createSlot(h, fmt.Sprintf("Race %d", round), 1)
		orders := []string{suite.createOrder(h), suite.createOrder(h)}

		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
			errCh = make(chan error, len(orders))
		)
		for _, orderID := range orders {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				cmd, err := commands.NewAssignOrderToSlotCommand(slotID, orderID)
				if err != nil {
					errCh <- err
					return
				}
				errCh <- h.assign.Handle(context.Background(), cmd)
			}()
		}
		close(start)
		wg.Wait()
		close(errCh)

		var succeeded, rejected int
		for err := range errCh {
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, slot.ErrCapacityExceeded):
				rejected++
			default:
				suite.Failf("unexpected error", "%v", err)
			}
		}
		suite.Equal(1, succeeded, "round %d", round)
		suite.Equal(1, rejected, "round %d", round)

		s := suite.loadSlot(slotID)
		suite.Equal(1, s.Occupancy())
		suite.Equal(slot.StatusOccupied, s.Status())
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignment_MaintenanceSlot() {
	ctx := context.Background()
	h := suite.handlers()
	slotID := suite.createSlot(h, "Pit 1", 2)
	o1, o2 := suite.createOrder(h), suite.createOrder(h)
	suite.Require().NoError(suite.assign(h, slotID, o1))

	cmd, err := commands.NewChangeSlotStatusCommand(slotID, "maintenance")
	suite.Require().NoError(err)
	suite.Require().NoError(h.changeStatus.Handle(ctx, cmd))

	err = suite.assign(h, slotID, o2)
	suite.Require().ErrorIs(err, slot.ErrSlotUnavailable)

	suite.Require().NoError(suite.unassign(h, o1))
	s := suite.loadSlot(slotID)
	suite.Equal(slot.StatusMaintenance, s.Status())
	suite.Empty(s.CurrentOrders())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReconcile_RepairsDriftAndIsIdempotent() {
	ctx := context.Background()
	h := suite.handlers()
	slotID := suite.createSlot(h, "Pit 1", 2)
	stray, listed := suite.createOrder(h), suite.createOrder(h)
	db := suite.database.DB

	suite.Require().NoError(db.Exec(
		"UPDATE orders SET slot_id = ?, status = 'cooking', cooking_date = ? WHERE id = ?",
		slotID, testNow, stray,
	).Error)
	suite.Require().NoError(db.Exec(
		"INSERT INTO slot_history (id, slot_id, order_id, start_cooking) VALUES (?, ?, ?, ?)",
		kernel.NewUUID().Bytes(), slotID, stray, testNow,
	).Error)
	suite.Require().NoError(db.Exec(
		"INSERT INTO slot_occupants (slot_id, order_id, position) VALUES (?, ?, 0)",
		slotID, listed,
	).Error)

	repaired, err := h.reconcile.Handle(ctx, commands.NewReconcileAssignmentsCommand())
	suite.Require().NoError(err)
	suite.Equal(3, repaired)

	s := suite.loadSlot(slotID)
	strayID, err := kernel.UUIDFromString(stray)
	suite.Require().NoError(err)
	listedID, err := kernel.UUIDFromString(listed)
	suite.Require().NoError(err)
	suite.Nil(s.OpenEntryFor(strayID))
	suite.NotNil(s.OpenEntryFor(listedID))

	detached := suite.loadOrder(stray)
	suite.Nil(detached.SlotID())
	suite.Equal(order.Cooked, detached.Status())

	attached := suite.loadOrder(listed)
	suite.Require().NotNil(attached.SlotID())
	suite.Equal(slotID, attached.SlotID().String())
	suite.Equal(order.Cooking, attached.Status())

	again, err := h.reconcile.Handle(ctx, commands.NewReconcileAssignmentsCommand())
	suite.Require().NoError(err)
	suite.Zero(again)

	suite.Require().NoError(suite.unassign(h, listed))
	suite.Require().NoError(suite.assign(h, slotID, stray))
	s = suite.loadSlot(slotID)
	suite.Equal([]string{stray}, orderIDs(s))
	for _, entry := range s.History() {
		if !entry.IsOpen() {
			suite.True(entry.StartCooking().Before(*entry.EndCooking()))
		}
	}
}
