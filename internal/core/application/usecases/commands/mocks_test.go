package commands_test

import (
	"context"
	"time"

	"lechon/internal/core/application/usecases/commands"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/order"
	"lechon/internal/core/domain/model/slot"
	"lechon/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

var testClock = kernel.ClockFunc(func() time.Time { return testNow })

type MockSlotRepository struct{ mock.Mock }

func (m *MockSlotRepository) Add(ctx context.Context, s *slot.Slot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSlotRepository) Update(ctx context.Context, s *slot.Slot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSlotRepository) Get(ctx context.Context, id kernel.UUID) (*slot.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slot.Slot), args.Error(1)
}

func (m *MockSlotRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*slot.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slot.Slot), args.Error(1)
}

func (m *MockSlotRepository) GetAllForUpdate(ctx context.Context) ([]*slot.Slot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*slot.Slot), args.Error(1)
}

func (m *MockSlotRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAssignedOrIn(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

// MockUoW satisfies UoW, SlotUoW and OrderUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) SlotRepository() ports.SlotRepository {
	args := m.Called()
	return args.Get(0).(ports.SlotRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockSlotUoWFactory struct{ mock.Mock }

func (m *MockSlotUoWFactory) Create() commands.SlotUoW {
	args := m.Called()
	return args.Get(0).(commands.SlotUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSlotMetrics struct{ mock.Mock }

func (m *MockSlotMetrics) OrderAssigned() {
	m.Called()
}

func (m *MockSlotMetrics) OrderUnassigned() {
	m.Called()
}

func (m *MockSlotMetrics) Rejected(operation, reason string) {
	m.Called(operation, reason)
}

func (m *MockSlotMetrics) MultipleOpenHistory() {
	m.Called()
}

func (m *MockSlotMetrics) Reconciled(repairs int) {
	m.Called(repairs)
}

func newTestSlot(capacity int) *slot.Slot {
	s, err := slot.NewSlot(kernel.NewUUID(), "Pit 1", capacity, kernel.MultiPurpose, "", testNow)
	if err != nil {
		panic(err)
	}
	return s
}

func newTestOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "Dela Cruz", kernel.WholePig, kernel.NewUUID(), testNow)
	if err != nil {
		panic(err)
	}
	return o
}
