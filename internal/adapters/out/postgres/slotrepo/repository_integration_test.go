package slotrepo_test

import (
	"context"
	"testing"
	"time"

	"lechon/internal/adapters/out/postgres/pgtest"
	"lechon/internal/adapters/out/postgres/slotrepo"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/slot"
	"lechon/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type SlotRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *slotrepo.GormSlotRepository
	tracker    *MockAggregateTracker
}

func (suite *SlotRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *SlotRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *SlotRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = slotrepo.NewGormSlotRepository(suite.database.DB, suite.tracker)
}

func (suite *SlotRepositoryIntegrationTestSuite) newSlot(name string, capacity int) *slot.Slot {
	s, err := slot.NewSlot(kernel.NewUUID(), name, capacity, kernel.WholePig, "near the gate", testNow)
	suite.Require().NoError(err)
	return s
}

func (suite *SlotRepositoryIntegrationTestSuite) TestAdd_AndGet_RoundTrip() {
	ctx := context.Background()
	s := suite.newSlot("Pit 1", 3)
	first, second := kernel.NewUUID(), kernel.NewUUID()
	suite.Require().NoError(s.Assign(second, testNow))
	suite.Require().NoError(s.Assign(first, testNow.Add(time.Minute)))

	suite.Require().NoError(suite.repository.Add(ctx, s))

	loaded, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(s.ID()))
	suite.Equal("Pit 1", loaded.Name())
	suite.Equal(3, loaded.Capacity())
	suite.Equal(kernel.WholePig, loaded.Type())
	suite.Equal(slot.StatusAvailable, loaded.Status())
	suite.Equal("near the gate", loaded.Notes())
	suite.True(loaded.CreatedAt().Equal(testNow))
	suite.Equal([]kernel.UUID{second, first}, loaded.CurrentOrders())

	history := loaded.History()
	suite.Require().Len(history, 2)
	suite.True(history[0].OrderID().IsEqual(second))
	suite.True(history[0].IsOpen())
	suite.True(history[1].StartCooking().Equal(testNow.Add(time.Minute)))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", s.ID(), s)
}

func (suite *SlotRepositoryIntegrationTestSuite) TestAdd_DuplicateName_ReturnsAlreadyExists() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newSlot("Pit 1", 1)))

	err := suite.repository.Add(ctx, suite.newSlot("Pit 1", 2))

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *SlotRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *SlotRepositoryIntegrationTestSuite) TestUpdate_ReplacesOccupantsAndClosesHistory() {
	ctx := context.Background()
	s := suite.newSlot("Pit 1", 1)
	orderID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Require().NoError(s.Assign(orderID, testNow))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	loaded, err := suite.repository.GetForUpdate(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(slot.StatusOccupied, loaded.Status())
	suite.Equal([]kernel.UUID{orderID}, loaded.CurrentOrders())

	_, err = loaded.Release(orderID, testNow.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(slot.StatusAvailable, reloaded.Status())
	suite.Empty(reloaded.CurrentOrders())
	suite.Require().Len(reloaded.History(), 1)
	end := reloaded.History()[0].EndCooking()
	suite.Require().NotNil(end)
	suite.True(end.Equal(testNow.Add(2 * time.Hour)))
	suite.True(reloaded.UpdatedAt().Equal(testNow.Add(2 * time.Hour)))
}

func (suite *SlotRepositoryIntegrationTestSuite) TestUpdate_PersistsEditedAttributes() {
	ctx := context.Background()
	s := suite.newSlot("Pit 1", 1)
	suite.Require().NoError(s.Assign(kernel.NewUUID(), testNow))
	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Require().NoError(s.Update("Oven A", 3, kernel.Chicken, "", testNow.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	loaded, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal("Oven A", loaded.Name())
	suite.Equal(3, loaded.Capacity())
	suite.Equal(kernel.Chicken, loaded.Type())
	suite.Empty(loaded.Notes())
	suite.Equal(slot.StatusAvailable, loaded.Status())
	suite.True(loaded.CreatedAt().Equal(testNow))
	suite.True(loaded.UpdatedAt().Equal(testNow.Add(time.Hour)))
}

func (suite *SlotRepositoryIntegrationTestSuite) TestUpdate_PersistsRepairedHistory() {
	ctx := context.Background()
	s := suite.newSlot("Pit 1", 2)
	stale, occupant := kernel.NewUUID(), kernel.NewUUID()
	suite.Require().NoError(suite.repository.Add(ctx, s))
	suite.Require().NoError(suite.database.DB.Exec(
		"INSERT INTO slot_history (id, slot_id, order_id, start_cooking) VALUES (?, ?, ?, ?)",
		kernel.NewUUID().Bytes(), s.ID().Bytes(), stale.Bytes(), testNow,
	).Error)
	suite.Require().NoError(suite.database.DB.Exec(
		"INSERT INTO slot_occupants (slot_id, order_id, position) VALUES (?, ?, 0)",
		s.ID().Bytes(), occupant.Bytes(),
	).Error)

	loaded, err := suite.repository.GetForUpdate(ctx, s.ID())
	suite.Require().NoError(err)
	changed, err := loaded.RepairHistory(testNow.Add(time.Hour), nil)
	suite.Require().NoError(err)
	suite.Require().True(changed)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().Len(reloaded.History(), 2)
	suite.Nil(reloaded.OpenEntryFor(stale))
	suite.NotNil(reloaded.OpenEntryFor(occupant))
}

func (suite *SlotRepositoryIntegrationTestSuite) TestHistory_RejectsEmptySession() {
	ctx := context.Background()
	s := suite.newSlot("Pit 1", 1)
	suite.Require().NoError(suite.repository.Add(ctx, s))

	err := suite.database.DB.Exec(
		"INSERT INTO slot_history (id, slot_id, order_id, start_cooking, end_cooking) VALUES (?, ?, ?, ?, ?)",
		kernel.NewUUID().Bytes(), s.ID().Bytes(), kernel.NewUUID().Bytes(), testNow, testNow,
	).Error

	suite.Require().Error(err)
}

func (suite *SlotRepositoryIntegrationTestSuite) TestUpdate_KeepsOperatorStatus() {
	ctx := context.Background()
	s := suite.newSlot("Pit 1", 2)
	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Require().NoError(s.ChangeStatus(slot.StatusOutOfOrder, testNow))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	loaded, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(slot.StatusOutOfOrder, loaded.Status())
}

func (suite *SlotRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newSlot("Ghost", 1))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *SlotRepositoryIntegrationTestSuite) TestUpdate_OrderInAnotherSlot_IsRejectedByIndex() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	first, second := suite.newSlot("Pit 1", 1), suite.newSlot("Pit 2", 1)
	suite.Require().NoError(first.Assign(orderID, testNow))
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	suite.Require().NoError(second.Assign(orderID, testNow))
	err := suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *SlotRepositoryIntegrationTestSuite) TestOpenHistory_IsUniquePerSlotAndOrder() {
	ctx := context.Background()
	s := suite.newSlot("Pit 1", 1)
	orderID := kernel.NewUUID()
	suite.Require().NoError(s.Assign(orderID, testNow))
	suite.Require().NoError(suite.repository.Add(ctx, s))

	err := suite.database.DB.Exec(
		"INSERT INTO slot_history (id, slot_id, order_id, start_cooking) VALUES (?, ?, ?, ?)",
		kernel.NewUUID().Bytes(), s.ID().Bytes(), orderID.Bytes(), testNow.Add(time.Minute),
	).Error

	suite.Require().Error(err)
}

func (suite *SlotRepositoryIntegrationTestSuite) TestGetAllForUpdate_ReturnsEverySlotOrderedByID() {
	ctx := context.Background()
	for _, name := range []string{"Pit 1", "Pit 2", "Pit 3"} {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newSlot(name, 1)))
	}

	tx := suite.database.DB.Begin()
	defer tx.Rollback()
	repo := slotrepo.NewGormSlotRepository(tx, suite.tracker)

	slots, err := repo.GetAllForUpdate(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(slots, 3)
	for i := 1; i < len(slots); i++ {
		suite.Less(slots[i-1].ID().String(), slots[i].ID().String())
	}
}

func (suite *SlotRepositoryIntegrationTestSuite) TestGetForUpdate_BlocksSecondLocker() {
	ctx := context.Background()
	s := suite.newSlot("Pit 1", 1)
	suite.Require().NoError(suite.repository.Add(ctx, s))

	holder := suite.database.DB.Begin()
	_, err := slotrepo.NewGormSlotRepository(holder, suite.tracker).GetForUpdate(ctx, s.ID())
	suite.Require().NoError(err)

	waiter := suite.database.DB.Begin()
	defer waiter.Rollback()
	suite.Require().NoError(waiter.Exec("SET LOCAL lock_timeout = '200ms'").Error)

	_, err = slotrepo.NewGormSlotRepository(waiter, suite.tracker).GetForUpdate(ctx, s.ID())
	suite.Require().ErrorIs(err, errs.ErrStorageFailure)

	suite.Require().NoError(holder.Rollback().Error)
}

func (suite *SlotRepositoryIntegrationTestSuite) TestDelete_RemovesSlotWithChildren() {
	ctx := context.Background()
	s := suite.newSlot("Pit 1", 1)
	orderID := kernel.NewUUID()
	suite.Require().NoError(s.Assign(orderID, testNow))
	_, err := s.Release(orderID, testNow.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Require().NoError(suite.repository.Delete(ctx, s.ID()))

	_, err = suite.repository.Get(ctx, s.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var history int64
	suite.Require().NoError(suite.database.DB.Table("slot_history").Count(&history).Error)
	suite.Zero(history)
}

func (suite *SlotRepositoryIntegrationTestSuite) TestDelete_Missing_ReturnsNotFound() {
	err := suite.repository.Delete(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestSlotRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SlotRepositoryIntegrationTestSuite))
}
