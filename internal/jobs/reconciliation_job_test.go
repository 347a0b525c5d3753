package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"lechon/internal/core/application/usecases/commands"
	"lechon/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReconcileHandler struct {
	mock.Mock
}

func (m *MockReconcileHandler) Handle(ctx context.Context, cmd commands.ReconcileAssignmentsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReconciliationJob_RunsOnSchedule(t *testing.T) {
	handler := &MockReconcileHandler{}
	calls := make(chan struct{}, 10)
	handler.On("Handle", mock.Anything, mock.AnythingOfType("commands.ReconcileAssignmentsCommand")).
		Run(func(args mock.Arguments) {
			cmd := args.Get(1).(commands.ReconcileAssignmentsCommand)
			assert.NoError(t, cmd.Validate())
			calls <- struct{}{}
		}).
		Return(1, nil)

	job := jobs.NewReconciliationJob(handler, "* * * * * *", discardLogger())
	require.NoError(t, job.Start())

	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("reconciliation did not run")
	}
	job.Stop()
}

func TestReconciliationJob_KeepsRunningAfterFailure(t *testing.T) {
	handler := &MockReconcileHandler{}
	calls := make(chan struct{}, 10)
	handler.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { calls <- struct{}{} }).
		Return(0, errors.New("database is down"))

	job := jobs.NewReconciliationJob(handler, "* * * * * *", discardLogger())
	require.NoError(t, job.Start())

	for range 2 {
		select {
		case <-calls:
		case <-time.After(3 * time.Second):
			t.Fatal("reconciliation stopped after a failure")
		}
	}
	job.Stop()
}

func TestReconciliationJob_InvalidSchedule(t *testing.T) {
	handler := &MockReconcileHandler{}

	job := jobs.NewReconciliationJob(handler, "every minute", discardLogger())

	require.Error(t, job.Start())
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestJobManager_StartAndStop(t *testing.T) {
	handler := &MockReconcileHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()

	manager := jobs.NewJobManager(handler, "", discardLogger())

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

func TestJobManager_ReportsBadSchedule(t *testing.T) {
	manager := jobs.NewJobManager(&MockReconcileHandler{}, "61 * * * * *", discardLogger())

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reconciliation job")
}
