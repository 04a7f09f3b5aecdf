package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRelayOutboxHandler struct{ mock.Mock }

func (m *MockRelayOutboxHandler) Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func TestNewOutboxRelayJob_Validation(t *testing.T) {
	_, err := jobs.NewOutboxRelayJob(new(MockRelayOutboxHandler), "", 0, zap.NewNop())
	require.Error(t, err)

	_, err = jobs.NewOutboxRelayJob(new(MockRelayOutboxHandler), "", 10, zap.NewNop())
	require.NoError(t, err)
}

func TestOutboxRelayJob_Run_DrainsFullBatches(t *testing.T) {
	ctx := t.Context()
	handler := new(MockRelayOutboxHandler)
	batch := mock.MatchedBy(func(cmd commands.RelayOutboxCommand) bool { return cmd.BatchSize() == 3 })

	mock.InOrder(
		handler.On("Handle", ctx, batch).Return(3, nil).Once(),
		handler.On("Handle", ctx, batch).Return(3, nil).Once(),
		handler.On("Handle", ctx, batch).Return(1, nil).Once(),
	)

	job, err := jobs.NewOutboxRelayJob(handler, "", 3, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 7, job.Run(ctx))
	handler.AssertExpectations(t)
}

func TestOutboxRelayJob_Run_StopsOnError(t *testing.T) {
	ctx := t.Context()
	handler := new(MockRelayOutboxHandler)

	mock.InOrder(
		handler.On("Handle", ctx, mock.Anything).Return(2, nil).Once(),
		handler.On("Handle", ctx, mock.Anything).Return(0, errors.New("broker unavailable")).Once(),
	)

	job, err := jobs.NewOutboxRelayJob(handler, "", 2, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 2, job.Run(ctx))
	handler.AssertExpectations(t)
}

func TestOutboxRelayJob_Run_EmptyOutbox(t *testing.T) {
	ctx := t.Context()
	handler := new(MockRelayOutboxHandler)
	handler.On("Handle", ctx, mock.Anything).Return(0, nil).Once()

	job, err := jobs.NewOutboxRelayJob(handler, "", 10, zap.NewNop())
	require.NoError(t, err)

	assert.Zero(t, job.Run(ctx))
	handler.AssertExpectations(t)
}

func TestOutboxRelayJob_Start_RunsOnSchedule(t *testing.T) {
	handler := new(MockRelayOutboxHandler)
	called := make(chan struct{}, 10)
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Run(func(mock.Arguments) {
		select {
		case called <- struct{}{}:
		default:
		}
	})

	job, err := jobs.NewOutboxRelayJob(handler, "* * * * * *", 10, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-called:
	case <-time.After(3 * time.Second):
		t.Fatal("relay did not run")
	}
}

func TestOutboxRelayJob_Start_InvalidSchedule(t *testing.T) {
	job, err := jobs.NewOutboxRelayJob(new(MockRelayOutboxHandler), "every now and then", 10, zap.NewNop())
	require.NoError(t, err)

	require.Error(t, job.Start())
}
