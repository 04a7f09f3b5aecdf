package commands_test

import (
	"errors"
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRelayOutboxCommand(t *testing.T) {
	cmd, err := commands.NewRelayOutboxCommand(50)
	require.NoError(t, err)
	assert.Equal(t, 50, cmd.BatchSize())

	_, err = commands.NewRelayOutboxCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRelayOutboxCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	messages := []ports.OutboxMessage{
		{ID: kernel.NewUUID(), Name: "order.placed", AggregateID: kernel.NewUUID(), Payload: []byte(`{}`), OccurredAt: time.Now()},
		{ID: kernel.NewUUID(), Name: "order.placed", AggregateID: kernel.NewUUID(), Payload: []byte(`{}`), OccurredAt: time.Now()},
	}

	outbox := new(MockOutboxRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)
	factory := new(MockOutboxUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outbox).Once(),
		outbox.On("FetchPending", ctx, 10).Return(messages, nil).Once(),
		publisher.On("Publish", ctx, messages).Return(nil).Once(),
		outbox.On("MarkSent", ctx, []kernel.UUID{messages[0].ID, messages[1].ID}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	n, err := commands.NewRelayOutboxCommandHandler(factory, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle_NothingPending(t *testing.T) {
	ctx := t.Context()

	outbox := new(MockOutboxRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)
	factory := new(MockOutboxUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outbox).Once()
	outbox.On("FetchPending", ctx, 10).Return([]ports.OutboxMessage{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	n, err := commands.NewRelayOutboxCommandHandler(factory, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, n)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRelayOutboxCommandHandler_Handle_PublishFails(t *testing.T) {
	ctx := t.Context()
	messages := []ports.OutboxMessage{{ID: kernel.NewUUID(), Name: "order.placed"}}

	outbox := new(MockOutboxRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)
	factory := new(MockOutboxUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outbox).Once()
	outbox.On("FetchPending", ctx, 1).Return(messages, nil).Once()
	publisher.On("Publish", ctx, messages).Return(errors.New("broker unavailable")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewRelayOutboxCommand(1)
	require.NoError(t, err)

	_, err = commands.NewRelayOutboxCommandHandler(factory, publisher).Handle(ctx, cmd)

	require.EqualError(t, err, "broker unavailable")
	outbox.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
