package jobs

import (
	"context"

	"checkout/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultOutboxRelaySchedule runs the relay every five seconds.
const DefaultOutboxRelaySchedule = "*/5 * * * * *"

type RelayOutboxHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes pending outbox messages on a schedule. Each run
// drains the outbox batch by batch; a run still in progress makes the next
// tick skip.
type OutboxRelayJob struct {
	handler  RelayOutboxHandler
	cmd      commands.RelayOutboxCommand
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewOutboxRelayJob(
	handler RelayOutboxHandler,
	schedule string,
	batchSize int,
	logger *zap.Logger,
) (*OutboxRelayJob, error) {
	cmd, err := commands.NewRelayOutboxCommand(batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}

	logger = logger.With(zap.String("component", "outbox_relay_job"))
	cronLogger := cronLogger{logger: logger}

	return &OutboxRelayJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}, nil
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started", zap.String("schedule", j.schedule))
	return nil
}

// Run relays batches until the outbox has no more pending messages or a
// batch fails. It returns the number of messages published.
func (j *OutboxRelayJob) Run(ctx context.Context) int {
	total := 0
	for {
		n, err := j.handler.Handle(ctx, j.cmd)
		total += n
		if err != nil {
			j.logger.Error("Outbox relay failed", zap.Error(err), zap.Int("published", total))
			return total
		}
		if n < j.cmd.BatchSize() {
			break
		}
	}

	if total > 0 {
		j.logger.Debug("Outbox relayed", zap.Int("published", total))
	}
	return total
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
