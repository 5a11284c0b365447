package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type GoalCounter interface {
	OpenEventGoals(ctx context.Context, at time.Time) (map[uint]int64, error)
}

// GoalGaugeJob periodically publishes the goal count of every open event.
type GoalGaugeJob struct {
	counter  GoalCounter
	sink     func(map[uint]int64)
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	now      func() time.Time
}

func NewGoalGaugeJob(counter GoalCounter, sink func(map[uint]int64), schedule string) *GoalGaugeJob {
	return &GoalGaugeJob{
		counter:  counter,
		sink:     sink,
		schedule: schedule,
		timeout:  30 * time.Second,
		cron:     cron.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (j *GoalGaugeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if err := j.RunOnce(ctx); err != nil {
			zap.L().Warn("goal gauge refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("j.cron.AddFunc -> %w", err)
	}

	j.cron.Start()
	zap.L().Info("goal gauge job started", zap.String("schedule", j.schedule))

	return nil
}

// Stop waits for a running refresh to finish.
func (j *GoalGaugeJob) Stop() {
	<-j.cron.Stop().Done()
}

func (j *GoalGaugeJob) RunOnce(ctx context.Context) error {
	counts, err := j.counter.OpenEventGoals(ctx, j.now())
	if err != nil {
		return fmt.Errorf("j.counter.OpenEventGoals -> %w", err)
	}

	j.sink(counts)

	return nil
}
