package cron

import (
	"context"
	"fmt"

	"github.com/nabeel-mp/foodish-backend/pkg/logger"
	"github.com/nabeel-mp/foodish-backend/pkg/metrics"
)

type pendingSweeper interface {
	SweepPending(ctx context.Context) (int, error)
}

// SweepJobParams configure the assignment sweep job.
type SweepJobParams struct {
	Logger  *logger.Logger
	Engine  pendingSweeper
	Metrics *metrics.CronJobMetrics
}

// NewSweepJob builds the cron job that assigns queued orders to freed agents.
func NewSweepJob(params SweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Engine == nil {
		return nil, fmt.Errorf("assignment engine required")
	}
	return &sweepJob{
		logg:    params.Logger,
		engine:  params.Engine,
		metrics: params.Metrics,
	}, nil
}

type sweepJob struct {
	logg    *logger.Logger
	engine  pendingSweeper
	metrics *metrics.CronJobMetrics
}

func (j *sweepJob) Name() string { return "assignment-sweep" }

func (j *sweepJob) Run(ctx context.Context) error {
	assigned, err := j.engine.SweepPending(ctx)
	if j.metrics != nil && assigned > 0 {
		j.metrics.AddOrdersAssigned(assigned)
	}
	logCtx := j.logg.WithField(ctx, "assigned", assigned)
	if err != nil {
		j.logg.Error(logCtx, "sweep finished with errors", err)
		return err
	}
	j.logg.Info(logCtx, "sweep complete")
	return nil
}
