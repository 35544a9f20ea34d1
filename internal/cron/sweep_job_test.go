package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/nabeel-mp/foodish-backend/pkg/logger"
)

type fakeSweeper struct {
	assigned int
	err      error
	calls    int
}

func (f *fakeSweeper) SweepPending(ctx context.Context) (int, error) {
	f.calls++
	return f.assigned, f.err
}

func TestSweepJobRunsEngine(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	sweeper := &fakeSweeper{assigned: 2}
	job, err := NewSweepJob(SweepJobParams{Logger: logg, Engine: sweeper})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if job.Name() != "assignment-sweep" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if sweeper.calls != 1 {
		t.Fatalf("expected one sweep, got %d", sweeper.calls)
	}
}

func TestSweepJobPropagatesErrors(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	sweeper := &fakeSweeper{err: errors.New("db down")}
	job, err := NewSweepJob(SweepJobParams{Logger: logg, Engine: sweeper})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error from failed sweep")
	}
}
