// Package scheduler runs periodic ledger maintenance jobs.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Runner schedules jobs on cron specs. Overlapping runs of the same job are
// skipped.
type Runner struct {
	cron    *cron.Cron
	log     zerolog.Logger
	baseCtx context.Context
}

func NewRunner(baseCtx context.Context, log zerolog.Logger) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	cl := cronLogger{log: log}
	return &Runner{
		cron:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		log:     log,
		baseCtx: baseCtx,
	}
}

// Add registers job under name.
func (r *Runner) Add(name, spec string, job func(context.Context)) error {
	_, err := r.cron.AddFunc(spec, func() {
		r.log.Debug().Str("job", name).Msg("cron job started")
		job(r.baseCtx)
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	return nil
}

func (r *Runner) Start() {
	r.log.Info().Int("jobs", len(r.cron.Entries())).Msg("cron started")
	r.cron.Start()
}

// Stop prevents new runs and waits for running jobs or ctx, whichever ends first.
func (r *Runner) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		r.log.Warn().Msg("cron stop timed out with jobs still running")
		return
	}
	r.log.Info().Msg("cron stopped")
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
