package batch

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	appLog "eventdate/internal/log"
)

// Watch runs fn now and then on every tick of the standard cron spec until
// ctx is cancelled. A failing run is logged and does not stop the schedule.
// Ticks that arrive while a run is still going are skipped.
func Watch(ctx context.Context, spec string, fn func(context.Context) error) error {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return errors.Wrapf(err, "batch: watch spec %q", spec)
	}

	var mu sync.Mutex
	run := func() {
		if !mu.TryLock() {
			appLog.Warn("previous run still in progress, skipping tick", "watch", spec)
			return
		}
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		if err := fn(ctx); err != nil {
			appLog.Error("scheduled run failed", err, "watch", spec)
		}
	}

	run()

	c := cron.New()
	c.Schedule(sched, cron.FuncJob(run))
	c.Start()
	appLog.Info("watching", "watch", spec, "next", sched.Next(time.Now()).Format(time.RFC3339))

	<-ctx.Done()
	<-c.Stop().Done()
	appLog.Info("watch stopped", "watch", spec)
	return nil
}
