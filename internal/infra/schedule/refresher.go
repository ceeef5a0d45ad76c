package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

var ErrNoJob = errors.New("schedule: refresher has no job")

// Refresher runs Job on a cron schedule until its context ends. Spec takes
// the standard five fields or a descriptor such as "@every 10m". Runs never
// overlap; a tick that arrives while the previous run is busy is skipped.
type Refresher struct {
	Spec   string
	Job    func(ctx context.Context) error
	Logger *slog.Logger
}

// Validate parses a schedule without starting anything.
func Validate(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}
	return nil
}

func (r *Refresher) Run(ctx context.Context) error {
	if r.Job == nil {
		return ErrNoJob
	}
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(r.Spec, func() {
		if err := r.Job(ctx); err != nil {
			log.Warn("scheduled refresh failed", "schedule", r.Spec, "error", err)
			return
		}
		log.Debug("scheduled refresh done", "schedule", r.Spec)
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", r.Spec, err)
	}

	c.Start()
	log.Info("refresher started", "schedule", r.Spec)
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
