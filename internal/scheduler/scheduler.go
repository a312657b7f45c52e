/*
Package scheduler runs the report job on a cron schedule in the exchange timezone.
*/
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSpec fires at 10:01:00 exchange time on weekdays, after the window closes.
const DefaultSpec = "0 1 10 * * 1-5"

// Job is one report run.
type Job func(ctx context.Context) error

// Scheduler triggers a Job on a cron spec with a seconds field.
type Scheduler struct {
	Cron *cron.Cron
	Ctx  context.Context
}

// NewScheduler registers job under spec. Overlapping triggers are skipped, so at most
// one run is in flight.
func NewScheduler(ctx context.Context, spec string, loc *time.Location, job Job) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	s := &Scheduler{Cron: c, Ctx: ctx}
	if _, err := c.AddFunc(spec, func() { s.run(job) }); err != nil {
		return nil, fmt.Errorf("register report task %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) run(job Job) {
	if err := job(s.Ctx); err != nil {
		log.Printf("Error: scheduled report failed: %v", err)
	}
}

// Next returns the next activation time.
func (s *Scheduler) Next() time.Time {
	entries := s.Cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Printf("Scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Printf("Scheduler stopped")
}
