// Package scheduler wires robfig/cron behind the ports.Scheduler contract.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"JobScanner/internal/ports"
)

// CronScheduler runs registered jobs on cron expressions in a fixed
// timezone.
type CronScheduler struct {
	cron *cron.Cron
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// New builds a scheduler in the given location.
func New(location *time.Location) *CronScheduler {
	return &CronScheduler{
		cron: cron.New(cron.WithLocation(location)),
	}
}

// Add registers a job under a cron spec.
func (s *CronScheduler) Add(spec string, job func()) error {
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", spec, err)
	}
	return nil
}

// Start launches the cron loop in its own goroutine.
func (s *CronScheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling; running jobs are left to finish.
func (s *CronScheduler) Stop() {
	s.cron.Stop()
}
