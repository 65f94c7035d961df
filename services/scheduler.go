// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartScheduler wires the background housekeeping jobs. The returned
// scheduler should be shut down on exit.
func StartScheduler() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	// Daily: drop guest accounts idle for 30 days
	_, err = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			if svc := GetCleanupService(); svc != nil {
				if err := svc.CleanupStaleGuests(); err != nil {
					log.Printf("[Scheduler] Guest cleanup failed: %v", err)
				}
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	// Hourly: enforce unlock-log retention
	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if svc := GetCleanupService(); svc != nil {
				if err := svc.TrimUnlockEvents(100); err != nil {
					log.Printf("[Scheduler] Unlock event trim failed: %v", err)
				}
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
