package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/crucial707/fleet-pm/internal/runner"
	"github.com/robfig/cron/v3"
)

// Run starts the periodic evaluation driver: at each tick of cronSpec it
// runs one full evaluation pass over all active schedules and logs the
// summary. Blocks forever; the host process owns shutdown.
func Run(cronSpec string, r *runner.Runner) error {
	c := cron.New()

	_, err := c.AddFunc(cronSpec, func() {
		sum, err := r.RunPass(context.Background(), time.Now())
		if err != nil {
			log.Printf("scheduler: evaluation pass failed: %v", err)
			return
		}
		log.Printf("scheduler: pass done checked=%d fired=%d not_due=%d duplicate=%d degraded=%d errors=%d",
			sum.Checked, sum.Fired, sum.SkippedNotDue, sum.SkippedDuplicate, sum.Degraded, sum.Errors)
		if len(sum.ErroredScheduleIDs) > 0 {
			log.Printf("scheduler: schedules with errors: %v", sum.ErroredScheduleIDs)
		}
	})
	if err != nil {
		return err
	}

	log.Printf("scheduler: evaluation pass scheduled with cron=%q", cronSpec)
	c.Start()
	select {} // run until the process is killed
}
