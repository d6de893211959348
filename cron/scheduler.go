package cron

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartCron schedules every registered job that has a schedule and starts the
// scheduler. A panicking job is logged and recovered.
func StartCron(logger *logrus.Logger) (*cron.Cron, error) {
	log := cron.PrintfLogger(logger.WithField("component", "cron"))
	c := cron.New(cron.WithLogger(log), cron.WithChain(cron.Recover(log)))
	for name, j := range Jobs() {
		if j.Schedule == "" {
			logger.WithField("job", name).Debug("job has no schedule, skipped")
			continue
		}
		run := j.Run
		if _, err := c.AddFunc(j.Schedule, func() { run() }); err != nil {
			return nil, fmt.Errorf("register job %s: %w", name, err)
		}
		logger.WithFields(logrus.Fields{"job": name, "schedule": j.Schedule}).Info("cron job scheduled")
	}
	c.Start()
	return c, nil
}
