package cron

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestRegistry_Register_Jobs(t *testing.T) {
	ran := false
	Register("testregistryjob", "@every 1h", func(args ...string) {
		ran = true
	})
	defer Unregister("testregistryjob")

	jobs := Jobs()
	j, ok := jobs["testregistryjob"]
	if !ok {
		t.Fatal("testregistryjob not in Jobs()")
	}
	if j.Schedule != "@every 1h" {
		t.Errorf("Schedule = %q, want @every 1h", j.Schedule)
	}
	j.Run()
	if !ran {
		t.Error("Run did not execute")
	}
}

func TestRegistry_Register_DuplicatePanics(t *testing.T) {
	Register("dupjob", "@hourly", func(...string) {})
	defer Unregister("dupjob")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate")
		}
	}()
	Register("dupjob", "@daily", func(...string) {})
}

func TestStartCron_SkipsUnscheduledAndRejectsBadSpec(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	Register("manualjob", "", func(...string) {})
	c, err := StartCron(logger)
	if err != nil {
		t.Fatalf("StartCron: %v", err)
	}
	if n := len(c.Entries()); n != 0 {
		t.Errorf("scheduled entries = %d, want 0", n)
	}
	<-c.Stop().Done()
	Unregister("manualjob")

	Register("badjob", "every now and then", func(...string) {})
	defer Unregister("badjob")
	if _, err := StartCron(logger); err == nil {
		t.Error("expected error for invalid schedule")
	}
}

func TestStartCron_RunsScheduledJob(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	fired := make(chan struct{}, 1)
	Register("tickjob", "@every 1s", func(...string) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	defer Unregister("tickjob")

	c, err := StartCron(logger)
	if err != nil {
		t.Fatalf("StartCron: %v", err)
	}
	defer c.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled job did not run")
	}
}
