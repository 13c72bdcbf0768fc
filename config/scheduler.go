package config

import (
	"main/utils"
	"time"
)

type SchedulerConfig struct {
	SweepInterval time.Duration
}

func LoadSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		SweepInterval: utils.GetEnvAsDuration("REMINDER_SWEEP_INTERVAL", time.Minute),
	}
}
