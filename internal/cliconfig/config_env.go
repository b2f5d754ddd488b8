package cliconfig

import "os"

// EnvPrefix is the prefix of every environment variable listbench reads.
const EnvPrefix = "LISTBENCH_"

// ApplyEnvConfig applies configuration from environment variables (LISTBENCH_*).
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("container", os.Getenv(EnvPrefix+"CONTAINER"), &cfg.Container)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv(EnvPrefix+"LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setDuration("debounce", os.Getenv(EnvPrefix+"DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	if err := s.setBoolFromString("report", os.Getenv(EnvPrefix+"REPORT"), &cfg.Report); err != nil {
		return err
	}
	if err := s.setBoolFromString("watch", os.Getenv(EnvPrefix+"WATCH"), &cfg.Watch); err != nil {
		return err
	}

	return nil
}
