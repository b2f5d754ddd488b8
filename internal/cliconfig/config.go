package cliconfig

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/listbench/internal/logging"
)

// Workload names accepted by --container.
const (
	ContainerList = "list"
	ContainerMap  = "map"
)

// Log formats accepted by --log-format.
const (
	LogFormatAuto    = logging.FormatAuto
	LogFormatConsole = logging.FormatConsole
	LogFormatJSON    = logging.FormatJSON
)

// ErrUnknownContainer is returned by Validate for an unsupported workload.
var ErrUnknownContainer = errors.New("unknown container")

// Config holds the CLI options for listbench. The two positional
// arguments are not part of it; see ParseArgs.
type Config struct {
	Container string
	Report    bool

	LogLevel  string
	LogFormat string

	Watch    bool
	Debounce time.Duration
}

// DefaultConfig returns a Config with default values. LogLevel is left empty
// and derived by Validate.
func DefaultConfig() Config {
	return Config{
		Container: ContainerList,
		LogFormat: LogFormatAuto,
		Debounce:  100 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
// An unset LogLevel becomes info when Report is on, so the report is visible,
// and warn otherwise, so a plain run stays silent.
func (c *Config) Validate() error {
	if c.LogLevel == "" {
		c.LogLevel = zerolog.WarnLevel.String()
		if c.Report {
			c.LogLevel = zerolog.InfoLevel.String()
		}
	}

	switch c.Container {
	case ContainerList, ContainerMap:
	default:
		return fmt.Errorf("%w %q (want %s or %s)", ErrUnknownContainer, c.Container, ContainerList, ContainerMap)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	switch c.LogFormat {
	case LogFormatAuto, LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	return nil
}

// configSetter applies values while respecting flag precedence.
// It only writes a value if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses an environment value with strconv.ParseBool.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
