package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ngaut/log"
	"github.com/pingcap/errors"
)

// Config holds the engine settings for the transaction resource core and its
// compactor.
type Config struct {
	LogLevel string `toml:"log-level"`

	// Interval between compaction passes.
	CompactionInterval Duration `toml:"compaction-interval"`

	// Upper bound on concurrently registered ditches per collection. A full
	// list rejects further ditch requests, which aborts the requesting
	// operation. Zero means unbounded.
	MaxDitchesPerCollection int `toml:"max-ditches-per-collection"`

	// Number of builders a transaction context keeps pooled between leases.
	MaxPooledBuilders int `toml:"max-pooled-builders"`

	// Initial capacity of the per-context cached string buffer.
	StringBufferSize int `toml:"string-buffer-size"`
}

// Duration wraps time.Duration so values like "10s" parse from TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Trace(err)
	}
	d.Duration = v
	return nil
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:                "info",
		CompactionInterval:      Duration{10 * time.Second},
		MaxDitchesPerCollection: 0,
		MaxPooledBuilders:       32,
		StringBufferSize:        4096,
	}
}

func (c *Config) Validate() error {
	if c.CompactionInterval.Duration <= 0 {
		return errors.New("compaction interval must be greater than 0")
	}
	if c.MaxDitchesPerCollection < 0 {
		return errors.New("max ditches per collection must not be negative")
	}
	if c.MaxPooledBuilders <= 0 {
		return errors.New("max pooled builders must be greater than 0")
	}
	if c.StringBufferSize <= 0 {
		return errors.New("string buffer size must be greater than 0")
	}
	return nil
}

// FromTOML loads a config file on top of the defaults and validates it.
func FromTOML(path string) (*Config, error) {
	c := NewDefaultConfig()
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, errors.Annotatef(err, "config file %s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log.SetLevelByString(c.LogLevel)
	return c, nil
}
