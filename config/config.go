// Package config holds the tuning knobs of the calendar unit cache.
//
// Defaults match the values the cache was designed around: a global purge once
// more than 20480 entries are cached, keeping entries used at least half as often
// as the hottest one. Configuration can be overlaid from YAML:
//
//	size_threshold: 40960
//	purge_factor: 0.25
//	purge_on_write: false
//	idle_interval: 30s
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultSizeThreshold is the aggregate entry count above which a global purge runs.
	DefaultSizeThreshold = 20480

	// DefaultPurgeFactor is the fraction of the maximum usage count an entry needs to survive a purge.
	DefaultPurgeFactor = 0.5

	// DefaultIdleInterval is the minimum time between two idle-time purges.
	DefaultIdleInterval = 10 * time.Second
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config contains the cache tuning constants.
type Config struct {
	// SizeThreshold is the number of entries, summed over every unit type,
	// above which PurgeIfNeeded purges.
	SizeThreshold int `yaml:"size_threshold" validate:"gt=0"`

	// PurgeFactor is the retention fraction of the maximum observed usage.
	PurgeFactor float64 `yaml:"purge_factor" validate:"gte=0,lte=1"`

	// PurgeOnWrite makes every record call check the threshold.
	// Hosts that schedule purges themselves (see package idle) may turn it off.
	PurgeOnWrite bool `yaml:"purge_on_write"`

	// IdleInterval throttles idle-time purges.
	IdleInterval time.Duration `yaml:"idle_interval" validate:"gte=0"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		SizeThreshold: DefaultSizeThreshold,
		PurgeFactor:   DefaultPurgeFactor,
		PurgeOnWrite:  true,
		IdleInterval:  DefaultIdleInterval,
	}
}

var validate = validator.New()

// Validate checks every field and reports the first offending one.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s must satisfy %s=%s, got %v",
				ErrInvalidConfig, fe.Field(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Load reads a YAML file on top of Default and validates the result.
// Fields absent from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read cache config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse cache config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
