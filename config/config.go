package config

import (
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"
)

// Config holds everything that can be tuned at process start. There are no
// config files and no environment variables; cobra flags populate it.
type Config struct {
	// Workers is the number of traversal goroutines per volume, 0 means
	// GOMAXPROCS.
	Workers        int      `json:"workers" validate:"gte=0,lte=1024"`
	FollowSymlinks bool     `json:"follow_symlinks"`
	ExportDir      string   `json:"export_dir" validate:"required"`
	TopN           int      `json:"top_n" validate:"gte=1,lte=1000"`
	LogLevel       string   `json:"log_level" validate:"oneof=debug info warn error"`
	AllPartitions  bool     `json:"all_partitions"`
	Roots          []string `json:"roots" validate:"dive,required"`
}

func Default() Config {
	return Config{
		Workers:   0,
		ExportDir: ".",
		TopN:      5,
		LogLevel:  "info",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// NumWorkers resolves the effective worker count.
func (c *Config) NumWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
