package tui

import (
	"time"

	"github.com/riadafridishibly/diskviz/report"
)

type Config struct {
	ReplaceHomeWithTilde bool          `json:"replace_home_with_tilde"`
	TickInterval         time.Duration `json:"tick_interval"`
	TopN                 int           `json:"top_n"`
}

func (c Config) withDefaults() Config {
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	if c.TopN <= 0 {
		c.TopN = report.DefaultTopN
	}
	return c
}
