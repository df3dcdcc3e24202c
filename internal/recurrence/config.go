package recurrence

import (
	"fmt"
)

// Config controls recurrence detection
type Config struct {
	// MatchThreshold is the minimum number of member transactions required
	// to emit a pattern
	MatchThreshold int `json:"match_threshold"`

	// DeviationCeiling is the maximum mean relative deviation for a
	// canonical interval to qualify as a candidate
	DeviationCeiling float64 `json:"deviation_ceiling"`
}

// DefaultConfig returns the default recurrence configuration
func DefaultConfig() *Config {
	return &Config{
		MatchThreshold:   3,
		DeviationCeiling: 0.2,
	}
}

// StrictConfig returns a configuration demanding more members and tighter
// interval fit
func StrictConfig() *Config {
	return &Config{
		MatchThreshold:   4,
		DeviationCeiling: 0.1,
	}
}

// RelaxedConfig returns a configuration admitting looser interval fit
func RelaxedConfig() *Config {
	return &Config{
		MatchThreshold:   3,
		DeviationCeiling: 0.3,
	}
}

// Validate checks the recurrence configuration
func (c *Config) Validate() error {
	if c.MatchThreshold < 2 {
		return fmt.Errorf("match threshold must be at least 2: %d", c.MatchThreshold)
	}
	if c.DeviationCeiling <= 0 || c.DeviationCeiling >= 1 {
		return fmt.Errorf("deviation ceiling must be in (0,1): %g", c.DeviationCeiling)
	}
	return nil
}
