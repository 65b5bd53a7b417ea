package config

import "formflow/internal/model"

// GradingConfig holds the defaults applied to a field's grading block when it
// leaves them unset
type GradingConfig struct {
	Mode             model.GradingMode `json:"mode"`
	PassingThreshold int               `json:"passingThreshold"`
	Points           int               `json:"points"`
}

// DefaultGradingConfig returns the grading defaults, overridable from the environment
func DefaultGradingConfig() *GradingConfig {
	cfg := &GradingConfig{
		Mode:             model.GradingMode(getEnvOrDefault("GRADING_DEFAULT_MODE", string(model.GradingCombined))),
		PassingThreshold: getIntOrDefault("GRADING_PASSING_THRESHOLD", 60),
		Points:           getIntOrDefault("GRADING_DEFAULT_POINTS", 10),
	}
	if !cfg.Mode.Known() {
		cfg.Mode = model.GradingCombined
	}
	return cfg
}

// Apply fills zero-valued settings of g from the defaults and returns a copy
func (c *GradingConfig) Apply(g model.GradingConfig) model.GradingConfig {
	if g.Mode == "" {
		g.Mode = c.Mode
	}
	if g.PassingThreshold == 0 {
		g.PassingThreshold = c.PassingThreshold
	}
	if g.Points == 0 {
		g.Points = c.Points
	}
	return g
}
