package solver

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the solver's tunable construction and search coefficients.
// The spec fixes only their structural form (§4.3 of the design) — a
// randomized, retry-bounded construction loop with a bounded path search —
// and leaves the exact numbers implementer-tunable. Defaults apply unless
// overridden by a config file or a PROFIT_-prefixed environment variable.
type Config struct {
	// PlacementRetries is how many candidate anchors the factory placement
	// stage samples before abandoning a product. Mine placement does not use
	// it: it tries every deposit border cell against every rotation.
	PlacementRetries int `mapstructure:"placement_retries"`
	// PathStepBudget bounds how many segments the path-routing stage will
	// attempt before giving up on one mine-to-factory connection.
	PathStepBudget int `mapstructure:"path_step_budget"`
	// PathBacktrackDepth bounds how many consecutive failed steps a path
	// search tolerates; one more failure abandons the route. Segments already
	// placed are kept, not undone.
	PathBacktrackDepth int `mapstructure:"path_backtrack_depth"`
	// FactoriesPerPass caps how many factories one construction pass will
	// attempt to place before scoring and starting the next pass.
	FactoriesPerPass int `mapstructure:"factories_per_pass"`
	// CombinerMergeChance is the probability (0-1) that a path route near
	// its goal is finished through a combiner instead of a direct conveyor
	// hookup, giving the combiner building some exercise.
	CombinerMergeChance float64 `mapstructure:"combiner_merge_chance"`
	// DeadlineSafetyMarginSeconds is the tail slice of the wall-clock budget
	// the main goroutine reserves for result accumulation before signalling
	// stop (§4.3's expansion: clamped 500ms-1500ms by LoadConfig).
	DeadlineSafetyMarginSeconds float64 `mapstructure:"deadline_safety_margin_seconds"`
}

// DefaultConfig returns the built-in tuning coefficients used when no
// config file or environment override is present.
func DefaultConfig() Config {
	return Config{
		PlacementRetries:            40,
		PathStepBudget:              400,
		PathBacktrackDepth:          6,
		FactoriesPerPass:            3,
		CombinerMergeChance:         0.15,
		DeadlineSafetyMarginSeconds: 1.0,
	}
}

// LoadConfig reads solver tuning parameters from an optional file plus
// PROFIT_-prefixed environment variables, falling back to DefaultConfig for
// anything neither sets. path may be empty, in which case only environment
// variables and defaults apply.
func LoadConfig(path string) (Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("PROFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("placement_retries", def.PlacementRetries)
	v.SetDefault("path_step_budget", def.PathStepBudget)
	v.SetDefault("path_backtrack_depth", def.PathBacktrackDepth)
	v.SetDefault("factories_per_pass", def.FactoriesPerPass)
	v.SetDefault("combiner_merge_chance", def.CombinerMergeChance)
	v.SetDefault("deadline_safety_margin_seconds", def.DeadlineSafetyMarginSeconds)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return def, fmt.Errorf("solver: reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("solver: unmarshal config: %w", err)
	}

	if cfg.DeadlineSafetyMarginSeconds < 0.5 {
		cfg.DeadlineSafetyMarginSeconds = 0.5
	} else if cfg.DeadlineSafetyMarginSeconds > 1.5 {
		cfg.DeadlineSafetyMarginSeconds = 1.5
	}
	return cfg, nil
}
