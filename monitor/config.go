package monitor

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/tauzero/tbamon/state"
)

// Interval is a closed integer bound [Lo, Hi], used for the latency
// options.
type Interval struct {
	Lo, Hi int64
}

// Config holds the recognized options of spec.md §6, plus the
// supplemented StrictLabels and Concurrent options (SPEC_FULL.md §3–§4).
// The zero value is a usable, fully permissive Config: no inclusion
// reduction, no latency/jitter compensation, plain state flavor.
type Config struct {
	Inclusion        bool     `mapstructure:"inclusion"`
	ClockAbstraction bool     `mapstructure:"clock_abstraction"`
	Latency          *Interval `mapstructure:"latency"`
	Jitter           int64    `mapstructure:"jitter"`
	LatencyIn        *Interval `mapstructure:"latency_i"`
	JitterIn         int64    `mapstructure:"jitter_i"`

	DivergenceAlphabet []string `mapstructure:"divergence_alphabet"`

	// StrictLabels rejects observations whose label is missing from the
	// alphabet of an active side (each side checks its own), instead of
	// silently treating them as non-matching (SPEC_FULL.md's supplemented
	// strict-label-set mode).
	StrictLabels bool `mapstructure:"strict_labels"`

	// Concurrent steps the φ and ¬φ sides of a DualMonitor in parallel
	// goroutines (spec.md §5 permits this; SPEC_FULL.md wires it via
	// errgroup). Defaults to false for deterministic test execution.
	Concurrent bool `mapstructure:"concurrent"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// inclusion reports whether successor lists use subsumption reduction:
// ClockAbstraction implies it, per spec.md §6's option table.
func (c Config) inclusion() bool {
	return c.Inclusion || c.ClockAbstraction
}

// flavor selects the symbolic-state flavor implied by the latency
// options: Testing when an inbound latency bound is configured, Delay
// when only an outbound one is, Plain otherwise.
func (c Config) flavor() state.Flavor {
	switch {
	case c.LatencyIn != nil:
		return state.Testing
	case c.Latency != nil:
		return state.Delay
	default:
		return state.Plain
	}
}

// DefaultConfig returns a Config with sensible logging defaults and
// every monitoring option off.
func DefaultConfig() Config {
	return Config{LogLevel: "info", LogFormat: "json"}
}

// LoadConfig reads a YAML file into a Config, following the same
// viper.New / SetConfigFile / ReadInConfig / Unmarshal sequence as
// niceyeti-tabular's reinforcement.FromYaml.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	if err := vp.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("monitor: read config %s: %w", path, err)
	}
	if err := vp.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("monitor: unmarshal config %s: %w", path, err)
	}
	return cfg, nil
}
