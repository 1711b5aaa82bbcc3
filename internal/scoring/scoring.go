package scoring

import (
	"fmt"
	"math"

	"github.com/wlgs/fatigue-detection-system/internal/driver"
)

// weightTolerance bounds the acceptable drift of the weight sum from 1.
const weightTolerance = 1e-4

// #region model

// Model maps vitals to a fatigue probability, an alarm flag, and a
// per-signal contribution breakdown. Immutable after construction.
type Model struct {
	config Config
}

// NewModel validates the configuration and fails fast on weights that
// do not normalize, cutoffs out of order, or thresholds out of range.
func NewModel(config Config) (*Model, error) {
	var weightSum float32
	for _, s := range driver.AllSignals {
		sc, ok := config.Signals[s]
		if !ok {
			return nil, fmt.Errorf("scoring: missing configuration for signal %q", s)
		}
		if sc.Weight < 0 {
			return nil, fmt.Errorf("scoring: negative weight for signal %q", s)
		}
		weightSum += sc.Weight
		if err := checkCutoffs(s, sc); err != nil {
			return nil, err
		}
	}
	if math.Abs(float64(weightSum-1)) > weightTolerance {
		return nil, fmt.Errorf("scoring: signal weights sum to %.6f, want 1", weightSum)
	}
	for i := 1; i < len(config.Severities); i++ {
		if config.Severities[i] <= config.Severities[i-1] {
			return nil, fmt.Errorf("scoring: bin severities must strictly increase, got %v", config.Severities)
		}
	}
	if config.Severities[0] < 0 || config.Severities[len(config.Severities)-1] > 1 {
		return nil, fmt.Errorf("scoring: bin severities must lie in [0,1], got %v", config.Severities)
	}
	if config.Scale <= 0 {
		return nil, fmt.Errorf("scoring: scale must be positive, got %.4f", config.Scale)
	}
	if config.AlarmThreshold < 0 || config.AlarmThreshold > 1 {
		return nil, fmt.Errorf("scoring: alarm threshold %.4f outside [0,1]", config.AlarmThreshold)
	}
	return &Model{config: config}, nil
}

func checkCutoffs(s driver.Signal, sc SignalScoring) error {
	c := sc.Cutoffs
	if sc.LowIsSevere {
		if !(c[0] > c[1] && c[1] > c[2]) {
			return fmt.Errorf("scoring: cutoffs for %q must strictly decrease toward severity, got %v", s, c)
		}
		return nil
	}
	if !(c[0] < c[1] && c[1] < c[2]) {
		return fmt.Errorf("scoring: cutoffs for %q must strictly increase toward severity, got %v", s, c)
	}
	return nil
}

// Config returns a copy of the validated configuration.
func (m *Model) Config() Config {
	return m.config
}

// #endregion model

// #region score

// Score discretizes each reading into its severity bin, weights the bin
// severities, scales, and clamps. Pure; never errors at runtime. A
// reading outside every bin range lands in the nearest extreme bin.
func (m *Model) Score(v driver.Vitals) Result {
	contributions := make([]Contribution, 0, len(driver.AllSignals))
	var sum float32

	for _, s := range driver.AllSignals {
		sc := m.config.Signals[s]
		val := v.Value(s)
		bin := binFor(val, sc)
		severity := m.config.Severities[bin]
		share := severity * sc.Weight
		sum += share
		contributions = append(contributions, Contribution{
			Signal:   s,
			Value:    val,
			Bin:      bin,
			Severity: severity,
			Weight:   sc.Weight,
			Share:    share,
		})
	}

	probability := clamp01(sum * m.config.Scale)
	return Result{
		Probability:   probability,
		Alarm:         probability >= m.config.AlarmThreshold,
		Contributions: contributions,
	}
}

// binFor checks bins from most to least severe so a reading exactly at
// a boundary resolves to the higher-severity bin.
func binFor(val float32, sc SignalScoring) Bin {
	if sc.LowIsSevere {
		switch {
		case val <= sc.Cutoffs[2]:
			return BinVeryFatigued
		case val <= sc.Cutoffs[1]:
			return BinFatigued
		case val <= sc.Cutoffs[0]:
			return BinSlightlyFatigued
		}
		return BinRested
	}
	switch {
	case val >= sc.Cutoffs[2]:
		return BinVeryFatigued
	case val >= sc.Cutoffs[1]:
		return BinFatigued
	case val >= sc.Cutoffs[0]:
		return BinSlightlyFatigued
	}
	return BinRested
}

// #endregion score

// #region helpers

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion helpers
