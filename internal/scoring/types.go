package scoring

import "github.com/wlgs/fatigue-detection-system/internal/driver"

// #region bin

// Bin is the ordinal severity category a raw reading is discretized
// into, ordered from least to most severe.
type Bin int

const (
	BinRested Bin = iota
	BinSlightlyFatigued
	BinFatigued
	BinVeryFatigued
)

func (b Bin) String() string {
	switch b {
	case BinRested:
		return "rested"
	case BinSlightlyFatigued:
		return "slightly_fatigued"
	case BinFatigued:
		return "fatigued"
	case BinVeryFatigued:
		return "very_fatigued"
	}
	return "unknown"
}

// #endregion bin

// #region signal-scoring

// SignalScoring holds one signal's discretization and weight.
type SignalScoring struct {
	// Weight is the signal's normalized share of the fatigue score.
	// Weights across all six signals must sum to 1.
	Weight float32

	// Cutoffs are the three bin boundaries ordered by increasing
	// severity (slightly_fatigued, fatigued, very_fatigued). For a
	// LowIsSevere signal they must strictly decrease; otherwise they
	// must strictly increase. A reading exactly at a cutoff resolves to
	// the more severe bin.
	Cutoffs [3]float32

	// LowIsSevere marks signals whose value drops as fatigue grows
	// (heart rate, HRV, EDA).
	LowIsSevere bool
}

// #endregion signal-scoring

// #region config

// Config is the immutable scoring configuration. Validated once at
// construction; configuration errors never surface at scoring time.
type Config struct {
	Signals map[driver.Signal]SignalScoring

	// Severities are the per-bin severity weights, strictly increasing
	// within [0,1], indexed by Bin.
	Severities [4]float32

	// Scale widens the practical output range: weighted sums of small
	// per-bin severities otherwise cluster near zero.
	Scale float32

	// AlarmThreshold is the fatigue probability at or above which the
	// alarm fires.
	AlarmThreshold float32
}

// DefaultConfig returns the scoring defaults. Weights mirror the
// detector's published table (HRV and PERCLOS carry the most signal);
// cutoffs bracket each signal's borderline and severe ranges.
func DefaultConfig() Config {
	return Config{
		Signals: map[driver.Signal]SignalScoring{
			driver.SignalHeartRate:     {Weight: 0.15, Cutoffs: [3]float32{63, 57, 51}, LowIsSevere: true},
			driver.SignalHRV:           {Weight: 0.20, Cutoffs: [3]float32{34, 28, 22}, LowIsSevere: true},
			driver.SignalEDA:           {Weight: 0.15, Cutoffs: [3]float32{3.4, 2.6, 1.8}, LowIsSevere: true},
			driver.SignalPerclos:       {Weight: 0.20, Cutoffs: [3]float32{0.35, 0.45, 0.55}},
			driver.SignalBlinkDuration: {Weight: 0.15, Cutoffs: [3]float32{440, 530, 620}},
			driver.SignalBlinkRate:     {Weight: 0.15, Cutoffs: [3]float32{21, 25, 28}},
		},
		Severities:     [4]float32{0.1, 0.4, 0.7, 0.9},
		Scale:          4.5,
		AlarmThreshold: 0.62,
	}
}

// #endregion config

// #region contribution

// Contribution is one signal's share of the fatigue score.
type Contribution struct {
	Signal   driver.Signal
	Value    float32 // raw reading that was binned
	Bin      Bin
	Severity float32 // severity weight of the bin
	Weight   float32 // normalized signal weight
	Share    float32 // Severity * Weight, before the global scale
}

// #endregion contribution

// #region result

// Result is the scoring output for one tick.
type Result struct {
	// Probability is the scalar fatigue/alarm probability in [0,1].
	Probability float32
	// Alarm is true when Probability reached the alarm threshold.
	Alarm bool
	// Contributions holds the per-signal breakdown in catalog order.
	Contributions []Contribution
}

// ContributionFor returns the breakdown entry for s, or false when the
// signal is absent.
func (r Result) ContributionFor(s driver.Signal) (Contribution, bool) {
	for _, c := range r.Contributions {
		if c.Signal == s {
			return c, true
		}
	}
	return Contribution{}, false
}

// #endregion result
