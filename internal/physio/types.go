package physio

import "github.com/wlgs/fatigue-detection-system/internal/driver"

// #region signal-dynamics

// SignalDynamics holds the tunable evolution parameters for one signal.
type SignalDynamics struct {
	Rested   float32 // value the signal settles at with a full rest budget
	Fatigued float32 // value the signal drifts toward as the budget empties
	Noise    float32 // per-tick uniform noise half-band
}

// #endregion signal-dynamics

// #region config

// Config holds every physiological tuning constant as one explicit
// object; nothing in this package reads package-level tuning state.
type Config struct {
	Signals map[driver.Signal]SignalDynamics

	// TargetGain is the fraction of the distance to the target covered
	// per tick (exponential smoothing; the remainder is retained).
	TargetGain float32

	// Speed random-walk parameters.
	SpeedVariance   float32 // half-band of the per-tick speed change
	SpeedDriftBelow float32 // below this speed the walk only drifts up
	MaxSpeed        float32
}

// DefaultConfig returns the physiological defaults. Rested values match
// the documented signal baselines; fatigued targets sit near the severe
// end of each declared bound.
func DefaultConfig() Config {
	return Config{
		Signals: map[driver.Signal]SignalDynamics{
			driver.SignalHeartRate:     {Rested: 75, Fatigued: 52, Noise: 1.5},
			driver.SignalHRV:           {Rested: 50, Fatigued: 22, Noise: 1.2},
			driver.SignalEDA:           {Rested: 5, Fatigued: 1.8, Noise: 0.15},
			driver.SignalPerclos:       {Rested: 0.15, Fatigued: 0.55, Noise: 0.01},
			driver.SignalBlinkDuration: {Rested: 200, Fatigued: 620, Noise: 8},
			driver.SignalBlinkRate:     {Rested: 15, Fatigued: 28, Noise: 0.6},
		},
		TargetGain:      0.05,
		SpeedVariance:   5,
		SpeedDriftBelow: 50,
		MaxSpeed:        130,
	}
}

// #endregion config
