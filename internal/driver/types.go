package driver

import "github.com/wlgs/fatigue-detection-system/internal/environ"

// #region signal

// Signal identifies one of the six simulated biometric readings.
type Signal string

const (
	SignalHeartRate     Signal = "heart_rate"
	SignalHRV           Signal = "hrv"
	SignalEDA           Signal = "eda"
	SignalPerclos       Signal = "perclos"
	SignalBlinkDuration Signal = "blink_duration"
	SignalBlinkRate     Signal = "blink_rate"
)

// AllSignals lists every signal in a fixed order. Iteration over this
// slice (never over a map) keeps random draws reproducible for a seed.
var AllSignals = []Signal{
	SignalHeartRate,
	SignalHRV,
	SignalEDA,
	SignalPerclos,
	SignalBlinkDuration,
	SignalBlinkRate,
}

// #endregion signal

// #region bounds

// Bound is the declared hard range of a signal. Values are clamped to
// their bound after every update; this is a data-model invariant, not a
// tuning knob.
type Bound struct {
	Min float32
	Max float32
}

// Bounds maps each signal to its declared range.
var Bounds = map[Signal]Bound{
	SignalHeartRate:     {Min: 45, Max: 100},  // bpm
	SignalHRV:           {Min: 15, Max: 70},   // ms
	SignalEDA:           {Min: 1, Max: 12},    // µS
	SignalPerclos:       {Min: 0.1, Max: 0.8}, // fraction of time eyes closed
	SignalBlinkDuration: {Min: 100, Max: 800}, // ms
	SignalBlinkRate:     {Min: 8, Max: 35},    // blinks per minute
}

// IncreasesWithFatigue reports whether a signal moves up as fatigue
// grows. heart_rate, hrv and eda drop when the driver tires; the three
// eye metrics rise.
func IncreasesWithFatigue(s Signal) bool {
	switch s {
	case SignalPerclos, SignalBlinkDuration, SignalBlinkRate:
		return true
	}
	return false
}

// Clamp restricts v to the declared bound of s.
func Clamp(s Signal, v float32) float32 {
	b := Bounds[s]
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// #endregion bounds

// #region vitals

// Vitals holds the current value of each biometric reading.
type Vitals struct {
	HeartRate     float32
	HRV           float32
	EDA           float32
	Perclos       float32
	BlinkDuration float32
	BlinkRate     float32
}

// Value returns the reading for s. Unknown signals return 0.
func (v Vitals) Value(s Signal) float32 {
	switch s {
	case SignalHeartRate:
		return v.HeartRate
	case SignalHRV:
		return v.HRV
	case SignalEDA:
		return v.EDA
	case SignalPerclos:
		return v.Perclos
	case SignalBlinkDuration:
		return v.BlinkDuration
	case SignalBlinkRate:
		return v.BlinkRate
	}
	return 0
}

// Set assigns the reading for s.
func (v *Vitals) Set(s Signal, val float32) {
	switch s {
	case SignalHeartRate:
		v.HeartRate = val
	case SignalHRV:
		v.HRV = val
	case SignalEDA:
		v.EDA = val
	case SignalPerclos:
		v.Perclos = val
	case SignalBlinkDuration:
		v.BlinkDuration = val
	case SignalBlinkRate:
		v.BlinkRate = val
	}
}

// #endregion vitals

// #region driver-state

// State is the mutable simulation record owned by the rest-cycle
// engine for the lifetime of one run. It is a value type: the engine
// mutates a copy per tick and commits it only after every stage
// succeeds.
type State struct {
	RestBudget             float32 // [0,100], resets to exactly 100 on rest
	LastRestTick           int
	TicksSincePreviousRest int
	CurrentSpeed           float32 // km/h, [0,130]

	Context environ.Context
	Vitals  Vitals
}

// #endregion driver-state
