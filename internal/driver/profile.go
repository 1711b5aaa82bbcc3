package driver

import (
	"fmt"
	"sort"
)

// #region signal-profile

// SignalProfile biases where one signal sits and how fast it reacts to
// a declining rest budget.
type SignalProfile struct {
	// BaselineOffset shifts both the rested and fatigued interpolation
	// endpoints of the signal.
	BaselineOffset float32
	// FatigueResistance divides the fatigue factor; above 1 the signal
	// reacts less to fatigue, below 1 it reacts more. 0 means neutral (1).
	FatigueResistance float32
	// OnsetBias shifts the energy level at which fatigue starts to bite:
	// positive delays onset, negative advances it.
	OnsetBias float32
}

// #endregion signal-profile

// #region profile

// Profile is the immutable per-driver characteristic table, set at
// construction and never mutated afterwards.
type Profile struct {
	Name    string
	Signals map[Signal]SignalProfile
}

// Signal returns the per-signal entry, or a neutral entry when the
// profile does not mention the signal.
func (p Profile) Signal(s Signal) SignalProfile {
	sp, ok := p.Signals[s]
	if !ok {
		return SignalProfile{FatigueResistance: 1}
	}
	if sp.FatigueResistance == 0 {
		sp.FatigueResistance = 1
	}
	return sp
}

// #endregion profile

// #region presets

// profiles holds the named presets. Six characteristic drivers plus the
// neutral default.
var profiles = map[string]Profile{
	"default": {
		Name:    "default",
		Signals: map[Signal]SignalProfile{},
	},
	"athlete": {
		// Lower resting heart rate, generally slow to tire.
		Name: "athlete",
		Signals: map[Signal]SignalProfile{
			SignalHeartRate: {BaselineOffset: -8, FatigueResistance: 1.3},
			SignalHRV:       {BaselineOffset: 6, FatigueResistance: 1.2},
			SignalPerclos:   {FatigueResistance: 1.2},
		},
	},
	"drowsy": {
		// Fatigue bites early and hard across the board.
		Name: "drowsy",
		Signals: map[Signal]SignalProfile{
			SignalHeartRate:     {FatigueResistance: 0.7, OnsetBias: -15},
			SignalHRV:           {FatigueResistance: 0.7, OnsetBias: -15},
			SignalEDA:           {FatigueResistance: 0.8, OnsetBias: -10},
			SignalPerclos:       {BaselineOffset: 0.04, FatigueResistance: 0.7, OnsetBias: -15},
			SignalBlinkDuration: {BaselineOffset: 40, FatigueResistance: 0.8, OnsetBias: -10},
			SignalBlinkRate:     {FatigueResistance: 0.8, OnsetBias: -10},
		},
	},
	"fast_blinker": {
		Name: "fast_blinker",
		Signals: map[Signal]SignalProfile{
			SignalBlinkRate:     {BaselineOffset: 5, FatigueResistance: 1.1},
			SignalBlinkDuration: {BaselineOffset: 30},
		},
	},
	"wide_eyed": {
		// Eyes open wider than average, perclos sits low.
		Name: "wide_eyed",
		Signals: map[Signal]SignalProfile{
			SignalPerclos:       {BaselineOffset: -0.03},
			SignalBlinkDuration: {BaselineOffset: -20},
		},
	},
	"clammy": {
		// Elevated skin conductance at rest.
		Name: "clammy",
		Signals: map[Signal]SignalProfile{
			SignalEDA: {BaselineOffset: 2, FatigueResistance: 0.9},
		},
	},
	"resilient": {
		Name: "resilient",
		Signals: map[Signal]SignalProfile{
			SignalHeartRate:     {FatigueResistance: 1.4, OnsetBias: 10},
			SignalHRV:           {FatigueResistance: 1.4, OnsetBias: 10},
			SignalEDA:           {FatigueResistance: 1.3, OnsetBias: 10},
			SignalPerclos:       {FatigueResistance: 1.4, OnsetBias: 10},
			SignalBlinkDuration: {FatigueResistance: 1.3, OnsetBias: 10},
			SignalBlinkRate:     {FatigueResistance: 1.3, OnsetBias: 10},
		},
	},
}

// ProfileByName resolves a preset. Unknown names are a construction
// error, never a silent fallback.
func ProfileByName(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown driver profile %q (have %v)", name, ProfileNames())
	}
	return p, nil
}

// ProfileNames lists the available presets, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// #endregion presets
