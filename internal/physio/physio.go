package physio

import (
	"fmt"
	"math/rand"

	"github.com/wlgs/fatigue-detection-system/internal/driver"
)

// #region model

// Model evolves the six biometric readings toward fatigue-correlated
// targets. Advance is pure apart from draws on the model's own random
// source: vitals go in by value and come out by value.
type Model struct {
	config Config
	rng    *rand.Rand
}

// NewModel validates the configuration and wires the random source.
func NewModel(config Config, rng *rand.Rand) (*Model, error) {
	if config.TargetGain <= 0 || config.TargetGain >= 1 {
		return nil, fmt.Errorf("physio: target gain %.4f outside (0,1)", config.TargetGain)
	}
	if config.MaxSpeed <= 0 {
		return nil, fmt.Errorf("physio: max speed must be positive, got %.1f", config.MaxSpeed)
	}
	for _, s := range driver.AllSignals {
		dyn, ok := config.Signals[s]
		if !ok {
			return nil, fmt.Errorf("physio: missing dynamics for signal %q", s)
		}
		if dyn.Noise < 0 {
			return nil, fmt.Errorf("physio: negative noise band for signal %q", s)
		}
	}
	return &Model{config: config, rng: rng}, nil
}

// #endregion model

// #region advance

// Advance computes the next vitals for the given energy level (the
// rest budget) under the driver profile. Every output is clamped to
// its declared bound.
func (m *Model) Advance(v driver.Vitals, energy float32, profile driver.Profile) driver.Vitals {
	next := v
	for _, s := range driver.AllSignals {
		dyn := m.config.Signals[s]
		sp := profile.Signal(s)

		f := fatigueFactor(energy, sp)
		rested := dyn.Rested + sp.BaselineOffset
		fatigued := dyn.Fatigued + sp.BaselineOffset
		target := rested + (fatigued-rested)*f

		noise := (m.rng.Float32()*2 - 1) * dyn.Noise
		cur := v.Value(s)
		updated := cur*(1-m.config.TargetGain) + target*m.config.TargetGain + noise
		next.Set(s, driver.Clamp(s, updated))
	}
	return next
}

// fatigueFactor maps the remaining energy to [0,1]. The profile's onset
// bias shifts where fatigue starts to bite and its resistance divides
// the reaction strength.
func fatigueFactor(energy float32, sp driver.SignalProfile) float32 {
	f := clamp01((100 - sp.OnsetBias - energy) / 100)
	r := sp.FatigueResistance
	if r <= 0 {
		r = 1
	}
	return clamp01(f / r)
}

// #endregion advance

// #region speed

// AdvanceSpeed applies the speed random walk: slow vehicles drift up,
// cruising vehicles wander, clamped to [0, MaxSpeed].
func (m *Model) AdvanceSpeed(cur float32) float32 {
	var delta float32
	if cur < m.config.SpeedDriftBelow {
		delta = m.rng.Float32() * m.config.SpeedVariance
	} else {
		delta = (m.rng.Float32()*2 - 1) * m.config.SpeedVariance
	}
	next := cur + delta
	if next < 0 {
		return 0
	}
	if next > m.config.MaxSpeed {
		return m.config.MaxSpeed
	}
	return next
}

// #endregion speed

// #region reset

// ResetToBaseline snaps every signal to its profile-adjusted rested
// value. Called exactly once per rest event.
func (m *Model) ResetToBaseline(profile driver.Profile) driver.Vitals {
	var v driver.Vitals
	for _, s := range driver.AllSignals {
		dyn := m.config.Signals[s]
		sp := profile.Signal(s)
		v.Set(s, driver.Clamp(s, dyn.Rested+sp.BaselineOffset))
	}
	return v
}

// #endregion reset

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
