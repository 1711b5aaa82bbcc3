package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wlgs/fatigue-detection-system/internal/restcycle"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a scripted deterministic
// run: the configuration knobs the run pins down, the scripted context
// overrides, and the expected outcome.
type Fixture struct {
	Description string `json:"description"`
	Scenario    string `json:"scenario"`
	Profile     string `json:"profile"`
	Seed        int64  `json:"seed"`
	Ticks       int    `json:"ticks"`

	Engine  *FixtureEngine  `json:"engine,omitempty"`
	Scoring *FixtureScoring `json:"scoring,omitempty"`

	Script   []ScriptStep    `json:"script,omitempty"`
	Expected FixtureExpected `json:"expected"`
}

// FixtureEngine mirrors the controller knobs a fixture may pin. All
// fields are pointers so absent and explicitly-zero stay distinct.
type FixtureEngine struct {
	LossScale            *float32 `json:"loss_scale,omitempty"`
	RestThreshold        *float32 `json:"rest_threshold,omitempty"`
	GroundTruthThreshold *float32 `json:"ground_truth_threshold,omitempty"`
	EnvironmentEnabled   *bool    `json:"environment_enabled,omitempty"`
}

// FixtureScoring mirrors the scoring knobs a fixture may pin.
type FixtureScoring struct {
	Scale          *float32 `json:"scale,omitempty"`
	AlarmThreshold *float32 `json:"alarm_threshold,omitempty"`
}

// ScriptStep forces one context field to a value before the given tick
// executes.
type ScriptStep struct {
	Tick  int    `json:"tick"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// FixtureExpected declares the outcome to verify. Counter pointers are
// optional: a nil counter is not checked. AlarmEvents, when present,
// must match the classification sequence of every alarm event in order.
type FixtureExpected struct {
	AlarmEvents []string `json:"alarm_events,omitempty"`
	Valid       *int     `json:"valid,omitempty"`
	Missed      *int     `json:"missed,omitempty"`
	False       *int     `json:"false,omitempty"`
	Rests       *int     `json:"rests,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.Ticks <= 0 {
		return nil, fmt.Errorf("fixture %s: ticks must be positive", path)
	}
	return &f, nil
}

// Params resolves the fixture onto the default parameter set.
func (f *Fixture) Params() restcycle.Params {
	p := restcycle.DefaultParams()
	if f.Scenario != "" {
		p.Scenario = f.Scenario
	}
	if f.Profile != "" {
		p.Profile = f.Profile
	}
	p.Seed = f.Seed

	if e := f.Engine; e != nil {
		if e.LossScale != nil {
			p.Engine.LossScale = *e.LossScale
		}
		if e.RestThreshold != nil {
			p.Engine.RestThreshold = *e.RestThreshold
		}
		if e.GroundTruthThreshold != nil {
			p.Engine.GroundTruthThreshold = *e.GroundTruthThreshold
		}
		if e.EnvironmentEnabled != nil {
			p.Engine.EnvironmentEnabled = *e.EnvironmentEnabled
		}
	}
	if s := f.Scoring; s != nil {
		if s.Scale != nil {
			p.Scoring.Scale = *s.Scale
		}
		if s.AlarmThreshold != nil {
			p.Scoring.AlarmThreshold = *s.AlarmThreshold
		}
	}
	return p
}

// #endregion fixture-loader
