package replay

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/wlgs/fatigue-detection-system/internal/driver"
	"github.com/wlgs/fatigue-detection-system/internal/restcycle"
)

// #region report

// Report captures the outcome of one scripted run and the comparison
// against the fixture's expectations.
type Report struct {
	RunID       string
	Description string

	Stats      restcycle.Stats
	Events     []restcycle.AlarmEvent
	FinalState driver.State

	// Mismatches is empty when every expectation held.
	Mismatches []string
}

// Passed reports whether the run met every expectation.
func (r Report) Passed() bool {
	return len(r.Mismatches) == 0
}

// #endregion report

// #region run

// Run executes the fixture deterministically in memory: same fixture,
// same seed, same report. Script steps apply their override before the
// named tick executes.
func Run(f *Fixture) (Report, error) {
	engine, err := restcycle.NewEngine(f.Params(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("fixture %q: %w", f.Description, err)
	}

	report := Report{
		RunID:       uuid.New().String(),
		Description: f.Description,
	}

	for tick := 1; tick <= f.Ticks; tick++ {
		for _, step := range f.Script {
			if step.Tick != tick {
				continue
			}
			if err := engine.OverrideContext(step.Field, step.Value); err != nil {
				return Report{}, fmt.Errorf("fixture %q: script step at tick %d: %w", f.Description, tick, err)
			}
		}
		m, err := engine.Tick()
		if err != nil {
			return Report{}, fmt.Errorf("fixture %q: %w", f.Description, err)
		}
		if m.Event != nil {
			report.Events = append(report.Events, *m.Event)
		}
	}

	report.Stats = engine.Stats()
	report.FinalState = engine.Snapshot()
	report.Mismatches = compare(f.Expected, report)
	return report, nil
}

func compare(want FixtureExpected, got Report) []string {
	var mismatches []string

	if want.AlarmEvents != nil {
		if len(want.AlarmEvents) != len(got.Events) {
			mismatches = append(mismatches, fmt.Sprintf("alarm events: want %d, got %d", len(want.AlarmEvents), len(got.Events)))
		} else {
			for i, class := range want.AlarmEvents {
				if string(got.Events[i].Class) != class {
					mismatches = append(mismatches, fmt.Sprintf("alarm event %d: want %q, got %q", i, class, got.Events[i].Class))
				}
			}
		}
	}

	checks := []struct {
		name string
		want *int
		got  int
	}{
		{"valid", want.Valid, got.Stats.Valid},
		{"missed", want.Missed, got.Stats.Missed},
		{"false", want.False, got.Stats.False},
		{"rests", want.Rests, got.Stats.Rests},
	}
	for _, c := range checks {
		if c.want != nil && *c.want != c.got {
			mismatches = append(mismatches, fmt.Sprintf("%s: want %d, got %d", c.name, *c.want, c.got))
		}
	}
	return mismatches
}

// #endregion run
