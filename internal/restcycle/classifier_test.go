package restcycle

import "testing"

func TestClassifierMissedOncePerCrossing(t *testing.T) {
	c := NewClassifier(20)

	if out := c.Observe(50, false, false); out.Missed {
		t.Fatal("no miss above threshold")
	}

	// Crossing with no alarm raised: one miss.
	if out := c.Observe(19, false, false); !out.Missed {
		t.Fatal("expected a miss at the crossing")
	}

	// Staying inside the window must not count again.
	for i := 0; i < 10; i++ {
		if out := c.Observe(15, false, false); out.Missed {
			t.Fatalf("tick %d: miss counted twice inside one window", i)
		}
	}
}

func TestClassifierActiveAlarmCoversCrossing(t *testing.T) {
	c := NewClassifier(20)

	// Alarm already raised before the budget crossed: no miss.
	if out := c.Observe(20, false, true); out.Missed {
		t.Fatal("active alarm at the crossing should not be a miss")
	}
}

func TestClassifierEventClassification(t *testing.T) {
	c := NewClassifier(20)

	out := c.Observe(80, true, true)
	if out.Class != AlarmFalse {
		t.Fatalf("event above threshold should be false, got %q", out.Class)
	}

	out = c.Observe(10, true, true)
	if out.Class != AlarmValid {
		t.Fatalf("event at low budget should be valid, got %q", out.Class)
	}
	if out.Missed {
		t.Fatal("crossing with the alarm active is not a miss")
	}
}

func TestClassifierLateAlarmRetractsMiss(t *testing.T) {
	c := NewClassifier(20)

	// The crossing itself goes unanswered and is counted missed.
	if out := c.Observe(19, false, false); !out.Missed {
		t.Fatal("expected a miss at the crossing")
	}

	// A valid event later in the same window takes the miss back, so
	// the window nets exactly one valid and zero missed.
	out := c.Observe(17, true, true)
	if out.Class != AlarmValid {
		t.Fatalf("late alarm inside the window should be valid, got %q", out.Class)
	}
	if !out.MissRetracted {
		t.Fatal("late valid alarm should retract the counted miss")
	}

	// Only once: further events in the window have nothing to retract.
	out = c.Observe(15, true, true)
	if out.Class != AlarmValid || out.MissRetracted {
		t.Fatalf("second event should be valid without a retraction, got %+v", out)
	}
}

func TestClassifierNoRetractionWithoutMiss(t *testing.T) {
	c := NewClassifier(20)

	// Alarm already active at the crossing: nothing counted, nothing
	// to retract on the next event inside the window.
	if out := c.Observe(20, false, true); out.Missed {
		t.Fatal("covered crossing should not be a miss")
	}
	if out := c.Observe(15, true, true); out.MissRetracted {
		t.Fatal("no miss was counted, none should be retracted")
	}
}

func TestClassifierRestReopensWindow(t *testing.T) {
	c := NewClassifier(20)

	if out := c.Observe(10, false, false); !out.Missed {
		t.Fatal("first crossing should be a miss")
	}
	c.Rested()
	if out := c.Observe(10, false, false); !out.Missed {
		t.Fatal("crossing after a rest should be a fresh miss")
	}
}

func TestClassifierThresholdInclusive(t *testing.T) {
	c := NewClassifier(20)

	// Exactly at the threshold counts as ground truth.
	out := c.Observe(20, true, true)
	if out.Class != AlarmValid {
		t.Fatalf("event exactly at threshold should be valid, got %q", out.Class)
	}
}
