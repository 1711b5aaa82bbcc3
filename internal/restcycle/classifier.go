package restcycle

// #region outcome

// Outcome is the classification of one tick's alarm decision.
type Outcome struct {
	// Class is set when an alarm event fired this tick.
	Class AlarmClass
	// Missed is true when this tick crossed into the ground-truth
	// window with no alarm raised. Counted once per crossing, never
	// once per tick.
	Missed bool
	// MissRetracted is true when a valid event answered a window whose
	// miss was already counted: the late alarm still covers the window,
	// so the earlier miss is taken back.
	MissRetracted bool
}

// #endregion outcome

// #region classifier

// Classifier judges alarm events against the ground-truth fatigue
// condition: an independent threshold on the rest budget, stricter than
// the scoring model's own alarm threshold.
//
// A ground-truth window opens when the budget crosses down through the
// threshold and closes at the next rest. A window that sees no alarm
// is one missed alarm; alarm events inside the window are valid, events
// outside it are false. The miss is counted eagerly at the crossing and
// retracted if a valid event arrives later in the same window, so a
// window contributes exactly one of valid or missed.
type Classifier struct {
	threshold   float32
	inWindow    bool
	missCounted bool
}

// NewClassifier creates a classifier for the given ground-truth
// threshold on the rest budget.
func NewClassifier(threshold float32) *Classifier {
	return &Classifier{threshold: threshold}
}

// Observe processes one tick. budget is the rest budget at evaluation
// time (before this tick's depletion), event marks the rising edge of
// the alarm flag, and active marks the alarm flag itself.
func (c *Classifier) Observe(budget float32, event, active bool) Outcome {
	var out Outcome

	groundTruth := budget <= c.threshold
	if groundTruth && !c.inWindow {
		c.inWindow = true
		c.missCounted = false
		// An alarm already raised when the window opens covers it.
		if !active {
			out.Missed = true
			c.missCounted = true
		}
	}

	if event {
		if groundTruth {
			out.Class = AlarmValid
			if c.missCounted {
				out.MissRetracted = true
				c.missCounted = false
			}
		} else {
			out.Class = AlarmFalse
		}
	}

	return out
}

// Rested closes the current ground-truth window after a rest reset.
func (c *Classifier) Rested() {
	c.inWindow = false
	c.missCounted = false
}

// #endregion classifier
