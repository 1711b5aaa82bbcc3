package restcycle

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/wlgs/fatigue-detection-system/internal/driver"
	"github.com/wlgs/fatigue-detection-system/internal/environ"
	"github.com/wlgs/fatigue-detection-system/internal/logging"
	"github.com/wlgs/fatigue-detection-system/internal/physio"
	"github.com/wlgs/fatigue-detection-system/internal/scoring"
)

// #region engine

// Engine is the rest-cycle controller: it drives the tick loop,
// depletes the rest budget from the fatigue probability, triggers rest
// resets, raises alarm events, and tracks alarm-validity statistics.
//
// Tick execution is serialized by a mutex, so pausing, single-stepping
// and snapshot reads are safe from the consuming goroutine. The tick
// itself is all-or-nothing: every stage works on copies and the result
// is committed only after all stages succeed.
type Engine struct {
	mu sync.Mutex

	cfg        Config
	profile    driver.Profile
	env        *environ.Model
	physio     *physio.Model
	scorer     *scoring.Model
	risk       environ.RiskConfig
	classifier *Classifier
	audit      *logging.AuditLog

	state     driver.State
	tick      int
	prevAlarm bool
	stats     Stats
	history   *Ring
	last      TickMetrics

	paused atomic.Bool
}

// NewEngine validates the full parameter set and builds a ready engine.
// audit may be nil to disable the alarm audit stream.
func NewEngine(p Params, audit *logging.AuditLog) (*Engine, error) {
	if p.Engine.LossScale <= 0 {
		return nil, fmt.Errorf("restcycle: loss scale must be positive, got %.4f", p.Engine.LossScale)
	}
	if p.Engine.RestThreshold < 0 || p.Engine.RestThreshold >= 100 {
		return nil, fmt.Errorf("restcycle: rest threshold %.2f outside [0,100)", p.Engine.RestThreshold)
	}
	if p.Engine.GroundTruthThreshold <= 0 || p.Engine.GroundTruthThreshold >= 100 {
		return nil, fmt.Errorf("restcycle: ground-truth threshold %.2f outside (0,100)", p.Engine.GroundTruthThreshold)
	}
	if p.Engine.HistorySize < 0 {
		return nil, fmt.Errorf("restcycle: history size must not be negative, got %d", p.Engine.HistorySize)
	}
	if p.Engine.HistorySize == 0 {
		p.Engine.HistorySize = DefaultConfig().HistorySize
	}
	if p.Engine.MinutesPerTick <= 0 {
		p.Engine.MinutesPerTick = DefaultConfig().MinutesPerTick
	}

	profile, err := driver.ProfileByName(p.Profile)
	if err != nil {
		return nil, err
	}
	seedCtx, err := environ.ScenarioContext(p.Scenario)
	if err != nil {
		return nil, err
	}

	// Independent streams per component so disabling the environment
	// does not shift the biometric noise sequence for a given seed.
	envModel, err := environ.NewModel(p.Environment, rand.New(rand.NewSource(p.Seed)))
	if err != nil {
		return nil, err
	}
	physioModel, err := physio.NewModel(p.Physiology, rand.New(rand.NewSource(p.Seed+1)))
	if err != nil {
		return nil, err
	}
	scorer, err := scoring.NewModel(p.Scoring)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:        p.Engine,
		profile:    profile,
		env:        envModel,
		physio:     physioModel,
		scorer:     scorer,
		risk:       p.Risk,
		classifier: NewClassifier(p.Engine.GroundTruthThreshold),
		audit:      audit,
		history:    NewRing(p.Engine.HistorySize),
		state: driver.State{
			RestBudget: 100,
			Context:    seedCtx,
			Vitals:     physioModel.ResetToBaseline(profile),
		},
	}
	return e, nil
}

// #endregion engine

// #region tick

// Tick advances one simulation step and returns the tick metrics. On
// error the tick is aborted and the driver state is left untouched.
func (e *Engine) Tick() (TickMetrics, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runTick()
}

func (e *Engine) runTick() (TickMetrics, error) {
	tick := e.tick + 1
	next := e.state

	if e.cfg.EnvironmentEnabled {
		next.Context = e.env.Advance(next.Context, tick)
	}

	energy := next.RestBudget
	next.Vitals = e.physio.Advance(next.Vitals, energy, e.profile)
	next.CurrentSpeed = e.physio.AdvanceSpeed(next.CurrentSpeed)

	res := e.scorer.Score(next.Vitals)
	ctxRisk := e.risk.Risk(next.Context)

	event := res.Alarm && !e.prevAlarm
	prevClassifier := *e.classifier
	outcome := e.classifier.Observe(energy, event, res.Alarm)

	var ev *AlarmEvent
	if event {
		ev = &AlarmEvent{
			ID:          uuid.New().String(),
			Tick:        tick,
			Class:       outcome.Class,
			Probability: res.Probability,
			RestBudget:  energy,
		}
	}

	loss := res.Probability * e.cfg.LossScale * (1 + ctxRisk)
	next.RestBudget = energy - loss
	if next.RestBudget < 0 {
		next.RestBudget = 0
	}
	next.TicksSincePreviousRest = tick - next.LastRestTick
	driveMinutes := next.TicksSincePreviousRest * e.cfg.MinutesPerTick

	rested := false
	if e.cfg.RestThreshold > 0 && next.RestBudget < e.cfg.RestThreshold {
		rested = true
		next.RestBudget = 100
		next.Vitals = e.physio.ResetToBaseline(e.profile)
		next.LastRestTick = tick
		next.TicksSincePreviousRest = 0
	}

	if err := e.writeAudit(tick, next, res, ctxRisk, ev, outcome, rested, driveMinutes); err != nil {
		*e.classifier = prevClassifier
		return TickMetrics{}, fmt.Errorf("tick %d: %w", tick, err)
	}

	// Commit.
	if rested {
		e.classifier.Rested()
	}
	e.state = next
	e.tick = tick
	e.prevAlarm = res.Alarm

	e.stats.Ticks++
	if event {
		e.stats.AlarmEvents++
		switch outcome.Class {
		case AlarmValid:
			e.stats.Valid++
		case AlarmFalse:
			e.stats.False++
		}
	}
	if outcome.Missed {
		e.stats.Missed++
	}
	if outcome.MissRetracted {
		e.stats.Missed--
	}
	if rested {
		e.stats.Rests++
	}

	metrics := TickMetrics{
		Tick:          tick,
		Probability:   res.Probability,
		Alarm:         res.Alarm,
		RestBudget:    next.RestBudget,
		ContextRisk:   ctxRisk,
		Context:       next.Context,
		Contributions: res.Contributions,
		Event:         ev,
		Rested:        rested,
		DriveMinutes:  driveMinutes,
	}
	e.history.Append(TickSample{
		Tick:        tick,
		RestBudget:  next.RestBudget,
		Probability: res.Probability,
		Alarm:       res.Alarm,
	})
	e.last = metrics
	return metrics, nil
}

func (e *Engine) writeAudit(
	tick int,
	next driver.State,
	res scoring.Result,
	ctxRisk float32,
	ev *AlarmEvent,
	outcome Outcome,
	rested bool,
	driveMinutes int,
) error {
	if e.audit == nil {
		return nil
	}

	base := logging.AuditEntry{
		Tick:         tick,
		Probability:  res.Probability,
		RestBudget:   next.RestBudget,
		ContextRisk:  ctxRisk,
		Weather:      string(next.Context.Weather),
		Traffic:      string(next.Context.Traffic),
		Road:         string(next.Context.Road),
		TimeOfDay:    string(next.Context.TimeOfDay),
		DriveMinutes: driveMinutes,
	}

	if ev != nil {
		entry := base
		entry.EventID = ev.ID
		entry.Kind = "alarm"
		entry.Class = string(ev.Class)
		entry.RestBudget = ev.RestBudget
		entry.Contributions = make(map[string]float32, len(res.Contributions))
		for _, c := range res.Contributions {
			entry.Contributions[string(c.Signal)] = c.Share
		}
		if err := e.audit.Append(entry); err != nil {
			return err
		}
	}
	if outcome.Missed {
		entry := base
		entry.Kind = "missed"
		if err := e.audit.Append(entry); err != nil {
			return err
		}
	}
	if rested {
		entry := base
		entry.Kind = "rest"
		if err := e.audit.Append(entry); err != nil {
			return err
		}
	}
	return nil
}

// #endregion tick

// #region run

// Run paces the tick loop until the context is cancelled or MaxTicks is
// reached. Stop is cooperative: cancellation is observed at the next
// iteration boundary.
func (e *Engine) Run(ctx context.Context) error {
	interval := e.cfg.TickInterval
	if interval <= 0 {
		interval = DefaultConfig().TickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if e.paused.Load() {
				continue
			}
			m, err := e.Tick()
			if err != nil {
				return err
			}
			if m.Event != nil {
				log.Printf("[ENGINE] alarm %s: tick=%d p=%.3f budget=%.1f", m.Event.Class, m.Tick, m.Probability, m.Event.RestBudget)
			}
			if m.Rested {
				log.Printf("[ENGINE] rest reset: tick=%d after %d simulated minutes", m.Tick, m.DriveMinutes)
			}
			if e.cfg.MaxTicks > 0 && m.Tick >= e.cfg.MaxTicks {
				return nil
			}
		}
	}
}

// #endregion run

// #region control-surface

// SetPaused gates whether Run advances state. Safe to toggle from the
// consuming goroutine.
func (e *Engine) SetPaused(paused bool) {
	e.paused.Store(paused)
}

// Paused reports the pause flag.
func (e *Engine) Paused() bool {
	return e.paused.Load()
}

// StepOnce advances exactly one tick while paused.
func (e *Engine) StepOnce() (TickMetrics, error) {
	if !e.paused.Load() {
		return TickMetrics{}, fmt.Errorf("restcycle: step requires the engine to be paused")
	}
	return e.Tick()
}

// OverrideContext forces one environment field to a specific value for
// scenario scripting; the stochastic model may redraw it on a later
// tick. Unknown fields or values are an error.
func (e *Engine) OverrideContext(field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, err := environ.ApplyOverride(e.state.Context, field, value)
	if err != nil {
		return err
	}
	e.state.Context = ctx
	return nil
}

// Snapshot returns a copy of the current driver state.
func (e *Engine) Snapshot() driver.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Stats returns a copy of the accumulated alarm statistics.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// LastMetrics returns the most recent tick metrics.
func (e *Engine) LastMetrics() (TickMetrics, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last, e.tick > 0
}

// History returns the tick history, oldest first.
func (e *Engine) History() []TickSample {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Items()
}

// Profile returns the driver profile selected at construction.
func (e *Engine) Profile() driver.Profile {
	return e.profile
}

// #endregion control-surface
