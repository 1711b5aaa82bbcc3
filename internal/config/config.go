package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wlgs/fatigue-detection-system/internal/driver"
	"github.com/wlgs/fatigue-detection-system/internal/environ"
	"github.com/wlgs/fatigue-detection-system/internal/restcycle"
)

// #region file

// File is the YAML configuration surface. Every field is optional;
// omitted fields keep the built-in defaults. Fields whose zero value is
// a legitimate setting are pointers so "absent" and "explicitly zero"
// stay distinct. The mirror types convert into the domain configs the
// same way replay fixtures do.
type File struct {
	Seed     int64  `yaml:"seed"`
	Scenario string `yaml:"scenario"`
	Profile  string `yaml:"profile"`

	Engine      EngineFile      `yaml:"engine"`
	Environment EnvironmentFile `yaml:"environment"`
	Scoring     ScoringFile     `yaml:"scoring"`
	Physiology  PhysiologyFile  `yaml:"physiology"`
}

// EngineFile mirrors restcycle.Config.
type EngineFile struct {
	LossScale            *float32 `yaml:"lossScale"`
	RestThreshold        *float32 `yaml:"restThreshold"`
	GroundTruthThreshold *float32 `yaml:"groundTruthThreshold"`
	EnvironmentEnabled   *bool    `yaml:"environmentEnabled"`
	HistorySize          int      `yaml:"historySize"`
	MinutesPerTick       int      `yaml:"minutesPerTick"`
	TickIntervalMs       int      `yaml:"tickIntervalMs"`
	MaxTicks             int      `yaml:"maxTicks"`
}

// EnvironmentFile mirrors environ.Config plus the context-risk table.
// Weight and risk maps are sparse: only the named values change.
type EnvironmentFile struct {
	WeatherChangeProb *float32 `yaml:"weatherChangeProb"`
	TrafficChangeProb *float32 `yaml:"trafficChangeProb"`
	RoadChangeProb    *float32 `yaml:"roadChangeProb"`
	DayNightFlipTicks *int     `yaml:"dayNightFlipTicks"`

	WeatherWeights map[string]float32 `yaml:"weatherWeights"`
	TrafficWeights map[string]float32 `yaml:"trafficWeights"`
	RoadWeights    map[string]float32 `yaml:"roadWeights"`

	Risk *RiskFile `yaml:"risk"`
}

// RiskFile overrides entries of the context-risk table.
type RiskFile struct {
	Weather map[string]float32 `yaml:"weather"`
	Traffic map[string]float32 `yaml:"traffic"`
	Road    map[string]float32 `yaml:"road"`
	Night   *float32           `yaml:"night"`
}

// ScoringFile mirrors the tunable parts of scoring.Config.
type ScoringFile struct {
	Scale          *float32              `yaml:"scale"`
	AlarmThreshold *float32              `yaml:"alarmThreshold"`
	Severities     []float32             `yaml:"severities"`
	Signals        map[string]SignalFile `yaml:"signals"`
}

// SignalFile overrides one signal's scoring. Weight is a pointer so an
// explicit zero (disabling the signal) survives. The fatigue direction
// is structural and comes from the signal catalog, not from the file.
type SignalFile struct {
	Weight  *float32  `yaml:"weight"`
	Cutoffs []float32 `yaml:"cutoffs"`
}

// PhysiologyFile mirrors the tunable parts of physio.Config.
type PhysiologyFile struct {
	TargetGain      float32                 `yaml:"targetGain"`
	SpeedVariance   *float32                `yaml:"speedVariance"`
	SpeedDriftBelow *float32                `yaml:"speedDriftBelow"`
	MaxSpeed        float32                 `yaml:"maxSpeed"`
	Signals         map[string]DynamicsFile `yaml:"signals"`
}

// DynamicsFile overrides one signal's evolution parameters.
type DynamicsFile struct {
	Rested   *float32 `yaml:"rested"`
	Fatigued *float32 `yaml:"fatigued"`
	Noise    *float32 `yaml:"noise"`
}

// #endregion file

// #region load

// Load reads and parses a YAML configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &f, nil
}

// #endregion load

// #region params

// Params resolves the file onto the built-in defaults and returns the
// full engine parameter set. Structural validation (weights, cutoffs,
// thresholds) happens in the component constructors; this step only
// rejects references to unknown signals or context values.
func (f *File) Params() (restcycle.Params, error) {
	p := restcycle.DefaultParams()

	if f.Seed != 0 {
		p.Seed = f.Seed
	}
	if f.Scenario != "" {
		p.Scenario = f.Scenario
	}
	if f.Profile != "" {
		p.Profile = f.Profile
	}

	applyEngine(&p, f.Engine)
	if err := applyEnvironment(&p, f.Environment); err != nil {
		return restcycle.Params{}, err
	}
	if err := applyScoring(&p, f.Scoring); err != nil {
		return restcycle.Params{}, err
	}
	if err := applyPhysiology(&p, f.Physiology); err != nil {
		return restcycle.Params{}, err
	}
	return p, nil
}

func applyEngine(p *restcycle.Params, e EngineFile) {
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
	if e.HistorySize != 0 {
		p.Engine.HistorySize = e.HistorySize
	}
	if e.MinutesPerTick != 0 {
		p.Engine.MinutesPerTick = e.MinutesPerTick
	}
	if e.TickIntervalMs != 0 {
		p.Engine.TickInterval = time.Duration(e.TickIntervalMs) * time.Millisecond
	}
	if e.MaxTicks != 0 {
		p.Engine.MaxTicks = e.MaxTicks
	}
}

func applyEnvironment(p *restcycle.Params, e EnvironmentFile) error {
	if e.WeatherChangeProb != nil {
		p.Environment.WeatherChangeProb = *e.WeatherChangeProb
	}
	if e.TrafficChangeProb != nil {
		p.Environment.TrafficChangeProb = *e.TrafficChangeProb
	}
	if e.RoadChangeProb != nil {
		p.Environment.RoadChangeProb = *e.RoadChangeProb
	}
	if e.DayNightFlipTicks != nil {
		p.Environment.DayNightFlipTicks = *e.DayNightFlipTicks
	}

	for name, w := range e.WeatherWeights {
		v, err := weatherValue(name)
		if err != nil {
			return err
		}
		p.Environment.WeatherWeights[v] = w
	}
	for name, w := range e.TrafficWeights {
		v, err := trafficValue(name)
		if err != nil {
			return err
		}
		p.Environment.TrafficWeights[v] = w
	}
	for name, w := range e.RoadWeights {
		v, err := roadValue(name)
		if err != nil {
			return err
		}
		p.Environment.RoadWeights[v] = w
	}

	if r := e.Risk; r != nil {
		for name, factor := range r.Weather {
			v, err := weatherValue(name)
			if err != nil {
				return err
			}
			p.Risk.Weather[v] = factor
		}
		for name, factor := range r.Traffic {
			v, err := trafficValue(name)
			if err != nil {
				return err
			}
			p.Risk.Traffic[v] = factor
		}
		for name, factor := range r.Road {
			v, err := roadValue(name)
			if err != nil {
				return err
			}
			p.Risk.Road[v] = factor
		}
		if r.Night != nil {
			p.Risk.Night = *r.Night
		}
	}
	return nil
}

func applyScoring(p *restcycle.Params, s ScoringFile) error {
	if s.Scale != nil {
		p.Scoring.Scale = *s.Scale
	}
	if s.AlarmThreshold != nil {
		p.Scoring.AlarmThreshold = *s.AlarmThreshold
	}
	if len(s.Severities) > 0 {
		if len(s.Severities) != len(p.Scoring.Severities) {
			return fmt.Errorf("config: scoring severities want %d entries, got %d", len(p.Scoring.Severities), len(s.Severities))
		}
		copy(p.Scoring.Severities[:], s.Severities)
	}
	for name, sf := range s.Signals {
		sig := driver.Signal(name)
		sc, ok := p.Scoring.Signals[sig]
		if !ok {
			return fmt.Errorf("config: unknown scoring signal %q", name)
		}
		if sf.Weight != nil {
			sc.Weight = *sf.Weight
		}
		if len(sf.Cutoffs) > 0 {
			if len(sf.Cutoffs) != len(sc.Cutoffs) {
				return fmt.Errorf("config: signal %q wants %d cutoffs, got %d", name, len(sc.Cutoffs), len(sf.Cutoffs))
			}
			copy(sc.Cutoffs[:], sf.Cutoffs)
		}
		p.Scoring.Signals[sig] = sc
	}
	return nil
}

func applyPhysiology(p *restcycle.Params, ph PhysiologyFile) error {
	if ph.TargetGain != 0 {
		p.Physiology.TargetGain = ph.TargetGain
	}
	if ph.SpeedVariance != nil {
		p.Physiology.SpeedVariance = *ph.SpeedVariance
	}
	if ph.SpeedDriftBelow != nil {
		p.Physiology.SpeedDriftBelow = *ph.SpeedDriftBelow
	}
	if ph.MaxSpeed != 0 {
		p.Physiology.MaxSpeed = ph.MaxSpeed
	}
	for name, df := range ph.Signals {
		sig := driver.Signal(name)
		dyn, ok := p.Physiology.Signals[sig]
		if !ok {
			return fmt.Errorf("config: unknown physiology signal %q", name)
		}
		if df.Rested != nil {
			dyn.Rested = *df.Rested
		}
		if df.Fatigued != nil {
			dyn.Fatigued = *df.Fatigued
		}
		if df.Noise != nil {
			dyn.Noise = *df.Noise
		}
		p.Physiology.Signals[sig] = dyn
	}
	return nil
}

// #endregion params

// #region context-values

func weatherValue(name string) (environ.Weather, error) {
	for _, v := range environ.AllWeathers {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("config: unknown weather %q", name)
}

func trafficValue(name string) (environ.Traffic, error) {
	for _, v := range environ.AllTraffics {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("config: unknown traffic %q", name)
}

func roadValue(name string) (environ.Road, error) {
	for _, v := range environ.AllRoads {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("config: unknown road type %q", name)
}

// #endregion context-values
