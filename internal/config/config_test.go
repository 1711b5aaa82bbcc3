package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wlgs/fatigue-detection-system/internal/driver"
	"github.com/wlgs/fatigue-detection-system/internal/environ"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file should be an error")
	}
	path := writeConfig(t, "seed: [not a scalar\n")
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml should be an error")
	}
}

func TestParamsDefaultsWhenEmpty(t *testing.T) {
	path := writeConfig(t, "")
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	p, err := f.Params()
	if err != nil {
		t.Fatal(err)
	}
	if p.Seed != 1 || p.Scenario != "normal" || p.Profile != "default" {
		t.Fatalf("empty file should keep defaults: %+v", p)
	}
	if p.Engine.RestThreshold != 30 {
		t.Fatalf("rest threshold = %f, want default 30", p.Engine.RestThreshold)
	}
}

func TestParamsOverrides(t *testing.T) {
	path := writeConfig(t, `
seed: 42
scenario: adverse
profile: drowsy
engine:
  lossScale: 3.5
  restThreshold: 0
  tickIntervalMs: 100
  maxTicks: 500
environment:
  weatherChangeProb: 0.5
  dayNightFlipTicks: 0
scoring:
  alarmThreshold: 0.7
  signals:
    heart_rate:
      weight: 0.2
      cutoffs: [64, 58, 52]
physiology:
  targetGain: 0.1
  signals:
    hrv:
      rested: 55
      noise: 0
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	p, err := f.Params()
	if err != nil {
		t.Fatal(err)
	}

	if p.Seed != 42 || p.Scenario != "adverse" || p.Profile != "drowsy" {
		t.Fatalf("run selection not applied: %+v", p)
	}
	if p.Engine.LossScale != 3.5 {
		t.Fatalf("loss scale = %f", p.Engine.LossScale)
	}
	if p.Engine.RestThreshold != 0 {
		t.Fatalf("explicit zero rest threshold lost: %f", p.Engine.RestThreshold)
	}
	if p.Engine.TickInterval != 100*time.Millisecond {
		t.Fatalf("tick interval = %v", p.Engine.TickInterval)
	}
	if p.Engine.MaxTicks != 500 {
		t.Fatalf("max ticks = %d", p.Engine.MaxTicks)
	}
	if p.Environment.WeatherChangeProb != 0.5 {
		t.Fatalf("weather prob = %f", p.Environment.WeatherChangeProb)
	}
	if p.Environment.DayNightFlipTicks != 0 {
		t.Fatalf("explicit zero flip ticks lost: %d", p.Environment.DayNightFlipTicks)
	}
	if p.Scoring.AlarmThreshold != 0.7 {
		t.Fatalf("alarm threshold = %f", p.Scoring.AlarmThreshold)
	}

	hr := p.Scoring.Signals[driver.SignalHeartRate]
	if hr.Weight != 0.2 || hr.Cutoffs != [3]float32{64, 58, 52} {
		t.Fatalf("heart rate scoring not applied: %+v", hr)
	}
	if !hr.LowIsSevere {
		t.Fatal("fatigue direction must come from the catalog, not the file")
	}

	if p.Physiology.TargetGain != 0.1 {
		t.Fatalf("target gain = %f", p.Physiology.TargetGain)
	}
	hrv := p.Physiology.Signals[driver.SignalHRV]
	if hrv.Rested != 55 || hrv.Noise != 0 {
		t.Fatalf("hrv dynamics not applied: %+v", hrv)
	}
	// Unset fields keep their defaults.
	if hrv.Fatigued != 22 {
		t.Fatalf("hrv fatigued target = %f, want default 22", hrv.Fatigued)
	}
}

func TestParamsExplicitZeros(t *testing.T) {
	// Zero is a legitimate setting for these knobs and must survive
	// resolution instead of falling back to the defaults.
	path := writeConfig(t, `
engine:
  lossScale: 0
  groundTruthThreshold: 0
scoring:
  scale: 0
  alarmThreshold: 0
  signals:
    eda:
      weight: 0
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	p, err := f.Params()
	if err != nil {
		t.Fatal(err)
	}

	if p.Engine.LossScale != 0 {
		t.Fatalf("explicit zero loss scale lost: %f", p.Engine.LossScale)
	}
	if p.Engine.GroundTruthThreshold != 0 {
		t.Fatalf("explicit zero ground-truth threshold lost: %f", p.Engine.GroundTruthThreshold)
	}
	if p.Scoring.Scale != 0 {
		t.Fatalf("explicit zero scale lost: %f", p.Scoring.Scale)
	}
	if p.Scoring.AlarmThreshold != 0 {
		t.Fatalf("explicit zero alarm threshold lost: %f", p.Scoring.AlarmThreshold)
	}
	if w := p.Scoring.Signals[driver.SignalEDA].Weight; w != 0 {
		t.Fatalf("explicit zero weight lost: %f", w)
	}
}

func TestParamsRiskAndWeights(t *testing.T) {
	path := writeConfig(t, `
environment:
  weatherWeights:
    snow: 0.9
  trafficWeights:
    high: 0.8
  risk:
    weather:
      snow: 0.5
    road:
      rural: 0.4
    night: 0.25
physiology:
  speedVariance: 0
  speedDriftBelow: 0
  maxSpeed: 90
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	p, err := f.Params()
	if err != nil {
		t.Fatal(err)
	}

	if p.Environment.WeatherWeights[environ.WeatherSnow] != 0.9 {
		t.Fatalf("weather weight not applied: %v", p.Environment.WeatherWeights)
	}
	// Unnamed values keep their defaults.
	if p.Environment.WeatherWeights[environ.WeatherClear] != 0.5 {
		t.Fatalf("untouched weather weight changed: %v", p.Environment.WeatherWeights)
	}
	if p.Environment.TrafficWeights[environ.TrafficHigh] != 0.8 {
		t.Fatalf("traffic weight not applied: %v", p.Environment.TrafficWeights)
	}

	if p.Risk.Weather[environ.WeatherSnow] != 0.5 {
		t.Fatalf("weather risk not applied: %v", p.Risk.Weather)
	}
	if p.Risk.Road[environ.RoadRural] != 0.4 {
		t.Fatalf("road risk not applied: %v", p.Risk.Road)
	}
	if p.Risk.Night != 0.25 {
		t.Fatalf("night risk not applied: %f", p.Risk.Night)
	}
	if p.Risk.Weather[environ.WeatherRain] != 0.1 {
		t.Fatalf("untouched risk entry changed: %v", p.Risk.Weather)
	}

	if p.Physiology.SpeedVariance != 0 || p.Physiology.SpeedDriftBelow != 0 {
		t.Fatalf("explicit zero speed-walk settings lost: %+v", p.Physiology)
	}
	if p.Physiology.MaxSpeed != 90 {
		t.Fatalf("max speed = %f, want 90", p.Physiology.MaxSpeed)
	}
}

func TestParamsRejectsUnknownContextValues(t *testing.T) {
	path := writeConfig(t, `
environment:
  weatherWeights:
    hail: 0.3
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Params(); err == nil {
		t.Fatal("unknown weather in weights should be an error")
	}

	path = writeConfig(t, `
environment:
  risk:
    road:
      offroad: 0.4
`)
	f, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Params(); err == nil {
		t.Fatal("unknown road type in risk should be an error")
	}
}

func TestParamsRejectsUnknownSignals(t *testing.T) {
	path := writeConfig(t, `
scoring:
  signals:
    pulse:
      weight: 0.2
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Params(); err == nil {
		t.Fatal("unknown scoring signal should be an error")
	}

	path = writeConfig(t, `
physiology:
  signals:
    pulse:
      rested: 60
`)
	f, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Params(); err == nil {
		t.Fatal("unknown physiology signal should be an error")
	}
}

func TestParamsRejectsWrongArity(t *testing.T) {
	path := writeConfig(t, `
scoring:
  severities: [0.1, 0.4]
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Params(); err == nil {
		t.Fatal("short severities should be an error")
	}

	path = writeConfig(t, `
scoring:
  signals:
    heart_rate:
      cutoffs: [64, 58]
`)
	f, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Params(); err == nil {
		t.Fatal("short cutoffs should be an error")
	}
}
