package replay

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFixture(t *testing.T) {
	path := writeFixture(t, `{
  "description": "short adverse run",
  "scenario": "adverse",
  "profile": "drowsy",
  "seed": 7,
  "ticks": 50,
  "engine": {"rest_threshold": 0, "environment_enabled": false},
  "script": [{"tick": 10, "field": "weather", "value": "fog"}],
  "expected": {"rests": 0}
}`)
	f, err := LoadFixture(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Description != "short adverse run" || f.Ticks != 50 {
		t.Fatalf("fixture fields wrong: %+v", f)
	}
	if len(f.Script) != 1 || f.Script[0].Field != "weather" {
		t.Fatalf("script not parsed: %+v", f.Script)
	}
	if f.Expected.Rests == nil || *f.Expected.Rests != 0 {
		t.Fatalf("expected counters not parsed: %+v", f.Expected)
	}
	if f.Expected.Valid != nil {
		t.Fatal("absent counters must stay nil")
	}

	p := f.Params()
	if p.Scenario != "adverse" || p.Profile != "drowsy" || p.Seed != 7 {
		t.Fatalf("params resolution wrong: %+v", p)
	}
	if p.Engine.RestThreshold != 0 {
		t.Fatalf("explicit zero rest threshold lost: %f", p.Engine.RestThreshold)
	}
	if p.Engine.EnvironmentEnabled {
		t.Fatal("explicit environment disable lost")
	}
	// Untouched knobs keep their defaults.
	if p.Engine.LossScale != 2.2 {
		t.Fatalf("loss scale = %f, want default", p.Engine.LossScale)
	}
}

func TestLoadFixtureErrors(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "gone.json")); err == nil {
		t.Fatal("missing file should be an error")
	}

	path := writeFixture(t, `{"description": "broken"`)
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("malformed JSON should be an error")
	}

	path = writeFixture(t, `{"description": "no ticks", "ticks": 0}`)
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("non-positive ticks should be an error")
	}
}
