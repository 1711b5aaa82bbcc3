package environ

import (
	"fmt"
	"math/rand"
	"sort"
)

// #region model

// Model is the stochastic environment transition model. Each attribute
// redraws independently with a small per-tick probability; time-of-day
// flips on a deterministic clock. Pure function of the current context
// and the model's own random source.
type Model struct {
	config Config
	rng    *rand.Rand
}

// NewModel validates the configuration and wires the random source.
func NewModel(config Config, rng *rand.Rand) (*Model, error) {
	if err := validate(config); err != nil {
		return nil, err
	}
	return &Model{config: config, rng: rng}, nil
}

func validate(c Config) error {
	for name, p := range map[string]float32{
		"weather": c.WeatherChangeProb,
		"traffic": c.TrafficChangeProb,
		"road":    c.RoadChangeProb,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("environ: %s change probability %.4f outside [0,1]", name, p)
		}
	}
	if err := validateWeights("weather", len(AllWeathers), totalWeather(c.WeatherWeights)); err != nil {
		return err
	}
	if err := validateWeights("traffic", len(AllTraffics), totalTraffic(c.TrafficWeights)); err != nil {
		return err
	}
	if err := validateWeights("road", len(AllRoads), totalRoad(c.RoadWeights)); err != nil {
		return err
	}
	if c.DayNightFlipTicks < 0 {
		return fmt.Errorf("environ: day/night flip ticks must not be negative, got %d", c.DayNightFlipTicks)
	}
	return nil
}

func validateWeights(name string, domain int, total float32) error {
	if total <= 0 {
		return fmt.Errorf("environ: %s weights must have positive total over %d values", name, domain)
	}
	return nil
}

func totalWeather(w map[Weather]float32) (t float32) {
	for _, v := range AllWeathers {
		if w[v] < 0 {
			return -1
		}
		t += w[v]
	}
	return t
}

func totalTraffic(w map[Traffic]float32) (t float32) {
	for _, v := range AllTraffics {
		if w[v] < 0 {
			return -1
		}
		t += w[v]
	}
	return t
}

func totalRoad(w map[Road]float32) (t float32) {
	for _, v := range AllRoads {
		if w[v] < 0 {
			return -1
		}
		t += w[v]
	}
	return t
}

// #endregion model

// #region advance

// Advance returns the next context for the given tick number. The
// input context is never mutated.
func (m *Model) Advance(ctx Context, tick int) Context {
	next := ctx

	if m.rng.Float32() < m.config.WeatherChangeProb {
		next.Weather = drawWeather(m.rng, m.config.WeatherWeights)
	}
	if m.rng.Float32() < m.config.TrafficChangeProb {
		next.Traffic = drawTraffic(m.rng, m.config.TrafficWeights)
	}
	if m.rng.Float32() < m.config.RoadChangeProb {
		next.Road = drawRoad(m.rng, m.config.RoadWeights)
	}

	if m.config.DayNightFlipTicks > 0 && tick > 0 && tick%m.config.DayNightFlipTicks == 0 {
		if next.TimeOfDay == TimeDay {
			next.TimeOfDay = TimeNight
		} else {
			next.TimeOfDay = TimeDay
		}
	}

	return next
}

// Draws walk the fixed domain order so a given seed always produces
// the same sequence.

func drawWeather(rng *rand.Rand, weights map[Weather]float32) Weather {
	var total float32
	for _, v := range AllWeathers {
		total += weights[v]
	}
	r := rng.Float32() * total
	for _, v := range AllWeathers {
		r -= weights[v]
		if r < 0 {
			return v
		}
	}
	return AllWeathers[len(AllWeathers)-1]
}

func drawTraffic(rng *rand.Rand, weights map[Traffic]float32) Traffic {
	var total float32
	for _, v := range AllTraffics {
		total += weights[v]
	}
	r := rng.Float32() * total
	for _, v := range AllTraffics {
		r -= weights[v]
		if r < 0 {
			return v
		}
	}
	return AllTraffics[len(AllTraffics)-1]
}

func drawRoad(rng *rand.Rand, weights map[Road]float32) Road {
	var total float32
	for _, v := range AllRoads {
		total += weights[v]
	}
	r := rng.Float32() * total
	for _, v := range AllRoads {
		r -= weights[v]
		if r < 0 {
			return v
		}
	}
	return AllRoads[len(AllRoads)-1]
}

// #endregion advance

// #region scenarios

// scenarios seeds the initial context per named scenario.
var scenarios = map[string]Context{
	"normal": {
		Weather:   WeatherClear,
		Traffic:   TrafficLow,
		Road:      RoadHighway,
		TimeOfDay: TimeDay,
	},
	"degraded": {
		Weather:   WeatherRain,
		Traffic:   TrafficMedium,
		Road:      RoadCity,
		TimeOfDay: TimeDay,
	},
	"adverse": {
		Weather:   WeatherSnow,
		Traffic:   TrafficHigh,
		Road:      RoadRural,
		TimeOfDay: TimeNight,
	},
}

// ScenarioContext resolves a named scenario to its seed context.
// Unknown names fail fast at construction.
func ScenarioContext(name string) (Context, error) {
	ctx, ok := scenarios[name]
	if !ok {
		return Context{}, fmt.Errorf("unknown scenario %q (have %v)", name, ScenarioNames())
	}
	return ctx, nil
}

// ScenarioNames lists the available scenarios, sorted.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// #endregion scenarios

// #region override

// ApplyOverride forces one context field to a specific value, used by
// external callers for scenario scripting. Unknown fields or values
// are an error; nothing is applied on error.
func ApplyOverride(ctx Context, field, value string) (Context, error) {
	switch field {
	case "weather":
		for _, v := range AllWeathers {
			if string(v) == value {
				ctx.Weather = v
				return ctx, nil
			}
		}
	case "traffic":
		for _, v := range AllTraffics {
			if string(v) == value {
				ctx.Traffic = v
				return ctx, nil
			}
		}
	case "road_type":
		for _, v := range AllRoads {
			if string(v) == value {
				ctx.Road = v
				return ctx, nil
			}
		}
	case "time_of_day":
		if value == string(TimeDay) || value == string(TimeNight) {
			ctx.TimeOfDay = TimeOfDay(value)
			return ctx, nil
		}
	default:
		return ctx, fmt.Errorf("unknown context field %q", field)
	}
	return ctx, fmt.Errorf("invalid value %q for context field %q", value, field)
}

// #endregion override
