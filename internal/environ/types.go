package environ

// #region weather

// Weather is the current weather condition.
type Weather string

const (
	WeatherClear Weather = "clear"
	WeatherRain  Weather = "rain"
	WeatherFog   Weather = "fog"
	WeatherSnow  Weather = "snow"
	WeatherBad   Weather = "bad"
)

// AllWeathers is the fixed draw order for the weather domain.
var AllWeathers = []Weather{WeatherClear, WeatherRain, WeatherFog, WeatherSnow, WeatherBad}

// #endregion weather

// #region traffic

// Traffic is the current traffic density.
type Traffic string

const (
	TrafficLow    Traffic = "low"
	TrafficMedium Traffic = "medium"
	TrafficHigh   Traffic = "high"
)

// AllTraffics is the fixed draw order for the traffic domain.
var AllTraffics = []Traffic{TrafficLow, TrafficMedium, TrafficHigh}

// #endregion traffic

// #region road

// Road is the current road type.
type Road string

const (
	RoadHighway Road = "highway"
	RoadCity    Road = "city"
	RoadRural   Road = "rural"
)

// AllRoads is the fixed draw order for the road domain.
var AllRoads = []Road{RoadHighway, RoadCity, RoadRural}

// #endregion road

// #region time-of-day

// TimeOfDay is the day/night phase of the simulated clock.
type TimeOfDay string

const (
	TimeDay   TimeOfDay = "day"
	TimeNight TimeOfDay = "night"
)

// #endregion time-of-day

// #region context

// Context bundles the four environment attributes for one tick.
type Context struct {
	Weather   Weather   `json:"weather"`
	Traffic   Traffic   `json:"traffic"`
	Road      Road      `json:"road_type"`
	TimeOfDay TimeOfDay `json:"time_of_day"`
}

// #endregion context

// #region config

// Config holds the transition tuning for the stochastic attributes and
// the deterministic day/night clock.
type Config struct {
	WeatherChangeProb float32
	WeatherWeights    map[Weather]float32

	TrafficChangeProb float32
	TrafficWeights    map[Traffic]float32

	RoadChangeProb float32
	RoadWeights    map[Road]float32

	// DayNightFlipTicks toggles time-of-day every N ticks (a tick is 5
	// simulated minutes). 0 disables the clock.
	DayNightFlipTicks int
}

// DefaultConfig returns the transition model defaults.
func DefaultConfig() Config {
	return Config{
		WeatherChangeProb: 1.0 / 36.0,
		WeatherWeights: map[Weather]float32{
			WeatherClear: 0.5,
			WeatherRain:  0.1,
			WeatherFog:   0.1,
			WeatherSnow:  0.1,
			WeatherBad:   0.2,
		},
		TrafficChangeProb: 1.0 / 12.0,
		TrafficWeights: map[Traffic]float32{
			TrafficLow:    0.4,
			TrafficMedium: 0.4,
			TrafficHigh:   0.2,
		},
		RoadChangeProb: 1.0 / 12.0,
		RoadWeights: map[Road]float32{
			RoadHighway: 0.6,
			RoadCity:    0.3,
			RoadRural:   0.1,
		},
		DayNightFlipTicks: 288,
	}
}

// #endregion config

// #region risk-config

// RiskConfig maps context attribute values to additive risk factors.
// The summed, clamped result feeds the rest-loss multiplier.
type RiskConfig struct {
	Weather map[Weather]float32
	Traffic map[Traffic]float32
	Road    map[Road]float32
	Night   float32
}

// DefaultRiskConfig returns the context-risk table.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		Weather: map[Weather]float32{
			WeatherClear: 0,
			WeatherRain:  0.1,
			WeatherFog:   0.25,
			WeatherSnow:  0.3,
			WeatherBad:   0.4,
		},
		Traffic: map[Traffic]float32{
			TrafficLow:    0,
			TrafficMedium: 0.1,
			TrafficHigh:   0.3,
		},
		Road: map[Road]float32{
			RoadHighway: 0,
			RoadCity:    0.05,
			RoadRural:   0.2,
		},
		Night: 0.1,
	}
}

// Risk computes the additive context risk for ctx, clamped to [0,1].
func (rc RiskConfig) Risk(ctx Context) float32 {
	r := rc.Weather[ctx.Weather] + rc.Traffic[ctx.Traffic] + rc.Road[ctx.Road]
	if ctx.TimeOfDay == TimeNight {
		r += rc.Night
	}
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// #endregion risk-config
