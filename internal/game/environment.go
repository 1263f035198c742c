package game

import "math/rand"

// EnvironmentEffects is the per-round physics snapshot. Gravity and AirDensity
// are multipliers on a baseline of 1.0; wind is an additive acceleration in
// px/s². Computed once when a round starts and never mutated mid-flight; the
// match nudges the wind by WindVariation only on turn hand-overs, when no
// shell is in the air.
type EnvironmentEffects struct {
	WindX      float64
	WindY      float64
	Gravity    float64
	AirDensity float64
}

// nightWindFactor attenuates wind after dark — calmer air at night.
const nightWindFactor = 0.7

// biomeBaseline holds the static environmental character of a biome.
type biomeBaseline struct {
	Gravity    float64
	AirDensity float64
	WindX      float64 // prevailing wind bias
	WindY      float64 // vertical draft bias (negative = updraft, y-down coords)
}

// biomeTable maps each biome to its baseline. Wind biases are deliberately
// small next to weather deltas — biome sets the flavour, weather the drama.
var biomeTable = [biomeCount]biomeBaseline{
	BiomeTemperate: {Gravity: 1.0, AirDensity: 1.0, WindX: 0, WindY: 0},
	BiomeDesert:    {Gravity: 1.0, AirDensity: 0.88, WindX: 9, WindY: 0},
	BiomeArctic:    {Gravity: 1.0, AirDensity: 1.14, WindX: -6, WindY: 0},
	BiomeVolcanic:  {Gravity: 1.08, AirDensity: 1.05, WindX: 0, WindY: -7},
}

// weatherDelta holds additive adjustments a weather state applies on top of
// the biome baseline.
type weatherDelta struct {
	WindX      float64
	WindY      float64
	AirDensity float64
}

var weatherTable = [weatherCount]weatherDelta{
	WeatherClear: {},
	WeatherWindy: {WindX: 20},
	WeatherRain:  {WindX: 6, WindY: 2, AirDensity: 0.10},
	WeatherSnow:  {WindX: -8, AirDensity: 0.16},
	WeatherStorm: {WindX: 32, WindY: 4, AirDensity: 0.12},
}

// seasonDensityDelta nudges air density by season. Subtle on purpose.
func seasonDensityDelta(s Season) float64 {
	switch s {
	case SeasonSummer:
		return -0.03
	case SeasonWinter:
		return 0.05
	default:
		return 0
	}
}

// EffectsFor derives the environment snapshot from biome, weather and time of
// day. Pure table lookup plus composition — no randomness, no error paths;
// always returns a complete struct.
func EffectsFor(biome Biome, weather Weather, tod TimeOfDay) EnvironmentEffects {
	base := biomeTable[biome]
	delta := weatherTable[weather]

	env := EnvironmentEffects{
		WindX:      base.WindX + delta.WindX,
		WindY:      base.WindY + delta.WindY,
		Gravity:    base.Gravity,
		AirDensity: base.AirDensity + delta.AirDensity,
	}
	if tod == TimeNight {
		env.WindX *= nightWindFactor
		env.WindY *= nightWindFactor
	}
	return env
}

// Wind variation bounds, drawn once per round independently of biome.
const (
	windVariationX = 12.0
	windVariationY = 3.0
)

// WindVariation draws a bounded random wind perturbation. Applied once per
// round on top of EffectsFor so two rounds on the same level still differ.
func WindVariation(rng *rand.Rand) (dx, dy float64) {
	dx = (rng.Float64()*2 - 1) * windVariationX
	dy = (rng.Float64()*2 - 1) * windVariationY
	return dx, dy
}

// EffectsForLevel composes the full per-round snapshot for a level config:
// biome/weather/time-of-day tables, seasonal density nudge, then the random
// wind variation.
func EffectsForLevel(cfg LevelConfig, rng *rand.Rand) EnvironmentEffects {
	env := EffectsFor(cfg.Biome, cfg.Weather, cfg.TimeOfDay)
	env.AirDensity += seasonDensityDelta(cfg.Season)
	dx, dy := WindVariation(rng)
	env.WindX += dx
	env.WindY += dy
	return env
}
