package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestEffectsFor_TemperateClearDayIsNeutral(t *testing.T) {
	env := EffectsFor(BiomeTemperate, WeatherClear, TimeDay)
	if env.WindX != 0 || env.WindY != 0 {
		t.Errorf("neutral level has wind (%v,%v)", env.WindX, env.WindY)
	}
	if env.Gravity != 1 || env.AirDensity != 1 {
		t.Errorf("neutral level has g=%v density=%v, want 1/1", env.Gravity, env.AirDensity)
	}
}

func TestEffectsFor_BiomeCharacter(t *testing.T) {
	desert := EffectsFor(BiomeDesert, WeatherClear, TimeDay)
	arctic := EffectsFor(BiomeArctic, WeatherClear, TimeDay)
	volcanic := EffectsFor(BiomeVolcanic, WeatherClear, TimeDay)

	if desert.AirDensity >= arctic.AirDensity {
		t.Errorf("desert air (%v) not thinner than arctic (%v)", desert.AirDensity, arctic.AirDensity)
	}
	if volcanic.Gravity <= 1 {
		t.Errorf("volcanic gravity %v not above baseline", volcanic.Gravity)
	}
	if volcanic.WindY >= 0 {
		t.Errorf("volcanic updraft missing: windY=%v", volcanic.WindY)
	}
}

func TestEffectsFor_NightCalmsWind(t *testing.T) {
	day := EffectsFor(BiomeTemperate, WeatherStorm, TimeDay)
	night := EffectsFor(BiomeTemperate, WeatherStorm, TimeNight)
	if math.Abs(night.WindX) >= math.Abs(day.WindX) {
		t.Errorf("night wind %v not calmer than day wind %v", night.WindX, day.WindX)
	}
	// Density is unaffected by time of day.
	if night.AirDensity != day.AirDensity {
		t.Errorf("time of day changed air density: %v vs %v", night.AirDensity, day.AirDensity)
	}
}

func TestEffectsFor_WeatherStacksOnBiome(t *testing.T) {
	clear := EffectsFor(BiomeDesert, WeatherClear, TimeDay)
	windy := EffectsFor(BiomeDesert, WeatherWindy, TimeDay)
	if windy.WindX <= clear.WindX {
		t.Errorf("windy weather did not add wind: %v vs %v", windy.WindX, clear.WindX)
	}
}

func TestWindVariation_Bounded(t *testing.T) {
	rng := rand.New(rand.NewSource(11)) // #nosec G404 -- test
	for i := 0; i < 1000; i++ {
		dx, dy := WindVariation(rng)
		if math.Abs(dx) > windVariationX || math.Abs(dy) > windVariationY {
			t.Fatalf("draw %d out of bounds: (%v,%v)", i, dx, dy)
		}
	}
}

func TestEffectsForLevel_SeedDeterministic(t *testing.T) {
	cfg := DefaultLevelConfig()
	cfg.Biome = BiomeArctic
	cfg.Weather = WeatherSnow
	cfg.Season = SeasonWinter

	a := EffectsForLevel(cfg, rand.New(rand.NewSource(3))) // #nosec G404 -- test
	b := EffectsForLevel(cfg, rand.New(rand.NewSource(3))) // #nosec G404 -- test
	if a != b {
		t.Errorf("same seed produced different environments: %+v vs %+v", a, b)
	}

	// Winter thickens the air relative to summer on the same level.
	cfg.Season = SeasonSummer
	summer := EffectsForLevel(cfg, rand.New(rand.NewSource(3))) // #nosec G404 -- test
	if summer.AirDensity >= a.AirDensity {
		t.Errorf("summer air (%v) not thinner than winter (%v)", summer.AirDensity, a.AirDensity)
	}
}
