package game

import (
	"strings"

	"github.com/spf13/viper"
)

// Biome is the terrain/environment category of a level.
type Biome uint8

const (
	BiomeTemperate Biome = iota // neutral baseline
	BiomeDesert                 // thin air, easterly bias
	BiomeArctic                 // dense air, westerly bias
	BiomeVolcanic               // heavy gravity, thermal updrafts
	biomeCount                  // sentinel
)

func (b Biome) String() string {
	switch b {
	case BiomeTemperate:
		return "temperate"
	case BiomeDesert:
		return "desert"
	case BiomeArctic:
		return "arctic"
	case BiomeVolcanic:
		return "volcanic"
	default:
		return "temperate"
	}
}

// Weather is the per-level weather state layered over the biome.
type Weather uint8

const (
	WeatherClear Weather = iota
	WeatherWindy
	WeatherRain
	WeatherSnow
	WeatherStorm
	weatherCount // sentinel
)

func (w Weather) String() string {
	switch w {
	case WeatherClear:
		return "clear"
	case WeatherWindy:
		return "windy"
	case WeatherRain:
		return "rain"
	case WeatherSnow:
		return "snow"
	case WeatherStorm:
		return "storm"
	default:
		return "clear"
	}
}

// TimeOfDay selects day/night for wind attenuation.
type TimeOfDay uint8

const (
	TimeDay TimeOfDay = iota
	TimeNight
)

func (t TimeOfDay) String() string {
	if t == TimeNight {
		return "night"
	}
	return "day"
}

// Season nudges air density slightly.
type Season uint8

const (
	SeasonSpring Season = iota
	SeasonSummer
	SeasonAutumn
	SeasonWinter
)

func (s Season) String() string {
	switch s {
	case SeasonSummer:
		return "summer"
	case SeasonAutumn:
		return "autumn"
	case SeasonWinter:
		return "winter"
	default:
		return "spring"
	}
}

// LevelConfig is the only external protocol the core parses. Every field has
// a documented fallback so a malformed or missing level never fails a round.
type LevelConfig struct {
	Biome     Biome
	Shape     TerrainShape
	Weather   Weather
	Roughness float64 // 0..1, scales terrain amplitude
	TimeOfDay TimeOfDay
	Season    Season
	Shields   ShieldLoadout
	TurnDelay int // turn hand-over pause in ticks; 0 = default
	Seed      int64
}

// DefaultLevelConfig is the neutral fallback: temperate hills, clear day,
// no shields.
func DefaultLevelConfig() LevelConfig {
	return LevelConfig{
		Biome:     BiomeTemperate,
		Shape:     ShapeHills,
		Weather:   WeatherClear,
		Roughness: 0.5,
		TimeOfDay: TimeDay,
		Season:    SeasonSpring,
		Shields:   ShieldsNone,
		TurnDelay: defaultTransitionTicks,
		Seed:      1,
	}
}

// ParseBiome maps a biome name to its enum; unknown names fall back to
// temperate rather than erroring.
func ParseBiome(s string) Biome {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desert":
		return BiomeDesert
	case "arctic":
		return BiomeArctic
	case "volcanic":
		return BiomeVolcanic
	default:
		return BiomeTemperate
	}
}

// ParseShape maps a terrain shape name; unknown names fall back to hills.
func ParseShape(s string) TerrainShape {
	if strings.ToLower(strings.TrimSpace(s)) == "mountains" {
		return ShapeMountains
	}
	return ShapeHills
}

// ParseWeather maps a weather name; unknown names fall back to clear.
func ParseWeather(s string) Weather {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windy":
		return WeatherWindy
	case "rain":
		return WeatherRain
	case "snow":
		return WeatherSnow
	case "storm":
		return WeatherStorm
	default:
		return WeatherClear
	}
}

// ParseTimeOfDay maps day/night; unknown names fall back to day.
func ParseTimeOfDay(s string) TimeOfDay {
	if strings.ToLower(strings.TrimSpace(s)) == "night" {
		return TimeNight
	}
	return TimeDay
}

// ParseSeason maps a season name; unknown names fall back to spring.
func ParseSeason(s string) Season {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "summer":
		return SeasonSummer
	case "autumn", "fall":
		return SeasonAutumn
	case "winter":
		return SeasonWinter
	default:
		return SeasonSpring
	}
}

// ParseShieldLoadout maps a shield loadout name; unknown names fall back to
// no shields.
func ParseShieldLoadout(s string) ShieldLoadout {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multi", "multi-use":
		return ShieldsMultiUse
	case "single", "single-use":
		return ShieldsSingleUse
	default:
		return ShieldsNone
	}
}

// clampRoughness bounds roughness to its documented [0,1] range.
func clampRoughness(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// LoadLevelConfig reads a level file (YAML/JSON/TOML, sniffed by extension)
// into a LevelConfig. Missing fields take the documented defaults; a missing
// or unreadable file yields DefaultLevelConfig and the read error so callers
// can warn while still starting the round.
func LoadLevelConfig(path string) (LevelConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("biome", "temperate")
	v.SetDefault("shape", "hills")
	v.SetDefault("weather", "clear")
	v.SetDefault("roughness", 0.5)
	v.SetDefault("timeOfDay", "day")
	v.SetDefault("season", "spring")
	v.SetDefault("shields", "none")
	v.SetDefault("turnDelayTicks", defaultTransitionTicks)
	v.SetDefault("seed", 1)

	if err := v.ReadInConfig(); err != nil {
		return DefaultLevelConfig(), err
	}

	cfg := LevelConfig{
		Biome:     ParseBiome(v.GetString("biome")),
		Shape:     ParseShape(v.GetString("shape")),
		Weather:   ParseWeather(v.GetString("weather")),
		Roughness: clampRoughness(v.GetFloat64("roughness")),
		TimeOfDay: ParseTimeOfDay(v.GetString("timeOfDay")),
		Season:    ParseSeason(v.GetString("season")),
		Shields:   ParseShieldLoadout(v.GetString("shields")),
		TurnDelay: v.GetInt("turnDelayTicks"),
		Seed:      v.GetInt64("seed"),
	}
	return cfg, nil
}
