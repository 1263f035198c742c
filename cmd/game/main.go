package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/istickz/Scorched-Earth-Game-Phase-sub001/internal/audio"
	"github.com/istickz/Scorched-Earth-Game-Phase-sub001/internal/game"
)

func main() {
	var levelPath string
	var seed int64
	var mute bool

	flag.StringVar(&levelPath, "level", "", "path to a level config file (yaml/json/toml)")
	flag.Int64Var(&seed, "seed", 0, "override the level seed (0 keeps the file's seed)")
	flag.BoolVar(&mute, "mute", false, "disable sound")
	flag.Parse()

	level := game.DefaultLevelConfig()
	if levelPath != "" {
		var err error
		if level, err = game.LoadLevelConfig(levelPath); err != nil {
			log.Printf("level %s: %v (using defaults)", levelPath, err)
		}
	}
	if seed != 0 {
		level.Seed = seed
	}

	var sink game.EventSink
	if !mute {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("audio unavailable: %v", err)
		} else {
			defer sm.Cleanup()
			sink = sm
		}
	}

	ebiten.SetWindowTitle("Scorched Earth")
	ebiten.SetWindowSize(1024, 640)
	if err := ebiten.RunGame(game.New(level, sink)); err != nil {
		log.Fatal(err)
	}
}
