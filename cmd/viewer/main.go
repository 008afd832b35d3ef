// Command viewer renders a running level with its collision state overlaid:
// solid tiles, body rects, contact sides, temporary surfaces with their
// normals, and hit volumes. It exists to eyeball resolver behavior that the
// headless runner only reports as numbers.
package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gridlockgames/collider/config"
	"github.com/gridlockgames/collider/level"
	"github.com/gridlockgames/collider/levels"
	"github.com/gridlockgames/collider/scenarios"
	"github.com/gridlockgames/collider/sim"
)

func main() {
	levelName := flag.String("level", "cistern", "embedded level name, or a path to a level .json")
	configPath := flag.String("config", "", "tuning yaml; defaults to the built-in tuning")
	scenarioName := flag.String("scenario", "patrol", "embedded scenario name, a path to a .tengo script, or \"none\"")
	zoom := flag.Float64("zoom", 2, "render scale")
	flag.Parse()

	tuning := config.Default()
	if *configPath != "" {
		var err error
		tuning, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	lvl, err := loadLevel(*levelName)
	if err != nil {
		log.Fatal(err)
	}

	var scnSrc []byte
	switch {
	case *scenarioName == "" || *scenarioName == "none":
	case strings.HasSuffix(*scenarioName, ".tengo"):
		log.Fatal("viewer: pass embedded scenario names; file paths are for the simulate command")
	default:
		scnSrc, err = scenarios.Load(*scenarioName)
		if err != nil {
			log.Fatal(err)
		}
	}

	v, err := NewViewer(lvl, tuning, *scenarioName, scnSrc, *zoom)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(v.WindowSize())
	ebiten.SetWindowTitle("collider viewer - " + lvl.Name)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func loadLevel(name string) (*level.Level, error) {
	if strings.HasSuffix(name, ".json") {
		return level.Load(name)
	}
	return levels.Load(name)
}
