package main

import (
	"errors"
	"log"

	"tilegrid/internal/camera"
	"tilegrid/internal/config"
	"tilegrid/internal/grid"
	"tilegrid/internal/monitoring"
	"tilegrid/internal/viewer"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	policy, err := grid.NewLODPolicy(cfg.LOD)
	if err != nil {
		log.Printf("Warning: LOD settings rejected, using defaults: %v", err)
	}

	cam := camera.NewState(cfg)
	reporter := viewer.NewAdjustmentLogger()
	engine, err := grid.New(cam, grid.WithLODPolicy(policy), grid.WithReporter(reporter.Report))
	if err != nil {
		log.Fatal(err)
	}
	if err := engine.Check(); err != nil {
		log.Printf("Warning: %v", err)
	}

	monitor := monitoring.NewGenerationMonitor(cfg.GetSlowGeneration())

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	v := viewer.New(cfg, cam, engine, monitor, reporter)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
