package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/wander/audio"
	"github.com/lixenwraith/wander/config"
	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/parameter"
	"github.com/lixenwraith/wander/render"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run in the terminal (space: pause, m: mute, q: quit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, logFile := setupLogging(debug)
			if logFile != nil {
				defer logFile.Close()
			}
			defer logger.Sync()

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("config load: %w", err)
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("terminal init: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("terminal init: %w", err)
			}
			core.SetCrashFinalizer(screen)
			defer func() {
				core.SetCrashFinalizer(nil)
				screen.Fini()
			}()

			return runTerminal(screen, cfg, logger)
		},
	}
}

// runTerminal drives the real-time scheduler and redraws at the render rate until quit
func runTerminal(screen tcell.Screen, cfg *config.Config, logger *zap.Logger) error {
	sim := newSimulation(cfg, logger)
	defer sim.close()

	var chime *audio.Chime
	if cfg.Audio.Enabled {
		c, err := audio.NewChime(logger)
		if err != nil {
			logger.Warn("audio initialization failed, continuing without audio", zap.Error(err))
		} else {
			chime = c
			sim.scheduler.AddObserver(chime)
		}
	}

	renderer := render.NewTerminalRenderer(screen, float32(cfg.Sim.Extent), sim.status)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	})

	sim.scheduler.Start()
	defer sim.scheduler.Stop()

	frameTicker := time.NewTicker(parameter.RenderFrameInterval)
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if handleKey(ev, sim, chime, logger) {
					return nil
				}
			}
		case <-frameTicker.C:
			renderer.RenderFrame(sim.world.Snapshot(), sim.clock.IsPaused())
			screen.Show()
		}
	}
}

// handleKey applies a key binding and reports whether to quit
func handleKey(ev *tcell.EventKey, sim *simulation, chime *audio.Chime, logger *zap.Logger) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			paused := sim.clock.Toggle()
			logger.Debug("pause toggled", zap.Bool("paused", paused))
		case 'm':
			if chime != nil {
				muted := chime.Toggle()
				logger.Debug("mute toggled", zap.Bool("muted", muted))
			}
		}
	}
	return false
}
