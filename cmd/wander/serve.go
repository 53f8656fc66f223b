package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/wander/config"
	"github.com/lixenwraith/wander/network"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run in real time and stream frames to websocket observers",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newStderrLogger(debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("config load: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, logger)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	sim := newSimulation(cfg, logger)
	defer sim.close()

	server := network.NewObserverServer(sim.runID, float32(cfg.Sim.Extent), cfg.Observer.MaxFPS, logger)
	if err := server.Start(cfg.Observer.Addr); err != nil {
		return err
	}
	sim.scheduler.AddObserver(server)

	err := sim.scheduler.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := server.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("observer shutdown", zap.Error(serr))
	}

	logger.Info("stopped",
		zap.Uint64("ticks", sim.scheduler.TickCount()),
		zap.Uint64("frames_dropped", server.FramesDropped()),
	)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
