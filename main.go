package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/vitality/common"
	"github.com/milk9111/vitality/config"
	"github.com/milk9111/vitality/demo"
	"github.com/milk9111/vitality/prefabs"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger := config.NewLogger(config.Default(), os.Stderr)
		logger.Fatal().Err(err).Msg("invalid environment")
	}

	prefab := flag.String("prefab", cfg.Prefab, "vitality prefab to spawn as the target")
	prefabDir := flag.String("prefabs", cfg.PrefabDir, "directory checked for prefab overrides and watched for edits")
	debug := flag.Bool("debug", cfg.Debug, "enable debug mode")
	headless := flag.Bool("headless", false, "run without a window")
	frames := flag.Int("frames", 600, "ticks to run in headless mode")
	interval := flag.Int("interval", 20, "ticks between hits in headless mode")
	seed := flag.Int64("seed", 1, "random seed for headless hit positions")
	flag.Parse()

	cfg.Prefab = *prefab
	cfg.PrefabDir = *prefabDir
	cfg.Debug = *debug

	logger := config.NewLogger(cfg, os.Stderr)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid flags")
	}
	prefabs.Dir = cfg.PrefabDir

	watcher := newWatcher(cfg.PrefabDir, logger)
	if watcher != nil {
		defer func() { _ = watcher.Close() }()
	}

	var source demo.ChangeSource
	if watcher != nil {
		source = watcher
	}
	session, err := demo.NewSession(cfg, source, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start session")
	}
	defer session.Close()

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if _, err := demo.RunHeadless(ctx, session, *frames, *interval, rand.New(rand.NewSource(*seed))); err != nil {
			logger.Error().Err(err).Msg("headless run stopped")
		}
		return
	}

	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("vitality")

	if err := ebiten.RunGame(NewGame(cfg, session, logger)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal().Err(err).Msg("game exited")
	}
}

// newWatcher watches dir for prefab edits. A missing directory only disables
// hot reload.
func newWatcher(dir string, logger zerolog.Logger) *prefabs.Watcher {
	if _, err := os.Stat(dir); err != nil {
		logger.Info().Str("dir", dir).Msg("prefab directory not found, hot reload off")
		return nil
	}
	dirs := []string{dir}
	for _, sub := range []string{"effects", "scripts"} {
		if info, err := os.Stat(filepath.Join(dir, sub)); err == nil && info.IsDir() {
			dirs = append(dirs, filepath.Join(dir, sub))
		}
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("prefab watcher unavailable")
		return nil
	}
	return w
}
