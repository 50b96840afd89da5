package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/soocke/minimap-caller-go/app"
	"github.com/soocke/minimap-caller-go/assets"
	"github.com/soocke/minimap-caller-go/config"
	"github.com/soocke/minimap-caller-go/debug"
	"github.com/soocke/minimap-caller-go/domain/announce"
	"github.com/soocke/minimap-caller-go/domain/callout"
	"github.com/soocke/minimap-caller-go/domain/detect"
	"github.com/soocke/minimap-caller-go/domain/pipeline"
	"github.com/soocke/minimap-caller-go/source"
	"github.com/soocke/minimap-caller-go/store"
	"github.com/soocke/minimap-caller-go/tts"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "mock":
		os.Exit(runMock(os.Args[2:]))
	case "gui":
		os.Exit(runGUI(os.Args[2:]))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: minimap-caller <command> [flags]")
	fmt.Fprintln(os.Stderr, "  mock  run the frame pipeline against a local minimap image")
	fmt.Fprintln(os.Stderr, "  gui   open the interactive caller window")
}

// runMock drives the detection pipeline from a still image, announcing to
// the chosen TTS backend. Useful for tuning thresholds without a live feed.
func runMock(args []string) int {
	fs := flag.NewFlagSet("mock", flag.ExitOnError)
	imagePath := fs.String("image", "", "path to the minimap image (required)")
	mapsDir := fs.String("maps-dir", "config/maps", "directory holding <map>.yaml region files")
	mapName := fs.String("map", assets.DefaultMapName, "map whose regions to load")
	cfgPath := fs.String("config", "", "optional YAML config file")
	fps := fs.Float64("fps", 0, "processing frame rate (overrides config)")
	cooldown := fs.Float64("cooldown", 0, "per-callout cooldown seconds (overrides config)")
	stableFrames := fs.Int("stable-frames", 0, "frames a callout must persist before speaking (overrides config)")
	maxFrames := fs.Int("max-frames", 120, "stop after this many frames, 0 for unlimited")
	ttsBackend := fs.String("tts", "console", "tts backend: auto, native or console")
	debugFlag := fs.Bool("debug", false, "verbose logging and runtime metrics")
	_ = fs.Parse(args)

	logger := NewLogger(logLevel(*debugFlag))

	if *imagePath == "" {
		logger.Error("mock: -image is required")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		return 1
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *cooldown > 0 {
		cfg.CooldownSeconds = *cooldown
	}
	if *stableFrames > 0 {
		cfg.StableFrames = *stableFrames
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("validating config", "error", err)
		return 1
	}

	if *debugFlag {
		debug.StartGoroutineLogger(2*time.Second, logger)
	}

	maps, err := store.NewMapStore(*mapsDir)
	if err != nil {
		logger.Error("opening maps dir", "error", err)
		return 1
	}
	if err := maps.SeedDefault(assets.DefaultMapName, assets.DefaultMapYAML); err != nil {
		logger.Error("seeding default map", "error", err)
		return 1
	}
	mapCfg, err := maps.Load(*mapName)
	if err != nil {
		logger.Error("loading map", "map", *mapName, "error", err)
		return 1
	}

	src, err := source.NewMockImageSource(*imagePath)
	if err != nil {
		logger.Error("opening mock image", "error", err)
		return 1
	}
	defer src.Close()

	speaker, err := tts.New(*ttsBackend, logger)
	if err != nil {
		logger.Error("initializing tts", "error", err)
		return 1
	}
	announcer, err := announce.NewAnnouncer(speaker, time.Duration(cfg.CooldownSeconds*float64(time.Second)), cfg.StableFrames, logger)
	if err != nil {
		logger.Error("initializing announcer", "error", err)
		return 1
	}
	clock, err := pipeline.NewFrameClock(cfg.FPS)
	if err != nil {
		logger.Error("initializing clock", "error", err)
		return 1
	}

	logger.Info("mock pipeline starting",
		"map", mapCfg.MapName,
		"regions", len(mapCfg.Regions),
		"fps", cfg.FPS,
		"max_frames", *maxFrames,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pl := &pipeline.Pipeline{
		Source:    src,
		Detector:  detect.NewRedDotDetector(cfg, logger),
		Mapper:    callout.NewMapper(mapCfg.Regions),
		Announcer: announcer,
		Clock:     clock,
		Logger:    logger,
	}
	frames, err := pl.Run(ctx, *maxFrames)
	if err != nil && ctx.Err() == nil {
		logger.Error("pipeline stopped", "frames", frames, "error", err)
		return 1
	}
	logger.Info("pipeline finished", "frames", frames)
	return 0
}

// runGUI opens the interactive window.
func runGUI(args []string) int {
	fs := flag.NewFlagSet("gui", flag.ExitOnError)
	mapsDir := fs.String("maps-dir", "config/maps", "directory holding <map>.yaml region files")
	settingsPath := fs.String("settings", "config/settings.yaml", "settings file")
	cfgPath := fs.String("config", "config/caller.yaml", "detection config file")
	fps := fs.Float64("fps", 0, "processing frame rate (overrides config)")
	debugFlag := fs.Bool("debug", false, "verbose logging and runtime metrics")
	_ = fs.Parse(args)

	logger := NewLogger(logLevel(*debugFlag))

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		return 1
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("validating config", "error", err)
		return 1
	}
	if *debugFlag {
		cfg.Debug = true
		debug.StartGoroutineLogger(2*time.Second, logger)
	}

	application, err := app.NewApp("Minimap Caller", 800, 600, cfg, *cfgPath, *mapsDir, *settingsPath, logger)
	if err != nil {
		logger.Error("building app", "error", err)
		return 1
	}
	application.Start()
	return 0
}

// loadConfig reads the YAML config at path; a missing or empty path yields
// defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

func logLevel(debug bool) slog.Leveler {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
