package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"chosenoffset.com/fieldview/internal/app"
	"chosenoffset.com/fieldview/internal/config"
	"chosenoffset.com/fieldview/internal/field/layout"
	"chosenoffset.com/fieldview/internal/logging"
	ebitenrender "chosenoffset.com/fieldview/internal/render/ebiten"
	"chosenoffset.com/fieldview/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "fieldview.yaml", "path to the YAML or JSON config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "fieldview:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	f, err := layout.Load(cfg.FieldFile)
	if err != nil {
		return fmt.Errorf("failed to load field: %w", err)
	}

	reconnect, err := cfg.ReconnectInterval()
	if err != nil {
		return err
	}

	// Telemetry runs in the background; the window owns the main thread.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := telemetry.NewStore(cfg.Topics, logger)
	client := telemetry.NewClient(telemetry.ClientConfig{
		URL:               cfg.ServerURL(),
		ReconnectInterval: reconnect,
	}, store, logger)
	defer client.Close()

	go func() {
		if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, telemetry.ErrClosed) {
			logger.Error("telemetry stopped", zap.Error(err))
		}
	}()

	fonts, err := ebitenrender.LoadFonts()
	if err != nil {
		return err
	}
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine(fonts)

	manager := app.NewManager(app.Config{
		Field:      f,
		MapOptions: cfg.MapOptions(),
		Input:      inputMgr,
		Source:     store,
		Publisher:  client,
		Topics:     cfg.Topics,
		Logger:     logger,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
	})

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)

	logger.Info("starting field view", zap.String("server", cfg.ServerURL()), zap.String("game", f.Game))
	if err := engine.RunGame(manager); err != nil && !errors.Is(err, app.ErrQuit) {
		return err
	}
	return nil
}
