package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog"

	"pigstimer/internal/audio"
	"pigstimer/internal/core/distribution"
	"pigstimer/internal/core/model"
	"pigstimer/internal/core/timer"
	"pigstimer/internal/logging"
	"pigstimer/internal/platform"
	"pigstimer/internal/storage"
	"pigstimer/internal/ui/paramform"
	"pigstimer/internal/ui/timerview"
	"pigstimer/internal/ui/tray"
	"pigstimer/resources"
)

const (
	appName = "PigsTimer"
	appID   = "com.pigstimer.app"
	title   = "Pigs Timer"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: user config dir)")
	logLevel := flag.String("log-level", "", "log level override: debug, info, warn, error")
	flag.Parse()

	if err := run(*configPath, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run(configPath, logLevel string) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		config.LogLevel = logLevel
	}
	level, err := logging.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(level, os.Stderr)

	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info().Msg("another instance is already running; asked it to show its window")
		return nil
	}
	if err != nil {
		return fmt.Errorf("acquire single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	editor, err := distribution.NewEditor(distribution.Bounds{
		Min:  config.MinMinutes,
		Mean: config.MeanMinutes,
		Max:  config.MaxMinutes,
	}.Rounded())
	if err != nil {
		return fmt.Errorf("initial bounds: %w", err)
	}

	player, err := newPlayer(config, logger)
	if err != nil {
		return err
	}

	var wakeLock timer.WakeLock
	if config.KeepAwake {
		wakeLock = platform.NewWakeLock(appName, logger)
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo("pig.png"))

	var controller *timer.Controller
	actions := timerview.Actions{
		OnStart:           func() { controller.Start() },
		OnPause:           func() { controller.Pause() },
		OnResume:          func() { controller.Resume() },
		OnStop:            func() { controller.Stop() },
		OnToggleDirection: func() { controller.ToggleDirection() },
	}

	form := paramform.New(editor)
	window := timerview.New(fyneApp, title, form.Content(), player, actions)
	presenters := timer.MultiPresenter{window}
	guard.OnActivate(func() {
		fyne.Do(window.Show)
	})

	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager := tray.New(desktopApp, tray.Icons{
			Active: resources.MustLogo("pig.png"),
			Idle:   resources.MustLogo("pig_paused.png"),
		}, tray.Callbacks{
			OnStart:           actions.OnStart,
			OnPause:           actions.OnPause,
			OnResume:          actions.OnResume,
			OnStop:            actions.OnStop,
			OnToggleDirection: actions.OnToggleDirection,
			OnShowWindow:      window.Show,
			OnQuit:            fyneApp.Quit,
		})
		presenters = append(presenters, trayManager)
		window.SetCloseIntercept(window.Hide)
	} else {
		logger.Info().Msg("system tray unsupported on this platform")
	}

	sampler := distribution.NewSeededSampler(uint64(time.Now().UnixNano()))
	controller = timer.New(editor.Parameters(), sampler, presenters, wakeLock, timer.Options{
		RefreshInterval: config.RefreshInterval,
		Direction:       timer.ParseDirection(config.Direction),
		Logger:          logger,
	})
	editor.SetOnChange(func(_ distribution.Bounds, params distribution.Parameters) {
		controller.SetParameters(params)
	})

	ctx, cancel := context.WithCancel(context.Background())
	go controller.Run(ctx)
	fyneApp.Lifecycle().SetOnStopped(func() {
		cancel()
		controller.Close()
	})

	logger.Info().
		Float64("min", config.MinMinutes).
		Float64("mean", config.MeanMinutes).
		Float64("max", config.MaxMinutes).
		Bool("keep_awake", config.KeepAwake).
		Msg("starting")

	window.Show()
	fyneApp.Run()
	cancel()
	return nil
}

func loadConfig(path string) (model.AppConfig, error) {
	if path == "" {
		defaultPath, err := storage.DefaultConfigPath(appName)
		if err != nil {
			return model.DefaultConfig(), nil
		}
		path = defaultPath
	}
	return storage.LoadConfig(path)
}

func newPlayer(config model.AppConfig, logger zerolog.Logger) (*audio.Player, error) {
	if config.SoundFile != "" {
		return audio.NewPlayer(audio.FileSource(config.SoundFile), config.SoundVolume, logger), nil
	}
	data, err := resources.Sound("oink.wav")
	if err != nil {
		return nil, err
	}
	return audio.NewPlayer(audio.BytesSource(data), config.SoundVolume, logger), nil
}
