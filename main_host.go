//go:build !tinygo && !js

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"sparkcalc/app"
	"sparkcalc/hal"
	"sparkcalc/internal/buildinfo"
	"sparkcalc/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		headless   bool
		hz         int
		ticks      uint64
		script     string
		snapshot   string
		configPath string
		version    bool
	)
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&script, "script", "", "Input typed in headless mode, e.g. '12+3{enter}' or '{click 40,200}'.")
	flag.StringVar(&snapshot, "snapshot", "", "Write a PNG of the screen here when headless mode ends.")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file.")
	flag.BoolVar(&version, "version", false, "Print the build version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return nil
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "hz" {
			cfg.TickHz = hz
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	appCfg := app.DefaultConfig()
	appCfg.Theme = cfg.Theme.Apply(appCfg.Theme)
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if !headless {
		return hal.RunWindow(newApp, hal.WindowConfig{
			Title: cfg.Window.Title + " (" + buildinfo.Short() + ")",
			Scale: cfg.Window.Scale,
		})
	}

	events, err := hal.ParseScript(script)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
		Hz:       cfg.TickHz,
		Ticks:    ticks,
		Script:   events,
		Snapshot: snapshot,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
