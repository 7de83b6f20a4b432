//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64

	// Script is typed into the keyboard and pointer, one event per step.
	Script []ScriptEvent

	// Snapshot, when set, receives a PNG of the framebuffer once the run ends.
	Snapshot string

	// Log overrides the logger output (stdout by default).
	Log io.Writer
}

// RunHeadless runs the OS without opening a window.
//
// It returns when Ticks steps have elapsed (if non-zero) or ctx is done.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	logOut := cfg.Log
	if logOut == nil {
		logOut = stdout()
	}

	h := newHostHAL(logOut)
	step := newApp(h)

	runErr := runHeadlessLoop(ctx, h, step, d, cfg)
	if cfg.Snapshot != "" {
		// Let the tasks drain the last input before capturing.
		time.Sleep(2 * d)
		if err := writeSnapshotFile(cfg.Snapshot, h.fb); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}

func runHeadlessLoop(ctx context.Context, h *hostHAL, step func() error, d time.Duration, cfg HeadlessConfig) error {
	t := time.NewTicker(d)
	defer t.Stop()

	script := cfg.Script
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if len(script) > 0 && script[0].apply(h) {
				script = script[1:]
			}
			h.t.sync()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func writeSnapshotFile(path string, fb *hostFramebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := WritePNG(f, fb); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
