package hal

import (
	"context"
	"fmt"
	"io"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host  HostConfig
	Hz    int
	Ticks uint64
	// Script is fed to the keyboard, one event per tick.
	Script []KeyEvent
	// ExitAfterScript stops the runner on the tick after the last scripted
	// event has been stepped.
	ExitAfterScript bool
	// Snapshot, when set, receives a PNG of the framebuffer after a clean stop.
	Snapshot io.Writer
}

// RunHeadless runs the calculator without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Host)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	t := time.NewTicker(d)
	defer t.Stop()

	script := cfg.Script
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}

		if len(script) > 0 {
			if h.kbd.inject(script[0]) {
				script = script[1:]
			}
		} else if cfg.ExitAfterScript && len(cfg.Script) > 0 && tick > 0 {
			return finishHeadless(h, cfg)
		}

		h.t.step(1)
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			return finishHeadless(h, cfg)
		}
	}
}

func finishHeadless(h *hostHAL, cfg HeadlessConfig) error {
	if cfg.Snapshot == nil {
		return nil
	}
	return WritePNG(cfg.Snapshot, h.fb)
}
