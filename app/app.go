// Package app assembles the calculator against a HAL and returns the
// per-frame step function the host runners call.
package app

import (
	"calc/calc/engine"
	"calc/calc/screen"
	"calc/hal"
	"calc/internal/config"

	"go.uber.org/zap"
)

type Config struct {
	Theme  screen.Theme
	Logger *zap.Logger
	// Reload delivers configs from a file watcher; may be nil.
	Reload <-chan config.Config
}

type system struct {
	log    *zap.Logger
	e      *engine.Engine
	s      *screen.Screen
	reload <-chan config.Config
}

// New builds the engine and screen and returns the step function.
func New(h hal.HAL, cfg Config) (func() error, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	theme := cfg.Theme
	if theme == (screen.Theme{}) {
		theme = screen.DefaultTheme()
	}

	e := engine.New()
	s, err := screen.New(h, e, screen.WithLogger(log), screen.WithTheme(theme))
	if err != nil {
		return nil, err
	}

	sys := &system{log: log, e: e, s: s, reload: cfg.Reload}
	log.Debug("calculator started",
		zap.Int("width", h.Display().Framebuffer().Width()),
		zap.Int("height", h.Display().Framebuffer().Height()),
	)
	return guard(h, log, sys.step), nil
}

func (sys *system) step() error {
	for {
		select {
		case c := <-sys.reload:
			sys.log.Info("theme reloaded")
			sys.s.SetTheme(c.Theme.Screen())
			continue
		default:
		}
		break
	}
	return sys.s.Step()
}
