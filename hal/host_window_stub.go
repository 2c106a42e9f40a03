//go:build !cgo

package hal

import "errors"

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Host      HostConfig
	Title     string
	Scale     int
	TPS       int
	Resizable bool
}

func RunWindow(_ WindowConfig, _ func(HAL) (func() error, error)) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
