//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package terminal

import (
	"errors"
	"time"
)

var errUnsupported = errors.New("terminal modes are not supported on this platform")

type mode int

const (
	modeRaw mode = iota
	modeLineEdit
)

// Guard is a placeholder on platforms without termios.
type Guard struct{}

func (t *Terminal) acquire(mode) (*Guard, error) {
	return nil, errUnsupported
}

func (g *Guard) Release() error {
	return nil
}

type unsupportedSource struct{}

func newFDSource(int) byteSource {
	return unsupportedSource{}
}

func (unsupportedSource) ReadByte() (byte, error) {
	return 0, errUnsupported
}

func (unsupportedSource) ReadByteTimeout(time.Duration) (byte, bool, error) {
	return 0, false, errUnsupported
}
