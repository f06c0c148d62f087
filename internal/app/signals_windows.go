//go:build windows

package app

import "os"

func exitSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
