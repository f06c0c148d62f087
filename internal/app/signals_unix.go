//go:build !windows

package app

import (
	"os"
	"syscall"
)

// exitSignals end the reader outside of key reads. In raw and line-edit
// mode Ctrl+C arrives as a byte instead of SIGINT.
func exitSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}
}
