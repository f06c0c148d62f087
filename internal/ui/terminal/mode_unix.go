//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/sys/unix"
)

type mode int

const (
	modeRaw mode = iota
	modeLineEdit
)

// Guard holds a terminal mode. Release restores the attributes captured when
// the guard was acquired. Only one guard may be held at a time.
type Guard struct {
	t        *Terminal
	prev     unix.Termios
	released bool
}

func (t *Terminal) acquire(m mode) (*Guard, error) {
	if t.guard != nil {
		return nil, ErrGuardActive
	}
	prev, err := unix.IoctlGetTermios(t.fd, ioctlReadTermios)
	if err != nil {
		return nil, fmt.Errorf("get terminal mode: %w", err)
	}

	next := *prev
	switch m {
	case modeRaw:
		makeRaw(&next)
	case modeLineEdit:
		// ISIG is cleared so the interrupt byte reaches the editor.
		next.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG
		next.Cc[unix.VMIN] = 1
		next.Cc[unix.VTIME] = 0
	}
	if err := unix.IoctlSetTermios(t.fd, ioctlWriteTermios, &next); err != nil {
		return nil, fmt.Errorf("set terminal mode: %w", err)
	}

	g := &Guard{t: t, prev: *prev}
	t.guard = g
	return g, nil
}

// Release restores the previous mode. It is safe to call more than once.
func (g *Guard) Release() error {
	if g == nil || g.released {
		return nil
	}
	g.released = true
	if g.t.guard == g {
		g.t.guard = nil
	}
	if err := unix.IoctlSetTermios(g.t.fd, ioctlWriteTermios, &g.prev); err != nil {
		return fmt.Errorf("restore terminal mode: %w", err)
	}
	return nil
}

// makeRaw mirrors cfmakeraw.
func makeRaw(termios *unix.Termios) {
	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB
	termios.Cflag |= unix.CS8
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0
}

type fdSource struct {
	fd int
}

func newFDSource(fd int) byteSource {
	return fdSource{fd: fd}
}

func (s fdSource) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(s.fd, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err == unix.EAGAIN {
			if _, err := s.wait(-1); err != nil {
				return 0, err
			}
			continue
		}
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, io.EOF
		}
		return buf[0], nil
	}
}

// wait blocks until the descriptor is readable or timeoutMs elapses. A
// negative timeout waits indefinitely.
func (s fdSource) wait(timeoutMs int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, timeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

func (s fdSource) ReadByteTimeout(d time.Duration) (byte, bool, error) {
	ready, err := s.wait(int(d / time.Millisecond))
	if err != nil || !ready {
		return 0, false, err
	}
	b, err := s.ReadByte()
	if err != nil {
		return 0, false, err
	}
	return b, true, nil
}
