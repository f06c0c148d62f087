// Package terminal drives a single interactive line: it reads keys and
// edited lines under scoped terminal modes and redraws the line in place.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

const (
	DefaultEscapeTimeout = 30 * time.Millisecond
	fallbackColumns      = 80
)

var (
	// ErrNotTerminal is returned by Open when input is not a terminal.
	ErrNotTerminal = errors.New("input is not a terminal")
	// ErrGuardActive is returned when a mode is acquired while another is held.
	ErrGuardActive = errors.New("terminal mode already acquired")
)

// Options configures a Terminal.
type Options struct {
	// EscapeTimeout bounds the wait for the rest of a cursor-key sequence
	// after an ESC byte.
	EscapeTimeout time.Duration
	// TermName selects extra cursor-key sequences from terminfo.
	TermName string
}

// Terminal reads keys from a tty and writes the reading line.
type Terminal struct {
	fd         int
	out        io.Writer
	src        byteSource
	sequences  map[string]KeyKind
	escTimeout time.Duration
	guard      *Guard
	initial    *term.State
}

// Open prepares in for key reading. The mode in effect now is what Shutdown
// restores.
func Open(in *os.File, out io.Writer, opts Options) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	initial, err := term.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("get terminal state: %w", err)
	}
	timeout := opts.EscapeTimeout
	if timeout <= 0 {
		timeout = DefaultEscapeTimeout
	}
	return &Terminal{
		fd:         fd,
		out:        out,
		src:        newFDSource(fd),
		sequences:  arrowSequences(opts.TermName),
		escTimeout: timeout,
		initial:    initial,
	}, nil
}

// ReadKey switches to raw mode, reads one key and restores the previous mode.
func (t *Terminal) ReadKey() (ev KeyEvent, err error) {
	g, err := t.acquire(modeRaw)
	if err != nil {
		return KeyEvent{}, err
	}
	defer func() {
		if rerr := g.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return decodeKey(t.src, t.sequences, t.escTimeout)
}

// ReadLine writes label and edits one line of input without canonical mode
// or terminal echo. echo controls whether typed characters are mirrored.
// It returns ErrBack, ErrInterrupted or ErrQuit for the corresponding keys;
// the previous mode is restored on every path.
func (t *Terminal) ReadLine(label string, echo bool) (line string, err error) {
	g, err := t.acquire(modeLineEdit)
	if err != nil {
		return "", err
	}
	defer func() {
		if rerr := g.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	if _, err := io.WriteString(t.out, label); err != nil {
		return "", err
	}
	return editLine(t.src, t.out, echo)
}

// Redraw erases the current line and writes text, leaving the cursor at
// column zero.
func (t *Terminal) Redraw(text string) error {
	_, err := io.WriteString(t.out, eraseLine+text+"\r")
	return err
}

// Clear erases the current line.
func (t *Terminal) Clear() error {
	_, err := io.WriteString(t.out, eraseLine)
	return err
}

// Columns reports the terminal width, falling back to 80 columns.
func (t *Terminal) Columns() int {
	width, _, err := term.GetSize(t.fd)
	if err != nil || width <= 0 {
		return fallbackColumns
	}
	return width
}

// Shutdown clears the line and restores the mode captured by Open. Errors are
// ignored: it runs while the process is exiting and must not fail on a
// stream that stopped being a terminal.
func (t *Terminal) Shutdown() {
	_, _ = io.WriteString(t.out, eraseLine)
	if t.initial != nil {
		_ = term.Restore(t.fd, t.initial)
	}
}
