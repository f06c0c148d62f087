package terminal

import (
	"errors"
	"io"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// BackKey pops one level in line-edit prompts.
const BackKey = 'b'

var (
	// ErrBack is returned when the back key ends line editing.
	ErrBack = errors.New("back")
	// ErrInterrupted is returned when the interrupt byte is read.
	ErrInterrupted = errors.New("interrupted")
	// ErrQuit is returned when Escape is pressed while editing a line. The
	// caller is expected to run the safe-exit procedure.
	ErrQuit = errors.New("quit")
)

const (
	eraseLine = "\x1b[2K\r"
	eraseChar = "\b \b"
)

// editLine accumulates printable input from src until Enter. With echo set,
// typed characters and erasures are mirrored to out.
func editLine(src byteSource, out io.Writer, echo bool) (string, error) {
	var text strings.Builder
	for {
		b, err := src.ReadByte()
		if err != nil {
			return "", err
		}

		switch b {
		case '\r', '\n':
			_, _ = io.WriteString(out, eraseLine)
			return text.String(), nil
		case keyDelete, keyCtrlH:
			current := text.String()
			if current == "" {
				continue
			}
			start, cluster := lastGrapheme(current)
			text.Reset()
			text.WriteString(current[:start])
			if echo {
				width := uniseg.StringWidth(cluster)
				if width < 1 {
					width = 1
				}
				_, _ = io.WriteString(out, strings.Repeat(eraseChar, width))
			}
			continue
		case keyInterrupt:
			return "", ErrInterrupted
		case keyEsc:
			return "", ErrQuit
		case BackKey:
			_, _ = io.WriteString(out, eraseLine)
			return "", ErrBack
		}

		r, err := readRune(src, b)
		if err != nil {
			return "", err
		}
		if !unicode.IsPrint(r) {
			continue
		}
		text.WriteRune(r)
		if echo {
			_, _ = io.WriteString(out, string(r))
		}
	}
}

// lastGrapheme returns the byte offset and text of the final grapheme
// cluster in s.
func lastGrapheme(s string) (int, string) {
	start, cluster := 0, ""
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		start, _ = g.Positions()
		cluster = g.Str()
	}
	return start, cluster
}
