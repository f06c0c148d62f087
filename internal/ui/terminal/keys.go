package terminal

import (
	"io"
	"time"
	"unicode/utf8"
)

const (
	keyEsc       = 0x1b
	keyInterrupt = 0x03
	keyDelete    = 0x7f
	keyCtrlH     = 0x08
)

// KeyKind identifies a logical key.
type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyUp
	KeyDown
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyCtrlC
	KeyChar
)

func (k KeyKind) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEscape:
		return "escape"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyCtrlC:
		return "ctrl-c"
	case KeyChar:
		return "char"
	default:
		return "unknown"
	}
}

// KeyEvent is one decoded keypress. Rune is set for KeyChar.
type KeyEvent struct {
	Kind KeyKind
	Rune rune
}

// byteSource yields raw input bytes. ReadByteTimeout reports ok=false when
// nothing arrived within d.
type byteSource interface {
	ReadByte() (byte, error)
	ReadByteTimeout(d time.Duration) (b byte, ok bool, err error)
}

// decodeKey reads exactly one logical key from src.
func decodeKey(src byteSource, sequences map[string]KeyKind, escTimeout time.Duration) (KeyEvent, error) {
	b, err := src.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch b {
	case keyEsc:
		return decodeEscape(src, sequences, escTimeout)
	case '\r', '\n':
		return KeyEvent{Kind: KeyEnter}, nil
	case keyDelete, keyCtrlH:
		return KeyEvent{Kind: KeyBackspace}, nil
	case keyInterrupt:
		return KeyEvent{Kind: KeyCtrlC}, nil
	}

	r, err := readRune(src, b)
	if err != nil {
		return KeyEvent{}, err
	}
	return KeyEvent{Kind: KeyChar, Rune: r}, nil
}

// decodeEscape waits at most escTimeout for each of the two bytes that would
// complete a cursor sequence. Anything short of a recognised sequence is a
// bare Escape.
func decodeEscape(src byteSource, sequences map[string]KeyKind, escTimeout time.Duration) (KeyEvent, error) {
	seq := []byte{keyEsc}
	for len(seq) < 3 {
		next, ok, err := src.ReadByteTimeout(escTimeout)
		if err != nil || !ok {
			return KeyEvent{Kind: KeyEscape}, nil
		}
		seq = append(seq, next)
	}
	if kind, ok := sequences[string(seq)]; ok {
		return KeyEvent{Kind: kind}, nil
	}
	return KeyEvent{Kind: KeyEscape}, nil
}

// readRune completes a UTF-8 sequence that starts with lead.
func readRune(src byteSource, lead byte) (rune, error) {
	if lead < utf8.RuneSelf {
		return rune(lead), nil
	}
	buf := []byte{lead}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		next, err := src.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return utf8.RuneError, err
		}
		buf = append(buf, next)
	}
	r, _ := utf8.DecodeRune(buf)
	return r, nil
}
