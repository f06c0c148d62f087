package terminal

import (
	"github.com/gdamore/tcell/v2/terminfo"
	_ "github.com/gdamore/tcell/v2/terminfo/base"
)

// defaultSequences covers ANSI cursor keys in both normal and application
// keypad mode.
func defaultSequences() map[string]KeyKind {
	return map[string]KeyKind{
		"\x1b[A": KeyUp,
		"\x1b[B": KeyDown,
		"\x1bOA": KeyUp,
		"\x1bOB": KeyDown,
	}
}

// arrowSequences extends the defaults with the cursor keys terminfo reports
// for termName. Only three-byte sequences fit the escape decoder.
func arrowSequences(termName string) map[string]KeyKind {
	seqs := defaultSequences()
	if termName == "" {
		return seqs
	}
	ti, err := terminfo.LookupTerminfo(termName)
	if err != nil || ti == nil {
		return seqs
	}
	add := func(seq string, kind KeyKind) {
		if len(seq) == 3 && seq[0] == keyEsc {
			seqs[seq] = kind
		}
	}
	add(ti.KeyUp, KeyUp)
	add(ti.KeyDown, KeyDown)
	return seqs
}
