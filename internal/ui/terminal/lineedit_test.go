package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEditLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		echo    bool
		want    string
		wantErr error
	}{
		{"enter finishes", "12\r", true, "12", nil},
		{"line feed finishes", "2\n", true, "2", nil},
		{"backspace erases", "13\x7f2\r", true, "12", nil},
		{"backspace on empty line", "\x7f\x7f1\r", true, "1", nil},
		{"back key with partial input", "ke" + string(BackKey) + "y\r", true, "", ErrBack},
		{"interrupt", "ax\x03", true, "", ErrInterrupted},
		{"escape quits", "x\x1b", true, "", ErrQuit},
		{"non printable ignored", "a\x01\x02z\r", true, "az", nil},
		{"unicode input", "日本\x7f\r", true, "日", nil},
		{"empty line", "\r", true, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := editLine(newScriptedSource(tt.input), &out, tt.echo)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("editLine error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("editLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEditLineEchoesAndErases(t *testing.T) {
	var out bytes.Buffer
	if _, err := editLine(newScriptedSource("ac\x7f\r"), &out, true); err != nil {
		t.Fatalf("editLine: %v", err)
	}
	want := "ac" + eraseChar + eraseLine
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestEditLineErasesWideGraphemeByWidth(t *testing.T) {
	var out bytes.Buffer
	if _, err := editLine(newScriptedSource("日\x7f\r"), &out, true); err != nil {
		t.Fatalf("editLine: %v", err)
	}
	if !strings.Contains(out.String(), eraseChar+eraseChar) {
		t.Fatalf("expected two-column erase for wide rune, got %q", out.String())
	}
}

func TestEditLineWithoutEcho(t *testing.T) {
	var out bytes.Buffer
	got, err := editLine(newScriptedSource("secret\r"), &out, false)
	if err != nil || got != "secret" {
		t.Fatalf("editLine = %q, %v", got, err)
	}
	if strings.Contains(out.String(), "secret") {
		t.Fatalf("input echoed with echo disabled: %q", out.String())
	}
}
