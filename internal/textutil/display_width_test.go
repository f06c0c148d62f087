package textutil

import "testing"

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"ascii", "hello", 5},
		{"wide cjk", "你好", 4},
		{"mixed", "a你b", 4},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayWidth(tt.text); got != tt.want {
				t.Fatalf("DisplayWidth(%q)=%d want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestVisibleWidthIgnoresColorCodes(t *testing.T) {
	prompt := "\x1b[01;32mroot@box\x1b[00m:\x1b[01;34m~\x1b[00m# "
	if got := VisibleWidth(prompt); got != len("root@box:~# ") {
		t.Fatalf("VisibleWidth=%d want %d", got, len("root@box:~# "))
	}
}

func TestExpandTabs(t *testing.T) {
	if got := ExpandTabs("a\tb", 4); got != "a   b" {
		t.Fatalf("ExpandTabs=%q", got)
	}
	if got := ExpandTabs("\tx", 0); got != "\tx" {
		t.Fatalf("ExpandTabs with zero width should be identity, got %q", got)
	}
}
