package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	fsutil "github.com/kk-code-lab/shellpage/internal/fs"
	"github.com/kk-code-lab/shellpage/internal/progress"
	"github.com/kk-code-lab/shellpage/internal/ui/terminal"
)

const testPrompt = "$ "

type lineResult struct {
	text string
	err  error
}

// scriptedConsole replays queued keys and line results and records frames.
type scriptedConsole struct {
	keys    []terminal.KeyEvent
	lines   []lineResult
	frames  []string
	labels  []string
	clears  int
	columns int
}

func (c *scriptedConsole) ReadKey() (terminal.KeyEvent, error) {
	if len(c.keys) == 0 {
		return terminal.KeyEvent{}, io.EOF
	}
	ev := c.keys[0]
	c.keys = c.keys[1:]
	return ev, nil
}

func (c *scriptedConsole) ReadLine(label string, _ bool) (string, error) {
	c.labels = append(c.labels, label)
	if len(c.lines) == 0 {
		return "", io.EOF
	}
	res := c.lines[0]
	c.lines = c.lines[1:]
	return res.text, res.err
}

func (c *scriptedConsole) Redraw(text string) error {
	c.frames = append(c.frames, text)
	return nil
}

func (c *scriptedConsole) Clear() error {
	c.clears++
	return nil
}

func (c *scriptedConsole) Columns() int {
	if c.columns == 0 {
		return 80
	}
	return c.columns
}

// pageFrames returns the frames that showed page text, in order.
func (c *scriptedConsole) pageFrames(pages []string) []string {
	var out []string
	for _, frame := range c.frames {
		for _, page := range pages {
			if frame == testPrompt+page {
				out = append(out, frame)
				break
			}
		}
	}
	return out
}

func (c *scriptedConsole) lastFrame() string {
	if len(c.frames) == 0 {
		return ""
	}
	return c.frames[len(c.frames)-1]
}

type staticPrompt struct{}

func (staticPrompt) Prompt() string { return testPrompt }
func (staticPrompt) Width() int     { return len(testPrompt) }

// memoryStore keeps positions in a map and counts saves.
type memoryStore struct {
	pages map[string]int
	saves int
	fail  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{pages: map[string]int{}}
}

func (s *memoryStore) Load(_ context.Context, path string) (int, bool) {
	page, ok := s.pages[path]
	return page, ok
}

func (s *memoryStore) Save(_ context.Context, path string, page int) error {
	s.saves++
	if s.fail != nil {
		return s.fail
	}
	s.pages[path] = page
	return nil
}

func (s *memoryStore) Close() error { return nil }

var _ progress.Store = (*memoryStore)(nil)

func key(kind terminal.KeyKind) terminal.KeyEvent {
	return terminal.KeyEvent{Kind: kind}
}

func char(r rune) terminal.KeyEvent {
	return terminal.KeyEvent{Kind: terminal.KeyChar, Rune: r}
}

func line(text string) lineResult {
	return lineResult{text: text}
}

func lineErr(err error) lineResult {
	return lineResult{err: err}
}

var (
	up    = key(terminal.KeyUp)
	down  = key(terminal.KeyDown)
	enter = key(terminal.KeyEnter)
	esc   = key(terminal.KeyEscape)
	ctrlC = key(terminal.KeyCtrlC)
)

type fixture struct {
	dir     string
	library *fsutil.Library
	store   progress.Store
	slept   []time.Duration
}

// newFixture writes docs into a temporary library. Keys are file names.
func newFixture(t *testing.T, docs map[string]string) *fixture {
	t.Helper()
	dir := t.TempDir()
	for name, body := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	lib, err := fsutil.NewLibrary(dir, ".txt")
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	return &fixture{dir: dir, library: lib, store: newMemoryStore()}
}

func (f *fixture) path(name string) string {
	return filepath.Join(f.library.Dir, name)
}

func (f *fixture) run(t *testing.T, console *scriptedConsole) error {
	t.Helper()
	app := NewApplication(Options{
		Console:   console,
		Prompt:    staticPrompt{},
		Library:   f.library,
		Store:     f.store,
		MenuPause: time.Second,
		Sleep:     func(d time.Duration) { f.slept = append(f.slept, d) },
	})
	return app.Run(context.Background())
}

func mustRun(t *testing.T, f *fixture, console *scriptedConsole) {
	t.Helper()
	if err := f.run(t, console); err != nil {
		t.Fatalf("Run: %v (frames %q)", err, console.frames)
	}
}

func containsFrame(frames []string, text string) bool {
	for _, frame := range frames {
		if strings.Contains(frame, text) {
			return true
		}
	}
	return false
}

var errUnexpected = errors.New("unexpected")
