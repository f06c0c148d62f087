package app

import "testing"

func TestSessionStepWraps(t *testing.T) {
	sess := &Session{Pages: []string{"a", "b", "c"}}
	steps := []struct {
		delta int
		want  int
	}{
		{-1, 2},
		{1, 0},
		{1, 1},
		{4, 2},
		{-7, 1},
	}
	for _, step := range steps {
		sess.Step(step.delta)
		if sess.Position != step.want {
			t.Fatalf("Step(%d) = %d, want %d", step.delta, sess.Position, step.want)
		}
	}
	if sess.Page() != "b" {
		t.Fatalf("Page = %q", sess.Page())
	}
}

func TestSessionWithoutPages(t *testing.T) {
	sess := &Session{}
	sess.Step(1)
	if sess.Position != 0 || sess.Page() != "" {
		t.Fatalf("empty session changed: %+v", sess)
	}
}
