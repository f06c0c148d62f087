package terminal

import (
	"io"
	"time"
)

// scriptedSource replays bytes. A zero entry in stalls marks the position
// where ReadByteTimeout reports a timeout instead of a byte.
type scriptedSource struct {
	data   []byte
	stalls map[int]bool
	pos    int
}

func newScriptedSource(data string) *scriptedSource {
	return &scriptedSource{data: []byte(data), stalls: map[int]bool{}}
}

func (s *scriptedSource) stallAt(pos int) *scriptedSource {
	s.stalls[pos] = true
	return s
}

func (s *scriptedSource) ReadByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

func (s *scriptedSource) ReadByteTimeout(time.Duration) (byte, bool, error) {
	if s.stalls[s.pos] {
		delete(s.stalls, s.pos)
		return 0, false, nil
	}
	if s.pos >= len(s.data) {
		return 0, false, nil
	}
	b, err := s.ReadByte()
	return b, err == nil, err
}
