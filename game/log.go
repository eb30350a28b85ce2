package game

import (
	"encoding/json"
	"fmt"
	"sync"
)

// GameLog is the append-only narrated record. Appends take a lock so a driver
// that parallelises provider calls can still write safely; reads copy.
type GameLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *GameLog) Append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

func (l *GameLog) Appendf(format string, a ...interface{}) {
	l.Append(fmt.Sprintf(format, a...))
}

// Tail returns the last k lines, or everything if k <= 0 or k exceeds the log.
func (l *GameLog) Tail(k int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	start := 0
	if k > 0 && k < len(l.lines) {
		start = len(l.lines) - k
	}
	out := make([]string, len(l.lines)-start)
	copy(out, l.lines[start:])
	return out
}

func (l *GameLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

func (l *GameLog) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Tail(0))
}

func (l *GameLog) UnmarshalJSON(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return json.Unmarshal(data, &l.lines)
}
