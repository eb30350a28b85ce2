package game

import (
	"encoding/json"
	"testing"
)

func TestGameLogAppendTail(t *testing.T) {
	l := &GameLog{}
	l.Append("one")
	l.Appendf("%s and %s", "two", "three")

	if l.Len() != 2 {
		t.Errorf("len %d", l.Len())
	}
	if got := l.Tail(1); len(got) != 1 || got[0] != "two and three" {
		t.Errorf("tail(1): %v", got)
	}
	if got := l.Tail(0); len(got) != 2 {
		t.Errorf("tail(0): %v", got)
	}
	if got := l.Tail(10); len(got) != 2 {
		t.Errorf("tail(10): %v", got)
	}
}

func TestGameLogTailCopies(t *testing.T) {
	l := &GameLog{}
	l.Append("a")
	got := l.Tail(0)
	got[0] = "mutated"
	if l.Tail(0)[0] != "a" {
		t.Errorf("tail returned a view, not a copy")
	}
}

func TestGameLogJSONRoundTrip(t *testing.T) {
	l := &GameLog{}
	l.Append("first")
	l.Append("second")

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back := &GameLog{}
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Len() != 2 || back.Tail(0)[0] != "first" {
		t.Errorf("got %v", back.Tail(0))
	}
}
