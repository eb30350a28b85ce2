package game

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hollowmill/werewolves/decide"
)

// playbook drives one participant through a whole game: kill targets and
// ballots are consumed in order, everything else is silence.
func playbook(kills, votes []string) providerFunc {
	ki, vi := 0, 0
	return func(_ context.Context, req decide.Request) (string, error) {
		switch {
		case strings.Contains(req.Prompt, askKill):
			if ki < len(kills) {
				ki++
				return kills[ki-1], nil
			}
		case strings.Contains(req.Prompt, askVote):
			if vi < len(votes) {
				vi++
				return votes[vi-1], nil
			}
		}
		return "no comment", nil
	}
}

func TestNewValidation(t *testing.T) {
	provider := func(string) decide.Provider { return always("no comment") }

	if _, err := New(Options{Participants: 3, NewProvider: provider}); err != ErrTooFewPlayers {
		t.Errorf("got %v", err)
	}
	if _, err := New(Options{Participants: 6}); err != ErrNoProvider {
		t.Errorf("got %v", err)
	}
}

func TestNewDealsEverySeat(t *testing.T) {
	personas := 0
	g, err := New(Options{
		Participants: 12,
		Seed:         9,
		NewProvider: func(system string) decide.Provider {
			personas++
			return always("no comment")
		},
	})
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	state := g.GetGameState()
	if len(state.Participants) != 12 {
		t.Fatalf("got %d participants", len(state.Participants))
	}
	for _, p := range state.Participants {
		if p.Role == "" {
			t.Errorf("%s has no role", p.Name)
		}
	}
	// one provider per seat plus the narrator
	if personas != 13 {
		t.Errorf("built %d providers", personas)
	}
}

func TestStartOnce(t *testing.T) {
	g := testGame([]string{"Alice", "Bob", "Carol", "Dave"},
		[]Role{Werewolf, Werewolf, Villager, Villager})
	g.started = false

	if _, err := g.Advance(context.Background()); err != ErrNotStarted {
		t.Errorf("got %v", err)
	}
	if _, err := g.Start(context.Background()); err != nil {
		t.Errorf("start: %v", err)
	}
	if _, err := g.Start(context.Background()); err != ErrAlreadyStarted {
		t.Errorf("got %v", err)
	}
}

// TestFullGame walks a six-seat game to a villager win, phase by phase.
func TestFullGame(t *testing.T) {
	ctx := context.Background()
	g := testGame(
		[]string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank"},
		[]Role{Werewolf, Werewolf, Villager, Villager, Villager, Villager})
	g.started = false

	script(g, "Alice", playbook([]string{"Carol"}, []string{"Bob"}))
	script(g, "Bob", playbook([]string{"Dave"}, []string{"Alice", "Eve"}))
	script(g, "Carol", playbook(nil, nil))
	script(g, "Dave", playbook(nil, []string{"Alice"}))
	script(g, "Eve", playbook(nil, []string{"Alice", "Bob"}))
	script(g, "Frank", playbook(nil, []string{"Alice", "Bob"}))

	res, err := g.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if res.Phase != PhaseSetup || res.Announcement == "" {
		t.Fatalf("start result: %+v", res)
	}

	advance := func(wantPhase Phase, wantDay int) *PhaseResult {
		t.Helper()
		res, err := g.Advance(ctx)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if res.Phase != wantPhase || res.Day != wantDay {
			t.Fatalf("got phase %s day %d, want %s %d", res.Phase, res.Day, wantPhase, wantDay)
		}
		return res
	}

	// night one: Alice speaks for the pack and kills Carol
	advance(PhaseNight, 1)
	res = advance(PhaseDay, 1)
	if res.Night == nil || res.Night.Killed != "Carol" {
		t.Fatalf("night one: %+v", res.Night)
	}

	// a silent discussion, then Alice is voted out
	advance(PhaseDiscussion, 1)
	res = advance(PhaseVoting, 1)
	if res.Vote == nil || res.Vote.Eliminated != "Alice" || res.Vote.Role != Werewolf {
		t.Fatalf("day one vote: %+v", res.Vote)
	}

	// night two: Bob takes over and kills Dave
	advance(PhaseNight, 2)
	res = advance(PhaseDay, 2)
	if res.Night == nil || res.Night.Killed != "Dave" {
		t.Fatalf("night two: %+v", res.Night)
	}

	// Bob is found out; with no wolves left the village wins
	advance(PhaseDiscussion, 2)
	res = advance(PhaseVoting, 2)
	if res.Vote == nil || res.Vote.Eliminated != "Bob" {
		t.Fatalf("day two vote: %+v", res.Vote)
	}

	res = advance(PhaseEnded, 2)
	if res.Winner != FactionVillagers {
		t.Fatalf("winner %q", res.Winner)
	}
	if len(res.Survivors) != 2 {
		t.Fatalf("survivors: %v", res.Survivors)
	}

	if _, err := g.Advance(ctx); err != ErrGameOver {
		t.Errorf("got %v", err)
	}

	state := g.GetGameState()
	if state.Phase != PhaseEnded || state.Winner != FactionVillagers {
		t.Errorf("state: %+v", state)
	}
}

// TestWolvesWinByAttrition runs until the last wolf matches the remaining
// villagers, so the win lands on the voting exit rather than a night.
func TestWolvesWinByAttrition(t *testing.T) {
	ctx := context.Background()
	g := testGame(
		[]string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank"},
		[]Role{Werewolf, Werewolf, Villager, Villager, Villager, Villager})
	g.started = false

	script(g, "Alice", playbook([]string{"Carol"}, []string{"Bob"}))
	script(g, "Bob", playbook([]string{"Dave"}, []string{"Alice", "Eve"}))
	script(g, "Carol", playbook(nil, nil))
	script(g, "Dave", playbook(nil, []string{"Alice"}))
	script(g, "Eve", playbook(nil, []string{"Alice", "Frank"}))
	script(g, "Frank", playbook(nil, []string{"Alice", "Eve"}))

	if _, err := g.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	var last *PhaseResult
	for i := 0; i < 20; i++ {
		res, err := g.Advance(ctx)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		last = res
		if res.Phase == PhaseEnded {
			break
		}
	}

	if last.Phase != PhaseEnded || last.Winner != FactionWerewolves {
		t.Fatalf("got %+v", last)
	}
	// one wolf and one villager left standing
	if len(last.Survivors) != 2 {
		t.Errorf("survivors: %v", last.Survivors)
	}
	if !g.roster.byName("Bob").Alive() || !g.roster.byName("Frank").Alive() {
		t.Errorf("wrong survivors")
	}
}

// TestWolvesWinEndsFromNight checks the shortcut straight to ended when a
// night kill already decides the game.
func TestWolvesWinEndsFromNight(t *testing.T) {
	ctx := context.Background()
	g := testGame(
		[]string{"Alice", "Bob", "Carol", "Dave"},
		[]Role{Werewolf, Werewolf, Villager, Villager})
	g.started = false
	script(g, "Alice", playbook([]string{"Carol"}, nil))
	script(g, "Bob", playbook(nil, nil))
	script(g, "Carol", playbook(nil, nil))
	script(g, "Dave", playbook(nil, nil))

	if _, err := g.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := g.Advance(ctx); err != nil {
		t.Fatalf("to night: %v", err)
	}

	// Carol dies, two wolves face one villager
	res, err := g.Advance(ctx)
	if err != nil {
		t.Fatalf("finish night: %v", err)
	}
	if res.Phase != PhaseEnded || res.Winner != FactionWerewolves {
		t.Fatalf("got %+v", res)
	}
	if res.Night == nil || res.Night.Killed != "Carol" {
		t.Fatalf("night: %+v", res.Night)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := testGame(
		[]string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank"},
		[]Role{Werewolf, Werewolf, Villager, Villager, Villager, Villager})
	g.started = false
	scriptAll(g, playbook([]string{"Carol"}, nil))

	if _, err := g.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	g.Advance(ctx) // into night one
	g.Advance(ctx) // resolve it

	buf := &bytes.Buffer{}
	if err := g.WriteOut(buf); err != nil {
		t.Fatalf("write out: %v", err)
	}

	restored, err := NewFromSaved(Options{
		NewProvider: func(string) decide.Provider { return always("no comment") },
	}, buf)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	a, b := g.GetGameState(), restored.GetGameState()
	if b.Phase != a.Phase || b.Day != a.Day {
		t.Errorf("got phase %s day %d, want %s %d", b.Phase, b.Day, a.Phase, a.Day)
	}
	if len(b.Participants) != len(a.Participants) {
		t.Fatalf("got %d participants", len(b.Participants))
	}
	for i := range a.Participants {
		if a.Participants[i].Name != b.Participants[i].Name ||
			a.Participants[i].Role != b.Participants[i].Role ||
			a.Participants[i].Status != b.Participants[i].Status {
			t.Errorf("seat %d differs: %+v vs %+v", i, a.Participants[i], b.Participants[i])
		}
	}
	if len(b.Log) == 0 {
		t.Errorf("log not restored")
	}
}
