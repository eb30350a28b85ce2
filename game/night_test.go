package game

import (
	"context"
	"errors"
	"testing"
)

func TestNightKill(t *testing.T) {
	g := testGame(
		[]string{"Alice", "Bob", "Carol", "Dave"},
		[]Role{Werewolf, Villager, Villager, Villager})
	g.day = 2
	script(g, "Alice", always("Carol"))

	report := g.resolveNight(context.Background())

	if report.Killed != "Carol" {
		t.Errorf("killed %q", report.Killed)
	}
	if g.roster.byName("Carol").Alive() {
		t.Errorf("Carol still alive")
	}
}

func TestNightProtectionCancelsKill(t *testing.T) {
	g := testGame(
		[]string{"Alice", "Bob", "Carol", "Dave"},
		[]Role{Werewolf, Guard, Villager, Villager})
	g.day = 2
	script(g, "Alice", always("Carol"))
	script(g, "Bob", always("Carol"))

	report := g.resolveNight(context.Background())

	if report.Killed != "Carol" || report.Protected != "Carol" {
		t.Errorf("report: %+v", report)
	}
	if !g.roster.byName("Carol").Alive() {
		t.Errorf("Carol died despite protection")
	}
}

func TestNightHeartbreak(t *testing.T) {
	g := testGame(
		[]string{"Alice", "Bob", "Carol", "Dave", "Eve"},
		[]Role{Werewolf, Villager, Villager, Villager, Villager})
	g.day = 2
	carol := g.roster.byName("Carol")
	dave := g.roster.byName("Dave")
	carol.LoverID = dave.ID
	dave.LoverID = carol.ID
	script(g, "Alice", always("Carol"))

	report := g.resolveNight(context.Background())

	if report.LoverDied != "Dave" {
		t.Errorf("lover died: %q", report.LoverDied)
	}
	if carol.Alive() || dave.Alive() {
		t.Errorf("lovers should both be dead")
	}
	// nobody else caught in the chain
	for _, name := range []string{"Alice", "Bob", "Eve"} {
		if !g.roster.byName(name).Alive() {
			t.Errorf("%s should be alive", name)
		}
	}
}

func TestNightWolfCannotTargetWolf(t *testing.T) {
	g := testGame(
		[]string{"Alice", "Bob", "Carol", "Dave"},
		[]Role{Werewolf, Werewolf, Villager, Villager})
	g.day = 2
	script(g, "Alice", always("Bob"))

	report := g.resolveNight(context.Background())

	if report.Killed != "" {
		t.Errorf("killed %q", report.Killed)
	}
	if !g.roster.byName("Bob").Alive() {
		t.Errorf("Bob should be alive")
	}
}

func TestNightProviderFailureIsNoOp(t *testing.T) {
	g := testGame(
		[]string{"Alice", "Bob", "Carol", "Dave"},
		[]Role{Werewolf, Guard, Seer, Villager})
	g.day = 2
	boom := errors.New("boom")
	script(g, "Alice", failing(boom))
	script(g, "Bob", failing(boom))
	script(g, "Carol", failing(boom))

	report := g.resolveNight(context.Background())

	if report.Killed != "" || report.Protected != "" || report.SeerCheck != nil {
		t.Errorf("report not empty: %+v", report)
	}
	for _, p := range g.roster {
		if !p.Alive() {
			t.Errorf("%s should be alive", p.Name)
		}
	}
}

func TestNightSeerCheck(t *testing.T) {
	g := testGame(
		[]string{"Alice", "Bob", "Carol", "Dave"},
		[]Role{Werewolf, Seer, Villager, Villager})
	g.day = 2
	script(g, "Alice", failing(errors.New("quiet night")))
	script(g, "Bob", always("I will look at Alice tonight"))

	report := g.resolveNight(context.Background())

	if report.SeerCheck == nil {
		t.Fatalf("no seer check")
	}
	if report.SeerCheck.Name != "Alice" || report.SeerCheck.Role != Werewolf {
		t.Errorf("check: %+v", report.SeerCheck)
	}
}

func TestCupidPairsOnFirstNightOnly(t *testing.T) {
	g := testGame(
		[]string{"Alice", "Bob", "Carol", "Dave"},
		[]Role{Werewolf, Cupid, Villager, Villager})
	g.day = 1
	script(g, "Alice", failing(errors.New("no kill")))
	script(g, "Bob", always("Carol and Dave"))

	report := g.resolveNight(context.Background())

	if len(report.Paired) != 2 {
		t.Fatalf("paired: %v", report.Paired)
	}
	carol := g.roster.byName("Carol")
	dave := g.roster.byName("Dave")
	if carol.LoverID != dave.ID || dave.LoverID != carol.ID {
		t.Errorf("pairing not symmetric")
	}

	// a second night must not re-pair
	script(g, "Bob", always("Alice and Bob"))
	g.day = 1
	report2 := g.resolveNight(context.Background())
	if len(report2.Paired) != 0 {
		t.Errorf("re-paired: %v", report2.Paired)
	}
	if carol.LoverID != dave.ID {
		t.Errorf("original pairing lost")
	}
}

func TestMatchPairNeedsTwoDistinct(t *testing.T) {
	alive := []*Participant{
		{ID: "a", Name: "Alice", Status: StatusAlive},
		{ID: "b", Name: "Bob", Status: StatusAlive},
	}
	if pair := matchPair("Alice and Alice again", alive); pair != nil {
		// only one distinct name in the reply
		if pair[0] == pair[1] {
			t.Errorf("paired a participant with themselves")
		}
	}
	if pair := matchPair("nobody at all", alive); pair != nil {
		t.Errorf("got pair from empty reply")
	}
}
