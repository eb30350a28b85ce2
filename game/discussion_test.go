package game

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hollowmill/werewolves/decide"
)

func talkers() (*game, []string) {
	names := []string{"Alice", "Bob", "Carol", "Dave"}
	g := testGame(names, []Role{Werewolf, Villager, Villager, Villager})
	g.day = 1
	g.phase = PhaseDiscussion
	return g, names
}

func TestDiscussionSilenceEndsAfterRoundTwo(t *testing.T) {
	g, _ := talkers()
	scriptAll(g, always("no comment"))

	msgs := g.conductDiscussion(context.Background())

	if len(msgs) != 0 {
		t.Errorf("got %d messages", len(msgs))
	}
	// a silent first round is not enough to stop, so two rounds run
	if len(g.discussions) != 2 {
		t.Errorf("got %d rounds", len(g.discussions))
	}
}

func TestDiscussionRunsOutOfRounds(t *testing.T) {
	g, names := talkers()
	g.opts.MaxRounds = 3
	scriptAll(g, answers(map[string]string{askTalk: "I still suspect someone."}))

	msgs := g.conductDiscussion(context.Background())

	// narrator has no provider, so the talk runs the full three rounds
	if len(g.discussions) != 3 {
		t.Errorf("got %d rounds", len(g.discussions))
	}
	if len(msgs) != 3*len(names) {
		t.Errorf("got %d messages", len(msgs))
	}
}

func TestDiscussionNarratorStop(t *testing.T) {
	g, _ := talkers()
	g.opts.MaxRounds = 5
	scriptAll(g, answers(map[string]string{askTalk: "Someone is lying."}))
	g.narrator = &narrator{p: always("STOP"), log: g.log}

	g.conductDiscussion(context.Background())

	// the narrator is first consulted after round three
	if len(g.discussions) != 3 {
		t.Errorf("got %d rounds", len(g.discussions))
	}
}

func TestDiscussionNarratorErrorMeansContinue(t *testing.T) {
	g, _ := talkers()
	g.opts.MaxRounds = 4
	scriptAll(g, answers(map[string]string{askTalk: "Round and round."}))
	g.narrator = &narrator{p: failing(errors.New("down")), log: g.log}

	g.conductDiscussion(context.Background())

	if len(g.discussions) != 4 {
		t.Errorf("got %d rounds", len(g.discussions))
	}
}

func TestDiscussionIncrementalVisibility(t *testing.T) {
	g, names := talkers()
	g.opts.MaxRounds = 2

	var round2Prompts []string
	for _, name := range names {
		phrase := name + " says something distinctive"
		calls := 0
		script(g, name, providerFunc(func(_ context.Context, req decide.Request) (string, error) {
			calls++
			if calls == 1 {
				return phrase, nil
			}
			round2Prompts = append(round2Prompts, req.Prompt)
			return "no comment", nil
		}))
	}

	g.conductDiscussion(context.Background())

	if len(round2Prompts) != len(names) {
		t.Fatalf("got %d second-round prompts", len(round2Prompts))
	}
	// by round two everyone has seen every first-round message
	for _, prompt := range round2Prompts {
		for _, name := range names {
			if !strings.Contains(prompt, name+" says something distinctive") {
				t.Errorf("prompt missing %s's message", name)
			}
		}
	}
}

func TestDiscussionFailedSpeakerStaysSilent(t *testing.T) {
	g, _ := talkers()
	g.opts.MaxRounds = 1
	scriptAll(g, answers(map[string]string{askTalk: "Accusations fly."}))
	script(g, "Carol", failing(errors.New("offline")))

	msgs := g.conductDiscussion(context.Background())

	if len(msgs) != 3 {
		t.Errorf("got %d messages", len(msgs))
	}
	for _, m := range msgs {
		if m.Sender == "Carol" {
			t.Errorf("Carol spoke despite failing provider")
		}
	}
}

func TestIsNoComment(t *testing.T) {
	for _, s := range []string{"no comment", "No Comment", "  \"no comment.\"  "} {
		if !isNoComment(s) {
			t.Errorf("%q should pass", s)
		}
	}
	if isNoComment("no comment, except that Bob is a wolf") {
		t.Errorf("substring wrongly treated as silence")
	}
}
