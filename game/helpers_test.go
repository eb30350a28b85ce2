package game

import (
	"context"
	"strings"

	"github.com/hollowmill/werewolves/decide"
)

type providerFunc func(ctx context.Context, req decide.Request) (string, error)

func (f providerFunc) Decide(ctx context.Context, req decide.Request) (string, error) {
	return f(ctx, req)
}

func always(reply string) providerFunc {
	return func(context.Context, decide.Request) (string, error) { return reply, nil }
}

func failing(err error) providerFunc {
	return func(context.Context, decide.Request) (string, error) { return "", err }
}

// answers keys a reply on a marker in the prompt, so one provider can serve
// night actions, discussion and votes in the same game.
func answers(byMarker map[string]string) providerFunc {
	return func(_ context.Context, req decide.Request) (string, error) {
		for marker, reply := range byMarker {
			if strings.Contains(req.Prompt, marker) {
				return reply, nil
			}
		}
		return "no comment", nil
	}
}

const (
	askKill = "eliminate tonight"
	askVote = "It's time to vote"
	askTalk = "Discussion Topic"
)

// testGame builds a started game with fixed names and roles and a fixed seed,
// bypassing profile generation. Providers start empty; calls without one fail
// like a broken provider would.
func testGame(names []string, roles []Role) *game {
	g := newShell(Options{Participants: len(names), Seed: 1})
	for i, name := range names {
		g.roster = append(g.roster, &Participant{
			ID:     "id-" + name,
			Name:   name,
			Role:   roles[i],
			Status: StatusAlive,
		})
	}
	g.narrator = &narrator{log: g.log}
	g.started = true
	return g
}

func script(g *game, name string, p decide.Provider) {
	g.providers["id-"+name] = p
}

func scriptAll(g *game, p decide.Provider) {
	for _, q := range g.roster {
		g.providers[q.ID] = p
	}
}
