package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hollowmill/werewolves/decide"
)

// narrator wraps the game-master provider. Every method degrades to a canned
// line when the provider fails, so narration can never stall the game.
type narrator struct {
	p       decide.Provider
	timeout time.Duration
	log     zerolog.Logger
}

func (n *narrator) decide(ctx context.Context, prompt string) (string, error) {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	return n.p.Decide(ctx, decide.Request{System: NarratorPrompt, Prompt: prompt})
}

func (n *narrator) say(ctx context.Context, prompt, fallback string) string {
	if n.p == nil {
		return fallback
	}
	reply, err := n.decide(ctx, prompt)
	if err != nil {
		n.log.Warn().Err(err).Msg("narrator provider failed")
		return fallback
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return fallback
	}
	return reply
}

func (n *narrator) opening(ctx context.Context, names []string) string {
	prompt := fmt.Sprintf(`The game is beginning with %d players: %s.

Create an atmospheric opening narration for the game. Welcome the players to the village of Millers Hollow and set the scene for the werewolf mystery. Keep it under 100 words.`,
		len(names), strings.Join(names, ", "))
	return n.say(ctx, prompt, "Welcome to Millers Hollow. As night falls, the village holds its breath.")
}

func (n *narrator) night(ctx context.Context, number int) string {
	prompt := fmt.Sprintf(`It is now Night %d.

Announce the night phase dramatically. Remind players that the village sleeps and those with night powers should act. Keep it under 50 words.`, number)
	return n.say(ctx, prompt, fmt.Sprintf("Night %d falls. The village sleeps while some are awake.", number))
}

func (n *narrator) day(ctx context.Context, number int, events string) string {
	prompt := fmt.Sprintf(`It is now Day %d.

Night Events: %s

Announce the day phase and reveal what happened during the night. Be dramatic but clear. Keep it under 75 words.`, number, events)
	return n.say(ctx, prompt, fmt.Sprintf("Day %d breaks. %s", number, events))
}

func (n *narrator) elimination(ctx context.Context, name string, role Role, byVote bool) string {
	method := "killed during the night"
	if byVote {
		method = "voted out by the village"
	}
	prompt := fmt.Sprintf(`%s has been %s. Their role was: %s.

Create a dramatic narration of this elimination. Keep it under 50 words.`, name, method, role)
	return n.say(ctx, prompt, fmt.Sprintf("%s has been %s. They were a %s.", name, method, role))
}

func (n *narrator) winner(ctx context.Context, faction string, survivors []string) string {
	list := "none"
	if len(survivors) > 0 {
		list = strings.Join(survivors, ", ")
	}
	prompt := fmt.Sprintf(`The game has ended. The %s have won!

Survivors: %s

Create a dramatic ending narration announcing the victory. Keep it under 75 words.`, faction, list)
	return n.say(ctx, prompt, fmt.Sprintf("The game is over. The %s have won. Survivors: %s.", faction, list))
}

func (n *narrator) closing(ctx context.Context) string {
	return n.say(ctx, "The discussion has run its course. Announce, in under 30 words, that the village must now move to a vote.",
		"The village falls quiet. It is time to vote.")
}

// continueDiscussion asks whether the table talk should go on. The error is
// surfaced so the caller can treat it as "carry on".
func (n *narrator) continueDiscussion(ctx context.Context, round int, transcript []Message) (bool, error) {
	if n.p == nil {
		return true, nil
	}
	prompt := fmt.Sprintf(`The village is discussing, round %d has just finished.

The discussion so far:
%s
Should the discussion continue for another round, or is it time to vote? Respond with ONLY the word CONTINUE or STOP.`,
		round, renderTranscript(transcript))
	reply, err := n.decide(ctx, prompt)
	if err != nil {
		return true, err
	}
	if strings.Contains(strings.ToLower(reply), "stop") {
		return false, nil
	}
	return true, nil
}
