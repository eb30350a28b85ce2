package game

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// conductDiscussion runs up to MaxRounds rounds of table talk. Speaking order
// is reshuffled every round; each accepted message becomes visible to the
// speakers after it, in the same round. Three ways out: a silent round (after
// round two), a narrator "stop" (from round three), or running out of rounds.
func (g *game) conductDiscussion(ctx context.Context) []Message {
	var transcript []Message

	for round := 1; round <= g.opts.MaxRounds; round++ {
		topic := fmt.Sprintf("Round %d: Share your suspicions or defend yourself.", round)
		disc := Discussion{Day: g.day, Round: round, Topic: topic}

		for _, p := range g.shuffledAlive() {
			reply, err := g.decide(ctx, p, g.stateContext(discussInstruction(topic, transcript)))
			if err != nil {
				g.log.Warn().Str("speaker", p.Name).Err(err).Msg("speaker provider failed, stays silent this round")
				continue
			}

			content := strings.TrimSpace(reply)
			if content == "" || isNoComment(content) {
				continue
			}

			msg := Message{Sender: p.Name, Content: content, When: time.Now(), Kind: "chat"}
			disc.Messages = append(disc.Messages, msg)
			transcript = append(transcript, msg)
			g.gameLog.Appendf("[%s] %s", p.Name, content)
		}

		g.discussions = append(g.discussions, disc)

		if len(disc.Messages) == 0 && round >= 2 {
			// the village has nothing more to say
			break
		}

		if round >= 3 && len(disc.Messages) > 0 {
			cont, err := g.narrator.continueDiscussion(ctx, round, transcript)
			if err != nil {
				g.log.Warn().Err(err).Msg("narrator continue check failed, carrying on")
				continue
			}
			if !cont {
				closing := g.narrator.closing(ctx)
				g.gameLog.Appendf("[GAME MASTER] %s", closing)
				break
			}
		}
	}

	return transcript
}

func isNoComment(s string) bool {
	return strings.EqualFold(strings.Trim(s, replyTrim), "no comment")
}
