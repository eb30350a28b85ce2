package game

import "strings"

const replyTrim = " \t\r\n\"'.,!?*"

// parseTarget resolves a free-text reply to one candidate name: exact match
// on the trimmed reply first, then a substring match that hits exactly one
// candidate. Anything else is unparseable.
func parseTarget(reply string, candidates []string) string {
	cleaned := strings.Trim(reply, replyTrim)
	for _, c := range candidates {
		if strings.EqualFold(cleaned, c) {
			return c
		}
	}

	lower := strings.ToLower(reply)
	found := ""
	hits := 0
	for _, c := range candidates {
		if strings.Contains(lower, strings.ToLower(c)) {
			found = c
			hits++
		}
	}
	if hits == 1 {
		return found
	}
	return ""
}

// matchAlive resolves a reply against the living roster.
func (g *game) matchAlive(reply string) *Participant {
	name := parseTarget(reply, g.roster.aliveNames())
	if name == "" {
		return nil
	}
	return g.roster.byName(name)
}

// shuffledAlive gives a fresh random speaking/voting order each call.
func (g *game) shuffledAlive() []*Participant {
	out := append([]*Participant{}, g.roster.alive()...)
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// dayTranscript flattens the current day's discussion rounds.
func (g *game) dayTranscript() []Message {
	var out []Message
	for _, d := range g.discussions {
		if d.Day == g.day {
			out = append(out, d.Messages...)
		}
	}
	return out
}
