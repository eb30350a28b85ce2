package game

import (
	"context"
	"strings"
)

// conductVote collects one ballot from every living participant, in a fresh
// random order, and eliminates the plurality winner. Unreadable ballots and
// provider failures get a fallback vote, tagged as corrected in the log.
// Self-votes are rejected and fall back the same way.
func (g *game) conductVote(ctx context.Context) *VoteReport {
	voters := g.shuffledAlive()

	candidates := make([]string, len(voters))
	counts := make(map[string]int, len(voters))
	for i, p := range voters {
		candidates[i] = p.Name
		counts[p.Name] = 0
	}

	report := &VoteReport{Counts: counts}
	if len(voters) == 0 {
		return report
	}

	transcript := g.dayTranscript()
	for _, voter := range voters {
		target := ""
		reply, err := g.decide(ctx, voter, g.stateContext(voteInstruction(candidates, transcript)))
		if err != nil {
			g.log.Warn().Str("voter", voter.Name).Err(err).Msg("voter provider failed, using fallback vote")
		} else {
			target = parseBallot(reply, candidates, voter.Name)
		}

		if target == "" {
			target = g.fallbackVote(candidates, voter.Name)
			g.gameLog.Appendf("[VOTE] %s's ballot could not be read, corrected to a vote for %s", voter.Name, target)
		} else {
			g.gameLog.Appendf("[VOTE] %s votes for %s", voter.Name, target)
		}
		counts[target]++
	}

	// plurality, ties broken at random
	max := -1
	var top []string
	for _, c := range candidates {
		switch {
		case counts[c] > max:
			max = counts[c]
			top = []string{c}
		case counts[c] == max:
			top = append(top, c)
		}
	}

	victim := top[0]
	if len(top) > 1 {
		victim = top[g.rng.Intn(len(top))]
	}

	p := g.roster.byName(victim)
	p.Status = StatusDead

	ann := g.narrator.elimination(ctx, p.Name, p.Role, true)
	g.gameLog.Appendf("[GAME MASTER] %s", ann)

	report.Eliminated = p.Name
	report.Role = p.Role
	return report
}

// parseBallot resolves a ballot reply; a vote for the voter is unreadable.
func parseBallot(reply string, candidates []string, voter string) string {
	target := parseTarget(reply, candidates)
	if strings.EqualFold(target, voter) {
		return ""
	}
	return target
}

// fallbackVote picks a random candidate, not the voter when avoidable.
func (g *game) fallbackVote(candidates []string, voter string) string {
	var pool []string
	for _, c := range candidates {
		if !strings.EqualFold(c, voter) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = candidates
	}
	return pool[g.rng.Intn(len(pool))]
}
