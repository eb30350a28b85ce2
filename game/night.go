package game

import (
	"context"
	"strings"
)

// resolveNight runs the night actions in their fixed order and applies the
// outcome. Any provider failure turns that role's action into a no-op; the
// night always resolves.
func (g *game) resolveNight(ctx context.Context) *NightReport {
	report := &NightReport{}

	// cupid pairs the lovers, first night only
	if g.day == 1 {
		g.resolveCupid(ctx, report)
	}

	// werewolves pick a victim, one delegate decides for the pack
	eligible := 0
	for _, p := range g.roster.alive() {
		if p.Role != Werewolf {
			eligible++
		}
	}
	if wolf := g.roster.firstAlive(Werewolf); wolf != nil && eligible > 0 {
		reply, err := g.decide(ctx, wolf, g.stateContext(nightInstruction(Werewolf)))
		if err != nil {
			g.log.Warn().Err(err).Msg("werewolf provider failed, no kill tonight")
		} else if victim := g.matchAlive(reply); victim != nil && victim.Role != Werewolf {
			report.Killed = victim.Name
		}
	}

	// guard protects; repeat targets are allowed
	if guard := g.roster.firstAlive(Guard); guard != nil {
		reply, err := g.decide(ctx, guard, g.stateContext(nightInstruction(Guard)))
		if err != nil {
			g.log.Warn().Err(err).Msg("guard provider failed, no protection tonight")
		} else if protected := g.matchAlive(reply); protected != nil {
			report.Protected = protected.Name
		}
	}

	// seer learns one role, recorded for private delivery
	if seer := g.roster.firstAlive(Seer); seer != nil {
		reply, err := g.decide(ctx, seer, g.stateContext(nightInstruction(Seer)))
		if err != nil {
			g.log.Warn().Err(err).Msg("seer provider failed, no reveal tonight")
		} else if checked := g.matchAlive(reply); checked != nil {
			report.SeerCheck = &SeerCheck{Name: checked.Name, Role: checked.Role}
		}
	}

	// apply: protection beats the kill, heartbreak follows a death once
	if report.Killed != "" && report.Killed != report.Protected {
		victim := g.roster.byName(report.Killed)
		victim.Status = StatusDead
		if victim.LoverID != "" {
			if lover := g.roster.byID(victim.LoverID); lover != nil && lover.Alive() {
				lover.Status = StatusDead
				report.LoverDied = lover.Name
			}
		}
	}

	g.lastNight = report
	return report
}

// resolveCupid sets the symmetric loved-with pair, at most once per game.
func (g *game) resolveCupid(ctx context.Context, report *NightReport) {
	cupid := g.roster.firstAlive(Cupid)
	if cupid == nil {
		return
	}
	for _, p := range g.roster {
		if p.LoverID != "" {
			// pairing already happened
			return
		}
	}

	reply, err := g.decide(ctx, cupid, g.stateContext(nightInstruction(Cupid)))
	if err != nil {
		g.log.Warn().Err(err).Msg("cupid provider failed, no lovers this game")
		return
	}

	pair := matchPair(reply, g.roster.alive())
	if pair == nil {
		g.log.Warn().Str("reply", reply).Msg("cupid reply named no usable pair")
		return
	}

	pair[0].LoverID = pair[1].ID
	pair[1].LoverID = pair[0].ID
	report.Paired = []string{pair[0].Name, pair[1].Name}
	g.gameLog.Append("[GAME MASTER] During the night, cupid's arrow found its mark.")
}

// matchPair pulls the first two distinct living names out of a reply.
func matchPair(reply string, alive []*Participant) []*Participant {
	lower := strings.ToLower(reply)
	var out []*Participant
	for _, p := range alive {
		if strings.Contains(lower, strings.ToLower(p.Name)) {
			out = append(out, p)
			if len(out) == 2 {
				return out
			}
		}
	}
	return nil
}
