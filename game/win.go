package game

const (
	FactionVillagers  = "villagers"
	FactionWerewolves = "werewolves"
)

// EvaluateWin is a pure function of the roster: villagers win when no
// werewolf is left; werewolves win when they are at least half the living.
// Empty string means the game goes on.
func EvaluateWin(ps []*Participant) string {
	alive := 0
	wolves := 0
	for _, p := range ps {
		if !p.Alive() {
			continue
		}
		alive++
		if p.Role == Werewolf {
			wolves++
		}
	}

	if wolves == 0 {
		return FactionVillagers
	}
	if wolves >= alive-wolves {
		return FactionWerewolves
	}
	return ""
}
