package game

import "math/rand"

// MinParticipants is the smallest head count that still gives two werewolves
// and a villager majority.
const MinParticipants = 4

// DistributeRoles builds the role multiset for n participants. Werewolves are
// max(2, n/6); special roles join one by one as n crosses 8/10/12/14/16; the
// rest are villagers. The result is in a fixed order, shuffle before dealing.
func DistributeRoles(n int) ([]Role, error) {
	if n < MinParticipants {
		return nil, ErrTooFewPlayers
	}

	wolves := n / 6
	if wolves < 2 {
		wolves = 2
	}

	roles := make([]Role, 0, n)
	for i := 0; i < wolves; i++ {
		roles = append(roles, Werewolf)
	}

	specials := []struct {
		at   int
		role Role
	}{
		{8, Seer},
		{10, Witch},
		{12, Hunter},
		{14, Cupid},
		{16, Guard},
	}
	for _, s := range specials {
		if n >= s.at {
			roles = append(roles, s.role)
		}
	}

	for len(roles) < n {
		roles = append(roles, Villager)
	}

	return roles, nil
}

// dealRoles shuffles the multiset and assigns one role per participant in
// roster order.
func dealRoles(rng *rand.Rand, ps roster, roles []Role) {
	rng.Shuffle(len(roles), func(i, j int) { roles[i], roles[j] = roles[j], roles[i] })
	for i, p := range ps {
		p.Role = roles[i]
	}
}
