package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

var maleNames = []string{
	"James", "John", "Robert", "Michael", "William", "David", "Richard", "Joseph",
	"Thomas", "Charles", "Christopher", "Daniel", "Matthew", "Anthony", "Mark", "Donald",
	"Steven", "Paul", "Andrew", "Joshua", "Kenneth", "Kevin", "Brian", "George",
}

var femaleNames = []string{
	"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara", "Susan", "Jessica",
	"Sarah", "Karen", "Nancy", "Lisa", "Betty", "Margaret", "Sandra", "Ashley",
	"Dorothy", "Kimberly", "Emily", "Donna", "Michelle", "Carol", "Amanda", "Melissa",
}

var nonBinaryNames = []string{
	"Alex", "Jordan", "Taylor", "Casey", "Morgan", "Riley", "Avery", "Quinn",
	"Dakota", "Skylar", "Parker", "Cameron", "River", "Phoenix", "Sage", "Rowan",
}

var personalities = []string{
	"INTJ", "INTP", "ENTJ", "ENTP", "INFJ", "INFP", "ENFJ", "ENFP",
	"ISTJ", "ISFJ", "ESTJ", "ESFJ", "ISTP", "ISFP", "ESTP", "ESFP",
}

var sexes = []Sex{Male, Female, NonBinary}

func newProfile(rng *rand.Rand) *Participant {
	sex := sexes[rng.Intn(len(sexes))]

	var name string
	switch sex {
	case Male:
		name = maleNames[rng.Intn(len(maleNames))]
	case Female:
		name = femaleNames[rng.Intn(len(femaleNames))]
	default:
		name = nonBinaryNames[rng.Intn(len(nonBinaryNames))]
	}

	return &Participant{
		ID:          uuid.NewString(),
		Name:        name,
		Sex:         sex,
		Age:         18 + rng.Intn(63),
		Personality: personalities[rng.Intn(len(personalities))],
		Status:      StatusAlive,
	}
}

// generateProfiles makes n participants with distinct names, so name-based
// votes and night targets are unambiguous.
func generateProfiles(rng *rand.Rand, n int) roster {
	out := roster{}
	seen := map[string]bool{}
	for len(out) < n {
		p := newProfile(rng)
		if seen[p.Name] {
			if len(seen) >= len(maleNames)+len(femaleNames)+len(nonBinaryNames) {
				// pools exhausted, disambiguate instead of spinning
				p.Name = fmt.Sprintf("%s %d", p.Name, len(out)+1)
			} else {
				continue
			}
		}
		seen[p.Name] = true
		out = append(out, p)
	}
	return out
}
