package game

import (
	"fmt"
	"strings"
)

// Persona and instruction text sent to decision providers. The orchestration
// core never depends on the exact wording, only on being able to parse names
// back out of the replies.

var personalityBlurbs = map[string]string{
	"INTJ": "Strategic, analytical, and independent thinker. Plans ahead and values logic.",
	"INTP": "Innovative, curious, and logical. Enjoys complex problem-solving.",
	"ENTJ": "Bold, strong-willed leader. Good at making decisions and organizing.",
	"ENTP": "Smart, curious debater. Enjoys intellectual challenges and arguing points.",
	"INFJ": "Idealistic, organized advocate. Strong values and vision for the future.",
	"INFP": "Poetic, kind mediator. Guided by principles and values.",
	"ENFJ": "Charismatic, inspiring leader. Natural at bringing people together.",
	"ENFP": "Enthusiastic, creative, and sociable. Free spirit with great people skills.",
	"ISTJ": "Practical, fact-minded logistician. Reliable and thorough.",
	"ISFJ": "Dedicated, warm protector. Always ready to defend loved ones.",
	"ESTJ": "Excellent administrator, manages people and systems efficiently.",
	"ESFJ": "Caring, social, and popular. Eager to help and please others.",
	"ISTP": "Bold, practical experimenter. Master of tools and techniques.",
	"ISFP": "Flexible, charming artist. Explores life with aesthetic sensibility.",
	"ESTP": "Smart, energetic, and perceptive. Lives in the moment.",
	"ESFP": "Spontaneous, enthusiastic entertainer. Enjoys life and people.",
}

var roleBlurbs = map[Role]string{
	Werewolf:   "You are a WEREWOLF. Your goal is to eliminate villagers without being discovered. During the night, you coordinate with other werewolves to choose a victim. During the day, you must blend in and deflect suspicion.",
	Villager:   "You are a VILLAGER. Your goal is to identify and eliminate the werewolves. You have no special powers, but you can use logic and observation during discussions.",
	Seer:       "You are the SEER. Each night, you can discover the true identity of one player. Use this information wisely during day discussions without revealing your role.",
	Witch:      "You are the WITCH. You have two potions: one to save someone from death, and one to kill someone. You can use each potion only once during the game.",
	Hunter:     "You are the HUNTER. If you are killed, you can immediately shoot and eliminate another player of your choice.",
	Cupid:      "You are CUPID. On the first night, you choose two players to fall in love. If one dies, the other dies of heartbreak.",
	LittleGirl: "You are the LITTLE GIRL. You can peek during the werewolf phase at night, but risk being caught.",
	Guard:      "You are the GUARD. Each night, you can protect one player from werewolf attacks (but not the same player twice in a row).",
}

// PersonaPrompt is the system prompt for one participant's provider.
func PersonaPrompt(p *Participant) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a %d-year-old %s playing The Werewolves of Millers Hollow.\n\n", p.Name, p.Age, p.Sex)
	fmt.Fprintf(&b, "Your Personality: %s - %s\n\n", p.Personality, personalityBlurbs[p.Personality])
	b.WriteString("Your personality influences how you:\n")
	b.WriteString("- Communicate with others (formal/casual, aggressive/gentle, logical/emotional)\n")
	b.WriteString("- Make decisions and vote\n")
	b.WriteString("- React to accusations and events\n")
	b.WriteString("- Build trust or suspicion with other players\n")
	if desc, ok := roleBlurbs[p.Role]; ok {
		fmt.Fprintf(&b, "\nYour Role: %s\n", desc)
	}
	b.WriteString("\nPlay authentically according to your personality and role. Stay in character.")
	return b.String()
}

// NarratorPrompt is the system prompt for the narrator's provider.
const NarratorPrompt = `You are the Game Master of "The Werewolves of Millers Hollow."

Your responsibilities:
1. Narrate the story and set the atmosphere
2. Announce phase transitions (night/day)
3. Describe events (deaths, revelations, etc.)
4. Moderate discussions and maintain game flow

Your narration should be:
- Atmospheric and engaging
- Clear and concise
- Dramatic but not overly verbose
- Fair and neutral (don't reveal hidden information)

You are the storyteller who brings the village of Millers Hollow to life.`

// stateContext frames every participant prompt with the public game state.
func (g *game) stateContext(instruction string) string {
	var b strings.Builder
	b.WriteString("Current Game State:\n")
	fmt.Fprintf(&b, "- Phase: %s\n", g.phase)
	fmt.Fprintf(&b, "- Day: %d\n", g.day)
	fmt.Fprintf(&b, "- Alive Players: %s\n", strings.Join(g.roster.aliveNames(), ", "))
	recent := g.gameLog.Tail(3)
	if len(recent) > 0 {
		fmt.Fprintf(&b, "- Recent Events: %s\n", strings.Join(recent, " | "))
	}
	b.WriteString("\n")
	b.WriteString(instruction)
	return b.String()
}

func nightInstruction(role Role) string {
	switch role {
	case Werewolf:
		return "As a werewolf, choose a villager to eliminate tonight. Respond with ONLY the player's name."
	case Seer:
		return "As the seer, choose a player whose identity you want to reveal. Respond with ONLY the player's name."
	case Guard:
		return "As the guard, choose a player to protect tonight. Respond with ONLY the player's name."
	case Cupid:
		return "As cupid, choose TWO players to fall in love. Respond with ONLY the two names, separated by 'and'."
	}
	return ""
}

func voteInstruction(candidates []string, transcript []Message) string {
	var b strings.Builder
	b.WriteString("It's time to vote. You must choose one player to eliminate from these candidates:\n")
	b.WriteString(strings.Join(candidates, ", "))
	b.WriteString("\n")
	if len(transcript) > 0 {
		b.WriteString("\nToday's discussion:\n")
		b.WriteString(renderTranscript(transcript))
	}
	b.WriteString("\nBased on the discussions, evidence, and your role, who do you vote to eliminate? ")
	b.WriteString("You may not vote for yourself. Respond with ONLY the name of the player you're voting for, nothing else.")
	return b.String()
}

func discussInstruction(topic string, transcript []Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Discussion Topic: %s\n", topic)
	if len(transcript) > 0 {
		b.WriteString("\nThe discussion so far:\n")
		b.WriteString(renderTranscript(transcript))
	}
	b.WriteString("\nShare your thoughts, suspicions, or defend yourself. ")
	b.WriteString("Keep your response concise (2-3 sentences) and stay in character. ")
	b.WriteString("If you have nothing to add, respond with exactly 'no comment'.")
	return b.String()
}

func renderTranscript(msgs []Message) string {
	var b strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&b, "[%s] %s\n", m.Sender, m.Content)
	}
	return b.String()
}
