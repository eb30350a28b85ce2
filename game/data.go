package game

import (
	"strings"
	"time"
)

type Role string

const (
	Werewolf   Role = "werewolf"
	Villager   Role = "villager"
	Seer       Role = "seer"
	Witch      Role = "witch"
	Hunter     Role = "hunter"
	Cupid      Role = "cupid"
	LittleGirl Role = "little_girl"
	Guard      Role = "guard"
)

type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseNight      Phase = "night"
	PhaseDay        Phase = "day"
	PhaseDiscussion Phase = "discussion"
	PhaseVoting     Phase = "voting"
	PhaseEnded      Phase = "ended"
)

type Status string

const (
	StatusAlive Status = "alive"
	StatusDead  Status = "dead"
)

type Sex string

const (
	Male      Sex = "male"
	Female    Sex = "female"
	NonBinary Sex = "non-binary"
)

// Participant is one seat at the table. Identity and role never change after
// setup; only Status and LoverID do.
type Participant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Sex         Sex    `json:"sex"`
	Age         int    `json:"age"`
	Personality string `json:"personality"`
	Role        Role   `json:"role"`
	Status      Status `json:"status"`
	// LoverID points to the partner set by the cupid. Symmetric: both
	// sides carry the other's id, set at most once per game.
	LoverID string `json:"loverId,omitempty"`
}

func (p *Participant) Alive() bool  { return p.Status == StatusAlive }
func (p *Participant) InLove() bool { return p.LoverID != "" }

// Message is one utterance in a discussion.
type Message struct {
	Sender  string    `json:"sender"`
	Content string    `json:"content"`
	When    time.Time `json:"when"`
	Kind    string    `json:"kind"` // chat, action, system
}

// Discussion is one round of table talk.
type Discussion struct {
	Day      int       `json:"day"`
	Round    int       `json:"round"`
	Topic    string    `json:"topic"`
	Messages []Message `json:"messages"`
}

// SeerCheck records what the seer learned, for private delivery.
type SeerCheck struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// NightReport is the authoritative outcome of one night. Names, not ids,
// since it is part of the observer surface.
type NightReport struct {
	Killed    string     `json:"killed,omitempty"`
	Protected string     `json:"protected,omitempty"`
	SeerCheck *SeerCheck `json:"seerCheck,omitempty"`
	LoverDied string     `json:"loverDied,omitempty"`
	Paired    []string   `json:"paired,omitempty"`
}

// VoteReport is the outcome of one village vote.
type VoteReport struct {
	Eliminated string         `json:"eliminated,omitempty"`
	Role       Role           `json:"role,omitempty"`
	Counts     map[string]int `json:"counts"`
}

// roster is the participant registry. Order is setup order and never changes.
type roster []*Participant

func (r roster) alive() []*Participant {
	var out []*Participant
	for _, p := range r {
		if p.Alive() {
			out = append(out, p)
		}
	}
	return out
}

func (r roster) aliveWithRole(role Role) []*Participant {
	var out []*Participant
	for _, p := range r {
		if p.Alive() && p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// firstAlive is the delegate rule: one representative acts for a role group.
func (r roster) firstAlive(role Role) *Participant {
	for _, p := range r {
		if p.Alive() && p.Role == role {
			return p
		}
	}
	return nil
}

func (r roster) byName(name string) *Participant {
	for _, p := range r {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

func (r roster) byID(id string) *Participant {
	for _, p := range r {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r roster) aliveNames() []string {
	var out []string
	for _, p := range r {
		if p.Alive() {
			out = append(out, p.Name)
		}
	}
	return out
}
