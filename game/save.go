package game

import (
	"encoding/json"
	"io"
)

type gameSave struct {
	Started      bool          `json:"started"`
	Phase        Phase         `json:"phase"`
	Day          int           `json:"day"`
	Winner       string        `json:"winner,omitempty"`
	Participants []Participant `json:"participants"`
	Discussions  []Discussion  `json:"discussions,omitempty"`
	LastNight    *NightReport  `json:"lastNight,omitempty"`
	Log          []string      `json:"log"`
}

func (g *game) WriteOut(w io.Writer) error {
	ps := make([]Participant, len(g.roster))
	for i, p := range g.roster {
		ps[i] = *p
	}

	out := gameSave{
		Started:      g.started,
		Phase:        g.phase,
		Day:          g.day,
		Winner:       g.winner,
		Participants: ps,
		Discussions:  g.discussions,
		LastNight:    g.lastNight,
		Log:          g.gameLog.Tail(0),
	}

	jdata, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	_, err = w.Write(jdata)
	return err
}

// NewFromSaved restores a saved game. Providers are rebuilt from the saved
// personas via opts.NewProvider; their conversational memory does not
// survive a restore.
func NewFromSaved(opts Options, r io.Reader) (Game, error) {
	if opts.NewProvider == nil {
		return nil, ErrNoProvider
	}

	save := gameSave{}
	if err := json.NewDecoder(r).Decode(&save); err != nil {
		return nil, err
	}

	g := newShell(opts)
	g.started = save.Started
	g.phase = save.Phase
	g.day = save.Day
	g.winner = save.Winner
	g.discussions = save.Discussions
	g.lastNight = save.LastNight
	for _, line := range save.Log {
		g.gameLog.Append(line)
	}

	for i := range save.Participants {
		p := save.Participants[i]
		g.roster = append(g.roster, &p)
		g.personas[p.ID] = PersonaPrompt(&p)
		g.providers[p.ID] = opts.NewProvider(g.personas[p.ID])
	}
	g.narrator = &narrator{p: opts.NewProvider(NarratorPrompt), timeout: g.opts.CallTimeout, log: g.log}

	return g, nil
}
