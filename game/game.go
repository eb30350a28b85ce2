package game

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/hollowmill/werewolves/decide"
)

const defaultMaxRounds = 5
const defaultCallTimeout = 60 * time.Second

// Options configures a new game. Only Participants and NewProvider are
// required; everything else has a sensible default.
type Options struct {
	// Participants is the head count, at least MinParticipants.
	Participants int
	// MaxRounds caps a discussion phase. Default 5.
	MaxRounds int
	// Seed feeds all in-game randomness. 0 means time-seeded.
	Seed int64
	// CallTimeout bounds each decision-provider call. On timeout the call
	// counts as a provider failure, never a fatal abort.
	CallTimeout time.Duration
	// NewProvider makes one decision provider bound to a persona. Called
	// once per participant plus once for the narrator.
	NewProvider func(system string) decide.Provider
	// Log receives provider-failure noise. Zero value is fine.
	Log zerolog.Logger
}

// PhaseResult is what one phase-advance call hands back to the driver.
type PhaseResult struct {
	Phase        Phase        `json:"phase"`
	Day          int          `json:"day"`
	Announcement string       `json:"announcement,omitempty"`
	Night        *NightReport `json:"night,omitempty"`
	Messages     []Message    `json:"messages,omitempty"`
	Vote         *VoteReport  `json:"vote,omitempty"`
	Winner       string       `json:"winner,omitempty"`
	Survivors    []string     `json:"survivors,omitempty"`
}

// GameState is the observer snapshot.
type GameState struct {
	Phase        Phase         `json:"phase"`
	Day          int           `json:"day"`
	Winner       string        `json:"winner,omitempty"`
	Participants []Participant `json:"participants"`
	Log          []string      `json:"log"`
}

type Game interface {
	// activities
	Start(ctx context.Context) (*PhaseResult, error)
	Advance(ctx context.Context) (*PhaseResult, error)

	// general state
	GetGameState() GameState
	LogTail(k int) []string

	// admin
	WriteOut(w io.Writer) error
}

type game struct {
	opts Options
	rng  *rand.Rand
	log  zerolog.Logger

	started bool
	phase   Phase
	day     int
	winner  string

	roster      roster
	personas    map[string]string
	providers   map[string]decide.Provider
	narrator    *narrator
	lastNight   *NightReport
	discussions []Discussion
	gameLog     *GameLog
}

func New(opts Options) (Game, error) {
	if opts.Participants < MinParticipants {
		return nil, ErrTooFewPlayers
	}
	if opts.NewProvider == nil {
		return nil, ErrNoProvider
	}

	roles, err := DistributeRoles(opts.Participants)
	if err != nil {
		return nil, err
	}

	g := newShell(opts)

	g.roster = generateProfiles(g.rng, opts.Participants)
	dealRoles(g.rng, g.roster, roles)

	for _, p := range g.roster {
		g.personas[p.ID] = PersonaPrompt(p)
		g.providers[p.ID] = opts.NewProvider(g.personas[p.ID])
	}
	g.narrator = &narrator{p: opts.NewProvider(NarratorPrompt), timeout: g.opts.CallTimeout, log: g.log}

	return g, nil
}

// newShell builds an empty game with defaults applied, no participants yet.
func newShell(opts Options) *game {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = defaultMaxRounds
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultCallTimeout
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &game{
		opts:      opts,
		rng:       rand.New(rand.NewSource(seed)),
		log:       opts.Log,
		phase:     PhaseSetup,
		personas:  map[string]string{},
		providers: map[string]decide.Provider{},
		gameLog:   &GameLog{},
	}
}

// Start narrates the opening. The game stays in setup until the first
// Advance begins night one.
func (g *game) Start(ctx context.Context) (*PhaseResult, error) {
	if g.started {
		return nil, ErrAlreadyStarted
	}
	g.started = true

	opening := g.narrator.opening(ctx, names(g.roster))
	g.gameLog.Appendf("[GAME MASTER] %s", opening)

	return &PhaseResult{Phase: g.phase, Day: g.day, Announcement: opening}, nil
}

// Advance runs the action of the phase being exited and moves to the next
// one. It is the only phase-transition trigger; the game never advances on
// its own.
func (g *game) Advance(ctx context.Context) (*PhaseResult, error) {
	if !g.started {
		return nil, ErrNotStarted
	}

	switch g.phase {
	case PhaseSetup:
		return g.startNight(ctx), nil
	case PhaseNight:
		return g.finishNight(ctx), nil
	case PhaseDay:
		g.phase = PhaseDiscussion
		msgs := g.conductDiscussion(ctx)
		return &PhaseResult{Phase: g.phase, Day: g.day, Messages: msgs}, nil
	case PhaseDiscussion:
		g.phase = PhaseVoting
		report := g.conductVote(ctx)
		return &PhaseResult{Phase: g.phase, Day: g.day, Vote: report}, nil
	case PhaseVoting:
		if w := EvaluateWin(g.roster); w != "" {
			return g.endGame(ctx, w, ""), nil
		}
		return g.startNight(ctx), nil
	}

	return nil, ErrGameOver
}

func (g *game) startNight(ctx context.Context) *PhaseResult {
	g.day++
	g.phase = PhaseNight
	g.lastNight = nil

	ann := g.narrator.night(ctx, g.day)
	g.gameLog.Appendf("[GAME MASTER] %s", ann)

	return &PhaseResult{Phase: g.phase, Day: g.day, Announcement: ann}
}

// finishNight resolves the night and enters day, or goes straight to ended
// when the night's deaths already decide the game.
func (g *game) finishNight(ctx context.Context) *PhaseResult {
	report := g.resolveNight(ctx)
	events := nightEvents(g.roster, report)

	ann := g.narrator.day(ctx, g.day, events)
	g.gameLog.Appendf("[GAME MASTER] %s", ann)

	if w := EvaluateWin(g.roster); w != "" {
		res := g.endGame(ctx, w, ann)
		res.Night = report
		return res
	}

	g.phase = PhaseDay
	return &PhaseResult{Phase: g.phase, Day: g.day, Announcement: ann, Night: report}
}

func (g *game) endGame(ctx context.Context, winner, prefix string) *PhaseResult {
	g.phase = PhaseEnded
	g.winner = winner

	survivors := g.roster.aliveNames()
	ann := g.narrator.winner(ctx, winner, survivors)
	g.gameLog.Appendf("[GAME MASTER] %s", ann)
	if prefix != "" {
		ann = prefix + "\n\n" + ann
	}

	return &PhaseResult{
		Phase:        g.phase,
		Day:          g.day,
		Announcement: ann,
		Winner:       winner,
		Survivors:    survivors,
	}
}

// nightEvents builds the public summary of what the night did.
func nightEvents(r roster, report *NightReport) string {
	var events []string
	if report.Killed != "" {
		if p := r.byName(report.Killed); p != nil && p.Status == StatusDead {
			events = append(events, report.Killed+" was killed")
			if report.LoverDied != "" {
				events = append(events, report.LoverDied+" died of heartbreak")
			}
		}
	}
	if len(events) == 0 {
		events = append(events, "No one was killed")
	}
	out := ""
	for i, e := range events {
		if i > 0 {
			out += ". "
		}
		out += e
	}
	return out + "."
}

func (g *game) GetGameState() GameState {
	ps := make([]Participant, len(g.roster))
	for i, p := range g.roster {
		ps[i] = *p
	}
	return GameState{
		Phase:        g.phase,
		Day:          g.day,
		Winner:       g.winner,
		Participants: ps,
		Log:          g.gameLog.Tail(20),
	}
}

func (g *game) LogTail(k int) []string {
	return g.gameLog.Tail(k)
}

// decide runs one provider call under the per-call timeout.
func (g *game) decide(ctx context.Context, p *Participant, prompt string) (string, error) {
	prov := g.providers[p.ID]
	if prov == nil {
		return "", ErrNoProvider
	}
	cctx, cancel := context.WithTimeout(ctx, g.opts.CallTimeout)
	defer cancel()
	return prov.Decide(cctx, decide.Request{System: g.personas[p.ID], Prompt: prompt})
}

func names(r roster) []string {
	var out []string
	for _, p := range r {
		out = append(out, p.Name)
	}
	return out
}
