package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hollowmill/werewolves/comms"
	"github.com/hollowmill/werewolves/config"
	"github.com/hollowmill/werewolves/decide"
	"github.com/hollowmill/werewolves/game"
)

// Server hosts any number of games, all driven through one core loop.
type Server interface {
	Run(ctx context.Context) error
}

type oneGame struct {
	name    string
	game    game.Game
	dirty   bool
	clients map[string]*clientBundle
	log     zerolog.Logger
}

type server struct {
	cfg    config.Config
	games  map[string]*oneGame
	coreCh chan interface{}
}

func NewServer(cfg config.Config) Server {
	games := map[string]*oneGame{}

	files, err := os.ReadDir(".")
	if err != nil {
		log.Error().Err(err).Msg("not loading anything")
	} else {
		for _, f := range files {
			fname := f.Name()
			if !strings.HasPrefix(fname, "state-") || !strings.HasSuffix(fname, ".json") {
				continue
			}
			gameId := fname[6 : len(fname)-5]
			log := log.With().Str("game", gameId).Logger()

			fh, err := os.Open(fname)
			if err != nil {
				log.Error().Err(err).Msg("cannot open state file")
				continue
			}

			g, err := loadGame(cfg, cfg.Provider, fh)
			fh.Close()
			if err != nil {
				log.Error().Err(err).Msg("cannot restore state")
				continue
			}

			games[gameId] = &oneGame{
				name:    gameId,
				game:    g,
				clients: map[string]*clientBundle{},
				log:     log,
			}

			log.Info().Msg("loaded state")
		}
	}

	return &server{
		cfg:    cfg,
		games:  games,
		coreCh: make(chan interface{}, 100),
	}
}

// loadGame restores a saved game using the named decision backend. Saved
// games come back on the server's default provider.
func loadGame(cfg config.Config, provider string, r *os.File) (game.Game, error) {
	backend, err := decide.FromEnv(provider)
	if err != nil {
		return nil, err
	}
	return game.NewFromSaved(gameOptions(cfg, backend, 0, 0), r)
}

func gameOptions(cfg config.Config, backend decide.Backend, players int, seed int64) game.Options {
	if players == 0 {
		players = cfg.Players
	}
	if seed == 0 {
		seed = cfg.Seed
	}
	return game.Options{
		Participants: players,
		MaxRounds:    cfg.MaxRounds,
		Seed:         seed,
		CallTimeout:  cfg.CallTimeout(),
		NewProvider: func(system string) decide.Provider {
			return decide.NewAgent(backend)
		},
		Log: log.Logger,
	}
}

func (s *server) Run(ctx context.Context) error {
	log.Info().Msg("server running")
	defer log.Info().Msg("server stopping")

	grp, gctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		return runWebGateway(gctx, s, s.cfg.Addr)
	})

	grp.Go(func() error {
		// this is the server's main loop
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case in := <-s.coreCh:
				g, res := s.processMessage(gctx, in)

				if g != nil && g.dirty {
					s.saveGame(g)
					g.dirty = false
				}

				if g != nil && res != nil {
					msg, err := comms.Encode("result", res)
					if err != nil {
						g.log.Error().Err(err).Msg("failed to encode result")
						continue
					}
					s.broadcast(g, msg)
				}
			}
		}
	})

	return grp.Wait()
}

func (s *server) processMessage(ctx context.Context, in interface{}) (*oneGame, *game.PhaseResult) {
	switch msg := in.(type) {
	case listGamesMsg:
		list := []string{}
		for gameId := range s.games {
			list = append(list, gameId)
		}
		msg.Rep <- list
	case createGameMsg:
		log := log.With().Str("game", msg.Req.ID).Logger()

		if _, exists := s.games[msg.Req.ID]; exists {
			msg.Rep <- game.ErrGameExists
			return nil, nil
		}

		backend, err := decide.FromEnv(msg.Req.Provider)
		if err != nil {
			msg.Rep <- err
			return nil, nil
		}

		g, err := game.New(gameOptions(s.cfg, backend, msg.Req.Players, msg.Req.Seed))
		if err != nil {
			msg.Rep <- err
			return nil, nil
		}

		holder := &oneGame{
			name:    msg.Req.ID,
			dirty:   true,
			game:    g,
			clients: map[string]*clientBundle{},
			log:     log,
		}
		s.games[msg.Req.ID] = holder

		log.Info().Msg("created")
		msg.Rep <- nil
		return holder, nil
	case queryGameMsg:
		g, exists := s.games[msg.Name]
		if !exists {
			msg.Rep <- nil
			return nil, nil
		}
		state := g.game.GetGameState()
		msg.Rep <- &state
	case logGameMsg:
		g, exists := s.games[msg.Name]
		if !exists {
			msg.Rep <- nil
			return nil, nil
		}
		msg.Rep <- g.game.LogTail(msg.K)
	case deleteGameMsg:
		g, exists := s.games[msg.Name]
		if !exists {
			msg.Rep <- nil
			return nil, nil
		}

		// XXX - doesn't disconnect anyone
		delete(s.games, msg.Name)
		s.wipeGame(g)

		log.Info().Msg("deleted")
		msg.Rep <- nil
	case startGameMsg:
		g, exists := s.games[msg.Name]
		if !exists {
			msg.Rep <- advanceResult{Err: game.ErrGameNotFound}
			return nil, nil
		}

		res, err := g.game.Start(ctx)
		msg.Rep <- advanceResult{Res: res, Err: err}
		if err != nil {
			return nil, nil
		}
		g.dirty = true
		return g, res
	case advanceGameMsg:
		g, exists := s.games[msg.Name]
		if !exists {
			msg.Rep <- advanceResult{Err: game.ErrGameNotFound}
			return nil, nil
		}

		res, err := g.game.Advance(ctx)
		msg.Rep <- advanceResult{Res: res, Err: err}
		if err != nil {
			return nil, nil
		}
		g.dirty = true
		return g, res
	case connectMsg:
		g, ok := s.games[msg.Game]
		if !ok {
			msg.Rep <- game.ErrGameNotFound
			return nil, nil
		}
		g.clients[msg.Name] = &msg.Client
		msg.Rep <- nil
		g.log.Info().Msgf("watcher joined: %s", msg.Name)
	case disconnectMsg:
		g, ok := s.games[msg.Game]
		if !ok {
			return nil, nil
		}
		delete(g.clients, msg.Name)
		g.log.Info().Msgf("watcher gone: %s", msg.Name)
	default:
		log.Warn().Msgf("nonsense in core: %#v", in)
	}
	return nil, nil
}

func (s *server) ListGames() []string {
	resCh := make(chan []string)
	s.coreCh <- listGamesMsg{resCh}
	return <-resCh
}

func (s *server) CreateGame(req CreateGameInput) error {
	resCh := make(chan error)
	s.coreCh <- createGameMsg{req, resCh}
	return <-resCh
}

func (s *server) QueryGame(name string) *game.GameState {
	resCh := make(chan *game.GameState)
	s.coreCh <- queryGameMsg{name, resCh}
	return <-resCh
}

func (s *server) GameLog(name string, k int) []string {
	resCh := make(chan []string)
	s.coreCh <- logGameMsg{name, k, resCh}
	return <-resCh
}

func (s *server) DeleteGame(name string) error {
	resCh := make(chan error)
	s.coreCh <- deleteGameMsg{name, resCh}
	return <-resCh
}

func (s *server) StartGame(name string) (*game.PhaseResult, error) {
	resCh := make(chan advanceResult)
	s.coreCh <- startGameMsg{name, resCh}
	res := <-resCh
	return res.Res, res.Err
}

func (s *server) AdvanceGame(name string) (*game.PhaseResult, error) {
	resCh := make(chan advanceResult)
	s.coreCh <- advanceGameMsg{name, resCh}
	res := <-resCh
	return res.Res, res.Err
}

func (s *server) Connect(gameId, name string, client clientBundle) error {
	resCh := make(chan error)
	s.coreCh <- connectMsg{gameId, name, client, resCh}
	return <-resCh
}

func (s *server) saveFileName(g *oneGame) string {
	return fmt.Sprintf("state-%s.json", g.name)
}

func (s *server) saveGame(g *oneGame) {
	outFile, err := os.Create(s.saveFileName(g))
	if err != nil {
		g.log.Error().Err(err).Msg("can't save")
		return
	}
	defer outFile.Close()

	if err := g.game.WriteOut(outFile); err != nil {
		g.log.Error().Err(err).Msg("can't save")
	}
}

func (s *server) wipeGame(g *oneGame) {
	err := os.Remove(s.saveFileName(g))
	if err != nil && !os.IsNotExist(err) {
		g.log.Error().Err(err).Msg("can't delete")
	}
}

func (s *server) broadcast(g *oneGame, msg comms.Message) {
	for n, c := range g.clients {
		select {
		case c.downCh <- msg:
		default:
			// client lagging
			g.log.Info().Msgf("client lagging: %s", n)
		}
	}
}
