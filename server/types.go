package main

import "github.com/hollowmill/werewolves/game"

type CreateGameInput struct {
	ID       string `json:"id"`
	Players  int    `json:"players"`
	Provider string `json:"provider"`
	Seed     int64  `json:"seed"`
}

type listGamesMsg struct {
	Rep chan []string
}

type createGameMsg struct {
	Req CreateGameInput
	Rep chan error
}

type queryGameMsg struct {
	Name string
	Rep  chan *game.GameState
}

type logGameMsg struct {
	Name string
	K    int
	Rep  chan []string
}

type deleteGameMsg struct {
	Name string
	Rep  chan error
}

type startGameMsg struct {
	Name string
	Rep  chan advanceResult
}

type advanceGameMsg struct {
	Name string
	Rep  chan advanceResult
}

type advanceResult struct {
	Res *game.PhaseResult
	Err error
}

type connectMsg struct {
	Game   string
	Name   string
	Client clientBundle
	Rep    chan error
}

type disconnectMsg struct {
	Game string
	Name string
}

type clientBundle struct {
	downCh chan interface{}
}
