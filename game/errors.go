package game

type GameError struct {
	Code string
	Msg  string
}

func (e *GameError) ErrorCode() string { return e.Code }
func (e *GameError) Error() string     { return e.Msg }

var (
	// ErrTooFewPlayers means the head count cannot admit a viable role spread
	ErrTooFewPlayers = &GameError{"TOOFEWPLAYERS", "not enough players for a game"}
	// ErrAlreadyStarted is only when calling Start() too much
	ErrAlreadyStarted = &GameError{"ALREADYSTARTED", "game has already started"}
	// ErrNotStarted means the game has not started
	ErrNotStarted = &GameError{"NOTSTARTED", "game has not started"}
	// ErrGameOver means advancing a game that has already ended
	ErrGameOver = &GameError{"GAMEOVER", "game has ended"}
	// ErrNoProvider means no decision provider factory was configured
	ErrNoProvider = &GameError{"NOPROVIDER", "no decision provider"}
	// ErrGameExists means creating a game under a taken name
	ErrGameExists = &GameError{"GAMEEXISTS", "game already exists"}
	// ErrGameNotFound means addressing a game the server does not hold
	ErrGameNotFound = &GameError{"GAMENOTFOUND", "game not found"}
)
