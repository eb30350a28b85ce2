package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	rl "github.com/chzyer/readline"
)

const (
	RED    = "[31m"
	YELLOW = "[33m"
	WHITE  = "[37m"
	RESET  = "[0m"
)

func col(phase string) string {
	switch phase {
	case "night":
		return RED
	case "voting":
		return YELLOW
	default:
		return RESET
	}
}

func main() {
	server := "http://localhost:1235"
	if len(os.Args) > 1 {
		server = os.Args[1]
	}

	c := newClient(server)

	completer := rl.NewPrefixCompleter(
		rl.PcItem("games"),
		rl.PcItem("providers"),
		rl.PcItem("create"),
		rl.PcItem("state"),
		rl.PcItem("start"),
		rl.PcItem("advance"),
		rl.PcItem("play"),
		rl.PcItem("log"),
		rl.PcItem("watch"),
		rl.PcItem("delete"),
		rl.PcItem("use"),
		rl.PcItem("exit"),
	)

	l, err := rl.NewEx(&rl.Config{
		Prompt:            "» ",
		HistoryFile:       "hist.txt",
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	repl(l, c)
}

func repl(l *rl.Instance, c *client) {
	gameId := ""

	setPrompt := func(phase string, day int) {
		if gameId == "" {
			l.SetPrompt("» ")
			return
		}
		if phase == "" {
			l.SetPrompt(fmt.Sprintf("%s» ", gameId))
			return
		}
		l.SetPrompt(fmt.Sprintf("\033%s%s|%s|%d»\033[0m ", col(phase), gameId, phase, day))
	}

	for {
		line, err := l.Readline()
		if err == rl.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		parts := strings.SplitN(strings.TrimSpace(line), " ", 2)
		cmd := parts[0]
		rest := ""
		if len(parts) == 2 {
			rest = strings.TrimSpace(parts[1])
		}

		switch cmd {
		case "games":
			names, err := c.listGames()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			for _, n := range names {
				fmt.Println(n)
			}
		case "providers":
			ps, err := c.listProviders()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("%s\n", strings.Join(ps, ", "))
		case "create":
			var id string
			players := 0
			provider := ""
			fmt.Sscan(rest, &id, &players, &provider)
			if id == "" {
				fmt.Printf("create <id> [players] [provider]\n")
				continue
			}

			err := c.createGame(id, players, provider)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}

			gameId = id
			setPrompt("", 0)
		case "use":
			if rest == "" {
				fmt.Printf("use <id>\n")
				continue
			}
			gameId = rest
			setPrompt("", 0)
		case "state":
			if gameId == "" {
				fmt.Printf("no game selected\n")
				continue
			}

			state, err := c.queryGame(gameId)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}

			printState(state)
			setPrompt(string(state.Phase), state.Day)
		case "start":
			if gameId == "" {
				fmt.Printf("no game selected\n")
				continue
			}

			res, err := c.startGame(gameId)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}

			printResult(res)
			setPrompt(string(res.Phase), res.Day)
		case "advance":
			if gameId == "" {
				fmt.Printf("no game selected\n")
				continue
			}

			res, err := c.advanceGame(gameId)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}

			printResult(res)
			setPrompt(string(res.Phase), res.Day)
		case "play":
			// advance until the game ends
			if gameId == "" {
				fmt.Printf("no game selected\n")
				continue
			}

			for {
				res, err := c.advanceGame(gameId)
				if err != nil {
					fmt.Printf("Error: %v\n", err)
					break
				}

				printResult(res)
				setPrompt(string(res.Phase), res.Day)
				if res.Winner != "" {
					break
				}
			}
		case "log":
			if gameId == "" {
				fmt.Printf("no game selected\n")
				continue
			}

			n := 0
			fmt.Sscan(rest, &n)

			lines, err := c.gameLog(gameId, n)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}

			for _, line := range lines {
				fmt.Println(line)
			}
		case "watch":
			id := rest
			if id == "" {
				id = gameId
			}
			if id == "" {
				fmt.Printf("watch <id>\n")
				continue
			}

			if err := c.watch(id); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		case "delete":
			if gameId == "" {
				fmt.Printf("no game selected\n")
				continue
			}

			if err := c.deleteGame(gameId); err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}

			gameId = ""
			setPrompt("", 0)
		case "exit":
			return
		case "":
			// shortcut for seeing the state
			if gameId != "" {
				state, err := c.queryGame(gameId)
				if err != nil {
					fmt.Printf("Error: %v\n", err)
					continue
				}
				printState(state)
				setPrompt(string(state.Phase), state.Day)
			}
		default:
			fmt.Printf("unknown\n")
		}
	}
}
