package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/hollowmill/werewolves/comms"
	"github.com/hollowmill/werewolves/game"
)

type client struct {
	server string
	hc     *http.Client
}

func newClient(server string) *client {
	return &client{
		server: strings.TrimRight(server, "/"),
		// no overall timeout: advance blocks on provider calls
		hc: &http.Client{},
	}
}

func (c *client) get(path string, out interface{}) error {
	res, err := c.hc.Get(c.server + path)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", res.Status, strings.TrimSpace(string(body)))
	}

	return json.Unmarshal(body, out)
}

func (c *client) post(path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	res, err := c.hc.Post(c.server+path, "application/json", body)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", res.Status, strings.TrimSpace(string(data)))
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

func (c *client) listGames() ([]string, error) {
	var names []string
	err := c.get("/api/games", &names)
	return names, err
}

func (c *client) listProviders() ([]string, error) {
	var res struct {
		Providers []string `json:"providers"`
	}
	err := c.get("/api/providers", &res)
	return res.Providers, err
}

func (c *client) createGame(id string, players int, provider string) error {
	req := map[string]interface{}{"id": id}
	if players > 0 {
		req["players"] = players
	}
	if provider != "" {
		req["provider"] = provider
	}

	res, err := c.hc.Post(c.server+"/api/games", "application/json", jsonBody(req))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%s", strings.TrimSpace(string(data)))
	}
	return nil
}

func jsonBody(v interface{}) io.Reader {
	data, _ := json.Marshal(v)
	return bytes.NewReader(data)
}

func (c *client) queryGame(id string) (*game.GameState, error) {
	state := &game.GameState{}
	err := c.get("/api/games/"+id, state)
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (c *client) startGame(id string) (*game.PhaseResult, error) {
	res := &game.PhaseResult{}
	err := c.post("/api/games/"+id+"/start", nil, res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *client) advanceGame(id string) (*game.PhaseResult, error) {
	res := &game.PhaseResult{}
	err := c.post("/api/games/"+id+"/advance", nil, res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *client) gameLog(id string, n int) ([]string, error) {
	var res struct {
		Log []string `json:"log"`
	}
	path := "/api/games/" + id + "/log"
	if n > 0 {
		path += "?n=" + strconv.Itoa(n)
	}
	err := c.get(path, &res)
	return res.Log, err
}

func (c *client) deleteGame(id string) error {
	req, err := http.NewRequest(http.MethodDelete, c.server+"/api/games/"+id, nil)
	if err != nil {
		return err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%s", strings.TrimSpace(string(data)))
	}
	return nil
}

// watch follows a game over the push channel until interrupted.
func (c *client) watch(id string) error {
	wsURL := strings.Replace(c.server, "http", "ws", 1) + "/ws?game=" + url.QueryEscape(id)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	socket, _, err := websocket.Dial(dialCtx, wsURL, nil)
	if err != nil {
		return err
	}
	defer socket.Close(websocket.StatusNormalClosure, "done")

	fmt.Printf("watching %s, ^C to stop\n", id)

	for {
		msg := comms.Message{}
		if err := wsjson.Read(ctx, socket, &msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		switch msg.Head.Type() {
		case "connected":
			cerr := &comms.CommsError{}
			if err := comms.Decode(msg, cerr); err == nil && cerr.Code != "" {
				return cerr
			}
		case "result":
			res := &game.PhaseResult{}
			if err := comms.Decode(msg, res); err != nil {
				fmt.Printf("bad message: %v\n", err)
				continue
			}
			printResult(res)
		}
	}
}

func printState(s *game.GameState) {
	fmt.Printf("Phase: %s\n", s.Phase)
	fmt.Printf("Day:   %d\n", s.Day)
	if s.Winner != "" {
		fmt.Printf("Won:   %s\n", s.Winner)
	}
	for _, p := range s.Participants {
		mark := " "
		if p.Status != game.StatusAlive {
			mark = "†"
		}
		fmt.Printf("  %s %-12s %s\n", mark, p.Name, p.Role)
	}
}

func printResult(r *game.PhaseResult) {
	fmt.Printf("--- %s, day %d ---\n", r.Phase, r.Day)
	if r.Announcement != "" {
		fmt.Printf("%s\n", r.Announcement)
	}
	if n := r.Night; n != nil {
		if n.Killed != "" {
			fmt.Printf("Killed:    %s\n", n.Killed)
		}
		if n.Protected != "" {
			fmt.Printf("Protected: %s\n", n.Protected)
		}
		if n.LoverDied != "" {
			fmt.Printf("Heartbreak: %s\n", n.LoverDied)
		}
		if len(n.Paired) == 2 {
			fmt.Printf("Paired:    %s and %s\n", n.Paired[0], n.Paired[1])
		}
	}
	for _, m := range r.Messages {
		fmt.Printf("[%s] %s\n", m.Sender, m.Content)
	}
	if v := r.Vote; v != nil {
		for name, n := range v.Counts {
			fmt.Printf("  %s: %d\n", name, n)
		}
		if v.Eliminated != "" {
			fmt.Printf("Eliminated: %s (%s)\n", v.Eliminated, v.Role)
		}
	}
	if r.Winner != "" {
		fmt.Printf("Winner: %s\n", r.Winner)
		fmt.Printf("Survivors: %s\n", strings.Join(r.Survivors, ", "))
	}
}
