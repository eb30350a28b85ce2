package main

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/hollowmill/werewolves/comms"
	"github.com/hollowmill/werewolves/decide"
)

func runWebGateway(ctx context.Context, server *server, addr string) error {
	log := log.With().Str("gw", "web").Logger()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	log.Info().Msgf("web listening on http://%v", ln.Addr())

	rh := restHandler{
		server: server,
		log:    log,
	}

	ch := commsHandler{
		server: server,
		log:    log,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	r.GET("/", rh.getRoot)
	a := r.Group("/api")
	a.GET("/providers", rh.getProviders)
	a.GET("/games", rh.getGames)
	a.POST("/games", rh.makeGame)
	a.GET("/games/:id", rh.getGame)
	a.GET("/games/:id/players", rh.getPlayers)
	a.GET("/games/:id/log", rh.getLog)
	a.DELETE("/games/:id", rh.deleteGame)
	a.POST("/games/:id/start", rh.startGame)
	a.POST("/games/:id/advance", rh.advanceGame)
	r.GET("/ws", ch.serveWS)

	s := &http.Server{
		Handler:     r,
		ReadTimeout: time.Second * 10,
		// no write timeout: advancing a phase waits on provider calls
	}

	go func() {
		<-ctx.Done()
		s.Close()
	}()

	return s.Serve(ln)
}

type restHandler struct {
	server *server
	log    zerolog.Logger
}

func (rh *restHandler) getRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":   "Werewolves of Millers Hollow",
		"status": "running",
	})
}

func (rh *restHandler) getProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": decide.Available()})
}

func (rh *restHandler) getGames(c *gin.Context) {
	c.JSON(http.StatusOK, rh.server.ListGames())
}

func (rh *restHandler) makeGame(c *gin.Context) {
	req := CreateGameInput{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "bad body: %v", err)
		return
	}
	if req.ID == "" {
		c.String(http.StatusBadRequest, "missing id")
		return
	}

	if err := rh.server.CreateGame(req); err != nil {
		rh.log.Error().Err(err).Msg("create game error")
		c.String(http.StatusInternalServerError, "error: %v", err)
		return
	}

	c.String(http.StatusOK, "ok: %s", req.ID)
}

func (rh *restHandler) getGame(c *gin.Context) {
	id := c.Param("id")

	res := rh.server.QueryGame(id)
	if res == nil {
		c.JSON(http.StatusNotFound, nil)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (rh *restHandler) getPlayers(c *gin.Context) {
	id := c.Param("id")

	res := rh.server.QueryGame(id)
	if res == nil {
		c.JSON(http.StatusNotFound, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"players": res.Participants})
}

// getLog serves the narrated log, optionally only the last ?n= lines.
func (rh *restHandler) getLog(c *gin.Context) {
	id := c.Param("id")

	n, _ := strconv.Atoi(c.Query("n"))

	lines := rh.server.GameLog(id, n)
	if lines == nil {
		c.JSON(http.StatusNotFound, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": lines})
}

func (rh *restHandler) deleteGame(c *gin.Context) {
	id := c.Param("id")

	if err := rh.server.DeleteGame(id); err != nil {
		rh.log.Error().Err(err).Msg("delete game error")
		c.String(http.StatusInternalServerError, "error: %v", err)
		return
	}

	c.String(http.StatusOK, "ok: %s", id)
}

func (rh *restHandler) startGame(c *gin.Context) {
	id := c.Param("id")

	res, err := rh.server.StartGame(id)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": comms.WrapError(err)})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (rh *restHandler) advanceGame(c *gin.Context) {
	id := c.Param("id")

	res, err := rh.server.AdvanceGame(id)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": comms.WrapError(err)})
		return
	}

	c.JSON(http.StatusOK, res)
}

type commsHandler struct {
	server *server
	log    zerolog.Logger
}

// serveWS pushes every phase result of one game down a websocket.
func (ch *commsHandler) serveWS(c *gin.Context) {
	addr := c.Request.RemoteAddr

	log := ch.log.With().Str("client", addr).Logger()

	gameId := c.Query("game")
	if gameId == "" {
		c.String(http.StatusBadRequest, "missing params")
		return
	}

	socket, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Info().Err(err).Msg("websocket accept error")
		return
	}
	defer socket.Close(websocket.StatusInternalError, "dying")

	downCh := make(chan interface{}, 100)

	err = ch.server.Connect(gameId, addr, clientBundle{downCh})
	if err != nil {
		log.Info().Msgf("refusing: %s", addr)
		msg, _ := comms.Encode("connected", comms.WrapError(err))
		wsjson.Write(c.Request.Context(), socket, msg)
		socket.Close(websocket.StatusNormalClosure, "cannot connect")
		return
	}

	msg, _ := comms.Encode("connected", "ok")
	wsjson.Write(c.Request.Context(), socket, msg)

	go func() {
		// read downCh, write to conn
		for down := range downCh {
			if err := wsjson.Write(context.Background(), socket, down); err != nil {
				log.Info().Err(err).Msg("send error")
				return
			}
		}
	}()

	for {
		// drain the conn to spot disconnects; watchers have nothing to say
		if _, _, err := socket.Read(c.Request.Context()); err != nil {
			ch.server.coreCh <- disconnectMsg{gameId, addr}
			return
		}
	}
}
