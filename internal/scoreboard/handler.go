package scoreboard

import (
	"github.com/cardnight-club/cardnight-backend/internal/pkg/ws"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type scoreboardHandler struct {
	notificationHub *ws.NotificationHub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// RegisterRoutes exposes the live score feed: one topic per cacheta game,
// fed by the cacheta service on every committed round, rebuy and
// finalization.
func RegisterRoutes(rg *gin.RouterGroup, hub *ws.NotificationHub) {
	handler := scoreboardHandler{
		notificationHub: hub,
	}

	routes := rg.Group("/ws")
	routes.GET("/cacheta/:id", handler.serveScoreFeed)
}

func (sh *scoreboardHandler) serveScoreFeed(c *gin.Context) {
	gameId := c.Param("id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Error upgrading score feed connection")
		return
	}
	defer conn.Close()

	listenerId := sh.notificationHub.RegisterListener(gameId, conn)
	defer sh.notificationHub.UnregisterListener(gameId, listenerId)

	for {
		var buffer any
		if err := conn.ReadJSON(&buffer); err != nil {
			return
		}
	}
}
