package player

import (
	"net/http"
	"strconv"

	"github.com/cardnight-club/cardnight-backend/internal/pkg/reject"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpsertPlayerRequest struct {
	Name   string  `json:"name"`
	PixKey *string `json:"pixKey"`
}

type playerHandler struct {
	playerService playerService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := playerHandler{
		playerService: playerService{db: db},
	}

	routes := rg.Group("/players")
	routes.GET("", handler.getPlayers)
	routes.POST("", handler.createPlayer)
	routes.GET("/rankings/cacheta", handler.getCachetaRanking)
	routes.GET("/rankings/tournament", handler.getTournamentRanking)
	routes.GET("/:id", handler.getPlayer)
	routes.PUT("/:id", handler.updatePlayer)
	routes.DELETE("/:id", handler.deletePlayer)
}

func (ph *playerHandler) getPlayers(c *gin.Context) {
	players, err := ph.playerService.getPlayers()
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusOK, players)
}

func (ph *playerHandler) getPlayer(c *gin.Context) {
	playerId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	player, err := ph.playerService.getPlayer(playerId)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusOK, player)
}

func (ph *playerHandler) createPlayer(c *gin.Context) {
	body := UpsertPlayerRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}
	if body.Name == "" {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	player, err := ph.playerService.createPlayer(body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusCreated, player)
}

func (ph *playerHandler) updatePlayer(c *gin.Context) {
	playerId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := UpsertPlayerRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}
	if body.Name == "" {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	player, err := ph.playerService.updatePlayer(playerId, body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusOK, player)
}

func (ph *playerHandler) deletePlayer(c *gin.Context) {
	playerId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	if err := ph.playerService.deletePlayer(playerId); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ph *playerHandler) getCachetaRanking(c *gin.Context) {
	ranking, err := ph.playerService.getCachetaRanking()
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusOK, ranking)
}

func (ph *playerHandler) getTournamentRanking(c *gin.Context) {
	ranking, err := ph.playerService.getTournamentRanking()
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusOK, ranking)
}
