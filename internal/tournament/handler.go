package tournament

import (
	"net/http"
	"strconv"

	"github.com/cardnight-club/cardnight-backend/internal/pkg/reject"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpsertTournamentRequest struct {
	Name          string  `json:"name"`
	BuyIn         float64 `json:"buyIn"`
	StartingStack int     `json:"startingStack"`
	LevelMinutes  int     `json:"levelMinutes"`
}

type RosterRequest struct {
	PlayerId uint64 `json:"playerId"`
}

type FinalizeTournamentRequest struct {
	FirstPlaceId  uint64 `json:"firstPlaceId"`
	SecondPlaceId uint64 `json:"secondPlaceId"`
}

type tournamentHandler struct {
	tournamentService tournamentService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := tournamentHandler{
		tournamentService: tournamentService{db: db},
	}

	routes := rg.Group("/tournaments")
	routes.GET("/blinds", handler.getBlindLevels)
	routes.GET("", handler.getTournaments)
	routes.POST("", handler.createTournament)
	routes.GET("/:id", handler.getTournament)
	routes.PUT("/:id", handler.updateTournament)
	routes.DELETE("/:id", handler.deleteTournament)
	routes.POST("/:id/players", handler.addPlayer)
	routes.DELETE("/:id/players/:playerId", handler.removePlayer)
	routes.POST("/:id/reentries", handler.registerReentry)
	routes.POST("/:id/start", handler.startTournament)
	routes.POST("/:id/finish", handler.finalizeTournament)
}

func (th *tournamentHandler) getBlindLevels(c *gin.Context) {
	c.JSON(http.StatusOK, BlindLevels())
}

func (th *tournamentHandler) getTournaments(c *gin.Context) {
	tournaments, err := th.tournamentService.getTournaments()
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusOK, tournaments)
}

func (th *tournamentHandler) getTournament(c *gin.Context) {
	tournamentId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	tournament, err := th.tournamentService.getTournament(tournamentId)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusOK, tournament)
}

func (th *tournamentHandler) createTournament(c *gin.Context) {
	body := UpsertTournamentRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}
	if body.Name == "" || body.BuyIn <= 0 {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	tournament, err := th.tournamentService.createTournament(body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusCreated, tournament)
}

func (th *tournamentHandler) updateTournament(c *gin.Context) {
	tournamentId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := UpsertTournamentRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}
	if body.Name == "" || body.BuyIn <= 0 {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	tournament, err := th.tournamentService.updateTournament(tournamentId, body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusOK, tournament)
}

func (th *tournamentHandler) deleteTournament(c *gin.Context) {
	tournamentId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	if err := th.tournamentService.deleteTournament(tournamentId); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.Status(http.StatusNoContent)
}

func (th *tournamentHandler) addPlayer(c *gin.Context) {
	tournamentId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := RosterRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	entry, err := th.tournamentService.addPlayer(tournamentId, body.PlayerId)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (th *tournamentHandler) removePlayer(c *gin.Context) {
	tournamentId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}
	playerId, parseErr := strconv.ParseUint(c.Param("playerId"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	if err := th.tournamentService.removePlayer(tournamentId, playerId); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.Status(http.StatusNoContent)
}

func (th *tournamentHandler) registerReentry(c *gin.Context) {
	tournamentId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := RosterRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	entry, err := th.tournamentService.registerReentry(tournamentId, body.PlayerId)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (th *tournamentHandler) startTournament(c *gin.Context) {
	tournamentId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	tournament, err := th.tournamentService.startTournament(tournamentId)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusOK, tournament)
}

func (th *tournamentHandler) finalizeTournament(c *gin.Context) {
	tournamentId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := FinalizeTournamentRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}
	if body.FirstPlaceId == 0 || body.SecondPlaceId == 0 {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	tournament, err := th.tournamentService.finalizeTournament(tournamentId, body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}
	c.JSON(http.StatusOK, tournament)
}
