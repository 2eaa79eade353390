package cacheta

import (
	"net/http"
	"strconv"

	"github.com/cardnight-club/cardnight-backend/internal/pkg/model"
	"github.com/cardnight-club/cardnight-backend/internal/pkg/reject"
	"github.com/cardnight-club/cardnight-backend/internal/pkg/utils"
	"github.com/cardnight-club/cardnight-backend/internal/pkg/ws"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type cachetaHandler struct {
	cachetaService cachetaService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, hub *ws.NotificationHub) {
	handler := cachetaHandler{
		cachetaService: cachetaService{
			db:              db,
			notificationHub: hub,
		},
	}

	routes := rg.Group("/cacheta")
	routes.POST("", handler.createGame)
	routes.GET("", handler.getGames)
	routes.GET("/:id", handler.getGame)
	routes.POST("/:id/rounds", handler.submitRound)
	routes.POST("/:id/rebuys", handler.rebuy)
	routes.POST("/:id/finish", handler.finalizeGame)
}

func (ch *cachetaHandler) createGame(c *gin.Context) {
	body := CreateGameRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}
	if body.Name == "" {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	game, err := ch.cachetaService.createGame(body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, game)
}

func (ch *cachetaHandler) getGames(c *gin.Context) {
	page, err := utils.NewPageRequest(c)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	games, gamesCount, err := ch.cachetaService.getGames(page)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	response := utils.NewPageResponse[model.CachetaGame]().
		WithItems(games).
		WithItemCount(*gamesCount)

	nextToken := checkNextPageToken(page, *gamesCount)
	if nextToken != nil {
		response.WithNextPageToken(*nextToken)
	}

	c.JSON(http.StatusOK, response.Build())
}

func (ch *cachetaHandler) getGame(c *gin.Context) {
	gameId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	game, err := ch.cachetaService.getGame(gameId)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (ch *cachetaHandler) submitRound(c *gin.Context) {
	gameId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := SubmitRoundRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	actions, ok := toActions(body.Actions)
	if !ok {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	round, err := ch.cachetaService.submitRound(gameId, actions)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, round)
}

func (ch *cachetaHandler) rebuy(c *gin.Context) {
	gameId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := RebuyRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	player, err := ch.cachetaService.rebuy(gameId, body.CachetaPlayerId)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, player)
}

func (ch *cachetaHandler) finalizeGame(c *gin.Context) {
	gameId, parseErr := strconv.ParseUint(c.Param("id"), 0, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := FinalizeGameRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}
	if body.WinnerId == 0 {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	game, err := ch.cachetaService.finalizeGame(gameId, body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, game)
}

// toActions converts request tuples into engine actions, rejecting kinds
// and outcomes outside the action vocabulary.
func toActions(requests []RoundActionRequest) ([]Action, bool) {
	actions := make([]Action, 0, len(requests))
	for _, request := range requests {
		kind := model.ActionKind(request.Kind)
		if kind != model.ActionWent && kind != model.ActionPassed {
			return nil, false
		}

		var outcome *model.ActionOutcome
		if request.Outcome != nil {
			parsed := model.ActionOutcome(*request.Outcome)
			if parsed != model.OutcomeWon && parsed != model.OutcomeLost {
				return nil, false
			}
			outcome = &parsed
		}

		actions = append(actions, Action{
			CachetaPlayerId: request.CachetaPlayerId,
			Kind:            kind,
			Outcome:         outcome,
		})
	}
	return actions, true
}

func checkNextPageToken(currPage utils.PageRequest, gameCount int64) *int64 {
	if int(gameCount) > (currPage.Token+1)*currPage.Size {
		nextToken := int64(currPage.Token + 1)
		return &nextToken
	}
	return nil
}
