package cacheta

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cardnight-club/cardnight-backend/internal/pkg/model"
	"github.com/cardnight-club/cardnight-backend/internal/pkg/reject"
	"github.com/cardnight-club/cardnight-backend/internal/pkg/utils"
	"github.com/cardnight-club/cardnight-backend/internal/pkg/ws"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	gameNotFoundError     = "error.cacheta.game-not-found"
	gameFinishedError     = "error.cacheta.game-already-finished"
	invalidRosterError    = "error.cacheta.invalid-roster"
	invalidEntryFeeError  = "error.cacheta.invalid-entry-fee"
	emptyActionListError  = "error.cacheta.empty-action-list"
	unknownPlayerError    = "error.cacheta.unknown-player"
	missingOutcomeError   = "error.cacheta.missing-outcome"
	multipleWinnersError  = "error.cacheta.multiple-winners"
	rebuyNotEligibleError = "error.cacheta.rebuy-not-eligible"
)

const (
	eventRoundCommitted = "ROUND_COMMITTED"
	eventRebuy          = "REBUY"
	eventGameFinished   = "GAME_FINISHED"
)

type scoreEvent struct {
	Type    string `json:"type"`
	GameId  uint64 `json:"gameId"`
	Payload any    `json:"payload,omitempty"`
}

type cachetaService struct {
	db              *gorm.DB
	notificationHub *ws.NotificationHub
}

func (cs *cachetaService) createGame(request CreateGameRequest) (*model.CachetaGame, *reject.ProblemWithTrace) {
	if err := ValidateCreation(request.PlayerIds, request.EntryFee); err != nil {
		return nil, ruleProblem(err)
	}

	var createdGame *model.CachetaGame
	err := cs.db.Transaction(func(tx *gorm.DB) error {
		createdGame = &model.CachetaGame{
			Name:     request.Name,
			EntryFee: request.EntryFee,
			Status:   model.CachetaGameInProgress,
		}
		if f := tx.Create(createdGame); f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting cacheta game")
			return f.Error
		}

		entries := make([]model.CachetaPlayer, 0, len(request.PlayerIds))
		for _, playerId := range request.PlayerIds {
			entries = append(entries, model.CachetaPlayer{
				GameId:   createdGame.Id,
				PlayerId: playerId,
				Points:   StartingPoints,
			})
		}
		if f := tx.Create(&entries); f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting cacheta players")
			return f.Error
		}

		createdGame.Players = entries
		return nil
	})

	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}
	return createdGame, nil
}

func (cs *cachetaService) getGames(page utils.PageRequest) ([]model.CachetaGame, *int64, *reject.ProblemWithTrace) {
	games := []model.CachetaGame{}
	gamesSize := int64(0)

	res := cs.db.Model(&model.CachetaGame{}).Count(&gamesSize)
	if res.Error != nil {
		return nil, nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(res.Error),
			Cause:   res.Error,
		}
	}

	res = cs.db.
		Preload("Players.Player").
		Order("time_created DESC").
		Limit(page.Size).
		Offset(page.Offset).
		Find(&games)
	if res.Error != nil {
		return nil, nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(res.Error),
			Cause:   res.Error,
		}
	}

	return games, &gamesSize, nil
}

func (cs *cachetaService) getGame(gameId uint64) (*model.CachetaGame, *reject.ProblemWithTrace) {
	var game model.CachetaGame
	result := cs.db.
		Preload("Players.Player").
		Preload("Rounds", func(db *gorm.DB) *gorm.DB {
			return db.Order("cacheta_round.number ASC")
		}).
		Preload("Rounds.Actions").
		First(&game, gameId)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ruleProblem(ErrGameNotFound)
	}
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	return &game, nil
}

// submitRound applies one validated batch atomically: the round row, its
// action snapshots and every balance update commit together or not at all.
func (cs *cachetaService) submitRound(gameId uint64, actions []Action) (*model.CachetaRound, *reject.ProblemWithTrace) {
	var round *model.CachetaRound
	err := cs.db.Transaction(func(tx *gorm.DB) error {
		game, err := loadGameForUpdate(tx, gameId)
		if err != nil {
			return err
		}

		if err := ValidateActions(game.Players, actions); err != nil {
			return err
		}

		var played int64
		if f := tx.Model(&model.CachetaRound{}).Where("game_id = ?", gameId).Count(&played); f.Error != nil {
			return f.Error
		}

		round = &model.CachetaRound{
			GameId: gameId,
			Number: int(played) + 1,
		}
		if f := tx.Create(round); f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting cacheta round")
			return f.Error
		}

		records := BuildRoundActions(game.Players, actions)
		for i := range records {
			records[i].RoundId = round.Id
		}
		if f := tx.Create(&records); f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting round actions")
			return f.Error
		}

		for _, record := range records {
			f := tx.Model(&model.CachetaPlayer{}).
				Where("id = ?", record.CachetaPlayerId).
				Update("points", record.PointsAfter)
			if f.Error != nil {
				return f.Error
			}
		}

		round.Actions = records
		return nil
	})

	if err != nil {
		return nil, ruleProblem(err)
	}

	cs.publish(gameId, eventRoundCommitted, round)
	return round, nil
}

func (cs *cachetaService) rebuy(gameId uint64, cachetaPlayerId uint64) (*model.CachetaPlayer, *reject.ProblemWithTrace) {
	var rebought *model.CachetaPlayer
	err := cs.db.Transaction(func(tx *gorm.DB) error {
		game, err := loadGameForUpdate(tx, gameId)
		if err != nil {
			return err
		}

		var target *model.CachetaPlayer
		for i := range game.Players {
			if game.Players[i].Id == cachetaPlayerId {
				target = &game.Players[i]
				break
			}
		}
		if target == nil {
			return ErrUnknownPlayer
		}

		points, err := ResolveRebuyPoints(*target, game.Players)
		if err != nil {
			return err
		}

		f := tx.Model(&model.CachetaPlayer{}).
			Where("id = ?", cachetaPlayerId).
			Updates(map[string]any{
				"points": points,
				"rebuys": gorm.Expr("rebuys + 1"),
			})
		if f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting rebuy")
			return f.Error
		}

		target.Points = points
		target.Rebuys++
		rebought = target
		return nil
	})

	if err != nil {
		return nil, ruleProblem(err)
	}

	cs.publish(gameId, eventRebuy, rebought)
	return rebought, nil
}

func (cs *cachetaService) finalizeGame(gameId uint64, request FinalizeGameRequest) (*model.CachetaGame, *reject.ProblemWithTrace) {
	var finished *model.CachetaGame
	err := cs.db.Transaction(func(tx *gorm.DB) error {
		game, err := loadGameForUpdate(tx, gameId)
		if err != nil {
			return err
		}

		winnerInRoster := false
		for _, p := range game.Players {
			if p.Id == request.WinnerId {
				winnerInRoster = true
				break
			}
		}
		if !winnerInRoster {
			return ErrUnknownPlayer
		}

		payout := request.Payout
		if payout == nil {
			computed := ComputePayout(game.EntryFee, game.Players, request.ExemptPlayerId != nil)
			payout = &computed
		}

		f := tx.Model(&model.CachetaGame{}).
			Where("id = ?", gameId).
			Updates(map[string]any{
				"status":    model.CachetaGameFinished,
				"winner_id": request.WinnerId,
				"payout":    *payout,
			})
		if f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting game finalization")
			return f.Error
		}

		game.Status = model.CachetaGameFinished
		game.WinnerId = &request.WinnerId
		game.Payout = payout
		finished = game
		return nil
	})

	if err != nil {
		return nil, ruleProblem(err)
	}

	cs.publish(gameId, eventGameFinished, finished)
	return finished, nil
}

func (cs *cachetaService) publish(gameId uint64, eventType string, payload any) {
	if cs.notificationHub == nil {
		return
	}
	cs.notificationHub.Publish(strconv.FormatUint(gameId, 10), scoreEvent{
		Type:    eventType,
		GameId:  gameId,
		Payload: payload,
	})
}

func loadGameForUpdate(tx *gorm.DB, gameId uint64) (*model.CachetaGame, error) {
	var game model.CachetaGame
	f := tx.Preload("Players").First(&game, gameId)
	if errors.Is(f.Error, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if f.Error != nil {
		return nil, f.Error
	}

	if game.Status == model.CachetaGameFinished {
		return nil, ErrGameAlreadyFinished
	}
	return &game, nil
}

// ruleProblem maps engine errors onto problem responses: validation
// failures are 400, state conflicts 409, missing aggregates 404.
func ruleProblem(err error) *reject.ProblemWithTrace {
	mappings := []struct {
		target error
		status int
		code   string
	}{
		{ErrGameNotFound, http.StatusNotFound, gameNotFoundError},
		{ErrGameAlreadyFinished, http.StatusConflict, gameFinishedError},
		{ErrRebuyNotEligible, http.StatusConflict, rebuyNotEligibleError},
		{ErrInvalidRoster, http.StatusBadRequest, invalidRosterError},
		{ErrInvalidEntryFee, http.StatusBadRequest, invalidEntryFeeError},
		{ErrEmptyActionList, http.StatusBadRequest, emptyActionListError},
		{ErrUnknownPlayer, http.StatusBadRequest, unknownPlayerError},
		{ErrMissingOutcome, http.StatusBadRequest, missingOutcomeError},
		{ErrMultipleWinners, http.StatusBadRequest, multipleWinnersError},
	}

	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return &reject.ProblemWithTrace{
				Problem: reject.NewProblem().
					WithTitle(m.target.Error()).
					WithStatus(m.status).
					WithCode(m.code).
					WithDetail(err.Error()).
					Build(),
				Cause: err,
			}
		}
	}

	return &reject.ProblemWithTrace{
		Problem: reject.UnexpectedProblem(err),
		Cause:   err,
	}
}
