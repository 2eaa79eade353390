package tournament

import (
	"errors"
	"net/http"

	"github.com/cardnight-club/cardnight-backend/internal/pkg/model"
	"github.com/cardnight-club/cardnight-backend/internal/pkg/reject"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	tournamentNotFoundError = "error.tournament.not-found"
	notConfiguredError      = "error.tournament.not-configured"
	alreadyFinishedError    = "error.tournament.already-finished"
	playerNotInRosterError  = "error.tournament.player-not-in-roster"
	invalidPlacementsError  = "error.tournament.invalid-placements"
)

var (
	errTournamentNotFound = errors.New("tournament not found")
	errNotConfigured      = errors.New("tournament has already started")
	errAlreadyFinished    = errors.New("tournament already finished")
	errPlayerNotInRoster  = errors.New("player is not in the tournament roster")
	errInvalidPlacements  = errors.New("first and second place must be distinct roster members")
)

type tournamentService struct {
	db *gorm.DB
}

func (ts *tournamentService) getTournaments() ([]model.Tournament, *reject.ProblemWithTrace) {
	tournaments := []model.Tournament{}
	result := ts.db.
		Preload("Players.Player").
		Order("time_created DESC").
		Find(&tournaments)
	if result.Error != nil {
		return nil, unexpected(result.Error)
	}
	return tournaments, nil
}

func (ts *tournamentService) getTournament(tournamentId uint64) (*model.Tournament, *reject.ProblemWithTrace) {
	var tournament model.Tournament
	result := ts.db.
		Preload("Players.Player").
		First(&tournament, tournamentId)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, statusProblem(errTournamentNotFound)
	}
	if result.Error != nil {
		return nil, unexpected(result.Error)
	}
	return &tournament, nil
}

func (ts *tournamentService) createTournament(request UpsertTournamentRequest) (*model.Tournament, *reject.ProblemWithTrace) {
	created := &model.Tournament{
		Name:          request.Name,
		BuyIn:         request.BuyIn,
		StartingStack: request.StartingStack,
		LevelMinutes:  request.LevelMinutes,
		Status:        model.TournamentConfigured,
	}
	result := ts.db.Create(created)
	if result.Error != nil {
		log.Warn().Err(result.Error).Msg("error persisting tournament")
		return nil, unexpected(result.Error)
	}
	return created, nil
}

func (ts *tournamentService) updateTournament(tournamentId uint64, request UpsertTournamentRequest) (*model.Tournament, *reject.ProblemWithTrace) {
	var tournament model.Tournament
	err := ts.db.Transaction(func(tx *gorm.DB) error {
		f := tx.First(&tournament, tournamentId)
		if errors.Is(f.Error, gorm.ErrRecordNotFound) {
			return errTournamentNotFound
		}
		if f.Error != nil {
			return f.Error
		}
		if tournament.Status == model.TournamentFinished {
			return errAlreadyFinished
		}

		tournament.Name = request.Name
		tournament.BuyIn = request.BuyIn
		tournament.StartingStack = request.StartingStack
		tournament.LevelMinutes = request.LevelMinutes
		return tx.Save(&tournament).Error
	})

	if err != nil {
		return nil, statusProblem(err)
	}
	return &tournament, nil
}

// deleteTournament removes the roster rows first, then the tournament,
// in one transaction.
func (ts *tournamentService) deleteTournament(tournamentId uint64) *reject.ProblemWithTrace {
	err := ts.db.Transaction(func(tx *gorm.DB) error {
		f := tx.Where("tournament_id = ?", tournamentId).Delete(&model.TournamentPlayer{})
		if f.Error != nil {
			return f.Error
		}

		f = tx.Delete(&model.Tournament{}, tournamentId)
		if f.Error != nil {
			return f.Error
		}
		if f.RowsAffected == 0 {
			return errTournamentNotFound
		}
		return nil
	})

	if err != nil {
		return statusProblem(err)
	}
	return nil
}

// addPlayer is idempotent: adding a player who is already seated returns
// the existing roster row.
func (ts *tournamentService) addPlayer(tournamentId uint64, playerId uint64) (*model.TournamentPlayer, *reject.ProblemWithTrace) {
	var entry model.TournamentPlayer
	err := ts.db.Transaction(func(tx *gorm.DB) error {
		if err := loadOpenTournament(tx, tournamentId); err != nil {
			return err
		}

		f := tx.Where("tournament_id = ? AND player_id = ?", tournamentId, playerId).First(&entry)
		if f.Error == nil {
			return nil
		}
		if !errors.Is(f.Error, gorm.ErrRecordNotFound) {
			return f.Error
		}

		entry = model.TournamentPlayer{
			TournamentId: tournamentId,
			PlayerId:     playerId,
		}
		return tx.Create(&entry).Error
	})

	if err != nil {
		return nil, statusProblem(err)
	}
	return &entry, nil
}

func (ts *tournamentService) removePlayer(tournamentId uint64, playerId uint64) *reject.ProblemWithTrace {
	err := ts.db.Transaction(func(tx *gorm.DB) error {
		if err := loadOpenTournament(tx, tournamentId); err != nil {
			return err
		}

		f := tx.Where("tournament_id = ? AND player_id = ?", tournamentId, playerId).
			Delete(&model.TournamentPlayer{})
		if f.Error != nil {
			return f.Error
		}
		if f.RowsAffected == 0 {
			return errPlayerNotInRoster
		}
		return nil
	})

	if err != nil {
		return statusProblem(err)
	}
	return nil
}

func (ts *tournamentService) registerReentry(tournamentId uint64, playerId uint64) (*model.TournamentPlayer, *reject.ProblemWithTrace) {
	var entry model.TournamentPlayer
	err := ts.db.Transaction(func(tx *gorm.DB) error {
		if err := loadOpenTournament(tx, tournamentId); err != nil {
			return err
		}

		f := tx.Where("tournament_id = ? AND player_id = ?", tournamentId, playerId).First(&entry)
		if errors.Is(f.Error, gorm.ErrRecordNotFound) {
			return errPlayerNotInRoster
		}
		if f.Error != nil {
			return f.Error
		}

		f = tx.Model(&model.TournamentPlayer{}).
			Where("id = ?", entry.Id).
			Update("reentries", gorm.Expr("reentries + 1"))
		if f.Error != nil {
			return f.Error
		}

		entry.Reentries++
		return nil
	})

	if err != nil {
		return nil, statusProblem(err)
	}
	return &entry, nil
}

func (ts *tournamentService) startTournament(tournamentId uint64) (*model.Tournament, *reject.ProblemWithTrace) {
	var tournament model.Tournament
	err := ts.db.Transaction(func(tx *gorm.DB) error {
		f := tx.First(&tournament, tournamentId)
		if errors.Is(f.Error, gorm.ErrRecordNotFound) {
			return errTournamentNotFound
		}
		if f.Error != nil {
			return f.Error
		}
		if tournament.Status != model.TournamentConfigured {
			return errNotConfigured
		}

		tournament.Status = model.TournamentRunning
		return tx.Model(&model.Tournament{}).
			Where("id = ?", tournamentId).
			Update("status", model.TournamentRunning).Error
	})

	if err != nil {
		return nil, statusProblem(err)
	}
	return &tournament, nil
}

func (ts *tournamentService) finalizeTournament(tournamentId uint64, request FinalizeTournamentRequest) (*model.Tournament, *reject.ProblemWithTrace) {
	var tournament model.Tournament
	err := ts.db.Transaction(func(tx *gorm.DB) error {
		f := tx.Preload("Players").First(&tournament, tournamentId)
		if errors.Is(f.Error, gorm.ErrRecordNotFound) {
			return errTournamentNotFound
		}
		if f.Error != nil {
			return f.Error
		}
		if tournament.Status == model.TournamentFinished {
			return errAlreadyFinished
		}

		if request.FirstPlaceId == request.SecondPlaceId {
			return errInvalidPlacements
		}
		if !inRoster(tournament.Players, request.FirstPlaceId) ||
			!inRoster(tournament.Players, request.SecondPlaceId) {
			return errInvalidPlacements
		}

		f = tx.Model(&model.Tournament{}).
			Where("id = ?", tournamentId).
			Updates(map[string]any{
				"status":          model.TournamentFinished,
				"first_place_id":  request.FirstPlaceId,
				"second_place_id": request.SecondPlaceId,
			})
		if f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting tournament finalization")
			return f.Error
		}

		tournament.Status = model.TournamentFinished
		tournament.FirstPlaceId = &request.FirstPlaceId
		tournament.SecondPlaceId = &request.SecondPlaceId
		return nil
	})

	if err != nil {
		return nil, statusProblem(err)
	}
	return &tournament, nil
}

func loadOpenTournament(tx *gorm.DB, tournamentId uint64) error {
	var tournament model.Tournament
	f := tx.First(&tournament, tournamentId)
	if errors.Is(f.Error, gorm.ErrRecordNotFound) {
		return errTournamentNotFound
	}
	if f.Error != nil {
		return f.Error
	}
	if tournament.Status == model.TournamentFinished {
		return errAlreadyFinished
	}
	return nil
}

func inRoster(roster []model.TournamentPlayer, playerId uint64) bool {
	for _, entry := range roster {
		if entry.PlayerId == playerId {
			return true
		}
	}
	return false
}

func statusProblem(err error) *reject.ProblemWithTrace {
	mappings := []struct {
		target error
		status int
		code   string
	}{
		{errTournamentNotFound, http.StatusNotFound, tournamentNotFoundError},
		{errNotConfigured, http.StatusConflict, notConfiguredError},
		{errAlreadyFinished, http.StatusConflict, alreadyFinishedError},
		{errPlayerNotInRoster, http.StatusBadRequest, playerNotInRosterError},
		{errInvalidPlacements, http.StatusBadRequest, invalidPlacementsError},
	}

	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return &reject.ProblemWithTrace{
				Problem: reject.NewProblem().
					WithTitle(m.target.Error()).
					WithStatus(m.status).
					WithCode(m.code).
					Build(),
				Cause: err,
			}
		}
	}
	return unexpected(err)
}

func unexpected(err error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.UnexpectedProblem(err),
		Cause:   err,
	}
}
