package player

import (
	"errors"
	"net/http"
	"sort"

	"github.com/cardnight-club/cardnight-backend/internal/pkg/model"
	"github.com/cardnight-club/cardnight-backend/internal/pkg/reject"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	playerNotFoundError = "error.player.not-found"
)

type playerService struct {
	db *gorm.DB
}

// CachetaStats aggregates a player's record across finished cacheta games.
type CachetaStats struct {
	GamesPlayed int64   `json:"gamesPlayed"`
	Wins        int64   `json:"wins"`
	Rebuys      int64   `json:"rebuys"`
	PrizeTotal  float64 `json:"prizeTotal"`
}

type PlayerDetails struct {
	model.Player
	CachetaStats CachetaStats `json:"cachetaStats"`
}

type CachetaRankingEntry struct {
	PlayerId    uint64  `json:"playerId"`
	Name        string  `json:"name"`
	GamesPlayed int64   `json:"gamesPlayed"`
	Wins        int64   `json:"wins"`
	Rebuys      int64   `json:"rebuys"`
	PrizeTotal  float64 `json:"prizeTotal"`
}

type TournamentRankingEntry struct {
	PlayerId          uint64 `json:"playerId"`
	Name              string `json:"name"`
	TournamentsPlayed int64  `json:"tournamentsPlayed"`
	FirstPlaces       int64  `json:"firstPlaces"`
	SecondPlaces      int64  `json:"secondPlaces"`
	Points            int64  `json:"points"`
}

func (ps *playerService) getPlayers() ([]model.Player, *reject.ProblemWithTrace) {
	players := []model.Player{}
	result := ps.db.Order("name ASC").Find(&players)
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}
	return players, nil
}

func (ps *playerService) getPlayer(playerId uint64) (*PlayerDetails, *reject.ProblemWithTrace) {
	var player model.Player
	result := ps.db.First(&player, playerId)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, notFoundProblem(result.Error)
	}
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	var stats CachetaStats
	result = ps.db.Raw(`
		SELECT COUNT(DISTINCT cp.game_id)                                            AS games_played
		     , COALESCE(SUM(CASE WHEN cg.winner_id = cp.id THEN 1 ELSE 0 END), 0)    AS wins
		     , COALESCE(SUM(cp.rebuys), 0)                                           AS rebuys
		     , COALESCE(SUM(CASE WHEN cg.winner_id = cp.id THEN cg.payout END), 0)   AS prize_total
		  FROM cacheta_player cp
		  JOIN cacheta_game cg ON cg.id = cp.game_id
		 WHERE cp.player_id = ?
		   AND cg.status = 'FINISHED'
	`, playerId).Scan(&stats)
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	return &PlayerDetails{Player: player, CachetaStats: stats}, nil
}

func (ps *playerService) createPlayer(request UpsertPlayerRequest) (*model.Player, *reject.ProblemWithTrace) {
	created := &model.Player{
		Name:   request.Name,
		PixKey: request.PixKey,
	}
	result := ps.db.Create(created)
	if result.Error != nil {
		log.Warn().Err(result.Error).Msg("error persisting player")
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}
	return created, nil
}

func (ps *playerService) updatePlayer(playerId uint64, request UpsertPlayerRequest) (*model.Player, *reject.ProblemWithTrace) {
	var player model.Player
	err := ps.db.Transaction(func(tx *gorm.DB) error {
		f := tx.First(&player, playerId)
		if f.Error != nil {
			return f.Error
		}

		player.Name = request.Name
		player.PixKey = request.PixKey
		return tx.Save(&player).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundProblem(err)
	}
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}
	return &player, nil
}

func (ps *playerService) deletePlayer(playerId uint64) *reject.ProblemWithTrace {
	result := ps.db.Delete(&model.Player{}, playerId)
	if result.Error != nil {
		return &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}
	if result.RowsAffected == 0 {
		return notFoundProblem(gorm.ErrRecordNotFound)
	}
	return nil
}

func (ps *playerService) getCachetaRanking() ([]CachetaRankingEntry, *reject.ProblemWithTrace) {
	entries := []CachetaRankingEntry{}
	result := ps.db.Raw(`
		SELECT p.id                                                                  AS player_id
		     , p.name                                                                AS name
		     , COUNT(DISTINCT cp.game_id)                                            AS games_played
		     , COALESCE(SUM(CASE WHEN cg.winner_id = cp.id THEN 1 ELSE 0 END), 0)    AS wins
		     , COALESCE(SUM(cp.rebuys), 0)                                           AS rebuys
		     , COALESCE(SUM(CASE WHEN cg.winner_id = cp.id THEN cg.payout END), 0)   AS prize_total
		  FROM player p
		  JOIN cacheta_player cp ON cp.player_id = p.id
		  JOIN cacheta_game cg ON cg.id = cp.game_id AND cg.status = 'FINISHED'
	  GROUP BY p.id, p.name
	  ORDER BY wins DESC, prize_total DESC, p.name ASC
	`).Scan(&entries)

	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}
	return entries, nil
}

// getTournamentRanking scores three points per first place and one per
// second, the club's long-standing season rule.
func (ps *playerService) getTournamentRanking() ([]TournamentRankingEntry, *reject.ProblemWithTrace) {
	entries := []TournamentRankingEntry{}
	result := ps.db.Raw(`
		SELECT p.id                                                                        AS player_id
		     , p.name                                                                      AS name
		     , (SELECT COUNT(*) FROM tournament_player tp WHERE tp.player_id = p.id)       AS tournaments_played
		     , (SELECT COUNT(*) FROM tournament t WHERE t.first_place_id = p.id)           AS first_places
		     , (SELECT COUNT(*) FROM tournament t WHERE t.second_place_id = p.id)          AS second_places
		  FROM player p
	`).Scan(&entries)

	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	for i := range entries {
		entries[i].Points = entries[i].FirstPlaces*3 + entries[i].SecondPlaces
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

func notFoundProblem(cause error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.NewProblem().
			WithTitle("Player not found").
			WithStatus(http.StatusNotFound).
			WithCode(playerNotFoundError).
			Build(),
		Cause: cause,
	}
}
