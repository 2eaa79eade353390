package cacheta

import (
	"errors"
	"fmt"

	"github.com/cardnight-club/cardnight-backend/internal/pkg/model"
)

const (
	// StartingPoints is dealt to every player when a game is created.
	StartingPoints = 10
	// RebuyFallbackPoints is used when no other player holds a positive
	// balance to peg the rebuy to.
	RebuyFallbackPoints = 5
	// MinimumRoster is the smallest playable table.
	MinimumRoster = 2
)

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrGameAlreadyFinished = errors.New("game already finished")
	ErrInvalidRoster       = errors.New("at least two distinct players required")
	ErrInvalidEntryFee     = errors.New("entry fee must be positive")
	ErrEmptyActionList     = errors.New("round needs at least one action")
	ErrUnknownPlayer       = errors.New("player does not belong to this game")
	ErrMissingOutcome      = errors.New("outcome is required when the player went")
	ErrMultipleWinners     = errors.New("only one player can win a round")
	ErrRebuyNotEligible    = errors.New("only players at zero points can rebuy")
)

// Action is one player's move in a round, as submitted by the caller.
type Action struct {
	CachetaPlayerId uint64
	Kind            model.ActionKind
	Outcome         *model.ActionOutcome
}

// ApplyAction maps a balance and an action to the new balance. Passing
// costs one point, going and losing costs two, going and winning is free.
// The balance floors at zero; reaching it makes the player rebuy-eligible.
func ApplyAction(points int, kind model.ActionKind, outcome *model.ActionOutcome) int {
	switch {
	case kind == model.ActionPassed:
		points = points - 1
	case kind == model.ActionWent && outcome != nil && *outcome == model.OutcomeLost:
		points = points - 2
	}
	if points < 0 {
		return 0
	}
	return points
}

// ValidateCreation checks the inputs for a new game.
func ValidateCreation(playerIds []uint64, entryFee float64) error {
	if entryFee <= 0 {
		return ErrInvalidEntryFee
	}

	distinct := make(map[uint64]struct{}, len(playerIds))
	for _, id := range playerIds {
		distinct[id] = struct{}{}
	}
	if len(distinct) < MinimumRoster {
		return ErrInvalidRoster
	}
	return nil
}

// ValidateActions rejects a round batch before any state is touched. The
// batch may omit roster members: depleted players sit out by table
// convention, so absence is legal. Membership is checked for the whole
// batch before any outcome is inspected.
func ValidateActions(roster []model.CachetaPlayer, actions []Action) error {
	if len(actions) == 0 {
		return ErrEmptyActionList
	}

	rosterIds := make(map[uint64]struct{}, len(roster))
	for _, p := range roster {
		rosterIds[p.Id] = struct{}{}
	}

	for _, action := range actions {
		if _, ok := rosterIds[action.CachetaPlayerId]; !ok {
			return fmt.Errorf("%w: cacheta player %d", ErrUnknownPlayer, action.CachetaPlayerId)
		}
	}

	winners := 0
	for _, action := range actions {
		if action.Kind != model.ActionWent {
			continue
		}
		if action.Outcome == nil ||
			(*action.Outcome != model.OutcomeWon && *action.Outcome != model.OutcomeLost) {
			return fmt.Errorf("%w: cacheta player %d", ErrMissingOutcome, action.CachetaPlayerId)
		}
		if *action.Outcome == model.OutcomeWon {
			winners++
		}
	}

	if winners > 1 {
		return ErrMultipleWinners
	}
	return nil
}

// BuildRoundActions turns a validated batch into the immutable audit rows,
// snapshotting each balance before and after. Balances chain within the
// batch: a player listed twice is charged for both actions, the second
// snapshot starting from the first's result.
func BuildRoundActions(roster []model.CachetaPlayer, actions []Action) []model.CachetaRoundAction {
	pointsById := make(map[uint64]int, len(roster))
	for _, p := range roster {
		pointsById[p.Id] = p.Points
	}

	records := make([]model.CachetaRoundAction, 0, len(actions))
	for _, action := range actions {
		before := pointsById[action.CachetaPlayerId]
		after := ApplyAction(before, action.Kind, action.Outcome)
		records = append(records, model.CachetaRoundAction{
			CachetaPlayerId: action.CachetaPlayerId,
			Kind:            action.Kind,
			Outcome:         action.Outcome,
			PointsBefore:    before,
			PointsAfter:     after,
		})
		pointsById[action.CachetaPlayerId] = after
	}
	return records
}

// ResolveRebuyPoints computes the balance a depleted player re-enters with:
// the minimum strictly-positive balance among the other players, so a late
// rebuy is pegged to the worst-off active player, or the fixed fallback
// when nobody else holds points.
func ResolveRebuyPoints(target model.CachetaPlayer, roster []model.CachetaPlayer) (int, error) {
	if target.Points != 0 {
		return 0, ErrRebuyNotEligible
	}

	lowest := 0
	for _, p := range roster {
		if p.Id == target.Id || p.Points <= 0 {
			continue
		}
		if lowest == 0 || p.Points < lowest {
			lowest = p.Points
		}
	}

	if lowest == 0 {
		return RebuyFallbackPoints, nil
	}
	return lowest, nil
}

// ComputePayout derives the pot when the caller did not supply one: every
// seat and every rebuy paid one entry fee, minus one fee when a player is
// exempt ("livramento").
func ComputePayout(entryFee float64, roster []model.CachetaPlayer, exempt bool) float64 {
	entries := len(roster)
	for _, p := range roster {
		entries += p.Rebuys
	}

	payout := entryFee * float64(entries)
	if exempt {
		payout -= entryFee
	}
	return payout
}
