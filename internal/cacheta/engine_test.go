package cacheta

import (
	"testing"

	"github.com/cardnight-club/cardnight-backend/internal/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcomePtr(o model.ActionOutcome) *model.ActionOutcome {
	return &o
}

func TestApplyAction(t *testing.T) {
	tests := []struct {
		name    string
		points  int
		kind    model.ActionKind
		outcome *model.ActionOutcome
		want    int
	}{
		{"passed costs one", 10, model.ActionPassed, nil, 9},
		{"went and lost costs two", 10, model.ActionWent, outcomePtr(model.OutcomeLost), 8},
		{"went and won is free", 10, model.ActionWent, outcomePtr(model.OutcomeWon), 10},
		{"passed floors at zero", 0, model.ActionPassed, nil, 0},
		{"lost floors at zero from one", 1, model.ActionWent, outcomePtr(model.OutcomeLost), 0},
		{"lost floors at zero from zero", 0, model.ActionWent, outcomePtr(model.OutcomeLost), 0},
		{"won at zero stays at zero", 0, model.ActionWent, outcomePtr(model.OutcomeWon), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyAction(tt.points, tt.kind, tt.outcome))
		})
	}
}

func TestApplyActionNeverNegative(t *testing.T) {
	for points := 0; points <= 12; points++ {
		assert.GreaterOrEqual(t, ApplyAction(points, model.ActionPassed, nil), 0)
		assert.GreaterOrEqual(t, ApplyAction(points, model.ActionWent, outcomePtr(model.OutcomeLost)), 0)
		assert.Equal(t, points, ApplyAction(points, model.ActionWent, outcomePtr(model.OutcomeWon)))
	}
}

func TestValidateCreation(t *testing.T) {
	tests := []struct {
		name      string
		playerIds []uint64
		entryFee  float64
		wantErr   error
	}{
		{"valid table", []uint64{1, 2, 3}, 20, nil},
		{"two players is enough", []uint64{1, 2}, 0.5, nil},
		{"single player", []uint64{1}, 20, ErrInvalidRoster},
		{"no players", nil, 20, ErrInvalidRoster},
		{"duplicated ids collapse", []uint64{7, 7, 7}, 20, ErrInvalidRoster},
		{"zero fee", []uint64{1, 2}, 0, ErrInvalidEntryFee},
		{"negative fee", []uint64{1, 2}, -5, ErrInvalidEntryFee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreation(tt.playerIds, tt.entryFee)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func testRoster() []model.CachetaPlayer {
	return []model.CachetaPlayer{
		{Id: 1, GameId: 1, PlayerId: 11, Points: 10},
		{Id: 2, GameId: 1, PlayerId: 12, Points: 10},
		{Id: 3, GameId: 1, PlayerId: 13, Points: 10},
	}
}

func TestValidateActions(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		wantErr error
	}{
		{
			"valid full round",
			[]Action{
				{CachetaPlayerId: 1, Kind: model.ActionWent, Outcome: outcomePtr(model.OutcomeWon)},
				{CachetaPlayerId: 2, Kind: model.ActionWent, Outcome: outcomePtr(model.OutcomeLost)},
				{CachetaPlayerId: 3, Kind: model.ActionPassed},
			},
			nil,
		},
		{
			"omitting roster members is legal",
			[]Action{
				{CachetaPlayerId: 1, Kind: model.ActionPassed},
			},
			nil,
		},
		{
			"no winner at all is legal",
			[]Action{
				{CachetaPlayerId: 1, Kind: model.ActionPassed},
				{CachetaPlayerId: 2, Kind: model.ActionWent, Outcome: outcomePtr(model.OutcomeLost)},
			},
			nil,
		},
		{
			"empty batch",
			nil,
			ErrEmptyActionList,
		},
		{
			"player from another game",
			[]Action{
				{CachetaPlayerId: 99, Kind: model.ActionPassed},
			},
			ErrUnknownPlayer,
		},
		{
			"went without outcome",
			[]Action{
				{CachetaPlayerId: 1, Kind: model.ActionWent},
			},
			ErrMissingOutcome,
		},
		{
			"two winners",
			[]Action{
				{CachetaPlayerId: 1, Kind: model.ActionWent, Outcome: outcomePtr(model.OutcomeWon)},
				{CachetaPlayerId: 3, Kind: model.ActionPassed},
				{CachetaPlayerId: 2, Kind: model.ActionWent, Outcome: outcomePtr(model.OutcomeWon)},
			},
			ErrMultipleWinners,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateActions(testRoster(), tt.actions)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateActionsEmptyBeatsUnknownPlayer(t *testing.T) {
	// Checks run in order: an empty batch is reported as empty even
	// though it trivially has no unknown players.
	err := ValidateActions(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyActionList)
}

func TestValidateActionsMembershipBeatsMissingOutcome(t *testing.T) {
	// Membership covers the whole batch before outcomes are inspected:
	// an earlier entry missing its outcome must not mask a later entry
	// from another game.
	err := ValidateActions(testRoster(), []Action{
		{CachetaPlayerId: 1, Kind: model.ActionWent},
		{CachetaPlayerId: 99, Kind: model.ActionPassed},
	})
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestBuildRoundActionsSnapshots(t *testing.T) {
	roster := testRoster()
	actions := []Action{
		{CachetaPlayerId: 1, Kind: model.ActionWent, Outcome: outcomePtr(model.OutcomeWon)},
		{CachetaPlayerId: 2, Kind: model.ActionWent, Outcome: outcomePtr(model.OutcomeLost)},
		{CachetaPlayerId: 3, Kind: model.ActionPassed},
	}

	records := BuildRoundActions(roster, actions)
	require.Len(t, records, 3)

	assert.Equal(t, 10, records[0].PointsBefore)
	assert.Equal(t, 10, records[0].PointsAfter)
	assert.Equal(t, 10, records[1].PointsBefore)
	assert.Equal(t, 8, records[1].PointsAfter)
	assert.Equal(t, 10, records[2].PointsBefore)
	assert.Equal(t, 9, records[2].PointsAfter)
}

func TestBuildRoundActionsChainsDuplicateEntries(t *testing.T) {
	roster := testRoster()
	actions := []Action{
		{CachetaPlayerId: 2, Kind: model.ActionPassed},
		{CachetaPlayerId: 2, Kind: model.ActionPassed},
	}

	records := BuildRoundActions(roster, actions)
	require.Len(t, records, 2)

	assert.Equal(t, 10, records[0].PointsBefore)
	assert.Equal(t, 9, records[0].PointsAfter)
	assert.Equal(t, 9, records[1].PointsBefore)
	assert.Equal(t, 8, records[1].PointsAfter, "a player listed twice pays for both actions")
}

func TestBuildRoundActionsKeepsSubmissionOrder(t *testing.T) {
	roster := testRoster()
	actions := []Action{
		{CachetaPlayerId: 3, Kind: model.ActionPassed},
		{CachetaPlayerId: 1, Kind: model.ActionPassed},
	}

	records := BuildRoundActions(roster, actions)
	require.Len(t, records, 2)
	assert.Equal(t, uint64(3), records[0].CachetaPlayerId)
	assert.Equal(t, uint64(1), records[1].CachetaPlayerId)
}

func TestResolveRebuyPoints(t *testing.T) {
	tests := []struct {
		name    string
		target  model.CachetaPlayer
		roster  []model.CachetaPlayer
		want    int
		wantErr error
	}{
		{
			"pegged to the worst-off active player",
			model.CachetaPlayer{Id: 2, Points: 0},
			[]model.CachetaPlayer{
				{Id: 1, Points: 10},
				{Id: 2, Points: 0},
				{Id: 3, Points: 9},
			},
			9,
			nil,
		},
		{
			"own balance is ignored",
			model.CachetaPlayer{Id: 2, Points: 0},
			[]model.CachetaPlayer{
				{Id: 1, Points: 4},
				{Id: 2, Points: 0},
			},
			4,
			nil,
		},
		{
			"fallback when everyone else is depleted",
			model.CachetaPlayer{Id: 2, Points: 0},
			[]model.CachetaPlayer{
				{Id: 1, Points: 0},
				{Id: 2, Points: 0},
				{Id: 3, Points: 0},
			},
			RebuyFallbackPoints,
			nil,
		},
		{
			"positive balance is not eligible",
			model.CachetaPlayer{Id: 2, Points: 3},
			[]model.CachetaPlayer{
				{Id: 1, Points: 10},
				{Id: 2, Points: 3},
			},
			0,
			ErrRebuyNotEligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRebuyPoints(tt.target, tt.roster)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputePayout(t *testing.T) {
	roster := []model.CachetaPlayer{
		{Id: 1, Rebuys: 0},
		{Id: 2, Rebuys: 1},
		{Id: 3, Rebuys: 0},
		{Id: 4, Rebuys: 0},
	}

	// Four seats plus one rebuy at 20 each.
	assert.Equal(t, 100.0, ComputePayout(20, roster, false))

	// One exempt player waives their initial buy-in.
	assert.Equal(t, 80.0, ComputePayout(20, roster, true))
}

func TestComputePayoutNoRebuys(t *testing.T) {
	roster := []model.CachetaPlayer{
		{Id: 1},
		{Id: 2},
	}
	assert.Equal(t, 30.0, ComputePayout(15, roster, false))
}

// Friday-night walkthrough from the table rules: three players at 10, one
// round of WENT/WON, WENT/LOST, PASSED, then a depleted player rebuys.
func TestRoundThenRebuyScenario(t *testing.T) {
	roster := testRoster()

	actions := []Action{
		{CachetaPlayerId: 1, Kind: model.ActionWent, Outcome: outcomePtr(model.OutcomeWon)},
		{CachetaPlayerId: 2, Kind: model.ActionWent, Outcome: outcomePtr(model.OutcomeLost)},
		{CachetaPlayerId: 3, Kind: model.ActionPassed},
	}
	require.NoError(t, ValidateActions(roster, actions))

	records := BuildRoundActions(roster, actions)
	for i, record := range records {
		roster[i].Points = record.PointsAfter
	}
	assert.Equal(t, 10, roster[0].Points)
	assert.Equal(t, 8, roster[1].Points)
	assert.Equal(t, 9, roster[2].Points)

	// Grind player 2 down to zero.
	for roster[1].Points > 0 {
		roster[1].Points = ApplyAction(roster[1].Points, model.ActionWent, outcomePtr(model.OutcomeLost))
	}

	points, err := ResolveRebuyPoints(roster[1], roster)
	require.NoError(t, err)
	assert.Equal(t, 9, points, "rebuy pegs to the minimum positive balance among the others")
}
