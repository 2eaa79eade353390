package cacheta

import (
	"testing"

	"github.com/cardnight-club/cardnight-backend/internal/pkg/model"
	"github.com/cardnight-club/cardnight-backend/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestToActions(t *testing.T) {
	actions, ok := toActions([]RoundActionRequest{
		{CachetaPlayerId: 1, Kind: "WENT", Outcome: strPtr("WON")},
		{CachetaPlayerId: 2, Kind: "WENT", Outcome: strPtr("LOST")},
		{CachetaPlayerId: 3, Kind: "PASSED"},
	})

	require.True(t, ok)
	require.Len(t, actions, 3)
	assert.Equal(t, model.ActionWent, actions[0].Kind)
	assert.Equal(t, model.OutcomeWon, *actions[0].Outcome)
	assert.Equal(t, model.ActionPassed, actions[2].Kind)
	assert.Nil(t, actions[2].Outcome)
}

func TestToActionsRejectsUnknownVocabulary(t *testing.T) {
	_, ok := toActions([]RoundActionRequest{
		{CachetaPlayerId: 1, Kind: "FOLDED"},
	})
	assert.False(t, ok)

	_, ok = toActions([]RoundActionRequest{
		{CachetaPlayerId: 1, Kind: "WENT", Outcome: strPtr("DRAW")},
	})
	assert.False(t, ok)
}

func TestCheckNextPageToken(t *testing.T) {
	page := utils.PageRequest{Size: 10, Token: 0, Offset: 0}

	next := checkNextPageToken(page, 25)
	require.NotNil(t, next)
	assert.Equal(t, int64(1), *next)

	assert.Nil(t, checkNextPageToken(page, 10))
	assert.Nil(t, checkNextPageToken(page, 0))
}
