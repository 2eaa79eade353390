package cacheta

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleProblemMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
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

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			problem := ruleProblem(tt.err)
			assert.Equal(t, tt.wantStatus, problem.Problem.Status)
			assert.Equal(t, tt.wantCode, problem.Problem.Code)
		})
	}
}

func TestRuleProblemKeepsWrappedDetail(t *testing.T) {
	wrapped := fmt.Errorf("%w: cacheta player 42", ErrUnknownPlayer)
	problem := ruleProblem(wrapped)

	assert.Equal(t, http.StatusBadRequest, problem.Problem.Status)
	assert.Equal(t, unknownPlayerError, problem.Problem.Code)
	assert.Contains(t, problem.Problem.Detail, "42")
}

func TestRuleProblemFallsBackToUnexpected(t *testing.T) {
	problem := ruleProblem(fmt.Errorf("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, problem.Problem.Status)
}
