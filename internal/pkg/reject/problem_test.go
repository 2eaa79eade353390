package reject

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProblemBuilder(t *testing.T) {
	problem := NewProblem().
		WithTitle("Game not found").
		WithStatus(http.StatusNotFound).
		WithDetail("game not found: 42").
		WithCode("error.cacheta.game-not-found").
		Build()

	assert.Equal(t, "Game not found", problem.Title)
	assert.Equal(t, http.StatusNotFound, problem.Status)
	assert.Equal(t, "game not found: 42", problem.Detail)
	assert.Equal(t, "error.cacheta.game-not-found", problem.Code)
}

func TestCommonProblemStatuses(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, RequestValidationProblem().Status)
	assert.Equal(t, http.StatusBadRequest, RequestParamsProblem().Status)
	assert.Equal(t, http.StatusBadRequest, BodyParseProblem().Status)
	assert.Equal(t, http.StatusInternalServerError, UnexpectedProblem(assert.AnError).Status)
}
