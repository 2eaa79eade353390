package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlindLevelsLadder(t *testing.T) {
	levels := BlindLevels()
	require.NotEmpty(t, levels)

	assert.Equal(t, 1, levels[0].Level)
	assert.Equal(t, 0.25, levels[0].Small)
	assert.Equal(t, 0.50, levels[0].Big)

	for i, level := range levels {
		assert.Equal(t, i+1, level.Level)
		assert.Less(t, level.Small, level.Big, "small blind must stay below the big blind")
		if i > 0 {
			assert.GreaterOrEqual(t, level.Small, levels[i-1].Small)
			assert.GreaterOrEqual(t, level.Big, levels[i-1].Big)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "0,25", FormatBRL(0.25))
	assert.Equal(t, "10,00", FormatBRL(10))
	assert.Equal(t, "1,50", FormatBRL(1.5))
}

func TestParseBRL(t *testing.T) {
	value, err := ParseBRL("2,50")
	require.NoError(t, err)
	assert.Equal(t, 2.5, value)

	_, err = ParseBRL("abc")
	assert.Error(t, err)
}
