package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerListHelpers(t *testing.T) {
	roster := PlayerList{
		{Name: "Alice", Role: RoleBatsman},
		{Name: "Bob", Role: RoleWicketKeeper},
	}

	assert.Equal(t, []string{"Alice", "Bob"}, roster.Names())
	assert.True(t, roster.Contains("Bob"))
	assert.False(t, roster.Contains("Carol"))
}

func TestExtraTypePenaltyRuns(t *testing.T) {
	assert.Equal(t, 1, ExtraWide.PenaltyRuns())
	assert.Equal(t, 1, ExtraNoBall.PenaltyRuns())
	assert.Equal(t, 0, ExtraBye.PenaltyRuns())
	assert.Equal(t, 0, ExtraLegBye.PenaltyRuns())
	assert.Equal(t, 0, ExtraNone.PenaltyRuns())
}

func TestScoreOversFloat(t *testing.T) {
	assert.InDelta(t, 0.0, Score{}.OversFloat(), 0.001)
	assert.InDelta(t, 4.5, Score{Overs: 4, Balls: 3}.OversFloat(), 0.001)
	assert.InDelta(t, 2.0, Score{Overs: 2, Balls: 0}.OversFloat(), 0.001)
}

func TestMatchCachedScore(t *testing.T) {
	m := &Match{
		CurrentRuns:    87,
		CurrentWickets: 3,
		CurrentOvers:   9,
		CurrentBalls:   4,
		CurrentExtras:  6,
	}

	assert.Equal(t, Score{Runs: 87, Wickets: 3, Overs: 9, Balls: 4, Extras: 6}, m.CachedScore())
}
