package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishlayk/pitchside/internal/match"
)

func TestDraftSetRuns(t *testing.T) {
	testcases := []struct {
		name    string
		runs    int
		wantErr bool
	}{
		{name: "dot ball", runs: 0},
		{name: "single", runs: 1},
		{name: "boundary four", runs: 4},
		{name: "six", runs: 6},
		{name: "five rejected", runs: 5, wantErr: true},
		{name: "negative rejected", runs: -1, wantErr: true},
		{name: "seven rejected", runs: 7, wantErr: true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			d := &Draft{}
			err := d.SetRuns(tc.runs)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, d.Empty())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.runs, d.Runs())
			assert.False(t, d.Empty())
		})
	}
}

func TestDraftSetRunsReplacesPrevious(t *testing.T) {
	d := &Draft{}
	require.NoError(t, d.SetRuns(4))
	require.NoError(t, d.SetRuns(1))
	assert.Equal(t, 1, d.Runs())
}

func TestDraftToggleExtra(t *testing.T) {
	d := &Draft{}

	require.NoError(t, d.ToggleExtra(match.ExtraWide))
	assert.Equal(t, match.ExtraWide, d.Extra())
	assert.Equal(t, 1, d.ExtraRuns())

	// Selecting a different kind replaces the current one.
	require.NoError(t, d.ToggleExtra(match.ExtraBye))
	assert.Equal(t, match.ExtraBye, d.Extra())
	assert.Equal(t, 0, d.ExtraRuns())

	// Selecting the same kind again clears it.
	require.NoError(t, d.ToggleExtra(match.ExtraBye))
	assert.Equal(t, match.ExtraNone, d.Extra())
	assert.True(t, d.Empty())
}

func TestDraftToggleExtraRejectsInvalid(t *testing.T) {
	d := &Draft{}
	assert.Error(t, d.ToggleExtra(match.ExtraNone))
	assert.Error(t, d.ToggleExtra(match.ExtraType("overthrow")))
}

func TestDraftPenaltyRuns(t *testing.T) {
	testcases := []struct {
		extra   match.ExtraType
		penalty int
	}{
		{extra: match.ExtraWide, penalty: 1},
		{extra: match.ExtraNoBall, penalty: 1},
		{extra: match.ExtraBye, penalty: 0},
		{extra: match.ExtraLegBye, penalty: 0},
	}

	for _, tc := range testcases {
		t.Run(string(tc.extra), func(t *testing.T) {
			d := &Draft{}
			require.NoError(t, d.ToggleExtra(tc.extra))
			assert.Equal(t, tc.penalty, d.ExtraRuns())
		})
	}
}

func TestDraftWicketKeepsRuns(t *testing.T) {
	d := &Draft{}
	require.NoError(t, d.SetRuns(2))
	require.NoError(t, d.MarkWicket(match.WicketRunOut))

	assert.True(t, d.IsWicket())
	assert.Equal(t, match.WicketRunOut, d.WicketType())
	assert.Equal(t, 2, d.Runs())
}

func TestDraftMarkWicketRejectsInvalidType(t *testing.T) {
	d := &Draft{}
	assert.Error(t, d.MarkWicket(match.WicketType("retired")))
	assert.True(t, d.Empty())
}

func TestDraftEmptyVersusDotBall(t *testing.T) {
	empty := &Draft{}
	assert.True(t, empty.Empty())

	dot := &Draft{}
	require.NoError(t, dot.SetRuns(0))
	assert.False(t, dot.Empty(), "an explicit dot ball is a recordable delivery")
}

func TestDraftReset(t *testing.T) {
	d := &Draft{}
	require.NoError(t, d.SetRuns(6))
	require.NoError(t, d.ToggleExtra(match.ExtraNoBall))
	require.NoError(t, d.MarkWicket(match.WicketCaught))

	d.Reset()

	assert.True(t, d.Empty())
	assert.Equal(t, 0, d.Runs())
	assert.Equal(t, match.ExtraNone, d.Extra())
	assert.False(t, d.IsWicket())
}
