package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishlayk/pitchside/internal/match"
)

func ball(over, inOver int, batsman, bowler string, runs int, extra match.ExtraType, wicket match.WicketType) match.Ball {
	return match.Ball{
		Over:       over,
		BallInOver: inOver,
		Batsman:    batsman,
		Bowler:     bowler,
		Runs:       runs,
		Extra:      extra,
		ExtraRuns:  extra.PenaltyRuns(),
		IsWicket:   wicket != "",
		WicketType: wicket,
	}
}

func TestAggregateBattingFigures(t *testing.T) {
	log := []match.Ball{
		ball(1, 1, "Alice", "Dan", 4, match.ExtraNone, ""),
		ball(1, 2, "Alice", "Dan", 6, match.ExtraNone, ""),
		ball(1, 3, "Alice", "Dan", 1, match.ExtraNone, ""),
		ball(1, 4, "Bob", "Dan", 0, match.ExtraNone, match.WicketBowled),
	}

	card := Aggregate(log)

	require.Contains(t, card.Batting, "Alice")
	alice := card.Batting["Alice"]
	assert.Equal(t, 11, alice.Runs)
	assert.Equal(t, 3, alice.Balls)
	assert.Equal(t, 1, alice.Fours)
	assert.Equal(t, 1, alice.Sixes)
	assert.False(t, alice.IsOut)

	bob := card.Batting["Bob"]
	assert.Equal(t, 0, bob.Runs)
	assert.Equal(t, 1, bob.Balls)
	assert.True(t, bob.IsOut)

	assert.Equal(t, []string{"Alice", "Bob"}, card.BattingOrder)
}

func TestAggregateBallsFacedExcludeWidesAndNoBalls(t *testing.T) {
	log := []match.Ball{
		ball(1, 1, "Alice", "Dan", 0, match.ExtraWide, ""),
		ball(1, 1, "Alice", "Dan", 0, match.ExtraNoBall, ""),
		ball(1, 2, "Alice", "Dan", 0, match.ExtraBye, ""),
		ball(1, 3, "Alice", "Dan", 2, match.ExtraNone, ""),
	}

	card := Aggregate(log)
	alice := card.Batting["Alice"]

	assert.Equal(t, 2, alice.Balls, "byes count as faced, wides and no-balls do not")
	assert.Equal(t, 2, alice.Runs)
}

func TestAggregateByesDoNotCreditBatsman(t *testing.T) {
	log := []match.Ball{
		ball(1, 1, "Alice", "Dan", 4, match.ExtraBye, ""),
		ball(1, 2, "Alice", "Dan", 4, match.ExtraLegBye, ""),
		ball(1, 3, "Alice", "Dan", 4, match.ExtraNone, ""),
	}

	card := Aggregate(log)
	alice := card.Batting["Alice"]

	assert.Equal(t, 4, alice.Runs)
	assert.Equal(t, 1, alice.Fours, "a four of byes is not a batsman boundary")

	dan := card.Bowling["Dan"]
	assert.Equal(t, 12, dan.Runs, "all runs off the over are conceded by the bowler")
}

func TestAggregateStrikeRate(t *testing.T) {
	log := make([]match.Ball, 0, 10)
	for i := 0; i < 10; i++ {
		log = append(log, ball(1+i/6, 1+i%6, "Alice", "Dan", 2, match.ExtraNone, ""))
	}

	card := Aggregate(log)
	assert.InDelta(t, 200.0, card.Batting["Alice"].StrikeRate, 0.001)
}

func TestAggregateEconomy(t *testing.T) {
	// 24 legal balls, one run each: 24 runs off 4 overs.
	log := make([]match.Ball, 0, 24)
	for i := 0; i < 24; i++ {
		log = append(log, ball(1+i/6, 1+i%6, "Alice", "Dan", 1, match.ExtraNone, ""))
	}

	card := Aggregate(log)
	dan := card.Bowling["Dan"]
	assert.Equal(t, 24, dan.Balls)
	assert.InDelta(t, 6.0, dan.Economy, 0.001)
}

func TestAggregateBowlerWicketsAndWides(t *testing.T) {
	log := []match.Ball{
		ball(1, 1, "Alice", "Dan", 0, match.ExtraWide, ""),
		ball(1, 1, "Alice", "Dan", 0, match.ExtraNone, match.WicketCaught),
		ball(1, 2, "Bob", "Dan", 1, match.ExtraNoBall, ""),
	}

	card := Aggregate(log)
	dan := card.Bowling["Dan"]

	assert.Equal(t, 1, dan.Wickets)
	assert.Equal(t, 2, dan.Balls, "wides are not bowler balls, no-balls are")
	assert.Equal(t, 3, dan.Runs, "wide and no-ball penalties count against the bowler")
}

func TestAggregateMaidens(t *testing.T) {
	log := []match.Ball{
		// Over 1 by Dan: all dots.
		ball(1, 1, "Alice", "Dan", 0, match.ExtraNone, ""),
		ball(1, 2, "Alice", "Dan", 0, match.ExtraNone, ""),
		ball(1, 3, "Alice", "Dan", 0, match.ExtraNone, ""),
		ball(1, 4, "Alice", "Dan", 0, match.ExtraNone, ""),
		ball(1, 5, "Alice", "Dan", 0, match.ExtraNone, ""),
		ball(1, 6, "Alice", "Dan", 0, match.ExtraNone, ""),
		// Over 2 by Erin: one run conceded.
		ball(2, 1, "Bob", "Erin", 0, match.ExtraNone, ""),
		ball(2, 2, "Bob", "Erin", 1, match.ExtraNone, ""),
	}

	card := Aggregate(log)

	assert.Equal(t, 1, card.Bowling["Dan"].Maidens)
	assert.Equal(t, 0, card.Bowling["Erin"].Maidens)
	assert.Equal(t, []string{"Dan", "Erin"}, card.BowlingOrder)
}

func TestAggregateWideSpoilsMaiden(t *testing.T) {
	log := []match.Ball{
		ball(1, 1, "Alice", "Dan", 0, match.ExtraNone, ""),
		ball(1, 2, "Alice", "Dan", 0, match.ExtraWide, ""),
		ball(1, 2, "Alice", "Dan", 0, match.ExtraNone, ""),
		ball(1, 3, "Alice", "Dan", 0, match.ExtraNone, ""),
		ball(1, 4, "Alice", "Dan", 0, match.ExtraNone, ""),
		ball(1, 5, "Alice", "Dan", 0, match.ExtraNone, ""),
		ball(1, 6, "Alice", "Dan", 0, match.ExtraNone, ""),
	}

	card := Aggregate(log)
	assert.Equal(t, 0, card.Bowling["Dan"].Maidens)
}

func TestAggregateIsIdempotent(t *testing.T) {
	log := []match.Ball{
		ball(1, 1, "Alice", "Dan", 4, match.ExtraNone, ""),
		ball(1, 2, "Alice", "Dan", 0, match.ExtraWide, ""),
		ball(1, 2, "Alice", "Dan", 0, match.ExtraNone, match.WicketLBW),
		ball(1, 3, "Carol", "Dan", 6, match.ExtraNone, ""),
	}

	first := Aggregate(log)
	second := Aggregate(log)

	assert.Equal(t, first.BattingOrder, second.BattingOrder)
	assert.Equal(t, first.BowlingOrder, second.BowlingOrder)
	for name, stats := range first.Batting {
		assert.Equal(t, *stats, *second.Batting[name])
	}
	for name, stats := range first.Bowling {
		assert.Equal(t, *stats, *second.Bowling[name])
	}
}

func TestAggregateEmptyLog(t *testing.T) {
	card := Aggregate(nil)
	assert.Empty(t, card.Batting)
	assert.Empty(t, card.Bowling)
	assert.Empty(t, card.BattingOrder)
	assert.Empty(t, card.BowlingOrder)
}
