package scoring

import (
	"github.com/kishlayk/pitchside/internal/match"
)

// PlayerStats is one batsman's figures, derived entirely from the ball log.
type PlayerStats struct {
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	IsOut      bool    `json:"is_out"`
	StrikeRate float64 `json:"strike_rate"`
}

// BowlerStats is one bowler's figures, derived entirely from the ball log.
type BowlerStats struct {
	Runs    int     `json:"runs"`
	Balls   int     `json:"balls"`
	Maidens int     `json:"maidens"`
	Wickets int     `json:"wickets"`
	Economy float64 `json:"economy"`
}

// Scorecard is the full set of derived statistics for a match. The order
// slices preserve first appearance in the log so output is deterministic.
type Scorecard struct {
	Batting      map[string]*PlayerStats
	BattingOrder []string
	Bowling      map[string]*BowlerStats
	BowlingOrder []string
}

// Aggregate recomputes every player's batting and bowling figures as a pure
// function of the ball log. Calling it twice on the same log yields identical
// results, and it can be re-run from a freshly loaded log after restart.
func Aggregate(log []match.Ball) Scorecard {
	card := Scorecard{
		Batting: make(map[string]*PlayerStats),
		Bowling: make(map[string]*BowlerStats),
	}

	// (bowler, over) -> runs conceded in that over, for maidens.
	type bowlerOver struct {
		bowler string
		over   int
	}
	overRuns := make(map[bowlerOver]int)
	var overOrder []bowlerOver

	for _, ball := range log {
		bat := card.Batting[ball.Batsman]
		if bat == nil {
			bat = &PlayerStats{}
			card.Batting[ball.Batsman] = bat
			card.BattingOrder = append(card.BattingOrder, ball.Batsman)
		}
		bowl := card.Bowling[ball.Bowler]
		if bowl == nil {
			bowl = &BowlerStats{}
			card.Bowling[ball.Bowler] = bowl
			card.BowlingOrder = append(card.BowlingOrder, ball.Bowler)
		}

		// Balls faced exclude wides and no-balls; byes still count as faced.
		if ball.Extra != match.ExtraWide && ball.Extra != match.ExtraNoBall {
			bat.Balls++
		}

		// Bat-credited runs exclude byes/leg-byes and the penalty run.
		batRuns := ball.Runs
		if ball.Extra == match.ExtraBye || ball.Extra == match.ExtraLegBye {
			batRuns = 0
		}
		bat.Runs += batRuns
		if batRuns == 4 {
			bat.Fours++
		}
		if batRuns == 6 {
			bat.Sixes++
		}
		if ball.IsWicket {
			bat.IsOut = true
		}

		// Bowler balls exclude wides only; no-balls count toward over progression.
		if ball.Extra != match.ExtraWide {
			bowl.Balls++
		}
		conceded := ball.Runs + ball.ExtraRuns
		bowl.Runs += conceded
		if ball.IsWicket {
			bowl.Wickets++
		}

		key := bowlerOver{bowler: ball.Bowler, over: ball.Over}
		if _, seen := overRuns[key]; !seen {
			overOrder = append(overOrder, key)
		}
		overRuns[key] += conceded
	}

	for _, key := range overOrder {
		if overRuns[key] == 0 {
			card.Bowling[key.bowler].Maidens++
		}
	}

	for _, name := range card.BattingOrder {
		bat := card.Batting[name]
		if bat.Balls > 0 {
			bat.StrikeRate = round2(float64(bat.Runs) / float64(bat.Balls) * 100)
		}
	}
	for _, name := range card.BowlingOrder {
		bowl := card.Bowling[name]
		if bowl.Balls > 0 {
			bowl.Economy = round2(float64(bowl.Runs) / float64(bowl.Balls) * 6)
		}
	}

	return card
}
