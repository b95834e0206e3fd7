package scoring

import (
	"errors"
	"math"
	"time"

	"github.com/kishlayk/pitchside/internal/match"
)

const wicketsPerInnings = 10

// Terminal reasons reported on the session when the innings can no longer
// accept deliveries.
const (
	ReasonOversExhausted   = "overs_exhausted"
	ReasonAllOut           = "all_out"
	ReasonBatsmenExhausted = "batsmen_exhausted"
)

// ErrInningsComplete is returned when a commit is attempted after a terminal
// condition was reached.
var ErrInningsComplete = errors.New("innings is complete; no further balls can be recorded")

// Engine owns the ball-commit state transition for one match. It is pure:
// every commit consumes the current Score and Session and returns new values
// together with the immutable Ball event to persist.
type Engine struct {
	battingOrder match.PlayerList
	bowlingSide  match.PlayerList
	totalOvers   int
}

func NewEngine(m *match.Match) *Engine {
	return &Engine{
		battingOrder: m.RosterA,
		bowlingSide:  m.RosterB,
		totalOvers:   m.TotalOvers,
	}
}

// InitialSession is the session state before any ball is bowled: the first two
// of the batting order at the crease, the first listed bowler on.
func (e *Engine) InitialSession() Session {
	s := Session{}
	if len(e.battingOrder) > 0 {
		s.Striker = e.battingOrder[0].Name
	}
	if len(e.battingOrder) > 1 {
		s.NonStriker = e.battingOrder[1].Name
	}
	if len(e.bowlingSide) > 0 {
		s.Bowler = e.bowlingSide[0].Name
	}
	return s
}

// Commit turns a completed draft into the next Ball event plus the successor
// Score and Session. The draft is reset on success.
func (e *Engine) Commit(score match.Score, session Session, draft *Draft, now time.Time, clientKey string) (match.Ball, match.Score, Session, error) {
	if session.InningsComplete {
		return match.Ball{}, score, session, ErrInningsComplete
	}
	if draft.Empty() {
		return match.Ball{}, score, session, ErrEmptyDraft
	}

	ball := match.Ball{
		Over:       score.Overs + 1,
		BallInOver: score.Balls + 1,
		Runs:       draft.Runs(),
		Batsman:    session.Striker,
		NonStriker: session.NonStriker,
		Bowler:     session.Bowler,
		IsWicket:   draft.IsWicket(),
		WicketType: draft.WicketType(),
		Extra:      draft.Extra(),
		ExtraRuns:  draft.ExtraRuns(),
		Timestamp:  now,
		ClientKey:  clientKey,
	}

	nextScore, nextSession := e.apply(score, session, ball)
	draft.Reset()
	return ball, nextScore, nextSession, nil
}

// Replay folds the commit transition over a loaded ball log to rebuild the
// live Score and Session after a restart. The log is the sole authority.
func (e *Engine) Replay(log []match.Ball) (match.Score, Session) {
	score := match.Score{}
	session := e.InitialSession()
	for _, ball := range log {
		score, session = e.apply(score, session, ball)
	}
	return score, session
}

// apply is the single state transition shared by Commit and Replay.
func (e *Engine) apply(score match.Score, session Session, ball match.Ball) (match.Score, Session) {
	next := session
	next.Dismissed = append([]string(nil), session.Dismissed...)
	next.Bowler = ball.Bowler

	totalRuns := ball.Runs + ball.ExtraRuns
	score.Runs += totalRuns
	score.Extras += ball.ExtraRuns

	// Wides do not consume a legal delivery.
	legal := ball.Extra != match.ExtraWide
	if legal {
		score.Balls++
		if score.Balls >= 6 {
			score.Overs++
			score.Balls = 0
		}
	}

	if ball.IsWicket {
		score.Wickets++
		next.Dismissed = append(next.Dismissed, ball.Batsman)
		next.Partnership = Partnership{}

		if incoming, ok := e.nextBatsman(next); ok {
			next.Striker = incoming
		} else {
			next.Striker = ""
			next.InningsComplete = true
			next.CompleteReason = ReasonBatsmenExhausted
		}
	} else {
		next.Partnership.Runs += ball.Runs
		if legal {
			next.Partnership.Balls++
		}
		if ball.Runs%2 == 1 {
			next.Striker, next.NonStriker = next.NonStriker, next.Striker
		}
	}

	if score.Wickets >= wicketsPerInnings && !next.InningsComplete {
		next.InningsComplete = true
		next.CompleteReason = ReasonAllOut
	}
	if e.totalOvers > 0 && score.Overs >= e.totalOvers && !next.InningsComplete {
		next.InningsComplete = true
		next.CompleteReason = ReasonOversExhausted
	}

	next.RunRate = runRate(score)
	return score, next
}

// nextBatsman picks the next player in batting order who is not at the crease
// and not already out.
func (e *Engine) nextBatsman(s Session) (string, bool) {
	for _, p := range e.battingOrder {
		if p.Name == s.Striker || p.Name == s.NonStriker {
			continue
		}
		if s.isDismissed(p.Name) {
			continue
		}
		return p.Name, true
	}
	return "", false
}

func runRate(score match.Score) float64 {
	overs := score.OversFloat()
	if overs == 0 {
		return 0
	}
	return round2(float64(score.Runs) / overs)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
