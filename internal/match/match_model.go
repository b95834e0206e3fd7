package match

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kishlayk/pitchside/internal/user"
)

type MatchStatus string

const (
	StatusMatchLive      MatchStatus = "live"
	StatusMatchCompleted MatchStatus = "completed"
)

// WicketType covers the dismissals recordable from the scoring screen.
type WicketType string

const (
	WicketBowled  WicketType = "bowled"
	WicketCaught  WicketType = "caught"
	WicketLBW     WicketType = "lbw"
	WicketRunOut  WicketType = "run_out"
	WicketStumped WicketType = "stumped"
)

func (w WicketType) Valid() bool {
	switch w {
	case WicketBowled, WicketCaught, WicketLBW, WicketRunOut, WicketStumped:
		return true
	}
	return false
}

// ExtraType for runs not scored off the bat. A ball carries at most one extra.
type ExtraType string

const (
	ExtraNone   ExtraType = ""
	ExtraWide   ExtraType = "wide"
	ExtraNoBall ExtraType = "no_ball"
	ExtraBye    ExtraType = "bye"
	ExtraLegBye ExtraType = "leg_bye"
)

func (e ExtraType) Valid() bool {
	switch e {
	case ExtraNone, ExtraWide, ExtraNoBall, ExtraBye, ExtraLegBye:
		return true
	}
	return false
}

// PenaltyRuns is the automatic run carried by the extra: 1 for wides and
// no-balls, 0 otherwise. Bye and leg-bye runs travel in the ball's Runs field
// and credit the team, not the batsman.
func (e ExtraType) PenaltyRuns() int {
	if e == ExtraWide || e == ExtraNoBall {
		return 1
	}
	return 0
}

type PlayerRole string

const (
	RoleBatsman      PlayerRole = "batsman"
	RoleBowler       PlayerRole = "bowler"
	RoleAllRounder   PlayerRole = "all_rounder"
	RoleWicketKeeper PlayerRole = "wicket_keeper"
)

func (r PlayerRole) Valid() bool {
	switch r {
	case RoleBatsman, RoleBowler, RoleAllRounder, RoleWicketKeeper:
		return true
	}
	return false
}

// Player is a roster entry. Role only affects display, never scoring rules.
type Player struct {
	Name string     `json:"name"`
	Role PlayerRole `json:"role"`
}

// PlayerList is an ordered roster stored as a JSONB column. Order matters for
// team A: it is the batting order.
type PlayerList []Player

func (p PlayerList) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PlayerList) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("PlayerList: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, p)
}

// Names returns the roster names in order.
func (p PlayerList) Names() []string {
	names := make([]string, 0, len(p))
	for _, pl := range p {
		names = append(names, pl.Name)
	}
	return names
}

// Contains reports whether a player with the given name is on the roster.
func (p PlayerList) Contains(name string) bool {
	for _, pl := range p {
		if pl.Name == name {
			return true
		}
	}
	return false
}

// Match is a single game instance. Title, teams and rosters are immutable
// after creation; the cached aggregate fields track the live score and the
// ball log is the source of truth for everything derived.
type Match struct {
	gorm.Model
	UserID uint      `json:"user_id" gorm:"index;not null"`
	User   user.User `json:"-" gorm:"foreignKey:UserID"`

	Title        string     `json:"title" gorm:"not null"`
	TeamA        string     `json:"team_a" gorm:"not null"`
	TeamB        string     `json:"team_b" gorm:"not null"`
	ScheduledAt  time.Time  `json:"scheduled_at"`
	Location     string     `json:"location,omitempty"`
	TotalOvers   int        `json:"total_overs" gorm:"not null"`
	TossWinner   string     `json:"toss_winner,omitempty"`
	TossDecision string     `json:"toss_decision,omitempty"` // "bat" or "bowl"
	RosterA      PlayerList `json:"roster_a" gorm:"type:jsonb"`
	RosterB      PlayerList `json:"roster_b" gorm:"type:jsonb"`

	Status MatchStatus `json:"status" gorm:"index;default:'live'"`

	// Cached aggregates, derivable from the ball log.
	CurrentRuns    int `json:"current_runs" gorm:"default:0"`
	CurrentWickets int `json:"current_wickets" gorm:"default:0"`
	CurrentOvers   int `json:"current_overs" gorm:"default:0"`
	CurrentBalls   int `json:"current_balls" gorm:"default:0"`
	CurrentExtras  int `json:"current_extras" gorm:"default:0"`
}

// CachedScore returns the aggregate fields as a Score value.
func (m *Match) CachedScore() Score {
	return Score{
		Runs:    m.CurrentRuns,
		Wickets: m.CurrentWickets,
		Overs:   m.CurrentOvers,
		Balls:   m.CurrentBalls,
		Extras:  m.CurrentExtras,
	}
}

// Ball is an immutable append-only event recording one delivery. Once written
// it is never mutated or removed; derived statistics recompute from the full
// sequence.
type Ball struct {
	gorm.Model
	MatchID uint `json:"match_id" gorm:"index;not null;uniqueIndex:idx_match_client_key"`

	Over       int    `json:"over" gorm:"not null"`         // 1-based
	BallInOver int    `json:"ball" gorm:"not null"`         // 1..6
	Runs       int    `json:"runs" gorm:"default:0"`        // bat (or bye/leg-bye) runs, 0-6
	Batsman    string `json:"batsman" gorm:"not null"`      // striker at time of delivery
	NonStriker string `json:"non_striker,omitempty"`
	Bowler     string `json:"bowler" gorm:"not null"`

	IsWicket   bool       `json:"is_wicket" gorm:"default:false"`
	WicketType WicketType `json:"wicket_type,omitempty"`

	Extra     ExtraType `json:"extra,omitempty"`
	ExtraRuns int       `json:"extra_runs" gorm:"default:0"` // wide/no-ball penalty only

	Timestamp time.Time `json:"timestamp" gorm:"not null"`
	ClientKey string    `json:"client_key" gorm:"not null;uniqueIndex:idx_match_client_key"` // dedup key for at-least-once appends
}

// Score is the cached aggregate for an innings. Balls stays in [0,6); Overs
// increments each time Balls wraps.
type Score struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Overs   int `json:"overs"`
	Balls   int `json:"balls"`
	Extras  int `json:"extras"`
}

// OversFloat returns overs as a real fraction for rate arithmetic, so
// 4 overs 3 balls is 4.5, not the display form "4.3".
func (s Score) OversFloat() float64 {
	return float64(s.Overs) + float64(s.Balls)/6.0
}
