package scoring

import (
	"errors"
	"fmt"

	"github.com/kishlayk/pitchside/internal/match"
)

// ErrEmptyDraft is returned when a draft with no runs, no extra and no wicket
// is committed. A dot ball is not empty: its runs are explicitly set to 0.
var ErrEmptyDraft = errors.New("ball draft is empty: set runs, an extra or a wicket before committing")

// Draft accumulates the attributes of the next ball before it is committed.
// It never touches the repository.
type Draft struct {
	runs       *int
	extra      match.ExtraType
	wicket     bool
	wicketType match.WicketType
}

// SetRuns sets bat runs for the pending ball, replacing any previous value.
// Five is not a selectable value.
func (d *Draft) SetRuns(n int) error {
	switch n {
	case 0, 1, 2, 3, 4, 6:
		v := n
		d.runs = &v
		return nil
	}
	return fmt.Errorf("invalid runs value %d: must be one of 0,1,2,3,4,6", n)
}

// ToggleExtra sets the single extra for the pending ball. Selecting a new kind
// replaces the previous one; selecting the already-set kind clears it. The
// wide/no-ball penalty run is derived, not stored.
func (d *Draft) ToggleExtra(kind match.ExtraType) error {
	if kind == match.ExtraNone || !kind.Valid() {
		return fmt.Errorf("invalid extra %q", kind)
	}
	if d.extra == kind {
		d.extra = match.ExtraNone
		return nil
	}
	d.extra = kind
	return nil
}

// MarkWicket records a dismissal on the pending ball. Runs are not cleared: a
// batsman can be run out off a scored ball.
func (d *Draft) MarkWicket(t match.WicketType) error {
	if !t.Valid() {
		return fmt.Errorf("invalid wicket type %q", t)
	}
	d.wicket = true
	d.wicketType = t
	return nil
}

// Reset clears the draft to defaults after a ball is committed.
func (d *Draft) Reset() {
	d.runs = nil
	d.extra = match.ExtraNone
	d.wicket = false
	d.wicketType = ""
}

// Runs returns the bat runs of the pending ball, 0 when unset.
func (d *Draft) Runs() int {
	if d.runs == nil {
		return 0
	}
	return *d.runs
}

func (d *Draft) Extra() match.ExtraType { return d.extra }

// ExtraRuns derives the automatic penalty run: 1 for a wide or no-ball.
func (d *Draft) ExtraRuns() int { return d.extra.PenaltyRuns() }

func (d *Draft) IsWicket() bool { return d.wicket }

func (d *Draft) WicketType() match.WicketType { return d.wicketType }

// Empty reports whether nothing at all was recorded on the draft.
func (d *Draft) Empty() bool {
	return d.runs == nil && d.extra == match.ExtraNone && !d.wicket
}
