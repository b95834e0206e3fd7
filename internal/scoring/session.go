package scoring

// Partnership tracks runs and balls accumulated by the current batting pair
// since the last wicket. Balls exclude wides, matching the legal-delivery rule.
type Partnership struct {
	Runs  int `json:"runs"`
	Balls int `json:"balls"`
}

// Session is the transient in-memory scoring state for a match. It is
// reconstructed from the ball log on load and replaced wholesale by every
// state transition; it is never partially mutated in place.
type Session struct {
	Striker     string      `json:"striker"`
	NonStriker  string      `json:"non_striker"`
	Bowler      string      `json:"bowler"`
	Partnership Partnership `json:"partnership"`
	RunRate     float64     `json:"run_rate"`

	InningsComplete bool   `json:"innings_complete"`
	CompleteReason  string `json:"complete_reason,omitempty"`

	Dismissed []string `json:"-"`
}

func (s Session) isDismissed(name string) bool {
	for _, d := range s.Dismissed {
		if d == name {
			return true
		}
	}
	return false
}
