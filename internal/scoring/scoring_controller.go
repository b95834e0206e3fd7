package scoring

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kishlayk/pitchside/config"
	"github.com/kishlayk/pitchside/internal/match"
	"github.com/kishlayk/pitchside/internal/middleware"
	"github.com/kishlayk/pitchside/pkg/responses"
	"github.com/kishlayk/pitchside/pkg/retry"
)

// ScoringController handles live ball recording and derived statistics.
type ScoringController struct {
	repo      match.MatchRepository
	appConfig *config.Config
	locks     *matchLocks
}

func NewScoringController(repo match.MatchRepository, appConfig *config.Config) *ScoringController {
	return &ScoringController{
		repo:      repo,
		appConfig: appConfig,
		locks:     newMatchLocks(),
	}
}

// WicketRequest carries the dismissal on a recorded ball.
type WicketRequest struct {
	Type match.WicketType `json:"type" binding:"required,oneof=bowled caught lbw run_out stumped"`
}

// RecordBallRequest is the commit payload for one delivery. Runs, extra and
// wicket are all optional individually, but a completely empty draft is
// rejected before any repository call.
type RecordBallRequest struct {
	Runs      *int             `json:"runs,omitempty" binding:"omitempty,oneof=0 1 2 3 4 6"`
	Extra     match.ExtraType  `json:"extra,omitempty" binding:"omitempty,oneof=wide no_ball bye leg_bye"`
	Wicket    *WicketRequest   `json:"wicket,omitempty"`
	Bowler    string           `json:"bowler,omitempty"`     // new bowler taking over, if any
	ClientKey string           `json:"client_key,omitempty"` // idempotency key; generated when absent
}

// RecordBallResponse reports the committed event, the successor state and
// whether the append reached durable storage.
type RecordBallResponse struct {
	Ball    match.Ball  `json:"ball"`
	Score   match.Score `json:"score"`
	Session Session     `json:"session"`
	Synced  bool        `json:"synced"`
}

// LiveStateResponse is the replayed state used when the scoring screen is
// (re)entered.
type LiveStateResponse struct {
	Match   *match.Match `json:"match"`
	Score   match.Score  `json:"score"`
	Session Session      `json:"session"`
}

// BattingCardEntry and BowlingCardEntry shape the scorecard response.
type BattingCardEntry struct {
	Name string `json:"name"`
	PlayerStats
}

type BowlingCardEntry struct {
	Name string `json:"name"`
	BowlerStats
}

type ScorecardResponse struct {
	Batting []BattingCardEntry `json:"batting"`
	Bowling []BowlingCardEntry `json:"bowling"`
}

// @Summary      Record a ball
// @Description  Commit one delivery: updates the score, rotates strike,
// @Description  handles wickets and appends the immutable event to the match
// @Description  log. Commits for one match are serialized.
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "Match ID"
// @Param        ball  body  RecordBallRequest  true  "Ball draft"
// @Success      201   {object} RecordBallResponse
// @Failure      400   {object} map[string]string
// @Failure      404   {object} map[string]string
// @Failure      409   {object} map[string]string
// @Failure      503   {object} map[string]string "Ball accepted locally but not persisted"
// @Router       /matches/{id}/balls [post]
func (sc *ScoringController) RecordBall(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID, err := parseMatchID(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var req RecordBallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	unlock := sc.locks.lock(matchID)
	defer unlock()

	m, err := sc.repo.GetUserMatch(userID, matchID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to load match")
		return
	}
	if m == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Match not found")
		return
	}
	if m.Status == match.StatusMatchCompleted {
		responses.ErrorResponse(c, http.StatusConflict, "Match is already completed")
		return
	}

	log, err := sc.repo.GetBalls(matchID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to load ball log")
		return
	}

	engine := NewEngine(m)
	score, session := engine.Replay(log)
	if session.InningsComplete {
		responses.ErrorResponse(c, http.StatusConflict, "Innings is complete: "+session.CompleteReason)
		return
	}

	if req.Bowler != "" {
		if !m.RosterB.Contains(req.Bowler) {
			responses.ErrorResponse(c, http.StatusBadRequest, "Bowler is not on the bowling side roster")
			return
		}
		session.Bowler = req.Bowler
	}

	draft := &Draft{}
	if req.Runs != nil {
		if err := draft.SetRuns(*req.Runs); err != nil {
			responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Extra != match.ExtraNone {
		if err := draft.ToggleExtra(req.Extra); err != nil {
			responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Wicket != nil {
		if err := draft.MarkWicket(req.Wicket.Type); err != nil {
			responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	clientKey := req.ClientKey
	if clientKey == "" {
		clientKey = uuid.NewString()
	}

	ball, newScore, newSession, err := engine.Commit(score, session, draft, time.Now(), clientKey)
	if err != nil {
		if errors.Is(err, ErrInningsComplete) {
			responses.ErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// Append + aggregate upsert are atomic; retried as a unit so partial
	// persistence is never visible.
	backoff := time.Duration(sc.appConfig.Scoring.PersistBackoffMs) * time.Millisecond
	persistErr := retry.Do(sc.appConfig.Scoring.PersistRetries, backoff, func() error {
		return sc.repo.WithTransaction(func(txRepo match.MatchRepository) error {
			if err := txRepo.AppendBall(matchID, &ball); err != nil {
				return err
			}
			if err := txRepo.UpdateAggregates(matchID, newScore); err != nil {
				return err
			}
			if newSession.InningsComplete {
				return txRepo.UpdateMatchStatus(matchID, match.StatusMatchCompleted)
			}
			return nil
		})
	})

	if persistErr != nil {
		// Not durable: the log is the source of truth, so the ball is simply
		// not recorded; the client must resend with the same client key.
		logrus.WithError(persistErr).WithFields(logrus.Fields{
			"match_id":   matchID,
			"client_key": clientKey,
		}).Error("ball append failed after retries")
		c.JSON(http.StatusServiceUnavailable, RecordBallResponse{
			Ball:    ball,
			Score:   newScore,
			Session: newSession,
			Synced:  false,
		})
		return
	}

	c.JSON(http.StatusCreated, RecordBallResponse{
		Ball:    ball,
		Score:   newScore,
		Session: newSession,
		Synced:  true,
	})
}

// @Summary      Live state
// @Description  Replay the ball log into the current score and session, for
// @Description  re-entering the scoring screen.
// @Tags         Scoring
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  int  true  "Match ID"
// @Success      200   {object} LiveStateResponse
// @Failure      404   {object} map[string]string
// @Router       /matches/{id}/live [get]
func (sc *ScoringController) GetLiveState(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID, err := parseMatchID(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	m, err := sc.repo.GetUserMatch(userID, matchID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to load match")
		return
	}
	if m == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Match not found")
		return
	}

	log, err := sc.repo.GetBalls(matchID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to load ball log")
		return
	}

	engine := NewEngine(m)
	score, session := engine.Replay(log)

	responses.SuccessResponse(c, http.StatusOK, LiveStateResponse{
		Match:   m,
		Score:   score,
		Session: session,
	})
}

// @Summary      Scorecard
// @Description  Derived batting and bowling figures, recomputed from the full
// @Description  ball log.
// @Tags         Scoring
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  int  true  "Match ID"
// @Success      200   {object} ScorecardResponse
// @Failure      404   {object} map[string]string
// @Router       /matches/{id}/scorecard [get]
func (sc *ScoringController) GetScorecard(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID, err := parseMatchID(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	m, err := sc.repo.GetUserMatch(userID, matchID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to load match")
		return
	}
	if m == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Match not found")
		return
	}

	log, err := sc.repo.GetBalls(matchID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to load ball log")
		return
	}

	card := Aggregate(log)

	resp := ScorecardResponse{
		Batting: make([]BattingCardEntry, 0, len(card.BattingOrder)),
		Bowling: make([]BowlingCardEntry, 0, len(card.BowlingOrder)),
	}
	for _, name := range card.BattingOrder {
		resp.Batting = append(resp.Batting, BattingCardEntry{Name: name, PlayerStats: *card.Batting[name]})
	}
	for _, name := range card.BowlingOrder {
		resp.Bowling = append(resp.Bowling, BowlingCardEntry{Name: name, BowlerStats: *card.Bowling[name]})
	}

	responses.SuccessResponse(c, http.StatusOK, resp)
}

func parseMatchID(c *gin.Context) (uint, error) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid match id")
	}
	return uint(id), nil
}
