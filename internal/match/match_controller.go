package match

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kishlayk/pitchside/config"
	"github.com/kishlayk/pitchside/internal/middleware"
	"github.com/kishlayk/pitchside/pkg/responses"
)

// MatchController handles match setup and retrieval.
type MatchController struct {
	repo      MatchRepository
	appConfig *config.Config
}

func NewMatchController(repo MatchRepository, appConfig *config.Config) *MatchController {
	return &MatchController{
		repo:      repo,
		appConfig: appConfig,
	}
}

// PlayerRequest mirrors one roster entry in the new-match form.
type PlayerRequest struct {
	Name string     `json:"name" binding:"required,min=1,max=100"`
	Role PlayerRole `json:"role" binding:"required,oneof=batsman bowler all_rounder wicket_keeper"`
}

// CreateMatchRequest defines the payload of the new-match form.
type CreateMatchRequest struct {
	Title        string          `json:"title" binding:"required,min=3,max=200"`
	TeamA        string          `json:"team_a" binding:"required,min=1,max=100"`
	TeamB        string          `json:"team_b" binding:"required,min=1,max=100"`
	ScheduledAt  time.Time       `json:"scheduled_at" binding:"required"`
	Location     string          `json:"location,omitempty" binding:"max=200"`
	TotalOvers   int             `json:"total_overs" binding:"required,min=1,max=50"`
	TossWinner   string          `json:"toss_winner,omitempty"`
	TossDecision string          `json:"toss_decision,omitempty" binding:"omitempty,oneof=bat bowl"`
	RosterA      []PlayerRequest `json:"roster_a" binding:"required,min=2,dive"`
	RosterB      []PlayerRequest `json:"roster_b" binding:"required,min=1,dive"`
}

func rosterFromRequest(players []PlayerRequest) (PlayerList, error) {
	roster := make(PlayerList, 0, len(players))
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate player name %q in roster", p.Name)
		}
		seen[p.Name] = true
		roster = append(roster, Player{Name: p.Name, Role: p.Role})
	}
	return roster, nil
}

// @Summary      Create a match
// @Description  Create a match from the new-match form: teams, rosters, overs
// @Description  and toss. Title, teams and rosters are immutable afterwards.
// @Tags         Matches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        match  body  CreateMatchRequest  true  "Match configuration"
// @Success      201   {object} Match
// @Failure      400   {object} map[string]string
// @Failure      401   {object} map[string]string
// @Router       /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	if req.TossWinner != "" && req.TossWinner != req.TeamA && req.TossWinner != req.TeamB {
		responses.ErrorResponse(c, http.StatusBadRequest, "Toss winner must be one of the two teams")
		return
	}

	rosterA, err := rosterFromRequest(req.RosterA)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	rosterB, err := rosterFromRequest(req.RosterB)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	m := Match{
		UserID:       userID,
		Title:        req.Title,
		TeamA:        req.TeamA,
		TeamB:        req.TeamB,
		ScheduledAt:  req.ScheduledAt,
		Location:     req.Location,
		TotalOvers:   req.TotalOvers,
		TossWinner:   req.TossWinner,
		TossDecision: req.TossDecision,
		RosterA:      rosterA,
		RosterB:      rosterB,
		Status:       StatusMatchLive,
	}

	if err := mc.repo.CreateMatch(&m); err != nil {
		logrus.WithError(err).Error("match creation failed")
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to create match")
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Match created successfully",
		"match":   m,
	})
}

// @Summary      Get a match
// @Description  Retrieve match configuration and the cached live score.
// @Tags         Matches
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  int  true  "Match ID"
// @Success      200   {object} Match
// @Failure      404   {object} map[string]string
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
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

	m, err := mc.repo.GetUserMatch(userID, matchID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to load match")
		return
	}
	if m == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Match not found")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, m)
}

// @Summary      List own matches
// @Tags         Matches
// @Security     BearerAuth
// @Produce      json
// @Param        status     query  string  false  "Filter by status (live, completed)"
// @Param        page       query  int     false  "Page (default 1)"
// @Param        page_size  query  int     false  "Page size (default 10)"
// @Success      200   {array} Match
// @Router       /matches [get]
func (mc *MatchController) GetUserMatches(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	matches, total, err := mc.repo.GetUserMatches(userID, status, page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to load matches")
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, matches, page, pageSize, total)
}

func parseMatchID(c *gin.Context) (uint, error) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid match id")
	}
	return uint(id), nil
}
