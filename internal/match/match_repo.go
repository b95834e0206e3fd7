package match

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository is the durable owner of matches and their ball logs.
type MatchRepository interface {
	CreateMatch(m *Match) error
	GetUserMatch(userID, matchID uint) (*Match, error)
	GetUserMatches(userID uint, status string, page, pageSize int) ([]Match, int64, error)

	// AppendBall is additive: replaying an append with the same client key is
	// a no-op, so concurrent or retried commits never overwrite each other.
	AppendBall(matchID uint, ball *Ball) error
	GetBalls(matchID uint) ([]Ball, error)
	UpdateAggregates(matchID uint, score Score) error
	UpdateMatchStatus(matchID uint, status MatchStatus) error

	WithTransaction(txFunc func(MatchRepository) error) error
}

// GormMatchRepository implements MatchRepository using GORM.
type GormMatchRepository struct {
	db *gorm.DB
}

func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// WithTransaction runs txFunc against a transactional copy of the repository.
func (r *GormMatchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormMatchRepository{db: tx}
	if err := txFunc(txRepo); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *GormMatchRepository) CreateMatch(m *Match) error {
	return r.db.Create(m).Error
}

// GetUserMatch retrieves a match by id scoped to its owning user. Returns
// (nil, nil) when no such match exists.
func (r *GormMatchRepository) GetUserMatch(userID, matchID uint) (*Match, error) {
	var m Match
	result := r.db.Where("user_id = ?", userID).First(&m, matchID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &m, nil
}

// GetUserMatches retrieves the user's matches with pagination, newest first.
func (r *GormMatchRepository) GetUserMatches(userID uint, status string, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := query.Order("created_at desc").
		Offset(offset).Limit(pageSize).
		Find(&matches)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return matches, total, nil
}

// AppendBall inserts a ball event. The (match_id, client_key) unique index
// plus ON CONFLICT DO NOTHING makes redelivery of the same logical event safe.
func (r *GormMatchRepository) AppendBall(matchID uint, ball *Ball) error {
	ball.MatchID = matchID
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}, {Name: "client_key"}},
		DoNothing: true,
	}).Create(ball).Error
}

// GetBalls loads the full ball log for a match in commit order.
func (r *GormMatchRepository) GetBalls(matchID uint) ([]Ball, error) {
	var balls []Ball
	err := r.db.Where("match_id = ?", matchID).
		Order("id asc").
		Find(&balls).Error
	if err != nil {
		return nil, err
	}
	return balls, nil
}

// UpdateAggregates upserts the cached score fields on the match document.
func (r *GormMatchRepository) UpdateAggregates(matchID uint, score Score) error {
	return r.db.Model(&Match{}).
		Where("id = ?", matchID).
		Updates(map[string]interface{}{
			"current_runs":    score.Runs,
			"current_wickets": score.Wickets,
			"current_overs":   score.Overs,
			"current_balls":   score.Balls,
			"current_extras":  score.Extras,
		}).Error
}

func (r *GormMatchRepository) UpdateMatchStatus(matchID uint, status MatchStatus) error {
	return r.db.Model(&Match{}).Where("id = ?", matchID).Update("status", status).Error
}
