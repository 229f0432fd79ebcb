package repository

import (
	"context"
	"time"

	"github.com/noteduco342/storyline-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record stores a visit. A repeat visit replaces the previous entry's
// timestamp, so each (user, post) pair has a single current entry.
func (r *HistoryRepository) Record(ctx context.Context, userID, postID string, at time.Time) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"read_at"}),
	}).Create(&models.ReadingHistory{
		UserID: userID,
		PostID: postID,
		ReadAt: at,
	}).Error
	return translateError(err, "record visit")
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	var rows []models.HistoryEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.*, h.read_at
		FROM reading_history h
		JOIN posts p ON p.id = h.post_id
		WHERE h.user_id = ? AND p.published = ?
		ORDER BY h.read_at DESC, p.id DESC
		LIMIT ?
	`, userID, true, limit).Scan(&rows).Error
	return rows, translateError(err, "list history")
}

func (r *HistoryRepository) Clear(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.ReadingHistory{})
	return res.RowsAffected, translateError(res.Error, "clear history")
}
