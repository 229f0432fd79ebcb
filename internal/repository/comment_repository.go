package repository

import (
	"context"

	"github.com/noteduco342/storyline-backend/internal/models"
	"gorm.io/gorm"
)

const commentEntryQuery = `
	SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, u.username, u.avatar
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create appends the comment and returns it joined with the author identity.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.CommentEntry, error) {
	var entry models.CommentEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		res := tx.Raw(commentEntryQuery+" WHERE c.id = ?", comment.ID).Scan(&entry)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, translateError(err, "create comment")
	}
	return &entry, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]models.CommentEntry, error) {
	var rows []models.CommentEntry
	err := r.db.WithContext(ctx).
		Raw(commentEntryQuery+" WHERE c.post_id = ? ORDER BY c.created_at DESC, c.id DESC", postID).
		Scan(&rows).Error
	return rows, translateError(err, "list comments")
}
