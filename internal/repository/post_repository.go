package repository

import (
	"context"
	"strings"

	"github.com/noteduco342/storyline-backend/internal/models"
	"gorm.io/gorm"
)

const newestFirst = "created_at DESC, id DESC"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with wildcards in s escaped.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return translateError(r.db.WithContext(ctx).Create(post).Error, "create post")
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, translateError(err, "find post "+id)
	}
	return &post, nil
}

func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return translateError(r.db.WithContext(ctx).Save(post).Error, "update post")
}

// Delete removes the post and its likes, bookmarks, history rows and comments.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deletePostDependents(tx, []string{id}); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err, "delete post "+id)
}

func (r *PostRepository) ListPublished(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	tx := r.db.WithContext(ctx).Where("published = ?", true).Order(newestFirst)
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&posts).Error
	return posts, translateError(err, "list posts")
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string, includeDrafts bool) ([]models.Post, error) {
	var posts []models.Post
	tx := r.db.WithContext(ctx).Where("author_id = ?", authorID)
	if !includeDrafts {
		tx = tx.Where("published = ?", true)
	}
	err := tx.Order(newestFirst).Find(&posts).Error
	return posts, translateError(err, "list author posts")
}

func (r *PostRepository) CountPublishedByAuthor(ctx context.Context, authorID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ? AND published = ?", authorID, true).
		Count(&n).Error
	return n, translateError(err, "count posts")
}

// Search matches published posts by case-insensitive substring over title,
// content and author name, optionally restricted to one category.
func (r *PostRepository) Search(ctx context.Context, q PostQuery) ([]models.Post, error) {
	var posts []models.Post
	tx := r.db.WithContext(ctx).Where("published = ?", true)
	if q.Text != "" {
		pattern := containsPattern(q.Text)
		tx = tx.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\' OR LOWER(author_name) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	err := tx.Order(newestFirst).Find(&posts).Error
	return posts, translateError(err, "search posts")
}

// Categories lists the distinct non-empty categories of published posts.
func (r *PostRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("published = ? AND category <> ''", true).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	return categories, translateError(err, "list categories")
}

// ListFeed joins posts with the follow edges of userID. Nothing is materialised;
// every call reads the current graph.
func (r *PostRepository) ListFeed(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	var posts []models.Post
	tx := r.db.WithContext(ctx).
		Table("posts AS p").
		Select("p.*").
		Joins("JOIN follows f ON f.following_id = p.author_id").
		Where("f.follower_id = ? AND p.published = ?", userID, true).
		Order("p.created_at DESC, p.id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&posts).Error
	return posts, translateError(err, "load feed")
}
