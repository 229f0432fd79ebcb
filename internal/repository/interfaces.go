package repository

import (
	"context"
	"time"

	"github.com/noteduco342/storyline-backend/internal/models"
)

// UserRepositoryInterface defines the contract for user storage operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateProfile(ctx context.Context, user *models.User, renamed bool) error
	UpdateRole(ctx context.Context, id string, role models.Role) error
	List(ctx context.Context) ([]models.User, error)
	ListAuthors(ctx context.Context) ([]models.AuthorEntry, error)
	Delete(ctx context.Context, id string) error
}

// PostQuery filters published posts. Text must already be lower-cased.
type PostQuery struct {
	Text     string
	Category string
	Limit    int
}

// PostRepositoryInterface defines the contract for post storage and post-derived reads
type PostRepositoryInterface interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	ListPublished(ctx context.Context, limit int) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string, includeDrafts bool) ([]models.Post, error)
	CountPublishedByAuthor(ctx context.Context, authorID string) (int64, error)
	Search(ctx context.Context, q PostQuery) ([]models.Post, error)
	Categories(ctx context.Context) ([]string, error)
	ListFeed(ctx context.Context, userID string, limit int) ([]models.Post, error)
}

// FollowRepositoryInterface defines the contract for the follow graph
type FollowRepositoryInterface interface {
	Toggle(ctx context.Context, followerID, followingID string, at time.Time) (bool, error)
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	ListFollowing(ctx context.Context, userID string) ([]models.FollowEntry, error)
	ListFollowers(ctx context.Context, userID string) ([]models.FollowEntry, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}

// LikeRepositoryInterface defines the contract for like records
type LikeRepositoryInterface interface {
	Toggle(ctx context.Context, postID, userID string, at time.Time) (bool, error)
	Exists(ctx context.Context, postID, userID string) (bool, error)
	CountByPost(ctx context.Context, postID string) (int64, error)
	CountReceivedByAuthor(ctx context.Context, authorID string) (int64, error)
}

// BookmarkRepositoryInterface defines the contract for bookmark records
type BookmarkRepositoryInterface interface {
	Toggle(ctx context.Context, userID, postID string, at time.Time) (bool, error)
	Exists(ctx context.Context, userID, postID string) (bool, error)
	CountByPost(ctx context.Context, postID string) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.BookmarkEntry, error)
}

// HistoryRepositoryInterface defines the contract for reading history
type HistoryRepositoryInterface interface {
	Record(ctx context.Context, userID, postID string, at time.Time) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error)
	Clear(ctx context.Context, userID string) (int64, error)
}

// CommentRepositoryInterface defines the contract for the comment log
type CommentRepositoryInterface interface {
	Create(ctx context.Context, comment *models.Comment) (*models.CommentEntry, error)
	ListByPost(ctx context.Context, postID string) ([]models.CommentEntry, error)
}
