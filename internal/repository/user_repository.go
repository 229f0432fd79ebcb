package repository

import (
	"context"

	"github.com/noteduco342/storyline-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error, "create user")
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateError(err, "find user "+id)
	}
	return &user, nil
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&n).Error
	return n > 0, translateError(err, "check user")
}

// UpdateProfile saves the user. When renamed is set, the author name stored on
// the user's posts is rewritten in the same transaction.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User, renamed bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		if !renamed {
			return nil
		}
		return tx.Model(&models.Post{}).
			Where("author_id = ?", user.ID).
			Update("author_name", user.Username).Error
	})
	return translateError(err, "update user "+user.ID)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role models.Role) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return translateError(res.Error, "update role")
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "update role "+id)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&users).Error
	return users, translateError(err, "list users")
}

// ListAuthors returns users who may publish, most followed first.
func (r *UserRepository) ListAuthors(ctx context.Context) ([]models.AuthorEntry, error) {
	var authors []models.AuthorEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, u.username, u.avatar, u.bio, u.role,
			(SELECT COUNT(*) FROM posts p WHERE p.author_id = u.id AND p.published = ?) AS story_count,
			(SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id) AS follower_count
		FROM users u
		WHERE u.role IN ?
		ORDER BY follower_count DESC, u.username ASC
	`, true, []string{string(models.RoleAuthor), string(models.RoleAdmin)}).Scan(&authors).Error
	return authors, translateError(err, "list authors")
}

// Delete removes the user together with their posts, follow edges and every
// engagement row that references either, in one transaction.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []string
		if err := tx.Model(&models.Post{}).Where("author_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if err := deletePostDependents(tx, postIDs); err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := deleteUserEngagement(tx, id); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err, "delete user "+id)
}
