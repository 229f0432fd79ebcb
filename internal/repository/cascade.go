package repository

import (
	"github.com/noteduco342/storyline-backend/internal/models"
	"gorm.io/gorm"
)

// deletePostDependents removes every engagement row that references one of postIDs.
func deletePostDependents(tx *gorm.DB, postIDs []string) error {
	if len(postIDs) == 0 {
		return nil
	}
	for _, model := range []interface{}{
		&models.Like{},
		&models.Bookmark{},
		&models.ReadingHistory{},
		&models.Comment{},
	} {
		if err := tx.Where("post_id IN ?", postIDs).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// deleteUserEngagement removes the rows a user authored outside their own posts.
func deleteUserEngagement(tx *gorm.DB, userID string) error {
	if err := tx.Where("follower_id = ? OR following_id = ?", userID, userID).Delete(&models.Follow{}).Error; err != nil {
		return err
	}
	for _, model := range []interface{}{
		&models.Like{},
		&models.Bookmark{},
		&models.ReadingHistory{},
		&models.Comment{},
	} {
		if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
