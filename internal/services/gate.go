package services

import (
	"context"
	"errors"

	"newsroom/internal/models"

	"gorm.io/gorm"
)

// The gate runs before any count/fetch so that a list against an unknown
// parent reports NOT_FOUND(parent) instead of an empty collection.

func requirePost(ctx context.Context, db *gorm.DB, postID uint) (*models.Post, error) {
	var post models.Post
	if err := db.WithContext(ctx).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, parentNotFound(ResourcePost)
		}
		return nil, storageFault(err, "find post")
	}
	return &post, nil
}

func requireUserByID(ctx context.Context, db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, parentNotFound(ResourceUser)
		}
		return nil, storageFault(err, "find user")
	}
	return &user, nil
}

func requireUserByUsername(ctx context.Context, db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, parentNotFound(ResourceUser)
		}
		return nil, storageFault(err, "find user by username")
	}
	return &user, nil
}
