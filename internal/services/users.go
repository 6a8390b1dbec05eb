package services

import (
	"context"
	"errors"
	"strings"

	"newsroom/internal/models"
	"newsroom/internal/pagination"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Profile 用户主页信息
type Profile struct {
	User         models.User
	PostCount    int64
	CommentCount int64
	LikeCount    int64
}

// List returns users ordered by display name.
func (s *UserService) List(ctx context.Context, p pagination.Params) (Page[models.User], error) {
	return listPage[models.User](ctx, s.db, p, listQuery{
		resource: ResourceUser,
		order:    []string{"name ASC", "id ASC"},
	})
}

func (s *UserService) Get(ctx context.Context, userID uint) (*Profile, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(ResourceUser)
		}
		return nil, storageFault(err, "find user")
	}

	profile := &Profile{User: user}
	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.Post{}, &profile.PostCount},
		{&models.Comment{}, &profile.CommentCount},
		{&models.Like{}, &profile.LikeCount},
	}
	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.model).Where("user_id = ?", user.ID).Count(c.dst).Error; err != nil {
			return nil, storageFault(err, "count user activity")
		}
	}
	return profile, nil
}

// Me is Get for the authenticated viewer.
func (s *UserService) Me(ctx context.Context, viewerID uint) (*Profile, error) {
	return s.Get(ctx, viewerID)
}

func (s *UserService) UpdateAbout(ctx context.Context, viewerID uint, about string) (*models.User, error) {
	about = strings.TrimSpace(about)
	if about == "" {
		return nil, invalidInput(ResourceUser, "about")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, viewerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(ResourceUser)
		}
		return nil, storageFault(err, "find user")
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("about", about).Error; err != nil {
		return nil, storageFault(err, "update about")
	}
	user.About = about
	return &user, nil
}
