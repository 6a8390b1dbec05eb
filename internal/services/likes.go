package services

import (
	"context"
	"errors"

	"newsroom/internal/models"
	"newsroom/internal/pagination"

	"gorm.io/gorm"
)

type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// LikePage is a page of likes on one post plus whether the viewer has liked
// that post at all.
type LikePage struct {
	Page[models.Like]
	LikedByViewer bool
}

func (s *LikeService) ListOnPost(ctx context.Context, postID uint, p pagination.Params, viewerID uint) (LikePage, error) {
	post, err := requirePost(ctx, s.db, postID)
	if err != nil {
		return LikePage{}, err
	}

	page, err := listPage[models.Like](ctx, s.db, p, listQuery{
		resource: ResourceLike,
		filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("post_id = ?", post.ID)
		},
		preloads: []string{"User"},
	})
	if err != nil {
		return LikePage{}, err
	}

	out := LikePage{Page: page}
	if viewerID != 0 {
		var n int64
		err := s.db.WithContext(ctx).Model(&models.Like{}).
			Where("post_id = ? AND user_id = ?", post.ID, viewerID).
			Count(&n).Error
		if err != nil {
			return LikePage{}, storageFault(err, "find viewer like")
		}
		out.LikedByViewer = n > 0
	}
	return out, nil
}

func (s *LikeService) ListMine(ctx context.Context, viewerID uint, p pagination.Params) (Page[models.Like], error) {
	user, err := requireUserByID(ctx, s.db, viewerID)
	if err != nil {
		return Page[models.Like]{}, err
	}
	return s.listByUser(ctx, user.ID, p)
}

func (s *LikeService) ListByUsername(ctx context.Context, slug string, p pagination.Params) (Page[models.Like], error) {
	user, err := requireUserByUsername(ctx, s.db, slug)
	if err != nil {
		return Page[models.Like]{}, err
	}
	return s.listByUser(ctx, user.ID, p)
}

func (s *LikeService) listByUser(ctx context.Context, userID uint, p pagination.Params) (Page[models.Like], error) {
	return listPage[models.Like](ctx, s.db, p, listQuery{
		resource: ResourceLike,
		filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("user_id = ?", userID)
		},
		preloads: []string{"User", "Post"},
	})
}

// Create inserts the like directly. The (post_id, user_id) unique index
// decides the race between two concurrent requests; the loser gets CONFLICT.
func (s *LikeService) Create(ctx context.Context, viewerID, postID uint) (*models.Like, error) {
	user, err := requireUserByID(ctx, s.db, viewerID)
	if err != nil {
		return nil, err
	}
	post, err := requirePost(ctx, s.db, postID)
	if err != nil {
		return nil, err
	}

	like := models.Like{PostID: post.ID, UserID: user.ID}
	if err := s.db.WithContext(ctx).Omit("Post", "User").Create(&like).Error; err != nil {
		switch {
		case isDuplicateKey(err):
			return nil, conflict(ResourceLike)
		case isForeignKeyViolation(err):
			return nil, parentNotFound(ResourcePost)
		}
		return nil, storageFault(err, "create like")
	}
	return &like, nil
}

// Delete removes the viewer's like on a post.
func (s *LikeService) Delete(ctx context.Context, viewerID, postID uint) error {
	post, err := requirePost(ctx, s.db, postID)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", post.ID, viewerID).
		Delete(&models.Like{})
	if res.Error != nil {
		return storageFault(res.Error, "delete like")
	}
	if res.RowsAffected == 0 {
		return notFound(ResourceLike)
	}
	return nil
}

func (s *LikeService) DeleteByID(ctx context.Context, viewerID, likeID uint) error {
	var like models.Like
	if err := s.db.WithContext(ctx).First(&like, likeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(ResourceLike)
		}
		return storageFault(err, "find like")
	}
	if like.UserID != viewerID {
		return unauthorized(ResourceLike)
	}
	if err := s.db.WithContext(ctx).Delete(&like).Error; err != nil {
		return storageFault(err, "delete like")
	}
	return nil
}
