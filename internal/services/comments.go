package services

import (
	"context"
	"errors"
	"strings"

	"newsroom/internal/models"
	"newsroom/internal/pagination"

	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// ListOnPost returns the comments of one post, newest first.
func (s *CommentService) ListOnPost(ctx context.Context, postID uint, p pagination.Params) (Page[models.Comment], error) {
	post, err := requirePost(ctx, s.db, postID)
	if err != nil {
		return Page[models.Comment]{}, err
	}
	return listPage[models.Comment](ctx, s.db, p, listQuery{
		resource: ResourceComment,
		filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("post_id = ?", post.ID)
		},
		preloads: []string{"User"},
	})
}

// ListAll returns every comment on the site.
func (s *CommentService) ListAll(ctx context.Context, p pagination.Params) (Page[models.Comment], error) {
	return listPage[models.Comment](ctx, s.db, p, listQuery{
		resource: ResourceComment,
		preloads: []string{"User", "Post"},
	})
}

func (s *CommentService) ListMine(ctx context.Context, viewerID uint, p pagination.Params) (Page[models.Comment], error) {
	user, err := requireUserByID(ctx, s.db, viewerID)
	if err != nil {
		return Page[models.Comment]{}, err
	}
	return s.listByAuthor(ctx, user.ID, p)
}

func (s *CommentService) ListByUsername(ctx context.Context, slug string, p pagination.Params) (Page[models.Comment], error) {
	user, err := requireUserByUsername(ctx, s.db, slug)
	if err != nil {
		return Page[models.Comment]{}, err
	}
	return s.listByAuthor(ctx, user.ID, p)
}

func (s *CommentService) listByAuthor(ctx context.Context, authorID uint, p pagination.Params) (Page[models.Comment], error) {
	return listPage[models.Comment](ctx, s.db, p, listQuery{
		resource: ResourceComment,
		filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("user_id = ?", authorID)
		},
		preloads: []string{"User", "Post"},
	})
}

func (s *CommentService) Create(ctx context.Context, viewerID, postID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidInput(ResourceComment, "content")
	}

	post, err := requirePost(ctx, s.db, postID)
	if err != nil {
		return nil, err
	}
	author, err := requireUserByID(ctx, s.db, viewerID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  author.ID,
		Content: content,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		if isForeignKeyViolation(err) {
			// 文章在校验之后被删除
			return nil, parentNotFound(ResourcePost)
		}
		return nil, storageFault(err, "create comment")
	}
	comment.User = *author
	return &comment, nil
}

// Update edits an owned comment. Content that only differs in surrounding
// whitespace or letter case counts as unchanged and nothing is written.
func (s *CommentService) Update(ctx context.Context, viewerID, commentID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidInput(ResourceComment, "content")
	}

	comment, err := s.owned(ctx, viewerID, commentID)
	if err != nil {
		return nil, err
	}

	if sameContent(comment.Content, content) {
		return nil, noChanges(ResourceComment)
	}

	if err := s.db.WithContext(ctx).Model(comment).Update("content", content).Error; err != nil {
		return nil, storageFault(err, "update comment")
	}
	comment.Content = content
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, viewerID, commentID uint) error {
	comment, err := s.owned(ctx, viewerID, commentID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(comment).Error; err != nil {
		return storageFault(err, "delete comment")
	}
	return nil
}

func (s *CommentService) owned(ctx context.Context, viewerID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).Preload("User").First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(ResourceComment)
		}
		return nil, storageFault(err, "find comment")
	}
	if comment.UserID != viewerID {
		return nil, unauthorized(ResourceComment)
	}
	return &comment, nil
}

func sameContent(current, next string) bool {
	return strings.EqualFold(strings.TrimSpace(current), strings.TrimSpace(next))
}
