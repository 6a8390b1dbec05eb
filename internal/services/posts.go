package services

import (
	"context"
	"errors"
	"strings"

	"newsroom/internal/models"
	"newsroom/internal/pagination"

	"gorm.io/gorm"
)

type PostService struct {
	db          *gorm.DB
	maxComments int
}

// NewPostService caps the comments embedded in a post detail at maxComments.
// Values < 1 fall back to pagination.DefaultLimit.
func NewPostService(db *gorm.DB, maxComments int) *PostService {
	if maxComments < 1 {
		maxComments = pagination.DefaultLimit
	}
	return &PostService{db: db, maxComments: maxComments}
}

// PostDetail is a single post together with its newest comments. The full
// list is paged through /comments/on/:postId; Post.CommentCount has the total.
type PostDetail struct {
	Post     models.Post
	Comments []models.Comment
}

// List returns every post, newest first. viewerID 0 means anonymous.
func (s *PostService) List(ctx context.Context, p pagination.Params, viewerID uint) (Page[models.Post], error) {
	page, err := listPage[models.Post](ctx, s.db, p, listQuery{
		resource: ResourcePost,
		preloads: []string{"User"},
	})
	if err != nil {
		return page, err
	}
	if err := s.fillPostStats(ctx, page.Items, viewerID); err != nil {
		return Page[models.Post]{}, err
	}
	return page, nil
}

// ListMine returns the viewer's own posts.
func (s *PostService) ListMine(ctx context.Context, viewerID uint, p pagination.Params) (Page[models.Post], error) {
	user, err := requireUserByID(ctx, s.db, viewerID)
	if err != nil {
		return Page[models.Post]{}, err
	}
	return s.listByAuthor(ctx, user.ID, p, viewerID)
}

// ListByUsername returns the posts of the user whose username is slug.
func (s *PostService) ListByUsername(ctx context.Context, slug string, p pagination.Params, viewerID uint) (Page[models.Post], error) {
	user, err := requireUserByUsername(ctx, s.db, slug)
	if err != nil {
		return Page[models.Post]{}, err
	}
	return s.listByAuthor(ctx, user.ID, p, viewerID)
}

func (s *PostService) listByAuthor(ctx context.Context, authorID uint, p pagination.Params, viewerID uint) (Page[models.Post], error) {
	page, err := listPage[models.Post](ctx, s.db, p, listQuery{
		resource: ResourcePost,
		filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("user_id = ?", authorID)
		},
		preloads: []string{"User"},
	})
	if err != nil {
		return page, err
	}
	if err := s.fillPostStats(ctx, page.Items, viewerID); err != nil {
		return Page[models.Post]{}, err
	}
	return page, nil
}

// Get 文章详情，包含作者、点赞数、评论列表
func (s *PostService) Get(ctx context.Context, postID uint, viewerID uint) (*PostDetail, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("User").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(ResourcePost)
		}
		return nil, storageFault(err, "find post")
	}

	posts := []models.Post{post}
	if err := s.fillPostStats(ctx, posts, viewerID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := s.db.WithContext(ctx).Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at DESC").Order("id DESC").
		Limit(s.maxComments).
		Find(&comments).Error
	if err != nil {
		return nil, storageFault(err, "fetch post comments")
	}

	return &PostDetail{Post: posts[0], Comments: comments}, nil
}

func (s *PostService) Create(ctx context.Context, viewerID uint, title, content string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalidInput(ResourcePost, "title")
	}

	author, err := requireUserByID(ctx, s.db, viewerID)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		UserID:  author.ID,
		Title:   title,
		Content: content,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, storageFault(err, "create post")
	}
	post.User = *author
	return &post, nil
}

// Delete removes an owned post with its likes and comments in one transaction.
func (s *PostService) Delete(ctx context.Context, viewerID uint, postID uint) error {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(ResourcePost)
		}
		return storageFault(err, "find post")
	}

	if post.UserID != viewerID {
		return unauthorized(ResourcePost)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return storageFault(err, "delete post")
	}
	return nil
}

// fillPostStats 批量填充点赞数、评论数以及当前用户是否已点赞
func (s *PostService) fillPostStats(ctx context.Context, posts []models.Post, viewerID uint) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}

	var likeCounts []countResult
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&likeCounts).Error
	if err != nil {
		return storageFault(err, "count post likes")
	}

	var commentCounts []countResult
	err = s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&commentCounts).Error
	if err != nil {
		return storageFault(err, "count post comments")
	}

	likes := make(map[uint]int, len(likeCounts))
	for _, r := range likeCounts {
		likes[r.PostID] = r.Count
	}
	comments := make(map[uint]int, len(commentCounts))
	for _, r := range commentCounts {
		comments[r.PostID] = r.Count
	}

	liked := make(map[uint]bool)
	if viewerID != 0 {
		var likedIDs []uint
		err := s.db.WithContext(ctx).Model(&models.Like{}).
			Where("user_id = ? AND post_id IN ?", viewerID, postIDs).
			Pluck("post_id", &likedIDs).Error
		if err != nil {
			return storageFault(err, "find viewer likes")
		}
		for _, id := range likedIDs {
			liked[id] = true
		}
	}

	for i := range posts {
		posts[i].LikeCount = likes[posts[i].ID]
		posts[i].CommentCount = comments[posts[i].ID]
		posts[i].LikedByViewer = liked[posts[i].ID]
	}
	return nil
}
