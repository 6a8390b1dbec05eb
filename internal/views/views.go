// Package views projects stored records into response bodies. Every field
// that leaves the service is listed here; nothing else is serialized.
package views

import (
	"time"

	"newsroom/internal/models"
	"newsroom/internal/services"
	"newsroom/internal/utils"
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination[T any](p services.Page[T]) Pagination {
	return Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}

// AuthorView 作者信息，嵌入到文章、评论、点赞中
type AuthorView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func NewAuthorView(u models.User) AuthorView {
	return AuthorView{ID: u.ID, Username: u.Username, Name: u.Name}
}

type UserView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	About     string    `json:"about"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserView(u models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		About:     u.About,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserViews(users []models.User) []UserView {
	out := make([]UserView, len(users))
	for i, u := range users {
		out[i] = NewUserView(u)
	}
	return out
}

type ProfileView struct {
	UserView
	PostCount    int64 `json:"postCount"`
	CommentCount int64 `json:"commentCount"`
	LikeCount    int64 `json:"likeCount"`
}

func NewProfileView(p *services.Profile) ProfileView {
	return ProfileView{
		UserView:     NewUserView(p.User),
		PostCount:    p.PostCount,
		CommentCount: p.CommentCount,
		LikeCount:    p.LikeCount,
	}
}

type PostView struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	ContentHTML   string     `json:"contentHtml"`
	Author        AuthorView `json:"author"`
	LikeCount     int        `json:"likeCount"`
	CommentCount  int        `json:"commentCount"`
	LikedByViewer bool       `json:"likedByViewer"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func NewPostView(p models.Post) PostView {
	return PostView{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		ContentHTML:   utils.RenderMarkdown(p.Content),
		Author:        NewAuthorView(p.User),
		LikeCount:     p.LikeCount,
		CommentCount:  p.CommentCount,
		LikedByViewer: p.LikedByViewer,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func NewPostViews(posts []models.Post) []PostView {
	out := make([]PostView, len(posts))
	for i, p := range posts {
		out[i] = NewPostView(p)
	}
	return out
}

type PostDetailView struct {
	PostView
	Comments []CommentView `json:"comments"`
}

func NewPostDetailView(d *services.PostDetail) PostDetailView {
	return PostDetailView{
		PostView: NewPostView(d.Post),
		Comments: NewCommentViews(d.Comments),
	}
}

type CommentView struct {
	ID          uint       `json:"id"`
	PostID      uint       `json:"postId"`
	PostTitle   string     `json:"postTitle,omitempty"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"contentHtml"`
	Author      AuthorView `json:"author"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewCommentView(c models.Comment) CommentView {
	return CommentView{
		ID:          c.ID,
		PostID:      c.PostID,
		PostTitle:   c.Post.Title,
		Content:     c.Content,
		ContentHTML: utils.RenderMarkdown(c.Content),
		Author:      NewAuthorView(c.User),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCommentViews(comments []models.Comment) []CommentView {
	out := make([]CommentView, len(comments))
	for i, c := range comments {
		out[i] = NewCommentView(c)
	}
	return out
}

type LikeView struct {
	ID        uint       `json:"id"`
	PostID    uint       `json:"postId"`
	PostTitle string     `json:"postTitle,omitempty"`
	User      AuthorView `json:"user"`
	CreatedAt time.Time  `json:"createdAt"`
}

func NewLikeView(l models.Like) LikeView {
	return LikeView{
		ID:        l.ID,
		PostID:    l.PostID,
		PostTitle: l.Post.Title,
		User:      NewAuthorView(l.User),
		CreatedAt: l.CreatedAt,
	}
}

func NewLikeViews(likes []models.Like) []LikeView {
	out := make([]LikeView, len(likes))
	for i, l := range likes {
		out[i] = NewLikeView(l)
	}
	return out
}
