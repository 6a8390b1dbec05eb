package services_test

import (
	"context"
	"fmt"
	"testing"

	"newsroom/internal/models"
	"newsroom/internal/pagination"
	"newsroom/internal/services"
	"newsroom/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}

func TestPostList_PagesNewestFirst(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewPostService(conn, 100)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	testutil.CreateTestPosts(t, conn, alice.ID, 25)

	page, err := svc.List(ctx, pagination.New(1, 10), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []string{
		"post 25", "post 24", "post 23", "post 22", "post 21",
		"post 20", "post 19", "post 18", "post 17", "post 16",
	}, titles(page.Items))

	page, err = svc.List(ctx, pagination.New(3, 10), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"post 5", "post 4", "post 3", "post 2", "post 1"}, titles(page.Items))

	_, err = svc.List(ctx, pagination.New(4, 10), 0)
	assert.Equal(t, services.KindBeyondRange, services.KindOf(err))
}

func TestPostList_StableAcrossCalls(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewPostService(conn, 100)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	// 相同创建时间，依靠 id 排序
	at := testutil.CreateTestPost(t, conn, alice.ID, "first").CreatedAt
	for _, title := range []string{"second", "third", "fourth"} {
		testutil.CreateTestPostAt(t, conn, alice.ID, title, at)
	}

	first, err := svc.List(ctx, pagination.New(1, 2), 0)
	require.NoError(t, err)
	again, err := svc.List(ctx, pagination.New(1, 2), 0)
	require.NoError(t, err)
	second, err := svc.List(ctx, pagination.New(2, 2), 0)
	require.NoError(t, err)

	assert.Equal(t, titles(first.Items), titles(again.Items))
	assert.Equal(t, []string{"fourth", "third"}, titles(first.Items))
	assert.Equal(t, []string{"second", "first"}, titles(second.Items))
}

func TestPostList_Empty(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewPostService(conn, 100)

	_, err := svc.List(context.Background(), pagination.New(1, 10), 0)
	assert.Equal(t, services.KindEmptyCollection, services.KindOf(err))
}

func TestPostList_Stats(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewPostService(conn, 100)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	bob := testutil.CreateTestUser(t, conn, "bob")
	post := testutil.CreateTestPost(t, conn, alice.ID, "hello")
	testutil.CreateTestLike(t, conn, bob.ID, post.ID)
	testutil.CreateTestLike(t, conn, alice.ID, post.ID)
	testutil.CreateTestComment(t, conn, bob.ID, post.ID, "nice")

	page, err := svc.List(ctx, pagination.New(1, 10), bob.ID)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	got := page.Items[0]
	assert.Equal(t, 2, got.LikeCount)
	assert.Equal(t, 1, got.CommentCount)
	assert.True(t, got.LikedByViewer)
	assert.Equal(t, "alice", got.User.Username)

	page, err = svc.List(ctx, pagination.New(1, 10), 0)
	require.NoError(t, err)
	assert.False(t, page.Items[0].LikedByViewer)
}

func TestPostListByUsername(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewPostService(conn, 100)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	bob := testutil.CreateTestUser(t, conn, "bob")
	testutil.CreateTestPost(t, conn, alice.ID, "by alice")

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ListByUsername(ctx, "nobody", pagination.New(1, 10), 0)
		e, ok := services.AsError(err)
		require.True(t, ok)
		assert.Equal(t, services.KindNotFound, e.Kind)
		assert.True(t, e.Parent)
		assert.Equal(t, services.ResourceUser, e.Resource)
	})

	t.Run("known user without posts", func(t *testing.T) {
		_, err := svc.ListByUsername(ctx, bob.Username, pagination.New(1, 10), 0)
		assert.Equal(t, services.KindEmptyCollection, services.KindOf(err))
	})

	t.Run("known user", func(t *testing.T) {
		page, err := svc.ListByUsername(ctx, alice.Username, pagination.New(1, 10), 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"by alice"}, titles(page.Items))
	})

	t.Run("mine", func(t *testing.T) {
		page, err := svc.ListMine(ctx, alice.ID, pagination.New(1, 10))
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
	})
}

func TestPostGet(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewPostService(conn, 100)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	post := testutil.CreateTestPost(t, conn, alice.ID, "hello")
	testutil.CreateTestComment(t, conn, alice.ID, post.ID, "older")
	testutil.CreateTestComment(t, conn, alice.ID, post.ID, "newer")
	testutil.CreateTestLike(t, conn, alice.ID, post.ID)

	detail, err := svc.Get(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", detail.Post.Title)
	assert.Equal(t, 1, detail.Post.LikeCount)
	assert.True(t, detail.Post.LikedByViewer)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "newer", detail.Comments[0].Content)

	_, err = svc.Get(ctx, post.ID+100, 0)
	e, ok := services.AsError(err)
	require.True(t, ok)
	assert.Equal(t, services.KindNotFound, e.Kind)
	assert.False(t, e.Parent)
}

func TestPostGet_CommentCeiling(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewPostService(conn, 3)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	post := testutil.CreateTestPost(t, conn, alice.ID, "busy")
	for i := 0; i < 5; i++ {
		testutil.CreateTestComment(t, conn, alice.ID, post.ID, fmt.Sprintf("comment %d", i))
	}

	detail, err := svc.Get(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Len(t, detail.Comments, 3)
	assert.Equal(t, 5, detail.Post.CommentCount)
}

func TestPostCreate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewPostService(conn, 100)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")

	_, err := svc.Create(ctx, alice.ID, "   ", "body")
	e, ok := services.AsError(err)
	require.True(t, ok)
	assert.Equal(t, services.KindInvalidInput, e.Kind)
	assert.Equal(t, "title", e.Field)

	post, err := svc.Create(ctx, alice.ID, "  Title  ", "body")
	require.NoError(t, err)
	assert.Equal(t, "Title", post.Title)
	assert.Equal(t, alice.ID, post.UserID)
	assert.NotZero(t, post.ID)
}

func TestPostDelete(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewPostService(conn, 100)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	bob := testutil.CreateTestUser(t, conn, "bob")
	post := testutil.CreateTestPost(t, conn, alice.ID, "hello")
	testutil.CreateTestComment(t, conn, bob.ID, post.ID, "hi")
	testutil.CreateTestLike(t, conn, bob.ID, post.ID)

	err := svc.Delete(ctx, bob.ID, post.ID)
	assert.Equal(t, services.KindUnauthorized, services.KindOf(err))

	var count int64
	conn.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(1), count, "non-owner delete must not remove the post")

	require.NoError(t, svc.Delete(ctx, alice.ID, post.ID))

	conn.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count)
	conn.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)
	conn.Model(&models.Like{}).Count(&count)
	assert.Zero(t, count)

	err = svc.Delete(ctx, alice.ID, post.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}
