package services_test

import (
	"context"
	"sync"
	"testing"

	"newsroom/internal/models"
	"newsroom/internal/pagination"
	"newsroom/internal/services"
	"newsroom/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeCreate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewLikeService(conn)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	post := testutil.CreateTestPost(t, conn, alice.ID, "hello")

	like, err := svc.Create(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, like.PostID)

	_, err = svc.Create(ctx, alice.ID, post.ID)
	e, ok := services.AsError(err)
	require.True(t, ok)
	assert.Equal(t, services.KindConflict, e.Kind)
	assert.Equal(t, services.ResourceLike, e.Resource)

	_, err = svc.Create(ctx, alice.ID, 9999)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestLikeCreate_UnknownViewer(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewLikeService(conn)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	post := testutil.CreateTestPost(t, conn, alice.ID, "hello")

	_, err := svc.Create(ctx, 4242, post.ID)
	e, ok := services.AsError(err)
	require.True(t, ok)
	assert.Equal(t, services.KindNotFound, e.Kind)
	assert.Equal(t, services.ResourceUser, e.Resource)

	var count int64
	require.NoError(t, conn.Model(&models.Like{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLikeCreate_Concurrent(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewLikeService(conn)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	post := testutil.CreateTestPost(t, conn, alice.ID, "hello")

	const workers = 2
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, alice.ID, post.ID)
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case services.KindOf(err) == services.KindConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)

	var count int64
	conn.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", post.ID, alice.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLikeListOnPost(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewLikeService(conn)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	bob := testutil.CreateTestUser(t, conn, "bob")
	carol := testutil.CreateTestUser(t, conn, "carol")
	post := testutil.CreateTestPost(t, conn, alice.ID, "hello")
	quiet := testutil.CreateTestPost(t, conn, alice.ID, "quiet")
	testutil.CreateTestLike(t, conn, alice.ID, post.ID)
	testutil.CreateTestLike(t, conn, bob.ID, post.ID)

	// alice 的点赞在第二页，但 likedByViewer 仍然为 true
	page, err := svc.ListOnPost(ctx, post.ID, pagination.New(1, 1), alice.ID)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "bob", page.Items[0].User.Username)
	assert.True(t, page.LikedByViewer)

	page, err = svc.ListOnPost(ctx, post.ID, pagination.New(1, 10), carol.ID)
	require.NoError(t, err)
	assert.False(t, page.LikedByViewer)
	assert.Equal(t, int64(2), page.Total)

	_, err = svc.ListOnPost(ctx, quiet.ID, pagination.New(1, 10), 0)
	assert.Equal(t, services.KindEmptyCollection, services.KindOf(err))

	_, err = svc.ListOnPost(ctx, 9999, pagination.New(1, 10), 0)
	e, ok := services.AsError(err)
	require.True(t, ok)
	assert.True(t, e.Parent)

	_, err = svc.ListOnPost(ctx, post.ID, pagination.New(3, 1), 0)
	assert.Equal(t, services.KindBeyondRange, services.KindOf(err))
}

func TestLikeListByUser(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewLikeService(conn)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	bob := testutil.CreateTestUser(t, conn, "bob")
	post := testutil.CreateTestPost(t, conn, alice.ID, "hello")
	testutil.CreateTestLike(t, conn, alice.ID, post.ID)

	page, err := svc.ListMine(ctx, alice.ID, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "hello", page.Items[0].Post.Title)

	_, err = svc.ListByUsername(ctx, bob.Username, pagination.New(1, 10))
	assert.Equal(t, services.KindEmptyCollection, services.KindOf(err))

	_, err = svc.ListByUsername(ctx, "nobody", pagination.New(1, 10))
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestLikeDelete(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := services.NewLikeService(conn)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice")
	bob := testutil.CreateTestUser(t, conn, "bob")
	post := testutil.CreateTestPost(t, conn, alice.ID, "hello")
	like := testutil.CreateTestLike(t, conn, alice.ID, post.ID)

	err := svc.Delete(ctx, bob.ID, post.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))

	err = svc.DeleteByID(ctx, bob.ID, like.ID)
	assert.Equal(t, services.KindUnauthorized, services.KindOf(err))

	var count int64
	conn.Model(&models.Like{}).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.Delete(ctx, alice.ID, post.ID))
	conn.Model(&models.Like{}).Count(&count)
	assert.Zero(t, count)

	err = svc.DeleteByID(ctx, alice.ID, like.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))

	like = testutil.CreateTestLike(t, conn, alice.ID, post.ID)
	require.NoError(t, svc.DeleteByID(ctx, alice.ID, like.ID))
}
