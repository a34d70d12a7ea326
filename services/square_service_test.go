package services

import (
	"context"
	"testing"
	"time"

	"trueshot_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverScore_NewBeatsStale(t *testing.T) {
	t.Parallel()

	// fresh zero-engagement post: 0*1 + 1*10 = 10
	fresh := DiscoverScore(0, 0, 0)
	assert.InDelta(t, 10.0, fresh, 0.001)

	// 240h old with 5 likes: timeWeight = 1/11, hot = 5 -> ~1.36
	stale := DiscoverScore(5, 0, 240)
	assert.InDelta(t, 1.3636, stale, 0.001)

	assert.Greater(t, fresh, stale)
}

func TestDiscoverScore_CommentsWeighDouble(t *testing.T) {
	t.Parallel()

	likesOnly := DiscoverScore(4, 0, 12)
	commentsOnly := DiscoverScore(0, 2, 12)
	assert.Equal(t, likesOnly, commentsOnly)
}

func newSquareService() (*SquareService, *memoryKV, *recordingNotifier) {
	kv := newMemoryKV()
	notifier := &recordingNotifier{}
	topics := &TopicService{KV: kv}
	return &SquareService{KV: kv, Topics: topics, Notifier: notifier}, kv, notifier
}

func TestPublishAndDiscoverOrdering(t *testing.T) {
	t.Parallel()

	svc, kv, _ := newSquareService()
	ctx := context.Background()

	staleAt := time.Now().Add(-240 * time.Hour).Format(time.RFC3339)
	require.NoError(t, kv.Set(ctx, models.SquarePostsKey, []models.SquarePost{
		{PostID: "stale", UserID: "a", Likes: []string{"1", "2", "3", "4", "5"}, CreatedAt: staleAt},
	}))

	fresh, err := svc.Publish(ctx, models.SquarePost{UserID: "b", Kind: models.PostKindVerification, ImageURL: "img", Topics: []string{"beach"}})
	require.NoError(t, err)

	feed, err := svc.GetDiscoverFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, fresh.PostID, feed[0].PostID)
	assert.Equal(t, "stale", feed[1].PostID)

	// publish bumped the topic counter
	topics, err := svc.Topics.ListTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "beach", topics[0].Name)
	assert.Equal(t, 1, topics[0].PostsCount)
}

func TestFollowingFeed_RecencyOnly(t *testing.T) {
	t.Parallel()

	svc, kv, _ := newSquareService()
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
	newer := time.Now().Add(-1 * time.Hour).Format(time.RFC3339)
	require.NoError(t, kv.Set(ctx, models.SquarePostsKey, []models.SquarePost{
		{PostID: "p-old", UserID: "followed", CreatedAt: old, Likes: []string{"x", "y", "z"}},
		{PostID: "p-new", UserID: "followed", CreatedAt: newer},
		{PostID: "p-stranger", UserID: "stranger", CreatedAt: newer},
	}))

	feed, err := svc.GetFollowingFeed(ctx, []string{"followed"})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "p-new", feed[0].PostID)
	assert.Equal(t, "p-old", feed[1].PostID)
}

func TestLikeUnlike(t *testing.T) {
	t.Parallel()

	svc, _, notifier := newSquareService()
	ctx := context.Background()

	post, err := svc.Publish(ctx, models.SquarePost{UserID: "owner", Kind: models.PostKindOutfitSwap, ImageURL: "img"})
	require.NoError(t, err)

	liked, err := svc.Like(ctx, post.PostID, "fan")
	require.NoError(t, err)
	assert.Equal(t, []string{"fan"}, liked.Likes)

	// double like stays a single entry
	liked, err = svc.Like(ctx, post.PostID, "fan")
	require.NoError(t, err)
	assert.Equal(t, []string{"fan"}, liked.Likes)

	// owner was notified exactly once
	events := notifier.eventsFor("owner")
	require.Len(t, events, 1)
	assert.Equal(t, "newLike", events[0].Event)

	// self-like does not notify
	_, err = svc.Like(ctx, post.PostID, "owner")
	require.NoError(t, err)
	assert.Len(t, notifier.eventsFor("owner"), 1)

	unliked, err := svc.Unlike(ctx, post.PostID, "fan")
	require.NoError(t, err)
	assert.NotContains(t, unliked.Likes, "fan")

	_, err = svc.Like(ctx, "missing", "fan")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentsAndPinInvariant(t *testing.T) {
	t.Parallel()

	svc, _, notifier := newSquareService()
	ctx := context.Background()

	post, err := svc.Publish(ctx, models.SquarePost{UserID: "owner", Kind: models.PostKindVerification, ImageURL: "img"})
	require.NoError(t, err)

	first, err := svc.AddComment(ctx, post.PostID, "fan", "looks real")
	require.NoError(t, err)
	second, err := svc.AddComment(ctx, post.PostID, "fan2", "nice light")
	require.NoError(t, err)

	events := notifier.eventsFor("owner")
	require.Len(t, events, 2)
	assert.Equal(t, "newComment", events[0].Event)

	// only the owner can pin
	_, err = svc.PinComment(ctx, post.PostID, "fan", first.CommentID)
	assert.ErrorIs(t, err, ErrNotOwner)

	// the pinned comment must belong to the post
	_, err = svc.PinComment(ctx, post.PostID, "owner", "not-a-comment")
	assert.ErrorIs(t, err, ErrCommentNotFound)

	pinned, err := svc.PinComment(ctx, post.PostID, "owner", first.CommentID)
	require.NoError(t, err)
	assert.Equal(t, first.CommentID, pinned.PinnedCommentID)

	// re-pinning replaces, never accumulates
	pinned, err = svc.PinComment(ctx, post.PostID, "owner", second.CommentID)
	require.NoError(t, err)
	assert.Equal(t, second.CommentID, pinned.PinnedCommentID)
}

func TestDeletePost_OwnerOnly(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSquareService()
	ctx := context.Background()

	post, err := svc.Publish(ctx, models.SquarePost{UserID: "owner", Kind: models.PostKindVerification, ImageURL: "img"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePost(ctx, post.PostID, "someone"), ErrNotOwner)
	require.NoError(t, svc.DeletePost(ctx, post.PostID, "owner"))
	assert.ErrorIs(t, svc.DeletePost(ctx, post.PostID, "owner"), ErrNotFound)
}
