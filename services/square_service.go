package services

import (
	"context"
	"log"
	"sort"
	"time"

	"trueshot_server/models"
	"trueshot_server/utils"

	"github.com/google/uuid"
)

// SquareService owns the published post list and its social state. All
// mutations are read-modify-write on the shared posts key; last write wins.
type SquareService struct {
	KV       KVStore
	Topics   *TopicService
	Notifier Notifier
}

// DiscoverScore blends popularity with recency. The trailing timeWeight*10 term
// keeps brand-new zero-engagement posts ahead of long-stale viral ones once
// decay has done its work.
func DiscoverScore(likeCount, commentCount int, hoursSincePost float64) float64 {
	hotScore := float64(likeCount + commentCount*2)
	timeWeight := 1 / (1 + hoursSincePost/24)
	return hotScore*timeWeight + timeWeight*10
}

func (s *SquareService) notify(userID, event string, payload interface{}) {
	if s.Notifier != nil {
		s.Notifier.NotifyUser(userID, event, payload)
	}
}

func (s *SquareService) loadPosts(ctx context.Context) ([]models.SquarePost, error) {
	var posts []models.SquarePost
	if _, err := s.KV.Get(ctx, models.SquarePostsKey, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *SquareService) savePosts(ctx context.Context, posts []models.SquarePost) error {
	return s.KV.Set(ctx, models.SquarePostsKey, posts)
}

// Publish creates a post from a verification or outfit-swap artifact and bumps
// the denormalized counter of each named topic. Topic bumps are opportunistic;
// a failed bump only logs.
func (s *SquareService) Publish(ctx context.Context, post models.SquarePost) (*models.SquarePost, error) {
	post.PostID = uuid.New().String()
	post.Likes = []string{}
	post.Comments = []models.SquareComment{}
	post.PinnedCommentID = ""
	post.CreatedAt = time.Now().Format(time.RFC3339)

	posts, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	posts = append([]models.SquarePost{post}, posts...)
	if err := s.savePosts(ctx, posts); err != nil {
		return nil, err
	}

	if s.Topics != nil {
		for _, name := range post.Topics {
			if err := s.Topics.BumpPostCount(ctx, name, 1); err != nil {
				log.Printf("⚠️ Failed to bump topic '%s' for post %s: %v", name, post.PostID, err)
			}
		}
	}

	log.Printf("✅ Post published: %s by %s (%s)", post.PostID, post.UserID, post.Kind)
	return &post, nil
}

// GetDiscoverFeed orders all posts by the blended popularity/recency score.
func (s *SquareService) GetDiscoverFeed(ctx context.Context) ([]models.SquarePost, error) {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		si := DiscoverScore(len(posts[i].Likes), len(posts[i].Comments), utils.HoursSince(posts[i].CreatedAt))
		sj := DiscoverScore(len(posts[j].Likes), len(posts[j].Comments), utils.HoursSince(posts[j].CreatedAt))
		return si > sj
	})
	return posts, nil
}

// GetFollowingFeed returns posts authored by the users someone follows,
// strictly newest first.
func (s *SquareService) GetFollowingFeed(ctx context.Context, following []string) ([]models.SquarePost, error) {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	followed := make(map[string]bool, len(following))
	for _, id := range following {
		followed[id] = true
	}

	var feed []models.SquarePost
	for _, post := range posts {
		if followed[post.UserID] {
			feed = append(feed, post)
		}
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].CreatedAt > feed[j].CreatedAt
	})
	return feed, nil
}

// GetPost fetches one post by id.
func (s *SquareService) GetPost(ctx context.Context, postID string) (*models.SquarePost, error) {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].PostID == postID {
			return &posts[i], nil
		}
	}
	return nil, ErrNotFound
}

// Like records a like once per user and notifies the post owner.
func (s *SquareService) Like(ctx context.Context, postID, userID string) (*models.SquarePost, error) {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].PostID != postID {
			continue
		}
		for _, liker := range posts[i].Likes {
			if liker == userID {
				return &posts[i], nil
			}
		}
		posts[i].Likes = append(posts[i].Likes, userID)
		if err := s.savePosts(ctx, posts); err != nil {
			return nil, err
		}
		if posts[i].UserID != userID {
			s.notify(posts[i].UserID, "newLike", map[string]string{"postId": postID, "userId": userID})
		}
		return &posts[i], nil
	}
	return nil, ErrNotFound
}

// Unlike removes a user's like if present.
func (s *SquareService) Unlike(ctx context.Context, postID, userID string) (*models.SquarePost, error) {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].PostID != postID {
			continue
		}
		for j, liker := range posts[i].Likes {
			if liker == userID {
				posts[i].Likes = append(posts[i].Likes[:j], posts[i].Likes[j+1:]...)
				if err := s.savePosts(ctx, posts); err != nil {
					return nil, err
				}
				break
			}
		}
		return &posts[i], nil
	}
	return nil, ErrNotFound
}

// AddComment appends a comment and notifies the post owner.
func (s *SquareService) AddComment(ctx context.Context, postID, userID, content string) (*models.SquareComment, error) {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].PostID != postID {
			continue
		}
		comment := models.SquareComment{
			CommentID: uuid.New().String(),
			UserID:    userID,
			Content:   content,
			CreatedAt: time.Now().Format(time.RFC3339),
		}
		posts[i].Comments = append(posts[i].Comments, comment)
		if err := s.savePosts(ctx, posts); err != nil {
			return nil, err
		}
		if posts[i].UserID != userID {
			s.notify(posts[i].UserID, "newComment", map[string]string{"postId": postID, "commentId": comment.CommentID, "userId": userID})
		}
		return &comment, nil
	}
	return nil, ErrNotFound
}

// PinComment pins one comment of the owner's post. The comment must belong to
// the post; pinning replaces any previous pin, so at most one exists.
func (s *SquareService) PinComment(ctx context.Context, postID, ownerID, commentID string) (*models.SquarePost, error) {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].PostID != postID {
			continue
		}
		if posts[i].UserID != ownerID {
			return nil, ErrNotOwner
		}
		belongs := false
		for _, c := range posts[i].Comments {
			if c.CommentID == commentID {
				belongs = true
				break
			}
		}
		if !belongs {
			return nil, ErrCommentNotFound
		}
		posts[i].PinnedCommentID = commentID
		if err := s.savePosts(ctx, posts); err != nil {
			return nil, err
		}
		return &posts[i], nil
	}
	return nil, ErrNotFound
}

// DeletePost removes an owner's post.
func (s *SquareService) DeletePost(ctx context.Context, postID, userID string) error {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].PostID != postID {
			continue
		}
		if posts[i].UserID != userID {
			return ErrNotOwner
		}
		posts = append(posts[:i], posts[i+1:]...)
		return s.savePosts(ctx, posts)
	}
	return ErrNotFound
}
