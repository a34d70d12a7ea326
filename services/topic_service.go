package services

import (
	"context"
	"time"

	"trueshot_server/models"
)

// TopicService keeps the hashtag aggregation records. Counters are denormalized
// and bumped by callers as a side effect; nothing reconciles them against the
// actual post or follower counts.
type TopicService struct {
	KV KVStore
}

func (s *TopicService) loadTopics(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	if _, err := s.KV.Get(ctx, models.TopicsKey, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// ListTopics returns all known topics.
func (s *TopicService) ListTopics(ctx context.Context) ([]models.Topic, error) {
	return s.loadTopics(ctx)
}

// BumpPostCount adjusts a topic's post counter, creating the topic on first use.
func (s *TopicService) BumpPostCount(ctx context.Context, name string, delta int) error {
	return s.bump(ctx, name, func(t *models.Topic) { t.PostsCount += delta })
}

// BumpFollowers adjusts a topic's follower counter, creating the topic on first use.
func (s *TopicService) BumpFollowers(ctx context.Context, name string, delta int) error {
	return s.bump(ctx, name, func(t *models.Topic) { t.FollowersCount += delta })
}

func (s *TopicService) bump(ctx context.Context, name string, apply func(*models.Topic)) error {
	topics, err := s.loadTopics(ctx)
	if err != nil {
		return err
	}
	for i := range topics {
		if topics[i].Name == name {
			apply(&topics[i])
			if topics[i].PostsCount < 0 {
				topics[i].PostsCount = 0
			}
			if topics[i].FollowersCount < 0 {
				topics[i].FollowersCount = 0
			}
			return s.KV.Set(ctx, models.TopicsKey, topics)
		}
	}

	topic := models.Topic{Name: name, CreatedAt: time.Now().Format(time.RFC3339)}
	apply(&topic)
	if topic.PostsCount < 0 {
		topic.PostsCount = 0
	}
	if topic.FollowersCount < 0 {
		topic.FollowersCount = 0
	}
	return s.KV.Set(ctx, models.TopicsKey, append(topics, topic))
}
