package models

// Topic is a hashtag-like aggregation record. The counters are denormalized and
// incremented opportunistically by callers; nothing reconciles them against the
// actual post or follower counts, so drift is possible.
type Topic struct {
	Name           string `json:"name"`
	PostsCount     int    `json:"postsCount"`
	FollowersCount int    `json:"followersCount"`
	CreatedAt      string `json:"createdAt"`
}
