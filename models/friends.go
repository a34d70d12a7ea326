package models

// FriendRequest is stored twice, once in the sender's outbox namespace and once
// in the receiver's inbox namespace, sharing the same RequestID so replayed
// writes converge. Status moves pending -> accepted or pending -> rejected,
// both terminal.
type FriendRequest struct {
	RequestID  string `json:"requestId"`
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}
