package models

// SquareComment is a single comment on a square post.
type SquareComment struct {
	CommentID string `json:"commentId"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// SquarePost is a published verification or outfit-swap artifact plus its
// social state. At most one comment may be pinned and it must belong to the post.
type SquarePost struct {
	PostID          string          `json:"postId"`
	UserID          string          `json:"userId"`
	Kind            string          `json:"kind"` // "verification" or "outfitSwap"
	ImageURL        string          `json:"imageUrl"`
	Caption         string          `json:"caption,omitempty"`
	Topics          []string        `json:"topics,omitempty"`
	Likes           []string        `json:"likes"`
	Comments        []SquareComment `json:"comments"`
	PinnedCommentID string          `json:"pinnedCommentId,omitempty"`
	CreatedAt       string          `json:"createdAt"`
}

// Post kinds
const (
	PostKindVerification = "verification"
	PostKindOutfitSwap   = "outfitSwap"
)
