package models

// User defines the structure for user accounts. A record is created at first
// login and never hard-deleted; logout only clears the session pointer.
type User struct {
	UserID    string   `json:"userId"`
	Phone     string   `json:"phone,omitempty"`
	Email     string   `json:"email,omitempty"`
	OAuthID   string   `json:"oauthId,omitempty"`
	Nickname  string   `json:"nickname"`
	Avatar    string   `json:"avatar,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Following []string `json:"following"`
	Guest     bool     `json:"guest,omitempty"`
	CreatedAt string   `json:"createdAt"`
}
