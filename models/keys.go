package models

// KeyValueTable is the single DynamoDB table backing the namespaced key-value store
const KeyValueTable = "TrueshotKeyValue"

// Key builders for the per-user namespaces. Guests use a "guest_<deviceId>"
// pseudo user id and share the same namespaces.
func UserKey(userID string) string                { return "user_" + userID }
func VerificationHistoryKey(userID string) string { return "verification_history_" + userID }
func DailyUsageKey(userID string) string          { return "daily_usage_" + userID }
func UserCoinsKey(userID string) string           { return "user_coins_" + userID }
func FriendsKey(userID string) string             { return "friends_" + userID }
func FriendRequestsInKey(userID string) string    { return "friend_requests_in_" + userID }
func FriendRequestsOutKey(userID string) string   { return "friend_requests_out_" + userID }
func SessionKey(userID string) string             { return "session_" + userID }

// Shared (non-per-user) keys
const (
	SquarePostsKey   = "square_posts"
	TopicsKey        = "topics"
	IdentityIndexKey = "identity_index"
	NicknameIndexKey = "nickname_index"
)
