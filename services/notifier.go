package services

// Notifier fans an event out to one user's connected clients. The socket hub
// implements it; services treat a nil Notifier as "nobody listening".
type Notifier interface {
	NotifyUser(userID, event string, payload interface{})
}
