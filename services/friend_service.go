package services

import (
	"context"
	"log"
	"time"

	"trueshot_server/models"

	"github.com/google/uuid"
)

// FriendService maintains the friend-request state machine. Each request is
// stored twice, in the sender's outbox and the receiver's inbox, sharing one
// RequestID so both writes are idempotent upserts. There is no two-phase
// commit between the two namespaces; reads run a repair pass instead.
type FriendService struct {
	KV       KVStore
	Notifier Notifier
}

func (s *FriendService) notify(userID, event string, payload interface{}) {
	if s.Notifier != nil {
		s.Notifier.NotifyUser(userID, event, payload)
	}
}

func (s *FriendService) loadRequests(ctx context.Context, key string) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	if _, err := s.KV.Get(ctx, key, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// upsertRequest replaces the copy with the same RequestID or appends.
func upsertRequest(reqs []models.FriendRequest, req models.FriendRequest) []models.FriendRequest {
	for i := range reqs {
		if reqs[i].RequestID == req.RequestID {
			reqs[i] = req
			return reqs
		}
	}
	return append(reqs, req)
}

func findRequest(reqs []models.FriendRequest, requestID string) *models.FriendRequest {
	for i := range reqs {
		if reqs[i].RequestID == requestID {
			return &reqs[i]
		}
	}
	return nil
}

// SendRequest creates a pending request in both namespaces. Only pending
// duplicates are blocked; a rejected pair may be requested again.
func (s *FriendService) SendRequest(ctx context.Context, fromUserID, toUserID, message string) (*models.FriendRequest, error) {
	inbox, err := s.loadRequests(ctx, models.FriendRequestsInKey(toUserID))
	if err != nil {
		return nil, err
	}
	for _, r := range inbox {
		if r.FromUserID == fromUserID && r.Status == models.StatusPending {
			return nil, ErrDuplicatePending
		}
	}

	req := models.FriendRequest{
		RequestID:  uuid.New().String(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     models.StatusPending,
		Message:    message,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := s.writeBothCopies(ctx, req); err != nil {
		return nil, err
	}

	s.notify(toUserID, "friendRequest", req)
	log.Printf("✅ Friend request sent: %s -> %s (%s)", fromUserID, toUserID, req.RequestID)
	return &req, nil
}

// Accept moves a pending inbox request to accepted in both copies and adds
// each party to the other's friend list.
func (s *FriendService) Accept(ctx context.Context, receiverID, requestID string) (*models.FriendRequest, error) {
	req, err := s.resolve(ctx, receiverID, requestID)
	if err != nil {
		return nil, err
	}

	req.Status = models.StatusAccepted
	req.UpdatedAt = time.Now().Format(time.RFC3339)
	if err := s.writeBothCopies(ctx, *req); err != nil {
		return nil, err
	}

	if err := s.addFriend(ctx, req.FromUserID, req.ToUserID); err != nil {
		return nil, err
	}
	if err := s.addFriend(ctx, req.ToUserID, req.FromUserID); err != nil {
		return nil, err
	}

	s.notify(req.FromUserID, "requestAccepted", req)
	log.Printf("🎉 Friend request accepted: %s <-> %s", req.FromUserID, req.ToUserID)
	return req, nil
}

// Reject moves a pending inbox request to rejected in both copies. Terminal;
// no friend edge is created.
func (s *FriendService) Reject(ctx context.Context, receiverID, requestID string) (*models.FriendRequest, error) {
	req, err := s.resolve(ctx, receiverID, requestID)
	if err != nil {
		return nil, err
	}

	req.Status = models.StatusRejected
	req.UpdatedAt = time.Now().Format(time.RFC3339)
	if err := s.writeBothCopies(ctx, *req); err != nil {
		return nil, err
	}
	return req, nil
}

// resolve finds a pending request in the receiver's inbox.
func (s *FriendService) resolve(ctx context.Context, receiverID, requestID string) (*models.FriendRequest, error) {
	inbox, err := s.loadRequests(ctx, models.FriendRequestsInKey(receiverID))
	if err != nil {
		return nil, err
	}
	req := findRequest(inbox, requestID)
	if req == nil {
		return nil, ErrNotFound
	}
	if req.Status != models.StatusPending {
		return nil, ErrRequestNotPending
	}
	copied := *req
	return &copied, nil
}

// writeBothCopies upserts the request into the sender's outbox and the
// receiver's inbox. Two writes, no transaction; a failure in between leaves
// the sides divergent until a read repairs them.
func (s *FriendService) writeBothCopies(ctx context.Context, req models.FriendRequest) error {
	outbox, err := s.loadRequests(ctx, models.FriendRequestsOutKey(req.FromUserID))
	if err != nil {
		return err
	}
	if err := s.KV.Set(ctx, models.FriendRequestsOutKey(req.FromUserID), upsertRequest(outbox, req)); err != nil {
		return err
	}

	inbox, err := s.loadRequests(ctx, models.FriendRequestsInKey(req.ToUserID))
	if err != nil {
		return err
	}
	return s.KV.Set(ctx, models.FriendRequestsInKey(req.ToUserID), upsertRequest(inbox, req))
}

// ListInbox returns the receiver's copy after repairing it against each
// sender's outbox copy.
func (s *FriendService) ListInbox(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	inbox, err := s.loadRequests(ctx, models.FriendRequestsInKey(userID))
	if err != nil {
		return nil, err
	}
	repaired, changed := s.repair(ctx, inbox, func(r models.FriendRequest) string {
		return models.FriendRequestsOutKey(r.FromUserID)
	})
	if changed {
		if err := s.KV.Set(ctx, models.FriendRequestsInKey(userID), repaired); err != nil {
			log.Printf("⚠️ Failed to persist inbox repair for %s: %v", userID, err)
		}
	}
	return repaired, nil
}

// ListOutbox returns the sender's copy after repairing it against each
// receiver's inbox copy.
func (s *FriendService) ListOutbox(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	outbox, err := s.loadRequests(ctx, models.FriendRequestsOutKey(userID))
	if err != nil {
		return nil, err
	}
	repaired, changed := s.repair(ctx, outbox, func(r models.FriendRequest) string {
		return models.FriendRequestsInKey(r.ToUserID)
	})
	if changed {
		if err := s.KV.Set(ctx, models.FriendRequestsOutKey(userID), repaired); err != nil {
			log.Printf("⚠️ Failed to persist outbox repair for %s: %v", userID, err)
		}
	}
	return repaired, nil
}

// repair reconciles one side against the counterpart copies. A terminal status
// beats pending; a missing counterpart copy is rewritten from ours.
func (s *FriendService) repair(ctx context.Context, reqs []models.FriendRequest, counterpartKey func(models.FriendRequest) string) ([]models.FriendRequest, bool) {
	changed := false
	for i := range reqs {
		key := counterpartKey(reqs[i])
		others, err := s.loadRequests(ctx, key)
		if err != nil {
			continue
		}
		other := findRequest(others, reqs[i].RequestID)
		switch {
		case other == nil:
			if err := s.KV.Set(ctx, key, upsertRequest(others, reqs[i])); err != nil {
				log.Printf("⚠️ Read-repair write failed for %s: %v", key, err)
			}
		case other.Status != reqs[i].Status && reqs[i].Status == models.StatusPending:
			// counterpart already reached a terminal state, adopt it
			reqs[i] = *other
			changed = true
		case other.Status != reqs[i].Status:
			if err := s.KV.Set(ctx, key, upsertRequest(others, reqs[i])); err != nil {
				log.Printf("⚠️ Read-repair write failed for %s: %v", key, err)
			}
		}
	}
	return reqs, changed
}

// addFriend appends once; replayed accepts converge.
func (s *FriendService) addFriend(ctx context.Context, userID, friendID string) error {
	var friends []string
	if _, err := s.KV.Get(ctx, models.FriendsKey(userID), &friends); err != nil {
		return err
	}
	for _, f := range friends {
		if f == friendID {
			return nil
		}
	}
	return s.KV.Set(ctx, models.FriendsKey(userID), append(friends, friendID))
}

// ListFriends returns a user's friend ids.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]string, error) {
	var friends []string
	if _, err := s.KV.Get(ctx, models.FriendsKey(userID), &friends); err != nil {
		return nil, err
	}
	return friends, nil
}
