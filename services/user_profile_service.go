package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"trueshot_server/models"

	"github.com/google/uuid"
)

// UserProfileService owns accounts and the follow graph. Accounts are created
// at first login and never hard-deleted; logout only clears the session pointer.
type UserProfileService struct {
	KV KVStore
}

// LoginInput identifies a user by exactly one of phone, email or OAuth id.
type LoginInput struct {
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	OAuthID  string `json:"oauthId,omitempty"`
	DeviceID string `json:"deviceId,omitempty"`
}

// ProfileUpdate carries the editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Nickname *string `json:"nickname,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

func identityKey(in LoginInput) (string, error) {
	switch {
	case in.Phone != "":
		return "phone:" + in.Phone, nil
	case in.Email != "":
		return "email:" + strings.ToLower(in.Email), nil
	case in.OAuthID != "":
		return "oauth:" + in.OAuthID, nil
	}
	return "", errors.New("login requires a phone, email or oauth id")
}

// Login resolves the identity to an existing account or creates one, and marks
// the device's session pointer. Returns the user and whether it was created.
func (s *UserProfileService) Login(ctx context.Context, in LoginInput) (*models.User, bool, error) {
	idKey, err := identityKey(in)
	if err != nil {
		return nil, false, err
	}

	index := map[string]string{}
	if _, err := s.KV.Get(ctx, models.IdentityIndexKey, &index); err != nil {
		return nil, false, err
	}

	if userID, ok := index[idKey]; ok {
		user, err := s.GetUser(ctx, userID)
		if err != nil {
			return nil, false, err
		}
		s.markSession(ctx, userID, in.DeviceID)
		return user, false, nil
	}

	user := models.User{
		UserID:    uuid.New().String(),
		Phone:     in.Phone,
		Email:     in.Email,
		OAuthID:   in.OAuthID,
		Nickname:  defaultNickname(),
		Following: []string{},
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	if err := s.KV.Set(ctx, models.UserKey(user.UserID), user); err != nil {
		return nil, false, err
	}
	index[idKey] = user.UserID
	if err := s.KV.Set(ctx, models.IdentityIndexKey, index); err != nil {
		return nil, false, err
	}

	s.markSession(ctx, user.UserID, in.DeviceID)
	log.Printf("✅ New account created: %s", user.UserID)
	return &user, true, nil
}

func defaultNickname() string {
	return "user_" + uuid.New().String()[:8]
}

func (s *UserProfileService) markSession(ctx context.Context, userID, deviceID string) {
	session := map[string]string{"deviceId": deviceID, "loginAt": time.Now().Format(time.RFC3339)}
	if err := s.KV.Set(ctx, models.SessionKey(userID), session); err != nil {
		log.Printf("⚠️ Failed to record session for %s: %v", userID, err)
	}
}

// Logout clears the session pointer only; the account record stays.
func (s *UserProfileService) Logout(ctx context.Context, userID string) error {
	return s.KV.Remove(ctx, models.SessionKey(userID))
}

// GetUser fetches an account by id.
func (s *UserProfileService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	found, err := s.KV.Get(ctx, models.UserKey(userID), &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &user, nil
}

// UpdateProfile applies a profile edit. A nickname change must be non-empty and
// not claimed by another account; the claim is tracked in a shared index.
func (s *UserProfileService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Nickname != nil {
		nickname := strings.TrimSpace(*update.Nickname)
		if nickname == "" {
			return nil, ErrNicknameRequired
		}
		if nickname != user.Nickname {
			index := map[string]string{}
			if _, err := s.KV.Get(ctx, models.NicknameIndexKey, &index); err != nil {
				return nil, err
			}
			if owner, taken := index[nickname]; taken && owner != userID {
				return nil, ErrNicknameTaken
			}
			delete(index, user.Nickname)
			index[nickname] = userID
			if err := s.KV.Set(ctx, models.NicknameIndexKey, index); err != nil {
				return nil, err
			}
			user.Nickname = nickname
		}
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}

	if err := s.KV.Set(ctx, models.UserKey(userID), *user); err != nil {
		return nil, err
	}
	return user, nil
}

// Follow adds the target to the user's denormalized following list, once.
func (s *UserProfileService) Follow(ctx context.Context, userID, targetID string) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range user.Following {
		if id == targetID {
			return user, nil
		}
	}
	user.Following = append(user.Following, targetID)
	if err := s.KV.Set(ctx, models.UserKey(userID), *user); err != nil {
		return nil, err
	}
	return user, nil
}

// Unfollow removes the target from the following list if present.
func (s *UserProfileService) Unfollow(ctx context.Context, userID, targetID string) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i, id := range user.Following {
		if id == targetID {
			user.Following = append(user.Following[:i], user.Following[i+1:]...)
			if err := s.KV.Set(ctx, models.UserKey(userID), *user); err != nil {
				return nil, err
			}
			break
		}
	}
	return user, nil
}
