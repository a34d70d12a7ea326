package services

import "errors"

// Validation and state errors surfaced to controllers as blocking alerts
var (
	ErrNotFound             = errors.New("not found")
	ErrNicknameRequired     = errors.New("nickname is required")
	ErrNicknameTaken        = errors.New("nickname is already taken")
	ErrLoginRequired        = errors.New("daily free quota exhausted, login required")
	ErrInsufficientCredits  = errors.New("insufficient credits")
	ErrDuplicatePending     = errors.New("a pending request already exists")
	ErrRequestNotPending    = errors.New("request is not pending")
	ErrNotOwner             = errors.New("caller does not own this record")
	ErrCommentNotFound      = errors.New("comment does not belong to this post")
	ErrInvalidToken         = errors.New("invalid session token")
	ErrUnsupportedPhotoType = errors.New("unsupported photo content type")
)
