package services

import (
	"context"
	"fmt"
	"log"

	"trueshot_server/models"
	"trueshot_server/utils"
)

// QuotaService gates the three AI features behind a daily free quota with a
// flat-rate credit fallback for authenticated users.
type QuotaService struct {
	KV KVStore
}

// ConsumeResult reports what a successful consume cost.
type ConsumeResult struct {
	Feature        string `json:"feature"`
	ChargedCredits int    `json:"chargedCredits"`
	RemainingFree  int    `json:"remainingFree"`
	Balance        int    `json:"balance"`
}

// QuotaStatus is the read-only view served to the quota screen.
type QuotaStatus struct {
	Date      string            `json:"date"`
	FreeLimit int               `json:"freeLimit"`
	Usage     models.DailyUsage `json:"usage"`
	Balance   int               `json:"balance"`
}

func freeLimit(guest bool) int {
	if guest {
		return models.FreeDailyLimitGuest
	}
	return models.FreeDailyLimitUser
}

// loadUsage reads the day's counters, resetting them whenever the stored date
// string differs from today's. The comparison is on local-time date strings;
// a clock rolled across midnight resets regardless of counter values.
func (s *QuotaService) loadUsage(ctx context.Context, userID string) (models.DailyUsage, error) {
	var usage models.DailyUsage
	found, err := s.KV.Get(ctx, models.DailyUsageKey(userID), &usage)
	if err != nil {
		return usage, err
	}
	today := utils.TodayString()
	if !found || usage.Date != today {
		usage = models.DailyUsage{UserID: userID, Date: today}
	}
	return usage, nil
}

func counterFor(usage *models.DailyUsage, feature string) (*int, error) {
	switch feature {
	case models.FeatureVerification:
		return &usage.VerificationCount, nil
	case models.FeatureImageSource:
		return &usage.ImageSourceCount, nil
	case models.FeatureOutfitChange:
		return &usage.OutfitChangeCount, nil
	default:
		return nil, fmt.Errorf("unknown feature %q", feature)
	}
}

// Consume re-checks eligibility, increments the feature counter and, only when
// the free quota is already spent, deducts the flat credit cost. Guests over
// quota are hard-blocked with ErrLoginRequired.
func (s *QuotaService) Consume(ctx context.Context, userID string, guest bool, feature string) (*ConsumeResult, error) {
	usage, err := s.loadUsage(ctx, userID)
	if err != nil {
		return nil, err
	}
	counter, err := counterFor(&usage, feature)
	if err != nil {
		return nil, err
	}

	limit := freeLimit(guest)
	if *counter < limit {
		*counter++
		if err := s.KV.Set(ctx, models.DailyUsageKey(userID), usage); err != nil {
			return nil, err
		}
		balance, err := s.Balance(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &ConsumeResult{Feature: feature, RemainingFree: limit - *counter, Balance: balance}, nil
	}

	if guest {
		return nil, ErrLoginRequired
	}

	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < models.CreditCostPerUse {
		return nil, ErrInsufficientCredits
	}

	*counter++
	balance -= models.CreditCostPerUse

	// Two independent writes; the storage layer has no transactions, so a crash
	// between them leaves counters and balance out of step.
	if err := s.KV.Set(ctx, models.DailyUsageKey(userID), usage); err != nil {
		return nil, err
	}
	if err := s.KV.Set(ctx, models.UserCoinsKey(userID), models.CoinBalance{UserID: userID, Balance: balance}); err != nil {
		return nil, err
	}

	log.Printf("💰 %s paid %d credits for %s, balance now %d", userID, models.CreditCostPerUse, feature, balance)
	return &ConsumeResult{Feature: feature, ChargedCredits: models.CreditCostPerUse, Balance: balance}, nil
}

// Status returns today's counters and the credit balance without consuming.
func (s *QuotaService) Status(ctx context.Context, userID string, guest bool) (*QuotaStatus, error) {
	usage, err := s.loadUsage(ctx, userID)
	if err != nil {
		return nil, err
	}
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &QuotaStatus{
		Date:      usage.Date,
		FreeLimit: freeLimit(guest),
		Usage:     usage,
		Balance:   balance,
	}, nil
}

// Balance reads the paid-credit balance; absent or healed keys read as zero.
func (s *QuotaService) Balance(ctx context.Context, userID string) (int, error) {
	var coins models.CoinBalance
	if _, err := s.KV.Get(ctx, models.UserCoinsKey(userID), &coins); err != nil {
		return 0, err
	}
	return coins.Balance, nil
}

// AddCredits applies a top-up and returns the new balance.
func (s *QuotaService) AddCredits(ctx context.Context, userID string, amount int) (int, error) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return 0, err
	}
	balance += amount
	if err := s.KV.Set(ctx, models.UserCoinsKey(userID), models.CoinBalance{UserID: userID, Balance: balance}); err != nil {
		return 0, err
	}
	return balance, nil
}
