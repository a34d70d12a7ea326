package services

import (
	"context"
	"errors"
	"testing"

	"trueshot_server/models"
	"trueshot_server/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultyKV fails reads of a single key to exercise storage-error paths.
type faultyKV struct {
	*memoryKV
	failKey string
	err     error
}

func (f *faultyKV) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	if key == f.failKey {
		return false, f.err
	}
	return f.memoryKV.Get(ctx, key, out)
}

func TestConsume_GuestHardBlock(t *testing.T) {
	t.Parallel()

	svc := &QuotaService{KV: newMemoryKV()}
	ctx := context.Background()

	// first use of the day is free
	result, err := svc.Consume(ctx, "guest_dev1", true, models.FeatureVerification)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ChargedCredits)
	assert.Equal(t, 0, result.RemainingFree)

	// second use the same day is blocked, no credit fallback for guests
	_, err = svc.Consume(ctx, "guest_dev1", true, models.FeatureVerification)
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestConsume_UserFreeThenCredits(t *testing.T) {
	t.Parallel()

	svc := &QuotaService{KV: newMemoryKV()}
	ctx := context.Background()

	for i := 0; i < models.FreeDailyLimitUser; i++ {
		result, err := svc.Consume(ctx, "u1", false, models.FeatureOutfitChange)
		require.NoError(t, err)
		assert.Equal(t, 0, result.ChargedCredits)
	}

	// free quota spent, no balance
	_, err := svc.Consume(ctx, "u1", false, models.FeatureOutfitChange)
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	balance, err := svc.AddCredits(ctx, "u1", 150)
	require.NoError(t, err)
	assert.Equal(t, 150, balance)

	result, err := svc.Consume(ctx, "u1", false, models.FeatureOutfitChange)
	require.NoError(t, err)
	assert.Equal(t, models.CreditCostPerUse, result.ChargedCredits)
	assert.Equal(t, 50, result.Balance)

	// 50 left is below the flat cost
	_, err = svc.Consume(ctx, "u1", false, models.FeatureOutfitChange)
	assert.ErrorIs(t, err, ErrInsufficientCredits)
}

func TestConsume_CountersIndependentPerFeature(t *testing.T) {
	t.Parallel()

	svc := &QuotaService{KV: newMemoryKV()}
	ctx := context.Background()

	// a guest's single free use of one feature does not spend the others
	_, err := svc.Consume(ctx, "guest_dev2", true, models.FeatureVerification)
	require.NoError(t, err)

	_, err = svc.Consume(ctx, "guest_dev2", true, models.FeatureImageSource)
	require.NoError(t, err)

	_, err = svc.Consume(ctx, "guest_dev2", true, models.FeatureOutfitChange)
	require.NoError(t, err)

	_, err = svc.Consume(ctx, "guest_dev2", true, models.FeatureImageSource)
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestConsume_ResetsOnStaleDate(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	svc := &QuotaService{KV: kv}
	ctx := context.Background()

	// stored counters are maxed but under yesterday's date
	require.NoError(t, kv.Set(ctx, models.DailyUsageKey("u2"), models.DailyUsage{
		UserID:            "u2",
		Date:              "2020-01-01",
		VerificationCount: 99,
		ImageSourceCount:  99,
		OutfitChangeCount: 99,
	}))

	result, err := svc.Consume(ctx, "u2", false, models.FeatureVerification)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ChargedCredits)
	assert.Equal(t, models.FreeDailyLimitUser-1, result.RemainingFree)

	status, err := svc.Status(ctx, "u2", false)
	require.NoError(t, err)
	assert.Equal(t, utils.TodayString(), status.Usage.Date)
	assert.Equal(t, 1, status.Usage.VerificationCount)
	assert.Equal(t, 0, status.Usage.ImageSourceCount)
}

func TestConsume_BalanceReadFailureSurfaces(t *testing.T) {
	t.Parallel()

	readErr := errors.New("storage unavailable")
	kv := &faultyKV{memoryKV: newMemoryKV(), failKey: models.UserCoinsKey("u4"), err: readErr}
	svc := &QuotaService{KV: kv}

	// even a within-quota consume reports the balance; a failed read must
	// surface instead of returning a zero balance as fact
	_, err := svc.Consume(context.Background(), "u4", false, models.FeatureVerification)
	assert.ErrorIs(t, err, readErr)
}

func TestConsume_UnknownFeature(t *testing.T) {
	t.Parallel()

	svc := &QuotaService{KV: newMemoryKV()}
	_, err := svc.Consume(context.Background(), "u3", false, "teleport")
	assert.Error(t, err)
}
