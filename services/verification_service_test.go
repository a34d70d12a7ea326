package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"trueshot_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCredibilityScore_DifferentSubjectCapped(t *testing.T) {
	t.Parallel()

	for _, similarity := range []float64{0, 10, 50, 79.9, 80, 100} {
		score := ComputeCredibilityScore(ScoreInput{
			Similarity:    similarity,
			Texture:       100,
			Proportions:   100,
			Lighting:      100,
			SameSubject:   false,
			SameGender:    true,
			MetadataValid: true,
		})
		assert.LessOrEqual(t, score, 2.0, "similarity=%v", similarity)
	}

	// above 80 similarity the cap itself binds
	score := ComputeCredibilityScore(ScoreInput{Similarity: 100, MetadataValid: true})
	assert.Equal(t, 2.0, score)
}

func TestComputeCredibilityScore_GenderMismatchCapped(t *testing.T) {
	t.Parallel()

	score := ComputeCredibilityScore(ScoreInput{
		Similarity:    100,
		SameSubject:   true,
		SameGender:    false,
		MetadataValid: true,
	})
	assert.Equal(t, 1.5, score)
}

func TestComputeCredibilityScore_SameSubjectRange(t *testing.T) {
	t.Parallel()

	inputs := []ScoreInput{
		{Similarity: 0, Texture: 0, Proportions: 0, Lighting: 0},
		{Similarity: 55, Texture: 60, Proportions: 52, Lighting: 70},
		{Similarity: 100, Texture: 100, Proportions: 100, Lighting: 100},
	}
	for _, in := range inputs {
		in.SameSubject = true
		in.SameGender = true
		in.MetadataValid = true
		score := ComputeCredibilityScore(in)
		assert.GreaterOrEqual(t, score, 5.0, "%+v", in)
		assert.LessOrEqual(t, score, 10.0, "%+v", in)
	}
}

func TestComputeCredibilityScore_WeakDimensionCap(t *testing.T) {
	t.Parallel()

	// blend = (50 + 6 + 25 + 10)/10 = 9.1, but texture < 50 caps it at 7
	score := ComputeCredibilityScore(ScoreInput{
		Similarity:    100,
		Texture:       40,
		Proportions:   100,
		Lighting:      100,
		SameSubject:   true,
		SameGender:    true,
		MetadataValid: true,
	})
	assert.Equal(t, 7.0, score)
}

func TestComputeCredibilityScore_MetadataPenalty(t *testing.T) {
	t.Parallel()

	in := ScoreInput{
		Similarity:  90,
		Texture:     90,
		Proportions: 90,
		Lighting:    90,
		SameSubject: true,
		SameGender:  true,
	}

	in.MetadataValid = true
	assert.Equal(t, 9.0, ComputeCredibilityScore(in))

	in.MetadataValid = false
	assert.Equal(t, 7.5, ComputeCredibilityScore(in))

	// floored at zero for already-low mismatch scores
	floor := ComputeCredibilityScore(ScoreInput{Similarity: 0, MetadataValid: false})
	assert.Equal(t, 0.0, floor)
}

func TestVerdictForScore_Boundaries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.VerdictAuthentic, VerdictForScore(9.0))
	assert.Equal(t, models.VerdictSlightlyEdited, VerdictForScore(8.9999))
	assert.Equal(t, models.VerdictSlightlyEdited, VerdictForScore(7.5))
	assert.Equal(t, models.VerdictHeavilyEdited, VerdictForScore(5.0))
	assert.Equal(t, models.VerdictHeavilyEdited, VerdictForScore(7.4999))
	assert.Equal(t, models.VerdictSuspicious, VerdictForScore(4.99))
}

func TestPerformVerification_Pipeline(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validCompletion))
	}))
	defer ts.Close()

	kv := newMemoryKV()
	svc := &VerificationService{KV: kv, AI: newTestAIClient(ts.URL)}
	ctx := context.Background()

	record, err := svc.PerformVerification(ctx, "u1", "dev-a", models.VerificationRequest{
		ReferencePhotos: []string{"ref1", "ref2"},
		EditedPhoto:     "edited",
		Metadata:        &models.CaptureMetadata{Valid: true},
	})
	require.NoError(t, err)

	// sub-scores 90/85/88/80 blend to 8.775
	assert.InDelta(t, 8.775, record.Result.Score, 0.0001)
	assert.Equal(t, models.VerdictSlightlyEdited, record.Result.Verdict)
	assert.Regexp(t, `^\d{4}$`, record.Result.VerificationCode)
	assert.Equal(t, "dev-a", record.Result.DeviceID)

	// the record landed at the head of the owner's history
	history, err := svc.GetHistory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, record.RecordID, history[0].RecordID)

	// invalid metadata costs the flat penalty on the same sub-scores
	record2, err := svc.PerformVerification(ctx, "u1", "dev-a", models.VerificationRequest{
		ReferencePhotos: []string{"ref1"},
		EditedPhoto:     "edited",
		Metadata:        &models.CaptureMetadata{Valid: false},
	})
	require.NoError(t, err)
	assert.InDelta(t, 7.275, record2.Result.Score, 0.0001)
	assert.Equal(t, models.VerdictHeavilyEdited, record2.Result.Verdict)
}

func seedHistory(t *testing.T, kv KVStore, userID string, records []models.VerificationRecord) {
	t.Helper()
	require.NoError(t, kv.Set(context.Background(), models.VerificationHistoryKey(userID), records))
}

func TestLookupByCode(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	svc := &VerificationService{KV: kv}
	ctx := context.Background()

	seedHistory(t, kv, "u1", []models.VerificationRecord{
		{RecordID: "r1", UserID: "u1", Result: models.VerificationResult{VerificationCode: "1234", DeviceID: "dev-a"}},
		{RecordID: "r2", UserID: "u1", Result: models.VerificationResult{VerificationCode: "5678", DeviceID: "dev-b"}},
	})

	record, err := svc.LookupByCode(ctx, "u1", "5678", "dev-b")
	require.NoError(t, err)
	assert.Equal(t, "r2", record.RecordID)

	// same code, wrong device id
	_, err = svc.LookupByCode(ctx, "u1", "5678", "dev-a")
	assert.ErrorIs(t, err, ErrNotFound)

	// another owner's namespace is never consulted
	_, err = svc.LookupByCode(ctx, "u2", "1234", "dev-a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttachDescriptionAndDelete(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	svc := &VerificationService{KV: kv}
	ctx := context.Background()

	seedHistory(t, kv, "u1", []models.VerificationRecord{
		{RecordID: "r1", UserID: "u1"},
		{RecordID: "r2", UserID: "u1"},
	})

	record, err := svc.AttachDescription(ctx, "u1", "r2", "my vacation photo")
	require.NoError(t, err)
	assert.Equal(t, "my vacation photo", record.Description)

	history, err := svc.GetHistory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "my vacation photo", history[1].Description)

	require.NoError(t, svc.DeleteRecord(ctx, "u1", "r1"))
	history, err = svc.GetHistory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "r2", history[0].RecordID)

	assert.ErrorIs(t, svc.DeleteRecord(ctx, "u1", "r1"), ErrNotFound)
	_, err = svc.AttachDescription(ctx, "u1", "missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}
