package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"trueshot_server/models"

	"github.com/google/uuid"
)

// ScoreInput carries the four AI-estimated sub-scores (0-100) and the subject
// flags the credibility score is computed from.
type ScoreInput struct {
	Similarity    float64
	Texture       float64
	Proportions   float64
	Lighting      float64
	SameSubject   bool
	SameGender    bool
	MetadataValid bool
}

// ComputeCredibilityScore maps the sub-scores into a single 0-10 trust score.
// Mismatched-subject cases are capped asymmetrically low so they can never read
// as trustworthy, and a same-subject match never blends below 5. A single weak
// dimension (similarity, texture or proportions under 50) caps the blend at 7.
// Invalid capture metadata costs a flat 1.5, floored at 0.
func ComputeCredibilityScore(in ScoreInput) float64 {
	var score float64
	switch {
	case !in.SameSubject:
		score = in.Similarity * 0.025
		if score > 2 {
			score = 2
		}
	case !in.SameGender:
		score = in.Similarity * 0.02
		if score > 1.5 {
			score = 1.5
		}
	default:
		score = (0.50*in.Similarity + 0.15*in.Texture + 0.25*in.Proportions + 0.10*in.Lighting) / 10
		if score < 5 {
			score = 5
		}
		if score > 10 {
			score = 10
		}
		if (in.Similarity < 50 || in.Texture < 50 || in.Proportions < 50) && score > 7 {
			score = 7
		}
	}

	if !in.MetadataValid {
		score -= 1.5
		if score < 0 {
			score = 0
		}
	}
	return score
}

// VerdictForScore maps a final score to its verdict label. Boundaries are
// inclusive on the lower end.
func VerdictForScore(score float64) string {
	switch {
	case score >= 9:
		return models.VerdictAuthentic
	case score >= 7.5:
		return models.VerdictSlightlyEdited
	case score >= 5:
		return models.VerdictHeavilyEdited
	default:
		return models.VerdictSuspicious
	}
}

// VerificationService runs the analysis pipeline and owns the per-user history.
type VerificationService struct {
	KV KVStore
	AI *AIClient
}

const analysisPrompt = "Compare the reference photos against the edited photo. " +
	"Respond with a JSON object: {\"subjectType\", \"sameSubject\", \"sameGender\", " +
	"\"similarity\", \"texture\", \"proportions\", \"lighting\", \"reasoning\"}. " +
	"All four scores are 0-100."

// PerformVerification analyzes the photos, scores the result, assigns a 4-digit
// lookup code and prepends the record to the owner's history.
func (s *VerificationService) PerformVerification(ctx context.Context, userID, deviceID string, req models.VerificationRequest) (*models.VerificationRecord, error) {
	parts := []AIMessagePart{{Type: "text", Text: analysisPrompt}}
	for _, photo := range req.ReferencePhotos {
		parts = append(parts, AIMessagePart{Type: "image", Image: photo})
	}
	parts = append(parts, AIMessagePart{Type: "image", Image: req.EditedPhoto})

	analysis, err := s.AI.AnalyzeImages(ctx, []AIMessage{{Role: "user", Content: parts}})
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	metadataValid := req.Metadata == nil || req.Metadata.Valid
	score := ComputeCredibilityScore(ScoreInput{
		Similarity:    analysis.Similarity,
		Texture:       analysis.Texture,
		Proportions:   analysis.Proportions,
		Lighting:      analysis.Lighting,
		SameSubject:   analysis.SameSubject,
		SameGender:    analysis.SameGender,
		MetadataValid: metadataValid,
	})

	record := models.VerificationRecord{
		RecordID: uuid.New().String(),
		UserID:   userID,
		Request:  req,
		Result: models.VerificationResult{
			SubjectType:      analysis.SubjectType,
			SameSubject:      analysis.SameSubject,
			SameGender:       analysis.SameGender,
			Similarity:       analysis.Similarity,
			Texture:          analysis.Texture,
			Proportions:      analysis.Proportions,
			Lighting:         analysis.Lighting,
			Score:            score,
			Verdict:          VerdictForScore(score),
			Reasoning:        analysis.Reasoning,
			VerificationCode: fmt.Sprintf("%04d", rand.Intn(10000)),
			DeviceID:         deviceID,
		},
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	history, err := s.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	history = append([]models.VerificationRecord{record}, history...)
	if err := s.KV.Set(ctx, models.VerificationHistoryKey(userID), history); err != nil {
		return nil, err
	}

	log.Printf("✅ Verification completed for %s: score=%.2f verdict=%s code=%s", userID, score, record.Result.Verdict, record.Result.VerificationCode)
	return &record, nil
}

// GetHistory returns the owner's records, newest first. A missing or healed key
// yields an empty history.
func (s *VerificationService) GetHistory(ctx context.Context, userID string) ([]models.VerificationRecord, error) {
	var history []models.VerificationRecord
	if _, err := s.KV.Get(ctx, models.VerificationHistoryKey(userID), &history); err != nil {
		return nil, err
	}
	return history, nil
}

// AttachDescription sets the user-authored description on one record, the only
// mutation a completed result allows.
func (s *VerificationService) AttachDescription(ctx context.Context, userID, recordID, description string) (*models.VerificationRecord, error) {
	history, err := s.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range history {
		if history[i].RecordID == recordID {
			history[i].Description = description
			if err := s.KV.Set(ctx, models.VerificationHistoryKey(userID), history); err != nil {
				return nil, err
			}
			return &history[i], nil
		}
	}
	return nil, ErrNotFound
}

// DeleteRecord removes one record from the owner's history.
func (s *VerificationService) DeleteRecord(ctx context.Context, userID, recordID string) error {
	history, err := s.GetHistory(ctx, userID)
	if err != nil {
		return err
	}
	for i := range history {
		if history[i].RecordID == recordID {
			history = append(history[:i], history[i+1:]...)
			return s.KV.Set(ctx, models.VerificationHistoryKey(userID), history)
		}
	}
	return ErrNotFound
}

// LookupByCode resolves a 4-digit code plus device id by linear scan over the
// owner's own history. It cannot locate another account's records; the
// cross-device sharing the original UI implied was never backed by storage.
func (s *VerificationService) LookupByCode(ctx context.Context, ownerID, code, deviceID string) (*models.VerificationRecord, error) {
	history, err := s.GetHistory(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range history {
		if history[i].Result.VerificationCode == code && history[i].Result.DeviceID == deviceID {
			return &history[i], nil
		}
	}
	return nil, ErrNotFound
}
