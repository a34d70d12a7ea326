package models

// Verdict labels assigned from the final credibility score
const (
	VerdictAuthentic      = "authentic"
	VerdictSlightlyEdited = "slightly-edited"
	VerdictHeavilyEdited  = "heavily-edited"
	VerdictSuspicious     = "suspicious"
)

// Friend request statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Quota-gated AI features
const (
	FeatureVerification = "verification"
	FeatureImageSource  = "imageSource"
	FeatureOutfitChange = "outfitChange"
)

// Quota rules
const (
	FreeDailyLimitUser  = 5
	FreeDailyLimitGuest = 1
	CreditCostPerUse    = 100
)
