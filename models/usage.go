package models

// DailyUsage tracks per-feature free-quota consumption for one user or guest.
// Counters reset whenever Date differs from today's date string; the comparison
// uses server local time with no timezone normalization.
type DailyUsage struct {
	UserID            string `json:"userId"`
	Date              string `json:"date"` // YYYY-MM-DD
	VerificationCount int    `json:"verificationCount"`
	ImageSourceCount  int    `json:"imageSourceCount"`
	OutfitChangeCount int    `json:"outfitChangeCount"`
}

// CoinBalance is a user's paid-credit balance, stored under its own key so a
// top-up never rewrites usage counters.
type CoinBalance struct {
	UserID  string `json:"userId"`
	Balance int    `json:"balance"`
}
