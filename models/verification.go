package models

// CaptureMetadata describes the claimed capture conditions of the edited photo.
// Validation failure (wrong camera, missing EXIF) costs a flat score penalty.
type CaptureMetadata struct {
	CameraModel string `json:"cameraModel,omitempty"`
	HasExif     bool   `json:"hasExif"`
	Valid       bool   `json:"valid"`
}

// VerificationRequest is the user-supplied half of a history record.
type VerificationRequest struct {
	ReferencePhotos []string         `json:"referencePhotos"`
	EditedPhoto     string           `json:"editedPhoto"`
	Metadata        *CaptureMetadata `json:"metadata,omitempty"`
}

// VerificationResult holds the AI sub-scores and the derived verdict.
// VerificationCode plus DeviceID together are the only lookup key; there is no
// uniqueness guarantee behind them, collisions are possible and unhandled.
type VerificationResult struct {
	SubjectType      string  `json:"subjectType,omitempty"`
	SameSubject      bool    `json:"sameSubject"`
	SameGender       bool    `json:"sameGender"`
	Similarity       float64 `json:"similarity"`
	Texture          float64 `json:"texture"`
	Proportions      float64 `json:"proportions"`
	Lighting         float64 `json:"lighting"`
	Score            float64 `json:"score"`
	Verdict          string  `json:"verdict"`
	Reasoning        string  `json:"reasoning,omitempty"`
	VerificationCode string  `json:"verificationCode"`
	DeviceID         string  `json:"deviceId"`
}

// VerificationRecord pairs a request with its result in the owner's history.
type VerificationRecord struct {
	RecordID    string              `json:"recordId"`
	UserID      string              `json:"userId"`
	Request     VerificationRequest `json:"request"`
	Result      VerificationResult  `json:"result"`
	Description string              `json:"description,omitempty"`
	CreatedAt   string              `json:"createdAt"`
}
