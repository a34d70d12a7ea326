package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Upstream failure classes. The hosted endpoints return no structured error
// codes, so callers branch on these sentinels via errors.Is.
var (
	ErrAITimeout       = errors.New("ai endpoint timed out")
	ErrAINetwork       = errors.New("ai endpoint unreachable")
	ErrAIMalformed     = errors.New("ai endpoint returned a malformed response")
	ErrPayloadTooLarge = errors.New("image payload too large, recompress and retry")
)

const (
	defaultAIBaseURL = "https://toolkit.rork.com"
	analyzePath      = "/text/llm/"
	editPath         = "/images/edit/"
)

// AIMessagePart is one element of a multimodal message: either text or a
// base64-encoded image.
type AIMessagePart struct {
	Type  string `json:"type"` // "text" or "image"
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

// AIMessage is a single chat-style message sent to the analysis endpoint.
type AIMessage struct {
	Role    string          `json:"role"`
	Content []AIMessagePart `json:"content"`
}

// AnalysisResult is the schema-validated object extracted from the analysis
// completion text.
type AnalysisResult struct {
	SubjectType string  `json:"subjectType"`
	SameSubject bool    `json:"sameSubject"`
	SameGender  bool    `json:"sameGender"`
	Similarity  float64 `json:"similarity"`
	Texture     float64 `json:"texture"`
	Proportions float64 `json:"proportions"`
	Lighting    float64 `json:"lighting"`
	Reasoning   string  `json:"reasoning"`
}

// EditImageInput is one input image for the edit endpoint. Type is "image" for
// the photo being edited or "reference" for style references.
type EditImageInput struct {
	Type  string `json:"type"`
	Image string `json:"image"`
}

// EditedImage is the edit endpoint's output in either of its two shapes:
// inline base64 data or a hosted URL.
type EditedImage struct {
	MimeType   string `json:"mimeType,omitempty"`
	Base64Data string `json:"base64Data,omitempty"`
	URL        string `json:"url,omitempty"`
}

// AIClient calls the hosted analysis and image-edit endpoints. Analysis calls
// are retried up to MaxRetries times with exponential backoff starting at
// RetryInitial, doubling, capped at 15s.
type AIClient struct {
	BaseURL      string
	HTTP         *http.Client
	RetryInitial time.Duration
	MaxRetries   uint64
}

// NewAIClient builds a client from AI_API_BASE_URL, defaulting to the hosted
// toolkit endpoints.
func NewAIClient() *AIClient {
	base := os.Getenv("AI_API_BASE_URL")
	if base == "" {
		base = defaultAIBaseURL
	}
	return &AIClient{
		BaseURL:      base,
		HTTP:         &http.Client{Timeout: 60 * time.Second},
		RetryInitial: 3 * time.Second,
		MaxRetries:   3,
	}
}

// AnalyzeImages sends the multimodal prompt to the analysis endpoint and
// extracts the structured verdict object from the completion text.
func (c *AIClient) AnalyzeImages(ctx context.Context, messages []AIMessage) (*AnalysisResult, error) {
	var result *AnalysisResult
	operation := func() error {
		completion, err := c.postCompletion(ctx, messages)
		if err != nil {
			return err
		}
		parsed, err := parseAnalysisCompletion(completion)
		if err != nil {
			log.Printf("⚠️ Malformed analysis completion, will retry: %v", err)
			return err
		}
		result = parsed
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.RetryInitial
	b.Multiplier = 2
	b.MaxInterval = 15 * time.Second
	b.RandomizationFactor = 0

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, c.MaxRetries), ctx))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DescribeImageSource asks the analysis endpoint for a free-text guess at
// where an image came from.
func (c *AIClient) DescribeImageSource(ctx context.Context, imageBase64 string) (string, error) {
	messages := []AIMessage{
		{
			Role: "user",
			Content: []AIMessagePart{
				{Type: "text", Text: "Identify the likely source of this image: original camera capture, social media repost, AI generation, or screenshot. Explain briefly."},
				{Type: "image", Image: imageBase64},
			},
		},
	}
	return c.postCompletion(ctx, messages)
}

// EditImage calls the image-edit endpoint. HTTP 413 maps to ErrPayloadTooLarge
// so the caller can prompt for client-side recompression.
func (c *AIClient) EditImage(ctx context.Context, prompt string, images []EditImageInput, aspectRatio string) (*EditedImage, error) {
	payload := map[string]interface{}{
		"prompt":      prompt,
		"images":      images,
		"aspectRatio": aspectRatio,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+editPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusRequestEntityTooLarge {
		return nil, ErrPayloadTooLarge
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("edit endpoint returned status %d: %w", resp.StatusCode, ErrAIMalformed)
	}

	var decoded struct {
		Image  *EditedImage `json:"image"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
		Output []struct {
			URL string `json:"url"`
		} `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding edit response: %w", ErrAIMalformed)
	}

	switch {
	case decoded.Image != nil && decoded.Image.Base64Data != "":
		return decoded.Image, nil
	case len(decoded.Images) > 0 && decoded.Images[0].URL != "":
		return &EditedImage{URL: decoded.Images[0].URL}, nil
	case len(decoded.Output) > 0 && decoded.Output[0].URL != "":
		return &EditedImage{URL: decoded.Output[0].URL}, nil
	}
	return nil, fmt.Errorf("edit response contained no image: %w", ErrAIMalformed)
}

// postCompletion posts a messages payload and returns the completion text.
func (c *AIClient) postCompletion(ctx context.Context, messages []AIMessage) (string, error) {
	body, err := json.Marshal(map[string]interface{}{"messages": messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+analyzePath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		log.Printf("❌ Analysis endpoint returned status %d: %s", resp.StatusCode, string(raw))
		if resp.StatusCode >= 500 {
			return "", fmt.Errorf("analysis endpoint status %d: %w", resp.StatusCode, ErrAINetwork)
		}
		return "", backoff.Permanent(fmt.Errorf("analysis endpoint status %d: %w", resp.StatusCode, ErrAIMalformed))
	}

	var decoded struct {
		Completion string `json:"completion"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decoding analysis response: %w", ErrAIMalformed)
	}
	if decoded.Completion == "" {
		return "", fmt.Errorf("empty completion: %w", ErrAIMalformed)
	}
	return decoded.Completion, nil
}

// parseAnalysisCompletion extracts the JSON object embedded in the completion
// text and validates its score ranges.
func parseAnalysisCompletion(completion string) (*AnalysisResult, error) {
	start := strings.Index(completion, "{")
	end := strings.LastIndex(completion, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in completion: %w", ErrAIMalformed)
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(completion[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("invalid analysis object: %w", ErrAIMalformed)
	}
	for _, v := range []float64{result.Similarity, result.Texture, result.Proportions, result.Lighting} {
		if v < 0 || v > 100 {
			return nil, fmt.Errorf("sub-score %v out of range: %w", v, ErrAIMalformed)
		}
	}
	return &result, nil
}

// classifyTransportError maps transport failures to the retryable sentinels.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%v: %w", err, ErrAITimeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%v: %w", err, ErrAITimeout)
	}
	return fmt.Errorf("%v: %w", err, ErrAINetwork)
}
