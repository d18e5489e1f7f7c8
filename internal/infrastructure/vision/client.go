package vision

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/labelcheck/backend/internal/domain"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

const (
	defaultModel = "gemini-2.0-flash"
	maxRetries   = 3
)

// extractionPrompt instructs the model to return only the structured label
// fields. Fields the model cannot read must come back null, not guessed.
const extractionPrompt = `You are reading a photograph of an alcohol beverage label.
Extract the following fields and respond with ONLY a JSON object, no markdown, no commentary:
{
  "brand_name": string or null,
  "product_description": string or null (the product type wording on the label, e.g. "Kentucky Straight Bourbon Whiskey"),
  "alcohol_content": number or null (percent alcohol by volume, e.g. 12.5),
  "net_contents": string or null (the volume statement exactly as printed, e.g. "750 mL"),
  "has_warning_statement": boolean (true if a GOVERNMENT WARNING statement is visible)
}
Use null for any field you cannot read confidently. Never invent values.`

// Client extracts label fields from images via the Gemini API
type Client struct {
	genaiClient *genai.Client
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Gemini-backed label extractor
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}

	genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	// Stay well under the per-minute quota of the free Gemini tier
	limiter := rate.NewLimiter(rate.Limit(0.25), 5)

	return &Client{
		genaiClient: genaiClient,
		model:       model,
		rateLimiter: limiter,
	}, nil
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Close releases the underlying Gemini client
func (c *Client) Close() error {
	return c.genaiClient.Close()
}

// ExtractLabel sends the label image to Gemini and parses the structured
// response into an ExtractedRecord. Transient failures are retried with
// exponential backoff; a final failure surfaces as ErrExtractionFailed.
func (c *Client) ExtractLabel(ctx context.Context, imageData []byte, mimeType string) (*domain.ExtractedRecord, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrExtractionFailed)
	}

	model := c.genaiClient.GenerativeModel(c.model)
	model.SetTemperature(0)

	format := imageFormat(mimeType)
	if c.debug {
		log.Printf("[VISION] extracting label fields (model=%s, format=%s, bytes=%d)",
			c.model, format, len(imageData))
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := model.GenerateContent(ctx,
			genai.ImageData(format, imageData),
			genai.Text(extractionPrompt),
		)
		if err != nil {
			if c.debug {
				log.Printf("[VISION] generate error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		text, err := responseText(resp)
		if err != nil {
			if c.debug {
				log.Printf("[VISION] response error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		record, err := ParseExtraction(text)
		if err != nil {
			if c.debug {
				log.Printf("[VISION] parse error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		if c.debug {
			log.Printf("[VISION] extraction complete: brand=%v description=%v abv=%v volume=%v warning=%v",
				deref(record.BrandName), deref(record.ProductDescription),
				derefFloat(record.AlcoholContent), deref(record.NetContents),
				record.HasWarningStatement)
		}
		return record, nil
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, lastErr)
}

// responseText pulls the text part out of a Gemini response
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from gemini")
	}

	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}
	return "", fmt.Errorf("unexpected response format from gemini")
}

// imageFormat maps a MIME type to the format string genai expects
func imageFormat(mimeType string) string {
	mimeType = strings.ToLower(mimeType)
	if rest, ok := strings.CutPrefix(mimeType, "image/"); ok && rest != "" {
		return rest
	}
	return "jpeg"
}

// exponentialBackoff returns the sleep duration for a retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}

func deref(s *string) string {
	if s == nil {
		return "<absent>"
	}
	return *s
}

func derefFloat(f *float64) string {
	if f == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%.1f", *f)
}
