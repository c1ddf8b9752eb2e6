// Package assistant proxies pet-symptom descriptions to the Gemini API and
// returns the generated analysis text.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// ErrAnalysisFailed is returned for any transport or API failure. Callers
// show its text verbatim; the upstream failure detail goes to the log only.
var ErrAnalysisFailed = errors.New("Diagnostic analysis failed. Please try again later.")

// fallbackText is returned when the API answers successfully but with no
// usable candidate text.
const fallbackText = "I'm sorry, I couldn't process that request."

const systemInstruction = `You are an expert Veterinary Diagnostic Assistant.
Analyze the user's description and optional photo of their pet's health concern.
Provide:
1. A list of potential differential diagnoses (what it could be).
2. Suggested diagnostic tests (e.g., blood work, X-ray, Ultrasound).
3. Urgency level (Routine, Urgent, Emergency).

CRITICAL DISCLAIMER: Always state that you are an AI assistant and not a replacement for a licensed veterinarian.
Urge the user to see a professional immediately for diagnosis.
Keep the tone professional, empathetic, and informative.`

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client makes one generateContent call per analysis. No retries, no
// streaming; cancellation comes from the request context.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     zerolog.Logger
}

func NewClient(apiKey, model string, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		logger:     logger,
	}
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Analyze sends the symptom description, with an optional base64 JPEG, and
// returns the model's analysis. imageData may carry a data-URI prefix; only
// the base64 payload is forwarded.
func (c *Client) Analyze(ctx context.Context, description, imageData string) (string, error) {
	parts := []part{{Text: description}}
	if imageData != "" {
		if i := strings.Index(imageData, ","); i >= 0 {
			imageData = imageData[i+1:]
		}
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: "image/jpeg",
			Data:     imageData,
		}})
	}

	body, err := json.Marshal(generateRequest{
		Contents:          []content{{Parts: parts}},
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		GenerationConfig:  &generationConfig{Temperature: 0.7},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("gemini request failed")
		return "", ErrAnalysisFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().Int("status", resp.StatusCode).Msg("gemini returned non-200")
		return "", ErrAnalysisFailed
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Error().Err(err).Msg("gemini response undecodable")
		return "", ErrAnalysisFailed
	}

	text := extractText(&out)
	if text == "" {
		return fallbackText, nil
	}
	return text, nil
}

func extractText(resp *generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}
