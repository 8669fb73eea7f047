// Package ai wraps the OpenAI-compatible vision API used to read
// coffee bag labels from photos.
package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.2
	maxResponseTokens  = 800
)

// Config describes how the vision client should be initialised.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
}

// Client answers "what does this coffee bag say" questions.
type Client struct {
	llm         *openai.LLM
	model       string
	temperature float64
}

// BagInfo is the normalised metadata extracted from a bag photo.
// Fields the model could not read stay empty; callers treat everything
// as a suggestion the user can correct.
type BagInfo struct {
	Roaster      string   `json:"roaster,omitempty"`
	Name         string   `json:"name,omitempty"`
	Origin       string   `json:"origin,omitempty"`
	Process      string   `json:"process,omitempty"`
	RoastLevel   string   `json:"roast_level,omitempty"`
	RoastDate    string   `json:"roast_date,omitempty"` // "YYYY-MM-DD" when legible
	WeightG      float64  `json:"weight_g,omitempty"`
	TastingNotes []string `json:"tasting_notes,omitempty"`
}

// NewClient builds a Client for the configured OpenAI-compatible endpoint.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("ai: api key must not be empty")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("ai: create client: %w", err)
	}

	temp := cfg.Temperature
	if temp <= 0 {
		temp = defaultTemperature
	}

	return &Client{llm: llm, model: model, temperature: temp}, nil
}

const bagPrompt = `Read the coffee bag in the photo and answer with a single JSON object:
{"roaster": string, "name": string, "origin": string, "process": string,
 "roast_level": string, "roast_date": "YYYY-MM-DD", "weight_g": number,
 "tasting_notes": [string]}.
Leave out any field you cannot read. Respond with JSON only, no prose.`

// AnalyzeBagPhoto sends the image to the model and parses the returned
// bag metadata.
func (c *Client) AnalyzeBagPhoto(ctx context.Context, image []byte, mimeType string) (BagInfo, error) {
	if len(image) == 0 {
		return BagInfo{}, errors.New("ai: image must not be empty")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := c.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem,
				"You are a barista's assistant that transcribes coffee bag labels precisely."),
			{
				Role: llms.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{
					llms.ImageURLPart(dataURL),
					llms.TextPart(bagPrompt),
				},
			},
		},
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(maxResponseTokens),
		llms.WithJSONMode(),
	)
	if err != nil {
		return BagInfo{}, fmt.Errorf("ai: analyze bag photo: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return BagInfo{}, errors.New("ai: empty model response")
	}

	return parseBagInfo(resp.Choices[0].Content)
}

// parseBagInfo decodes the model's JSON, tolerating markdown fences
// some models wrap around the payload despite instructions.
func parseBagInfo(content string) (BagInfo, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var info BagInfo
	if err := json.Unmarshal([]byte(content), &info); err != nil {
		return BagInfo{}, fmt.Errorf("ai: parse bag metadata: %w", err)
	}
	normalizeBagInfo(&info)
	return info, nil
}

func normalizeBagInfo(info *BagInfo) {
	info.Roaster = strings.TrimSpace(info.Roaster)
	info.Name = strings.TrimSpace(info.Name)
	info.Origin = strings.TrimSpace(info.Origin)
	info.Process = strings.TrimSpace(info.Process)
	info.RoastLevel = strings.TrimSpace(info.RoastLevel)
	info.RoastDate = strings.TrimSpace(info.RoastDate)
	notes := info.TastingNotes[:0]
	for _, n := range info.TastingNotes {
		if n = strings.TrimSpace(n); n != "" {
			notes = append(notes, n)
		}
	}
	info.TastingNotes = notes
}
