package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers. The server injects it into
// the upload pipeline and the optimization workflow, so tests can substitute
// a canned implementation.
type Client interface {
	// Chat generates a free-text response for an optimization-phase prompt.
	Chat(ctx context.Context, prompt string) (string, error)
	// ChatJSON generates a JSON response for a prompt, with markdown fences stripped.
	ChatJSON(ctx context.Context, prompt string) (string, error)
	// Feedback analyzes an uploaded resume PDF against the given instructions
	// and returns the model's raw text response.
	Feedback(ctx context.Context, pdf []byte, instructions string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a new LLM client based on configuration.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Chat generates a free-text response using the lite tier.
func (c *GeminiClient) Chat(ctx context.Context, prompt string) (string, error) {
	model, err := c.model(TierLite)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// ChatJSON generates a JSON response using the standard tier.
func (c *GeminiClient) ChatJSON(ctx context.Context, prompt string) (string, error) {
	model, err := c.model(TierStandard)
	if err != nil {
		return "", err
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// Feedback analyzes a resume PDF with the advanced tier. The PDF travels as
// an inline blob part alongside the instruction text.
func (c *GeminiClient) Feedback(ctx context.Context, pdf []byte, instructions string) (string, error) {
	model, err := c.model(TierAdvanced)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: "application/pdf", Data: pdf},
		genai.Text(instructions),
	)
	if err != nil {
		return "", fmt.Errorf("failed to analyze resume: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *GeminiClient) model(tier ModelTier) (*genai.GenerativeModel, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	return model, nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
