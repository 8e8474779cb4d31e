package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/xavierca1/ligue-prospector/internal/entity"
)

// Client completes outreach prompts with a Gemini model.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not configured", entity.ErrConfigurationMissing)
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		MaxOutputTokens: 800,
	})
	if err != nil {
		return "", fmt.Errorf("%w: gemini generate: %v", entity.ErrUpstreamRequestFailed, err)
	}
	return resp.Text(), nil
}
