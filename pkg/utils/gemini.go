package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiItineraryClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiItineraryClient(ctx context.Context, apiKey, model string, temperature float32) (*GeminiItineraryClient, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiItineraryClient{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

func (c *GeminiItineraryClient) GenerateItineraryText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	// JSON mode keeps most fences and prose out of the reply.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(c.temperature)

	resp, err := m.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return "", fmt.Errorf("%w: gemini: %v", ErrModelBlocked, err)
		}
		return "", modelCallError(ctx, "gemini", err)
	}
	return geminiText(resp)
}

// geminiText joins the text parts of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: gemini returned no response", ErrModelUnavailable)
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("%w: gemini blocked prompt: %s", ErrModelBlocked, fb.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: gemini returned no candidates", ErrModelUnavailable)
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: gemini safety filter", ErrModelBlocked)
	}
	if cand.Content == nil {
		return "", fmt.Errorf("%w: gemini returned no content", ErrModelUnavailable)
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: gemini returned empty content", ErrModelUnavailable)
	}
	return b.String(), nil
}

func (c *GeminiItineraryClient) Close() error {
	return c.client.Close()
}
