// Package enrich fills in missing example words in an alphabet data file
// using a language model.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Generator produces one example word for a letter's dependent form.
type Generator interface {
	// Example returns a line like "काम (kaam) – Work" showing symbol's
	// dependent form in use.
	Example(ctx context.Context, symbol, dependentForm string) (string, error)
}

func examplePrompt(symbol, dependentForm string) string {
	return fmt.Sprintf(
		"Give one common Hindi word that uses the dependent (matra) form '%s' of the vowel '%s'. "+
			"Respond with exactly one line in the format: word (transliteration) – English meaning. "+
			"Nothing else.", dependentForm, symbol)
}

// OpenAIGenerator generates examples through the OpenAI chat API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator. An empty model uses GPT4oMini.
func NewOpenAIGenerator(apiKey, model string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGenerator{client: openai.NewClient(apiKey), model: model}, nil
}

// Example asks the model for one example word.
func (g *OpenAIGenerator) Example(ctx context.Context, symbol, dependentForm string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a Hindi language assistant.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: examplePrompt(symbol, dependentForm),
			},
		},
		MaxTokens:   60,
		Temperature: 0.6,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no example returned")
	}

	return firstLine(resp.Choices[0].Message.Content), nil
}

// GeminiGenerator generates examples through the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator. An empty model uses
// gemini-2.0-flash.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Example asks the model for one example word.
func (g *GeminiGenerator) Example(ctx context.Context, symbol, dependentForm string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(examplePrompt(symbol, dependentForm)), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no example returned")
	}
	return firstLine(text), nil
}

// firstLine trims the response down to the single line we asked for.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
