// Package rewrite produces enhanced article text with a generative model.
package rewrite

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const (
	// DefaultModel is the default Gemini model used for rewriting.
	DefaultModel = "gemini-2.5-flash"

	// DefaultMaxTokens bounds the generated output length.
	DefaultMaxTokens = int32(2000)

	// DefaultTemperature balances fidelity to the original against variation.
	DefaultTemperature = float32(0.7)

	systemInstruction = "You are a professional content editor and SEO specialist."

	rewritePromptTemplate = `Original Article: %s

Reference Articles: %s

Please rewrite and enhance the original article to match the style, formatting,
and quality of the reference articles. Keep the core message but improve:
1. Structure and flow
2. Engagement level
3. Professional tone
4. SEO optimization

Return only the enhanced article content.`
)

// Engine invokes the generative-text capability to rewrite an article
// against reference texts. It never falls back silently: callers decide
// what to do with a failed rewrite.
type Engine struct {
	gClient     *genai.Client
	modelName   string
	maxTokens   int32
	temperature float32
}

// Options configures an Engine.
type Options struct {
	APIKey      string
	Model       string
	MaxTokens   int32
	Temperature float32
}

// NewEngine creates a rewrite engine. The API key is taken from the options
// or, failing that, the GEMINI_API_KEY environment variable family.
func NewEngine(ctx context.Context, opts Options) (*Engine, error) {
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		if apiKey = os.Getenv("GOOGLE_GEMINI_API_KEY"); apiKey == "" {
			apiKey = os.Getenv("GOOGLE_AI_API_KEY")
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY or ai.gemini.api_key in the config file")
	}

	modelName := opts.Model
	if modelName == "" {
		modelName = DefaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Engine{
		gClient:     gClient,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// Rewrite asks the model to restructure and elevate the original using the
// references as style and quality exemplars. It returns an error on any
// capability failure (quota, network, empty response); it is the caller's
// decision to fall open to the original text.
func (e *Engine) Rewrite(ctx context.Context, original string, references []string) (string, error) {
	if original == "" {
		return "", fmt.Errorf("original content cannot be empty")
	}

	prompt := fmt.Sprintf(rewritePromptTemplate, original, strings.Join(references, "\n\n"))

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: e.maxTokens,
		Temperature:     genai.Ptr(e.temperature),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	resp, err := e.gClient.Models.GenerateContent(ctx, e.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate enhanced content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return strings.TrimSpace(text), nil
}

// GetModelName returns the model name used by this engine
func (e *Engine) GetModelName() string {
	return e.modelName
}
