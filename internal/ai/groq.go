package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Analyzer defines the model-call interface used by the orchestrator. It
// returns the raw completion text; parsing is a separate, total step.
type Analyzer interface {
	// AnalyzeContent sends the prepared content to the model and returns
	// the raw reply.
	AnalyzeContent(ctx context.Context, prompt string) (string, error)
}

// GroqClient implements Analyzer against an OpenAI-compatible chat
// completion API (Groq by default).
type GroqClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

const systemPrompt = "You are an expert product analyst specializing in the Indian health & fitness market. Respond with valid JSON only, no markdown formatting, no code blocks, just raw JSON."

func NewGroq(cfg Config) *GroqClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		panic("analysis model must be specified")
	}
	return &GroqClient{client: c, model: model}
}

// AnalyzeContent runs one chat completion over the prepared prompt. An empty
// reply is reported as an error so the orchestrator can fall back.
func (g *GroqClient) AnalyzeContent(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature:    0.4,
		MaxTokens:      4096,
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		slog.Error("groq: completion error", "error", err)
		return "", fmt.Errorf("groq: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq: empty response from model")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("groq: empty response from model")
	}
	return out, nil
}
