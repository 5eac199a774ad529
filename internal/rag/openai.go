// Package rag holds the external AI clients consumed by the chat pipeline:
// an OpenAI embedder and an OpenAI chat-completion model, both via langchaingo.
package rag

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/karthikcsq/personalsite/internal/chat"
	"github.com/karthikcsq/personalsite/internal/config"
)

// OpenAIEmbedder implements chat.Embedder on the OpenAI embeddings API.
type OpenAIEmbedder struct {
	embedder *embeddings.EmbedderImpl
}

// NewOpenAIEmbedder creates the embedding client once at startup.
func NewOpenAIEmbedder(cfg config.OpenAIConfig) (*OpenAIEmbedder, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing embedding client: %w", err)
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	return &OpenAIEmbedder{embedder: embedder}, nil
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.embedder.EmbedQuery(ctx, text)
}

// OpenAIModel implements chat.Model on the OpenAI chat completions API.
type OpenAIModel struct {
	llm         *openai.LLM
	temperature float64
}

// NewOpenAIModel creates the completion client once at startup.
func NewOpenAIModel(cfg config.OpenAIConfig) (*OpenAIModel, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing completion client: %w", err)
	}
	return &OpenAIModel{llm: llm, temperature: cfg.Temperature}, nil
}

func (m *OpenAIModel) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	resp, err := m.llm.GenerateContent(ctx, toMessageContent(messages),
		llms.WithTemperature(m.temperature))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Content, nil
}

// Stream forwards each incremental fragment to emit in emission order.
// Malformed stream chunks are dropped by the underlying client without
// aborting the stream; an emit error cancels the upstream call.
func (m *OpenAIModel) Stream(ctx context.Context, messages []chat.Message, emit func(string) error) error {
	_, err := m.llm.GenerateContent(ctx, toMessageContent(messages),
		llms.WithTemperature(m.temperature),
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			return emit(string(chunk))
		}))
	return err
}

func toMessageContent(messages []chat.Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		var role llms.ChatMessageType
		switch msg.Role {
		case chat.RoleSystem:
			role = llms.ChatMessageTypeSystem
		case chat.RoleAssistant:
			role = llms.ChatMessageTypeAI
		default:
			role = llms.ChatMessageTypeHuman
		}
		out = append(out, llms.TextParts(role, msg.Content))
	}
	return out
}
