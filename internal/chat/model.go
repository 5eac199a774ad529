// Package chat implements the retrieval-augmented assistant behind /api/chat:
// intent classification, vector retrieval with fallback, relevance filtering,
// prompt construction, history pruning, and streamed completion.
package chat

import "context"

// Message roles accepted from the client and sent to the model.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// Request is the body of POST /api/chat. Message is the legacy single-turn
// form; Messages is the full conversation history with the current query last.
// At least one of the two must be present.
type Request struct {
	Message  string    `json:"message,omitempty" validate:"max=8000"`
	Messages []Message `json:"messages,omitempty" validate:"max=200,dive"`
}

// CurrentQuery returns the active user question: the explicit message when
// set, otherwise the last history entry.
func (r *Request) CurrentQuery() string {
	if r.Message != "" {
		return r.Message
	}
	if len(r.Messages) > 0 {
		return r.Messages[len(r.Messages)-1].Content
	}
	return ""
}

// Empty reports whether the request carries neither form of input.
func (r *Request) Empty() bool {
	return r.Message == "" && len(r.Messages) == 0
}

// Citation is a blog post the model may link to, extracted from retrieval
// metadata.
type Citation struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Embedder computes a dense embedding vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Model is the chat-completion backend. Stream calls emit for every
// incremental fragment, in emission order, and returns after the final one.
type Model interface {
	Complete(ctx context.Context, messages []Message) (string, error)
	Stream(ctx context.Context, messages []Message, emit func(fragment string) error) error
}
