package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/karthikcsq/personalsite/internal/metrics"
	"github.com/karthikcsq/personalsite/internal/vectorindex"
)

// Options bounds the pipeline. Zero timeouts mean no per-call deadline.
type Options struct {
	TopK              int
	TokenBudget       int
	Persona           Persona
	EmbedTimeout      time.Duration
	QueryTimeout      time.Duration
	CompletionTimeout time.Duration
}

// Service runs the RAG pipeline: embed, classify, retrieve (with one
// unfiltered fallback), assemble context, build the prompt, prune history,
// and hand the message list to the model. It holds no per-request state;
// every entity lives and dies within one call.
type Service struct {
	embedder Embedder
	index    vectorindex.Index
	model    Model
	opts     Options
}

// NewService creates a chat service. The embedder, index, and model clients
// are constructed once at startup and injected here.
func NewService(embedder Embedder, index vectorindex.Index, model Model, opts Options) *Service {
	if opts.TopK == 0 {
		opts.TopK = 10
	}
	if opts.TokenBudget == 0 {
		opts.TokenBudget = DefaultTokenBudget
	}
	return &Service{embedder: embedder, index: index, model: model, opts: opts}
}

// Answer runs the pipeline and returns the complete response text.
func (s *Service) Answer(ctx context.Context, req *Request) (string, error) {
	messages, rc, err := s.prepare(ctx, req)
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	cctx, cancel := s.withTimeout(ctx, s.opts.CompletionTimeout)
	defer cancel()

	answer, err := s.model.Complete(cctx, messages)
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("generating completion: %w", err)
	}

	metrics.ChatRequestsTotal.WithLabelValues(outcome(rc)).Inc()
	return answer, nil
}

// Stream runs the pipeline and forwards each model fragment to emit as it is
// produced. If emit returns an error (client gone), streaming stops and the
// upstream call is released via context cancellation.
func (s *Service) Stream(ctx context.Context, req *Request, emit func(fragment string) error) error {
	messages, rc, err := s.prepare(ctx, req)
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("error").Inc()
		return err
	}

	cctx, cancel := s.withTimeout(ctx, s.opts.CompletionTimeout)
	defer cancel()

	start := time.Now()
	if err := s.model.Stream(cctx, messages, emit); err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("streaming completion: %w", err)
	}
	metrics.ChatStreamDuration.Observe(time.Since(start).Seconds())

	metrics.ChatRequestsTotal.WithLabelValues(outcome(rc)).Inc()
	return nil
}

// prepare executes every stage before the model call and returns the final
// message list: system prompt followed by the pruned history (or the single
// legacy message).
func (s *Service) prepare(ctx context.Context, req *Request) ([]Message, Context, error) {
	query := req.CurrentQuery()

	ectx, cancel := s.withTimeout(ctx, s.opts.EmbedTimeout)
	embedding, err := s.embedder.Embed(ectx, query)
	cancel()
	if err != nil {
		return nil, Context{}, fmt.Errorf("embedding query: %w", err)
	}

	intent := ClassifyIntent(query)

	matches, err := s.retrieve(ctx, embedding, intent)
	if err != nil {
		return nil, Context{}, fmt.Errorf("retrieving matches: %w", err)
	}

	rc := AssembleContext(matches, intent, query)
	metrics.ContextMatchesKept.Observe(float64(rc.Kept))
	slog.Debug("assembled chat context",
		"intent", string(intent), "matches", len(matches),
		"kept", rc.Kept, "citations", len(rc.Citations), "grounded", rc.HasRelevant)

	systemPrompt := BuildSystemPrompt(s.opts.Persona, rc)

	var toSend []Message
	if len(req.Messages) > 0 {
		toSend = PruneHistory(req.Messages, systemPrompt, s.opts.TokenBudget)
	} else {
		// Legacy single-message format
		toSend = []Message{{Role: RoleUser, Content: req.Message}}
	}

	messages := make([]Message, 0, len(toSend)+1)
	messages = append(messages, Message{Role: RoleSystem, Content: systemPrompt})
	messages = append(messages, toSend...)
	return messages, rc, nil
}

// retrieve queries the index with the intent filter. An empty filtered result
// triggers exactly one unfiltered retry; if that also comes back empty, the
// empty set stands.
func (s *Service) retrieve(ctx context.Context, embedding []float32, intent Intent) ([]vectorindex.Match, error) {
	qctx, cancel := s.withTimeout(ctx, s.opts.QueryTimeout)
	matches, err := s.index.Query(qctx, embedding, s.opts.TopK, string(intent))
	cancel()
	if err != nil {
		return nil, err
	}

	if intent != IntentNone && len(matches) == 0 {
		slog.Info("no matches for content type, retrying without filter", "content_type", string(intent))
		metrics.RetrievalFallbacksTotal.Inc()

		qctx, cancel := s.withTimeout(ctx, s.opts.QueryTimeout)
		matches, err = s.index.Query(qctx, embedding, s.opts.TopK, "")
		cancel()
		if err != nil {
			return nil, err
		}
	}
	return matches, nil
}

func (s *Service) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func outcome(rc Context) string {
	if rc.HasRelevant {
		return "grounded"
	}
	return "fallback"
}
