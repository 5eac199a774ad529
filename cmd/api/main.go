package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/karthikcsq/personalsite/internal/api"
	"github.com/karthikcsq/personalsite/internal/chat"
	"github.com/karthikcsq/personalsite/internal/config"
	"github.com/karthikcsq/personalsite/internal/content"
	"github.com/karthikcsq/personalsite/internal/database"
	"github.com/karthikcsq/personalsite/internal/gallery"
	"github.com/karthikcsq/personalsite/internal/middleware"
	"github.com/karthikcsq/personalsite/internal/rag"
	iredis "github.com/karthikcsq/personalsite/internal/redis"
	"github.com/karthikcsq/personalsite/internal/server"
	"github.com/karthikcsq/personalsite/internal/vectorindex"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// PostgreSQL (vector index)
	pool, err := database.NewPostgresPool(ctx, cfg.DB)
	if err != nil {
		slog.Error("connecting to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// OpenAI clients, constructed once and injected into the pipeline
	embedder, err := rag.NewOpenAIEmbedder(cfg.OpenAI)
	if err != nil {
		slog.Error("creating embedder", "error", err)
		os.Exit(1)
	}
	model, err := rag.NewOpenAIModel(cfg.OpenAI)
	if err != nil {
		slog.Error("creating chat model", "error", err)
		os.Exit(1)
	}

	// Chat pipeline
	index := vectorindex.NewPostgresIndex(pool)
	chatSvc := chat.NewService(embedder, index, model, chat.Options{
		TopK:        cfg.Chat.TopK,
		TokenBudget: cfg.Chat.TokenBudget,
		Persona: chat.Persona{
			Name:    cfg.Chat.OwnerName,
			SiteURL: cfg.Chat.SiteURL,
		},
		EmbedTimeout:      cfg.OpenAI.EmbedTimeout,
		QueryTimeout:      cfg.Chat.QueryTimeout,
		CompletionTimeout: cfg.OpenAI.CompletionTimeout,
	})
	chatHandler := chat.NewHandler(chatSvc)

	// Static content
	contentHandler := content.NewHandler(
		content.NewBlogStore(cfg.Content.BlogDir),
		content.NewWorkStore(cfg.Content.WorkFile),
	)
	galleryHandler := gallery.NewHandler(gallery.NewService(cfg.Gallery.AlbumsDir, cfg.Gallery.BaseURL))

	// Rate limiting on the chat endpoint (optional; the API works without Redis)
	routerCfg := api.RouterConfig{CORSAllowedOrigins: cfg.CORS.AllowedOrigins}
	if redisClient, err := iredis.NewClient(ctx, cfg.Redis); err != nil {
		slog.Warn("redis unavailable, chat rate limiting disabled", "error", err)
	} else {
		defer redisClient.Close()
		rl := middleware.NewRateLimiter(redisClient, cfg.Chat.RateLimitPerMin, 60)
		routerCfg.ChatRateLimiter = rl.Middleware
	}

	router := api.NewRouter(pool, routerCfg, api.HandlerSet{
		Chat:      chatHandler.Chat,
		ListPosts: contentHandler.ListPosts,
		GetPost:   contentHandler.GetPost,
		ListJobs:  contentHandler.ListJobs,
		Gallery:   galleryHandler.Albums,
	})

	srv := server.New(cfg.Server, router)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
