package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	OpenAI  OpenAIConfig
	Chat    ChatConfig
	Content ContentConfig
	Gallery GalleryConfig
	CORS    CORSConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// OpenAIConfig covers both the embedding model and the chat-completion model.
type OpenAIConfig struct {
	APIKey            string
	BaseURL           string
	Model             string
	EmbeddingModel    string
	Temperature       float64
	EmbedTimeout      time.Duration
	CompletionTimeout time.Duration
}

// ChatConfig parameterizes the retrieval pipeline behind /api/chat.
type ChatConfig struct {
	TopK            int
	TokenBudget     int
	OwnerName       string
	SiteURL         string
	QueryTimeout    time.Duration
	RateLimitPerMin int
}

type ContentConfig struct {
	BlogDir  string
	WorkFile string
}

type GalleryConfig struct {
	AlbumsDir string
	BaseURL   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Load .env file if it exists (ignore error if missing)
	_ = k.Load(file.Provider(".env"), dotenv.Parser())

	// Load environment variables (override .env)
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "_", "."))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: k.String("server.host"),
			Port: k.Int("server.port"),
		},
		DB: DBConfig{
			Host:     k.String("db.host"),
			Port:     k.Int("db.port"),
			User:     k.String("db.user"),
			Password: k.String("db.password"),
			Name:     k.String("db.name"),
			SSLMode:  k.String("db.sslmode"),
			MaxConns: int32(k.Int("db.max.conns")),
		},
		Redis: RedisConfig{
			Host:     k.String("redis.host"),
			Port:     k.Int("redis.port"),
			Password: k.String("redis.password"),
			DB:       k.Int("redis.db"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         k.String("openai.api.key"),
			BaseURL:        k.String("openai.base.url"),
			Model:          k.String("openai.model"),
			EmbeddingModel: k.String("openai.embedding.model"),
			Temperature:    k.Float64("openai.temperature"),
		},
		Chat: ChatConfig{
			TopK:            k.Int("chat.top.k"),
			TokenBudget:     k.Int("chat.token.budget"),
			OwnerName:       k.String("chat.owner.name"),
			SiteURL:         k.String("chat.site.url"),
			RateLimitPerMin: k.Int("chat.rate.limit"),
		},
		Content: ContentConfig{
			BlogDir:  k.String("content.blog.dir"),
			WorkFile: k.String("content.work.file"),
		},
		Gallery: GalleryConfig{
			AlbumsDir: k.String("gallery.albums.dir"),
			BaseURL:   k.String("gallery.base.url"),
		},
		Log: LogConfig{
			Level:  k.String("log.level"),
			Format: k.String("log.format"),
		},
	}

	if origins := k.String("cors.allowed.origins"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, o)
			}
		}
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.DB.Host == "" {
		cfg.DB.Host = "localhost"
	}
	if cfg.DB.Port == 0 {
		cfg.DB.Port = 5432
	}
	if cfg.DB.User == "" {
		cfg.DB.User = "personalsite"
	}
	if cfg.DB.Name == "" {
		cfg.DB.Name = "personalsite"
	}
	if cfg.DB.SSLMode == "" {
		cfg.DB.SSLMode = "disable"
	}
	if cfg.DB.MaxConns == 0 {
		cfg.DB.MaxConns = 10
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o"
	}
	if cfg.OpenAI.EmbeddingModel == "" {
		cfg.OpenAI.EmbeddingModel = "text-embedding-ada-002"
	}
	if cfg.OpenAI.Temperature == 0 {
		cfg.OpenAI.Temperature = 0.7
	}
	if cfg.Chat.TopK == 0 {
		cfg.Chat.TopK = 10
	}
	if cfg.Chat.TokenBudget == 0 {
		// GPT-4o context window is 128k, leave buffer
		cfg.Chat.TokenBudget = 120000
	}
	if cfg.Chat.OwnerName == "" {
		cfg.Chat.OwnerName = "Karthik Thyagarajan"
	}
	if cfg.Chat.SiteURL == "" {
		cfg.Chat.SiteURL = "https://www.karthikthyagarajan.com"
	}
	if cfg.Chat.RateLimitPerMin == 0 {
		cfg.Chat.RateLimitPerMin = 20
	}
	if cfg.Content.BlogDir == "" {
		cfg.Content.BlogDir = "blog/posts"
	}
	if cfg.Content.WorkFile == "" {
		cfg.Content.WorkFile = "rag-docs/truth.yaml"
	}
	if cfg.Gallery.AlbumsDir == "" {
		cfg.Gallery.AlbumsDir = "galleryimgs"
	}
	if cfg.Gallery.BaseURL == "" {
		cfg.Gallery.BaseURL = cfg.Chat.SiteURL + "/galleryimgs"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	// Parse durations
	cfg.OpenAI.EmbedTimeout, err = parseDuration(k.String("openai.embed.timeout"), "10s")
	if err != nil {
		return nil, fmt.Errorf("parsing openai embed timeout: %w", err)
	}
	cfg.OpenAI.CompletionTimeout, err = parseDuration(k.String("openai.completion.timeout"), "120s")
	if err != nil {
		return nil, fmt.Errorf("parsing openai completion timeout: %w", err)
	}
	cfg.Chat.QueryTimeout, err = parseDuration(k.String("chat.query.timeout"), "10s")
	if err != nil {
		return nil, fmt.Errorf("parsing chat query timeout: %w", err)
	}

	return cfg, nil
}

func parseDuration(s, fallback string) (time.Duration, error) {
	if s == "" {
		s = fallback
	}
	return time.ParseDuration(s)
}
