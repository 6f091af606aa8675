package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ProviderConfig selects a provider implementation. Delay only applies to
// the mock providers.
type ProviderConfig struct {
	Type        string `yaml:"type" toml:"type"`
	DelayMillis int    `yaml:"delay_millis" toml:"delay_millis"`
}

func (p ProviderConfig) Delay() time.Duration {
	return time.Duration(p.DelayMillis) * time.Millisecond
}

// CompressorConfig selects the compressor and the default word target.
type CompressorConfig struct {
	Type               string `yaml:"type" toml:"type"`
	DefaultTargetWords int    `yaml:"default_target_words" toml:"default_target_words"`
}

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	Type              string `yaml:"type" toml:"type"`
	SentencesPerChunk int    `yaml:"sentences_per_chunk" toml:"sentences_per_chunk"`
	OverlapSentences  int    `yaml:"overlap_sentences" toml:"overlap_sentences"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type" toml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty" toml:"qdrant,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url" toml:"url"`
	APIKey      string `yaml:"api_key" toml:"api_key"`
	Collection  string `yaml:"collection" toml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs" toml:"timeout_secs"`
}

// SimilarityConfig configures the local plagiarism checker.
type SimilarityConfig struct {
	References  []string          `yaml:"references,omitempty" toml:"references,omitempty"`
	Threshold   float64           `yaml:"threshold" toml:"threshold"`
	Embedder    string            `yaml:"embedder" toml:"embedder"`
	Chunker     ChunkerConfig     `yaml:"chunker" toml:"chunker"`
	VectorStore VectorStoreConfig `yaml:"vector_store" toml:"vector_store"`
}

// PlagiarismConfig selects the plagiarism checker.
type PlagiarismConfig struct {
	Type        string           `yaml:"type" toml:"type"`
	DelayMillis int              `yaml:"delay_millis" toml:"delay_millis"`
	Similarity  SimilarityConfig `yaml:"similarity" toml:"similarity"`
}

// GenAIConfig holds the OpenAI-compatible endpoint used by genai providers.
type GenAIConfig struct {
	BaseURL           string  `yaml:"base_url" toml:"base_url"`
	APIKeyEnv         string  `yaml:"api_key_env" toml:"api_key_env"`
	Model             string  `yaml:"model" toml:"model"`
	EmbeddingModel    string  `yaml:"embedding_model" toml:"embedding_model"`
	TimeoutSecs       int     `yaml:"timeout_secs" toml:"timeout_secs"`
	MaxRetries        int     `yaml:"max_retries" toml:"max_retries"`
	RequestsPerSecond float64 `yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int     `yaml:"burst" toml:"burst"`
}

// RedisConfig contains connection details for the redis cache.
type RedisConfig struct {
	Addr     string `yaml:"addr" toml:"addr"`
	Password string `yaml:"password" toml:"password"`
	DB       int    `yaml:"db" toml:"db"`
}

// CacheConfig selects where paraphrase and compression results are cached.
type CacheConfig struct {
	Type    string      `yaml:"type" toml:"type"`
	TTLSecs int         `yaml:"ttl_secs" toml:"ttl_secs"`
	Redis   RedisConfig `yaml:"redis" toml:"redis"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr" toml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" toml:"allowed_origins"`
}

type LogConfig struct {
	// File receives log output while the terminal UI owns the screen.
	File string `yaml:"file" toml:"file"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Analyzer    ProviderConfig   `yaml:"analyzer" toml:"analyzer"`
	Paraphraser ProviderConfig   `yaml:"paraphraser" toml:"paraphraser"`
	Compressor  CompressorConfig `yaml:"compressor" toml:"compressor"`
	Readiness   ProviderConfig   `yaml:"readiness" toml:"readiness"`
	Plagiarism  PlagiarismConfig `yaml:"plagiarism" toml:"plagiarism"`
	GenAI       GenAIConfig      `yaml:"genai" toml:"genai"`
	Cache       CacheConfig      `yaml:"cache" toml:"cache"`
	Server      ServerConfig     `yaml:"server" toml:"server"`
	Log         LogConfig        `yaml:"log" toml:"log"`
}

// Load reads a config from path. Files ending in .toml are decoded as TOML,
// anything else as YAML. If the file does not exist, defaults are returned.
// WRITEASSIST_* environment variables override file values.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	case isTOML(path):
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./writeassist.yaml first, then
// ~/.config/writeassist/config.yaml. If neither exists, it writes defaults
// to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "writeassist.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	if err := Save(userPath, defaultConfig()); err != nil {
		return nil, "", err
	}
	cfg, err := Load(userPath)
	return cfg, userPath, err
}

// Save writes the config to path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects unknown provider types and out-of-range limits.
func (c *AppConfig) Validate() error {
	checks := []struct {
		name, value string
		allowed     []string
	}{
		{"analyzer.type", c.Analyzer.Type, []string{"mock", "genai"}},
		{"paraphraser.type", c.Paraphraser.Type, []string{"mock", "genai"}},
		{"compressor.type", c.Compressor.Type, []string{"truncate", "frequency", "genai"}},
		{"readiness.type", c.Readiness.Type, []string{"mock"}},
		{"plagiarism.type", c.Plagiarism.Type, []string{"mock", "similarity"}},
		{"plagiarism.similarity.embedder", c.Plagiarism.Similarity.Embedder, []string{"tfidf", "genai"}},
		{"plagiarism.similarity.chunker.type", c.Plagiarism.Similarity.Chunker.Type, []string{"sentence"}},
		{"plagiarism.similarity.vector_store.type", c.Plagiarism.Similarity.VectorStore.Type, []string{"memory", "qdrant"}},
		{"cache.type", c.Cache.Type, []string{"none", "memory", "redis"}},
	}
	for _, ch := range checks {
		if !contains(ch.allowed, ch.value) {
			return fmt.Errorf("%s: unknown value %q (want one of %s)", ch.name, ch.value, strings.Join(ch.allowed, ", "))
		}
	}
	if c.Compressor.DefaultTargetWords <= 0 {
		return fmt.Errorf("compressor.default_target_words must be positive")
	}
	if t := c.Plagiarism.Similarity.Threshold; t <= 0 || t > 1 {
		return fmt.Errorf("plagiarism.similarity.threshold must be in (0, 1], got %v", t)
	}
	if c.Plagiarism.Type == "similarity" && len(c.Plagiarism.Similarity.References) == 0 {
		return fmt.Errorf("plagiarism.similarity.references is required for the similarity checker")
	}
	if c.Plagiarism.Similarity.VectorStore.Type == "qdrant" &&
		(c.Plagiarism.Similarity.VectorStore.Qdrant == nil || c.Plagiarism.Similarity.VectorStore.Qdrant.URL == "") {
		return fmt.Errorf("plagiarism.similarity.vector_store.qdrant.url is required")
	}
	if c.Cache.Type == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required")
	}
	if c.GenAI.TimeoutSecs <= 0 || c.GenAI.MaxRetries < 0 || c.GenAI.RequestsPerSecond < 0 {
		return fmt.Errorf("genai limits must not be negative")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// UsesGenAI reports whether any configured provider needs the genai client.
func (c *AppConfig) UsesGenAI() bool {
	return c.Analyzer.Type == "genai" || c.Paraphraser.Type == "genai" || c.Compressor.Type == "genai" ||
		(c.Plagiarism.Type == "similarity" && c.Plagiarism.Similarity.Embedder == "genai")
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "writeassist", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Analyzer:    ProviderConfig{Type: "mock"},
		Paraphraser: ProviderConfig{Type: "mock", DelayMillis: 1500},
		Compressor:  CompressorConfig{Type: "truncate", DefaultTargetWords: 100},
		Readiness:   ProviderConfig{Type: "mock"},
		Plagiarism: PlagiarismConfig{
			Type: "mock",
			Similarity: SimilarityConfig{
				Threshold:   0.8,
				Embedder:    "tfidf",
				Chunker:     ChunkerConfig{Type: "sentence", SentencesPerChunk: 2, OverlapSentences: 0},
				VectorStore: VectorStoreConfig{Type: "memory"},
			},
		},
		GenAI: GenAIConfig{
			BaseURL:        "https://api.openai.com/v1",
			APIKeyEnv:      "OPENAI_API_KEY",
			Model:          "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
			TimeoutSecs:    30,
			MaxRetries:     3,
		},
		Cache:  CacheConfig{Type: "none", TTLSecs: 3600},
		Server: ServerConfig{Addr: ":8080", AllowedOrigins: []string{"*"}},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	setString(&cfg.Analyzer.Type, def.Analyzer.Type)
	setString(&cfg.Paraphraser.Type, def.Paraphraser.Type)
	setString(&cfg.Compressor.Type, def.Compressor.Type)
	setString(&cfg.Readiness.Type, def.Readiness.Type)
	setString(&cfg.Plagiarism.Type, def.Plagiarism.Type)
	setString(&cfg.Cache.Type, def.Cache.Type)
	setString(&cfg.Server.Addr, def.Server.Addr)
	if cfg.Compressor.DefaultTargetWords == 0 {
		cfg.Compressor.DefaultTargetWords = def.Compressor.DefaultTargetWords
	}

	sim := &cfg.Plagiarism.Similarity
	defSim := def.Plagiarism.Similarity
	if sim.Threshold == 0 {
		sim.Threshold = defSim.Threshold
	}
	setString(&sim.Embedder, defSim.Embedder)
	setString(&sim.Chunker.Type, defSim.Chunker.Type)
	if sim.Chunker.SentencesPerChunk == 0 {
		sim.Chunker.SentencesPerChunk = defSim.Chunker.SentencesPerChunk
	}
	setString(&sim.VectorStore.Type, defSim.VectorStore.Type)
	if q := sim.VectorStore.Qdrant; q != nil {
		setString(&q.Collection, "writeassist_references")
		if q.TimeoutSecs == 0 {
			q.TimeoutSecs = 15
		}
	}

	g := &cfg.GenAI
	setString(&g.BaseURL, def.GenAI.BaseURL)
	setString(&g.APIKeyEnv, def.GenAI.APIKeyEnv)
	setString(&g.Model, def.GenAI.Model)
	setString(&g.EmbeddingModel, def.GenAI.EmbeddingModel)
	if g.TimeoutSecs == 0 {
		g.TimeoutSecs = def.GenAI.TimeoutSecs
	}
}

// applyEnv overrides file values from the environment.
func applyEnv(cfg *AppConfig) {
	cfg.Analyzer.Type = getEnv("WRITEASSIST_ANALYZER", cfg.Analyzer.Type)
	cfg.Paraphraser.Type = getEnv("WRITEASSIST_PARAPHRASER", cfg.Paraphraser.Type)
	cfg.Compressor.Type = getEnv("WRITEASSIST_COMPRESSOR", cfg.Compressor.Type)
	cfg.Compressor.DefaultTargetWords = getEnvAsInt("WRITEASSIST_TARGET_WORDS", cfg.Compressor.DefaultTargetWords)
	cfg.Plagiarism.Type = getEnv("WRITEASSIST_PLAGIARISM", cfg.Plagiarism.Type)
	cfg.GenAI.BaseURL = getEnv("WRITEASSIST_GENAI_BASE_URL", cfg.GenAI.BaseURL)
	cfg.GenAI.Model = getEnv("WRITEASSIST_GENAI_MODEL", cfg.GenAI.Model)
	cfg.Cache.Type = getEnv("WRITEASSIST_CACHE", cfg.Cache.Type)
	cfg.Cache.Redis.Addr = getEnv("WRITEASSIST_REDIS_ADDR", cfg.Cache.Redis.Addr)
	cfg.Cache.Redis.Password = getEnv("WRITEASSIST_REDIS_PASSWORD", cfg.Cache.Redis.Password)
	cfg.Cache.Redis.DB = getEnvAsInt("WRITEASSIST_REDIS_DB", cfg.Cache.Redis.DB)
	cfg.Server.Addr = getEnv("WRITEASSIST_SERVER_ADDR", cfg.Server.Addr)
	cfg.Log.File = getEnv("WRITEASSIST_LOG_FILE", cfg.Log.File)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[warn] invalid integer for %s, using %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func setString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
