package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.Analyzer.Type)
	assert.Equal(t, "truncate", cfg.Compressor.Type)
	assert.Equal(t, 100, cfg.Compressor.DefaultTargetWords)
	assert.Equal(t, 0.8, cfg.Plagiarism.Similarity.Threshold)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 1500*time.Millisecond, cfg.Paraphraser.Delay())
	assert.False(t, cfg.UsesGenAI())
}

func TestLoad_YAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "writeassist.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
analyzer:
  type: genai
compressor:
  type: frequency
  default_target_words: 50
plagiarism:
  type: similarity
  similarity:
    references: ["refs/*.txt"]
    vector_store:
      type: qdrant
      qdrant:
        url: http://localhost:6333
`), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "genai", cfg.Analyzer.Type)
	assert.Equal(t, "mock", cfg.Paraphraser.Type)
	assert.Equal(t, 50, cfg.Compressor.DefaultTargetWords)
	assert.Equal(t, []string{"refs/*.txt"}, cfg.Plagiarism.Similarity.References)
	assert.Equal(t, "tfidf", cfg.Plagiarism.Similarity.Embedder)
	require.NotNil(t, cfg.Plagiarism.Similarity.VectorStore.Qdrant)
	assert.Equal(t, "writeassist_references", cfg.Plagiarism.Similarity.VectorStore.Qdrant.Collection)
	assert.True(t, cfg.UsesGenAI())
}

func TestLoad_TOML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "writeassist.toml")
	require.NoError(t, os.WriteFile(p, []byte(`
[paraphraser]
type = "genai"

[cache]
type = "redis"

[cache.redis]
addr = "localhost:6379"
db = 2

[server]
addr = ":9000"
allowed_origins = ["http://localhost:5173"]
`), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "genai", cfg.Paraphraser.Type)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WRITEASSIST_COMPRESSOR", "frequency")
	t.Setenv("WRITEASSIST_TARGET_WORDS", "42")
	t.Setenv("WRITEASSIST_REDIS_DB", "not-a-number")
	t.Setenv("WRITEASSIST_SERVER_ADDR", ":7070")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "frequency", cfg.Compressor.Type)
	assert.Equal(t, 42, cfg.Compressor.DefaultTargetWords)
	assert.Equal(t, 0, cfg.Cache.Redis.DB)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*AppConfig){
		"unknown analyzer":        func(c *AppConfig) { c.Analyzer.Type = "oracle" },
		"unknown cache":           func(c *AppConfig) { c.Cache.Type = "disk" },
		"zero target words":       func(c *AppConfig) { c.Compressor.DefaultTargetWords = 0 },
		"threshold above one":     func(c *AppConfig) { c.Plagiarism.Similarity.Threshold = 1.5 },
		"similarity without refs": func(c *AppConfig) { c.Plagiarism.Type = "similarity" },
		"qdrant without url":      func(c *AppConfig) { c.Plagiarism.Similarity.VectorStore.Type = "qdrant" },
		"redis without addr":      func(c *AppConfig) { c.Cache.Type = "redis" },
		"negative retries":        func(c *AppConfig) { c.GenAI.MaxRetries = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, defaultConfig().Validate())
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"nested/config.yaml", "nested/config.toml"} {
		p := filepath.Join(dir, name)
		cfg := defaultConfig()
		cfg.Compressor.Type = "frequency"
		require.NoError(t, Save(p, cfg))

		got, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, cfg, got, name)
	}
}

func TestLoadDefault_WritesUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, path, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "writeassist", "config.yaml"), path)
	assert.FileExists(t, path)
	assert.Equal(t, "mock", cfg.Analyzer.Type)
}
