package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"writeassist/internal/cache"
	"writeassist/internal/chunker"
	"writeassist/internal/compress"
	"writeassist/internal/config"
	"writeassist/internal/domain"
	"writeassist/internal/embedding/tfidf"
	"writeassist/internal/genai"
	"writeassist/internal/ingest"
	"writeassist/internal/provider/mock"
	"writeassist/internal/session"
	"writeassist/internal/similarity"
	"writeassist/internal/vectorstore/memory"
	"writeassist/internal/vectorstore/qdrant"
)

// app is everything a subcommand needs, assembled from config and flags.
type app struct {
	cfg       *config.AppConfig
	providers session.Providers
	text      string
	batch     []domain.Suggestion
	closers   []func() error
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Printf("[warn] close: %v", err)
		}
	}
}

func (a *app) newSession() *session.Session {
	return session.New(a.text, a.batch, a.providers, session.Options{TargetWords: a.cfg.Compressor.DefaultTargetWords})
}

func setup(ctx context.Context, cmd *cobra.Command) (*app, error) {
	_ = godotenv.Load()

	cfgPath, _ := cmd.Flags().GetString("config")
	filePath, _ := cmd.Flags().GetString("file")

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{cfg: cfg, text: mock.SampleText}
	if filePath != "" {
		doc, err := ingest.Load(filePath)
		if err != nil {
			return nil, err
		}
		a.text = doc.Content
	}
	if err := a.buildProviders(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.batch, err = a.providers.Analyzer.Analyze(ctx, a.text)
	if err != nil {
		log.Printf("[warn] initial analysis failed, starting without suggestions: %v", err)
		a.batch = nil
	}
	return a, nil
}

func (a *app) buildProviders(ctx context.Context) error {
	cfg := a.cfg
	var client *genai.Client
	if cfg.UsesGenAI() {
		var err error
		client, err = genai.NewClient(genai.Config{
			BaseURL:           cfg.GenAI.BaseURL,
			APIKeyEnv:         cfg.GenAI.APIKeyEnv,
			Model:             cfg.GenAI.Model,
			EmbeddingModel:    cfg.GenAI.EmbeddingModel,
			Timeout:           time.Duration(cfg.GenAI.TimeoutSecs) * time.Second,
			MaxRetries:        cfg.GenAI.MaxRetries,
			RequestsPerSecond: cfg.GenAI.RequestsPerSecond,
			Burst:             cfg.GenAI.Burst,
		})
		if err != nil {
			return fmt.Errorf("genai client init failed: %w", err)
		}
	}

	p := &a.providers
	switch cfg.Analyzer.Type {
	case "mock":
		p.Analyzer = mock.NewAnalyzer(cfg.Analyzer.Delay())
	case "genai":
		p.Analyzer = genai.NewAnalyzer(client)
	}

	switch cfg.Paraphraser.Type {
	case "mock":
		p.Paraphraser = mock.NewParaphraser(cfg.Paraphraser.Delay())
	case "genai":
		p.Paraphraser = genai.NewParaphraser(client)
	}

	switch cfg.Compressor.Type {
	case "truncate":
		p.Compressor = compress.NewTruncate()
	case "frequency":
		p.Compressor = compress.NewFrequency()
	case "genai":
		p.Compressor = genai.NewCompressor(client)
	}

	p.Readiness = mock.NewReadinessScorer(cfg.Readiness.Delay())

	switch cfg.Plagiarism.Type {
	case "mock":
		p.Plagiarism = mock.NewPlagiarismChecker(time.Duration(cfg.Plagiarism.DelayMillis) * time.Millisecond)
	case "similarity":
		checker, err := buildSimilarity(cfg.Plagiarism.Similarity, client)
		if err != nil {
			return err
		}
		p.Plagiarism = checker
	}

	var c cache.Cache
	ttl := time.Duration(cfg.Cache.TTLSecs) * time.Second
	switch cfg.Cache.Type {
	case "memory":
		c = cache.NewMemory(ttl)
	case "redis":
		r, err := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			TTL:      ttl,
		})
		if err != nil {
			return err
		}
		a.closers = append(a.closers, r.Close)
		c = r
	}
	if c != nil {
		p.Paraphraser = cache.WrapParaphraser(p.Paraphraser, c)
		p.Compressor = cache.WrapCompressor(p.Compressor, c)
	}
	return nil
}

func buildSimilarity(cfg config.SimilarityConfig, client *genai.Client) (*similarity.Checker, error) {
	refs, err := ingest.LoadAll(cfg.References)
	if err != nil {
		return nil, fmt.Errorf("load references: %w", err)
	}

	var ch domain.Chunker
	switch cfg.Chunker.Type {
	case "sentence":
		ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	}

	var emb domain.Embedder
	switch cfg.Embedder {
	case "tfidf":
		emb = tfidf.NewEmbedder()
	case "genai":
		emb = genai.NewEmbedder(client)
	}

	var st domain.VectorStore
	switch cfg.VectorStore.Type {
	case "memory":
		st = memory.NewStorage()
	case "qdrant":
		q := cfg.VectorStore.Qdrant
		st = qdrant.NewStorage(qdrant.Config{
			URL:        q.URL,
			APIKey:     q.APIKey,
			Collection: q.Collection,
			Timeout:    time.Duration(q.TimeoutSecs) * time.Second,
		})
	}
	log.Printf("[info] similarity checker: %d reference documents, %s embedder, %s store", len(refs), emb.Name(), cfg.VectorStore.Type)
	return similarity.NewChecker(refs, ch, emb, st, similarity.Options{Threshold: cfg.Threshold}), nil
}
