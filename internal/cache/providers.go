package cache

import (
	"context"
	"encoding/json"
	"log"
	"strconv"

	"writeassist/internal/domain"
)

// Paraphraser serves repeated paraphrase requests from a cache. Cache
// failures are logged and fall through to the wrapped provider.
type Paraphraser struct {
	next  domain.Paraphraser
	cache Cache
}

func WrapParaphraser(next domain.Paraphraser, c Cache) *Paraphraser {
	return &Paraphraser{next: next, cache: c}
}

func (p *Paraphraser) Paraphrase(ctx context.Context, text string) (domain.ParaphraseResult, error) {
	key := Key("paraphrase", text)
	if data, ok, err := p.cache.Get(ctx, key); err != nil {
		log.Printf("[warn] cache get: %v", err)
	} else if ok {
		var res domain.ParaphraseResult
		if err := json.Unmarshal(data, &res); err == nil {
			return res, nil
		}
	}
	res, err := p.next.Paraphrase(ctx, text)
	if err != nil {
		return res, err
	}
	if data, err := json.Marshal(res); err == nil {
		if err := p.cache.Set(ctx, key, data); err != nil {
			log.Printf("[warn] cache set: %v", err)
		}
	}
	return res, nil
}

// Compressor serves repeated compression requests from a cache.
type Compressor struct {
	next  domain.Compressor
	cache Cache
}

func WrapCompressor(next domain.Compressor, c Cache) *Compressor {
	return &Compressor{next: next, cache: c}
}

func (p *Compressor) Compress(ctx context.Context, text string, targetWords int) (string, error) {
	key := Key("compress", strconv.Itoa(targetWords), text)
	if data, ok, err := p.cache.Get(ctx, key); err != nil {
		log.Printf("[warn] cache get: %v", err)
	} else if ok {
		return string(data), nil
	}
	out, err := p.next.Compress(ctx, text, targetWords)
	if err != nil {
		return out, err
	}
	if err := p.cache.Set(ctx, key, []byte(out)); err != nil {
		log.Printf("[warn] cache set: %v", err)
	}
	return out, nil
}
