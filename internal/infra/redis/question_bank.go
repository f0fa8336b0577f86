package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"couple-quiz-service/internal/domain"
)

// BankLoader fetches the predefined question bank for a language from a
// backing store.
type BankLoader interface {
	LoadBank(ctx context.Context, language string) ([]domain.BankQuestion, error)
}

// QuestionBank caches per-language banks in Redis as a JSON value under
// bank:{language} and falls back to the loader on cache miss.
type QuestionBank struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group

	// rndMu guards rnd: singleflight serializes per key, so misses for two
	// languages can draw jitter concurrently.
	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuestionBank(client *redis.Client, loader BankLoader, ttl time.Duration) *QuestionBank {
	return &QuestionBank{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b *QuestionBank) Bank(ctx context.Context, language string) ([]domain.BankQuestion, error) {
	key := b.key(language)

	if questions, ok := b.fromCache(ctx, key); ok {
		return questions, nil
	}

	result, err, _ := b.sf.Do(language, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := b.fromCache(ctx, key); ok {
			return questions, nil
		}

		questions, err := b.loader.LoadBank(ctx, language)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(questions)
		if err != nil {
			return nil, fmt.Errorf("marshal bank: %w", err)
		}
		_ = b.client.Set(ctx, key, data, b.ttlWithJitter()).Err()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.BankQuestion), nil
}

func (b *QuestionBank) fromCache(ctx context.Context, key string) ([]domain.BankQuestion, bool) {
	raw, err := b.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	var questions []domain.BankQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, false
	}
	return questions, true
}

func (b *QuestionBank) key(language string) string {
	return "bank:" + language
}

func (b *QuestionBank) ttlWithJitter() time.Duration {
	if b.ttl <= 0 {
		return 0
	}
	jitterMax := int64(b.ttl) / 10
	b.rndMu.Lock()
	n := b.rnd.Int63n(jitterMax + 1)
	b.rndMu.Unlock()
	return b.ttl + time.Duration(n)
}
