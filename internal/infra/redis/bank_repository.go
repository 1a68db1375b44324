package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"drb-quiz-service/internal/domain"
	"drb-quiz-service/internal/infra/memory"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// BankRepository caches bank content in Redis as JSON and falls back to a loader on cache miss.
// Banks are stored as: SET quiz:bank:{bankID} {json} EX ttl
// Validated banks are also kept in-process so hot sessions never touch Redis.
type BankRepository struct {
	client *redis.Client
	loader memory.BankLoader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu    sync.RWMutex
	local map[string]*domain.QuestionBank
}

func NewBankRepository(client *redis.Client, loader memory.BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		local:  make(map[string]*domain.QuestionBank),
	}
}

func (r *BankRepository) GetBank(ctx context.Context, bankID string) (*domain.QuestionBank, error) {
	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		if raw, ok := r.readCache(ctx, bankID); ok {
			bank, err := r.validated(bankID, raw)
			if err == nil {
				return bank, nil
			}
			log.Printf("redis bank %s rejected, reloading: %v", bankID, err)
		}

		raw, err := r.loader.LoadBank(ctx, bankID)
		if err != nil {
			return nil, err
		}
		bank, err := r.validated(bankID, raw)
		if err != nil {
			return nil, err
		}
		r.writeCache(ctx, bankID, raw)
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.QuestionBank), nil
}

func (r *BankRepository) readCache(ctx context.Context, bankID string) (domain.Bank, bool) {
	data, err := r.client.Get(ctx, r.key(bankID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("redis bank read %s: %v", bankID, err)
		}
		return domain.Bank{}, false
	}
	var bank domain.Bank
	if err := json.Unmarshal(data, &bank); err != nil {
		log.Printf("redis bank decode %s: %v", bankID, err)
		return domain.Bank{}, false
	}
	return bank, true
}

func (r *BankRepository) writeCache(ctx context.Context, bankID string, bank domain.Bank) {
	data, err := json.Marshal(bank)
	if err != nil {
		log.Printf("redis bank encode %s: %v", bankID, err)
		return
	}
	// best-effort; a failed write only costs another load
	if err := r.client.Set(ctx, r.key(bankID), data, r.ttlWithJitter()).Err(); err != nil {
		log.Printf("redis bank write %s: %v", bankID, err)
	}
}

// validated reuses the in-process bank while the cached content is unchanged.
func (r *BankRepository) validated(bankID string, raw domain.Bank) (*domain.QuestionBank, error) {
	r.mu.RLock()
	bank, ok := r.local[bankID]
	r.mu.RUnlock()
	if ok && sameContent(bank.Bank(), raw) {
		return bank, nil
	}

	bank, err := domain.NewQuestionBank(raw)
	if err != nil {
		return nil, fmt.Errorf("bank %s: %w", bankID, err)
	}
	r.mu.Lock()
	r.local[bankID] = bank
	r.mu.Unlock()
	return bank, nil
}

func (r *BankRepository) key(bankID string) string {
	return "quiz:bank:" + bankID
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

func sameContent(a, b domain.Bank) bool {
	left, err := json.Marshal(a)
	if err != nil {
		return false
	}
	right, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(left) == string(right)
}
