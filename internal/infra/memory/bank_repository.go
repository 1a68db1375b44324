package memory

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"drb-quiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches raw bank content from a backing store (file, Postgres, ...).
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// BankRepository validates loaded banks and caches them with TTL to avoid repeated loads.
type BankRepository struct {
	loader BankLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedBank
}

type cachedBank struct {
	bank      *domain.QuestionBank
	expiresAt time.Time
}

// NewBankRepository caches for ttl; a non-positive ttl caches forever.
func NewBankRepository(loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBank),
	}
}

func (r *BankRepository) GetBank(ctx context.Context, bankID string) (*domain.QuestionBank, error) {
	if bank, ok := r.lookup(bankID); ok {
		return bank, nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		if bank, ok := r.lookup(bankID); ok {
			return bank, nil
		}

		raw, err := r.loader.LoadBank(ctx, bankID)
		if err != nil {
			return nil, err
		}
		bank, err := domain.NewQuestionBank(raw)
		if err != nil {
			return nil, err
		}

		entry := cachedBank{bank: bank}
		if ttl := r.ttlWithJitter(); ttl > 0 {
			entry.expiresAt = r.clock().Add(ttl)
		}
		r.mu.Lock()
		r.cache[bankID] = entry
		r.mu.Unlock()
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.QuestionBank), nil
}

func (r *BankRepository) lookup(bankID string) (*domain.QuestionBank, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[bankID]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(r.clock()) {
		return nil, false
	}
	return entry.bank, true
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticBankLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticBankLoader struct {
	banks map[string]domain.Bank
}

func NewStaticBankLoader(banks ...domain.Bank) *StaticBankLoader {
	m := make(map[string]domain.Bank, len(banks))
	for _, b := range banks {
		m[b.ID] = b
	}
	return &StaticBankLoader{banks: m}
}

func (l *StaticBankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := l.banks[bankID]; ok {
		return bank, nil
	}
	return domain.Bank{}, domain.ErrBankNotFound
}

// ChainLoader tries each loader in order and moves on only when a loader does
// not know the bank.
type ChainLoader []BankLoader

func (c ChainLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	for _, loader := range c {
		bank, err := loader.LoadBank(ctx, bankID)
		if err == nil {
			return bank, nil
		}
		if !errors.Is(err, domain.ErrBankNotFound) {
			return domain.Bank{}, err
		}
	}
	return domain.Bank{}, domain.ErrBankNotFound
}
