package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-session-service/internal/domain"
)

// BankLoader fetches question banks from a backing store (files, Postgres, ...).
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// LoadValidBank loads bankID and rejects banks a session could not be built from.
// Callers cache only what this returns without error.
func LoadValidBank(ctx context.Context, loader BankLoader, bankID string) (domain.Bank, error) {
	bank, err := loader.LoadBank(ctx, bankID)
	if err != nil {
		return domain.Bank{}, err
	}
	if err := domain.ValidateBank(bank.Questions); err != nil {
		return domain.Bank{}, fmt.Errorf("bank %s: %w", bankID, err)
	}
	if bank.ID == "" {
		bank.ID = bankID
	}
	return bank, nil
}

// Jitter stretches cache TTLs by up to 10% so banks loaded together do not expire together.
type Jitter struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewJitter() *Jitter {
	return &Jitter{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Apply returns ttl plus a random share of up to ttl/10. Non-positive ttl means no expiry.
func (j *Jitter) Apply(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return ttl + time.Duration(j.rnd.Int63n(int64(ttl)/10+1))
}

// BankRepository keeps validated banks in process memory until their TTL runs out.
// Concurrent misses for the same bank share one load.
type BankRepository struct {
	loader BankLoader
	ttl    time.Duration
	jitter *Jitter
	clock  func() time.Time
	loads  singleflight.Group

	mu    sync.RWMutex
	banks map[string]bankEntry
}

type bankEntry struct {
	bank    domain.Bank
	expires time.Time // zero means never
}

func (e bankEntry) live(now time.Time) bool {
	return e.expires.IsZero() || now.Before(e.expires)
}

func NewBankRepository(loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		jitter: NewJitter(),
		clock:  time.Now,
		banks:  make(map[string]bankEntry),
	}
}

func (r *BankRepository) GetBank(ctx context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := r.lookup(bankID); ok {
		return bank, nil
	}

	v, err, _ := r.loads.Do(bankID, func() (interface{}, error) {
		if bank, ok := r.lookup(bankID); ok {
			return bank, nil
		}
		bank, err := LoadValidBank(ctx, r.loader, bankID)
		if err != nil {
			return domain.Bank{}, err
		}
		r.store(bankID, bank)
		return bank, nil
	})
	if err != nil {
		return domain.Bank{}, err
	}
	return v.(domain.Bank), nil
}

func (r *BankRepository) lookup(bankID string) (domain.Bank, bool) {
	now := r.clock()
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.banks[bankID]
	if !ok || !entry.live(now) {
		return domain.Bank{}, false
	}
	return entry.bank, true
}

func (r *BankRepository) store(bankID string, bank domain.Bank) {
	entry := bankEntry{bank: bank}
	if ttl := r.jitter.Apply(r.ttl); ttl > 0 {
		entry.expires = r.clock().Add(ttl)
	}
	r.mu.Lock()
	r.banks[bankID] = entry
	r.mu.Unlock()
}
