// Package memory keeps every repository in process. It backs
// STORE_DRIVER=memory for local runs and end-to-end tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase/interfaces"
)

// QuoteRepository is an in-memory IQuoteRepository.
type QuoteRepository struct {
	mu     sync.RWMutex
	quotes map[string]entities.Quote
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{quotes: make(map[string]entities.Quote)}
}

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	if err := q.Validate(); err != nil {
		return entities.Quote{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.quotes[q.ID]; exists {
		return entities.Quote{}, ErrDuplicateID
	}
	r.quotes[q.ID] = q
	return q, nil
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.quotes[id], nil
}

func (r *QuoteRepository) List(_ context.Context, filter entities.QuoteFilter) ([]entities.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Quote, 0, len(r.quotes))
	for _, q := range r.quotes {
		if filter.Matches(q) {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].SequenceNumber > out[j].SequenceNumber
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *QuoteRepository) UpdateStatus(_ context.Context, id string, status entities.QuoteStatus) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok {
		return entities.Quote{}, nil
	}
	q.Status = status
	r.quotes[id] = q
	return q, nil
}

func (r *QuoteRepository) CountBySellerBetween(_ context.Context, sellerID string, from, to time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, q := range r.quotes {
		if q.SellerID == sellerID && !q.CreatedAt.Before(from) && !q.CreatedAt.After(to) {
			n++
		}
	}
	return n, nil
}

// QuoteCounter is an in-memory IQuoteCounter. Its lock covers the quote
// write, so the counter and the quote move together.
type QuoteCounter struct {
	mu     sync.Mutex
	quotes interfaces.IQuoteRepository
	values map[string]int64
}

var _ interfaces.IQuoteCounter = (*QuoteCounter)(nil)

func NewQuoteCounter(quotes interfaces.IQuoteRepository) *QuoteCounter {
	return &QuoteCounter{quotes: quotes, values: make(map[string]int64)}
}

func (c *QuoteCounter) Current(_ context.Context, sellerID, day string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[sellerID+"#"+day], nil
}

func (c *QuoteCounter) CreateNumbered(ctx context.Context, q entities.Quote, day string, previous int64) (entities.Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := q.SellerID + "#" + day
	if c.values[key] != previous {
		return entities.Quote{}, interfaces.ErrCounterConflict
	}
	created, err := c.quotes.Create(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	c.values[key] = previous + 1
	return created, nil
}

// SellerRepository is an in-memory ISellerRepository.
type SellerRepository struct {
	mu      sync.RWMutex
	sellers map[string]entities.Seller
}

var _ interfaces.ISellerRepository = (*SellerRepository)(nil)

func NewSellerRepository(seed ...entities.Seller) *SellerRepository {
	r := &SellerRepository{sellers: make(map[string]entities.Seller, len(seed))}
	for _, s := range seed {
		r.sellers[s.ID] = s
	}
	return r
}

func (r *SellerRepository) GetByID(_ context.Context, id string) (entities.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sellers[id], nil
}

func (r *SellerRepository) List(_ context.Context) ([]entities.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Seller, 0, len(r.sellers))
	for _, s := range r.sellers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *SellerRepository) Put(_ context.Context, s entities.Seller) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sellers[s.ID] = s
	return nil
}

// ProfileRepository is an in-memory IProfileRepository.
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]entities.Profile
}

var _ interfaces.IProfileRepository = (*ProfileRepository)(nil)

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[string]entities.Profile)}
}

func (r *ProfileRepository) GetByUID(_ context.Context, uid string) (entities.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[uid], nil
}

func (r *ProfileRepository) Put(_ context.Context, p entities.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UID] = p
	return nil
}

// CredentialRepository is an in-memory ICredentialRepository.
type CredentialRepository struct {
	mu    sync.RWMutex
	creds map[string]entities.Credential
}

var _ interfaces.ICredentialRepository = (*CredentialRepository)(nil)

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{creds: make(map[string]entities.Credential)}
}

func (r *CredentialRepository) GetByEmail(_ context.Context, email string) (entities.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.creds[email], nil
}

func (r *CredentialRepository) Put(_ context.Context, c entities.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creds[c.Email] = c
	return nil
}
