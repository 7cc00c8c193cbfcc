package memoryrepo

import (
	"context"
	"sync"
	"time"

	"github.com/GlebRadaev/pointledger/internal/domain"
)

type CodeRepository struct {
	mu     sync.Mutex
	nextID int64
	codes  map[string]*domain.RedemptionCode
}

func NewCodes() *CodeRepository {
	return &CodeRepository{codes: make(map[string]*domain.RedemptionCode)}
}

func (r *CodeRepository) Create(_ context.Context, codeHash string, value int64) (*domain.RedemptionCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codes[codeHash]; ok {
		return nil, domain.ErrDuplicateEntry
	}
	r.nextID++
	code := &domain.RedemptionCode{
		ID:        r.nextID,
		CodeHash:  codeHash,
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}
	r.codes[codeHash] = code
	cp := *code
	return &cp, nil
}

func (r *CodeRepository) Consume(_ context.Context, codeHash, userID string) (*domain.RedemptionCode, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, ok := r.codes[codeHash]
	if !ok {
		return nil, false, nil
	}
	fresh := code.ConsumedAt == nil
	if fresh {
		now := time.Now().UTC()
		code.ConsumedBy = userID
		code.ConsumedAt = &now
	}
	cp := *code
	return &cp, fresh, nil
}
