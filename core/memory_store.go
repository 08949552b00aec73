package core

import (
	"context"
	"sync"
)

type identityEntry struct {
	mu     sync.RWMutex
	record IdentityRecord
}

// MemoryStore is an in-memory UserStore. The map itself only grows (Create);
// each entry carries its own lock so withdrawals against different accounts
// do not contend and reads never observe a torn entry.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*identityEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*identityEntry)}
}

func (s *MemoryStore) lookup(username string) (*identityEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[username]
	return e, ok
}

func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (*IdentityRecord, error) {
	e, ok := s.lookup(username)
	if !ok {
		return nil, ErrNotFound
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	rec := e.record
	rec.Account = copyAccount(e.record.Account)
	return &rec, nil
}

func (s *MemoryStore) GetAccount(ctx context.Context, username string) (Account, error) {
	e, ok := s.lookup(username)
	if !ok {
		return Account{}, ErrNotFound
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return copyAccount(e.record.Account), nil
}

// Withdraw decrements the balance and records the withdrawal amount as one
// transition under the entry lock. Two racing withdrawals can never both pass
// the sufficiency check against a stale balance.
func (s *MemoryStore) Withdraw(ctx context.Context, username string, amount float64) (Account, error) {
	e, ok := s.lookup(username)
	if !ok {
		return Account{}, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if amount > e.record.Account.Balance {
		return Account{}, ErrInsufficientFunds
	}
	withdrawn := amount
	e.record.Account.Balance -= amount
	e.record.Account.LastWithdrawal = &withdrawn
	return copyAccount(e.record.Account), nil
}

// Create registers a new identity. Existing usernames are left untouched so
// seeding stays idempotent across restarts.
func (s *MemoryStore) Create(ctx context.Context, username, passwordHash string, account Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[username]; ok {
		return nil
	}
	s.entries[username] = &identityEntry{record: IdentityRecord{
		Username:     username,
		PasswordHash: passwordHash,
		Account:      copyAccount(account),
	}}
	return nil
}

// copyAccount deep-copies so callers cannot alias the stored LastWithdrawal.
func copyAccount(a Account) Account {
	if a.LastWithdrawal != nil {
		v := *a.LastWithdrawal
		a.LastWithdrawal = &v
	}
	return a
}
