package core

import "context"

// IdentityRecord is the stored projection of a principal. PasswordHash never
// leaves the store/verifier pair.
type IdentityRecord struct {
	Username     string
	PasswordHash string
	Account      Account
}

// UserStore defines persistence operations for identities and their accounts.
// Withdraw is the single writer: the read-validate-mutate sequence for one
// username is serialized inside the implementation.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*IdentityRecord, error)
	GetAccount(ctx context.Context, username string) (Account, error)
	Withdraw(ctx context.Context, username string, amount float64) (Account, error)
	Create(ctx context.Context, username, passwordHash string, account Account) error
}
