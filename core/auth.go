package core

import "errors"

// Identity represents an authenticated principal returned to handlers.
type Identity struct {
	Username string
}

// Account is one principal's financial state. Balance and LastWithdrawal are
// only mutated through UserStore.Withdraw.
type Account struct {
	Balance        float64
	InterestRate   float64
	LastWithdrawal *float64
	Currency       string
}

var (
	// ErrInvalidCredentials is returned when username/password is wrong.
	// Unknown usernames produce the same error as wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers every token validation failure: bad signature,
	// tampered payload, expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrNotFound is returned when no identity or account exists for a username.
	ErrNotFound = errors.New("account not found")
	// ErrNotANumber is returned when a withdrawal amount is not a finite number.
	ErrNotANumber = errors.New("amount is not a number")
	// ErrInvalidAmount is returned when a withdrawal amount is not strictly positive.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// AuthService defines authentication behaviour.
type AuthService interface {
	Authenticate(username, password string) (Identity, error)
}
