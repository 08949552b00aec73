package core

import (
	"context"
	"math"
)

// AccountView is the public projection of an account entry.
type AccountView struct {
	Balance        float64  `json:"balance"`
	InterestRate   float64  `json:"interestRate"`
	LastWithdrawal *float64 `json:"lastWithdrawal"`
	Currency       string   `json:"currency"`
}

// InterestView is the per-call interest projection. Interest is recomputed
// from the current balance on every call and never compounded into it.
type InterestView struct {
	Balance         float64 `json:"balance"`
	InterestRate    float64 `json:"interestRate"`
	YearlyInterest  float64 `json:"yearlyInterest"`
	MonthlyInterest float64 `json:"monthlyInterest"`
	Currency        string  `json:"currency"`
}

// WithdrawResult is the state after a completed withdrawal.
type WithdrawResult struct {
	Balance        float64
	LastWithdrawal float64
}

// LedgerService exposes account operations for identities resolved by the
// authorization gate. All mutation goes through the store's Withdraw, which
// serializes the transition per username.
type LedgerService struct {
	store UserStore
}

func NewLedgerService(store UserStore) *LedgerService {
	return &LedgerService{store: store}
}

func (s *LedgerService) Account(ctx context.Context, username string) (AccountView, error) {
	acct, err := s.store.GetAccount(ctx, username)
	if err != nil {
		return AccountView{}, err
	}
	return AccountView{
		Balance:        acct.Balance,
		InterestRate:   acct.InterestRate,
		LastWithdrawal: acct.LastWithdrawal,
		Currency:       acct.Currency,
	}, nil
}

// Withdraw validates amount then delegates the balance transition to the
// store. Validation order: not-a-number, not positive, account resolution,
// sufficiency. State is untouched on every failure path.
func (s *LedgerService) Withdraw(ctx context.Context, username string, amount float64) (WithdrawResult, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return WithdrawResult{}, ErrNotANumber
	}
	if amount <= 0 {
		return WithdrawResult{}, ErrInvalidAmount
	}
	acct, err := s.store.Withdraw(ctx, username, amount)
	if err != nil {
		return WithdrawResult{}, err
	}
	return WithdrawResult{Balance: acct.Balance, LastWithdrawal: amount}, nil
}

func (s *LedgerService) Interest(ctx context.Context, username string) (InterestView, error) {
	acct, err := s.store.GetAccount(ctx, username)
	if err != nil {
		return InterestView{}, err
	}
	yearly := acct.Balance * acct.InterestRate
	return InterestView{
		Balance:         acct.Balance,
		InterestRate:    acct.InterestRate,
		YearlyInterest:  yearly,
		MonthlyInterest: yearly / 12,
		Currency:        acct.Currency,
	}, nil
}
