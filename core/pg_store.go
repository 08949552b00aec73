package core

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx connection pool with conservative defaults.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("empty database dsn")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	// Reasonable defaults for small services; callers can override if needed.
	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	// Validate connectivity.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// PgUserStore implements UserStore on PostgreSQL. Expected schema:
//
//	CREATE TABLE identities (
//	    username        TEXT PRIMARY KEY,
//	    password_hash   TEXT NOT NULL,
//	    balance         DOUBLE PRECISION NOT NULL CHECK (balance >= 0),
//	    interest_rate   DOUBLE PRECISION NOT NULL CHECK (interest_rate >= 0),
//	    last_withdrawal DOUBLE PRECISION,
//	    currency        TEXT NOT NULL
//	);
type PgUserStore struct {
	db *pgxpool.Pool
}

func NewPgUserStore(db *pgxpool.Pool) *PgUserStore {
	return &PgUserStore{db: db}
}

func (s *PgUserStore) FindByUsername(ctx context.Context, username string) (*IdentityRecord, error) {
	const q = `SELECT username, password_hash, balance, interest_rate, last_withdrawal, currency
	           FROM identities WHERE username=$1`
	var rec IdentityRecord
	err := s.db.QueryRow(ctx, q, username).Scan(
		&rec.Username, &rec.PasswordHash,
		&rec.Account.Balance, &rec.Account.InterestRate,
		&rec.Account.LastWithdrawal, &rec.Account.Currency,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *PgUserStore) GetAccount(ctx context.Context, username string) (Account, error) {
	const q = `SELECT balance, interest_rate, last_withdrawal, currency
	           FROM identities WHERE username=$1`
	var a Account
	err := s.db.QueryRow(ctx, q, username).Scan(&a.Balance, &a.InterestRate, &a.LastWithdrawal, &a.Currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return a, nil
}

// Withdraw runs the read-validate-mutate sequence in one transaction with the
// row locked, so concurrent withdrawals against the same account serialize on
// the database.
func (s *PgUserStore) Withdraw(ctx context.Context, username string, amount float64) (Account, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Account{}, err
	}
	defer tx.Rollback(ctx)

	var a Account
	const lockQ = `SELECT balance, interest_rate, last_withdrawal, currency
	               FROM identities WHERE username=$1 FOR UPDATE`
	err = tx.QueryRow(ctx, lockQ, username).Scan(&a.Balance, &a.InterestRate, &a.LastWithdrawal, &a.Currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	if amount > a.Balance {
		return Account{}, ErrInsufficientFunds
	}

	const updateQ = `UPDATE identities SET balance = balance - $2, last_withdrawal = $2 WHERE username=$1`
	if _, err := tx.Exec(ctx, updateQ, username, amount); err != nil {
		return Account{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Account{}, err
	}

	a.Balance -= amount
	withdrawn := amount
	a.LastWithdrawal = &withdrawn
	return a, nil
}

// Create inserts an identity if absent; existing rows are left untouched so
// seeding stays idempotent.
func (s *PgUserStore) Create(ctx context.Context, username, passwordHash string, account Account) error {
	const q = `INSERT INTO identities (username, password_hash, balance, interest_rate, last_withdrawal, currency)
	           VALUES ($1,$2,$3,$4,$5,$6)
	           ON CONFLICT (username) DO NOTHING`
	_, err := s.db.Exec(ctx, q, username, passwordHash,
		account.Balance, account.InterestRate, account.LastWithdrawal, account.Currency)
	return err
}
