package core

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// SeedIdentity is one entry in the seed file. Passwords are plaintext in the
// file and hashed before they reach the store.
type SeedIdentity struct {
	Username     string  `yaml:"username"`
	Password     string  `yaml:"password"`
	Balance      float64 `yaml:"balance"`
	InterestRate float64 `yaml:"interestRate"`
	Currency     string  `yaml:"currency"`
}

// DefaultSeed is the built-in development fixture used when no seed file is
// configured.
func DefaultSeed() []SeedIdentity {
	return []SeedIdentity{{
		Username:     "customer1",
		Password:     "bank123",
		Balance:      2000,
		InterestRate: 0.05,
		Currency:     "USD",
	}}
}

// LoadSeedFile parses a YAML list of seed identities.
func LoadSeedFile(path string) ([]SeedIdentity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var entries []SeedIdentity
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return entries, nil
}

// SeedStore hashes each password and creates missing identities. It is
// idempotent: identities already in the store are left untouched.
func SeedStore(ctx context.Context, store UserStore, entries []SeedIdentity) error {
	for _, e := range entries {
		if strings.TrimSpace(e.Username) == "" {
			return fmt.Errorf("seed entry with empty username")
		}
		if e.Balance < 0 || e.InterestRate < 0 {
			return fmt.Errorf("seed %s: balance and interestRate must be non-negative", e.Username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(e.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed %s: %w", e.Username, err)
		}
		currency := e.Currency
		if currency == "" {
			currency = "USD"
		}
		account := Account{Balance: e.Balance, InterestRate: e.InterestRate, Currency: currency}
		if err := store.Create(ctx, e.Username, string(hash), account); err != nil {
			return fmt.Errorf("seed %s: %w", e.Username, err)
		}
	}
	return nil
}
