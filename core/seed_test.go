package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `- username: alice
  password: pw1
  balance: 100.5
  interestRate: 0.01
  currency: EUR
- username: bob
  password: pw2
  balance: 50
  interestRate: 0.02
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	entries, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("LoadSeedFile error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries want 2", len(entries))
	}
	if entries[0].Username != "alice" || entries[0].Balance != 100.5 || entries[0].Currency != "EUR" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].InterestRate != 0.02 || entries[1].Currency != "" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestLoadSeedFileErrors(t *testing.T) {
	if _, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	if _, err := LoadSeedFile(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestSeedStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := SeedStore(ctx, store, []SeedIdentity{
		{Username: "alice", Password: "pw1", Balance: 100, InterestRate: 0.01, Currency: "EUR"},
		{Username: "bob", Password: "pw2", Balance: 50, InterestRate: 0.02},
	})
	if err != nil {
		t.Fatalf("SeedStore error: %v", err)
	}

	rec, err := store.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername error: %v", err)
	}
	if rec.Account.Balance != 100 || rec.Account.Currency != "EUR" {
		t.Fatalf("unexpected account: %+v", rec.Account)
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte("pw1")) != nil {
		t.Fatal("stored hash does not verify the seed password")
	}
	if rec.PasswordHash == "pw1" {
		t.Fatal("password stored in plaintext")
	}

	// Missing currency falls back to USD.
	bob, err := store.FindByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("FindByUsername error: %v", err)
	}
	if bob.Account.Currency != "USD" {
		t.Fatalf("default currency: got %q", bob.Account.Currency)
	}
}

func TestSeedStoreIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	seed := DefaultSeed()

	if err := SeedStore(ctx, store, seed); err != nil {
		t.Fatalf("SeedStore error: %v", err)
	}
	if _, err := store.Withdraw(ctx, "customer1", 500); err != nil {
		t.Fatalf("Withdraw error: %v", err)
	}

	// Re-seeding must not restore the original balance.
	if err := SeedStore(ctx, store, seed); err != nil {
		t.Fatalf("second SeedStore error: %v", err)
	}
	acct, err := store.GetAccount(ctx, "customer1")
	if err != nil {
		t.Fatalf("GetAccount error: %v", err)
	}
	if acct.Balance != 1500 {
		t.Fatalf("re-seed reset balance: got %v want 1500", acct.Balance)
	}
}

func TestSeedStoreValidation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := SeedStore(ctx, store, []SeedIdentity{{Username: " ", Password: "x"}}); err == nil {
		t.Fatal("expected error for empty username")
	}
	if err := SeedStore(ctx, store, []SeedIdentity{{Username: "neg", Password: "x", Balance: -1}}); err == nil {
		t.Fatal("expected error for negative balance")
	}
	if err := SeedStore(ctx, store, []SeedIdentity{{Username: "rate", Password: "x", InterestRate: -0.1}}); err == nil {
		t.Fatal("expected error for negative interest rate")
	}
}

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()
	if len(seed) != 1 {
		t.Fatalf("got %d entries want 1", len(seed))
	}
	e := seed[0]
	if e.Username != "customer1" || e.Password != "bank123" || e.Balance != 2000 ||
		e.InterestRate != 0.05 || e.Currency != "USD" {
		t.Fatalf("unexpected fixture: %+v", e)
	}
}
