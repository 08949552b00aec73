package core

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// timingDummyHash is compared against when the username is unknown so that
// login latency does not reveal whether an account exists.
var timingDummyHash []byte

func init() {
	timingDummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)
}

// StoreAuthService verifies credentials against hashes held in a UserStore.
type StoreAuthService struct {
	users UserStore
}

func NewStoreAuthService(users UserStore) *StoreAuthService {
	return &StoreAuthService{users: users}
}

// Authenticate returns the matched identity, or ErrInvalidCredentials for
// unknown usernames and wrong passwords alike. Pure read, no side effects.
func (s *StoreAuthService) Authenticate(username, password string) (Identity, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return Identity{}, ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rec, err := s.users.FindByUsername(ctx, username)
	if err != nil || rec == nil {
		// Burn one compare so unknown users cost the same as wrong passwords.
		bcrypt.CompareHashAndPassword(timingDummyHash, []byte(password))
		return Identity{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{Username: rec.Username}, nil
}
