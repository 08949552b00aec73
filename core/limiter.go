package core

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns a configured go-redis client from URL (e.g., redis://localhost:6379/0).
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// loginAttemptScript increments the failure counter and starts the window on
// the first failure only, so the window is not extended by later attempts.
var loginAttemptScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// LoginLimiter throttles repeated failed logins per username. It is
// best-effort: a nil limiter or a Redis error never blocks a login, so an
// infrastructure outage cannot lock everyone out.
type LoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

func NewLoginLimiter(client *redis.Client, max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, max: max, window: window}
}

// Blocked reports whether the username has exhausted its failure budget.
func (l *LoginLimiter) Blocked(ctx context.Context, username string) bool {
	if l == nil || l.client == nil {
		return false
	}
	n, err := l.client.Get(ctx, l.key(username)).Int64()
	if err != nil {
		// redis.Nil (no failures yet) and transport errors both fail open.
		return false
	}
	return n >= int64(l.max)
}

// RecordFailure counts one failed attempt against the username.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) {
	if l == nil || l.client == nil {
		return
	}
	if err := loginAttemptScript.Run(ctx, l.client, []string{l.key(username)}, l.window.Milliseconds()).Err(); err != nil {
		log.Printf("login limiter: record failure for %s: %v", username, err)
	}
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) {
	if l == nil || l.client == nil {
		return
	}
	if err := l.client.Del(ctx, l.key(username)).Err(); err != nil {
		log.Printf("login limiter: reset for %s: %v", username, err)
	}
}

func (l *LoginLimiter) key(username string) string {
	return "login_attempts:" + username
}
