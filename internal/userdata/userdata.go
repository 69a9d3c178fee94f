// Package userdata generates the synthetic accounts submitted to the
// registration endpoint.
package userdata

import (
	"fmt"
	"math/rand"
	"sync"
)

const (
	tokenLength   = 8
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyz"
	phoneDigits   = 10
)

// User is one synthetic account. All identity fields derive from a
// single random token so a user can be recognized across log lines.
type User struct {
	FullName string
	UserName string
	Email    string
	Password string
	Phone    string
}

// Factory produces synthetic users from an injected random source.
// A fixed seed makes the generated users reproducible.
type Factory struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewFactory returns a Factory seeded with the given value.
func NewFactory(seed int64) *Factory {
	return &Factory{rnd: rand.New(rand.NewSource(seed))}
}

// Generate returns a fresh user. The name, username, email and
// password embed the same 8-character lowercase token; the phone
// number is ten random digits.
func (f *Factory) Generate() User {
	f.mu.Lock()
	tok := f.token()
	phone := f.digits(phoneDigits)
	f.mu.Unlock()

	return User{
		FullName: fmt.Sprintf("Test User %s", tok),
		UserName: fmt.Sprintf("testuser_%s", tok),
		Email:    fmt.Sprintf("test_%s@example.com", tok),
		Password: fmt.Sprintf("password_%s", tok),
		Phone:    phone,
	}
}

// Pick returns a uniform random index in [0, n). n must be positive.
func (f *Factory) Pick(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rnd.Intn(n)
}

func (f *Factory) token() string {
	b := make([]byte, tokenLength)
	for i := range b {
		b[i] = tokenAlphabet[f.rnd.Intn(len(tokenAlphabet))]
	}
	return string(b)
}

func (f *Factory) digits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + f.rnd.Intn(10))
	}
	return string(b)
}
