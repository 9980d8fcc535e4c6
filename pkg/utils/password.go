package utils

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	dummyMu     sync.Mutex
	dummyHashes = map[int][]byte{}
)

func normalizeCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

// HashPassword turns a plain password into a bcrypt hash. A cost outside the
// bcrypt range falls back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), normalizeCost(cost))
	return string(bytes), err
}

// CheckPassword compares the submitted password with the stored hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// BurnPasswordCheck spends one bcrypt comparison that always fails. Login calls
// it for unknown usernames so both failure paths cost the same; cost must be
// the one real hashes are made with.
func BurnPasswordCheck(password string, cost int) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(cost), []byte(password))
}

// dummyHash returns a hash of a throwaway password at cost, built once per cost.
func dummyHash(cost int) []byte {
	cost = normalizeCost(cost)

	dummyMu.Lock()
	defer dummyMu.Unlock()
	if hash, ok := dummyHashes[cost]; ok {
		return hash
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	dummyHashes[cost] = hash
	return hash
}
