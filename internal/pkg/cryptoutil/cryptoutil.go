// Package cryptoutil generates the secrets of an event and hashes them for storage.
package cryptoutil

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

const (
	tokenBytes     = 24
	passwordLength = 10
	codeSpace      = 100_000_000

	// No 0/O, 1/I/l/o to keep passwords readable on paper.
	passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"
)

// Sha256Hex is the one-way hash every stored secret goes through.
func Sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// EqualHash compares two hex digests in constant time.
func EqualHash(a, b string) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// NewToken returns 24 random bytes as lowercase hex.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read -> %w", err)
	}

	return hex.EncodeToString(b), nil
}

func NewPassword() (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	out := make([]byte, passwordLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("rand.Int -> %w", err)
		}
		out[i] = passwordAlphabet[n.Int64()]
	}

	return string(out), nil
}

// NewAchievementCode returns a uniformly random 8-digit zero-padded decimal string.
func NewAchievementCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("rand.Int -> %w", err)
	}

	return fmt.Sprintf("%08d", n.Int64()), nil
}

// HashIP is a keyed hash so stored values cannot be reversed by enumerating the address space.
func HashIP(key []byte, ip string) string {
	if ip == "" {
		return ""
	}

	if len(key) > blake2b.Size {
		sum := sha256.Sum256(key)
		key = sum[:]
	}

	// New256 only fails for keys longer than blake2b.Size.
	h, _ := blake2b.New256(key)
	h.Write([]byte(ip))

	return hex.EncodeToString(h.Sum(nil))
}
