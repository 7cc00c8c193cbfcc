package auth

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

type HashServiceInterface interface {
	HashCode(code string) string
}

// HashService derives the lookup key for redemption codes. Codes are
// compared case-insensitively, so the digest is taken over the normalised form.
type HashService struct{}

func (b *HashService) HashCode(code string) string {
	sum := blake2b.Sum256([]byte(NormalizeCode(code)))
	return hex.EncodeToString(sum[:])
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
