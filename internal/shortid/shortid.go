// Package shortid generates the public identifiers of stories, comments and messages.
package shortid

import (
	"crypto/rand"
	"math/big"

	"github.com/Guyuepp/go-clean-forum/domain"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var alphabetLen = big.NewInt(int64(len(alphabet)))

// New returns a random alphanumeric id of domain.ShortURLLength characters.
func New() (string, error) {
	return Generate(domain.ShortURLLength)
}

// Generate returns a random alphanumeric id of length n.
func Generate(n int) (string, error) {
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[idx.Int64()]
	}
	return string(buf), nil
}
