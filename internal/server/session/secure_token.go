package session

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
)

const base58 = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// SecureToken generates a unique random base58 token.
// It is used as token identifier and as generated administrator password.
func SecureToken(length int) string {
	if length < 0 {
		panic("session: negative token length")
	}

	token := make([]byte, length)
	max := big.NewInt(int64(len(base58)))

	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // should never occured because max >= 0
		}
		token[i] = base58[n.Int64()]
	}

	return string(token)
}

// SecureCompare compares the givens strings in a constant time.
// So length info is not leaked via timing attacks.
func SecureCompare(s1, s2 string) bool {
	return subtle.ConstantTimeCompare([]byte(s1), []byte(s2)) == 1
}
