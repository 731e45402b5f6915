package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over the given string using
// the provided hash key and returns the result as a hex-encoded string.
// Used for password hashing: the key is the deployment-wide
// APP_PASSWORD_HASH_KEY secret, so leaked digests cannot be brute-forced
// offline without it.
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// hashString computes an HMAC-SHA256 digest over the given byte slice
// using the provided hash key.
func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}

// HashEquals compares two hex-encoded digests in constant time.
func HashEquals(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
