package crypto

import "errors"

// Sentinel errors returned by the field cipher. Callers should use
// [errors.Is] to match against these values; neither carries cipher
// internals, so both are safe to log.
var (
	// ErrMalformedEnvelope is returned when a value passed to Decrypt does
	// not have exactly three ":"-separated base64 segments.
	ErrMalformedEnvelope = errors.New("malformed ciphertext envelope")

	// ErrDecryptionFailed is returned when the authentication tag does not
	// verify: the ciphertext or tag was tampered with, or the key is wrong.
	// Treated by callers as a data-integrity incident, not a user error.
	ErrDecryptionFailed = errors.New("failed to decrypt")

	// ErrNoSecretInProduction is returned at startup when no encryption
	// secret is configured in a production deployment. The development
	// fallback key must never be reachable in production.
	ErrNoSecretInProduction = errors.New("encryption secret is required in production")
)
