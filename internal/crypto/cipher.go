// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sachin Kathar

// Package crypto implements the symmetric field cipher that protects
// prompt text at rest.
//
// Every encrypted value is a self-describing three-part envelope:
//
//	base64(iv) ":" base64(tag) ":" base64(ciphertext)
//
// produced by AES-256-GCM with a 16-byte IV and a 16-byte authentication
// tag. The envelope shape doubles as the idempotent-encrypt guard: the
// persistence layer calls [IsEncrypted] before every write and leaves
// values that already match the shape untouched, so repeated saves of an
// already-ciphertext value can never double-encrypt and silently corrupt
// the stored text.
package crypto

import (
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/scrypt"

	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
)

const (
	// keySize is the AES-256 key length in bytes.
	keySize = 32

	// ivSize is the GCM nonce length in bytes. 16 rather than the Go
	// default of 12 to stay wire-compatible with envelopes written by
	// earlier deployments of the platform.
	ivSize = 16

	// tagSize is the GCM authentication tag length in bytes.
	tagSize = 16

	// devPassphrase is the development-only fallback stretched into a key
	// when no operator secret is configured. Never reachable in production:
	// NewCipher fails at startup instead.
	devPassphrase = "viralprompts-dev-only-not-a-secret"

	// devSalt keeps the development key stable across restarts so local
	// databases survive a process bounce.
	devSalt = "viralprompts-dev-salt"

	// selfTestPlaintext is the fixed string round-tripped by SelfTest.
	selfTestPlaintext = "viralprompts cipher self-test"
)

// Cipher performs authenticated encryption of a single text field with one
// process-wide 256-bit key. It is immutable after construction and safe for
// concurrent use.
type Cipher struct {
	aead stdcipher.AEAD
}

// NewCipher resolves the process-wide field-encryption key and returns a
// ready [Cipher].
//
// Key resolution:
//   - A non-empty secret is treated as raw key bytes: zero-padded when
//     shorter than 32 bytes, truncated when longer. It is deliberately not
//     hashed, so operator secrets should already be sized or accept the
//     lossy adjustment.
//   - An empty secret in production is a startup failure
//     ([ErrNoSecretInProduction]).
//   - An empty secret outside production stretches a fixed development
//     passphrase with scrypt into the key and logs a loud warning.
func NewCipher(secret string, production bool, log *logger.Logger) (*Cipher, error) {
	key, err := deriveKey(secret, production, log)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("error creating AES cipher: %w", err)
	}

	aead, err := stdcipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, fmt.Errorf("error creating GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// deriveKey resolves the 256-bit key as described on [NewCipher].
func deriveKey(secret string, production bool, log *logger.Logger) ([]byte, error) {
	if secret != "" {
		key := make([]byte, keySize)
		copy(key, secret) // zero-pads short secrets, truncates long ones
		return key, nil
	}

	if production {
		return nil, ErrNoSecretInProduction
	}

	log.Warn().
		Msg("APP_ENCRYPTION_SECRET is not set: falling back to the built-in development key. " +
			"Prompt text encrypted with this key is NOT protected. Do not use in production.")

	key, err := scrypt.Key([]byte(devPassphrase), []byte(devSalt), 1<<15, 8, 1, keySize)
	if err != nil {
		return nil, fmt.Errorf("error stretching development key: %w", err)
	}

	return key, nil
}

// Encrypt seals plaintext into a fresh three-part envelope. A new random
// 16-byte IV is drawn for every call, so encrypting the same plaintext
// twice yields different envelopes; callers must not rely on ciphertext
// equality to detect duplicate plaintext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("error generating IV: %w", err)
	}

	// Seal appends the tag to the ciphertext; split it back out so the
	// envelope carries the tag as its own segment.
	sealed := c.aead.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return strings.Join([]string{
		base64.StdEncoding.EncodeToString(iv),
		base64.StdEncoding.EncodeToString(tag),
		base64.StdEncoding.EncodeToString(ciphertext),
	}, ":"), nil
}

// Decrypt opens a three-part envelope and returns the plaintext.
//
// A value that does not have exactly three ":"-separated base64 segments
// fails with [ErrMalformedEnvelope]. A tampered ciphertext or tag, or a
// key mismatch, fails with [ErrDecryptionFailed]; the underlying cipher
// error is never exposed to callers beyond that sentinel.
func (c *Cipher) Decrypt(envelope string) (string, error) {
	iv, tag, ciphertext, err := splitEnvelope(envelope)
	if err != nil {
		return "", err
	}

	plaintext, err := c.aead.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// SelfTest round-trips a fixed string through Encrypt and Decrypt and
// reports whether it survives. Used as a startup sanity check, not a
// correctness proof.
func (c *Cipher) SelfTest() bool {
	envelope, err := c.Encrypt(selfTestPlaintext)
	if err != nil {
		return false
	}

	plaintext, err := c.Decrypt(envelope)
	if err != nil {
		return false
	}

	return plaintext == selfTestPlaintext
}

// IsEncrypted reports whether value already has the three-segment envelope
// shape: exactly two ":" separators with every segment non-empty, valid
// base64, and the IV and tag segments of the expected decoded length.
//
// A two-segment value is never a valid envelope and is treated as plaintext
// pending encryption, like any other non-matching shape.
func IsEncrypted(value string) bool {
	_, _, _, err := splitEnvelope(value)
	return err == nil
}

// splitEnvelope decodes the three base64 segments of an envelope and
// checks the IV and tag have their fixed decoded lengths. The length check
// lives here rather than in Decrypt because the AEAD panics on a wrong
// nonce length; a corrupted row must surface as [ErrMalformedEnvelope],
// never as a panic.
func splitEnvelope(envelope string) (iv, tag, ciphertext []byte, err error) {
	parts := strings.Split(envelope, ":")
	if len(parts) != 3 {
		return nil, nil, nil, ErrMalformedEnvelope
	}

	if iv, err = base64.StdEncoding.DecodeString(parts[0]); err != nil {
		return nil, nil, nil, ErrMalformedEnvelope
	}
	if tag, err = base64.StdEncoding.DecodeString(parts[1]); err != nil {
		return nil, nil, nil, ErrMalformedEnvelope
	}
	if ciphertext, err = base64.StdEncoding.DecodeString(parts[2]); err != nil {
		return nil, nil, nil, ErrMalformedEnvelope
	}

	if len(iv) != ivSize || len(tag) != tagSize {
		return nil, nil, nil, ErrMalformedEnvelope
	}

	return iv, tag, ciphertext, nil
}
