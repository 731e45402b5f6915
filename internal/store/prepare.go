package store

import (
	"github.com/SACHINKATHAR2005/viralprompts/internal/crypto"
)

// PreparePromptText is the single branch deciding whether a prompt-text
// value gets encrypted before a write. It replaces any implicit
// save-hook machinery with an explicit, testable function called by the
// repositories before every INSERT and every UPDATE that touches the field.
//
// A value that already matches the three-segment ciphertext envelope is
// returned untouched: re-encrypting an envelope would wrap ciphertext in
// ciphertext and silently corrupt the stored text on the next decrypt.
// Everything else is treated as plaintext pending encryption.
func PreparePromptText(text string, cipher *crypto.Cipher) (string, error) {
	if crypto.IsEncrypted(text) {
		return text, nil
	}

	return cipher.Encrypt(text)
}
