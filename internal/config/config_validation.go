// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sachin Kathar

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.PasswordHashKey == "" {
		return ErrInvalidAppConfigs
	}

	// The encryption secret itself is checked by the crypto package, which
	// decides between the operator key, the development fallback, and a
	// hard startup failure in production.

	return nil
}
