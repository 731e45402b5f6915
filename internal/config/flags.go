package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-r redis address in format [host]:[port]
//	-c/-config json file path with configs
//	-env deployment environment name
//	-encryption-secret prompt-text field cipher secret
//	-password-hash-key password hash key
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "24h", "30m")
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var redisAddress string
	var jsonConfigPath string
	var environment string
	var encryptionSecret string
	var passwordHashKey string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&redisAddress, "r", "", "Redis address host:port")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&environment, "env", "", "Deployment environment")
	flag.StringVar(&encryptionSecret, "encryption-secret", "", "Field cipher secret")
	flag.StringVar(&passwordHashKey, "password-hash-key", "", "Password hash key")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h, 30m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Environment:      environment,
			EncryptionSecret: encryptionSecret,
			PasswordHashKey:  passwordHashKey,
			TokenSignKey:     tokenSignKey,
			TokenIssuer:      tokenIssuer,
			TokenDuration:    tokenDuration,
		},
		Storage: Storage{
			DB:    DBConfig{DSN: databaseDSN},
			Redis: RedisConfig{Address: redisAddress},
		},
		Server: Server{
			HTTPAddress: serverAddress,
		},
		JSONFilePath: jsonConfigPath,
	}
}
