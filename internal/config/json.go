package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and the
// string-friendly [Duration] type, so operators can keep durations like
// "15m" in the config file.
type StructuredJSONConfig struct {
	App struct {
		Environment      string   `json:"environment"`
		EncryptionSecret string   `json:"encryption_secret"`
		PasswordHashKey  string   `json:"password_hash_key"`
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenDuration    Duration `json:"token_duration"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Cache struct {
		TTL Duration `json:"ttl"`
	} `json:"cache,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error parsing a json file: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Environment:      jsonCfg.App.Environment,
			EncryptionSecret: jsonCfg.App.EncryptionSecret,
			PasswordHashKey:  jsonCfg.App.PasswordHashKey,
			TokenSignKey:     jsonCfg.App.TokenSignKey,
			TokenIssuer:      jsonCfg.App.TokenIssuer,
			TokenDuration:    time.Duration(jsonCfg.App.TokenDuration),
		},
		Storage: Storage{
			DB: DBConfig{DSN: jsonCfg.Storage.DB.DSN},
			Redis: RedisConfig{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
		},
		Cache: CacheConfig{TTL: time.Duration(jsonCfg.Cache.TTL)},
	}

	return cfg, nil
}

// Duration is a [time.Duration] that unmarshals from either a JSON number
// (nanoseconds) or a duration string such as "15m".
type Duration time.Duration

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("error parsing duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}
}
