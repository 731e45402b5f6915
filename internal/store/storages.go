package store

import (
	"context"

	"github.com/SACHINKATHAR2005/viralprompts/internal/config"
	"github.com/SACHINKATHAR2005/viralprompts/internal/crypto"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/migrations"
)

// Storages aggregates every repository over one database connection.
type Storages struct {
	DB      *DB
	Prompts PromptRepository
	Users   UserRepository
	Social  SocialRepository
}

// NewStorages connects to PostgreSQL, runs pending migrations, and wires
// the repositories. The field cipher is injected into the prompt
// repository, which is the only component allowed to touch it.
func NewStorages(ctx context.Context, cfg config.Storage, cipher *crypto.Cipher, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := migrations.Apply(db.DB); err != nil {
		return nil, err
	}

	return &Storages{
		DB:      db,
		Prompts: NewPromptRepository(db, cipher, log),
		Users:   NewUserRepository(db, log),
		Social:  NewSocialRepository(db, log),
	}, nil
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	return s.DB.Close()
}
