package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
)

// socialRepository is the PostgreSQL-backed implementation of
// [SocialRepository]: follow relationships and per-prompt likes.
type socialRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSocialRepository constructs a [SocialRepository] backed by the
// provided database connection and logger.
func NewSocialRepository(db *DB, logger *logger.Logger) SocialRepository {
	logger.Debug().Msg("creating social repository")
	return &socialRepository{
		db:     db,
		logger: logger,
	}
}

// Follow records that followerID follows creatorID.
// A duplicate follow maps the unique violation to [ErrAlreadyFollowing].
func (r *socialRepository) Follow(ctx context.Context, followerID, creatorID int64) error {
	if _, err := r.db.ExecContext(ctx, createFollow, followerID, creatorID); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrAlreadyFollowing
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// Unfollow removes the follow edge. Removing a non-existent edge is not an
// error.
func (r *socialRepository) Unfollow(ctx context.Context, followerID, creatorID int64) error {
	if _, err := r.db.ExecContext(ctx, deleteFollow, followerID, creatorID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// IsFollowing reports whether followerID follows creatorID. Backs the
// followers privacy level in the access-control checks.
func (r *socialRepository) IsFollowing(ctx context.Context, followerID, creatorID int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, followExists, followerID, creatorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return exists, nil
}

// Like records userID's like on a prompt and bumps the prompt's like
// counter. The two statements share a transaction so the counter cannot
// drift from the likes table.
func (r *socialRepository) Like(ctx context.Context, userID int64, promptID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createLike, userID, promptID); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrAlreadyLiked
		}
		log.Err(err).Str("func", "*socialRepository.Like").Msg("error inserting like")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err := tx.ExecContext(ctx, incrementPromptLikes, promptID); err != nil {
		log.Err(err).Str("func", "*socialRepository.Like").Msg("error incrementing like counter")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// Unlike removes userID's like and decrements the counter. Unliking a
// prompt that was never liked is a no-op.
func (r *socialRepository) Unlike(ctx context.Context, userID int64, promptID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, deleteLike, userID, promptID)
	if err != nil {
		log.Err(err).Str("func", "*socialRepository.Unlike").Msg("error deleting like")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected > 0 {
		if _, err := tx.ExecContext(ctx, decrementPromptLikes, promptID); err != nil {
			log.Err(err).Str("func", "*socialRepository.Unlike").Msg("error decrementing like counter")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
