package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and the admin-managed monetization
// flag against the "users" table.
type userRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrLoginAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Login, user.Name, user.PasswordHash)

	if err := row.Scan(
		&user.UserID,
		&user.Login,
		&user.Name,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.MonetizationUnlocked,
		&user.CopiesReceived,
		&user.CreatedAt,
	); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrLoginAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	user.Password = ""
	return user, nil
}

// FindUserByLogin retrieves a user record by login.
// Returns [ErrNoUserWasFound] when no such account exists.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, findUserByLogin, login)

	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByLogin").Msg("error scanning user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user record by internal id.
// Returns [ErrNoUserWasFound] when no such account exists.
func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, getUserByID, userID)

	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.GetUserByID").Msg("error scanning user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// SetMonetizationUnlocked flips the admin-managed monetization flag.
// Returns [ErrNoUserWasFound] when the user does not exist.
func (r *userRepository) SetMonetizationUnlocked(ctx context.Context, userID int64, unlocked bool) error {
	result, err := r.db.ExecContext(ctx, setUserMonetization, userID, unlocked)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// IncrementCopiesReceived bumps the creator's aggregate copy counter.
func (r *userRepository) IncrementCopiesReceived(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, incrementUserCopiesReceived, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func scanUser(row rowScanner, user *models.User) error {
	return row.Scan(
		&user.UserID,
		&user.Login,
		&user.Name,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.MonetizationUnlocked,
		&user.CopiesReceived,
		&user.CreatedAt,
	)
}
