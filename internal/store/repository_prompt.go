package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SACHINKATHAR2005/viralprompts/internal/crypto"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// promptRepository is the PostgreSQL-backed implementation of
// [PromptRepository]. It owns the encrypted-field persistence contract:
// every write path runs the protected field through [PreparePromptText],
// and every read path except [promptRepository.GetText] uses the
// prompt_text-free projection.
type promptRepository struct {
	db     *DB
	cipher *crypto.Cipher
	logger *logger.Logger
}

// NewPromptRepository constructs a [PromptRepository] backed by the provided
// database connection, field cipher, and logger.
func NewPromptRepository(db *DB, cipher *crypto.Cipher, logger *logger.Logger) PromptRepository {
	logger.Debug().Msg("creating prompt repository")
	return &promptRepository{
		db:     db,
		cipher: cipher,
		logger: logger,
	}
}

// Create persists a new prompt and returns the canonical database row
// (without prompt text). The protected field is encrypted here, at the last
// moment before the INSERT, so no plaintext copy survives in the stored row.
func (r *promptRepository) Create(ctx context.Context, prompt models.Prompt) (models.Prompt, error) {
	log := logger.FromContext(ctx)

	promptText, err := PreparePromptText(prompt.PromptText, r.cipher)
	if err != nil {
		log.Err(err).Str("func", "*promptRepository.Create").Msg("error preparing prompt text")
		return models.Prompt{}, err
	}

	tags, proofLinks, err := marshalJSONColumns(prompt.Tags, prompt.ProofLinks)
	if err != nil {
		return models.Prompt{}, err
	}

	row := r.db.QueryRowContext(ctx, createPrompt,
		prompt.ID,
		prompt.CreatorID,
		prompt.Title,
		prompt.Description,
		prompt.Category,
		tags,
		proofLinks,
		promptText,
		prompt.Privacy,
		prompt.IsPaid,
		prompt.Price,
	)

	created, err := scanPrompt(row)
	if err != nil {
		log.Err(err).Str("func", "*promptRepository.Create").Msg("error scanning created prompt")
		return models.Prompt{}, err
	}

	return created, nil
}

// GetByID retrieves one prompt using the default projection. The prompt
// text column is never part of the query, so even a compromised read path
// cannot leak ciphertext.
func (r *promptRepository) GetByID(ctx context.Context, id string) (models.Prompt, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getPromptByID, id)
	prompt, err := scanPrompt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Prompt{}, ErrPromptNotFound
		}
		log.Err(err).Str("func", "*promptRepository.GetByID").Msg("error scanning prompt")
		return models.Prompt{}, err
	}

	return prompt, nil
}

// GetText fetches and decrypts the protected field of one prompt. The only
// caller is the copy operation, after its access-control check passed.
//
// A decryption failure here is a data-integrity incident (corrupted
// envelope or key mismatch), not a user error; it is logged loudly and the
// sentinel is propagated for the handler to map to a generic 500.
func (r *promptRepository) GetText(ctx context.Context, id string) (string, error) {
	log := logger.FromContext(ctx)

	var envelope string
	if err := r.db.QueryRowContext(ctx, getPromptText, id).Scan(&envelope); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrPromptNotFound
		}
		log.Err(err).Str("func", "*promptRepository.GetText").Msg("error fetching prompt text")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	plaintext, err := r.cipher.Decrypt(envelope)
	if err != nil {
		log.Error().Err(err).Str("prompt_id", id).
			Msg("prompt text failed to decrypt: data-integrity incident")
		return "", err
	}

	return plaintext, nil
}

// List retrieves prompts matching the filter, restricted to what viewerID
// is allowed to see (see [buildListQuery] for the visibility rules).
func (r *promptRepository) List(ctx context.Context, filter models.PromptFilter, viewerID int64, includeInactive bool) ([]models.Prompt, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListQuery(filter, viewerID, includeInactive)
	if err != nil {
		log.Err(err).Str("func", "*promptRepository.List").Msg("error building list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*promptRepository.List").Msg("error executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	prompts := make([]models.Prompt, 0)
	for rows.Next() {
		prompt, err := scanPrompt(rows)
		if err != nil {
			log.Err(err).Str("func", "*promptRepository.List").Msg("error scanning prompt row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		prompts = append(prompts, prompt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return prompts, nil
}

// Update applies a partial update and returns the refreshed row. When the
// update includes prompt text, the value is run through [PreparePromptText]
// first: a value that is already a ciphertext envelope is stored as-is, so
// re-saving an unchanged record can never re-encrypt it.
func (r *promptRepository) Update(ctx context.Context, id string, update models.PromptUpdate) (models.Prompt, error) {
	log := logger.FromContext(ctx)

	var promptText *string
	if update.PromptText != nil {
		prepared, err := PreparePromptText(*update.PromptText, r.cipher)
		if err != nil {
			log.Err(err).Str("func", "*promptRepository.Update").Msg("error preparing prompt text")
			return models.Prompt{}, err
		}
		promptText = &prepared
	}

	query, args, err := buildUpdateQuery(id, update, promptText)
	if err != nil {
		if errors.Is(err, ErrNothingToUpdate) {
			return models.Prompt{}, err
		}
		log.Err(err).Str("func", "*promptRepository.Update").Msg("error building update query")
		return models.Prompt{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	updated, err := scanPrompt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Prompt{}, ErrPromptNotFound
		}
		log.Err(err).Str("func", "*promptRepository.Update").Msg("error scanning updated prompt")
		return models.Prompt{}, err
	}

	return updated, nil
}

// Delete removes a prompt together with its dependent engagement records
// (likes, comments, ratings, saved-prompt references) in one transaction.
// The original system did this cleanup best-effort without atomicity; the
// single-database port wraps it in a transaction so a crash cannot leave
// orphaned engagement rows.
func (r *promptRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*promptRepository.Delete").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		deletePromptLikes,
		deletePromptComments,
		deletePromptRatings,
		deletePromptSaves,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			log.Err(err).Str("func", "*promptRepository.Delete").Msg("error deleting engagement records")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	result, err := tx.ExecContext(ctx, deletePromptRow, id)
	if err != nil {
		log.Err(err).Str("func", "*promptRepository.Delete").Msg("error deleting prompt")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrPromptNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*promptRepository.Delete").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// IncrementViews bumps the view counter in place.
func (r *promptRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, incrementPromptViews, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// IncrementCopies bumps the copy counter in place.
func (r *promptRepository) IncrementCopies(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, incrementPromptCopies, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// CountCreatedSince counts the creator's persisted prompts newer than
// since. Backing the creation cap with actual rows rather than a store
// counter means the cap self-heals from counter-store outages, at the cost
// of one indexed scan per creation attempt.
func (r *promptRepository) CountCreatedSince(ctx context.Context, creatorID int64, since time.Time) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, countPromptsCreatedSince, creatorID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// SetActive toggles the moderation flag.
func (r *promptRepository) SetActive(ctx context.Context, id string, active bool) error {
	result, err := r.db.ExecContext(ctx, setPromptActive, id, active)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrPromptNotFound
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPrompt reads one row of the default projection into a
// [models.Prompt], unmarshalling the JSONB columns and deriving the rating
// average.
func scanPrompt(row rowScanner) (models.Prompt, error) {
	var prompt models.Prompt
	var tags, proofLinks []byte

	err := row.Scan(
		&prompt.ID,
		&prompt.CreatorID,
		&prompt.Title,
		&prompt.Description,
		&prompt.Category,
		&tags,
		&proofLinks,
		&prompt.Privacy,
		&prompt.IsPaid,
		&prompt.Price,
		&prompt.IsActive,
		&prompt.Views,
		&prompt.Copies,
		&prompt.Likes,
		&prompt.Comments,
		&prompt.RatingSum,
		&prompt.RatingCount,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	)
	if err != nil {
		return models.Prompt{}, err
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &prompt.Tags); err != nil {
			return models.Prompt{}, fmt.Errorf("%w: tags: %w", ErrScanningRow, err)
		}
	}
	if len(proofLinks) > 0 {
		if err := json.Unmarshal(proofLinks, &prompt.ProofLinks); err != nil {
			return models.Prompt{}, fmt.Errorf("%w: proof_links: %w", ErrScanningRow, err)
		}
	}

	if prompt.RatingCount > 0 {
		prompt.RatingAvg = float64(prompt.RatingSum) / float64(prompt.RatingCount)
	}

	return prompt, nil
}

// marshalJSONColumns serializes the two JSONB columns, defaulting nil
// slices to empty arrays so the database never stores SQL NULL for them.
func marshalJSONColumns(tags, proofLinks []string) ([]byte, []byte, error) {
	if tags == nil {
		tags = []string{}
	}
	if proofLinks == nil {
		proofLinks = []string{}
	}

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: tags: %w", ErrBuildingSQLQuery, err)
	}
	linksJSON, err := json.Marshal(proofLinks)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: proof_links: %w", ErrBuildingSQLQuery, err)
	}

	return tagsJSON, linksJSON, nil
}
