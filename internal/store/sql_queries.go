package store

import (
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// promptColumns is the default prompt projection. prompt_text is absent on
// purpose: the protected field is never fetched, scanned, or serialized on
// any list or detail path. The only query that touches it is
// [getPromptText], reachable solely through the copy operation.
var promptColumns = []string{
	"id",
	"creator_id",
	"title",
	"description",
	"category",
	"tags",
	"proof_links",
	"privacy",
	"is_paid",
	"price",
	"is_active",
	"views",
	"copies",
	"likes",
	"comments",
	"rating_sum",
	"rating_count",
	"created_at",
	"updated_at",
}

var (
	createPrompt = fmt.Sprintf(`INSERT INTO prompts (
			id,
			creator_id,
			title,
			description,
			category,
			tags,
			proof_links,
			prompt_text,
			privacy,
			is_paid,
			price
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s;`, strings.Join(promptColumns, ", "))

	getPromptByID = fmt.Sprintf(`SELECT %s
		FROM prompts
		WHERE id = $1;`, strings.Join(promptColumns, ", "))
)

const (
	getPromptText = `SELECT prompt_text
		FROM prompts
		WHERE id = $1;`

	incrementPromptViews = `UPDATE prompts
		SET views = views + 1
		WHERE id = $1;`

	incrementPromptCopies = `UPDATE prompts
		SET copies = copies + 1
		WHERE id = $1;`

	countPromptsCreatedSince = `SELECT COUNT(*)
		FROM prompts
		WHERE creator_id = $1 AND created_at >= $2;`

	setPromptActive = `UPDATE prompts
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1;`

	deletePromptLikes    = `DELETE FROM likes WHERE prompt_id = $1;`
	deletePromptComments = `DELETE FROM comments WHERE prompt_id = $1;`
	deletePromptRatings  = `DELETE FROM ratings WHERE prompt_id = $1;`
	deletePromptSaves    = `DELETE FROM saved_prompts WHERE prompt_id = $1;`
	deletePromptRow      = `DELETE FROM prompts WHERE id = $1;`
)

const (
	createUser = `INSERT INTO users (login, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING user_id, login, name, password_hash, is_admin, monetization_unlocked, copies_received, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password_hash, is_admin, monetization_unlocked, copies_received, created_at
		FROM users
		WHERE login = $1;`

	getUserByID = `SELECT user_id, login, name, password_hash, is_admin, monetization_unlocked, copies_received, created_at
		FROM users
		WHERE user_id = $1;`

	setUserMonetization = `UPDATE users
		SET monetization_unlocked = $2
		WHERE user_id = $1;`

	incrementUserCopiesReceived = `UPDATE users
		SET copies_received = copies_received + 1
		WHERE user_id = $1;`
)

const (
	createFollow = `INSERT INTO follows (follower_id, creator_id)
		VALUES ($1, $2);`

	deleteFollow = `DELETE FROM follows
		WHERE follower_id = $1 AND creator_id = $2;`

	followExists = `SELECT EXISTS (
			SELECT 1 FROM follows
			WHERE follower_id = $1 AND creator_id = $2
		);`

	createLike = `INSERT INTO likes (user_id, prompt_id)
		VALUES ($1, $2);`

	deleteLike = `DELETE FROM likes
		WHERE user_id = $1 AND prompt_id = $2;`

	incrementPromptLikes = `UPDATE prompts
		SET likes = likes + 1
		WHERE id = $1;`

	decrementPromptLikes = `UPDATE prompts
		SET likes = GREATEST(likes - 1, 0)
		WHERE id = $1;`
)

// buildListQuery translates a [models.PromptFilter] into a parameterised
// SELECT over the default projection (prompt_text stays excluded).
//
// Visibility for a listing: active prompts that are public, owned by the
// viewer, or followers-only from creators the viewer follows. Admin
// listings may include inactive prompts for moderation.
func buildListQuery(filter models.PromptFilter, viewerID int64, includeInactive bool) (string, []any, error) {
	builder := sq.Select(promptColumns...).
		From("prompts").
		PlaceholderFormat(sq.Dollar)

	if !includeInactive {
		builder = builder.Where(sq.Eq{"is_active": true})
	}

	visibility := sq.Or{
		sq.Eq{"privacy": models.PrivacyPublic},
	}
	if viewerID != 0 {
		visibility = append(visibility,
			sq.Eq{"creator_id": viewerID},
			sq.Expr(
				`(privacy = ? AND creator_id IN (SELECT creator_id FROM follows WHERE follower_id = ?))`,
				models.PrivacyFollowers, viewerID,
			),
		)
	}
	builder = builder.Where(visibility)

	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if filter.CreatorID != 0 {
		builder = builder.Where(sq.Eq{"creator_id": filter.CreatorID})
	}
	if filter.Tag != "" {
		tag, err := json.Marshal([]string{filter.Tag})
		if err != nil {
			return "", nil, err
		}
		builder = builder.Where(sq.Expr(`tags @> ?::jsonb`, string(tag)))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}

	switch filter.Sort {
	case models.SortPopular:
		builder = builder.OrderBy("views + copies + likes DESC", "created_at DESC")
	default:
		builder = builder.OrderBy("created_at DESC")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	builder = builder.Limit(uint64(limit))
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	return builder.ToSql()
}

// buildUpdateQuery translates a [models.PromptUpdate] into a parameterised
// UPDATE touching only the supplied fields. promptText is the
// already-prepared (encrypted) value when the caller changed the protected
// field, or nil to leave the stored envelope untouched.
func buildUpdateQuery(id string, update models.PromptUpdate, promptText *string) (string, []any, error) {
	if update.Empty() {
		return "", nil, ErrNothingToUpdate
	}

	builder := sq.Update("prompts").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(promptColumns, ", ")).
		PlaceholderFormat(sq.Dollar)

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Category != nil {
		builder = builder.Set("category", *update.Category)
	}
	if update.Tags != nil {
		tags, err := json.Marshal(*update.Tags)
		if err != nil {
			return "", nil, err
		}
		builder = builder.Set("tags", tags)
	}
	if update.ProofLinks != nil {
		links, err := json.Marshal(*update.ProofLinks)
		if err != nil {
			return "", nil, err
		}
		builder = builder.Set("proof_links", links)
	}
	if promptText != nil {
		builder = builder.Set("prompt_text", *promptText)
	}
	if update.Privacy != nil {
		builder = builder.Set("privacy", *update.Privacy)
	}
	if update.IsPaid != nil {
		builder = builder.Set("is_paid", *update.IsPaid)
	}
	if update.Price != nil {
		builder = builder.Set("price", *update.Price)
	}

	return builder.ToSql()
}
