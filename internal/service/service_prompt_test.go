// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sachin Kathar

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SACHINKATHAR2005/viralprompts/internal/cache"
	"github.com/SACHINKATHAR2005/viralprompts/internal/kv"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/store"
	"github.com/SACHINKATHAR2005/viralprompts/internal/validators"
	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// ─────────────────────────────────────────────
// Mocks: store repositories
// ─────────────────────────────────────────────

type mockPromptRepository struct {
	createFn            func(ctx context.Context, prompt models.Prompt) (models.Prompt, error)
	getByIDFn           func(ctx context.Context, id string) (models.Prompt, error)
	getTextFn           func(ctx context.Context, id string) (string, error)
	listFn              func(ctx context.Context, filter models.PromptFilter, viewerID int64, includeInactive bool) ([]models.Prompt, error)
	updateFn            func(ctx context.Context, id string, update models.PromptUpdate) (models.Prompt, error)
	deleteFn            func(ctx context.Context, id string) error
	incrementViewsFn    func(ctx context.Context, id string) error
	incrementCopiesFn   func(ctx context.Context, id string) error
	countCreatedSinceFn func(ctx context.Context, creatorID int64, since time.Time) (int, error)
	setActiveFn         func(ctx context.Context, id string, active bool) error
}

func (m *mockPromptRepository) Create(ctx context.Context, prompt models.Prompt) (models.Prompt, error) {
	if m.createFn != nil {
		return m.createFn(ctx, prompt)
	}
	return prompt, nil
}

func (m *mockPromptRepository) GetByID(ctx context.Context, id string) (models.Prompt, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return models.Prompt{}, store.ErrPromptNotFound
}

func (m *mockPromptRepository) GetText(ctx context.Context, id string) (string, error) {
	if m.getTextFn != nil {
		return m.getTextFn(ctx, id)
	}
	return "", nil
}

func (m *mockPromptRepository) List(ctx context.Context, filter models.PromptFilter, viewerID int64, includeInactive bool) ([]models.Prompt, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter, viewerID, includeInactive)
	}
	return nil, nil
}

func (m *mockPromptRepository) Update(ctx context.Context, id string, update models.PromptUpdate) (models.Prompt, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return models.Prompt{}, nil
}

func (m *mockPromptRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPromptRepository) IncrementViews(ctx context.Context, id string) error {
	if m.incrementViewsFn != nil {
		return m.incrementViewsFn(ctx, id)
	}
	return nil
}

func (m *mockPromptRepository) IncrementCopies(ctx context.Context, id string) error {
	if m.incrementCopiesFn != nil {
		return m.incrementCopiesFn(ctx, id)
	}
	return nil
}

func (m *mockPromptRepository) CountCreatedSince(ctx context.Context, creatorID int64, since time.Time) (int, error) {
	if m.countCreatedSinceFn != nil {
		return m.countCreatedSinceFn(ctx, creatorID, since)
	}
	return 0, nil
}

func (m *mockPromptRepository) SetActive(ctx context.Context, id string, active bool) error {
	if m.setActiveFn != nil {
		return m.setActiveFn(ctx, id, active)
	}
	return nil
}

type mockUserRepository struct {
	createUserFn              func(ctx context.Context, user models.User) (models.User, error)
	findUserByLoginFn         func(ctx context.Context, login string) (models.User, error)
	getUserByIDFn             func(ctx context.Context, userID int64) (models.User, error)
	setMonetizationFn         func(ctx context.Context, userID int64, unlocked bool) error
	incrementCopiesReceivedFn func(ctx context.Context, userID int64) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	if m.findUserByLoginFn != nil {
		return m.findUserByLoginFn(ctx, login)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockUserRepository) SetMonetizationUnlocked(ctx context.Context, userID int64, unlocked bool) error {
	if m.setMonetizationFn != nil {
		return m.setMonetizationFn(ctx, userID, unlocked)
	}
	return nil
}

func (m *mockUserRepository) IncrementCopiesReceived(ctx context.Context, userID int64) error {
	if m.incrementCopiesReceivedFn != nil {
		return m.incrementCopiesReceivedFn(ctx, userID)
	}
	return nil
}

type mockSocialRepository struct {
	followFn      func(ctx context.Context, followerID, creatorID int64) error
	unfollowFn    func(ctx context.Context, followerID, creatorID int64) error
	isFollowingFn func(ctx context.Context, followerID, creatorID int64) (bool, error)
	likeFn        func(ctx context.Context, userID int64, promptID string) error
	unlikeFn      func(ctx context.Context, userID int64, promptID string) error
}

func (m *mockSocialRepository) Follow(ctx context.Context, followerID, creatorID int64) error {
	if m.followFn != nil {
		return m.followFn(ctx, followerID, creatorID)
	}
	return nil
}

func (m *mockSocialRepository) Unfollow(ctx context.Context, followerID, creatorID int64) error {
	if m.unfollowFn != nil {
		return m.unfollowFn(ctx, followerID, creatorID)
	}
	return nil
}

func (m *mockSocialRepository) IsFollowing(ctx context.Context, followerID, creatorID int64) (bool, error) {
	if m.isFollowingFn != nil {
		return m.isFollowingFn(ctx, followerID, creatorID)
	}
	return false, nil
}

func (m *mockSocialRepository) Like(ctx context.Context, userID int64, promptID string) error {
	if m.likeFn != nil {
		return m.likeFn(ctx, userID, promptID)
	}
	return nil
}

func (m *mockSocialRepository) Unlike(ctx context.Context, userID int64, promptID string) error {
	if m.unlikeFn != nil {
		return m.unlikeFn(ctx, userID, promptID)
	}
	return nil
}

// nopEntries backs a real cache.Cache with a black hole so invalidations
// never fail a test.
type nopEntries struct{}

func (nopEntries) Get(context.Context, string) ([]byte, error) { return nil, kv.ErrKeyNotFound }
func (nopEntries) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nopEntries) Delete(context.Context, ...string) error     { return nil }
func (nopEntries) DeletePattern(context.Context, string) error { return nil }

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

func newTestPromptService(prompts *mockPromptRepository, users *mockUserRepository, social *mockSocialRepository) *promptService {
	return &promptService{
		prompts:          prompts,
		users:            users,
		social:           social,
		cache:            cache.NewCache(nopEntries{}, time.Minute, logger.Nop()),
		validator:        validators.NewPromptValidator(),
		creationCap:      3,
		creationLookback: 12 * time.Hour,
		logger:           logger.Nop(),
		now:              time.Now,
		newID:            func() string { return "fixed-prompt-id" },
	}
}

func validInput() models.PromptInput {
	return models.PromptInput{
		Title:      "SQL tuning assistant",
		Category:   "coding",
		PromptText: "Act as a PostgreSQL performance expert.",
		Privacy:    models.PrivacyPublic,
	}
}

// ─────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────

func TestPromptService_Create_Success(t *testing.T) {
	var persisted models.Prompt
	prompts := &mockPromptRepository{
		createFn: func(_ context.Context, prompt models.Prompt) (models.Prompt, error) {
			persisted = prompt
			return prompt, nil
		},
	}
	svc := newTestPromptService(prompts, &mockUserRepository{}, &mockSocialRepository{})

	created, err := svc.Create(context.Background(), 7, validInput())

	require.NoError(t, err)
	assert.Equal(t, "fixed-prompt-id", created.ID)
	assert.Equal(t, int64(7), persisted.CreatorID)
	assert.True(t, persisted.IsActive, "new prompts start active")
}

func TestPromptService_Create_DefaultsPrivacyToPublic(t *testing.T) {
	prompts := &mockPromptRepository{}
	svc := newTestPromptService(prompts, &mockUserRepository{}, &mockSocialRepository{})

	input := validInput()
	input.Privacy = ""

	created, err := svc.Create(context.Background(), 7, input)

	require.NoError(t, err)
	assert.Equal(t, models.PrivacyPublic, created.Privacy)
}

func TestPromptService_Create_CollectsAllViolations(t *testing.T) {
	svc := newTestPromptService(&mockPromptRepository{}, &mockUserRepository{}, &mockSocialRepository{})

	_, err := svc.Create(context.Background(), 7, models.PromptInput{
		Privacy: models.PrivacyPublic,
		IsPaid:  true, // price missing
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.GreaterOrEqual(t, len(validation.Violations), 3,
		"title, category, prompt_text and price violations must all be reported at once")
}

func TestPromptService_Create_PaidNeedsMonetization(t *testing.T) {
	users := &mockUserRepository{
		getUserByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, MonetizationUnlocked: false}, nil
		},
	}
	svc := newTestPromptService(&mockPromptRepository{}, users, &mockSocialRepository{})

	input := validInput()
	input.IsPaid = true
	input.Price = 4.99

	_, err := svc.Create(context.Background(), 7, input)

	require.ErrorIs(t, err, ErrMonetizationNotUnlocked)
}

func TestPromptService_Create_PaidSucceedsAfterUnlock(t *testing.T) {
	users := &mockUserRepository{
		getUserByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, MonetizationUnlocked: true}, nil
		},
	}
	svc := newTestPromptService(&mockPromptRepository{}, users, &mockSocialRepository{})

	input := validInput()
	input.IsPaid = true
	input.Price = 4.99

	created, err := svc.Create(context.Background(), 7, input)

	require.NoError(t, err)
	assert.True(t, created.IsPaid)
	assert.Equal(t, 4.99, created.Price)
}

func TestPromptService_Create_CapReached(t *testing.T) {
	prompts := &mockPromptRepository{
		countCreatedSinceFn: func(_ context.Context, _ int64, _ time.Time) (int, error) {
			return 3, nil
		},
	}
	svc := newTestPromptService(prompts, &mockUserRepository{}, &mockSocialRepository{})

	_, err := svc.Create(context.Background(), 7, validInput())

	var capErr *CreationLimitError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 3, capErr.Limit)
	assert.Equal(t, "12 hours", capErr.Period)
	assert.Equal(t, 3, capErr.Current)
}

func TestPromptService_Create_AdminBypassesCap(t *testing.T) {
	countCalled := false
	prompts := &mockPromptRepository{
		countCreatedSinceFn: func(_ context.Context, _ int64, _ time.Time) (int, error) {
			countCalled = true
			return 100, nil
		},
	}
	users := &mockUserRepository{
		getUserByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, IsAdmin: true}, nil
		},
	}
	svc := newTestPromptService(prompts, users, &mockSocialRepository{})

	_, err := svc.Create(context.Background(), 1, validInput())

	require.NoError(t, err)
	assert.False(t, countCalled, "admins are exempt from the creation cap")
}

func TestPromptService_Create_CapCountsFromPersistedRows(t *testing.T) {
	var sinceSeen time.Time
	prompts := &mockPromptRepository{
		countCreatedSinceFn: func(_ context.Context, _ int64, since time.Time) (int, error) {
			sinceSeen = since
			return 0, nil
		},
	}
	svc := newTestPromptService(prompts, &mockUserRepository{}, &mockSocialRepository{})
	fixedNow := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixedNow }

	_, err := svc.Create(context.Background(), 7, validInput())

	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(-12*time.Hour), sinceSeen)
}

// ─────────────────────────────────────────────
// Get
// ─────────────────────────────────────────────

func TestPromptService_Get_PrivateDeniedToStranger(t *testing.T) {
	prompts := &mockPromptRepository{
		getByIDFn: func(_ context.Context, id string) (models.Prompt, error) {
			return models.Prompt{ID: id, CreatorID: 1, Privacy: models.PrivacyPrivate, IsActive: true}, nil
		},
	}
	svc := newTestPromptService(prompts, &mockUserRepository{}, &mockSocialRepository{})

	_, err := svc.Get(context.Background(), "p1", 2, false)

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestPromptService_Get_ViewIncrementsForStrangerOnly(t *testing.T) {
	increments := 0
	prompts := &mockPromptRepository{
		getByIDFn: func(_ context.Context, id string) (models.Prompt, error) {
			return models.Prompt{ID: id, CreatorID: 1, Privacy: models.PrivacyPublic, IsActive: true}, nil
		},
		incrementViewsFn: func(_ context.Context, _ string) error {
			increments++
			return nil
		},
	}
	svc := newTestPromptService(prompts, &mockUserRepository{}, &mockSocialRepository{})

	_, err := svc.Get(context.Background(), "p1", 2, false)
	require.NoError(t, err)
	assert.Equal(t, 1, increments)

	_, err = svc.Get(context.Background(), "p1", 1, false)
	require.NoError(t, err)
	assert.Equal(t, 1, increments, "the creator viewing their own prompt must not count")
}

func TestPromptService_Get_InactiveHiddenFromStranger(t *testing.T) {
	prompts := &mockPromptRepository{
		getByIDFn: func(_ context.Context, id string) (models.Prompt, error) {
			return models.Prompt{ID: id, CreatorID: 1, Privacy: models.PrivacyPublic, IsActive: false}, nil
		},
	}
	svc := newTestPromptService(prompts, &mockUserRepository{}, &mockSocialRepository{})

	_, err := svc.Get(context.Background(), "p1", 2, false)
	require.ErrorIs(t, err, store.ErrPromptNotFound,
		"moderated prompts must look deleted, not forbidden")

	_, err = svc.Get(context.Background(), "p1", 1, false)
	require.NoError(t, err, "the creator still sees their moderated prompt")
}

func TestPromptService_Get_FollowersOnlyHonoursFollowEdge(t *testing.T) {
	prompts := &mockPromptRepository{
		getByIDFn: func(_ context.Context, id string) (models.Prompt, error) {
			return models.Prompt{ID: id, CreatorID: 1, Privacy: models.PrivacyFollowers, IsActive: true}, nil
		},
	}
	social := &mockSocialRepository{
		isFollowingFn: func(_ context.Context, followerID, creatorID int64) (bool, error) {
			return followerID == 2 && creatorID == 1, nil
		},
	}
	svc := newTestPromptService(prompts, &mockUserRepository{}, social)

	_, err := svc.Get(context.Background(), "p1", 2, false)
	require.NoError(t, err, "a follower may view")

	_, err = svc.Get(context.Background(), "p1", 3, false)
	require.ErrorIs(t, err, ErrAccessDenied, "a non-follower may not")
}

// ─────────────────────────────────────────────
// Copy
// ─────────────────────────────────────────────

func TestPromptService_Copy_DisclosesTextAndRecordsCopy(t *testing.T) {
	copyIncrements, receivedIncrements := 0, 0
	prompts := &mockPromptRepository{
		getByIDFn: func(_ context.Context, id string) (models.Prompt, error) {
			return models.Prompt{ID: id, CreatorID: 1, Privacy: models.PrivacyPublic, IsActive: true}, nil
		},
		getTextFn: func(_ context.Context, _ string) (string, error) {
			return "the decrypted prompt text", nil
		},
		incrementCopiesFn: func(_ context.Context, _ string) error {
			copyIncrements++
			return nil
		},
	}
	users := &mockUserRepository{
		incrementCopiesReceivedFn: func(_ context.Context, userID int64) error {
			assert.Equal(t, int64(1), userID)
			receivedIncrements++
			return nil
		},
	}
	svc := newTestPromptService(prompts, users, &mockSocialRepository{})

	prompt, err := svc.Copy(context.Background(), "p1", 2, false)

	require.NoError(t, err)
	assert.Equal(t, "the decrypted prompt text", prompt.PromptText)
	assert.Equal(t, 1, copyIncrements)
	assert.Equal(t, 1, receivedIncrements)
}

func TestPromptService_Copy_OwnerCopyCounted(t *testing.T) {
	// Copy side effects are unconditional; only the view counter carries
	// an owner carve-out.
	copyIncrements := 0
	prompts := &mockPromptRepository{
		getByIDFn: func(_ context.Context, id string) (models.Prompt, error) {
			return models.Prompt{ID: id, CreatorID: 1, Privacy: models.PrivacyPrivate, IsActive: true}, nil
		},
		getTextFn: func(_ context.Context, _ string) (string, error) {
			return "mine", nil
		},
		incrementCopiesFn: func(_ context.Context, _ string) error {
			copyIncrements++
			return nil
		},
	}
	svc := newTestPromptService(prompts, &mockUserRepository{}, &mockSocialRepository{})

	prompt, err := svc.Copy(context.Background(), "p1", 1, false)

	require.NoError(t, err)
	assert.Equal(t, "mine", prompt.PromptText)
	assert.Equal(t, 1, copyIncrements)
}

func TestPromptService_Copy_TwoCopiesCountTwice(t *testing.T) {
	copyIncrements := 0
	prompts := &mockPromptRepository{
		getByIDFn: func(_ context.Context, id string) (models.Prompt, error) {
			return models.Prompt{ID: id, CreatorID: 1, Privacy: models.PrivacyPublic, IsActive: true}, nil
		},
		getTextFn: func(_ context.Context, _ string) (string, error) {
			return "shared text", nil
		},
		incrementCopiesFn: func(_ context.Context, _ string) error {
			copyIncrements++
			return nil
		},
	}
	svc := newTestPromptService(prompts, &mockUserRepository{}, &mockSocialRepository{})

	first, err := svc.Copy(context.Background(), "p1", 2, false)
	require.NoError(t, err)
	second, err := svc.Copy(context.Background(), "p1", 3, false)
	require.NoError(t, err)

	assert.Equal(t, first.PromptText, second.PromptText)
	assert.Equal(t, 2, copyIncrements)
}

func TestPromptService_Copy_DeniedForPrivate(t *testing.T) {
	textFetched := false
	prompts := &mockPromptRepository{
		getByIDFn: func(_ context.Context, id string) (models.Prompt, error) {
			return models.Prompt{ID: id, CreatorID: 1, Privacy: models.PrivacyPrivate, IsActive: true}, nil
		},
		getTextFn: func(_ context.Context, _ string) (string, error) {
			textFetched = true
			return "secret", nil
		},
	}
	svc := newTestPromptService(prompts, &mockUserRepository{}, &mockSocialRepository{})

	_, err := svc.Copy(context.Background(), "p1", 2, false)

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, textFetched, "the protected field must not be fetched when access is denied")
}

// ─────────────────────────────────────────────
// Update / Delete
// ─────────────────────────────────────────────

func TestPromptService_Update_OnlyOwnerOrAdmin(t *testing.T) {
	prompts := &mockPromptRepository{
		getByIDFn: func(_ context.Context, id string) (models.Prompt, error) {
			return models.Prompt{ID: id, CreatorID: 1, Privacy: models.PrivacyPublic, IsActive: true}, nil
		},
		updateFn: func(_ context.Context, id string, _ models.PromptUpdate) (models.Prompt, error) {
			return models.Prompt{ID: id}, nil
		},
	}
	svc := newTestPromptService(prompts, &mockUserRepository{}, &mockSocialRepository{})

	title := "Renamed"
	update := models.PromptUpdate{Title: &title}

	_, err := svc.Update(context.Background(), "p1", 2, false, update)
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Update(context.Background(), "p1", 1, false, update)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "p1", 99, true, update)
	require.NoError(t, err, "admins may modify any prompt")
}

func TestPromptService_Update_TurningPaidChecksCreatorMonetization(t *testing.T) {
	prompts := &mockPromptRepository{
		getByIDFn: func(_ context.Context, id string) (models.Prompt, error) {
			return models.Prompt{ID: id, CreatorID: 1, Privacy: models.PrivacyPublic, IsActive: true}, nil
		},
	}
	users := &mockUserRepository{
		getUserByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, MonetizationUnlocked: false}, nil
		},
	}
	svc := newTestPromptService(prompts, users, &mockSocialRepository{})

	isPaid := true
	price := 2.50
	_, err := svc.Update(context.Background(), "p1", 1, false, models.PromptUpdate{IsPaid: &isPaid, Price: &price})

	require.ErrorIs(t, err, ErrMonetizationNotUnlocked)
}

func TestPromptService_Delete_AdminAllowed(t *testing.T) {
	deleted := false
	prompts := &mockPromptRepository{
		getByIDFn: func(_ context.Context, id string) (models.Prompt, error) {
			return models.Prompt{ID: id, CreatorID: 1, Privacy: models.PrivacyPublic, IsActive: true}, nil
		},
		deleteFn: func(_ context.Context, _ string) error {
			deleted = true
			return nil
		},
	}
	svc := newTestPromptService(prompts, &mockUserRepository{}, &mockSocialRepository{})

	err := svc.Delete(context.Background(), "p1", 99, true)

	require.NoError(t, err)
	assert.True(t, deleted)
}
