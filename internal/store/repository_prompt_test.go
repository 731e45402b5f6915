package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/SACHINKATHAR2005/viralprompts/internal/crypto"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/models"
)

func newTestPromptRepo(t *testing.T) (*promptRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	cipher, err := crypto.NewCipher("prompt-repo-test-secret", false, l)
	if err != nil {
		t.Fatalf("failed to create cipher: %v", err)
	}
	repo := &promptRepository{
		db:     &DB{DB: db, logger: l},
		cipher: cipher,
		logger: l,
	}
	return repo, mock, db
}

func promptRows(prompt models.Prompt) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.
		NewRows(promptColumns).
		AddRow(
			prompt.ID, prompt.CreatorID, prompt.Title, prompt.Description, prompt.Category,
			[]byte(`["go"]`), []byte(`[]`), string(prompt.Privacy), prompt.IsPaid, prompt.Price,
			prompt.IsActive, prompt.Views, prompt.Copies, prompt.Likes, prompt.Comments,
			prompt.RatingSum, prompt.RatingCount, now, now,
		)
}

// ciphertextArg matches any INSERT/UPDATE argument that is a valid
// three-segment envelope and not the given plaintext.
type ciphertextArg struct {
	plaintext string
}

func (a ciphertextArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return s != a.plaintext && crypto.IsEncrypted(s)
}

func TestCreatePrompt_EncryptsProtectedField(t *testing.T) {
	repo, mock, db := newTestPromptRepo(t)
	defer db.Close()

	prompt := models.Prompt{
		ID:         "11111111-2222-3333-4444-555555555555",
		CreatorID:  7,
		Title:      "Refactoring helper",
		Category:   "coding",
		PromptText: "You are a senior engineer. Refactor the following code.",
		Privacy:    models.PrivacyPublic,
	}

	mock.ExpectQuery("INSERT INTO prompts").
		WithArgs(
			prompt.ID, prompt.CreatorID, prompt.Title, prompt.Description, prompt.Category,
			sqlmock.AnyArg(), sqlmock.AnyArg(),
			ciphertextArg{plaintext: prompt.PromptText},
			string(prompt.Privacy), prompt.IsPaid, prompt.Price,
		).
		WillReturnRows(promptRows(prompt))

	created, err := repo.Create(context.Background(), prompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != prompt.ID {
		t.Errorf("expected ID %s, got %s", prompt.ID, created.ID)
	}
	if created.PromptText != "" {
		t.Errorf("protected field leaked into the default projection: %q", created.PromptText)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreatePrompt_DoesNotReencryptEnvelope(t *testing.T) {
	repo, mock, db := newTestPromptRepo(t)
	defer db.Close()

	envelope, err := repo.cipher.Encrypt("already protected")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	prompt := models.Prompt{
		ID:         "11111111-2222-3333-4444-555555555555",
		CreatorID:  7,
		Title:      "Resaved prompt",
		Category:   "coding",
		PromptText: envelope,
		Privacy:    models.PrivacyPublic,
	}

	// The stored value must be byte-identical to the incoming envelope.
	mock.ExpectQuery("INSERT INTO prompts").
		WithArgs(
			prompt.ID, prompt.CreatorID, prompt.Title, prompt.Description, prompt.Category,
			sqlmock.AnyArg(), sqlmock.AnyArg(),
			envelope,
			string(prompt.Privacy), prompt.IsPaid, prompt.Price,
		).
		WillReturnRows(promptRows(prompt))

	if _, err := repo.Create(context.Background(), prompt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetPromptByID_NotFound(t *testing.T) {
	repo, mock, db := newTestPromptRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM prompts").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrPromptNotFound) {
		t.Fatalf("expected ErrPromptNotFound, got %v", err)
	}
}

func TestGetText_DecryptsStoredEnvelope(t *testing.T) {
	repo, mock, db := newTestPromptRepo(t)
	defer db.Close()

	const plaintext = "Act as a database tuning expert."
	envelope, err := repo.cipher.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	mock.ExpectQuery("SELECT prompt_text").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"prompt_text"}).AddRow(envelope))

	text, err := repo.GetText(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != plaintext {
		t.Errorf("expected %q, got %q", plaintext, text)
	}
}

func TestGetText_CorruptedEnvelope(t *testing.T) {
	repo, mock, db := newTestPromptRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT prompt_text").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"prompt_text"}).AddRow("not:an:envelope"))

	_, err := repo.GetText(context.Background(), "p1")
	if err == nil {
		t.Fatal("expected decryption error for corrupted envelope")
	}
}

func TestCountCreatedSince(t *testing.T) {
	repo, mock, db := newTestPromptRepo(t)
	defer db.Close()

	since := time.Now().Add(-12 * time.Hour)
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(int64(7), since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountCreatedSince(context.Background(), 7, since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3, got %d", count)
	}
}

func TestDeletePrompt_RemovesEngagementInOneTransaction(t *testing.T) {
	repo, mock, db := newTestPromptRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM likes").WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM comments").WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM ratings").WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM saved_prompts").WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM prompts").WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeletePrompt_NotFoundRollsBack(t *testing.T) {
	repo, mock, db := newTestPromptRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM likes").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM comments").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM ratings").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM saved_prompts").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM prompts").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, ErrPromptNotFound) {
		t.Fatalf("expected ErrPromptNotFound, got %v", err)
	}
}
