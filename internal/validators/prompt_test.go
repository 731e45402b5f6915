package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SACHINKATHAR2005/viralprompts/models"
)

func validPromptInput() models.PromptInput {
	return models.PromptInput{
		Title:      "SQL tuning assistant",
		Category:   "coding",
		PromptText: "Act as a PostgreSQL performance expert.",
		Privacy:    models.PrivacyPublic,
	}
}

func TestPromptValidator_Input_Valid(t *testing.T) {
	v := NewPromptValidator()

	assert.NoError(t, v.Validate(context.Background(), validPromptInput()))

	// Pointer form is accepted too.
	input := validPromptInput()
	assert.NoError(t, v.Validate(context.Background(), &input))
}

func TestPromptValidator_Input_CollectsEveryViolation(t *testing.T) {
	v := NewPromptValidator()

	input := models.PromptInput{
		Privacy: "secret",
		IsPaid:  true,
	}

	err := v.Validate(context.Background(), input)

	var violations *Violations
	require.ErrorAs(t, err, &violations)
	assert.Len(t, violations.Rules, 5,
		"title, category, prompt_text, privacy and price must all be reported in one pass")
	assert.Contains(t, violations.Rules, "title is required")
	assert.Contains(t, violations.Rules, "category is required")
	assert.Contains(t, violations.Rules, "prompt_text is required")
	assert.Contains(t, violations.Rules, "privacy must be one of: public, private, followers")
	assert.Contains(t, violations.Rules, "price must be greater than zero for paid prompts")
}

func TestPromptValidator_Input_SizeLimits(t *testing.T) {
	v := NewPromptValidator()

	input := validPromptInput()
	input.Title = strings.Repeat("a", maxTitleLen+1)
	input.Description = strings.Repeat("b", maxDescriptionLen+1)
	input.PromptText = strings.Repeat("c", maxPromptTextLen+1)
	input.Tags = make([]string, maxTags+1)
	for i := range input.Tags {
		input.Tags[i] = "tag"
	}

	err := v.Validate(context.Background(), input)

	var violations *Violations
	require.ErrorAs(t, err, &violations)
	assert.Len(t, violations.Rules, 4)
}

func TestPromptValidator_Input_ProofLinks(t *testing.T) {
	v := NewPromptValidator()

	input := validPromptInput()
	input.ProofLinks = []string{"https://example.com/shot.png", "not-a-url"}

	err := v.Validate(context.Background(), input)

	var violations *Violations
	require.ErrorAs(t, err, &violations)
	assert.Contains(t, violations.Rules, "proof links must be absolute http(s) URLs")
}

func TestPromptValidator_Input_PriceMustBeZeroWhenFree(t *testing.T) {
	v := NewPromptValidator()

	input := validPromptInput()
	input.Price = 1.99

	err := v.Validate(context.Background(), input)

	var violations *Violations
	require.ErrorAs(t, err, &violations)
	assert.Contains(t, violations.Rules, "price must be zero for free prompts")
}

func TestPromptValidator_FieldScoping(t *testing.T) {
	v := NewPromptValidator()

	// Everything is broken, but only the title is in scope.
	input := models.PromptInput{Title: "present"}

	assert.NoError(t, v.Validate(context.Background(), input, FieldTitle))

	err := v.Validate(context.Background(), input, FieldTitle, FieldCategory)
	var violations *Violations
	require.ErrorAs(t, err, &violations)
	assert.Equal(t, []string{"category is required"}, violations.Rules)
}

func TestPromptValidator_UnknownField(t *testing.T) {
	v := NewPromptValidator()

	err := v.Validate(context.Background(), validPromptInput(), "colour")

	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestPromptValidator_UnsupportedType(t *testing.T) {
	v := NewPromptValidator()

	err := v.Validate(context.Background(), struct{ X int }{X: 1})

	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestPromptValidator_Update_Empty(t *testing.T) {
	v := NewPromptValidator()

	err := v.Validate(context.Background(), models.PromptUpdate{})

	var violations *Violations
	require.ErrorAs(t, err, &violations)
	assert.Equal(t, []string{"at least one field must be provided for update"}, violations.Rules)
}

func TestPromptValidator_Update_PartialValid(t *testing.T) {
	v := NewPromptValidator()

	title := "Renamed"
	assert.NoError(t, v.Validate(context.Background(), models.PromptUpdate{Title: &title}))
}

func TestPromptValidator_Update_RejectsEmptyValues(t *testing.T) {
	v := NewPromptValidator()

	empty := ""
	err := v.Validate(context.Background(), models.PromptUpdate{Title: &empty, PromptText: &empty})

	var violations *Violations
	require.ErrorAs(t, err, &violations)
	assert.Contains(t, violations.Rules, "title is required")
	assert.Contains(t, violations.Rules, "prompt_text cannot be empty")
}

func TestPromptValidator_Update_PaidNeedsPrice(t *testing.T) {
	v := NewPromptValidator()

	isPaid := true
	err := v.Validate(context.Background(), models.PromptUpdate{IsPaid: &isPaid})

	var violations *Violations
	require.ErrorAs(t, err, &violations)
	assert.Contains(t, violations.Rules, "price must be greater than zero for paid prompts")
}
