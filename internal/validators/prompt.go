package validators

import (
	"context"
	"fmt"
	"net/url"

	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a
// subset of fields (field-level scoping).
const (
	// FieldTitle targets the public display title of a prompt.
	FieldTitle = "title"

	// FieldDescription targets the public summary shown in listings.
	FieldDescription = "description"

	// FieldCategory targets the classification bucket of a prompt.
	FieldCategory = "category"

	// FieldTags targets the free-form label list.
	FieldTags = "tags"

	// FieldProofLinks targets the list of result-screenshot URLs.
	FieldProofLinks = "proof_links"

	// FieldPromptText targets the protected prompt text payload.
	FieldPromptText = "prompt_text"

	// FieldPrivacy targets the visibility level of a prompt.
	FieldPrivacy = "privacy"

	// FieldPrice targets the monetization price of a prompt.
	FieldPrice = "price"
)

// Size limits accepted by the create and update endpoints.
const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
	maxPromptTextLen  = 20000
	maxTags           = 10
	maxProofLinks     = 10
)

// PromptValidator implements the Validator interface for the prompt-related
// domain models: PromptInput and PromptUpdate.
//
// Unlike a fail-fast validator it collects every broken rule into a
// Violations aggregate, so a client sees the full list at once.
// It supports both value and pointer receivers for every model type.
type PromptValidator struct {
}

// NewPromptValidator constructs a new PromptValidator
// and returns it as the Validator interface.
func NewPromptValidator() Validator {
	return &PromptValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.PromptInput / *models.PromptInput
//   - models.PromptUpdate / *models.PromptUpdate
//
// Returns nil when every rule holds, a *Violations error when any rule is
// broken, or ErrUnsupportedType for unknown payload types.
func (v *PromptValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PromptInput:
		return v.validateInput(value, fields...)
	case *models.PromptInput:
		return v.validateInput(*value, fields...)
	case models.PromptUpdate:
		return v.validateUpdate(value, fields...)
	case *models.PromptUpdate:
		return v.validateUpdate(*value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *PromptValidator) validateInput(input models.PromptInput, fields ...string) error {
	violations := &Violations{}

	for _, field := range v.fieldsOrAll(fields) {
		switch field {
		case FieldTitle:
			v.checkTitle(violations, input.Title)
		case FieldDescription:
			v.checkDescription(violations, input.Description)
		case FieldCategory:
			if input.Category == "" {
				violations.Add("category is required")
			}
		case FieldTags:
			v.checkTags(violations, input.Tags)
		case FieldProofLinks:
			v.checkProofLinks(violations, input.ProofLinks)
		case FieldPromptText:
			if input.PromptText == "" {
				violations.Add("prompt_text is required")
			} else if len(input.PromptText) > maxPromptTextLen {
				violations.Add(fmt.Sprintf("prompt_text must not exceed %d characters", maxPromptTextLen))
			}
		case FieldPrivacy:
			if !input.Privacy.Valid() {
				violations.Add("privacy must be one of: public, private, followers")
			}
		case FieldPrice:
			v.checkPrice(violations, input.IsPaid, input.Price)
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	if violations.Any() {
		return violations
	}
	return nil
}

func (v *PromptValidator) validateUpdate(update models.PromptUpdate, fields ...string) error {
	violations := &Violations{}

	if update.Empty() {
		violations.Add("at least one field must be provided for update")
		return violations
	}

	for _, field := range v.fieldsOrAll(fields) {
		switch field {
		case FieldTitle:
			if update.Title != nil {
				v.checkTitle(violations, *update.Title)
			}
		case FieldDescription:
			if update.Description != nil {
				v.checkDescription(violations, *update.Description)
			}
		case FieldCategory:
			if update.Category != nil && *update.Category == "" {
				violations.Add("category cannot be empty")
			}
		case FieldTags:
			if update.Tags != nil {
				v.checkTags(violations, *update.Tags)
			}
		case FieldProofLinks:
			if update.ProofLinks != nil {
				v.checkProofLinks(violations, *update.ProofLinks)
			}
		case FieldPromptText:
			if update.PromptText != nil {
				if *update.PromptText == "" {
					violations.Add("prompt_text cannot be empty")
				} else if len(*update.PromptText) > maxPromptTextLen {
					violations.Add(fmt.Sprintf("prompt_text must not exceed %d characters", maxPromptTextLen))
				}
			}
		case FieldPrivacy:
			if update.Privacy != nil && !update.Privacy.Valid() {
				violations.Add("privacy must be one of: public, private, followers")
			}
		case FieldPrice:
			if update.IsPaid != nil || update.Price != nil {
				isPaid := update.IsPaid != nil && *update.IsPaid
				price := 0.0
				if update.Price != nil {
					price = *update.Price
				}
				v.checkPrice(violations, isPaid, price)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	if violations.Any() {
		return violations
	}
	return nil
}

// fieldsOrAll expands an empty field list to the full field set.
func (v *PromptValidator) fieldsOrAll(fields []string) []string {
	if len(fields) != 0 {
		return fields
	}
	return []string{
		FieldTitle, FieldDescription, FieldCategory, FieldTags,
		FieldProofLinks, FieldPromptText, FieldPrivacy, FieldPrice,
	}
}

func (v *PromptValidator) checkTitle(violations *Violations, title string) {
	if title == "" {
		violations.Add("title is required")
	} else if len(title) > maxTitleLen {
		violations.Add(fmt.Sprintf("title must not exceed %d characters", maxTitleLen))
	}
}

func (v *PromptValidator) checkDescription(violations *Violations, description string) {
	if len(description) > maxDescriptionLen {
		violations.Add(fmt.Sprintf("description must not exceed %d characters", maxDescriptionLen))
	}
}

func (v *PromptValidator) checkTags(violations *Violations, tags []string) {
	if len(tags) > maxTags {
		violations.Add(fmt.Sprintf("at most %d tags are allowed", maxTags))
	}
	for _, tag := range tags {
		if tag == "" {
			violations.Add("tags cannot contain empty values")
			break
		}
	}
}

func (v *PromptValidator) checkProofLinks(violations *Violations, links []string) {
	if len(links) > maxProofLinks {
		violations.Add(fmt.Sprintf("at most %d proof links are allowed", maxProofLinks))
	}
	for _, link := range links {
		parsed, err := url.Parse(link)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			violations.Add("proof links must be absolute http(s) URLs")
			break
		}
	}
}

func (v *PromptValidator) checkPrice(violations *Violations, isPaid bool, price float64) {
	switch {
	case isPaid && price <= 0:
		violations.Add("price must be greater than zero for paid prompts")
	case !isPaid && price != 0:
		violations.Add("price must be zero for free prompts")
	case price < 0:
		violations.Add("price cannot be negative")
	}
}
