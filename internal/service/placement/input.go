package placement

import (
	"time"

	"github.com/google/uuid"

	"github.com/rotalog/rotalog/internal/domain"
)

const maxNoteLength = 500

// LogInput holds the parameters for logging a placement.
// OccurredAt nil means "now".
type LogInput struct {
	SiteKey    string
	OccurredAt *time.Time
	Note       *string
}

// Validate checks all fields and collects all errors.
func (i *LogInput) Validate() error {
	var errs []domain.FieldError

	if i.SiteKey == "" {
		errs = append(errs, domain.FieldError{Field: "site_key", Message: "required"})
	}
	if i.Note != nil && len(*i.Note) > maxNoteLength {
		errs = append(errs, domain.FieldError{Field: "note", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for editing a placement.
// Nil fields are left unchanged; ClearNote removes the note.
type UpdateInput struct {
	ID         uuid.UUID
	SiteKey    *string
	OccurredAt *time.Time
	Note       *string
	ClearNote  bool
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.SiteKey != nil && *i.SiteKey == "" {
		errs = append(errs, domain.FieldError{Field: "site_key", Message: "must not be empty"})
	}
	if i.Note != nil && len(*i.Note) > maxNoteLength {
		errs = append(errs, domain.FieldError{Field: "note", Message: "max 500 characters"})
	}
	if i.Note != nil && i.ClearNote {
		errs = append(errs, domain.FieldError{Field: "note", Message: "cannot both set and clear"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput holds the parameters for listing placements.
type ListInput struct {
	From    *time.Time
	To      *time.Time
	SiteKey *string
	Limit   int
	Offset  int
}

// Validate checks all fields and collects all errors.
func (i *ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 || i.Limit > 500 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 500"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if i.From != nil && i.To != nil && i.To.Before(*i.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must not be before from"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
