package site

import (
	"strings"

	"github.com/rotalog/rotalog/internal/domain"
)

const maxSiteNameLength = 60

// CreateCustomSiteInput holds the parameters for creating a custom site.
type CreateCustomSiteInput struct {
	Name string
	Icon string
}

// Validate checks all fields and collects all errors.
func (i *CreateCustomSiteInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxSiteNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 60 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RenameCustomSiteInput holds the parameters for renaming a custom site.
type RenameCustomSiteInput struct {
	Key  string
	Name string
}

// Validate checks all fields and collects all errors.
func (i *RenameCustomSiteInput) Validate() error {
	var errs []domain.FieldError

	if i.Key == "" {
		errs = append(errs, domain.FieldError{Field: "key", Message: "required"})
	}
	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxSiteNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 60 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateSettingsInput holds the parameters for changing rotation settings.
// Nil fields are left unchanged.
type UpdateSettingsInput struct {
	MinRestDays       *int
	ShowDisabledSites *bool
}

// Validate checks all fields and collects all errors.
func (i *UpdateSettingsInput) Validate() error {
	var errs []domain.FieldError

	if i.MinRestDays != nil &&
		(*i.MinRestDays < domain.MinRestDaysFloor || *i.MinRestDays > domain.MinRestDaysCeil) {
		errs = append(errs, domain.FieldError{Field: "min_rest_days", Message: "must be between 1 and 60"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
