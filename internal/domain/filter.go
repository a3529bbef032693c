package domain

import "github.com/google/uuid"

// SampleFilter parameterizes every sampling query: who is asking, for
// which project, which languages they may work in, and how many documents
// to hand out at most.
type SampleFilter struct {
	CallerID  uuid.UUID
	ProjectID uuid.UUID
	Languages []LanguageCode
	Limit     int
}

// Validate fails fast on a malformed filter before any query executes.
func (f SampleFilter) Validate() error {
	var errs []FieldError
	if f.CallerID == uuid.Nil {
		errs = append(errs, FieldError{Field: "caller_id", Message: "required"})
	}
	if f.ProjectID == uuid.Nil {
		errs = append(errs, FieldError{Field: "project_id", Message: "required"})
	}
	if f.Limit < 0 {
		errs = append(errs, FieldError{Field: "limit", Message: "must not be negative"})
	}
	for _, l := range f.Languages {
		if !l.IsValid() {
			errs = append(errs, FieldError{Field: "languages", Message: "unknown language " + l.String()})
		}
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
