package domain

import (
	"time"

	"github.com/google/uuid"
)

// Suggestion is a draft sentence with its audio renditions and translations,
// pending peer review before promotion into the canonical corpus.
type Suggestion struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	SourceText     string
	SourceLanguage LanguageCode
	Origin         SuggestionOrigin

	// MergedID references the canonical document once the suggestion has
	// been promoted; nil while the suggestion is still under review.
	MergedID *uuid.UUID
	MergedBy *uuid.UUID

	// Approvals/Denials are the document-level ballot. The review engine
	// never mutates these; the merge flow owns them.
	Approvals []uuid.UUID
	Denials   []uuid.UUID

	// UserInteractions is the set of users who touched this document.
	UserInteractions []uuid.UUID

	Pronunciations []Pronunciation
	Translations   []Translation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsMerged reports whether the suggestion has been promoted.
// Merged suggestions are immutable from the review and sampling paths.
func (s *Suggestion) IsMerged() bool {
	return s.MergedID != nil
}

// PronunciationByID finds a pronunciation (source-level or attached to a
// translation) by id. Lookup is always by id, never by slice index.
func (s *Suggestion) PronunciationByID(id uuid.UUID) *Pronunciation {
	for i := range s.Pronunciations {
		if s.Pronunciations[i].ID == id {
			return &s.Pronunciations[i]
		}
	}
	for ti := range s.Translations {
		for pi := range s.Translations[ti].Pronunciations {
			if s.Translations[ti].Pronunciations[pi].ID == id {
				return &s.Translations[ti].Pronunciations[pi]
			}
		}
	}
	return nil
}

// TranslationIn returns the suggestion's translation in the given language,
// or nil if none exists.
func (s *Suggestion) TranslationIn(lang LanguageCode) *Translation {
	for i := range s.Translations {
		if s.Translations[i].Language == lang {
			return &s.Translations[i]
		}
	}
	return nil
}

// Pronunciation is one audio recording of a sentence or translation,
// carrying its own approval/denial ballot.
type Pronunciation struct {
	ID           uuid.UUID
	SuggestionID uuid.UUID

	// TranslationID is set when this recording renders a translation
	// rather than the source sentence.
	TranslationID *uuid.UUID

	// Audio is the recording's URI. Empty string means "not recorded":
	// such a pronunciation is never eligible and never mergeable.
	Audio string

	// SpeakerID is the recorder. Nil for legacy rows with unknown speakers.
	SpeakerID *uuid.UUID

	// Review is true while the pronunciation is open for voting.
	Review   bool
	Archived bool

	Approvals []uuid.UUID
	Denials   []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApprovedBy reports whether the voter already appears in the approval set.
func (p *Pronunciation) ApprovedBy(voter uuid.UUID) bool {
	return containsVoter(p.Approvals, voter)
}

// DeniedBy reports whether the voter already appears in the denial set.
func (p *Pronunciation) DeniedBy(voter uuid.UUID) bool {
	return containsVoter(p.Denials, voter)
}

// IsSpeaker reports whether the caller recorded this pronunciation.
func (p *Pronunciation) IsSpeaker(caller uuid.UUID) bool {
	return p.SpeakerID != nil && *p.SpeakerID == caller
}

// Translation is one rendition of the source sentence in another language,
// with its own ballot and at most a handful of audio renditions.
type Translation struct {
	ID           uuid.UUID
	SuggestionID uuid.UUID
	Text         string
	Language     LanguageCode
	AuthorID     uuid.UUID

	Approvals []uuid.UUID
	Denials   []uuid.UUID

	Pronunciations []Pronunciation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApprovedBy reports whether the voter already appears in the approval set.
func (t *Translation) ApprovedBy(voter uuid.UUID) bool {
	return containsVoter(t.Approvals, voter)
}

// DeniedBy reports whether the voter already appears in the denial set.
func (t *Translation) DeniedBy(voter uuid.UUID) bool {
	return containsVoter(t.Denials, voter)
}

func containsVoter(set []uuid.UUID, voter uuid.UUID) bool {
	for _, id := range set {
		if id == voter {
			return true
		}
	}
	return false
}
