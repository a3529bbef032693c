package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SuggestionOpts tweaks the defaults of SeedSuggestion.
type SuggestionOpts struct {
	ProjectID uuid.UUID
	Language  domain.LanguageCode
	Origin    domain.SuggestionOrigin
	MergedID  *uuid.UUID
	UpdatedAt time.Time
}

// SeedSuggestion inserts a suggestion row with sensible defaults: the
// given project, IGBO source, COMMUNITY origin, not merged, updated now.
func SeedSuggestion(t *testing.T, pool *pgxpool.Pool, opts SuggestionOpts) domain.Suggestion {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	if opts.ProjectID == uuid.Nil {
		opts.ProjectID = uuid.New()
	}
	if opts.Language == "" {
		opts.Language = domain.LanguageIgbo
	}
	if opts.Origin == "" {
		opts.Origin = domain.OriginCommunity
	}
	if opts.UpdatedAt.IsZero() {
		opts.UpdatedAt = now
	}

	s := domain.Suggestion{
		ID:             uuid.New(),
		ProjectID:      opts.ProjectID,
		SourceText:     "nkịta na-agba ọsọ " + uniqueSuffix(),
		SourceLanguage: opts.Language,
		Origin:         opts.Origin,
		MergedID:       opts.MergedID,
		CreatedAt:      now,
		UpdatedAt:      opts.UpdatedAt,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO suggestions (id, project_id, source_text, source_language, origin, merged_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.ProjectID, s.SourceText, string(s.SourceLanguage), string(s.Origin), s.MergedID, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSuggestion insert: %v", err)
	}

	return s
}

// SeedPronunciation inserts a recorded, review-open pronunciation on the
// suggestion's source sentence. Pass uuid.Nil as speakerID for a legacy
// row with an unknown speaker.
func SeedPronunciation(t *testing.T, pool *pgxpool.Pool, suggestionID, speakerID uuid.UUID) domain.Pronunciation {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.Pronunciation{
		ID:           uuid.New(),
		SuggestionID: suggestionID,
		Audio:        "https://cdn.test/audio-pronunciations/" + uniqueSuffix() + ".webm",
		Review:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if speakerID != uuid.Nil {
		p.SpeakerID = &speakerID
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO pronunciations (id, suggestion_id, audio, speaker_id, review, archived, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.SuggestionID, p.Audio, p.SpeakerID, p.Review, p.Archived, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPronunciation insert: %v", err)
	}

	return p
}

// SeedUnrecordedPronunciation inserts an audio slot with no recording.
func SeedUnrecordedPronunciation(t *testing.T, pool *pgxpool.Pool, suggestionID uuid.UUID) domain.Pronunciation {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.Pronunciation{
		ID:           uuid.New(),
		SuggestionID: suggestionID,
		Review:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO pronunciations (id, suggestion_id, audio, review, created_at, updated_at)
		 VALUES ($1, $2, '', $3, $4, $5)`,
		p.ID, p.SuggestionID, p.Review, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUnrecordedPronunciation insert: %v", err)
	}

	return p
}

// SeedTranslation inserts a translation of the suggestion into the given
// language.
func SeedTranslation(t *testing.T, pool *pgxpool.Pool, suggestionID uuid.UUID, language domain.LanguageCode, authorID uuid.UUID) domain.Translation {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	tr := domain.Translation{
		ID:           uuid.New(),
		SuggestionID: suggestionID,
		Text:         "the dog is running " + uniqueSuffix(),
		Language:     language,
		AuthorID:     authorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO translations (id, suggestion_id, text, language, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tr.ID, tr.SuggestionID, tr.Text, string(tr.Language), tr.AuthorID, tr.CreatedAt, tr.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTranslation insert: %v", err)
	}

	return tr
}

// SeedBallot inserts a vote row directly, bypassing the repository.
func SeedBallot(t *testing.T, pool *pgxpool.Pool, subject domain.BallotSubject, subjectID, voterID uuid.UUID, vote domain.VoteValue) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO ballots (subject_type, subject_id, voter_id, vote)
		 VALUES ($1, $2, $3, $4)`,
		string(subject), subjectID, voterID, string(vote),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBallot insert: %v", err)
	}
}

// SeedInteraction marks a user as having touched a suggestion.
func SeedInteraction(t *testing.T, pool *pgxpool.Pool, suggestionID, userID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO suggestion_interactions (suggestion_id, user_id)
		 VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		suggestionID, userID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedInteraction insert: %v", err)
	}
}
