// Package suggestion implements the Suggestion aggregate repository using
// PostgreSQL. Sampling queries are built with squirrel because their
// predicates vary per call; aggregate hydration uses raw SQL with ANY()
// batching.
package suggestion

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nkowaokwu/igbo-api-admin-sub002/internal/adapter/postgres"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// Repo provides suggestion persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new suggestion repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const suggestionColumns = "s.id, s.project_id, s.source_text, s.source_language, s.origin, s.merged_id, s.merged_by, s.created_at, s.updated_at"

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID loads a full suggestion aggregate: the document row, its
// pronunciations and translations, their ballots, and the interaction set.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx,
		"SELECT "+suggestionColumns+" FROM suggestions s WHERE s.id = $1", id)

	s, err := scanSuggestion(row)
	if err != nil {
		return nil, postgres.MapError(err, "suggestion", id)
	}

	result, err := r.hydrate(ctx, []domain.Suggestion{s})
	if err != nil {
		return nil, postgres.MapError(err, "suggestion", id)
	}

	return &result[0], nil
}

// Exists reports whether a suggestion row exists.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	err := querier.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM suggestions WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "suggestion", id)
	}
	return exists, nil
}

// ---------------------------------------------------------------------------
// Sampling queries
// ---------------------------------------------------------------------------

// SampleForRecording returns a randomized batch of unmerged documents that
// still need audio: below the rendition limit, never recorded by the
// caller, not ingested from a voice corpus, and updated after the policy
// cutoff.
func (r *Repo) SampleForRecording(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error) {
	q := r.sampleBase(f).
		Where(sq.NotEq{"s.origin": string(domain.OriginVoiceCorpus)}).
		Where(sq.Gt{"s.updated_at": domain.RecordingPolicyCutoff}).
		Where(sq.Expr(
			`(SELECT count(*) FROM pronunciations p
			  WHERE p.suggestion_id = s.id AND p.translation_id IS NULL AND p.audio <> '') < ?`,
			domain.RecordingLimit)).
		Where(sq.Expr(
			`NOT EXISTS (SELECT 1 FROM pronunciations p
			  WHERE p.suggestion_id = s.id AND p.speaker_id = ?)`,
			f.CallerID))

	return r.runSample(ctx, q)
}

// SampleForReview returns unmerged documents carrying at least one
// pronunciation eligible for the caller's vote, where the caller has not
// voted on any of the document's pronunciations yet.
func (r *Repo) SampleForReview(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error) {
	q := r.sampleBase(f).
		Where(sq.Expr(
			`EXISTS (SELECT 1 FROM pronunciations p
			  WHERE p.suggestion_id = s.id
			    AND p.review AND NOT p.archived AND p.audio <> ''
			    AND (p.speaker_id IS NULL OR p.speaker_id <> ?)
			    AND NOT EXISTS (
			        SELECT 1 FROM ballots b
			        WHERE b.subject_type = 'PRONUNCIATION' AND b.subject_id = p.id AND b.vote = 'DENY'))`,
			f.CallerID)).
		Where(sq.Expr(
			`NOT EXISTS (SELECT 1 FROM ballots b
			  JOIN pronunciations p ON b.subject_id = p.id
			  WHERE b.subject_type = 'PRONUNCIATION' AND p.suggestion_id = s.id AND b.voter_id = ?)`,
			f.CallerID))

	return r.runSample(ctx, q)
}

// SampleForTranslation returns unmerged documents with at least one of the
// caller's permitted languages still untranslated.
func (r *Repo) SampleForTranslation(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error) {
	q := r.sampleBase(f).
		Where(sq.Expr(
			`EXISTS (SELECT 1 FROM unnest(?::text[]) AS lang
			  WHERE NOT EXISTS (
			      SELECT 1 FROM translations t
			      WHERE t.suggestion_id = s.id AND t.language = lang))`,
			languageStrings(f.Languages)))

	return r.runSample(ctx, q)
}

// SampleForTranslationReview returns unmerged documents with a translation
// in one of the caller's permitted languages that the caller neither
// authored nor voted on.
func (r *Repo) SampleForTranslationReview(ctx context.Context, f domain.SampleFilter) ([]domain.Suggestion, error) {
	q := r.sampleBase(f).
		Where(sq.Expr(
			`EXISTS (SELECT 1 FROM translations t
			  WHERE t.suggestion_id = s.id
			    AND t.language = ANY(?::text[])
			    AND t.author_id <> ?
			    AND NOT EXISTS (
			        SELECT 1 FROM ballots b
			        WHERE b.subject_type = 'TRANSLATION' AND b.subject_id = t.id AND b.voter_id = ?))`,
			languageStrings(f.Languages), f.CallerID, f.CallerID))

	return r.runSample(ctx, q)
}

// sampleBase is the predicate every sampling query shares: project scope,
// unmerged only, randomized bounded selection.
func (r *Repo) sampleBase(f domain.SampleFilter) sq.SelectBuilder {
	return psql.
		Select("s.id", "s.project_id", "s.source_text", "s.source_language",
			"s.origin", "s.merged_id", "s.merged_by", "s.created_at", "s.updated_at").
		From("suggestions s").
		Where(sq.Eq{"s.project_id": f.ProjectID}).
		Where("s.merged_id IS NULL").
		OrderBy("random()").
		Limit(uint64(f.Limit))
}

func (r *Repo) runSample(ctx context.Context, q sq.SelectBuilder) ([]domain.Suggestion, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sample query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("run sample query: %w", err)
	}
	defer rows.Close()

	suggestions, err := scanSuggestions(rows)
	if err != nil {
		return nil, fmt.Errorf("scan sample rows: %w", err)
	}

	return r.hydrate(ctx, suggestions)
}

func languageStrings(langs []domain.LanguageCode) []string {
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		out = append(out, string(l))
	}
	return out
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create persists a suggestion with its translations and pronunciations.
// Ballots are never written here; they live in the ballot repository.
func (r *Repo) Create(ctx context.Context, s *domain.Suggestion) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	_, err := querier.Exec(ctx,
		`INSERT INTO suggestions (id, project_id, source_text, source_language, origin, merged_id, merged_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.ProjectID, s.SourceText, string(s.SourceLanguage), string(s.Origin), s.MergedID, s.MergedBy)
	if err != nil {
		return postgres.MapError(err, "suggestion", s.ID)
	}

	for i := range s.Translations {
		t := &s.Translations[i]
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		t.SuggestionID = s.ID
		_, err := querier.Exec(ctx,
			`INSERT INTO translations (id, suggestion_id, text, language, author_id)
			 VALUES ($1, $2, $3, $4, $5)`,
			t.ID, s.ID, t.Text, string(t.Language), t.AuthorID)
		if err != nil {
			return postgres.MapError(err, "translation", t.ID)
		}
		for j := range t.Pronunciations {
			if err := r.insertPronunciation(ctx, s.ID, &t.ID, &t.Pronunciations[j]); err != nil {
				return err
			}
		}
	}

	for i := range s.Pronunciations {
		if err := r.insertPronunciation(ctx, s.ID, nil, &s.Pronunciations[i]); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repo) insertPronunciation(ctx context.Context, suggestionID uuid.UUID, translationID *uuid.UUID, p *domain.Pronunciation) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.SuggestionID = suggestionID
	p.TranslationID = translationID

	_, err := querier.Exec(ctx,
		`INSERT INTO pronunciations (id, suggestion_id, translation_id, audio, speaker_id, review, archived)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, suggestionID, translationID, p.Audio, p.SpeakerID, p.Review, p.Archived)
	if err != nil {
		return postgres.MapError(err, "pronunciation", p.ID)
	}
	return nil
}

// TouchPronunciation bumps a pronunciation's updated_at. Used when a vote
// lands; SKIP never calls this.
func (r *Repo) TouchPronunciation(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx,
		"UPDATE pronunciations SET updated_at = now() WHERE id = $1", id)
	if err != nil {
		return postgres.MapError(err, "pronunciation", id)
	}
	return nil
}

// AddInteraction records that a user touched a suggestion. Idempotent.
func (r *Repo) AddInteraction(ctx context.Context, suggestionID, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx,
		`INSERT INTO suggestion_interactions (suggestion_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT (suggestion_id, user_id) DO NOTHING`,
		suggestionID, userID)
	if err != nil {
		return postgres.MapError(err, "suggestion", suggestionID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Aggregate hydration
// ---------------------------------------------------------------------------

// hydrate attaches pronunciations, translations, ballots, and interactions
// to the given suggestion rows with one batched query per relation.
func (r *Repo) hydrate(ctx context.Context, suggestions []domain.Suggestion) ([]domain.Suggestion, error) {
	if len(suggestions) == 0 {
		return []domain.Suggestion{}, nil
	}

	ids := make([]uuid.UUID, len(suggestions))
	byID := make(map[uuid.UUID]*domain.Suggestion, len(suggestions))
	for i := range suggestions {
		ids[i] = suggestions[i].ID
		byID[suggestions[i].ID] = &suggestions[i]
	}

	if err := r.loadTranslations(ctx, ids, byID); err != nil {
		return nil, err
	}

	// Index translations only after every append: taking element pointers
	// while the slices still grow would leave stale pointers behind.
	translationByID := make(map[uuid.UUID]*domain.Translation)
	for _, s := range byID {
		for i := range s.Translations {
			translationByID[s.Translations[i].ID] = &s.Translations[i]
		}
	}

	if err := r.loadPronunciations(ctx, ids, byID, translationByID); err != nil {
		return nil, err
	}

	pronunciationByID := make(map[uuid.UUID]*domain.Pronunciation)
	for _, s := range byID {
		for i := range s.Pronunciations {
			pronunciationByID[s.Pronunciations[i].ID] = &s.Pronunciations[i]
		}
	}
	for _, t := range translationByID {
		for i := range t.Pronunciations {
			pronunciationByID[t.Pronunciations[i].ID] = &t.Pronunciations[i]
		}
	}

	if err := r.loadBallots(ctx, ids, byID, translationByID, pronunciationByID); err != nil {
		return nil, err
	}
	if err := r.loadInteractions(ctx, ids, byID); err != nil {
		return nil, err
	}

	return suggestions, nil
}

func (r *Repo) loadTranslations(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Suggestion) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx,
		`SELECT id, suggestion_id, text, language, author_id, created_at, updated_at
		 FROM translations
		 WHERE suggestion_id = ANY($1::uuid[])
		 ORDER BY suggestion_id, created_at`, ids)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Translation
		var lang string
		if err := rows.Scan(&t.ID, &t.SuggestionID, &t.Text, &lang, &t.AuthorID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return fmt.Errorf("scan translation: %w", err)
		}
		t.Language = domain.LanguageCode(lang)

		s := byID[t.SuggestionID]
		s.Translations = append(s.Translations, t)
	}
	return rows.Err()
}

func (r *Repo) loadPronunciations(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Suggestion, translationByID map[uuid.UUID]*domain.Translation) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx,
		`SELECT id, suggestion_id, translation_id, audio, speaker_id, review, archived, created_at, updated_at
		 FROM pronunciations
		 WHERE suggestion_id = ANY($1::uuid[])
		 ORDER BY suggestion_id, created_at`, ids)
	if err != nil {
		return fmt.Errorf("load pronunciations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Pronunciation
		if err := rows.Scan(&p.ID, &p.SuggestionID, &p.TranslationID, &p.Audio,
			&p.SpeakerID, &p.Review, &p.Archived, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("scan pronunciation: %w", err)
		}

		if p.TranslationID != nil {
			if t, ok := translationByID[*p.TranslationID]; ok {
				t.Pronunciations = append(t.Pronunciations, p)
				continue
			}
		}
		s := byID[p.SuggestionID]
		s.Pronunciations = append(s.Pronunciations, p)
	}
	return rows.Err()
}

func (r *Repo) loadBallots(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Suggestion, translationByID map[uuid.UUID]*domain.Translation, pronunciationByID map[uuid.UUID]*domain.Pronunciation) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx,
		`SELECT b.subject_type, b.subject_id, b.voter_id, b.vote
		 FROM ballots b
		 WHERE (b.subject_type = 'SUGGESTION' AND b.subject_id = ANY($1::uuid[]))
		    OR (b.subject_type = 'PRONUNCIATION' AND b.subject_id IN
		        (SELECT id FROM pronunciations WHERE suggestion_id = ANY($1::uuid[])))
		    OR (b.subject_type = 'TRANSLATION' AND b.subject_id IN
		        (SELECT id FROM translations WHERE suggestion_id = ANY($1::uuid[])))
		 ORDER BY b.voted_at`, ids)
	if err != nil {
		return fmt.Errorf("load ballots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			subjectType string
			subjectID   uuid.UUID
			voterID     uuid.UUID
			vote        string
		)
		if err := rows.Scan(&subjectType, &subjectID, &voterID, &vote); err != nil {
			return fmt.Errorf("scan ballot: %w", err)
		}

		approve := domain.VoteValue(vote) == domain.VoteApprove
		switch domain.BallotSubject(subjectType) {
		case domain.BallotSubjectSuggestion:
			if s, ok := byID[subjectID]; ok {
				if approve {
					s.Approvals = append(s.Approvals, voterID)
				} else {
					s.Denials = append(s.Denials, voterID)
				}
			}
		case domain.BallotSubjectPronunciation:
			if p, ok := pronunciationByID[subjectID]; ok {
				if approve {
					p.Approvals = append(p.Approvals, voterID)
				} else {
					p.Denials = append(p.Denials, voterID)
				}
			}
		case domain.BallotSubjectTranslation:
			if t, ok := translationByID[subjectID]; ok {
				if approve {
					t.Approvals = append(t.Approvals, voterID)
				} else {
					t.Denials = append(t.Denials, voterID)
				}
			}
		}
	}
	return rows.Err()
}

func (r *Repo) loadInteractions(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Suggestion) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx,
		`SELECT suggestion_id, user_id FROM suggestion_interactions
		 WHERE suggestion_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return fmt.Errorf("load interactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var suggestionID, userID uuid.UUID
		if err := rows.Scan(&suggestionID, &userID); err != nil {
			return fmt.Errorf("scan interaction: %w", err)
		}
		s := byID[suggestionID]
		s.UserInteractions = append(s.UserInteractions, userID)
	}
	return rows.Err()
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanSuggestion(row pgx.Row) (domain.Suggestion, error) {
	var (
		s      domain.Suggestion
		lang   string
		origin string
	)
	if err := row.Scan(&s.ID, &s.ProjectID, &s.SourceText, &lang, &origin,
		&s.MergedID, &s.MergedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return domain.Suggestion{}, err
	}
	s.SourceLanguage = domain.LanguageCode(lang)
	s.Origin = domain.SuggestionOrigin(origin)
	return s, nil
}

func scanSuggestions(rows pgx.Rows) ([]domain.Suggestion, error) {
	var result []domain.Suggestion
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if result == nil {
		result = []domain.Suggestion{}
	}
	return result, nil
}
