package review

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// ===========================================================================
// Manual mocks (func fields)
// ===========================================================================

type mockSuggestionRepo struct {
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	TouchPronunciationFunc func(ctx context.Context, id uuid.UUID) error
	AddInteractionFunc     func(ctx context.Context, suggestionID, userID uuid.UUID) error

	touched      []uuid.UUID
	interactions []uuid.UUID
}

func (m *mockSuggestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockSuggestionRepo) TouchPronunciation(ctx context.Context, id uuid.UUID) error {
	m.touched = append(m.touched, id)
	if m.TouchPronunciationFunc != nil {
		return m.TouchPronunciationFunc(ctx, id)
	}
	return nil
}

func (m *mockSuggestionRepo) AddInteraction(ctx context.Context, suggestionID, userID uuid.UUID) error {
	m.interactions = append(m.interactions, userID)
	if m.AddInteractionFunc != nil {
		return m.AddInteractionFunc(ctx, suggestionID, userID)
	}
	return nil
}

type castCall struct {
	subject   domain.BallotSubject
	subjectID uuid.UUID
	voterID   uuid.UUID
	vote      domain.VoteValue
}

type mockBallotRepo struct {
	CastFunc func(ctx context.Context, subject domain.BallotSubject, subjectID, voterID uuid.UUID, vote domain.VoteValue) error

	casts []castCall
}

func (m *mockBallotRepo) Cast(ctx context.Context, subject domain.BallotSubject, subjectID, voterID uuid.UUID, vote domain.VoteValue) error {
	m.casts = append(m.casts, castCall{subject: subject, subjectID: subjectID, voterID: voterID, vote: vote})
	if m.CastFunc != nil {
		return m.CastFunc(ctx, subject, subjectID, voterID, vote)
	}
	return nil
}

type mockTxManager struct{}

func (mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(suggestions *mockSuggestionRepo, ballots *mockBallotRepo) *Service {
	return NewService(slog.New(slog.DiscardHandler), suggestions, ballots, mockTxManager{})
}

// twoRecordingSuggestion builds a suggestion with two open recordings by
// distinct speakers, neither of them the given caller.
func twoRecordingSuggestion() *domain.Suggestion {
	s1, s2 := uuid.New(), uuid.New()
	return &domain.Suggestion{
		ID: uuid.New(),
		Pronunciations: []domain.Pronunciation{
			{ID: uuid.New(), Audio: "https://cdn.test/a.webm", SpeakerID: &s1, Review: true},
			{ID: uuid.New(), Audio: "https://cdn.test/b.webm", SpeakerID: &s2, Review: true},
		},
	}
}

// ===========================================================================
// Tests
// ===========================================================================

func TestApply_ApproveTargetsOnlyNamedPronunciation(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	sugg := twoRecordingSuggestion()

	suggestions := &mockSuggestionRepo{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Suggestion, error) {
			require.Equal(t, sugg.ID, id)
			return sugg, nil
		},
	}
	ballots := &mockBallotRepo{}
	svc := newService(suggestions, ballots)

	results, err := svc.Apply(context.Background(), caller,
		[]BatchItem{SingleReview(sugg.ID, sugg.Pronunciations[0].ID, domain.ReviewActionApprove)})
	require.NoError(t, err)

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, 1, results[0].Applied)

	require.Len(t, ballots.casts, 1)
	assert.Equal(t, castCall{
		subject:   domain.BallotSubjectPronunciation,
		subjectID: sugg.Pronunciations[0].ID,
		voterID:   caller,
		vote:      domain.VoteApprove,
	}, ballots.casts[0])

	// The sibling recording is untouched.
	assert.Equal(t, []uuid.UUID{sugg.Pronunciations[0].ID}, suggestions.touched)
	assert.Equal(t, []uuid.UUID{caller}, suggestions.interactions)
}

func TestApply_DenyCastsDenyVote(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	sugg := twoRecordingSuggestion()

	suggestions := &mockSuggestionRepo{
		GetByIDFunc: func(context.Context, uuid.UUID) (*domain.Suggestion, error) { return sugg, nil },
	}
	ballots := &mockBallotRepo{}
	svc := newService(suggestions, ballots)

	results, err := svc.Apply(context.Background(), caller,
		[]BatchItem{SingleReview(sugg.ID, sugg.Pronunciations[1].ID, domain.ReviewActionDeny)})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)

	require.Len(t, ballots.casts, 1)
	assert.Equal(t, domain.VoteDeny, ballots.casts[0].vote)
	assert.Equal(t, sugg.Pronunciations[1].ID, ballots.casts[0].subjectID)
}

func TestApply_SkipPersistsNothingButTheInteraction(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	sugg := twoRecordingSuggestion()

	suggestions := &mockSuggestionRepo{
		GetByIDFunc: func(context.Context, uuid.UUID) (*domain.Suggestion, error) { return sugg, nil },
	}
	ballots := &mockBallotRepo{}
	svc := newService(suggestions, ballots)

	results, err := svc.Apply(context.Background(), caller,
		[]BatchItem{SingleReview(sugg.ID, sugg.Pronunciations[0].ID, domain.ReviewActionSkip)})
	require.NoError(t, err)

	require.NoError(t, results[0].Err)
	assert.Equal(t, 0, results[0].Applied)
	assert.Empty(t, ballots.casts, "SKIP must not cast a ballot")
	assert.Empty(t, suggestions.touched, "SKIP must not bump any timestamp")
	assert.Equal(t, []uuid.UUID{caller}, suggestions.interactions)
}

func TestApply_UnknownPronunciationIgnored(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	sugg := twoRecordingSuggestion()

	suggestions := &mockSuggestionRepo{
		GetByIDFunc: func(context.Context, uuid.UUID) (*domain.Suggestion, error) { return sugg, nil },
	}
	ballots := &mockBallotRepo{}
	svc := newService(suggestions, ballots)

	results, err := svc.Apply(context.Background(), caller, []BatchItem{{
		SuggestionID: sugg.ID,
		Reviews: map[uuid.UUID]domain.ReviewAction{
			uuid.New():                domain.ReviewActionApprove, // not on this suggestion
			sugg.Pronunciations[0].ID: domain.ReviewActionApprove,
		},
	}})
	require.NoError(t, err)

	require.NoError(t, results[0].Err, "one bad id must not fail the item")
	assert.Equal(t, 1, results[0].Applied)
	require.Len(t, ballots.casts, 1)
	assert.Equal(t, sugg.Pronunciations[0].ID, ballots.casts[0].subjectID)
}

func TestApply_OwnRecordingIgnored(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	sugg := twoRecordingSuggestion()
	sugg.Pronunciations[0].SpeakerID = &caller

	suggestions := &mockSuggestionRepo{
		GetByIDFunc: func(context.Context, uuid.UUID) (*domain.Suggestion, error) { return sugg, nil },
	}
	ballots := &mockBallotRepo{}
	svc := newService(suggestions, ballots)

	results, err := svc.Apply(context.Background(), caller,
		[]BatchItem{SingleReview(sugg.ID, sugg.Pronunciations[0].ID, domain.ReviewActionApprove)})
	require.NoError(t, err)

	require.NoError(t, results[0].Err)
	assert.Equal(t, 0, results[0].Applied)
	assert.Empty(t, ballots.casts)
}

func TestApply_MergedSuggestionRejected(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	sugg := twoRecordingSuggestion()
	mergedID := uuid.New()
	sugg.MergedID = &mergedID

	suggestions := &mockSuggestionRepo{
		GetByIDFunc: func(context.Context, uuid.UUID) (*domain.Suggestion, error) { return sugg, nil },
	}
	ballots := &mockBallotRepo{}
	svc := newService(suggestions, ballots)

	results, err := svc.Apply(context.Background(), caller,
		[]BatchItem{SingleReview(sugg.ID, sugg.Pronunciations[0].ID, domain.ReviewActionApprove)})
	require.NoError(t, err)

	require.ErrorIs(t, results[0].Err, domain.ErrConflict)
	assert.Empty(t, ballots.casts)
	assert.Empty(t, suggestions.interactions)
}

func TestApply_OneFailingItemDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	good := twoRecordingSuggestion()
	missingID := uuid.New()

	suggestions := &mockSuggestionRepo{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Suggestion, error) {
			if id == missingID {
				return nil, domain.ErrNotFound
			}
			return good, nil
		},
	}
	ballots := &mockBallotRepo{}
	svc := newService(suggestions, ballots)

	results, err := svc.Apply(context.Background(), caller, []BatchItem{
		SingleReview(missingID, uuid.New(), domain.ReviewActionApprove),
		SingleReview(good.ID, good.Pronunciations[0].ID, domain.ReviewActionApprove),
	})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, domain.ErrNotFound)
	require.NoError(t, results[1].Err)
	assert.Equal(t, 1, results[1].Applied)
}

func TestApply_TranslationRecordingVotable(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	speaker := uuid.New()
	sugg := &domain.Suggestion{
		ID: uuid.New(),
		Translations: []domain.Translation{
			{
				ID:       uuid.New(),
				Language: domain.LanguageEnglish,
				Pronunciations: []domain.Pronunciation{
					{ID: uuid.New(), Audio: "https://cdn.test/tr.webm", SpeakerID: &speaker, Review: true},
				},
			},
		},
	}

	suggestions := &mockSuggestionRepo{
		GetByIDFunc: func(context.Context, uuid.UUID) (*domain.Suggestion, error) { return sugg, nil },
	}
	ballots := &mockBallotRepo{}
	svc := newService(suggestions, ballots)

	results, err := svc.Apply(context.Background(), caller,
		[]BatchItem{SingleReview(sugg.ID, sugg.Translations[0].Pronunciations[0].ID, domain.ReviewActionApprove)})
	require.NoError(t, err)

	require.NoError(t, results[0].Err)
	assert.Equal(t, 1, results[0].Applied)
}

func TestApply_FailedCastFailsTheItem(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	sugg := twoRecordingSuggestion()
	dbErr := errors.New("connection reset")

	suggestions := &mockSuggestionRepo{
		GetByIDFunc: func(context.Context, uuid.UUID) (*domain.Suggestion, error) { return sugg, nil },
	}
	ballots := &mockBallotRepo{
		CastFunc: func(context.Context, domain.BallotSubject, uuid.UUID, uuid.UUID, domain.VoteValue) error {
			return dbErr
		},
	}
	svc := newService(suggestions, ballots)

	results, err := svc.Apply(context.Background(), caller,
		[]BatchItem{SingleReview(sugg.ID, sugg.Pronunciations[0].ID, domain.ReviewActionApprove)})
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, dbErr)
}

func TestApply_SingleSlotShorthand(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	sugg := twoRecordingSuggestion()
	sugg.Pronunciations = sugg.Pronunciations[:1]

	suggestions := &mockSuggestionRepo{
		GetByIDFunc: func(context.Context, uuid.UUID) (*domain.Suggestion, error) { return sugg, nil },
	}
	ballots := &mockBallotRepo{}
	svc := newService(suggestions, ballots)

	approve := domain.ReviewActionApprove
	results, err := svc.Apply(context.Background(), caller,
		[]BatchItem{{SuggestionID: sugg.ID, Review: &approve}})
	require.NoError(t, err)

	require.NoError(t, results[0].Err)
	assert.Equal(t, 1, results[0].Applied)
	require.Len(t, ballots.casts, 1)
	assert.Equal(t, sugg.Pronunciations[0].ID, ballots.casts[0].subjectID)
}

func TestApply_Validation(t *testing.T) {
	t.Parallel()

	svc := newService(&mockSuggestionRepo{}, &mockBallotRepo{})

	_, err := svc.Apply(context.Background(), uuid.Nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	results, err := svc.Apply(context.Background(), uuid.New(), []BatchItem{{
		SuggestionID: uuid.Nil,
	}})
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, domain.ErrValidation)

	results, err = svc.Apply(context.Background(), uuid.New(), []BatchItem{{
		SuggestionID: uuid.New(),
		Reviews:      map[uuid.UUID]domain.ReviewAction{uuid.New(): domain.ReviewAction("MAYBE")},
	}})
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, domain.ErrValidation)
}
