package domain

// ReviewAction is the reviewer's verdict on a single pronunciation.
type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "APPROVE"
	ReviewActionDeny    ReviewAction = "DENY"
	ReviewActionSkip    ReviewAction = "SKIP"
)

func (a ReviewAction) String() string { return string(a) }

func (a ReviewAction) IsValid() bool {
	switch a {
	case ReviewActionApprove, ReviewActionDeny, ReviewActionSkip:
		return true
	}
	return false
}

// VoteValue is the persisted ballot value. SKIP is never persisted,
// which is why this is a separate type from ReviewAction.
type VoteValue string

const (
	VoteApprove VoteValue = "APPROVE"
	VoteDeny    VoteValue = "DENY"
)

func (v VoteValue) String() string { return string(v) }

func (v VoteValue) IsValid() bool {
	switch v {
	case VoteApprove, VoteDeny:
		return true
	}
	return false
}

// BallotSubject identifies what kind of record a ballot row votes on.
type BallotSubject string

const (
	BallotSubjectSuggestion    BallotSubject = "SUGGESTION"
	BallotSubjectPronunciation BallotSubject = "PRONUNCIATION"
	BallotSubjectTranslation   BallotSubject = "TRANSLATION"
)

func (s BallotSubject) String() string { return string(s) }

func (s BallotSubject) IsValid() bool {
	switch s {
	case BallotSubjectSuggestion, BallotSubjectPronunciation, BallotSubjectTranslation:
		return true
	}
	return false
}

// SuggestionOrigin is the provenance tag of a suggestion.
type SuggestionOrigin string

const (
	// OriginCommunity marks a suggestion submitted by a volunteer.
	OriginCommunity SuggestionOrigin = "COMMUNITY"
	// OriginVoiceCorpus marks a suggestion auto-ingested from a speech
	// corpus. These never enter the recording queue.
	OriginVoiceCorpus SuggestionOrigin = "VOICE_CORPUS"
	// OriginWiki marks a suggestion imported from wiki dumps.
	OriginWiki SuggestionOrigin = "WIKI"
)

func (o SuggestionOrigin) String() string { return string(o) }

func (o SuggestionOrigin) IsValid() bool {
	switch o {
	case OriginCommunity, OriginVoiceCorpus, OriginWiki:
		return true
	}
	return false
}

// LanguageCode identifies a language the platform works with.
type LanguageCode string

const (
	LanguageIgbo    LanguageCode = "IGBO"
	LanguageEnglish LanguageCode = "ENGLISH"
	LanguageFrench  LanguageCode = "FRENCH"
	LanguageYoruba  LanguageCode = "YORUBA"
	LanguageHausa   LanguageCode = "HAUSA"
)

func (l LanguageCode) String() string { return string(l) }

func (l LanguageCode) IsValid() bool {
	switch l {
	case LanguageIgbo, LanguageEnglish, LanguageFrench, LanguageYoruba, LanguageHausa:
		return true
	}
	return false
}
