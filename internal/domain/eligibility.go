package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review policy constants. These are platform-wide, not per-project.
const (
	// MergeApprovalThreshold is the number of approvals a pronunciation
	// needs before it is trusted for merge.
	MergeApprovalThreshold = 2

	// RecordingLimit is the maximum number of recorded audio renditions a
	// sentence collects before it leaves the recording queue.
	RecordingLimit = 3
)

// RecordingPolicyCutoff excludes stale documents from the recording queue:
// only suggestions updated after this date are handed out for recording.
var RecordingPolicyCutoff = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// IsEligible reports whether the pronunciation is still open for the given
// caller's vote: it has audio, was not recorded by the caller, is open for
// review, has no denials, and is not archived.
//
// Accrued approvals do NOT disqualify — a pronunciation stays open to new
// voters after approvals, since multiple approvals are wanted before merge.
func (p *Pronunciation) IsEligible(caller uuid.UUID) bool {
	return p.Audio != "" &&
		!p.IsSpeaker(caller) &&
		p.Review &&
		len(p.Denials) == 0 &&
		!p.Archived
}

// IsMergeable reports whether the pronunciation has crossed the trust
// threshold for merge: eligible for the caller and carrying at least
// MergeApprovalThreshold approvals.
func (p *Pronunciation) IsMergeable(caller uuid.UUID) bool {
	return p.IsEligible(caller) && len(p.Approvals) >= MergeApprovalThreshold
}

// IsOpenToVoter is the relaxed predicate the review aggregator uses to
// accept a vote: audio present, not self-recorded, open for review, not
// archived. Unlike IsEligible it ignores existing denials, because the
// caller may be the denier flipping their vote, or may be casting the
// denial under dispute.
func (p *Pronunciation) IsOpenToVoter(caller uuid.UUID) bool {
	return p.Audio != "" &&
		!p.IsSpeaker(caller) &&
		p.Review &&
		!p.Archived
}
