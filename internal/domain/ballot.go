package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ballot is a single voter's persisted verdict on a subject. A voter has
// at most one ballot per subject, so approvals and denials are disjoint
// sets by construction.
type Ballot struct {
	Subject   BallotSubject
	SubjectID uuid.UUID
	VoterID   uuid.UUID
	Vote      VoteValue
	VotedAt   time.Time
}
