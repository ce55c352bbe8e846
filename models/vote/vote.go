package vote

import (
	"time"
)

// Vote is the record of a cast ballot. The unique index on voter_id is the
// authoritative enforcement point for the at-most-once-vote guarantee; a
// second insert for the same voter fails at the store regardless of what the
// application layer believes about has_voted.
type Vote struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	VoterID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_votes_voter_id" json:"voter_id"`
	CandidateID    string    `gorm:"type:uuid;not null;index" json:"candidate_id"`
	ConstituencyID string    `gorm:"type:uuid;not null;index" json:"constituency_id"`
	CastAt         time.Time `gorm:"column:cast_at;autoCreateTime" json:"cast_at"`
}
