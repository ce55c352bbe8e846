package voter

import (
	"time"
)

// Voter represents a registered voter on the electoral roll.
type Voter struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	VoterID        string    `gorm:"column:voter_id;type:varchar(20);not null;uniqueIndex:idx_voters_voter_id" json:"voter_id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	Email          string    `gorm:"type:varchar(255);not null" json:"email"`
	Mobile         string    `gorm:"type:varchar(20);not null" json:"mobile"`
	ConstituencyID string    `gorm:"type:uuid;not null;index" json:"constituency_id"`
	HasVoted       bool      `gorm:"default:false" json:"has_voted"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// MatchesContact reports whether the supplied contact equals the registered
// email or mobile. Exact string match, no formatting normalization.
func (v *Voter) MatchesContact(contact string) bool {
	return contact == v.Email || contact == v.Mobile
}
