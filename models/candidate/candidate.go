package candidate

import (
	"time"
)

// Candidate stands for election in exactly one constituency.
// Reference data: read-only for this service.
type Candidate struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	PartyName      string    `gorm:"column:party_name;type:varchar(100);not null" json:"party_name"`
	ConstituencyID string    `gorm:"type:uuid;not null;index" json:"constituency_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
