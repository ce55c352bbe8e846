package constituency

import (
	"time"
)

// Constituency is the electoral district a voter is registered in.
// Reference data: read-only for this service.
type Constituency struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	State     string    `gorm:"type:varchar(100);not null" json:"state"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
