package otp

import (
	"time"
)

// OTP represents a single-use one-time code issued to a voter during login.
type OTP struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	VoterID   string    `gorm:"type:uuid;not null;index:idx_otps_lookup" json:"voter_id"`
	OTPCode   string    `gorm:"column:otp_code;type:varchar(6);not null;index:idx_otps_lookup" json:"otp_code"`
	Used      bool      `gorm:"default:false;index:idx_otps_lookup" json:"used"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// IsExpired checks if the OTP has expired.
func (o *OTP) IsExpired() bool {
	return !time.Now().Before(o.ExpiresAt)
}

// IsValid checks if the OTP is valid for verification (not used and not expired).
func (o *OTP) IsValid() bool {
	return !o.Used && !o.IsExpired()
}
