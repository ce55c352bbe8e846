package auth

// LoginRequest starts authentication: voter identifier plus the registered
// email or mobile used as the second factor.
type LoginRequest struct {
	VoterID string `json:"voter_id" validate:"required"`
	Contact string `json:"contact" validate:"required"`
}

// LoginResponse reports OTP issuance. ExpiresIn feeds the client's advisory
// countdown; the stored expiry remains authoritative at verification time.
type LoginResponse struct {
	Message   string `json:"message"`
	ExpiresAt string `json:"expires_at"`
	ExpiresIn int    `json:"expires_in"`
}

// VerifyRequest carries the 6-digit OTP input.
type VerifyRequest struct {
	VoterID string `json:"voter_id" validate:"required"`
	OTPCode string `json:"otp_code" validate:"required,len=6"`
}

// VerifyResponse returns the session token and the authenticated voter
// snapshot with its resolved constituency.
type VerifyResponse struct {
	Voter        interface{} `json:"voter"`
	Constituency interface{} `json:"constituency,omitempty"`
}
