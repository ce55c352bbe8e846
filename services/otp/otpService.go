package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	otpModel "remote-voting/models/otp"
	voterModel "remote-voting/models/voter"
)

// CodeTTL is how long an issued code stays verifiable. The client shows a
// matching 600-second countdown, but the stored expiry decided here is the
// authoritative check.
const CodeTTL = 10 * time.Minute

// CodeLength is the exact number of digits in an issued code.
const CodeLength = 6

var (
	// ErrInvalidCode means no live code matches the supplied input.
	ErrInvalidCode = errors.New("invalid OTP code")
	// ErrExpiredCode means the code matched but its expiry has passed. The
	// code is not consumed; the voter requests a fresh one.
	ErrExpiredCode = errors.New("OTP code has expired")
)

// Service issues and verifies single-use one-time codes.
type Service struct {
	DB *gorm.DB
}

func NewOTPService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// GenerateCode returns a uniformly random 6-digit code in [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("otp generation failed: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue generates a fresh code for the voter, supersedes any prior unused
// codes, and durably stores the new record before returning it. The code only
// counts as issued once the row is committed; delivery happens out of band.
func (s *Service) Issue(voterInternalID string) (*otpModel.OTP, error) {
	code, err := GenerateCode()
	if err != nil {
		return nil, err
	}

	// Mark older unused codes as used so only the most recent issue verifies.
	err = s.DB.Model(&otpModel.OTP{}).
		Where("voter_id = ? AND used = ?", voterInternalID, false).
		Update("used", true).Error
	if err != nil {
		return nil, fmt.Errorf("failed to supersede prior OTP codes: %w", err)
	}

	record := &otpModel.OTP{
		ID:        uuid.NewString(),
		VoterID:   voterInternalID,
		OTPCode:   code,
		Used:      false,
		ExpiresAt: time.Now().Add(CodeTTL),
	}
	if err := s.DB.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to store OTP record: %w", err)
	}
	return record, nil
}

// Verify consumes a code for the voter. Input of the wrong shape is rejected
// locally without a store round-trip. A matched-but-expired code returns
// ErrExpiredCode and stays unused. On a live match the code is marked used and
// persisted before success is reported; if that write fails the verification
// fails as a whole, so the code cannot be replayed.
func (s *Service) Verify(voterInternalID, suppliedCode string) (*voterModel.Voter, error) {
	if !isSixDigits(suppliedCode) {
		return nil, ErrInvalidCode
	}

	var record otpModel.OTP
	err := s.DB.Where("voter_id = ? AND otp_code = ? AND used = ?", voterInternalID, suppliedCode, false).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("failed to find OTP record: %w", err)
	}

	if record.IsExpired() {
		return nil, ErrExpiredCode
	}

	record.Used = true
	if err := s.DB.Save(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to mark OTP as used: %w", err)
	}

	var v voterModel.Voter
	if err := s.DB.Where("id = ?", voterInternalID).First(&v).Error; err != nil {
		return nil, fmt.Errorf("failed to load voter after verification: %w", err)
	}
	return &v, nil
}

func isSixDigits(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
