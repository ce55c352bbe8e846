package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	otpModel "remote-voting/models/otp"
	"remote-voting/testutil"
)

type OTPSuite struct {
	suite.Suite
	db      *gorm.DB
	svc     *Service
	voterID string
}

func (s *OTPSuite) SetupTest() {
	s.db = testutil.SetupTestDB(s.T())
	s.svc = NewOTPService(s.db)
	cID := testutil.CreateConstituency(s.T(), s.db, "Bangalore Central", "Karnataka")
	s.voterID = testutil.CreateVoter(s.T(), s.db, "VOT001234", "rajesh.kumar@email.com", "9876543210", cID).ID
}

func TestOTPSuite(t *testing.T) {
	suite.Run(t, new(OTPSuite))
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode failed: %v", err)
		}
		if len(code) != CodeLength {
			t.Fatalf("expected %d digits, got %q", CodeLength, code)
		}
		if code[0] == '0' {
			t.Fatalf("code %q below 100000", code)
		}
	}
}

func (s *OTPSuite) TestIssue() {
	before := time.Now()
	record, err := s.svc.Issue(s.voterID)
	s.Require().NoError(err)

	s.Len(record.OTPCode, 6)
	s.False(record.Used)
	// Expiry is issue time + 10 minutes.
	s.WithinDuration(before.Add(CodeTTL), record.ExpiresAt, 2*time.Second)

	// The record is durably stored before the code counts as issued.
	var stored otpModel.OTP
	s.Require().NoError(s.db.Where("id = ?", record.ID).First(&stored).Error)
	s.Equal(record.OTPCode, stored.OTPCode)
}

func (s *OTPSuite) TestIssueSupersedesPriorCodes() {
	first, err := s.svc.Issue(s.voterID)
	s.Require().NoError(err)
	second, err := s.svc.Issue(s.voterID)
	s.Require().NoError(err)

	var stored otpModel.OTP
	s.Require().NoError(s.db.Where("id = ?", first.ID).First(&stored).Error)
	s.True(stored.Used, "older code should be superseded on fresh issuance")

	// Only the most recently issued code verifies.
	_, err = s.svc.Verify(s.voterID, first.OTPCode)
	s.Require().ErrorIs(err, ErrInvalidCode)
	_, err = s.svc.Verify(s.voterID, second.OTPCode)
	s.Require().NoError(err)
}

func (s *OTPSuite) TestVerifyConsumesCodeOnce() {
	record, err := s.svc.Issue(s.voterID)
	s.Require().NoError(err)

	v, err := s.svc.Verify(s.voterID, record.OTPCode)
	s.Require().NoError(err)
	s.Equal(s.voterID, v.ID)

	// Replay with the same code is rejected.
	_, err = s.svc.Verify(s.voterID, record.OTPCode)
	s.Require().ErrorIs(err, ErrInvalidCode)
}

func (s *OTPSuite) TestVerifyExpiredCode() {
	record, err := s.svc.Issue(s.voterID)
	s.Require().NoError(err)

	s.Require().NoError(s.db.Model(&otpModel.OTP{}).
		Where("id = ?", record.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = s.svc.Verify(s.voterID, record.OTPCode)
	s.Require().ErrorIs(err, ErrExpiredCode)

	// An expired code is reported, not consumed.
	var stored otpModel.OTP
	s.Require().NoError(s.db.Where("id = ?", record.ID).First(&stored).Error)
	s.False(stored.Used)
}

func (s *OTPSuite) TestVerifyRejectsMalformedInputLocally() {
	for _, code := range []string{"", "12345", "1234567", "12a456", "482 93"} {
		_, err := s.svc.Verify(s.voterID, code)
		s.Require().ErrorIs(err, ErrInvalidCode, "code %q", code)
	}
}

func (s *OTPSuite) TestVerifyNeverIssuedCode() {
	_, err := s.svc.Verify(s.voterID, "123456")
	s.Require().ErrorIs(err, ErrInvalidCode)
}

func (s *OTPSuite) TestVerifyWrongVoter() {
	other := testutil.CreateVoter(s.T(), s.db, "VOT005678", "meera.joshi@email.com", "9123456780",
		testutil.CreateConstituency(s.T(), s.db, "Mumbai North", "Maharashtra"))

	record, err := s.svc.Issue(s.voterID)
	s.Require().NoError(err)

	// A code issued to one voter does not verify for another.
	_, err = s.svc.Verify(other.ID, record.OTPCode)
	s.Require().ErrorIs(err, ErrInvalidCode)
}
