package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	voterModel "remote-voting/models/voter"
	"remote-voting/testutil"
)

type SessionSuite struct {
	suite.Suite
	db      *gorm.DB
	manager *Manager
	voter   *voterModel.Voter
	cID     string
}

func (s *SessionSuite) SetupTest() {
	s.db = testutil.SetupTestDB(s.T())
	s.manager = NewManager(s.db, []byte("test-secret"))
	s.cID = testutil.CreateConstituency(s.T(), s.db, "Bangalore Central", "Karnataka")
	s.voter = testutil.CreateVoter(s.T(), s.db, "VOT001234", "rajesh.kumar@email.com", "9876543210", s.cID)
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) TestEstablishAttachesConstituency() {
	sess := s.manager.Establish(s.voter)
	s.Require().NotNil(sess.Voter)
	s.Require().True(sess.HasBallotContext())
	s.Equal(s.cID, sess.Constituency.ID)
	s.Equal("Bangalore Central", sess.Constituency.Name)
}

func (s *SessionSuite) TestEstablishToleratesUnresolvableConstituency() {
	orphan := *s.voter
	orphan.ConstituencyID = uuid.NewString()

	sess := s.manager.Establish(&orphan)
	s.Require().NotNil(sess.Voter)
	s.False(sess.HasBallotContext(), "session should hold the voter without ballot context")
}

func (s *SessionSuite) TestClear() {
	sess := s.manager.Establish(s.voter)
	s.manager.Clear(sess)
	s.Nil(sess.Voter)
	s.Nil(sess.Constituency)
}

func (s *SessionSuite) TestTokenRoundTrip() {
	sess := s.manager.Establish(s.voter)
	token, err := s.manager.IssueToken(sess)
	s.Require().NoError(err)
	s.NotEmpty(token)

	restored, err := s.manager.Restore(token)
	s.Require().NoError(err)
	s.Equal(s.voter.ID, restored.Voter.ID)
	s.Equal(s.voter.VoterID, restored.Voter.VoterID)
	s.Equal(s.voter.Email, restored.Voter.Email)
	s.False(restored.Voter.HasVoted)
	s.Require().True(restored.HasBallotContext())
	s.Equal(s.cID, restored.Constituency.ID)
	s.False(s.manager.IsLoading(), "loading flag only holds while restoration is in flight")
}

func (s *SessionSuite) TestRestoredSnapshotIsVerbatimCache() {
	// The snapshot keeps has_voted as it was at issue time; restoration does
	// not re-read the registry.
	s.voter.HasVoted = true
	token, err := s.manager.IssueToken(s.manager.Establish(s.voter))
	s.Require().NoError(err)

	s.Require().NoError(s.db.Model(&voterModel.Voter{}).
		Where("id = ?", s.voter.ID).
		Update("has_voted", false).Error)

	restored, err := s.manager.Restore(token)
	s.Require().NoError(err)
	s.True(restored.Voter.HasVoted)
}

func (s *SessionSuite) TestRestoreRejectsBadTokens() {
	_, err := s.manager.Restore("not-a-token")
	s.Require().ErrorIs(err, ErrInvalidToken)

	otherManager := NewManager(s.db, []byte("different-secret"))
	token, err := otherManager.IssueToken(otherManager.Establish(s.voter))
	s.Require().NoError(err)

	_, err = s.manager.Restore(token)
	s.Require().ErrorIs(err, ErrInvalidToken)
}
