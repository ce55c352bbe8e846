package registry

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"remote-voting/testutil"
)

type RegistrySuite struct {
	suite.Suite
	db  *gorm.DB
	svc *Service
}

func (s *RegistrySuite) SetupTest() {
	s.db = testutil.SetupTestDB(s.T())
	s.svc = NewRegistryService(s.db)
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) TestResolveVoter() {
	cID := testutil.CreateConstituency(s.T(), s.db, "Bangalore Central", "Karnataka")
	created := testutil.CreateVoter(s.T(), s.db, "VOT001234", "rajesh.kumar@email.com", "9876543210", cID)

	s.Run("finds voter by exact identifier", func() {
		v, err := s.svc.ResolveVoter("VOT001234")
		s.Require().NoError(err)
		s.Equal(created.ID, v.ID)
		s.False(v.HasVoted)
	})

	s.Run("matches case-insensitively by upper-casing", func() {
		v, err := s.svc.ResolveVoter("vot001234")
		s.Require().NoError(err)
		s.Equal(created.ID, v.ID)
	})

	s.Run("returns ErrVoterNotFound for unknown identifier", func() {
		_, err := s.svc.ResolveVoter("VOT999999")
		s.Require().ErrorIs(err, ErrVoterNotFound)
	})
}

func (s *RegistrySuite) TestAuthenticate() {
	cID := testutil.CreateConstituency(s.T(), s.db, "Mumbai North", "Maharashtra")
	testutil.CreateVoter(s.T(), s.db, "VOT005678", "meera.joshi@email.com", "9123456780", cID)

	s.Run("accepts registered email", func() {
		v, err := s.svc.Authenticate("VOT005678", "meera.joshi@email.com")
		s.Require().NoError(err)
		s.Equal("VOT005678", v.VoterID)
	})

	s.Run("accepts registered mobile", func() {
		_, err := s.svc.Authenticate("VOT005678", "9123456780")
		s.Require().NoError(err)
	})

	s.Run("contact match is exact, no normalization", func() {
		_, err := s.svc.Authenticate("VOT005678", "MEERA.JOSHI@EMAIL.COM")
		s.Require().ErrorIs(err, ErrContactMismatch)

		_, err = s.svc.Authenticate("VOT005678", "+91 9123456780")
		s.Require().ErrorIs(err, ErrContactMismatch)
	})

	s.Run("unknown voter is distinct from contact mismatch", func() {
		_, err := s.svc.Authenticate("VOT000000", "meera.joshi@email.com")
		s.Require().ErrorIs(err, ErrVoterNotFound)
		s.NotErrorIs(err, ErrContactMismatch)
	})
}
