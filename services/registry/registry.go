package registry

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	voterModel "remote-voting/models/voter"
)

var (
	// ErrVoterNotFound means the supplied voter identifier is not on the roll.
	ErrVoterNotFound = errors.New("voter id not found")
	// ErrContactMismatch means the voter exists but the supplied contact does
	// not equal the registered email or mobile. Kept distinct from
	// ErrVoterNotFound so callers can show different messages.
	ErrContactMismatch = errors.New("contact does not match registered records")
)

// Service resolves voter identities against the electoral roll.
type Service struct {
	DB *gorm.DB
}

func NewRegistryService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ResolveVoter looks up a voter by their public identifier. Matching is
// case-insensitive: the identifier is upper-cased before lookup.
func (s *Service) ResolveVoter(voterIdentifier string) (*voterModel.Voter, error) {
	var v voterModel.Voter
	err := s.DB.Where("voter_id = ?", strings.ToUpper(strings.TrimSpace(voterIdentifier))).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoterNotFound
		}
		return nil, fmt.Errorf("voter lookup failed: %w", err)
	}
	return &v, nil
}

// Authenticate resolves the voter and checks the contact second factor.
// No side effects; OTP issuance is the caller's next step.
func (s *Service) Authenticate(voterIdentifier, contact string) (*voterModel.Voter, error) {
	v, err := s.ResolveVoter(voterIdentifier)
	if err != nil {
		return nil, err
	}
	if !v.MatchesContact(contact) {
		return nil, ErrContactMismatch
	}
	return v, nil
}

// FindByInternalID fetches a voter row by its internal primary key.
func (s *Service) FindByInternalID(id string) (*voterModel.Voter, error) {
	var v voterModel.Voter
	err := s.DB.Where("id = ?", id).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoterNotFound
		}
		return nil, fmt.Errorf("voter lookup failed: %w", err)
	}
	return &v, nil
}
