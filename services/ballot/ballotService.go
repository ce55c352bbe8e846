package ballot

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	candidateModel "remote-voting/models/candidate"
	constituencyModel "remote-voting/models/constituency"
)

// ErrConstituencyNotFound means no constituency row exists for the given id.
var ErrConstituencyNotFound = errors.New("constituency not found")

// Service resolves ballot content for a constituency. Read-only.
type Service struct {
	DB *gorm.DB
}

func NewBallotService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ListCandidates returns the candidates standing in the constituency, ordered
// by name ascending. An unknown constituency yields an empty slice, not an
// error; only a store failure is an error.
func (s *Service) ListCandidates(constituencyID string) ([]candidateModel.Candidate, error) {
	candidates := make([]candidateModel.Candidate, 0)
	err := s.DB.Where("constituency_id = ?", constituencyID).
		Order("name ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	return candidates, nil
}

// FindConstituency loads a constituency by id from reference data.
func (s *Service) FindConstituency(id string) (*constituencyModel.Constituency, error) {
	var c constituencyModel.Constituency
	err := s.DB.Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConstituencyNotFound
		}
		return nil, fmt.Errorf("failed to load constituency: %w", err)
	}
	return &c, nil
}
