package vote

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	candidateModel "remote-voting/models/candidate"
	voteModel "remote-voting/models/vote"
	voterModel "remote-voting/models/voter"
)

var (
	// ErrAlreadyVoted is terminal: the store already holds a vote for this
	// voter. Reported by the unique constraint on votes.voter_id, never by a
	// pre-read of has_voted.
	ErrAlreadyVoted = errors.New("voter has already cast a vote")
	// ErrInvalidCandidate means the selected candidate does not stand in the
	// voter's constituency.
	ErrInvalidCandidate = errors.New("candidate not on this constituency's ballot")
	// ErrInconsistentState means the vote row committed but the has_voted flag
	// update failed. The vote is authoritative and must not be rolled back;
	// this outcome is for operators, the voter still sees success.
	ErrInconsistentState = errors.New("vote recorded but voter flag update failed")
)

// Service records votes with at-most-once semantics per voter.
type Service struct {
	DB *gorm.DB
}

func NewVoteService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Submit records a vote for the voter. The insert is attempted blindly; the
// unique constraint on votes.voter_id is the single authoritative duplicate
// check, which keeps concurrent submissions (second tab, client retry)
// correct: exactly one insert wins, the rest get ErrAlreadyVoted. A blind
// retry after an unknown outcome is therefore safe, it lands on the same
// constraint.
//
// On insert success the voter's has_voted flag is flipped as a second,
// separate write. When that write fails the committed vote stands and
// ErrInconsistentState is returned alongside the vote.
func (s *Service) Submit(v *voterModel.Voter, candidateID string) (*voteModel.Vote, error) {
	if candidateID == "" {
		return nil, ErrInvalidCandidate
	}

	var cand candidateModel.Candidate
	err := s.DB.Where("id = ? AND constituency_id = ?", candidateID, v.ConstituencyID).First(&cand).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCandidate
		}
		return nil, fmt.Errorf("candidate lookup failed: %w", err)
	}

	record := &voteModel.Vote{
		ID:             uuid.NewString(),
		VoterID:        v.ID,
		CandidateID:    cand.ID,
		ConstituencyID: v.ConstituencyID,
	}
	if err := s.DB.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	err = s.DB.Model(&voterModel.Voter{}).
		Where("id = ?", v.ID).
		Update("has_voted", true).Error
	if err != nil {
		return record, ErrInconsistentState
	}

	return record, nil
}

// HasVoted reports the authoritative state: whether a vote row exists for the
// voter. The session snapshot's has_voted is only a cache of this.
func (s *Service) HasVoted(voterInternalID string) (bool, error) {
	var count int64
	err := s.DB.Model(&voteModel.Vote{}).
		Where("voter_id = ?", voterInternalID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check vote state: %w", err)
	}
	return count > 0, nil
}
