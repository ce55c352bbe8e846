package ballot

import candidateModel "remote-voting/models/candidate"

// CandidatesResponse is the ordered ballot for the session's constituency.
// An empty Candidates slice is a valid ballot, not an error.
type CandidatesResponse struct {
	ConstituencyID string                     `json:"constituency_id"`
	Candidates     []candidateModel.Candidate `json:"candidates"`
}
