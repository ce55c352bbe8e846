package vote

// SubmitRequest selects a candidate from the session's constituency ballot.
type SubmitRequest struct {
	CandidateID string `json:"candidate_id" validate:"required"`
}

// SubmitResponse confirms the recorded vote.
type SubmitResponse struct {
	VoteID string `json:"vote_id"`
	CastAt string `json:"cast_at"`
}

// StatusResponse backs the dashboard view after login.
type StatusResponse struct {
	Voter        interface{} `json:"voter"`
	Constituency interface{} `json:"constituency,omitempty"`
	HasVoted     bool        `json:"has_voted"`
}
