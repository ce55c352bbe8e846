package vote

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"remote-voting/logger"
	"remote-voting/middleware"
	sessionService "remote-voting/services/session"
	voteService "remote-voting/services/vote"
	"remote-voting/types"
	voteTypes "remote-voting/types/vote"
)

type Controller struct {
	votes    *voteService.Service
	sessions *sessionService.Manager
}

func NewVoteController(db *gorm.DB, sessions *sessionService.Manager) *Controller {
	return &Controller{
		votes:    voteService.NewVoteService(db),
		sessions: sessions,
	}
}

// Submit casts the session voter's vote. Duplicate detection belongs to the
// store's unique constraint, so a retried or double-submitted request cleanly
// lands on "already voted" instead of recording twice. On success the session
// snapshot is refreshed and a new token returned with has_voted set.
func (vc *Controller) Submit(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Session required",
			Status:  fiber.StatusUnauthorized,
		})
	}
	if !sess.HasBallotContext() {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "Constituency information unavailable. Please log in again.",
			Status:  fiber.StatusConflict,
		})
	}

	var req voteTypes.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse vote request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if req.CandidateID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Please select a candidate",
			Status:  fiber.StatusBadRequest,
		})
	}

	record, err := vc.votes.Submit(sess.Voter, req.CandidateID)
	if err != nil {
		switch {
		case errors.Is(err, voteService.ErrAlreadyVoted):
			return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
				Message: "You have already cast your vote.",
				Status:  fiber.StatusConflict,
			})
		case errors.Is(err, voteService.ErrInvalidCandidate):
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Selected candidate is not on your constituency's ballot.",
				Status:  fiber.StatusBadRequest,
			})
		case errors.Is(err, voteService.ErrInconsistentState):
			// The vote committed; only the flag update failed. Operators get
			// the alert, the voter gets their success.
			logger.Error("inconsistent state: vote "+record.ID+" recorded, has_voted flag stale for voter "+sess.Voter.VoterID, err)
		default:
			logger.Error("Vote submission failed", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to submit vote. Please try again.",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	// Refresh the cached snapshot: the store now holds the truth.
	sess.Voter.HasVoted = true
	token, tokenErr := vc.sessions.IssueToken(sess)
	if tokenErr != nil {
		logger.Error("Failed to re-issue session token after vote", tokenErr)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Your vote has been recorded",
		Token:   token,
		Data: voteTypes.SubmitResponse{
			VoteID: record.ID,
			CastAt: record.CastAt.Format("2006-01-02 15:04:05"),
		},
	})
}

// Status backs the dashboard: voter snapshot, constituency, and whether the
// store holds a vote for this voter. The authoritative flag comes from the
// votes table, not the session cache, so a vote cast in another tab shows up.
func (vc *Controller) Status(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Session required",
			Status:  fiber.StatusUnauthorized,
		})
	}

	hasVoted, err := vc.votes.HasVoted(sess.Voter.ID)
	if err != nil {
		logger.Error("Failed to check vote state", err)
		// Fall back to the cached snapshot rather than failing the dashboard.
		hasVoted = sess.Voter.HasVoted
	}

	resp := voteTypes.StatusResponse{
		Voter:    sess.Voter,
		HasVoted: hasVoted,
	}
	if sess.HasBallotContext() {
		resp.Constituency = sess.Constituency
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Voter status",
		Data:    resp,
	})
}
