package ballot

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"remote-voting/logger"
	"remote-voting/middleware"
	ballotService "remote-voting/services/ballot"
	"remote-voting/types"
	ballotTypes "remote-voting/types/ballot"
)

type Controller struct {
	ballot *ballotService.Service
}

func NewBallotController(db *gorm.DB) *Controller {
	return &Controller{ballot: ballotService.NewBallotService(db)}
}

// Candidates returns the ballot for the session's registered constituency,
// regardless of where the voter connects from. Idempotent; safe on re-entry.
func (bc *Controller) Candidates(c *fiber.Ctx) error {
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

	candidates, err := bc.ballot.ListCandidates(sess.Constituency.ID)
	if err != nil {
		logger.Error("Failed to load candidates", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to load candidates. Please try again.",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Candidates loaded",
		Data: ballotTypes.CandidatesResponse{
			ConstituencyID: sess.Constituency.ID,
			Candidates:     candidates,
		},
	})
}
