package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"remote-voting/httpServices/notify"
	"remote-voting/logger"
	"remote-voting/middleware"
	otpService "remote-voting/services/otp"
	registryService "remote-voting/services/registry"
	sessionService "remote-voting/services/session"
	"remote-voting/types"
	authTypes "remote-voting/types/auth"
)

type AuthController struct {
	db       *gorm.DB
	registry *registryService.Service
	otp      *otpService.Service
	sessions *sessionService.Manager
	notifier *notify.Client
}

func NewAuthController(db *gorm.DB, sessions *sessionService.Manager, notifier *notify.Client) *AuthController {
	return &AuthController{
		db:       db,
		registry: registryService.NewRegistryService(db),
		otp:      otpService.NewOTPService(db),
		sessions: sessions,
		notifier: notifier,
	}
}

// Login matches the voter identifier and contact against the roll and, on
// success, issues an OTP and dispatches it to the supplied contact. Unknown
// voter and contact mismatch deliberately produce distinct messages.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse login request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if req.VoterID == "" || req.Contact == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Voter ID and contact are required",
			Status:  fiber.StatusBadRequest,
		})
	}

	voter, err := h.registry.Authenticate(req.VoterID, req.Contact)
	if err != nil {
		switch {
		case errors.Is(err, registryService.ErrVoterNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Voter ID not found. Please check and try again.",
				Status:  fiber.StatusNotFound,
			})
		case errors.Is(err, registryService.ErrContactMismatch):
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Contact information does not match our records.",
				Status:  fiber.StatusUnauthorized,
			})
		default:
			logger.Error("Voter lookup failed", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "An error occurred. Please try again.",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	record, err := h.otp.Issue(voter.ID)
	if err != nil {
		logger.Error("OTP issuance failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to send OTP. Please try again.",
			Status:  fiber.StatusInternalServerError,
		})
	}

	// Delivery is out of band; a gateway failure does not revoke the issued
	// code, the voter can request a fresh one.
	go func(destination, code string) {
		if err := h.notifier.SendOTP(destination, code); err != nil {
			logger.Error("OTP delivery dispatch failed", err)
		}
	}(req.Contact, record.OTPCode)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OTP sent to your registered contact",
		Data: authTypes.LoginResponse{
			Message:   "OTP sent to your registered contact",
			ExpiresAt: record.ExpiresAt.Format("2006-01-02 15:04:05"),
			ExpiresIn: int(otpService.CodeTTL.Seconds()),
		},
	})
}

// Verify consumes the OTP and establishes the session. The response token is
// the client-held session value; nothing is stored server-side.
func (h *AuthController) Verify(c *fiber.Ctx) error {
	var req authTypes.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse verify request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	voter, err := h.registry.ResolveVoter(req.VoterID)
	if err != nil {
		if errors.Is(err, registryService.ErrVoterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Voter ID not found. Please check and try again.",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Voter lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Verification failed. Please try again.",
			Status:  fiber.StatusInternalServerError,
		})
	}

	verified, err := h.otp.Verify(voter.ID, req.OTPCode)
	if err != nil {
		switch {
		case errors.Is(err, otpService.ErrInvalidCode):
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "Invalid OTP. Please check and try again.",
				Status:  fiber.StatusBadRequest,
			})
		case errors.Is(err, otpService.ErrExpiredCode):
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "OTP has expired. Please request a new one.",
				Status:  fiber.StatusBadRequest,
			})
		default:
			logger.Error("OTP verification failed", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Verification failed. Please try again.",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	sess := h.sessions.Establish(verified)
	token, err := h.sessions.IssueToken(sess)
	if err != nil {
		logger.Error("Failed to issue session token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Verification failed. Please try again.",
			Status:  fiber.StatusInternalServerError,
		})
	}

	resp := authTypes.VerifyResponse{Voter: sess.Voter}
	if sess.HasBallotContext() {
		resp.Constituency = sess.Constituency
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Identity verified",
		Token:   token,
		Data:    resp,
	})
}

// Logout clears the session; the client discards its token.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	if sess, ok := middleware.SessionFromCtx(c); ok {
		h.sessions.Clear(sess)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Logged out",
	})
}
