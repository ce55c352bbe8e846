package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "remote-voting/controllers/auth"
	ballotController "remote-voting/controllers/ballot"
	voteController "remote-voting/controllers/vote"
	"remote-voting/httpServices/notify"
	"remote-voting/logger"
	"remote-voting/middleware"
	sessionService "remote-voting/services/session"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	notifier := notify.NewClient(os.Getenv("NOTIFY_GATEWAY_URL"))
	sessions := sessionService.NewManager(db, []byte(os.Getenv("SESSION_SECRET")))
	asyncLogger := logger.NewAsyncLogger(db)

	auth := authController.NewAuthController(db, sessions, notifier)
	ballot := ballotController.NewBallotController(db)
	vote := voteController.NewVoteController(db, sessions)

	// Start the async logger processing goroutine, and stop it once the
	// server has stopped accepting requests.
	go asyncLogger.ProcessLog()
	app.Hooks().OnShutdown(func() error {
		asyncLogger.Close()
		return nil
	})

	app.Use(middleware.RequestLog(asyncLogger))

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/auth/login", auth.Login)
	api.Post("/auth/verify", auth.Verify)

	/*=============================================================================
	| Session Routes
	===============================================================================*/
	guarded := api.Group("", middleware.RequireSession(sessions))
	guarded.Post("/auth/logout", auth.Logout)
	guarded.Get("/ballot/candidates", ballot.Candidates)
	guarded.Post("/vote", vote.Submit)
	guarded.Get("/vote/status", vote.Status)
}
