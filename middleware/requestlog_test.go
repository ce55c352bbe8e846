package middleware

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"remote-voting/logger"
	logModel "remote-voting/models/log"
	"remote-voting/testutil"
)

// Each request overwrites the buffers behind the ctx accessors, so the audit
// entries handed to the logger goroutine must hold their own copies. Several
// requests back to back verify that every persisted row still carries the
// values of its own request.
func TestRequestLogPersistsAuditEntries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	app := fiber.New()
	app.Use(RequestLog(asyncLogger))
	app.Post("/api/vote", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusCreated).SendString(`{"message":"Vote recorded."}`)
	})
	app.Post("/api/auth/login", func(c *fiber.Ctx) error {
		return c.SendString(`{"message":"OTP sent."}`)
	})

	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"candidate_id":"cand-%d"}`, i)
		req := httptest.NewRequest(fiber.MethodPost, fmt.Sprintf("/api/vote?attempt=%d", i), strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	authReq := httptest.NewRequest(fiber.MethodPost, "/api/auth/login", strings.NewReader(`{"voter_id":"VOT001234","contact":"rajesh.kumar@email.com"}`))
	authReq.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(authReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Close flushes the buffered entries before we read them back.
	asyncLogger.Close()

	var rows []logModel.Log
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 4)

	for i := 0; i < 3; i++ {
		require.Equal(t, fiber.MethodPost, rows[i].Method)
		require.Equal(t, fmt.Sprintf("/api/vote?attempt=%d", i), rows[i].URL)
		require.Equal(t, fmt.Sprintf(`{"candidate_id":"cand-%d"}`, i), rows[i].RequestBody)
		require.Equal(t, `{"message":"Vote recorded."}`, rows[i].ResponseBody)
		require.Equal(t, fiber.StatusCreated, rows[i].StatusCode)
		require.NotEmpty(t, rows[i].ClientIP)
	}

	authRow := rows[3]
	require.Equal(t, "/api/auth/login", authRow.URL)
	require.Equal(t, fiber.StatusOK, authRow.StatusCode)
	require.Empty(t, authRow.RequestBody, "auth bodies carry OTP codes and contact values")
	require.Empty(t, authRow.ResponseBody)
}
