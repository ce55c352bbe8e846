package logger

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	logModel "remote-voting/models/log"
	"remote-voting/types"
)

func TestAsyncLoggerCloseFlushesAndStops(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:asynclogger?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.AutoMigrate(&logModel.Log{}); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	asyncLogger := NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	const entries = 5
	for i := 0; i < entries; i++ {
		asyncLogger.Log(types.LogEntry{
			Method:     "GET",
			URL:        fmt.Sprintf("/api/vote/status?n=%d", i),
			StatusCode: 200,
			CreatedAt:  time.Now(),
		})
	}

	closed := make(chan struct{})
	go func() {
		asyncLogger.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return; worker goroutine still running")
	}

	// Everything buffered before Close must be on disk by the time it returns.
	var count int64
	if err := db.Model(&logModel.Log{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != entries {
		t.Fatalf("expected %d flushed entries, got %d", entries, count)
	}
}
