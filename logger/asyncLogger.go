package logger

import (
	"log"

	"gorm.io/gorm"

	log_model "remote-voting/models/log"
	"remote-voting/types"
)

type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
	done    chan struct{}
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100), // Buffered channel to hold log entries
		done:    make(chan struct{}),
	}
}

func (logger *AsyncLogger) ProcessLog() {
	log.Println("Starting asynchronous logger...")
	defer close(logger.done)

	for logEntry := range logger.channel {
		dbLog := log_model.Log{
			Method:       logEntry.Method,
			URL:          logEntry.URL,
			ClientIP:     logEntry.ClientIP,
			RequestBody:  logEntry.RequestBody,
			ResponseBody: logEntry.ResponseBody,
			StatusCode:   logEntry.StatusCode,
			CreatedAt:    logEntry.CreatedAt,
		}

		if err := logger.db.Create(&dbLog).Error; err != nil {
			log.Printf("Failed to insert new log entry: %v", err)
		}
	}
}

// Log pushes a log entry into the channel. Drops the entry when the buffer is
// full rather than stalling a request path on audit logging.
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	select {
	case logger.channel <- entry:
	default:
	}
}

// Close stops the logger and waits for ProcessLog to flush any buffered
// entries. No Log calls may happen after Close; callers invoke it once the
// server has stopped accepting requests.
func (logger *AsyncLogger) Close() {
	close(logger.channel)
	<-logger.done
}
