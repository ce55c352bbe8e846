package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"remote-voting/logger"
	"remote-voting/models/candidate"
	"remote-voting/models/constituency"
	"remote-voting/models/log"
	"remote-voting/models/otp"
	"remote-voting/models/vote"
	"remote-voting/models/voter"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing.
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	// TranslateError maps driver unique-violation errors onto
	// gorm.ErrDuplicatedKey, which the vote engine depends on.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	return DB, nil
}

// Migrate runs auto migration for all models and creates the supporting
// indexes. The unique index on votes.voter_id comes from the model tags and
// is the authoritative at-most-once enforcement point for vote casting.
func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&constituency.Constituency{},
		&candidate.Candidate{},
		&voter.Voter{},
		&otp.OTP{},
		&vote.Vote{},
		&log.Log{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return createIndexes(db)
}

// createIndexes creates additional indexes for better performance.
func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name string
		sql  string
	}{
		{
			name: "idx_otps_created_at",
			sql:  "CREATE INDEX IF NOT EXISTS idx_otps_created_at ON otps(created_at)",
		},
		{
			name: "idx_votes_cast_at",
			sql:  "CREATE INDEX IF NOT EXISTS idx_votes_cast_at ON votes(cast_at)",
		},
		{
			name: "idx_logs_created_at",
			sql:  "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)",
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
