package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"remote-voting/database"
	"remote-voting/models/candidate"
	"remote-voting/models/constituency"
	"remote-voting/models/voter"
)

// SetupTestDB opens an isolated in-memory database with the full schema,
// including the unique constraints the services rely on. The pool is pinned
// to a single connection so concurrent test writers serialize at the pool
// instead of tripping sqlite busy errors.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// CreateConstituency inserts a constituency and returns its id.
func CreateConstituency(t *testing.T, db *gorm.DB, name, state string) string {
	t.Helper()
	c := constituency.Constituency{ID: uuid.NewString(), Name: name, State: state}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("failed to create constituency: %v", err)
	}
	return c.ID
}

// CreateVoter inserts a voter on the roll and returns the record.
func CreateVoter(t *testing.T, db *gorm.DB, publicID, email, mobile, constituencyID string) *voter.Voter {
	t.Helper()
	v := voter.Voter{
		ID:             uuid.NewString(),
		VoterID:        publicID,
		Name:           "Test Voter " + publicID,
		Email:          email,
		Mobile:         mobile,
		ConstituencyID: constituencyID,
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("failed to create voter: %v", err)
	}
	return &v
}

// CreateCandidate inserts a candidate and returns its id.
func CreateCandidate(t *testing.T, db *gorm.DB, name, party, constituencyID string) string {
	t.Helper()
	c := candidate.Candidate{ID: uuid.NewString(), Name: name, PartyName: party, ConstituencyID: constituencyID}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("failed to create candidate: %v", err)
	}
	return c.ID
}
