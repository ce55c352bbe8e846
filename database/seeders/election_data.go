package seeders

import (
	"log"

	"gorm.io/gorm"

	"remote-voting/models/candidate"
	"remote-voting/models/constituency"
	"remote-voting/models/voter"
)

// Stable ids so seeding stays idempotent across restarts.
const (
	ConstituencyCentral = "1f6c9f1e-8a74-4a3b-9a51-0c5e2d1a4b01"
	ConstituencyNorth   = "2b7d0a2f-9b85-4b4c-8b62-1d6f3e2b5c02"
	ConstituencySouth   = "3c8e1b30-ac96-4c5d-9c73-2e704f3c6d03"
)

// SeedElectionData loads the reference data (constituencies, candidates) and
// the demo electoral roll used in development. Existing rows are left alone;
// only missing rows are inserted.
func SeedElectionData(db *gorm.DB) {
	log.Printf("🔍 Checking election reference data integrity...")

	seedConstituencies(db)
	seedCandidates(db)
	seedVoters(db)
}

func seedConstituencies(db *gorm.DB) {
	constituencies := []constituency.Constituency{
		{ID: ConstituencyCentral, Name: "Bangalore Central", State: "Karnataka"},
		{ID: ConstituencyNorth, Name: "Mumbai North", State: "Maharashtra"},
		{ID: ConstituencySouth, Name: "Chennai South", State: "Tamil Nadu"},
	}

	for _, c := range constituencies {
		var count int64
		if err := db.Model(&constituency.Constituency{}).Where("id = ?", c.ID).Count(&count).Error; err != nil {
			log.Printf("❌ Failed to check constituency %s: %v", c.Name, err)
			continue
		}
		if count == 0 {
			if err := db.Create(&c).Error; err != nil {
				log.Printf("❌ Failed to seed constituency %s: %v", c.Name, err)
			}
		}
	}
}

func seedCandidates(db *gorm.DB) {
	candidates := []candidate.Candidate{
		{ID: "a1000000-0000-4000-8000-000000000001", Name: "Anita Desai", PartyName: "National Progress Party", ConstituencyID: ConstituencyCentral},
		{ID: "a1000000-0000-4000-8000-000000000002", Name: "Mohan Rao", PartyName: "People's Democratic Front", ConstituencyID: ConstituencyCentral},
		{ID: "a1000000-0000-4000-8000-000000000003", Name: "Sunita Sharma", PartyName: "United Citizens Alliance", ConstituencyID: ConstituencyCentral},
		{ID: "a1000000-0000-4000-8000-000000000004", Name: "Farhan Ali", PartyName: "National Progress Party", ConstituencyID: ConstituencyNorth},
		{ID: "a1000000-0000-4000-8000-000000000005", Name: "Priya Nair", PartyName: "People's Democratic Front", ConstituencyID: ConstituencyNorth},
		{ID: "a1000000-0000-4000-8000-000000000006", Name: "Karthik Subramanian", PartyName: "United Citizens Alliance", ConstituencyID: ConstituencySouth},
		{ID: "a1000000-0000-4000-8000-000000000007", Name: "Lakshmi Venkatesh", PartyName: "National Progress Party", ConstituencyID: ConstituencySouth},
	}

	for _, cd := range candidates {
		var count int64
		if err := db.Model(&candidate.Candidate{}).Where("id = ?", cd.ID).Count(&count).Error; err != nil {
			log.Printf("❌ Failed to check candidate %s: %v", cd.Name, err)
			continue
		}
		if count == 0 {
			if err := db.Create(&cd).Error; err != nil {
				log.Printf("❌ Failed to seed candidate %s: %v", cd.Name, err)
			}
		}
	}
}

func seedVoters(db *gorm.DB) {
	voters := []voter.Voter{
		{
			ID:             "b2000000-0000-4000-8000-000000000001",
			VoterID:        "VOT001234",
			Name:           "Rajesh Kumar",
			Email:          "rajesh.kumar@email.com",
			Mobile:         "9876543210",
			ConstituencyID: ConstituencyCentral,
		},
		{
			ID:             "b2000000-0000-4000-8000-000000000002",
			VoterID:        "VOT005678",
			Name:           "Meera Joshi",
			Email:          "meera.joshi@email.com",
			Mobile:         "9123456780",
			ConstituencyID: ConstituencyNorth,
		},
		{
			ID:             "b2000000-0000-4000-8000-000000000003",
			VoterID:        "VOT009012",
			Name:           "Arun Krishnan",
			Email:          "arun.krishnan@email.com",
			Mobile:         "9012345678",
			ConstituencyID: ConstituencySouth,
		},
	}

	for _, v := range voters {
		var count int64
		if err := db.Model(&voter.Voter{}).Where("voter_id = ?", v.VoterID).Count(&count).Error; err != nil {
			log.Printf("❌ Failed to check voter %s: %v", v.VoterID, err)
			continue
		}
		if count == 0 {
			if err := db.Create(&v).Error; err != nil {
				log.Printf("❌ Failed to seed voter %s: %v", v.VoterID, err)
			}
		}
	}
}
