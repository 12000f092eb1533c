package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tenacity/erp/internal/app/models"
)

// Seeder persists default data for one collection if it is missing
type Seeder interface {
	Name() string
	SeedIfMissing(ctx context.Context) (bool, error)
}

// Students returns a fresh copy of the demo cohort
func Students() []models.Student {
	return []models.Student{
		{ID: "s1", Name: "Aman Kumar", Attendance: 65, Marks: 55},
		{ID: "s2", Name: "Riya Singh", Attendance: 88, Marks: 82},
		{ID: "s3", Name: "Vikram Patel", Attendance: 58, Marks: 40},
		{ID: "s4", Name: "Priya Sharma", Attendance: 92, Marks: 91},
		{ID: "s5", Name: "Rahul Verma", Attendance: 74, Marks: 68},
		{ID: "s6", Name: "Neha Gupta", Attendance: 80, Marks: 75},
		{ID: "s7", Name: "Karan Joshi", Attendance: 69, Marks: 60},
		{ID: "s8", Name: "Sneha Reddy", Attendance: 54, Marks: 38},
		{ID: "s9", Name: "Dev Anand", Attendance: 86, Marks: 79},
		{ID: "s10", Name: "Meera Nair", Attendance: 71, Marks: 65},
	}
}

// Rooms returns a fresh copy of the hostel layout
func Rooms() []models.HostelRoom {
	return []models.HostelRoom{
		{ID: "R101", Capacity: 4, Occupied: 3, Occupants: []string{"s1", "s2", "s3"}},
		{ID: "R102", Capacity: 4, Occupied: 2, Occupants: []string{"s4", "s5"}},
		{ID: "R103", Capacity: 4, Occupied: 4, Occupants: []string{"s6", "s7", "s8", "s9"}},
		{ID: "R104", Capacity: 4, Occupied: 1, Occupants: []string{"s10"}},
		{ID: "R105", Capacity: 4, Occupied: 0, Occupants: []string{}},
	}
}

// Transactions returns the initial fee ledger, which is empty
func Transactions() []models.FeeTransaction {
	return []models.FeeTransaction{}
}

// CreateDefaultData persists the seed collections for every collection that
// is not yet present in the store. Existing data is left untouched.
func CreateDefaultData(ctx context.Context, lgr zerolog.Logger, seeders ...Seeder) error {
	lgr.Info().Msg("Checking/Creating default data (students, rooms, transactions)...")

	var finalErr error
	for _, c := range seeders {
		created, err := c.SeedIfMissing(ctx)
		if err != nil {
			lgr.Error().Err(err).Str("collection", c.Name()).Msg("Error seeding collection")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if created {
			lgr.Info().Str("collection", c.Name()).Msg("Seeded collection")
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation completed.")
	}
	return finalErr
}
