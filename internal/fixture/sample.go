// Package fixture seeds a fresh care home with a small sample facility
// so the API is usable before any snapshot exists.
package fixture

import (
	"fmt"
	"time"

	"carehome-backend/internal/facility"
)

// Bootstrap populates an empty care home with one ward, two rooms,
// four beds, a minimal staff roster and two residents.
func Bootstrap(ch *facility.CareHome) error {
	ward := facility.NewWard("W1", "General Ward")

	room1 := facility.NewRoom("R1")
	room1.AddBed(facility.NewBed("B1"))
	room1.AddBed(facility.NewBed("B2"))
	ward.AddRoom(room1)

	room2 := facility.NewRoom("R2")
	room2.AddBed(facility.NewBed("B3"))
	room2.AddBed(facility.NewBed("B4"))
	ward.AddRoom(room2)

	ch.AddWard(ward)

	ch.AddStaff(facility.Staff{ID: "M1", Name: "Rhea", Gender: facility.GenderFemale, Username: "rhea", Password: "rhea123", Role: facility.RoleManager})
	ch.AddStaff(facility.Staff{ID: "N1", Name: "Cathy", Gender: facility.GenderMale, Username: "cathy", Password: "cathy123", Role: facility.RoleNurse})
	ch.AddStaff(facility.Staff{ID: "D1", Name: "Jax", Gender: facility.GenderMale, Username: "jax", Password: "jax123", Role: facility.RoleDoctor})

	ch.AddResident(facility.Resident{ID: "P1", Name: "Peter Patel", Gender: facility.GenderMale, MedicalCondition: "Hypertension"})
	ch.AddResident(facility.Resident{ID: "P2", Name: "Naman Patel", Gender: facility.GenderFemale, MedicalCondition: "Diabetes"})

	type seedShift struct {
		staffID    string
		day        time.Weekday
		start, end string
	}
	seeds := []seedShift{
		{"N1", time.Monday, "08:00", "16:00"},
		{"N1", time.Tuesday, "08:00", "16:00"},
		{"D1", time.Monday, "09:00", "17:00"},
		{"D1", time.Wednesday, "09:00", "17:00"},
	}

	for _, seed := range seeds {
		start, err := facility.ParseTimeOfDay(seed.start)
		if err != nil {
			return fmt.Errorf("seed shift for %s: %w", seed.staffID, err)
		}
		end, err := facility.ParseTimeOfDay(seed.end)
		if err != nil {
			return fmt.Errorf("seed shift for %s: %w", seed.staffID, err)
		}
		shift, err := facility.NewShift(seed.day, start, end)
		if err != nil {
			return fmt.Errorf("seed shift for %s: %w", seed.staffID, err)
		}
		if err := ch.AssignShift("M1", seed.staffID, shift); err != nil {
			return fmt.Errorf("seed shift for %s: %w", seed.staffID, err)
		}
	}

	if err := ch.SetDoctorPresent("M1", time.Monday, true); err != nil {
		return fmt.Errorf("seed doctor presence: %w", err)
	}
	if err := ch.SetDoctorPresent("M1", time.Wednesday, true); err != nil {
		return fmt.Errorf("seed doctor presence: %w", err)
	}

	return nil
}
