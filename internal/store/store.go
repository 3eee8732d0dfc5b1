package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"carehome-backend/internal/facility"
	"carehome-backend/internal/model"
)

// Store defines the persistence operations for facility snapshots. The
// in-memory core stays authoritative; the store only makes its state
// durable and brings it back on boot.
type Store interface {
	DB() *gorm.DB
	SaveSnapshot(ctx context.Context, st facility.State) error
	// LoadSnapshot returns the stored state and whether one exists.
	LoadSnapshot(ctx context.Context) (facility.State, bool, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// SaveSnapshot replaces the stored snapshot with the given state in a
// single transaction. Push subscriptions are not part of the snapshot
// and are left untouched.
func (s *gormStore) SaveSnapshot(ctx context.Context, st facility.State) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&model.AuditEntry{}, &model.PrescriptionItem{}, &model.Prescription{},
			&model.DoctorPresence{}, &model.Shift{}, &model.Bed{}, &model.Room{},
			&model.Ward{}, &model.Staff{}, &model.Resident{},
		} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear previous snapshot: %w", err)
			}
		}

		for i, ws := range st.Wards {
			ward := model.Ward{ID: ws.ID, Name: ws.Name, Seq: i}
			if err := tx.Create(&ward).Error; err != nil {
				return fmt.Errorf("failed to save ward %s: %w", ws.ID, err)
			}
			for j, rs := range ws.Rooms {
				room := model.Room{ID: rs.ID, WardID: ws.ID, Seq: j}
				if err := tx.Create(&room).Error; err != nil {
					return fmt.Errorf("failed to save room %s: %w", rs.ID, err)
				}
				for k, bs := range rs.Beds {
					bed := model.Bed{ID: bs.ID, RoomID: rs.ID, Seq: k}
					if bs.ResidentID != "" {
						rid := bs.ResidentID
						bed.ResidentID = &rid
					}
					if err := tx.Create(&bed).Error; err != nil {
						return fmt.Errorf("failed to save bed %s: %w", bs.ID, err)
					}
				}
			}
		}

		for i, sm := range st.Staff {
			row := model.Staff{
				ID: sm.ID, Name: sm.Name, Gender: string(sm.Gender),
				Username: sm.Username, Password: sm.Password,
				Role: string(sm.Role), Seq: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save staff %s: %w", sm.ID, err)
			}
		}
		for i, r := range st.Residents {
			row := model.Resident{
				ID: r.ID, Name: r.Name, Gender: string(r.Gender),
				MedicalCondition: r.MedicalCondition, Seq: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save resident %s: %w", r.ID, err)
			}
		}

		for i, sh := range st.Shifts {
			row := model.Shift{
				StaffID: sh.StaffID, Seq: i, Day: int(sh.Day),
				StartMin: sh.Start.Minutes(), EndMin: sh.End.Minutes(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save shift for %s: %w", sh.StaffID, err)
			}
		}
		for day, present := range st.DoctorPresence {
			if err := tx.Create(&model.DoctorPresence{Day: int(day), Present: present}).Error; err != nil {
				return fmt.Errorf("failed to save doctor presence: %w", err)
			}
		}

		for _, ps := range st.Prescriptions {
			if err := tx.Create(&model.Prescription{ResidentID: ps.ResidentID}).Error; err != nil {
				return fmt.Errorf("failed to save prescription for %s: %w", ps.ResidentID, err)
			}
			for i, item := range ps.Items {
				row := model.PrescriptionItem{
					ResidentID: ps.ResidentID, Seq: i,
					Medicine: item.Medicine, Dose: item.Dose, AtMin: item.At.Minutes(),
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to save prescription item for %s: %w", ps.ResidentID, err)
				}
			}
		}

		for _, entry := range st.Logs {
			row := model.AuditEntry{StaffID: entry.StaffID, Action: entry.Action, At: entry.At}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save audit entry: %w", err)
			}
		}
		return nil
	})
}

// LoadSnapshot rebuilds a facility.State from the stored rows. The
// bool result is false when no snapshot has ever been saved.
func (s *gormStore) LoadSnapshot(ctx context.Context) (facility.State, bool, error) {
	db := s.db.WithContext(ctx)
	st := facility.State{DoctorPresence: make(map[time.Weekday]bool)}

	var wards []model.Ward
	if err := db.Order("seq").Find(&wards).Error; err != nil {
		return st, false, fmt.Errorf("failed to load wards: %w", err)
	}
	var staff []model.Staff
	if err := db.Order("seq").Find(&staff).Error; err != nil {
		return st, false, fmt.Errorf("failed to load staff: %w", err)
	}
	if len(wards) == 0 && len(staff) == 0 {
		return st, false, nil
	}

	var rooms []model.Room
	if err := db.Order("seq").Find(&rooms).Error; err != nil {
		return st, false, fmt.Errorf("failed to load rooms: %w", err)
	}
	var beds []model.Bed
	if err := db.Order("seq").Find(&beds).Error; err != nil {
		return st, false, fmt.Errorf("failed to load beds: %w", err)
	}

	bedsByRoom := make(map[string][]model.Bed)
	for _, b := range beds {
		bedsByRoom[b.RoomID] = append(bedsByRoom[b.RoomID], b)
	}
	roomsByWard := make(map[string][]model.Room)
	for _, r := range rooms {
		roomsByWard[r.WardID] = append(roomsByWard[r.WardID], r)
	}

	for _, w := range wards {
		ws := facility.WardState{ID: w.ID, Name: w.Name}
		for _, r := range roomsByWard[w.ID] {
			rs := facility.RoomState{ID: r.ID}
			for _, b := range bedsByRoom[r.ID] {
				bs := facility.BedState{ID: b.ID}
				if b.ResidentID != nil {
					bs.ResidentID = *b.ResidentID
				}
				rs.Beds = append(rs.Beds, bs)
			}
			ws.Rooms = append(ws.Rooms, rs)
		}
		st.Wards = append(st.Wards, ws)
	}

	for _, row := range staff {
		st.Staff = append(st.Staff, facility.Staff{
			ID: row.ID, Name: row.Name, Gender: facility.Gender(row.Gender),
			Username: row.Username, Password: row.Password, Role: facility.Role(row.Role),
		})
	}

	var residents []model.Resident
	if err := db.Order("seq").Find(&residents).Error; err != nil {
		return st, false, fmt.Errorf("failed to load residents: %w", err)
	}
	for _, row := range residents {
		st.Residents = append(st.Residents, facility.Resident{
			ID: row.ID, Name: row.Name, Gender: facility.Gender(row.Gender),
			MedicalCondition: row.MedicalCondition,
		})
	}

	var shifts []model.Shift
	if err := db.Order("seq").Find(&shifts).Error; err != nil {
		return st, false, fmt.Errorf("failed to load shifts: %w", err)
	}
	for _, row := range shifts {
		st.Shifts = append(st.Shifts, facility.ShiftState{
			StaffID: row.StaffID, Day: time.Weekday(row.Day),
			Start: facility.TimeOfDay(row.StartMin), End: facility.TimeOfDay(row.EndMin),
		})
	}

	var presence []model.DoctorPresence
	if err := db.Find(&presence).Error; err != nil {
		return st, false, fmt.Errorf("failed to load doctor presence: %w", err)
	}
	for _, row := range presence {
		st.DoctorPresence[time.Weekday(row.Day)] = row.Present
	}

	var prescriptions []model.Prescription
	if err := db.Find(&prescriptions).Error; err != nil {
		return st, false, fmt.Errorf("failed to load prescriptions: %w", err)
	}
	var items []model.PrescriptionItem
	if err := db.Order("seq").Find(&items).Error; err != nil {
		return st, false, fmt.Errorf("failed to load prescription items: %w", err)
	}
	itemsByResident := make(map[string][]facility.PrescriptionItem)
	for _, row := range items {
		itemsByResident[row.ResidentID] = append(itemsByResident[row.ResidentID], facility.PrescriptionItem{
			Medicine: row.Medicine, Dose: row.Dose, At: facility.TimeOfDay(row.AtMin),
		})
	}
	for _, p := range prescriptions {
		st.Prescriptions = append(st.Prescriptions, facility.PrescriptionState{
			ResidentID: p.ResidentID, Items: itemsByResident[p.ResidentID],
		})
	}

	var logs []model.AuditEntry
	if err := db.Order("id").Find(&logs).Error; err != nil {
		return st, false, fmt.Errorf("failed to load audit entries: %w", err)
	}
	for _, row := range logs {
		st.Logs = append(st.Logs, facility.AuditEntry{StaffID: row.StaffID, Action: row.Action, At: row.At})
	}

	return st, true, nil
}
