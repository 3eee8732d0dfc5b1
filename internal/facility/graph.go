package facility

import "fmt"

// The occupancy graph is a three-level containment hierarchy:
// Ward -> Room -> Bed. The bed is the unit of occupancy and owns the
// resident reference. Wards, rooms and beds are added once, in
// insertion order, and never reordered.

// Bed holds at most one resident.
type Bed struct {
	id       string
	resident *Resident
}

// NewBed creates a vacant bed.
func NewBed(id string) *Bed {
	return &Bed{id: id}
}

// ID returns the bed identity.
func (b *Bed) ID() string { return b.id }

// Vacant reports whether the bed has no resident.
func (b *Bed) Vacant() bool { return b.resident == nil }

// assign places a resident in the bed. It fails without side effects
// when the bed is already occupied. Callers serialize access through
// the care-home lock.
func (b *Bed) assign(r *Resident) error {
	if b.resident != nil {
		return fmt.Errorf("bed %s: %w", b.id, ErrAlreadyOccupied)
	}
	b.resident = r
	return nil
}

// vacate clears the occupant and returns it, failing when the bed is
// already vacant.
func (b *Bed) vacate() (*Resident, error) {
	if b.resident == nil {
		return nil, fmt.Errorf("bed %s: %w", b.id, ErrNotOccupied)
	}
	r := b.resident
	b.resident = nil
	return r, nil
}

// Room is an ordered collection of beds.
type Room struct {
	id   string
	beds []*Bed
}

// NewRoom creates an empty room.
func NewRoom(id string) *Room {
	return &Room{id: id}
}

// ID returns the room identity.
func (r *Room) ID() string { return r.id }

// AddBed appends a bed to the room.
func (r *Room) AddBed(b *Bed) {
	r.beds = append(r.beds, b)
}

// Ward is a named, ordered collection of rooms.
type Ward struct {
	id    string
	name  string
	rooms []*Room
}

// NewWard creates an empty ward.
func NewWard(id, name string) *Ward {
	return &Ward{id: id, name: name}
}

// ID returns the ward identity.
func (w *Ward) ID() string { return w.id }

// Name returns the ward display name.
func (w *Ward) Name() string { return w.name }

// AddRoom appends a room to the ward.
func (w *Ward) AddRoom(r *Room) {
	w.rooms = append(w.rooms, r)
}

// findBed scans wards, rooms and beds in insertion order and returns
// the first bed with the given id. Facilities are small, a linear scan
// is deliberate.
func findBed(wards []*Ward, bedID string) (*Bed, error) {
	for _, w := range wards {
		for _, r := range w.rooms {
			for _, b := range r.beds {
				if b.id == bedID {
					return b, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("bed %s: %w", bedID, ErrNotFound)
}

// BedView is the read-only projection of a bed returned by queries.
type BedView struct {
	ID       string    `json:"id"`
	Vacant   bool      `json:"vacant"`
	Resident *Resident `json:"resident,omitempty"`
}

// RoomView is the read-only projection of a room.
type RoomView struct {
	ID   string    `json:"id"`
	Beds []BedView `json:"beds"`
}

// WardView is the read-only projection of a ward.
type WardView struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Rooms []RoomView `json:"rooms"`
}

func (w *Ward) view() WardView {
	wv := WardView{ID: w.id, Name: w.name, Rooms: make([]RoomView, 0, len(w.rooms))}
	for _, r := range w.rooms {
		rv := RoomView{ID: r.id, Beds: make([]BedView, 0, len(r.beds))}
		for _, b := range r.beds {
			bv := BedView{ID: b.id, Vacant: b.resident == nil}
			if b.resident != nil {
				res := *b.resident
				bv.Resident = &res
			}
			rv.Beds = append(rv.Beds, bv)
		}
		wv.Rooms = append(wv.Rooms, rv)
	}
	return wv
}
