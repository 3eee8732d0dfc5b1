package facility

// PrescriptionItem annotates one medicine with a dose and the time of
// day it is given.
type PrescriptionItem struct {
	Medicine string    `json:"medicine"`
	Dose     string    `json:"dose"`
	At       TimeOfDay `json:"at"`
}

// Prescription is owned by exactly one resident and holds its items in
// insertion order. Updating an already-listed medicine replaces its
// annotation in place, keeping the original position.
type Prescription struct {
	ResidentID string
	items      []PrescriptionItem
}

func newPrescription(residentID string, items []PrescriptionItem) *Prescription {
	p := &Prescription{ResidentID: residentID}
	for _, it := range items {
		p.upsert(it)
	}
	return p
}

func (p *Prescription) upsert(item PrescriptionItem) {
	for i, existing := range p.items {
		if existing.Medicine == item.Medicine {
			p.items[i] = item
			return
		}
	}
	p.items = append(p.items, item)
}

// contains reports whether the prescription lists the medicine.
func (p *Prescription) contains(medicine string) bool {
	for _, it := range p.items {
		if it.Medicine == medicine {
			return true
		}
	}
	return false
}

// PrescriptionView is the read-only projection of a prescription.
type PrescriptionView struct {
	ResidentID string             `json:"resident_id"`
	Items      []PrescriptionItem `json:"items"`
}

func (p *Prescription) view() PrescriptionView {
	items := make([]PrescriptionItem, len(p.items))
	copy(items, p.items)
	return PrescriptionView{ResidentID: p.ResidentID, Items: items}
}
