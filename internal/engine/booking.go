package engine

// bookingSet tracks which time slots a resource (teacher, class or room)
// already occupies within a single solver run.
type bookingSet map[string]map[string]bool

func (b bookingSet) book(id, slotID string) {
	if b[id] == nil {
		b[id] = make(map[string]bool)
	}
	b[id][slotID] = true
}

func (b bookingSet) release(id, slotID string) {
	if b[id] != nil {
		delete(b[id], slotID)
	}
}

func (b bookingSet) booked(id, slotID string) bool {
	return b[id] != nil && b[id][slotID]
}
