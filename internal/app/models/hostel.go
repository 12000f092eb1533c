package models

// HostelRoom tracks occupancy of a single room.
// Occupied always equals len(Occupants) and never exceeds Capacity.
type HostelRoom struct {
	ID        string   `json:"id" example:"R101"`
	Capacity  int      `json:"capacity" example:"4"`
	Occupied  int      `json:"occupied" example:"3"`
	Occupants []string `json:"occupants"`
}

// Clone returns a deep copy of the room
func (r HostelRoom) Clone() HostelRoom {
	c := r
	c.Occupants = append([]string{}, r.Occupants...)
	return c
}

// HasOccupant reports whether studentID lives in this room
func (r HostelRoom) HasOccupant(studentID string) bool {
	for _, id := range r.Occupants {
		if id == studentID {
			return true
		}
	}
	return false
}

// IsFull reports whether no bed is left
func (r HostelRoom) IsFull() bool {
	return r.Occupied >= r.Capacity
}

// OccupancyPercent is the share of occupied beds, 0 for a room without capacity
func (r HostelRoom) OccupancyPercent() float64 {
	if r.Capacity <= 0 {
		return 0
	}
	return float64(r.Occupied) / float64(r.Capacity) * 100
}
