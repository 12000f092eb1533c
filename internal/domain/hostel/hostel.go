// Package hostel keeps the room allocation ledger. Every operation returns a
// new room set and leaves its input untouched.
package hostel

import (
	"fmt"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/pkg/apperrors"
)

func cloneRooms(rooms []models.HostelRoom) []models.HostelRoom {
	out := make([]models.HostelRoom, len(rooms))
	for i, r := range rooms {
		out[i] = r.Clone()
	}
	return out
}

func indexOf(rooms []models.HostelRoom, roomID string) int {
	for i, r := range rooms {
		if r.ID == roomID {
			return i
		}
	}
	return -1
}

// RoomOf returns the id of the room studentID lives in
func RoomOf(rooms []models.HostelRoom, studentID string) (string, bool) {
	for _, r := range rooms {
		if r.HasOccupant(studentID) {
			return r.ID, true
		}
	}
	return "", false
}

// Allocate places studentID into roomID. A student may occupy at most one
// bed across all rooms. Checks run in order and the first failure wins:
// unknown room (ErrRoomNotFound), student already housed anywhere
// (ErrAlreadyAllocated), then full room (ErrCapacityExceeded). A housed
// student asking for a full room therefore gets ErrAlreadyAllocated.
func Allocate(rooms []models.HostelRoom, roomID, studentID string) ([]models.HostelRoom, error) {
	i := indexOf(rooms, roomID)
	if i < 0 {
		return nil, fmt.Errorf("allocate %s: %w", roomID, apperrors.ErrRoomNotFound)
	}
	if current, ok := RoomOf(rooms, studentID); ok {
		return nil, fmt.Errorf("allocate %s to %s, already in %s: %w", studentID, roomID, current, apperrors.ErrAlreadyAllocated)
	}
	if rooms[i].IsFull() {
		return nil, fmt.Errorf("allocate %s to %s: %w", studentID, roomID, apperrors.ErrCapacityExceeded)
	}

	out := cloneRooms(rooms)
	out[i].Occupants = append(out[i].Occupants, studentID)
	out[i].Occupied++
	return out, nil
}

// Deallocate removes studentID from roomID. Occupied never drops below zero.
func Deallocate(rooms []models.HostelRoom, roomID, studentID string) ([]models.HostelRoom, error) {
	i := indexOf(rooms, roomID)
	if i < 0 {
		return nil, fmt.Errorf("deallocate %s: %w", roomID, apperrors.ErrRoomNotFound)
	}
	if !rooms[i].HasOccupant(studentID) {
		return nil, fmt.Errorf("deallocate %s from %s: %w", studentID, roomID, apperrors.ErrOccupantNotFound)
	}

	out := cloneRooms(rooms)
	kept := make([]string, 0, len(out[i].Occupants))
	for _, id := range out[i].Occupants {
		if id != studentID {
			kept = append(kept, id)
		}
	}
	out[i].Occupants = kept
	out[i].Occupied = max(0, out[i].Occupied-1)
	return out, nil
}

// Normalize repairs loaded data: duplicate occupants are dropped (first
// room wins) and Occupied is recomputed from the occupant list.
func Normalize(rooms []models.HostelRoom) []models.HostelRoom {
	out := cloneRooms(rooms)
	seen := make(map[string]struct{})
	for i := range out {
		kept := make([]string, 0, len(out[i].Occupants))
		for _, id := range out[i].Occupants {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			kept = append(kept, id)
		}
		out[i].Occupants = kept
		out[i].Occupied = len(kept)
	}
	return out
}

// LoadLevel is the colour band of a room on the hostel panel
type LoadLevel string

const (
	LoadAvailable LoadLevel = "available"
	LoadFilling   LoadLevel = "filling"
	LoadFull      LoadLevel = "full"
)

// Level returns the load band for a room
func Level(r models.HostelRoom) LoadLevel {
	pct := r.OccupancyPercent()
	switch {
	case pct >= 100:
		return LoadFull
	case pct >= 75:
		return LoadFilling
	default:
		return LoadAvailable
	}
}

// RoomStatus is a room with its load band
type RoomStatus struct {
	models.HostelRoom
	Percent float64   `json:"occupancyPercent" example:"75"`
	Level   LoadLevel `json:"level" example:"filling"`
}

// Summary is the hostel panel overview
type Summary struct {
	TotalRooms          int              `json:"totalRooms" example:"5"`
	TotalCapacity       int              `json:"totalCapacity" example:"20"`
	TotalOccupied       int              `json:"totalOccupied" example:"10"`
	OccupancyRate       float64          `json:"occupancyRate" example:"50"`
	AvailableRooms      []string         `json:"availableRooms"`
	UnallocatedStudents []models.Student `json:"unallocatedStudents"`
	Rooms               []RoomStatus     `json:"rooms"`
}

// Overview summarises occupancy and lists students without a room
func Overview(rooms []models.HostelRoom, students []models.Student) Summary {
	s := Summary{
		TotalRooms:          len(rooms),
		AvailableRooms:      []string{},
		UnallocatedStudents: []models.Student{},
		Rooms:               make([]RoomStatus, 0, len(rooms)),
	}
	allocated := make(map[string]struct{})
	for _, r := range rooms {
		s.TotalCapacity += r.Capacity
		s.TotalOccupied += r.Occupied
		if !r.IsFull() {
			s.AvailableRooms = append(s.AvailableRooms, r.ID)
		}
		for _, id := range r.Occupants {
			allocated[id] = struct{}{}
		}
		s.Rooms = append(s.Rooms, RoomStatus{
			HostelRoom: r.Clone(),
			Percent:    r.OccupancyPercent(),
			Level:      Level(r),
		})
	}
	if s.TotalCapacity > 0 {
		s.OccupancyRate = float64(s.TotalOccupied) / float64(s.TotalCapacity) * 100
	}
	for _, st := range students {
		if _, ok := allocated[st.ID]; !ok {
			s.UnallocatedStudents = append(s.UnallocatedStudents, st)
		}
	}
	return s
}
