package models

// Student is the stored student record. Only source fields are persisted;
// GPA and status are derived on read, see StudentProfile.
type Student struct {
	ID           string   `json:"id" example:"s1"`
	Name         string   `json:"name" example:"Aman Kumar"`
	Attendance   float64  `json:"attendance" example:"65"`
	Marks        float64  `json:"marks" example:"55"`
	AbsentFlag   bool     `json:"absentFlag,omitempty"`
	Notes        []string `json:"notes,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Certificates []string `json:"certificates,omitempty"`
}

// Clone returns a deep copy so collections can be replaced copy-on-write
func (s Student) Clone() Student {
	c := s
	c.Notes = append([]string(nil), s.Notes...)
	c.Achievements = append([]string(nil), s.Achievements...)
	c.Certificates = append([]string(nil), s.Certificates...)
	return c
}

// WarningKind identifies an early-warning indicator
type WarningKind string

const (
	WarningLowAttendance WarningKind = "attendance"
	WarningExamAbsence   WarningKind = "absent"
	WarningPerformance   WarningKind = "performance"
)

// Warning is a single early-warning indicator shown next to a student
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Icon    string      `json:"icon"`
	Message string      `json:"message"`
}

// StudentProfile is a student together with the fields derived from it
type StudentProfile struct {
	Student
	GPA      float64   `json:"gpa" example:"5.5"`
	Status   Status    `json:"status" example:"At-Risk"`
	Warnings []Warning `json:"warnings"`
}
