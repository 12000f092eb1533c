// Package warning derives early-warning indicators from a student profile.
package warning

import "github.com/tenacity/erp/internal/app/models"

const (
	LowAttendanceThreshold = 75.0
	DecliningGPAThreshold  = 5.5
)

type rule struct {
	applies func(models.StudentProfile) bool
	warning models.Warning
}

// rules are evaluated independently; their order is the display order
var rules = []rule{
	{
		applies: func(p models.StudentProfile) bool { return p.Attendance < LowAttendanceThreshold },
		warning: models.Warning{Kind: models.WarningLowAttendance, Icon: "🔻", Message: "Low attendance"},
	},
	{
		applies: func(p models.StudentProfile) bool { return p.AbsentFlag },
		warning: models.Warning{Kind: models.WarningExamAbsence, Icon: "⭕", Message: "Absent in exam"},
	},
	{
		applies: func(p models.StudentProfile) bool { return p.GPA < DecliningGPAThreshold },
		warning: models.Warning{Kind: models.WarningPerformance, Icon: "📉", Message: "Declining performance"},
	},
}

// Evaluate returns the indicators that apply to p, never nil
func Evaluate(p models.StudentProfile) []models.Warning {
	out := make([]models.Warning, 0, len(rules))
	for _, r := range rules {
		if r.applies(p) {
			out = append(out, r.warning)
		}
	}
	return out
}

// Annotate returns p with its warnings filled in
func Annotate(p models.StudentProfile) models.StudentProfile {
	p.Warnings = Evaluate(p)
	return p
}
