// Package grading maps marks onto the 10-point CGPA scale and classifies
// students into risk tiers.
package grading

import (
	"fmt"
	"math"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/pkg/apperrors"
)

// Thresholds used by ClassifyStatus
const (
	MinSafeAttendance = 85.0
	MinSafeGPA        = 7.5
	MinAttendance     = 75.0
	MinGPA            = 5.0
)

// band lower bounds, highest first
var bands = []float64{90, 80, 70, 60, 50, 40}

// ScoreToGradePoint converts a marks percentage into a grade point.
// Inside a band the point grows by 0.1 per mark above the band floor,
// so the mapping is continuous at every band boundary.
func ScoreToGradePoint(marks float64) float64 {
	for _, floor := range bands {
		if marks >= floor {
			return floor/10 + (marks-floor)*0.1
		}
	}
	return math.Max(0, marks*0.1)
}

// ClassifyStatus assigns the risk tier. The At-Risk check runs first:
// a student with high GPA but low attendance is still At-Risk.
func ClassifyStatus(attendance, gpa float64) models.Status {
	if attendance < MinAttendance || gpa < MinGPA {
		return models.StatusAtRisk
	}
	if attendance >= MinSafeAttendance && gpa >= MinSafeGPA {
		return models.StatusSafe
	}
	return models.StatusAverage
}

// Profile derives GPA and status for a stored record
func Profile(s models.Student) models.StudentProfile {
	gpa := ScoreToGradePoint(s.Marks)
	return models.StudentProfile{
		Student: s,
		GPA:     gpa,
		Status:  ClassifyStatus(s.Attendance, gpa),
	}
}

// Subject is a prospective course result used by the CGPA predictor
type Subject struct {
	Name    string  `json:"name,omitempty"`
	Credits float64 `json:"credits"`
	Marks   float64 `json:"marks"`
}

// ProjectedGPA returns the credit-weighted mean of the current GPA and the
// grade points of the added subjects.
func ProjectedGPA(currentGPA, currentCredits float64, additions []Subject) (float64, error) {
	weighted := currentGPA * currentCredits
	credits := currentCredits
	for _, s := range additions {
		weighted += ScoreToGradePoint(s.Marks) * s.Credits
		credits += s.Credits
	}
	if credits <= 0 {
		return 0, fmt.Errorf("project gpa over %.1f credits: %w", credits, apperrors.ErrNoCredits)
	}
	return weighted / credits, nil
}

// Trend describes how a projected GPA compares to the current one
type Trend string

const (
	TrendImprovement Trend = "improvement"
	TrendDecline     Trend = "decline"
	TrendNoChange    Trend = "no_change"
)

// trendEpsilon absorbs float noise when the projection equals the current GPA
const trendEpsilon = 1e-9

// CompareTrend reports whether projected is above, below or equal to current
func CompareTrend(current, projected float64) Trend {
	switch diff := projected - current; {
	case diff > trendEpsilon:
		return TrendImprovement
	case diff < -trendEpsilon:
		return TrendDecline
	default:
		return TrendNoChange
	}
}
