// Package stats aggregates cohort-level statistics over student profiles.
package stats

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/pkg/apperrors"
)

// Summary holds the cohort figures shown on the admin dashboard.
// SafeCount + AverageCount + AtRiskCount == Count.
type Summary struct {
	Count         int     `json:"totalStudents" example:"10"`
	AvgAttendance float64 `json:"avgAttendance" example:"73.7"`
	AvgGPA        float64 `json:"avgGpa" example:"6.47"`
	SafeCount     int     `json:"safeCount" example:"2"`
	AverageCount  int     `json:"averageCount" example:"3"`
	AtRiskCount   int     `json:"atRiskCount" example:"5"`
}

// Summarize computes counts and rounded averages. An empty cohort has no
// defined averages and yields ErrEmptyCohort.
func Summarize(profiles []models.StudentProfile) (Summary, error) {
	if len(profiles) == 0 {
		return Summary{}, fmt.Errorf("summarize: %w", apperrors.ErrEmptyCohort)
	}

	var s Summary
	var attendance, gpa float64
	for _, p := range profiles {
		attendance += p.Attendance
		gpa += p.GPA
		switch p.Status {
		case models.StatusSafe:
			s.SafeCount++
		case models.StatusAverage:
			s.AverageCount++
		default:
			s.AtRiskCount++
		}
	}
	s.Count = len(profiles)
	s.AvgAttendance = Round(attendance/float64(s.Count), 2)
	s.AvgGPA = Round(gpa/float64(s.Count), 2)
	return s, nil
}

// Round rounds half away from zero to the given number of decimals. The
// value is taken at its shortest decimal form, so 1.005 rounds to 1.01.
func Round(x float64, decimals int) float64 {
	return decimal.NewFromFloat(x).Round(int32(decimals)).InexactFloat64()
}

// percent of part in total to one decimal, 0 when total is 0
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round(float64(part)/float64(total)*100, 1)
}

// Share is the status distribution in percent, one decimal each
type Share struct {
	Safe    float64 `json:"safe" example:"20"`
	Average float64 `json:"average" example:"30"`
	AtRisk  float64 `json:"atRisk" example:"50"`
}

// StatusShare converts the bucket counts of s into percentages
func StatusShare(s Summary) Share {
	return Share{
		Safe:    percent(s.SafeCount, s.Count),
		Average: percent(s.AverageCount, s.Count),
		AtRisk:  percent(s.AtRiskCount, s.Count),
	}
}

// RetentionRate is the share of students who are not At-Risk
func RetentionRate(s Summary) float64 {
	return percent(s.Count-s.AtRiskCount, s.Count)
}

// Bucket is one bar of the attendance histogram
type Bucket struct {
	Label   string  `json:"label" example:"90-100"`
	Count   int     `json:"count" example:"2"`
	Percent float64 `json:"percent" example:"20"`
}

var attendanceRanges = []struct {
	label string
	min   float64
}{
	{"90-100", 90},
	{"80-89", 80},
	{"70-79", 70},
	{"60-69", 60},
	{"<60", math.Inf(-1)},
}

// AttendanceDistribution groups profiles into fixed attendance ranges,
// highest range first. Every profile falls into exactly one bucket.
func AttendanceDistribution(profiles []models.StudentProfile) []Bucket {
	buckets := make([]Bucket, len(attendanceRanges))
	for i, r := range attendanceRanges {
		buckets[i].Label = r.label
	}
	for _, p := range profiles {
		for i, r := range attendanceRanges {
			if p.Attendance >= r.min {
				buckets[i].Count++
				break
			}
		}
	}
	for i := range buckets {
		buckets[i].Percent = percent(buckets[i].Count, len(profiles))
	}
	return buckets
}

// Rating is a qualitative label for an average
type Rating string

const (
	RatingExcellent        Rating = "Excellent"
	RatingGood             Rating = "Good"
	RatingNeedsImprovement Rating = "Needs Improvement"
)

// RateGPA rates an average GPA
func RateGPA(avg float64) Rating {
	switch {
	case avg >= 7:
		return RatingExcellent
	case avg >= 6:
		return RatingGood
	default:
		return RatingNeedsImprovement
	}
}

// RateAttendance rates an average attendance percentage
func RateAttendance(avg float64) Rating {
	switch {
	case avg >= 85:
		return RatingExcellent
	case avg >= 75:
		return RatingGood
	default:
		return RatingNeedsImprovement
	}
}

// Quality groups the qualitative indicators of an institution report
type Quality struct {
	AcademicPerformance Rating  `json:"academicPerformance" example:"Good"`
	AttendanceRate      Rating  `json:"attendanceRate" example:"Needs Improvement"`
	Retention           float64 `json:"retention" example:"50"`
}

// Institution is the full institutional report
type Institution struct {
	Summary      Summary  `json:"summary"`
	Share        Share    `json:"share"`
	Distribution []Bucket `json:"attendanceDistribution"`
	Quality      Quality  `json:"quality"`
}

// BuildInstitution assembles the institutional report for profiles
func BuildInstitution(profiles []models.StudentProfile) (Institution, error) {
	s, err := Summarize(profiles)
	if err != nil {
		return Institution{}, err
	}
	return Institution{
		Summary:      s,
		Share:        StatusShare(s),
		Distribution: AttendanceDistribution(profiles),
		Quality: Quality{
			AcademicPerformance: RateGPA(s.AvgGPA),
			AttendanceRate:      RateAttendance(s.AvgAttendance),
			Retention:           RetentionRate(s),
		},
	}, nil
}
