package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/pkg/apperrors"
)

func TestScoreToGradePoint(t *testing.T) {
	tests := []struct {
		marks float64
		want  float64
	}{
		{marks: 0, want: 0},
		{marks: 38, want: 3.8},
		{marks: 40, want: 4.0},
		{marks: 55, want: 5.5},
		{marks: 65, want: 6.5},
		{marks: 79, want: 7.9},
		{marks: 90, want: 9.0},
		{marks: 91, want: 9.1},
		{marks: 100, want: 10.0},
		{marks: -5, want: 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ScoreToGradePoint(tt.marks), 1e-9, "marks %v", tt.marks)
	}
}

func TestScoreToGradePoint_NinetyIsExact(t *testing.T) {
	assert.Equal(t, 9.0, ScoreToGradePoint(90))
}

func TestScoreToGradePoint_ContinuousAtBoundaries(t *testing.T) {
	for _, b := range []float64{40, 50, 60, 70, 80, 90} {
		below := ScoreToGradePoint(b - 1e-6)
		at := ScoreToGradePoint(b)
		assert.InDelta(t, at, below, 1e-6, "boundary %v", b)
	}
}

func TestScoreToGradePoint_Monotone(t *testing.T) {
	prev := ScoreToGradePoint(0)
	for m := 0.5; m <= 100; m += 0.5 {
		cur := ScoreToGradePoint(m)
		assert.GreaterOrEqual(t, cur, prev, "marks %v", m)
		prev = cur
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name       string
		attendance float64
		gpa        float64
		want       models.Status
	}{
		{"low attendance beats high gpa", 60, 9.0, models.StatusAtRisk},
		{"low gpa", 95, 4.9, models.StatusAtRisk},
		{"safe", 85, 7.5, models.StatusSafe},
		{"attendance just below safe", 84.9, 9.0, models.StatusAverage},
		{"gpa just below safe", 90, 7.4, models.StatusAverage},
		{"edge of at-risk", 75, 5.0, models.StatusAverage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStatus(tt.attendance, tt.gpa))
		})
	}
}

func TestProfile(t *testing.T) {
	p := Profile(models.Student{ID: "s1", Name: "Aman Kumar", Attendance: 65, Marks: 55})
	assert.InDelta(t, 5.5, p.GPA, 1e-9)
	assert.Equal(t, models.StatusAtRisk, p.Status)

	p = Profile(models.Student{ID: "s4", Name: "Priya Sharma", Attendance: 92, Marks: 91})
	assert.InDelta(t, 9.1, p.GPA, 1e-9)
	assert.Equal(t, models.StatusSafe, p.Status)
}

func TestProjectedGPA(t *testing.T) {
	got, err := ProjectedGPA(6.0, 19, []Subject{{Credits: 4, Marks: 75}})
	require.NoError(t, err)
	assert.InDelta(t, (6.0*19+7.5*4)/23, got, 1e-9)

	got, err = ProjectedGPA(0, 0, []Subject{{Credits: 3, Marks: 80}})
	require.NoError(t, err)
	assert.InDelta(t, 8.0, got, 1e-9)
}

func TestProjectedGPA_NoCredits(t *testing.T) {
	_, err := ProjectedGPA(7.0, 0, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoCredits)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCompareTrend(t *testing.T) {
	assert.Equal(t, TrendImprovement, CompareTrend(6.0, 6.2))
	assert.Equal(t, TrendDecline, CompareTrend(6.0, 5.8))
	assert.Equal(t, TrendNoChange, CompareTrend(6.0, 6.0))
}
