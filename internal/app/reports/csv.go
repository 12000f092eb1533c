// Package reports renders student, fee and institution data as CSV and PDF.
package reports

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/domain/stats"
	"github.com/tenacity/erp/internal/pkg/helpers"
)

// CSVHeader is the first line of the student export
var CSVHeader = []string{"ID", "Name", "Attendance %", "Marks", "GPA", "Status"}

// CSVFileName is the download name of the student export for the given day
func CSVFileName(now time.Time) string {
	return "tenacity_students_" + helpers.DateStamp(now) + ".csv"
}

// quote always wraps s in double quotes, doubling embedded quotes
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// StudentsCSV writes one line per profile. Names are always quoted; the
// other columns never contain separators.
func StudentsCSV(w io.Writer, profiles []models.StudentProfile) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(CSVHeader, ",") + "\n"); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range profiles {
		row := []string{
			p.ID,
			quote(p.Name),
			number(p.Attendance),
			number(p.Marks),
			number(stats.Round(p.GPA, 2)),
			string(p.Status),
		}
		if _, err := bw.WriteString(strings.Join(row, ",") + "\n"); err != nil {
			return fmt.Errorf("write csv row %s: %w", p.ID, err)
		}
	}
	return bw.Flush()
}
