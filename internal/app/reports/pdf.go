package reports

import (
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/domain/stats"
	"github.com/tenacity/erp/internal/pkg/helpers"
)

const (
	fontFamily   = "Helvetica"
	leftMargin   = 20.0
	indent       = 25.0
	lineHeight   = 15.0
	lastLineY    = 265.0
	footerY      = 280.0
	displayDate  = "02/01/2006"
	defaultTitle = "TENACITY ERP"
)

var whitespace = regexp.MustCompile(`\s+`)

// Config holds the institution details printed on every document
type Config struct {
	Institution string
	Footer      string
	Locale      string
}

// Generator renders PDF documents
type Generator struct {
	cfg      Config
	now      func() time.Time
	compress bool
}

// NewGenerator creates a PDF generator
func NewGenerator(cfg Config) *Generator {
	if cfg.Institution == "" {
		cfg.Institution = defaultTitle
	}
	if cfg.Locale == "" {
		cfg.Locale = helpers.DefaultLocale
	}
	return &Generator{cfg: cfg, now: time.Now, compress: true}
}

// page wraps one fpdf document with a text cursor
type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	y   float64
}

func (g *Generator) newPage(title string) *page {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(g.compress)
	pdf.SetCreationDate(g.now())
	pdf.SetTitle(title, true)
	pdf.SetCreator(g.cfg.Institution, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), y: 20}
}

func (p *page) font(style string, size float64) {
	p.pdf.SetFont(fontFamily, style, size)
}

func (p *page) text(x, y float64, s string) {
	p.pdf.Text(x, y, p.tr(s))
}

func (p *page) centered(y float64, s string) {
	w, _ := p.pdf.GetPageSize()
	p.pdf.Text((w-p.pdf.GetStringWidth(p.tr(s)))/2, y, p.tr(s))
}

// line writes s at the cursor and advances it, starting a new page when full
func (p *page) line(x float64, s string) {
	if p.y > lastLineY {
		p.pdf.AddPage()
		p.y = 20
	}
	p.text(x, p.y, s)
	p.y += lineHeight
}

func (p *page) output(w io.Writer) error {
	if err := p.pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// PortfolioFileName is the download name of a student's portfolio
func PortfolioFileName(studentName string) string {
	return whitespace.ReplaceAllString(studentName, "_") + "_Portfolio.pdf"
}

// Portfolio renders the academic portfolio of one student
func (g *Generator) Portfolio(w io.Writer, p models.StudentProfile) error {
	doc := g.newPage("Student Academic Portfolio")

	doc.font("B", 20)
	doc.centered(20, g.cfg.Institution)
	doc.font("B", 16)
	doc.centered(35, "Student Academic Portfolio")

	doc.font("B", 14)
	doc.y = 55
	doc.line(leftMargin, "Student: "+p.Name)
	doc.line(leftMargin, "ID: "+p.ID)

	doc.font("", 14)
	doc.line(leftMargin, fmt.Sprintf("Attendance: %s%%", number(p.Attendance)))
	doc.line(leftMargin, fmt.Sprintf("Current Marks: %s%%", number(p.Marks)))
	doc.line(leftMargin, fmt.Sprintf("CGPA: %.2f", p.GPA))
	doc.line(leftMargin, "Status: "+string(p.Status))

	sections := []struct {
		title string
		items []string
	}{
		{"Achievements:", p.Achievements},
		{"Certificates:", p.Certificates},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		doc.y += 5
		doc.font("B", 14)
		doc.line(leftMargin, s.title)
		doc.font("", 14)
		for _, item := range s.items {
			doc.line(indent, "• "+item)
		}
	}

	doc.font("", 10)
	doc.text(leftMargin, footerY, "Generated on: "+g.now().Format(displayDate))
	doc.centered(footerY+7, g.cfg.Footer)
	return doc.output(w)
}

// ReceiptFileName is the download name of a fee receipt
func ReceiptFileName(receiptID string) string {
	return "Receipt_" + receiptID + ".pdf"
}

// Receipt renders the receipt of one fee payment
func (g *Generator) Receipt(w io.Writer, tx models.FeeTransaction) error {
	doc := g.newPage("Fee Receipt " + tx.ReceiptID)

	doc.font("B", 18)
	doc.centered(25, g.cfg.Institution)
	doc.centered(40, "Fee Receipt")

	date := tx.Date
	if t, err := time.Parse("2006-01-02", tx.Date); err == nil {
		date = t.Format(displayDate)
	}

	doc.font("", 12)
	doc.text(leftMargin, 65, "Receipt ID: "+tx.ReceiptID)
	doc.text(leftMargin, 80, "Date: "+date)
	doc.text(leftMargin, 100, "Student Name: "+tx.StudentName)
	doc.text(leftMargin, 115, "Student ID: "+tx.StudentID)
	if tx.FeeType != "" {
		doc.text(leftMargin, 130, "Fee Type: "+tx.FeeType.Label())
	}

	doc.font("B", 12)
	doc.text(leftMargin, 150, "Amount Paid: "+helpers.FormatINRCode(tx.Amount, g.cfg.Locale))

	doc.font("", 10)
	doc.centered(200, "This is a computer-generated receipt.")
	doc.centered(215, "Thank you for your payment.")
	return doc.output(w)
}

// InstitutionFileName is the download name of the institution report
func InstitutionFileName(now time.Time) string {
	return "NAAC_Report_" + helpers.DateStamp(now) + ".pdf"
}

// Institution renders the NAAC assessment report
func (g *Generator) Institution(w io.Writer, r stats.Institution) error {
	doc := g.newPage("NAAC Assessment Report")
	s := r.Summary

	doc.font("B", 20)
	doc.centered(25, g.cfg.Institution)
	doc.centered(40, "NAAC Assessment Report")

	doc.font("B", 14)
	doc.text(leftMargin, 58, "Institutional Summary")

	doc.font("", 12)
	doc.text(leftMargin, 70, fmt.Sprintf("Total Students: %d", s.Count))
	doc.text(leftMargin, 80, fmt.Sprintf("Average Attendance: %s%%", number(s.AvgAttendance)))
	doc.text(leftMargin, 90, fmt.Sprintf("Average CGPA: %s", number(s.AvgGPA)))

	doc.font("B", 12)
	doc.text(leftMargin, 105, "Performance Distribution:")
	doc.font("", 12)
	doc.text(indent, 115, fmt.Sprintf("Safe Students: %d (%.1f%%)", s.SafeCount, r.Share.Safe))
	doc.text(indent, 125, fmt.Sprintf("Average Students: %d (%.1f%%)", s.AverageCount, r.Share.Average))
	doc.text(indent, 135, fmt.Sprintf("At-Risk Students: %d (%.1f%%)", s.AtRiskCount, r.Share.AtRisk))

	doc.font("B", 12)
	doc.text(leftMargin, 150, "Attendance Distribution:")
	doc.font("", 12)
	y := 160.0
	for _, b := range r.Distribution {
		doc.text(indent, y, fmt.Sprintf("%s%%: %d (%.1f%%)", b.Label, b.Count, b.Percent))
		y += 10
	}

	y += 6
	doc.font("B", 12)
	doc.text(leftMargin, y, "Quality Indicators:")
	doc.font("", 12)
	doc.text(indent, y+10, "• Academic Performance: "+string(r.Quality.AcademicPerformance))
	doc.text(indent, y+20, "• Attendance Rate: "+string(r.Quality.AttendanceRate))
	doc.text(indent, y+30, fmt.Sprintf("• Student Retention: %.1f%%", r.Quality.Retention))

	doc.font("", 10)
	doc.text(leftMargin, footerY-10, "Report generated on: "+g.now().Format(displayDate))
	doc.centered(footerY, g.cfg.Footer)
	return doc.output(w)
}
