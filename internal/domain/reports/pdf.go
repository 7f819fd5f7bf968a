package reports

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// WriteDigestPDF renders one manager's weekly status digest to path.
func WriteDigestPDF(path string, d ManagerDigest, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Weekly Project Status Report")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, "Week of "+now.Format("January 2, 2006"))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 8, "Project", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Status", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "End Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Open Tasks", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Pending Requests", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, p := range d.Projects {
		endDate := p.EndDate
		if endDate == "" {
			endDate = "-"
		}
		pdf.CellFormat(70, 8, p.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, p.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, endDate, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", p.OpenTasks), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%d", p.PendingRequests), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s for %s", now.Format(time.RFC1123), d.ManagerEmail))

	return pdf.OutputFileAndClose(path)
}
