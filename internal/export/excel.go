// Package export renders stored fault reports as an xlsx workbook for
// offline processing by service offices.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/report"
	"github.com/Tejkumar2005/solarfaulty-analysis/internal/repository"
)

const sheetName = "Fault Reports"

var headers = []string{
	"Report ID",
	"Created At",
	"Fault Type",
	"Confidence",
	"Severity",
	"Reporter",
	"Phone",
	"Email",
	"Pincode",
	"Panel Location",
	"Office",
	"Office Email",
	"Office Phone",
	"Notes",
}

// ReportsWorkbook builds an xlsx workbook with one row per report.
// The caller owns the file and must Close it.
func ReportsWorkbook(reports []repository.FaultReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header %q: %w", h, err)
		}
	}

	for rowIdx, r := range reports {
		values := []interface{}{
			r.ID.String(),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.FaultType,
			report.FormatConfidence(r.Confidence),
			deref(r.Severity),
			r.ReporterName,
			r.ReporterPhone,
			r.ReporterEmail,
			deref(r.Pincode),
			deref(r.PanelLocation),
			r.OfficeName,
			r.OfficeEmail,
			r.OfficePhone,
			deref(r.Notes),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", rowIdx+1, err)
			}
		}
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
