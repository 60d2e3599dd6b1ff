package export

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/repository"
)

func TestReportsWorkbook(t *testing.T) {
	severity := "High"
	pincode := "110001"
	reports := []repository.FaultReport{
		{
			ID:            uuid.New(),
			ReporterName:  "Asha Verma",
			ReporterPhone: "+91-9876543210",
			ReporterEmail: "asha.verma@example.com",
			Pincode:       &pincode,
			FaultType:     "Hot Spots",
			Confidence:    0.873,
			Severity:      &severity,
			OfficeName:    "New Delhi Service Center",
			OfficeEmail:   "delhi.service@solarfaulty.in",
			OfficePhone:   "+91-11-2334-5566",
			OfficeAddress: "23 Barakhamba Road, New Delhi",
			ReportText:    "FAULT DETECTION REPORT",
			CreatedAt:     time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		},
	}

	f, err := ReportsWorkbook(reports)
	if err != nil {
		t.Fatalf("ReportsWorkbook() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("workbook has %d rows, want header + 1 data row", len(rows))
	}
	if rows[0][0] != "Report ID" {
		t.Errorf("first header = %q, want Report ID", rows[0][0])
	}

	data := rows[1]
	checks := map[int]string{
		2:  "Hot Spots",
		3:  "87.3%",
		4:  "High",
		5:  "Asha Verma",
		10: "New Delhi Service Center",
	}
	for col, want := range checks {
		if data[col] != want {
			t.Errorf("column %d = %q, want %q", col, data[col], want)
		}
	}
}

func TestReportsWorkbookEmpty(t *testing.T) {
	f, err := ReportsWorkbook(nil)
	if err != nil {
		t.Fatalf("ReportsWorkbook(nil) error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("empty workbook has %d rows, want header only", len(rows))
	}
}
