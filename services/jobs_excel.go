package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// JobExportRow is one job in the jobs list export.
type JobExportRow struct {
	JobNumber       string
	ClientName      string
	Status          string
	ScheduledStart  string
	ScheduledEnd    string
	DurationDays    int
	ProgressPercent int
	DepositPaid     bool
	QuoteTotal      float64
}

// JobExportData holds everything the jobs Excel export needs.
type JobExportData struct {
	CompanyName string
	ExportDate  string
	Rows        []JobExportRow
}

// GenerateJobsExcel creates an Excel workbook listing jobs and returns the
// file contents as a byte slice.
func GenerateJobsExcel(data JobExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Jobs"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through I).
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	lastCol := columns[len(columns)-1]

	widths := []float64{16, 28, 18, 14, 14, 10, 10, 12, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	// Row 1: title; row 2: export date.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.CompanyName)+" - Jobs")
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Exported: "+data.ExportDate)
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	// Row 4: column headers.
	headers := []string{
		"Job #", "Customer", "Status", "Start", "End",
		"Days", "Progress", "Deposit", "Quote Total",
	}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s4", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A4", lastCol+"4", headerStyle)

	// Data rows from row 5.
	row := 5
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)
		deposit := "Pending"
		if r.DepositPaid {
			deposit = "Paid"
		}

		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(r.JobNumber))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.ClientName))
		f.SetCellValue(sheetName, "C"+rowStr, JobStatusLabel(r.Status))
		f.SetCellValue(sheetName, "D"+rowStr, r.ScheduledStart)
		f.SetCellValue(sheetName, "E"+rowStr, r.ScheduledEnd)
		f.SetCellValue(sheetName, "F"+rowStr, r.DurationDays)
		f.SetCellValue(sheetName, "G"+rowStr, fmt.Sprintf("%d%%", r.ProgressPercent))
		f.SetCellValue(sheetName, "H"+rowStr, deposit)
		f.SetCellValue(sheetName, "I"+rowStr, FormatUSD(r.QuoteTotal))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, rowStyle)

		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders for all four cell sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
