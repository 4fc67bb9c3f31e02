package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Job document types served by the documents endpoints.
const (
	DocTypeWorkOrder      = "work_order"
	DocTypeDepositReceipt = "deposit_receipt"
	DocTypeJobSummary     = "job_summary"
)

// DocumentTypes lists the generatable document types.
var DocumentTypes = []string{DocTypeWorkOrder, DocTypeDepositReceipt, DocTypeJobSummary}

// IsValidDocumentType reports whether t is a known document type.
func IsValidDocumentType(t string) bool {
	for _, d := range DocumentTypes {
		if d == t {
			return true
		}
	}
	return false
}

// DocumentData holds everything the job document builders need.
type DocumentData struct {
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string

	JobNumber     string
	JobStatus     string
	ClientName    string
	ClientAddress string
	ScheduledFrom string
	ScheduledTo   string

	QuoteNumber   string
	QuoteTotal    float64
	DepositAmount float64
	DepositPaid   bool

	Progress      ProgressSummary
	GeneratedDate string
}

// GenerateJobDocument renders the requested document type to PDF bytes.
func GenerateJobDocument(docType string, data DocumentData) ([]byte, error) {
	if !IsValidDocumentType(docType) {
		return nil, fmt.Errorf("unknown document type %q", docType)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addDocumentHeader(m, documentTitle(docType), data)

	switch docType {
	case DocTypeWorkOrder:
		addWorkOrderBody(m, data)
	case DocTypeDepositReceipt:
		addDepositReceiptBody(m, data)
	case DocTypeJobSummary:
		addJobSummaryBody(m, data)
	}

	addDocumentFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func documentTitle(docType string) string {
	switch docType {
	case DocTypeWorkOrder:
		return "Work Order"
	case DocTypeDepositReceipt:
		return "Deposit Receipt"
	case DocTypeJobSummary:
		return "Job Summary"
	}
	return docType
}

// FormatUSD formats an amount as a dollar figure with thousands grouping
// and exactly two decimal places.
func FormatUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	raw := fmt.Sprintf("%.2f", amount)
	intPart := raw[:len(raw)-3]
	decPart := raw[len(raw)-2:]

	var grouped string
	for len(intPart) > 3 {
		grouped = "," + intPart[len(intPart)-3:] + grouped
		intPart = intPart[:len(intPart)-3]
	}
	grouped = intPart + grouped

	result := "$" + grouped + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// addDocumentHeader adds the company banner, document title and job line.
func addDocumentHeader(m core.Maroto, title string, data DocumentData) {
	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(
				text.New(data.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(5).Add(
				text.New(title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	subtle := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(6).Add(
			col.New(7).Add(
				text.New(data.CompanyAddress, props.Text{Size: 8, Align: align.Left, Color: subtle}),
			),
			col.New(5).Add(
				text.New(fmt.Sprintf("Job: %s", data.JobNumber), props.Text{Size: 9, Align: align.Right}),
			),
		),
		row.New(6).Add(
			col.New(7).Add(
				text.New(fmt.Sprintf("%s  ·  %s", data.CompanyPhone, data.CompanyEmail),
					props.Text{Size: 8, Align: align.Left, Color: subtle}),
			),
			col.New(5).Add(
				text.New(fmt.Sprintf("Date: %s", data.GeneratedDate),
					props.Text{Size: 8, Align: align.Right, Color: subtle}),
			),
		),
		row.New(4),
	)
}

// addClientBlock adds the customer name/address block shared by all types.
func addClientBlock(m core.Maroto, data DocumentData) {
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New("Customer", props.Text{Size: 8, Style: fontstyle.Bold}),
			),
		),
		row.New(5).Add(
			col.New(12).Add(
				text.New(data.ClientName, props.Text{Size: 9}),
			),
		),
		row.New(5).Add(
			col.New(12).Add(
				text.New(data.ClientAddress, props.Text{Size: 8,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80}}),
			),
		),
		row.New(4),
	)
}

// addItemsTable renders the derived progress items with their statuses.
func addItemsTable(m core.Maroto, items []ProgressItem, withStatus bool) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	unitWidth := 3
	if withStatus {
		unitWidth = 1
	}

	headerCols := []core.Col{
		col.New(5).Add(text.New("Item", headerText)).WithStyle(&headerCell),
		col.New(2).Add(text.New("Category", headerText)).WithStyle(&headerCell),
		col.New(2).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
		col.New(unitWidth).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
	}
	if withStatus {
		headerCols = append(headerCols,
			col.New(2).Add(text.New("Status", headerText)).WithStyle(&headerCell))
	}
	m.AddRows(row.New(7).Add(headerCols...))

	altBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	for i, item := range items {
		cellText := props.Text{Size: 8, Align: align.Left}
		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		colName := col.New(5).Add(text.New(item.Name, cellText))
		colCat := col.New(2).Add(text.New(item.Category, cellText))
		colQty := col.New(2).Add(text.New(formatQty(item.Quantity), cellText))
		colUnit := col.New(unitWidth).Add(text.New(item.Unit, cellText))

		cols := []core.Col{colName, colCat, colQty, colUnit}
		if withStatus {
			cols = append(cols, col.New(2).Add(text.New(AreaStatusLabel(item.Status), cellText)))
		}
		if cellStyle != nil {
			for j := range cols {
				cols[j] = cols[j].WithStyle(cellStyle)
			}
		}
		m.AddRows(row.New(6).Add(cols...))
	}
}

// addWorkOrderBody lists the scheduled window and the work items for crews.
func addWorkOrderBody(m core.Maroto, data DocumentData) {
	addClientBlock(m, data)

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Scheduled: %s – %s", data.ScheduledFrom, data.ScheduledTo),
					props.Text{Size: 9}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Status: %s", JobStatusLabel(data.JobStatus)),
					props.Text{Size: 9, Align: align.Right}),
			),
		),
		row.New(4),
	)

	addItemsTable(m, data.Progress.Items, false)
}

// addDepositReceiptBody confirms the amount received against the quote.
func addDepositReceiptBody(m core.Maroto, data DocumentData) {
	addClientBlock(m, data)

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	value := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(text.New(fmt.Sprintf("Quote %s total", data.QuoteNumber), label)).WithStyle(summaryCell),
			col.New(4).Add(text.New(FormatUSD(data.QuoteTotal), value)).WithStyle(summaryCell),
		),
		row.New(8).Add(
			col.New(8).Add(text.New("Deposit received", label)).WithStyle(summaryCell),
			col.New(4).Add(text.New(FormatUSD(data.DepositAmount), value)).WithStyle(summaryCell),
		),
		row.New(8).Add(
			col.New(8).Add(text.New("Balance due on completion", label)).WithStyle(summaryCell),
			col.New(4).Add(text.New(FormatUSD(data.QuoteTotal-data.DepositAmount), value)).WithStyle(summaryCell),
		),
	)
}

// addJobSummaryBody reports per-item progress plus the overall percentage.
func addJobSummaryBody(m core.Maroto, data DocumentData) {
	addClientBlock(m, data)

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Overall progress: %d%% (%d of %d items completed)",
					data.Progress.ProgressPercent, data.Progress.CompletedCount, data.Progress.TotalCount),
					props.Text{Size: 10, Style: fontstyle.Bold}),
			),
		),
		row.New(4),
	)

	addItemsTable(m, data.Progress.Items, true)
}

// addDocumentFooter adds the generated-by line.
func addDocumentFooter(m core.Maroto, data DocumentData) {
	m.AddRows(
		row.New(10),
		row.New(5).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Generated by %s on %s", data.CompanyName, data.GeneratedDate),
					props.Text{
						Size:  7,
						Align: align.Center,
						Color: &props.Color{Red: 150, Green: 150, Blue: 150},
					}),
			),
		),
	)
}

// formatQty renders whole quantities without decimals and fractional ones
// with two.
func formatQty(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.2f", q)
}
