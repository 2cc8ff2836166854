package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const billSeparator = "--------------------------------"

// RenderService turns a finished bill into its shareable representations:
// the fixed-format text message and a single-sheet workbook download.
type RenderService interface {
	TextBill(bill model.Bill) string
	WorkbookBill(bill model.Bill) ([]byte, error)
}

type renderService struct{}

func NewRenderService() RenderService {
	return &renderService{}
}

// TextBill renders the plain-text share format. The layout is fixed; clients
// paste it into messaging apps as-is.
func (s *renderService) TextBill(bill model.Bill) string {
	name := bill.Profile.Name
	if name == "" {
		name = "Restaurant"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🧾 Bill from %s\n", name)
	if bill.TableNumber != "" {
		fmt.Fprintf(&b, "Table: %s | ", bill.TableNumber)
	}
	fmt.Fprintf(&b, "Date: %s\n", bill.Date)
	b.WriteString(billSeparator + "\n")

	for _, item := range bill.Items {
		fmt.Fprintf(&b, "%s x%d - ₹%.2f\n", item.Name, item.Quantity, item.LineTotal)
	}

	b.WriteString(billSeparator + "\n")
	fmt.Fprintf(&b, "Subtotal: ₹%.2f\n", bill.Subtotal)
	fmt.Fprintf(&b, "Tax (%s%%): ₹%.2f\n", formatRate(bill.TaxRatePercent), bill.TaxAmount)
	fmt.Fprintf(&b, "Total: ₹%.2f\n", bill.GrandTotal)
	b.WriteString("\nThank you for dining with us! 🍽️")

	return b.String()
}

// WorkbookBill renders the bill as a single-sheet xlsx document: centered
// restaurant header block, bill metadata, item table, totals and footer.
func (s *renderService) WorkbookBill(bill model.Bill) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	row := 1

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	centerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	setCentered := func(value string, style int) {
		cell := fmt.Sprintf("A%d", row)
		f.MergeCell(sheet, cell, fmt.Sprintf("D%d", row))
		f.SetCellValue(sheet, cell, value)
		f.SetCellStyle(sheet, cell, cell, style)
		row++
	}

	// Restaurant header block
	name := bill.Profile.Name
	if name == "" {
		name = "Restaurant Name"
	}
	setCentered(name, headerStyle)
	if bill.Profile.Address != "" {
		setCentered(bill.Profile.Address, centerStyle)
	}
	if bill.Profile.Phone != "" {
		setCentered("Phone: "+bill.Profile.Phone, centerStyle)
	}
	if bill.Profile.TaxID != "" {
		setCentered("Tax ID: "+bill.Profile.TaxID, centerStyle)
	}
	row++

	// Bill metadata
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Date: "+bill.Date)
	if bill.TableNumber != "" {
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "Table: "+bill.TableNumber)
	}
	row++
	if bill.CustomerName != "" {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Customer: "+bill.CustomerName)
		row++
	}
	row++

	// Item table
	headerRow := row
	for i, title := range []string{"Item", "Qty", "Price", "Total"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, title)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}
	row++
	for _, item := range bill.Items {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), roundMoney(item.UnitPrice))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), roundMoney(item.LineTotal))
		row++
	}
	row++

	// Totals block
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Subtotal:")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), roundMoney(bill.Subtotal))
	row++
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("Tax (%s%%):", formatRate(bill.TaxRatePercent)))
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), roundMoney(bill.TaxAmount))
	row++
	grandCell := fmt.Sprintf("C%d", row)
	f.SetCellValue(sheet, grandCell, "Grand Total:")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), roundMoney(bill.GrandTotal))
	f.SetCellStyle(sheet, grandCell, fmt.Sprintf("D%d", row), boldStyle)
	row += 2

	setCentered("Thank you for dining with us!", centerStyle)

	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "D", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to render bill workbook", err, nil)
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatRate prints the rate the way it was entered: no trailing zeros.
func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// roundMoney rounds to two decimals for display cells; stored values stay
// unrounded.
func roundMoney(v float64) float64 {
	s := fmt.Sprintf("%.2f", v)
	out, _ := strconv.ParseFloat(s, 64)
	return out
}
