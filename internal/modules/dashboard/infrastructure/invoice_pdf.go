package infrastructure

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"storeAdmin/internal/modules/dashboard/application/port"
	orders "storeAdmin/internal/modules/orders/domain"
)

// InvoicePDF renders order invoices as A4 PDFs with the core Helvetica font.
type InvoicePDF struct {
	storeName string
	now       func() time.Time
}

func NewInvoicePDF(storeName string) *InvoicePDF {
	if storeName == "" {
		storeName = "Store Admin"
	}
	return &InvoicePDF{storeName: storeName, now: time.Now}
}

func (r *InvoicePDF) Render(order orders.Order, currency string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+order.ID, false)
	pdf.SetCreator(r.storeName, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	money := func(value float64) string { return tr(fmt.Sprintf("%s%.2f", currency, value)) }
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Invoice No : INV-"+tr(order.ID))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Order date : "+dateOrDash(order.Date))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Issued     : "+r.now().Format("2006-01-02 15:04"))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Status     : "+order.Status.Label())
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Bill to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{order.Customer.Name, order.Customer.Email, order.Customer.Phone, order.Shipping.Address} {
		if line == "" {
			continue
		}
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "SKU", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		pdf.CellFormat(90, 7, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, tr(item.SKU), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, money(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, money(item.Price*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(165, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, money(order.Subtotal()), "", 1, "R", false, 0, "")
	pdf.CellFormat(165, 7, "Shipping ("+tr(order.Shipping.Carrier)+")", "", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, money(order.Shipping.Cost), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(165, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(25, 8, money(order.Total), "", 1, "R", false, 0, "")

	if order.Shipping.Tracking != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, tr("Tracking number: "+order.Shipping.Tracking), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", order.ID, err)
	}
	return buf.Bytes(), nil
}

func dateOrDash(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02")
}

var _ port.InvoiceRenderer = (*InvoicePDF)(nil)
