// Package export renders the sales register as CSV or XLSX. Every row's
// amounts are recomputed by the totals engine rather than read from the invoice.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradedesk/internal/domain"
	"tradedesk/internal/einvoice"
	"tradedesk/internal/gst"
)

// columns defines the register header row.
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"Buyer Name",
	"Buyer GSTIN",
	"Buyer State Code",
	"Work Order",
	"Line Item Count",
	"Tax Slab %",
	"Subtotal",
	"Discount",
	"Taxable Amount",
	"CGST",
	"SGST",
	"IGST",
	"TCS",
	"Total",
	"Supply Type",
}

// firstAmountCol is the index of "Subtotal"; columns from here on are money.
const firstAmountCol = 8

// Row is one invoice with freshly computed totals.
type Row struct {
	Invoice domain.SalesInvoice
	Totals  domain.DocumentTotals
}

// BuildRows computes totals for every invoice against the classifier's home state.
func BuildRows(invoices []domain.SalesInvoice, cls gst.Classifier) []Row {
	rows := make([]Row, 0, len(invoices))
	for i := range invoices {
		inv := invoices[i]
		rows = append(rows, Row{
			Invoice: inv,
			Totals:  cls.ComputeTotals(inv.Items, inv.Charges, inv.Buyer.GSTIN),
		})
	}
	return rows
}

// Summary sums the money columns across rows.
func Summary(rows []Row) domain.DocumentTotals {
	var s domain.DocumentTotals
	for _, r := range rows {
		t := r.Totals
		s.Subtotal = s.Subtotal.Add(t.Subtotal)
		s.DiscountAmount = s.DiscountAmount.Add(t.DiscountAmount)
		s.DiscountedSubtotal = s.DiscountedSubtotal.Add(t.DiscountedSubtotal)
		s.CGST = s.CGST.Add(t.CGST)
		s.SGST = s.SGST.Add(t.SGST)
		s.IGST = s.IGST.Add(t.IGST)
		s.TotalBeforeSurcharge = s.TotalBeforeSurcharge.Add(t.TotalBeforeSurcharge)
		s.TCS = s.TCS.Add(t.TCS)
		s.Total = s.Total.Add(t.Total)
	}
	return s
}

func (r *Row) cells() []string {
	inv := &r.Invoice
	t := &r.Totals
	state := inv.Buyer.StateCode
	if state == "" {
		state = gst.StateCode(inv.Buyer.GSTIN)
	}
	return []string{
		inv.Number,
		einvoice.FormatDate(inv.Date),
		inv.Buyer.Name,
		inv.Buyer.GSTIN,
		state,
		inv.WorkOrderID,
		strconv.Itoa(len(inv.Items)),
		t.TaxSlab.String(),
		formatMoney(t.Subtotal),
		formatMoney(t.DiscountAmount),
		formatMoney(t.DiscountedSubtotal),
		formatMoney(t.CGST),
		formatMoney(t.SGST),
		formatMoney(t.IGST),
		formatMoney(t.TCS),
		formatMoney(t.Total),
		supplyType(t.IsIntraState),
	}
}

func (r *Row) amounts() []decimal.Decimal {
	t := &r.Totals
	return []decimal.Decimal{
		t.Subtotal, t.DiscountAmount, t.DiscountedSubtotal,
		t.CGST, t.SGST, t.IGST, t.TCS, t.Total,
	}
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func supplyType(intra bool) string {
	if intra {
		return "Intra-state"
	}
	return "Inter-state"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename makes name safe for a Content-Disposition filename,
// truncated to 100 characters.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), ext)
}
