package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tradedesk/internal/domain"
	"tradedesk/internal/export"
	"tradedesk/internal/gst"
)

func invoices() []domain.SalesInvoice {
	items := []domain.LineItem{{ItemID: "X", Name: "Gear Box", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100)}}
	charges := domain.ChargeParameters{DiscountPercent: decimal.NewFromInt(10), TaxSlabPercent: decimal.NewFromInt(18)}
	return []domain.SalesInvoice{
		{
			ID: "SI-1", Number: "SI/001", Date: "2024-06-15", WorkOrderID: "WO-1",
			Buyer:   domain.Party{Name: "Patel Traders", GSTIN: "24BBBCP5678B1Z3"},
			Items:   items,
			Charges: charges,
			Totals:  &domain.DocumentTotals{Total: decimal.NewFromInt(1)},
		},
		{
			ID: "SI-2", Number: "SI/002", Date: "2024-06-16",
			Buyer:   domain.Party{Name: "Mehta Steel", GSTIN: "27CCCCM9012C1Z1"},
			Items:   items,
			Charges: charges,
		},
	}
}

func TestBuildRows_RecomputesTotals(t *testing.T) {
	rows := export.BuildRows(invoices(), gst.NewClassifier("24"))

	require.Len(t, rows, 2)
	assert.True(t, decimal.NewFromInt(1062).Equal(rows[0].Totals.Total))
	assert.True(t, decimal.NewFromInt(81).Equal(rows[0].Totals.CGST))
	assert.True(t, decimal.NewFromInt(162).Equal(rows[1].Totals.IGST))

	sum := export.Summary(rows)
	assert.True(t, decimal.NewFromInt(2124).Equal(sum.Total))
	assert.True(t, decimal.NewFromInt(1800).Equal(sum.DiscountedSubtotal))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, export.BuildRows(invoices(), gst.NewClassifier("24"))))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, export.BOM))

	records, err := csv.NewReader(bytes.NewReader(raw[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Len(t, header, 17)
	assert.Equal(t, "Invoice Number", header[0])
	assert.Equal(t, "Supply Type", header[16])

	first := records[1]
	assert.Equal(t, "SI/001", first[0])
	assert.Equal(t, "15/06/2024", first[1])
	assert.Equal(t, "24", first[4])
	assert.Equal(t, "WO-1", first[5])
	assert.Equal(t, "1", first[6])
	assert.Equal(t, "18", first[7])
	assert.Equal(t, "1000.00", first[8])
	assert.Equal(t, "100.00", first[9])
	assert.Equal(t, "900.00", first[10])
	assert.Equal(t, "81.00", first[11])
	assert.Equal(t, "0.00", first[13])
	assert.Equal(t, "1062.00", first[15])
	assert.Equal(t, "Intra-state", first[16])

	assert.Equal(t, "162.00", records[2][13])
	assert.Equal(t, "Inter-state", records[2][16])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, export.BuildRows(invoices(), gst.NewClassifier("24"))))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	raw := excelize.Options{RawCellValue: true}
	get := func(cell string) string {
		v, err := f.GetCellValue("Sales Register", cell, raw)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Invoice Number", get("A1"))
	assert.Equal(t, "SI/001", get("A2"))
	assert.Equal(t, "1062", get("P2"))
	assert.Equal(t, "162", get("N3"))
	assert.Equal(t, "Inter-state", get("Q3"))
	assert.Equal(t, "Total", get("A4"))
	assert.Equal(t, "2124", get("P4"))
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, nil))
	assert.NotZero(t, buf.Len())
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "sales_register_2024-06-15.xlsx", export.BuildFilename("sales register", "xlsx", now))
	assert.Equal(t, "SI_24-25_0042_2024-06-15.json", export.BuildFilename("SI/24-25/0042", "json", now))
	assert.Equal(t, "a_b", export.SanitizeFilename("__a!!!b__"))
}
