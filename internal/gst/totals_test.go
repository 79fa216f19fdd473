package gst_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/domain"
	"tradedesk/internal/gst"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

func item(qty, price string) domain.LineItem {
	return domain.LineItem{ItemID: "X", Name: "Widget", Quantity: d(qty), UnitPrice: d(price), Unit: "NOS"}
}

func charges(discount, slab, tcs string) domain.ChargeParameters {
	return domain.ChargeParameters{
		DiscountPercent: d(discount),
		TaxSlabPercent:  d(slab),
		TCSPercent:      d(tcs),
	}
}

const (
	gujaratGSTIN     = "24AAACB1234C1Z5"
	maharashtraGSTIN = "27AAACB1234C1Z5"
)

func TestComputeTotals_IntraStateWithDiscount(t *testing.T) {
	got := gst.ComputeTotals([]domain.LineItem{item("10", "100")}, charges("10", "18", "0"), gujaratGSTIN)

	assertDec(t, "1000", got.Subtotal, "subtotal")
	assertDec(t, "100", got.DiscountAmount, "discount")
	assertDec(t, "900", got.DiscountedSubtotal, "discounted")
	assertDec(t, "81", got.CGST, "cgst")
	assertDec(t, "81", got.SGST, "sgst")
	assertDec(t, "0", got.IGST, "igst")
	assertDec(t, "1062", got.TotalBeforeSurcharge, "before surcharge")
	assertDec(t, "0", got.TCS, "tcs")
	assertDec(t, "1062", got.Total, "total")
	assert.True(t, got.IsIntraState)
	assertDec(t, "18", got.TaxSlab, "slab")
}

func TestComputeTotals_InterStateSameTotalDifferentSplit(t *testing.T) {
	got := gst.ComputeTotals([]domain.LineItem{item("10", "100")}, charges("10", "18", "0"), maharashtraGSTIN)

	assertDec(t, "162", got.IGST, "igst")
	assertDec(t, "0", got.CGST, "cgst")
	assertDec(t, "0", got.SGST, "sgst")
	assertDec(t, "1062", got.Total, "total")
	assert.False(t, got.IsIntraState)
}

func TestComputeTotals_TCSOnTaxInclusiveAmount(t *testing.T) {
	got := gst.ComputeTotals([]domain.LineItem{item("10", "100")}, charges("10", "18", "1"), gujaratGSTIN)

	assertDec(t, "1062", got.TotalBeforeSurcharge, "before surcharge")
	assertDec(t, "10.62", got.TCS, "tcs")
	assertDec(t, "1072.62", got.Total, "total")
}

func TestComputeTotals_RoundsEachStep(t *testing.T) {
	// subtotal 100.005 is kept unrounded; the discounted subtotal rounds it half-up to 100.01
	// and every later step works from that rounded value.
	got := gst.ComputeTotals([]domain.LineItem{item("1", "100.005")}, charges("0", "18", "1"), gujaratGSTIN)

	assertDec(t, "100.005", got.Subtotal, "subtotal")
	assertDec(t, "0", got.DiscountAmount, "discount")
	assertDec(t, "100.01", got.DiscountedSubtotal, "discounted")
	assertDec(t, "9", got.CGST, "cgst") // 100.01 * 9% = 9.0009
	assertDec(t, "9", got.SGST, "sgst")
	assertDec(t, "118.01", got.TotalBeforeSurcharge, "before surcharge")
	assertDec(t, "1.18", got.TCS, "tcs") // 118.01 * 1% = 1.1801
	assertDec(t, "119.19", got.Total, "total")
}

func TestComputeTotals_DiscountRoundedBeforeSubtraction(t *testing.T) {
	// 3 x 33.33 = 99.99; 7.5% discount = 7.49925 -> 7.50; discounted 92.49
	got := gst.ComputeTotals([]domain.LineItem{item("3", "33.33")}, charges("7.5", "5", "0"), maharashtraGSTIN)

	assertDec(t, "99.99", got.Subtotal, "subtotal")
	assertDec(t, "7.5", got.DiscountAmount, "discount")
	assertDec(t, "92.49", got.DiscountedSubtotal, "discounted")
	assertDec(t, "4.62", got.IGST, "igst") // 4.6245 -> 4.62
	assertDec(t, "97.11", got.Total, "total")
}

func TestComputeTotals_SubtotalIsExactSum(t *testing.T) {
	items := []domain.LineItem{
		item("2.5", "19.99"),
		item("0.333", "7.77"),
		item("12", "0.015"),
	}
	got := gst.ComputeTotals(items, charges("0", "12", "0"), gujaratGSTIN)

	// 49.975 + 2.58741 + 0.18
	assertDec(t, "52.74241", got.Subtotal, "subtotal")
	assertDec(t, "52.74", got.DiscountedSubtotal, "discounted")
}

func TestComputeTotals_EmptyItems(t *testing.T) {
	got := gst.ComputeTotals(nil, charges("10", "18", "1"), gujaratGSTIN)

	for name, v := range map[string]decimal.Decimal{
		"subtotal": got.Subtotal, "discount": got.DiscountAmount, "discounted": got.DiscountedSubtotal,
		"cgst": got.CGST, "sgst": got.SGST, "igst": got.IGST, "tcs": got.TCS, "total": got.Total,
	} {
		assertDec(t, "0", v, name)
	}
}

func TestComputeTotals_ZeroCharges(t *testing.T) {
	got := gst.ComputeTotals([]domain.LineItem{item("4", "25")}, domain.ChargeParameters{}, "")

	assertDec(t, "100", got.Subtotal, "subtotal")
	assertDec(t, "0", got.IGST, "igst")
	assertDec(t, "100", got.Total, "total")
	assert.False(t, got.IsIntraState)
}

func TestComputeTotals_SlabNotRevalidated(t *testing.T) {
	got := gst.ComputeTotals([]domain.LineItem{item("1", "100")}, charges("0", "7", "0"), maharashtraGSTIN)
	assertDec(t, "7", got.IGST, "igst")
}

func TestComputeTotals_LowestSlab(t *testing.T) {
	got := gst.ComputeTotals([]domain.LineItem{item("1", "1000")}, charges("0", "0.1", "0"), gujaratGSTIN)
	assertDec(t, "0.5", got.CGST, "cgst")
	assertDec(t, "0.5", got.SGST, "sgst")
	assertDec(t, "1001", got.Total, "total")
}

func TestComputeTotals_TaxSplitIsExclusive(t *testing.T) {
	cases := []struct {
		gstin string
		items []domain.LineItem
	}{
		{gujaratGSTIN, []domain.LineItem{item("1", "10")}},
		{maharashtraGSTIN, []domain.LineItem{item("1", "10")}},
		{"", []domain.LineItem{item("3", "9.99")}},
		{gujaratGSTIN, nil},
		{"2", []domain.LineItem{item("1", "1")}},
	}
	for _, tc := range cases {
		got := gst.ComputeTotals(tc.items, charges("5", "28", "0.5"), tc.gstin)
		split := got.CGST.IsPositive() && got.SGST.IsPositive() && got.IGST.IsZero()
		integrated := got.CGST.IsZero() && got.SGST.IsZero() && got.IGST.IsPositive()
		none := got.CGST.IsZero() && got.SGST.IsZero() && got.IGST.IsZero() && got.Subtotal.IsZero()
		assert.Truef(t, split || integrated || none, "mixed tax split for gstin %q: %+v", tc.gstin, got)
	}
}

func TestComputeTotals_StepIdentities(t *testing.T) {
	got := gst.ComputeTotals([]domain.LineItem{item("7", "13.37"), item("2", "0.49")}, charges("3.3", "12", "0.75"), gujaratGSTIN)

	assert.True(t, got.TotalBeforeSurcharge.Equal(gst.Round2(got.DiscountedSubtotal.Add(got.CGST).Add(got.SGST).Add(got.IGST))))
	assert.True(t, got.Total.Equal(gst.Round2(got.TotalBeforeSurcharge.Add(got.TCS))))
}

func TestComputeTotals_Idempotent(t *testing.T) {
	items := []domain.LineItem{item("10", "100"), item("3", "33.335")}
	c := charges("12.5", "18", "1")

	first, err := json.Marshal(gst.ComputeTotals(items, c, gujaratGSTIN))
	require.NoError(t, err)
	second, err := json.Marshal(gst.ComputeTotals(items, c, gujaratGSTIN))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestClassifier_CustomHomeState(t *testing.T) {
	c := gst.NewClassifier("27")
	got := c.ComputeTotals([]domain.LineItem{item("10", "100")}, charges("10", "18", "0"), maharashtraGSTIN)
	assert.True(t, got.IsIntraState)
	assertDec(t, "81", got.CGST, "cgst")
}

func TestIsAllowedSlab(t *testing.T) {
	for _, s := range []string{"0.1", "5", "12", "18", "28", "18.00"} {
		assert.Truef(t, gst.IsAllowedSlab(d(s)), "slab %s", s)
	}
	for _, s := range []string{"0", "1", "3", "7.5", "40"} {
		assert.Falsef(t, gst.IsAllowedSlab(d(s)), "slab %s", s)
	}
}
