package gst

import (
	"github.com/shopspring/decimal"

	"tradedesk/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Subtotal sums quantity * unit price over items without rounding.
func Subtotal(items []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for i := range items {
		sum = sum.Add(items[i].Amount())
	}
	return sum
}

// ComputeTotals computes document totals using the default home state.
func ComputeTotals(items []domain.LineItem, charges domain.ChargeParameters, counterpartyGSTIN string) domain.DocumentTotals {
	return NewClassifier(HomeStateCode).ComputeTotals(items, charges, counterpartyGSTIN)
}

// ComputeTotals derives DocumentTotals. Each step is rounded where it is produced,
// so intermediate values are part of the contract:
//
//	subtotal -> discount -> discounted subtotal -> CGST/SGST or IGST
//	-> total before surcharge -> TCS on the tax-inclusive amount -> total
//
// The slab is not re-validated here; callers reject unknown slabs beforehand.
func (c Classifier) ComputeTotals(items []domain.LineItem, charges domain.ChargeParameters, counterpartyGSTIN string) domain.DocumentTotals {
	subtotal := Subtotal(items)
	discountAmount := Round2(subtotal.Mul(charges.DiscountPercent).Div(hundred))
	discounted := Round2(subtotal.Sub(discountAmount))

	intra := c.IsIntraState(counterpartyGSTIN)
	cgst, sgst, igst := decimal.Zero, decimal.Zero, decimal.Zero
	if intra {
		cgst = Round2(discounted.Mul(charges.TaxSlabPercent).Div(two).Div(hundred))
		sgst = cgst
	} else {
		igst = Round2(discounted.Mul(charges.TaxSlabPercent).Div(hundred))
	}

	beforeSurcharge := Round2(discounted.Add(cgst).Add(sgst).Add(igst))
	tcs := Round2(beforeSurcharge.Mul(charges.TCSPercent).Div(hundred))

	return domain.DocumentTotals{
		Subtotal:             subtotal,
		DiscountAmount:       discountAmount,
		DiscountedSubtotal:   discounted,
		CGST:                 cgst,
		SGST:                 sgst,
		IGST:                 igst,
		TotalBeforeSurcharge: beforeSurcharge,
		TCS:                  tcs,
		Total:                Round2(beforeSurcharge.Add(tcs)),
		IsIntraState:         intra,
		TaxSlab:              charges.TaxSlabPercent,
	}
}
