// Package gst holds the GST tax slab table, the intra/inter-state classifier,
// and the canonical document totals calculator shared by every document flow.
package gst

import "github.com/shopspring/decimal"

// AllowedSlabs is the fixed set of GST slab percentages.
var AllowedSlabs = []decimal.Decimal{
	decimal.RequireFromString("0.1"),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// IsAllowedSlab reports whether p is one of AllowedSlabs.
func IsAllowedSlab(p decimal.Decimal) bool {
	for _, s := range AllowedSlabs {
		if s.Equal(p) {
			return true
		}
	}
	return false
}
