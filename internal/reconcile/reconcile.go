// Package reconcile computes how much of a source document (work order or
// defective-find record) is still available after its consumption records.
package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"tradedesk/internal/domain"
)

// Remaining maps an item key to the quantity not yet consumed.
// Values below zero mean the source was over-consumed and are never clamped.
type Remaining map[string]decimal.Decimal

// Get returns the remaining quantity for key, zero when absent.
func (r Remaining) Get(key string) decimal.Decimal {
	if v, ok := r[key]; ok {
		return v
	}
	return decimal.Zero
}

// AvailableItem is a source line offered for a new consumption record.
type AvailableItem struct {
	domain.LineItem
	Key         string          `json:"key"`
	MaxQuantity decimal.Decimal `json:"max_quantity"`
}

// LegacyLine is a line that has no item id and was matched by name.
type LegacyLine struct {
	DocumentID string `json:"document_id"`
	Line       int    `json:"line"`
	Name       string `json:"name"`
}

const legacyPrefix = "name:"

// ItemKey returns the matching key for a line: its item id, or the exact name
// for legacy lines that predate item ids.
func ItemKey(li domain.LineItem) string {
	if li.ItemID != "" {
		return li.ItemID
	}
	return legacyPrefix + li.Name
}

// Matching returns the consumption records that reference source.
func Matching(source domain.SourceDocument, consumptions []domain.ConsumptionRecord) []domain.ConsumptionRecord {
	out := make([]domain.ConsumptionRecord, 0, len(consumptions))
	for i := range consumptions {
		if consumptions[i].SourceID == source.ID {
			out = append(out, consumptions[i])
		}
	}
	return out
}

// RemainingQuantities seeds every source line with its original quantity and
// subtracts each line of every consumption record that references the source.
func RemainingQuantities(source domain.SourceDocument, consumptions []domain.ConsumptionRecord) Remaining {
	remaining := make(Remaining, len(source.Items))
	for _, li := range source.Items {
		key := ItemKey(li)
		remaining[key] = remaining.Get(key).Add(li.Quantity)
	}
	for _, rec := range Matching(source, consumptions) {
		for _, li := range rec.Items {
			key := ItemKey(li)
			remaining[key] = remaining.Get(key).Sub(li.Quantity)
		}
	}
	return remaining
}

// AvailableLineItems returns source lines with a positive remaining quantity, in
// source order, one per item key.
func AvailableLineItems(source domain.SourceDocument, consumptions []domain.ConsumptionRecord) []AvailableItem {
	remaining := RemainingQuantities(source, consumptions)
	seen := make(map[string]bool, len(source.Items))
	out := make([]AvailableItem, 0, len(source.Items))
	for _, li := range source.Items {
		key := ItemKey(li)
		if seen[key] {
			continue
		}
		seen[key] = true
		left := remaining.Get(key)
		if !left.IsPositive() {
			continue
		}
		out = append(out, AvailableItem{LineItem: li, Key: key, MaxQuantity: left})
	}
	return out
}

// Negative returns the sorted keys whose remaining quantity is below zero.
func Negative(remaining Remaining) []string {
	var keys []string
	for k, v := range remaining {
		if v.IsNegative() {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// LegacyLines lists source and matching consumption lines that lack an item id.
func LegacyLines(source domain.SourceDocument, consumptions []domain.ConsumptionRecord) []LegacyLine {
	var out []LegacyLine
	collect := func(docID string, items []domain.LineItem) {
		for i, li := range items {
			if li.ItemID == "" {
				out = append(out, LegacyLine{DocumentID: docID, Line: i, Name: li.Name})
			}
		}
	}
	collect(source.ID, source.Items)
	for _, rec := range Matching(source, consumptions) {
		collect(rec.ID, rec.Items)
	}
	return out
}
