package services

import (
	"math"
	"sort"
	"strings"
)

// Pricing scheme types as stored on quotes and pricing_schemes.
const (
	SchemeFlatRateUnit = "flat_rate_unit"
	SchemeTurnkey      = "turnkey"
	SchemeSqftTurnkey  = "sqft_turnkey"
	SchemeProduction   = "production"
	SchemeHourly       = "hourly"
)

// PricingSchemeTypes lists the supported scheme types for quotes.
var PricingSchemeTypes = []string{
	SchemeFlatRateUnit,
	SchemeTurnkey,
	SchemeSqftTurnkey,
	SchemeProduction,
	SchemeHourly,
}

// IsValidSchemeType reports whether t is a supported pricing scheme type.
func IsValidSchemeType(t string) bool {
	for _, s := range PricingSchemeTypes {
		if s == t {
			return true
		}
	}
	return false
}

// QuoteArea is one production-priced area on a quote.
type QuoteArea struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	SurfaceType string  `json:"surfaceType"`
	SquareFeet  float64 `json:"squareFeet"`
}

// FlatRateItems maps item keys to quantities, split by category.
type FlatRateItems struct {
	Interior map[string]float64 `json:"interior"`
	Exterior map[string]float64 `json:"exterior"`
}

// BreakdownRow is one line of a quote's raw pricing breakdown, used to
// reconstruct flat-rate items when the structured map is absent.
type BreakdownRow struct {
	Category string  `json:"category"`
	ItemKey  string  `json:"itemKey"`
	Quantity float64 `json:"quantity"`
}

// QuoteShape is the subset of a quote the progress projection reads.
// Exactly one of FlatRateItems/Breakdown or Areas is meaningful depending
// on SchemeType.
type QuoteShape struct {
	SchemeType    string
	Areas         []QuoteArea
	FlatRateItems FlatRateItems
	Breakdown     []BreakdownRow
}

// AreaProgressEntry records the work status of one trackable item.
type AreaProgressEntry struct {
	Status  string `json:"status"`
	Updated string `json:"updated"`
}

// ProgressItem is one trackable unit of work derived from a quote.
type ProgressItem struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Status   string  `json:"status"`
	AreaID   string  `json:"areaId,omitempty"`
}

// ProgressSummary is the normalized projection of a job's trackable items.
type ProgressSummary struct {
	Items           []ProgressItem `json:"items"`
	CompletedCount  int            `json:"completedCount"`
	TotalCount      int            `json:"totalCount"`
	ProgressPercent int            `json:"progressPercent"`
	HasItems        bool           `json:"hasItems"`
}

// flatRateItemNames maps raw flat-rate item keys to display names.
// Unknown keys fall back to the raw key.
var flatRateItemNames = map[string]string{
	"doors":        "Doors",
	"door_frames":  "Door Frames",
	"windows":      "Windows",
	"window_trim":  "Window Trim",
	"cabinets":     "Cabinet Sets",
	"closets":      "Closets",
	"accent_walls": "Accent Walls",
	"ceilings":     "Ceilings",
	"baseboards":   "Baseboards",
	"crown_mould":  "Crown Moulding",
	"shutters":     "Shutters",
	"garage_doors": "Garage Doors",
	"fences":       "Fence Sections",
	"decks":        "Decks",
}

// FlatRateItemName resolves the display name for a flat-rate item key.
func FlatRateItemName(key string) string {
	if name, ok := flatRateItemNames[key]; ok {
		return name
	}
	return key
}

// ReconstructFlatRateItems rebuilds the interior/exterior quantity maps
// from raw breakdown rows. Categories are matched case-insensitively
// against "interior"/"exterior"; rows with any other (or missing) category
// default to interior. Quantities for repeated keys are summed.
func ReconstructFlatRateItems(breakdown []BreakdownRow) FlatRateItems {
	items := FlatRateItems{
		Interior: map[string]float64{},
		Exterior: map[string]float64{},
	}
	for _, row := range breakdown {
		if row.ItemKey == "" {
			continue
		}
		category := strings.ToLower(strings.TrimSpace(row.Category))
		if category == "exterior" {
			items.Exterior[row.ItemKey] += row.Quantity
		} else {
			items.Interior[row.ItemKey] += row.Quantity
		}
	}
	return items
}

// DeriveProgressItems projects a quote into a uniform list of trackable
// items plus completion counts, independent of which pricing scheme shaped
// the quote. Pure; the caller supplies the job's area_progress map.
func DeriveProgressItems(quote QuoteShape, progress map[string]AreaProgressEntry) ProgressSummary {
	var items []ProgressItem

	switch quote.SchemeType {
	case SchemeFlatRateUnit:
		items = flatRateProgressItems(quote)
	case SchemeTurnkey, SchemeSqftTurnkey:
		items = turnkeyProgressItems()
	default:
		items = areaProgressItems(quote)
	}

	completed := 0
	for i := range items {
		status := AreaStatusNotStarted
		if entry, ok := progress[items[i].Key]; ok && entry.Status != "" {
			status = entry.Status
		}
		items[i].Status = status
		if status == AreaStatusCompleted {
			completed++
		}
	}

	summary := ProgressSummary{
		Items:          items,
		CompletedCount: completed,
		TotalCount:     len(items),
		HasItems:       len(items) > 0,
	}
	summary.ProgressPercent = ProgressPercent(completed, len(items))
	return summary
}

// flatRateProgressItems emits one item per nonzero-quantity flat-rate key,
// reconstructing the maps from the breakdown when both are empty.
func flatRateProgressItems(quote QuoteShape) []ProgressItem {
	flat := quote.FlatRateItems
	if len(flat.Interior) == 0 && len(flat.Exterior) == 0 && len(quote.Breakdown) > 0 {
		flat = ReconstructFlatRateItems(quote.Breakdown)
	}

	var items []ProgressItem
	for _, category := range []string{"interior", "exterior"} {
		source := flat.Interior
		if category == "exterior" {
			source = flat.Exterior
		}
		for _, key := range sortedKeys(source) {
			qty := source[key]
			if qty <= 0 {
				continue
			}
			items = append(items, ProgressItem{
				Key:      category + "_" + key,
				Name:     FlatRateItemName(key),
				Category: category,
				Quantity: qty,
				Unit:     "unit",
			})
		}
	}
	return items
}

// turnkeyProgressItems emits the single whole-house item turnkey schemes
// track against.
func turnkeyProgressItems() []ProgressItem {
	return []ProgressItem{{
		Key:      "whole_house",
		Name:     "Whole House",
		Category: "turnkey",
		Quantity: 1,
		Unit:     "project",
	}}
}

// areaProgressItems emits one item per quoted area for production pricing.
func areaProgressItems(quote QuoteShape) []ProgressItem {
	var items []ProgressItem
	for _, area := range quote.Areas {
		if area.ID == "" {
			continue
		}
		name := area.Name
		if name == "" {
			name = area.SurfaceType
		}
		items = append(items, ProgressItem{
			Key:      area.ID,
			Name:     name,
			Category: "area",
			Quantity: area.SquareFeet,
			Unit:     "sqft",
			AreaID:   area.ID,
		})
	}
	return items
}

// ProgressPercent computes round(100*completed/total), or 0 when total is
// zero. The result is always within [0,100].
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(completed) / float64(total)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
