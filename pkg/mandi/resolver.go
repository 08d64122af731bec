package mandi

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
)

// Resolver answers mandi price queries with a three-tier geographic
// fallback: exact district records, then district ranges within the
// state, then state ranges nationwide. The first tier with data wins.
type Resolver struct {
	client  *Client
	locator *Locator
	logger  *log.Logger
}

func NewResolver(client *Client, locator *Locator, logger *log.Logger) *Resolver {
	return &Resolver{
		client:  client,
		locator: locator,
		logger:  logger,
	}
}

// InternalErrorAnswer is returned when the price provider fails outright.
const InternalErrorAnswer = "Internal error while processing mandi prices."

// Search resolves the city to a state and district, fetches records for
// the crop, and formats the best-specificity answer available. Every
// failure mode resolves to answer text; the caller never sees an error.
func (r *Resolver) Search(ctx context.Context, city string, crop string) string {
	r.logger.Printf("INFO: mandi search for city: %s, crop: %s", city, crop)

	if strings.TrimSpace(city) == "" {
		return "Please tell me your city or district so I can look up nearby mandi prices."
	}
	if strings.TrimSpace(crop) == "" {
		return "Please tell me which crop you want mandi prices for."
	}

	state, district := r.locator.Locate(ctx, city)
	if state == LocationUnknown || district == LocationUnknown {
		return fmt.Sprintf("Could not determine state/district for '%s'.", city)
	}

	records, err := r.client.FetchRecords(ctx, crop)
	if err != nil {
		r.logger.Printf("ERROR: failed to fetch price records: %v", err)
		return InternalErrorAnswer
	}

	if len(records) == 0 {
		r.logger.Printf("WARN: no mandi data found for crop %q", crop)
		return r.listAvailableCrops(ctx)
	}

	return r.formatResponse(state, district, crop, records)
}

func (r *Resolver) formatResponse(state, district, crop string, records []Record) string {
	// District tier: exact records, no aggregation.
	districtRecords := filterRecords(records, func(rec Record) bool {
		return strings.EqualFold(rec.District, district)
	})
	if len(districtRecords) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "Found %s prices for %s, %s:\n\n", crop, district, state)
		for _, rec := range districtRecords {
			fmt.Fprintf(&b, "%s | %s: ₹%d - ₹%d per quintal (Modal: ₹%d per quintal)\n",
				rec.ArrivalDate, rec.Market, rec.MinPrice, rec.MaxPrice, rec.ModalPrice)
		}
		return b.String()
	}

	// State tier: price range per district in the same state.
	stateRecords := filterRecords(records, func(rec Record) bool {
		return strings.EqualFold(rec.State, state)
	})
	if len(stateRecords) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "No data for %s, %s. But found %s prices in other districts of %s:\n\n",
			district, state, crop, state)
		for _, d := range groupRanges(stateRecords, func(rec Record) string { return rec.District }) {
			fmt.Fprintf(&b, "%s: ₹%d - ₹%d per quintal\n", d.key, d.min, d.max)
		}
		return b.String()
	}

	// National tier: price range per state.
	var b strings.Builder
	fmt.Fprintf(&b, "No data for %s in %s. But found it in these states:\n\n", crop, state)
	for _, s := range groupRanges(records, func(rec Record) string { return rec.State }) {
		fmt.Fprintf(&b, "%s: ₹%d - ₹%d per quintal\n", s.key, s.min, s.max)
	}
	return b.String()
}

func (r *Resolver) listAvailableCrops(ctx context.Context) string {
	crops, err := r.client.ListCommodities(ctx)
	if err != nil {
		r.logger.Printf("ERROR: failed to list commodities: %v", err)
		return "Unable to fetch the crop list right now."
	}
	if len(crops) == 0 {
		return "No crop data available right now."
	}
	return "No data found for your crop. Available crops:\n\n" + strings.Join(crops, ", ")
}

func filterRecords(records []Record, keep func(Record) bool) []Record {
	var out []Record
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

type priceRange struct {
	key string
	min Price
	max Price
}

// groupRanges aggregates min/max prices per group key, sorted by key.
func groupRanges(records []Record, keyOf func(Record) string) []priceRange {
	byKey := make(map[string]*priceRange)
	for _, rec := range records {
		key := keyOf(rec)
		pr, ok := byKey[key]
		if !ok {
			byKey[key] = &priceRange{key: key, min: rec.MinPrice, max: rec.MaxPrice}
			continue
		}
		if rec.MinPrice < pr.min {
			pr.min = rec.MinPrice
		}
		if rec.MaxPrice > pr.max {
			pr.max = rec.MaxPrice
		}
	}

	out := make([]priceRange, 0, len(byKey))
	for _, pr := range byKey {
		out = append(out, *pr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}
