package core

import "sort"

// Rank orders quotes by monthly premium ascending and returns the
// ordered slice plus the cheapest quote, or nil for an empty input.
//
// Quotes with equal monthly premiums keep their input order: the sort
// is stable by insertion order, so a comparison over an unchanged
// dataset always ranks identically.
func Rank(quotes []Quote) ([]Quote, *Quote) {
	ranked := make([]Quote, len(quotes))
	copy(ranked, quotes)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MonthlyPremium < ranked[j].MonthlyPremium
	})

	if len(ranked) == 0 {
		return ranked, nil
	}

	cheapest := ranked[0]
	return ranked, &cheapest
}
