package artwork

import "sort"

// EraUnknown classifies dates without a leading 4-digit year
// (e.g. "19th century", "ca. 1850").
const EraUnknown = "unknown"

// EraOf extracts the leading 4-digit year token from a free-form object date.
// "1850" and "1850-1860" both yield "1850"; anything that does not start with
// four digits yields EraUnknown.
func EraOf(date string) string {
	if len(date) < 4 {
		return EraUnknown
	}
	for i := 0; i < 4; i++ {
		if date[i] < '0' || date[i] > '9' {
			return EraUnknown
		}
	}
	return date[:4]
}

// TopEras builds a frequency histogram of eras across the result set,
// keeping the n most frequent. Ties are broken by first occurrence: the
// stable sort preserves insertion order among equal counts.
func TopEras(records []Record, n int) []EraCount {
	counts := make(map[string]int)
	var order []string

	for _, r := range records {
		era := EraOf(r.Date)
		if counts[era] == 0 {
			order = append(order, era)
		}
		counts[era]++
	}

	histogram := make([]EraCount, 0, len(order))
	for _, era := range order {
		histogram = append(histogram, EraCount{Era: era, Count: counts[era]})
	}

	sort.SliceStable(histogram, func(i, j int) bool {
		return histogram[i].Count > histogram[j].Count
	})

	if len(histogram) > n {
		histogram = histogram[:n]
	}
	return histogram
}
