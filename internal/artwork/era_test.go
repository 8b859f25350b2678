package artwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEraOf(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"1850", "1850"},
		{"1850-1860", "1850"},
		{"1905, reworked 1910", "1905"},
		{"19th century", EraUnknown},
		{"ca. 1850", EraUnknown},
		{"", EraUnknown},
		{"185", EraUnknown},
		{"Unknown", EraUnknown},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, EraOf(tc.date), "EraOf(%q)", tc.date)
	}
}

func TestTopEras(t *testing.T) {
	records := []Record{
		{Date: "1850-1860"},
		{Date: "1700"},
		{Date: "1850"},
		{Date: "19th century"},
		{Date: "1700s"},
		{Date: "1850, restored"},
	}

	got := TopEras(records, 10)
	assert.Equal(t, []EraCount{
		{Era: "1850", Count: 3},
		{Era: "1700", Count: 2},
		{Era: EraUnknown, Count: 1},
	}, got)
}

// Equal counts keep their first-occurrence order.
func TestTopErasTieOrder(t *testing.T) {
	records := []Record{
		{Date: "1900"},
		{Date: "1800"},
		{Date: "1900"},
		{Date: "1800"},
	}

	got := TopEras(records, 10)
	assert.Equal(t, []EraCount{
		{Era: "1900", Count: 2},
		{Era: "1800", Count: 2},
	}, got)
}

func TestTopErasTruncates(t *testing.T) {
	var records []Record
	for _, year := range []string{"1900", "1901", "1902", "1903"} {
		records = append(records, Record{Date: year})
	}

	got := TopEras(records, 2)
	assert.Len(t, got, 2)
}
