package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToInfo(t *testing.T) {
	cases := []struct {
		code int
		want CodeInfo
	}{
		{0, CodeInfo{"☀️", "Clear sky"}},
		{1, CodeInfo{"⛅", "Mainly clear"}},
		{3, CodeInfo{"⛅", "Mainly clear"}},
		{45, CodeInfo{"🌫️", "Fog"}},
		{48, CodeInfo{"🌫️", "Fog"}},
		{51, CodeInfo{"🌦️", "Drizzle"}},
		{55, CodeInfo{"🌦️", "Drizzle"}},
		{56, CodeInfo{"❄️🌧️", "Freezing drizzle"}},
		{57, CodeInfo{"❄️🌧️", "Freezing drizzle"}},
		{61, CodeInfo{"🌧️", "Rain"}},
		{65, CodeInfo{"🌧️", "Rain"}},
		{66, CodeInfo{"❄️🌧️", "Freezing rain"}},
		{67, CodeInfo{"❄️🌧️", "Freezing rain"}},
		{71, CodeInfo{"❄️", "Snow fall"}},
		{77, CodeInfo{"❄️", "Snow fall"}},
		{80, CodeInfo{"🌩️🌧️", "Rain showers"}},
		{82, CodeInfo{"🌩️🌧️", "Rain showers"}},
		{85, CodeInfo{"🌩️❄️", "Snow showers"}},
		{86, CodeInfo{"🌩️❄️", "Snow showers"}},
		{95, CodeInfo{"⛈️", "Thunderstorm"}},
		{99, CodeInfo{"⛈️", "Thunderstorm"}},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CodeToInfo(tc.code), "code %d", tc.code)
	}
}

// Codes outside every defined range map to the unknown pair; the function is
// total and never fails.
func TestCodeToInfoUnknown(t *testing.T) {
	unknown := CodeInfo{"❓", "Unknown weather"}
	for _, code := range []int{-1, 4, 44, 49, 50, 58, 60, 68, 70, 78, 79, 83, 84, 87, 94, 100, 200} {
		assert.Equal(t, unknown, CodeToInfo(code), "code %d", code)
	}
}
