package weather

// CodeInfo is the display pair for a WMO weather interpretation code.
type CodeInfo struct {
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// CodeToInfo maps an Open-Meteo weather code to its icon and description.
// The ranges follow the provider's fixed WMO enumeration; unrecognized codes
// map to the unknown pair. Total: always returns a pair.
func CodeToInfo(code int) CodeInfo {
	switch {
	case code == 0:
		return CodeInfo{"☀️", "Clear sky"}
	case code >= 1 && code <= 3:
		return CodeInfo{"⛅", "Mainly clear"}
	case code >= 45 && code <= 48:
		return CodeInfo{"🌫️", "Fog"}
	case code >= 51 && code <= 55:
		return CodeInfo{"🌦️", "Drizzle"}
	case code >= 56 && code <= 57:
		return CodeInfo{"❄️🌧️", "Freezing drizzle"}
	case code >= 61 && code <= 65:
		return CodeInfo{"🌧️", "Rain"}
	case code >= 66 && code <= 67:
		return CodeInfo{"❄️🌧️", "Freezing rain"}
	case code >= 71 && code <= 77:
		return CodeInfo{"❄️", "Snow fall"}
	case code >= 80 && code <= 82:
		return CodeInfo{"🌩️🌧️", "Rain showers"}
	case code >= 85 && code <= 86:
		return CodeInfo{"🌩️❄️", "Snow showers"}
	case code >= 95 && code <= 99:
		return CodeInfo{"⛈️", "Thunderstorm"}
	default:
		return CodeInfo{"❓", "Unknown weather"}
	}
}
