package config

import "sort"

// Country holds the per-country provider registry and map defaults.
type Country struct {
	Code      string   `yaml:"code"`
	Name      string   `yaml:"name"`
	CenterLat float64  `yaml:"center_lat"`
	CenterLon float64  `yaml:"center_lon"`
	Providers []string `yaml:"providers"`
}

// countries is the built-in LATAM registry. Unknown provider names are
// always accepted by validation; this list only drives tagging and
// reporting.
var countries = map[string]Country{
	"BR": {
		Code:      "BR",
		Name:      "Brazil",
		CenterLat: -15.7801,
		CenterLon: -47.9292,
		Providers: []string{"Starlink", "Vivo", "Claro", "TIM", "Oi", "Viasat", "HughesNet", "Various", "Unknown"},
	},
	"AR": {
		Code:      "AR",
		Name:      "Argentina",
		CenterLat: -34.6037,
		CenterLon: -58.3816,
		Providers: []string{"Starlink", "Telecom Argentina", "Claro", "Movistar", "Personal", "HughesNet", "Various", "Unknown"},
	},
	"CL": {
		Code:      "CL",
		Name:      "Chile",
		CenterLat: -33.4489,
		CenterLon: -70.6693,
		Providers: []string{"Starlink", "Entel", "Movistar", "Claro", "WOM", "HughesNet", "Various", "Unknown"},
	},
	"CO": {
		Code:      "CO",
		Name:      "Colombia",
		CenterLat: 4.711,
		CenterLon: -74.0721,
		Providers: []string{"Starlink", "Claro", "Movistar", "Tigo", "ETB", "HughesNet", "Various", "Unknown"},
	},
	"MX": {
		Code:      "MX",
		Name:      "Mexico",
		CenterLat: 19.4326,
		CenterLon: -99.1332,
		Providers: []string{"Starlink", "Telmex", "Telcel", "AT&T Mexico", "Movistar", "Viasat", "HughesNet", "Various", "Unknown"},
	},
}

// CountryByCode looks up a country configuration; the second return is
// false for unsupported codes.
func CountryByCode(code string) (Country, bool) {
	c, ok := countries[code]
	return c, ok
}

// SupportedCountries lists the registered country codes in stable order.
func SupportedCountries() []string {
	codes := make([]string, 0, len(countries))
	for code := range countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// KnownProviders returns the provider registry for a country code, or
// nil for unsupported codes, which disables provider tagging.
func KnownProviders(code string) []string {
	if c, ok := countries[code]; ok {
		return c.Providers
	}
	return nil
}
