package team

import "strings"

// NeutralColor is used when a short code has no brand entry.
const NeutralColor = "#6b7280"

type Stats struct {
	MatchesPlayed int
	Wins          int
	Losses        int
	Titles        int
}

// Team is a franchise in the league. ShortName is the join key used by every
// entity that refers to a team loosely.
type Team struct {
	UID          string
	Name         string
	ShortName    string
	PrimaryColor string
	LogoURL      string
	Stats        Stats
}

// Brand is the compiled-in identity of a known franchise.
type Brand struct {
	ShortName string
	Name      string
	Color     string
	LogoURL   string
}

var brands = []Brand{
	{ShortName: "FC", Name: "Flame Chargers", Color: "#e87425", LogoURL: "/images/teams/fc-logo.png"},
	{ShortName: "SS", Name: "Storm Sentinels", Color: "#2563eb", LogoURL: "/images/teams/ss-logo.png"},
	{ShortName: "TT", Name: "Thunder Titans", Color: "#7c3aed", LogoURL: "/images/teams/tt-logo.png"},
	{ShortName: "RR", Name: "Royal Raiders", Color: "#dc2626", LogoURL: "/images/teams/rr-logo.png"},
	{ShortName: "WW", Name: "Wind Warriors", Color: "#059669", LogoURL: "/images/teams/ww-logo.png"},
	{ShortName: "LL", Name: "Lightning Lions", Color: "#ca8a04", LogoURL: "/images/teams/ll-logo.png"},
}

// Brands returns the brand table in league order.
func Brands() []Brand {
	out := make([]Brand, len(brands))
	copy(out, brands)
	return out
}

// BrandFor looks up a brand by short code, case-insensitively.
func BrandFor(shortName string) (Brand, bool) {
	code := strings.ToUpper(strings.TrimSpace(shortName))
	if code == "" {
		return Brand{}, false
	}
	for _, b := range brands {
		if b.ShortName == code {
			return b, true
		}
	}
	return Brand{}, false
}

// ResolveShortCode joins free text (a short code or a team name) to a known
// short code.
func ResolveShortCode(text string) (string, bool) {
	value := strings.TrimSpace(text)
	if value == "" {
		return "", false
	}
	if b, ok := BrandFor(value); ok {
		return b.ShortName, true
	}
	for _, b := range brands {
		if strings.EqualFold(b.Name, value) {
			return b.ShortName, true
		}
	}
	return "", false
}
