package normalize

import (
	"github.com/riskibarqy/cricket-league/internal/domain/team"
	"github.com/riskibarqy/cricket-league/internal/domain/venue"
	"github.com/riskibarqy/cricket-league/internal/platform/loosemap"
)

// Team fills branding from the compiled-in table when the CMS leaves it out.
// Unknown short codes get the neutral gray and no logo.
func Team(entry map[string]any) team.Team {
	name := loosemap.String(entry, "team_name", "title", "name")
	short := loosemap.String(entry, "short_name", "short_code", "code")
	if short == "" {
		short, _ = team.ResolveShortCode(name)
	}

	brand, known := team.BrandFor(short)
	if known {
		short = brand.ShortName
		if name == "" {
			name = brand.Name
		}
	}

	out := team.Team{
		UID:          uid(entry),
		Name:         name,
		ShortName:    short,
		PrimaryColor: loosemap.String(entry, "primary_color", "color"),
		LogoURL:      fileURL(entry, "team_logo", "logo", "logo_url"),
		Stats:        teamStats(entry),
	}
	if out.PrimaryColor == "" {
		out.PrimaryColor = team.NeutralColor
		if known {
			out.PrimaryColor = brand.Color
		}
	}
	if out.LogoURL == "" && known {
		out.LogoURL = brand.LogoURL
	}
	return out
}

// teamStats reads counters from the top level, then from a "stats" group.
func teamStats(entry map[string]any) team.Stats {
	group := loosemap.Map(entry, "stats")
	read := func(keys ...string) int {
		if v, ok := loosemap.Int(entry, keys...); ok {
			return v
		}
		return loosemap.IntOr(group, 0, keys...)
	}
	return team.Stats{
		MatchesPlayed: read("matches_played", "played"),
		Wins:          read("wins", "won"),
		Losses:        read("losses", "lost"),
		Titles:        read("titles", "championships"),
	}
}

// teamRef normalizes a reference field that may be an expanded entry, a
// one-element array, or just the team's name as text.
func teamRef(entry map[string]any, key string) team.Team {
	if ref := loosemap.Map(entry, key); ref != nil {
		return Team(ref)
	}
	if text := loosemap.String(entry, key); text != "" {
		return Team(map[string]any{"team_name": text})
	}
	return Team(nil)
}

func Venue(entry map[string]any) venue.Venue {
	return venue.Venue{
		UID:  uid(entry),
		Name: loosemap.String(entry, "venue_name", "title", "name"),
		City: loosemap.String(entry, "city", "location"),
	}
}
