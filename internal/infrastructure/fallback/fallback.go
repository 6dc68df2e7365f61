// Package fallback holds the static dataset pages render when the CMS or the
// news feed is unreachable, unconfigured, or empty. It is already in view-model
// shape and every call returns a fresh copy, ordered the way pages sort live data.
package fallback

import (
	"strconv"
	"time"

	"github.com/riskibarqy/cricket-league/internal/domain/article"
	"github.com/riskibarqy/cricket-league/internal/domain/match"
	"github.com/riskibarqy/cricket-league/internal/domain/standing"
	"github.com/riskibarqy/cricket-league/internal/domain/team"
	"github.com/riskibarqy/cricket-league/internal/domain/venue"
	"github.com/riskibarqy/cricket-league/internal/domain/video"
	"github.com/riskibarqy/cricket-league/internal/normalize"
)

var teamStats = map[string]team.Stats{
	"FC": {MatchesPlayed: 6, Wins: 5, Losses: 1, Titles: 2},
	"SS": {MatchesPlayed: 6, Wins: 4, Losses: 2, Titles: 1},
	"TT": {MatchesPlayed: 6, Wins: 3, Losses: 3, Titles: 1},
	"RR": {MatchesPlayed: 6, Wins: 3, Losses: 3, Titles: 0},
	"WW": {MatchesPlayed: 6, Wins: 1, Losses: 4, Titles: 0},
	"LL": {MatchesPlayed: 6, Wins: 1, Losses: 4, Titles: 0},
}

// Teams returns the six franchises in brand table order.
func Teams() []team.Team {
	brands := team.Brands()
	out := make([]team.Team, 0, len(brands))
	for _, b := range brands {
		out = append(out, teamFor(b.ShortName))
	}
	return out
}

func teamFor(code string) team.Team {
	b, _ := team.BrandFor(code)
	return team.Team{
		UID:          "fallback-team-" + code,
		Name:         b.Name,
		ShortName:    b.ShortName,
		PrimaryColor: b.Color,
		LogoURL:      b.LogoURL,
		Stats:        teamStats[b.ShortName],
	}
}

func Venues() []venue.Venue {
	return []venue.Venue{
		{UID: "fallback-venue-1", Name: "Riverside Cricket Ground", City: "Pune"},
		{UID: "fallback-venue-2", Name: "Lakeside Oval", City: "Nagpur"},
		{UID: "fallback-venue-3", Name: "Hillcrest Stadium", City: "Nashik"},
	}
}

type fixture struct {
	number int
	a, b   string
	venue  int
	day    time.Time
	status match.Status
	scoreA *match.Score
	scoreB *match.Score
	result string
	motm   string
}

func score(runs, wickets int, overs string) *match.Score {
	return &match.Score{Runs: runs, Wickets: wickets, Overs: overs}
}

func day(month time.Month, d, hour int) time.Time {
	return time.Date(2026, month, d, hour, 0, 0, 0, time.UTC)
}

func fixtures() []fixture {
	return []fixture{
		{number: 1, a: "FC", b: "SS", venue: 0, day: day(time.March, 7, 14), status: match.StatusCompleted,
			scoreA: score(185, 6, "20"), scoreB: score(170, 9, "20"), result: "Flame Chargers won by 15 runs", motm: "Arjun Mehta"},
		{number: 2, a: "TT", b: "RR", venue: 1, day: day(time.March, 8, 14), status: match.StatusCompleted,
			scoreA: score(142, 10, "18.4"), scoreB: score(143, 5, "17.2"), result: "Royal Raiders won by 5 wickets", motm: "Kabir Singh"},
		{number: 3, a: "WW", b: "LL", venue: 2, day: day(time.March, 14, 14), status: match.StatusAbandoned,
			result: "No result (rain)"},
		{number: 4, a: "SS", b: "TT", venue: 0, day: day(time.March, 15, 14), status: match.StatusCompleted,
			scoreA: score(201, 4, "20"), scoreB: score(176, 8, "20"), result: "Storm Sentinels won by 25 runs", motm: "Rohan Das"},
		{number: 5, a: "FC", b: "WW", venue: 1, day: day(time.April, 4, 14), status: match.StatusUpcoming},
		{number: 6, a: "RR", b: "LL", venue: 2, day: day(time.April, 5, 14), status: match.StatusUpcoming},
	}
}

// Matches returns the schedule ordered by match number.
func Matches() []match.Match {
	venues := Venues()
	items := fixtures()
	out := make([]match.Match, 0, len(items))
	for _, f := range items {
		scheduled := f.day
		out = append(out, match.Match{
			UID:           "fallback-match-" + strconv.Itoa(f.number),
			Number:        f.number,
			TeamA:         teamFor(f.a),
			TeamB:         teamFor(f.b),
			Venue:         venues[f.venue],
			ScheduledAt:   &scheduled,
			DateDisplay:   normalize.DisplayDate(&scheduled),
			Status:        f.status,
			TeamAScore:    f.scoreA,
			TeamBScore:    f.scoreB,
			Result:        f.result,
			ManOfTheMatch: f.motm,
		})
	}
	return out
}

// Standings returns the points table ordered by position.
func Standings() []standing.Entry {
	rows := []struct {
		code                      string
		played, won, lost, nr, pt int
		nrr                       float64
		form                      []string
	}{
		{code: "FC", played: 6, won: 5, lost: 1, pt: 10, nrr: 1.245, form: []string{"W", "W", "L", "W", "W"}},
		{code: "SS", played: 6, won: 4, lost: 2, pt: 8, nrr: 0.812, form: []string{"W", "L", "W", "W", "L"}},
		{code: "RR", played: 6, won: 3, lost: 3, pt: 6, nrr: 0.104, form: []string{"L", "W", "W", "L", "W"}},
		{code: "TT", played: 6, won: 3, lost: 3, pt: 6, nrr: -0.087, form: []string{"W", "L", "L", "W", "L"}},
		{code: "WW", played: 6, won: 1, lost: 4, nr: 1, pt: 3, nrr: -0.934, form: []string{"L", "L", "W", "L", "L"}},
		{code: "LL", played: 6, won: 1, lost: 4, nr: 1, pt: 3, nrr: -1.140, form: []string{"L", "W", "L", "L", "L"}},
	}

	out := make([]standing.Entry, 0, len(rows))
	for i, r := range rows {
		position := i + 1
		out = append(out, standing.Entry{
			Team:       teamFor(r.code),
			Position:   position,
			Played:     r.played,
			Won:        r.won,
			Lost:       r.lost,
			NoResult:   r.nr,
			Points:     r.pt,
			NetRunRate: r.nrr,
			Form:       append([]string(nil), r.form...),
			Qualified:  standing.IsQualified(position),
		})
	}
	return out
}

// Videos returns the gallery, newest first.
func Videos() []video.Video {
	items := []video.Video{
		{UID: "fallback-video-1", Title: "Match 4 highlights: Sentinels post 201", YouTubeID: "dQw4w9WgXcQ", Category: "highlights", Type: "match",
			RelatedMatchUID: "fallback-match-4", RelatedTeamCode: "SS", ViewCount: 18230, DurationSeconds: 612, Featured: true},
		{UID: "fallback-video-2", Title: "Captain's corner with the Flame Chargers", YouTubeID: "9bZkp7q19f0", Category: "interviews", Type: "interview",
			RelatedTeamCode: "FC", ViewCount: 7410, DurationSeconds: 395},
		{UID: "fallback-video-3", Title: "Match 2 highlights: Raiders chase it down", YouTubeID: "kJQP7kiw5Fk", Category: "highlights", Type: "match",
			RelatedMatchUID: "fallback-match-2", RelatedTeamCode: "RR", ViewCount: 12904, DurationSeconds: 548},
		{UID: "fallback-video-4", Title: "Season preview", YouTubeID: "JGwWNGJdvx8", Category: "features", Type: "feature",
			ViewCount: 25011, DurationSeconds: 903},
	}
	dates := []time.Time{day(time.March, 16, 9), day(time.March, 12, 9), day(time.March, 9, 9), day(time.March, 1, 9)}
	for i := range items {
		published := dates[i]
		items[i].PublishedAt = &published
		items[i].DateDisplay = normalize.DisplayDate(&published)
		items[i].ThumbnailURL = video.ThumbnailURL(items[i].YouTubeID)
	}
	return items
}

// Articles returns league stories, newest first.
func Articles() []article.Article {
	items := []article.Article{
		{UID: "fallback-article-1", Title: "Sentinels climb to second after statement win", Author: "League Media",
			Excerpt: "A 25-run victory over the Thunder Titans keeps the Storm Sentinels in the hunt.", Category: "match-report",
			ImageURL: "/images/news/sentinels-win.jpg"},
		{UID: "fallback-article-2", Title: "Rain washes out Warriors against Lions", Author: "League Media",
			Excerpt: "Both sides share a point after persistent showers at Hillcrest Stadium.", Category: "match-report",
			ImageURL: "/images/news/rain.jpg"},
		{UID: "fallback-article-3", Title: "Registrations open for the development squad", Author: "League Office",
			Excerpt: "Players aged 16 and over can now apply through the registration page.", Category: "announcement",
			ImageURL: "/images/news/registration.jpg"},
	}
	dates := []time.Time{day(time.March, 16, 8), day(time.March, 14, 20), day(time.February, 20, 10)}
	for i := range items {
		published := dates[i]
		items[i].PublishedAt = &published
		items[i].DateDisplay = normalize.DisplayDate(&published)
		items[i].Body = items[i].Excerpt
	}
	return items
}

// News returns the headline list shown when the news feed is unavailable.
func News() []article.Article {
	items := []article.Article{
		{UID: "fallback-news-1", Title: "Domestic T20 season confirmed for spring", Source: "League Wire",
			Excerpt: "The national board has confirmed dates for the domestic T20 competition.", Category: "sports",
			Link: "/news"},
		{UID: "fallback-news-2", Title: "Grassroots cricket participation hits record high", Source: "League Wire",
			Excerpt: "Club registrations are up for the third consecutive year.", Category: "sports",
			Link: "/news"},
		{UID: "fallback-news-3", Title: "New floodlights approved for Riverside Cricket Ground", Source: "League Wire",
			Excerpt: "Evening fixtures are expected from next season.", Category: "sports",
			Link: "/news"},
	}
	dates := []time.Time{day(time.March, 15, 7), day(time.March, 10, 7), day(time.March, 2, 7)}
	for i := range items {
		published := dates[i]
		items[i].PublishedAt = &published
		items[i].DateDisplay = normalize.DisplayDate(&published)
	}
	return items
}
