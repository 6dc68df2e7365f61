package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/cricket-league/internal/domain/article"
	"github.com/riskibarqy/cricket-league/internal/domain/match"
	"github.com/riskibarqy/cricket-league/internal/domain/standing"
	"github.com/riskibarqy/cricket-league/internal/domain/team"
	"github.com/riskibarqy/cricket-league/internal/domain/venue"
	"github.com/riskibarqy/cricket-league/internal/domain/video"
	"github.com/riskibarqy/cricket-league/internal/usecase"
)

type sectionDTO[T any] struct {
	Items  []T    `json:"items"`
	Source string `json:"source"`
}

type homePageDTO struct {
	Teams     sectionDTO[teamDTO]     `json:"teams"`
	Matches   sectionDTO[matchDTO]    `json:"matches"`
	Standings sectionDTO[standingDTO] `json:"standings"`
	Headlines sectionDTO[articleDTO]  `json:"headlines"`
}

type teamsPageDTO struct {
	Teams sectionDTO[teamDTO] `json:"teams"`
}

type schedulePageDTO struct {
	Matches sectionDTO[matchDTO] `json:"matches"`
}

type standingsPageDTO struct {
	Standings sectionDTO[standingDTO] `json:"standings"`
}

type videosPageDTO struct {
	Videos sectionDTO[videoDTO] `json:"videos"`
}

type newsPageDTO struct {
	Articles  sectionDTO[articleDTO] `json:"articles"`
	Headlines sectionDTO[articleDTO] `json:"headlines"`
}

type teamStatsDTO struct {
	MatchesPlayed int `json:"matchesPlayed"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	Titles        int `json:"titles"`
}

type teamDTO struct {
	UID          string        `json:"uid,omitempty"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	PrimaryColor string        `json:"primaryColor"`
	LogoURL      string        `json:"logoUrl,omitempty"`
	Stats        *teamStatsDTO `json:"stats,omitempty"`
}

type venueDTO struct {
	UID  string `json:"uid,omitempty"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

type scoreDTO struct {
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
	Overs   string `json:"overs"`
	Display string `json:"display"`
}

type matchDTO struct {
	UID           string    `json:"uid,omitempty"`
	MatchNumber   int       `json:"matchNumber"`
	TeamA         teamDTO   `json:"teamA"`
	TeamB         teamDTO   `json:"teamB"`
	Venue         venueDTO  `json:"venue"`
	ScheduledAt   string    `json:"scheduledAt,omitempty"`
	Date          string    `json:"date"`
	Status        string    `json:"status"`
	TeamAScore    *scoreDTO `json:"teamAScore,omitempty"`
	TeamBScore    *scoreDTO `json:"teamBScore,omitempty"`
	Result        string    `json:"result,omitempty"`
	ManOfTheMatch string    `json:"manOfTheMatch,omitempty"`
}

type standingDTO struct {
	Position   int      `json:"position"`
	Team       teamDTO  `json:"team"`
	Played     int      `json:"played"`
	Won        int      `json:"won"`
	Lost       int      `json:"lost"`
	Tied       int      `json:"tied"`
	NoResult   int      `json:"noResult"`
	Points     int      `json:"points"`
	NetRunRate string   `json:"netRunRate"`
	Form       []string `json:"form"`
	Qualified  bool     `json:"qualified"`
}

type videoDTO struct {
	UID             string `json:"uid,omitempty"`
	Title           string `json:"title"`
	YouTubeID       string `json:"youtubeId"`
	Category        string `json:"category,omitempty"`
	Type            string `json:"type,omitempty"`
	RelatedMatchUID string `json:"relatedMatch,omitempty"`
	RelatedTeam     string `json:"relatedTeam,omitempty"`
	PublishedAt     string `json:"publishedAt,omitempty"`
	Date            string `json:"date"`
	ViewCount       int64  `json:"viewCount"`
	DurationSeconds int    `json:"durationSeconds"`
	Duration        string `json:"duration,omitempty"`
	Featured        bool   `json:"featured"`
	ThumbnailURL    string `json:"thumbnailUrl,omitempty"`
}

type articleDTO struct {
	UID         string `json:"uid,omitempty"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt,omitempty"`
	Body        string `json:"body,omitempty"`
	Author      string `json:"author,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
	Date        string `json:"date"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Link        string `json:"link,omitempty"`
	Source      string `json:"source,omitempty"`
}

type brandDTO struct {
	ShortName string `json:"shortName"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	LogoURL   string `json:"logoUrl"`
}

type favoriteTeamRequest struct {
	Team string `json:"team"`
}

func teamSection(ctx context.Context, s usecase.Section[team.Team]) sectionDTO[teamDTO] {
	_, span := startSpan(ctx, "httpapi.teamSection")
	defer span.End()

	items := make([]teamDTO, 0, len(s.Items))
	for _, t := range s.Items {
		items = append(items, teamToDTO(t, true))
	}
	return sectionDTO[teamDTO]{Items: items, Source: string(s.Source)}
}

func matchSection(ctx context.Context, s usecase.Section[match.Match]) sectionDTO[matchDTO] {
	_, span := startSpan(ctx, "httpapi.matchSection")
	defer span.End()

	items := make([]matchDTO, 0, len(s.Items))
	for _, m := range s.Items {
		items = append(items, matchToDTO(m))
	}
	return sectionDTO[matchDTO]{Items: items, Source: string(s.Source)}
}

func standingSection(ctx context.Context, s usecase.Section[standing.Entry]) sectionDTO[standingDTO] {
	_, span := startSpan(ctx, "httpapi.standingSection")
	defer span.End()

	items := make([]standingDTO, 0, len(s.Items))
	for _, e := range s.Items {
		items = append(items, standingToDTO(e))
	}
	return sectionDTO[standingDTO]{Items: items, Source: string(s.Source)}
}

func videoSection(ctx context.Context, s usecase.Section[video.Video]) sectionDTO[videoDTO] {
	_, span := startSpan(ctx, "httpapi.videoSection")
	defer span.End()

	items := make([]videoDTO, 0, len(s.Items))
	for _, v := range s.Items {
		items = append(items, videoToDTO(v))
	}
	return sectionDTO[videoDTO]{Items: items, Source: string(s.Source)}
}

func articleSection(ctx context.Context, s usecase.Section[article.Article]) sectionDTO[articleDTO] {
	_, span := startSpan(ctx, "httpapi.articleSection")
	defer span.End()

	items := make([]articleDTO, 0, len(s.Items))
	for _, a := range s.Items {
		items = append(items, articleToDTO(a))
	}
	return sectionDTO[articleDTO]{Items: items, Source: string(s.Source)}
}

func teamToDTO(v team.Team, withStats bool) teamDTO {
	out := teamDTO{
		UID:          v.UID,
		Name:         v.Name,
		ShortName:    v.ShortName,
		PrimaryColor: v.PrimaryColor,
		LogoURL:      v.LogoURL,
	}
	if out.PrimaryColor == "" {
		out.PrimaryColor = team.NeutralColor
	}
	if withStats {
		out.Stats = &teamStatsDTO{
			MatchesPlayed: v.Stats.MatchesPlayed,
			Wins:          v.Stats.Wins,
			Losses:        v.Stats.Losses,
			Titles:        v.Stats.Titles,
		}
	}
	return out
}

func venueToDTO(v venue.Venue) venueDTO {
	return venueDTO{UID: v.UID, Name: v.Name, City: v.City}
}

func scoreToDTO(s *match.Score) *scoreDTO {
	if s == nil {
		return nil
	}
	return &scoreDTO{Runs: s.Runs, Wickets: s.Wickets, Overs: s.Overs, Display: s.Display()}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		UID:           v.UID,
		MatchNumber:   v.Number,
		TeamA:         teamToDTO(v.TeamA, false),
		TeamB:         teamToDTO(v.TeamB, false),
		Venue:         venueToDTO(v.Venue),
		ScheduledAt:   formatTimestamp(v.ScheduledAt),
		Date:          v.DateDisplay,
		Status:        string(v.Status),
		TeamAScore:    scoreToDTO(v.TeamAScore),
		TeamBScore:    scoreToDTO(v.TeamBScore),
		Result:        v.Result,
		ManOfTheMatch: v.ManOfTheMatch,
	}
}

// NRR is always signed with three decimals, "+0.000" included.
func standingToDTO(v standing.Entry) standingDTO {
	form := v.Form
	if form == nil {
		form = []string{}
	}
	return standingDTO{
		Position:   v.Position,
		Team:       teamToDTO(v.Team, false),
		Played:     v.Played,
		Won:        v.Won,
		Lost:       v.Lost,
		Tied:       v.Tied,
		NoResult:   v.NoResult,
		Points:     v.Points,
		NetRunRate: fmt.Sprintf("%+.3f", v.NetRunRate),
		Form:       form,
		Qualified:  v.Qualified,
	}
}

func videoToDTO(v video.Video) videoDTO {
	return videoDTO{
		UID:             v.UID,
		Title:           v.Title,
		YouTubeID:       v.YouTubeID,
		Category:        v.Category,
		Type:            v.Type,
		RelatedMatchUID: v.RelatedMatchUID,
		RelatedTeam:     v.RelatedTeamCode,
		PublishedAt:     formatTimestamp(v.PublishedAt),
		Date:            v.DateDisplay,
		ViewCount:       v.ViewCount,
		DurationSeconds: v.DurationSeconds,
		Duration:        formatClock(v.DurationSeconds),
		Featured:        v.Featured,
		ThumbnailURL:    v.ThumbnailURL,
	}
}

func articleToDTO(v article.Article) articleDTO {
	return articleDTO{
		UID:         v.UID,
		Title:       v.Title,
		Excerpt:     v.Excerpt,
		Body:        v.Body,
		Author:      v.Author,
		PublishedAt: formatTimestamp(v.PublishedAt),
		Date:        v.DateDisplay,
		Category:    v.Category,
		ImageURL:    v.ImageURL,
		Link:        v.Link,
		Source:      v.Source,
	}
}

func brandToDTO(v team.Brand) brandDTO {
	return brandDTO{ShortName: v.ShortName, Name: v.Name, Color: v.Color, LogoURL: v.LogoURL}
}

func formatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// formatClock renders seconds as m:ss, or h:mm:ss past the hour.
func formatClock(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
