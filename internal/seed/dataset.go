package seed

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/cricket-league/internal/domain/match"
	"github.com/riskibarqy/cricket-league/internal/infrastructure/fallback"
)

// Dataset is the seed file layout. Cross references use natural keys: team
// short codes, venue names and match numbers.
type Dataset struct {
	Venues    []Venue    `yaml:"venues"`
	Teams     []Team     `yaml:"teams"`
	Matches   []Match    `yaml:"matches"`
	Standings []Standing `yaml:"standings"`
	Videos    []Video    `yaml:"videos"`
}

type Venue struct {
	Name string `yaml:"name"`
	City string `yaml:"city"`
}

type Team struct {
	Name          string `yaml:"name"`
	ShortName     string `yaml:"short_name"`
	PrimaryColor  string `yaml:"primary_color"`
	MatchesPlayed int    `yaml:"matches_played"`
	Wins          int    `yaml:"wins"`
	Losses        int    `yaml:"losses"`
	Titles        int    `yaml:"titles"`
}

type Score struct {
	Runs    int    `yaml:"runs"`
	Wickets int    `yaml:"wickets"`
	Overs   string `yaml:"overs"`
}

type Match struct {
	Number        int    `yaml:"number"`
	TeamA         string `yaml:"team_a"`
	TeamB         string `yaml:"team_b"`
	Venue         string `yaml:"venue"`
	Date          string `yaml:"date"`
	Status        string `yaml:"status"`
	TeamAScore    *Score `yaml:"team_a_score"`
	TeamBScore    *Score `yaml:"team_b_score"`
	Result        string `yaml:"result"`
	ManOfTheMatch string `yaml:"man_of_the_match"`
}

type Standing struct {
	Team       string   `yaml:"team"`
	Position   int      `yaml:"position"`
	Played     int      `yaml:"played"`
	Won        int      `yaml:"won"`
	Lost       int      `yaml:"lost"`
	Tied       int      `yaml:"tied"`
	NoResult   int      `yaml:"no_result"`
	Points     int      `yaml:"points"`
	NetRunRate float64  `yaml:"net_run_rate"`
	Form       []string `yaml:"form"`
}

type Video struct {
	Title           string `yaml:"title"`
	YouTubeID       string `yaml:"youtube_id"`
	Category        string `yaml:"category"`
	Type            string `yaml:"type"`
	RelatedMatch    int    `yaml:"related_match"`
	RelatedTeam     string `yaml:"related_team"`
	PublishDate     string `yaml:"publish_date"`
	ViewCount       int64  `yaml:"view_count"`
	DurationSeconds int    `yaml:"duration_seconds"`
	Featured        bool   `yaml:"featured"`
}

// LoadDataset reads and validates a YAML seed file.
func LoadDataset(path string) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	return ParseDataset(raw)
}

func ParseDataset(raw []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Validate checks that every cross reference names an entry of the dataset.
func (ds Dataset) Validate() error {
	venues := make(map[string]struct{}, len(ds.Venues))
	for i, v := range ds.Venues {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			return fmt.Errorf("venues[%d]: name is required", i)
		}
		venues[name] = struct{}{}
	}

	teams := make(map[string]struct{}, len(ds.Teams))
	for i, t := range ds.Teams {
		code := strings.ToUpper(strings.TrimSpace(t.ShortName))
		if code == "" || strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("teams[%d]: name and short_name are required", i)
		}
		if _, dup := teams[code]; dup {
			return fmt.Errorf("teams[%d]: duplicate short_name %q", i, code)
		}
		teams[code] = struct{}{}
	}
	hasTeam := func(code string) bool {
		_, ok := teams[strings.ToUpper(strings.TrimSpace(code))]
		return ok
	}

	matches := make(map[int]struct{}, len(ds.Matches))
	for i, m := range ds.Matches {
		if m.Number <= 0 {
			return fmt.Errorf("matches[%d]: number must be positive", i)
		}
		if _, dup := matches[m.Number]; dup {
			return fmt.Errorf("matches[%d]: duplicate number %d", i, m.Number)
		}
		matches[m.Number] = struct{}{}
		if !hasTeam(m.TeamA) || !hasTeam(m.TeamB) {
			return fmt.Errorf("match %d: unknown team %q or %q", m.Number, m.TeamA, m.TeamB)
		}
		if m.Venue != "" {
			if _, ok := venues[strings.TrimSpace(m.Venue)]; !ok {
				return fmt.Errorf("match %d: unknown venue %q", m.Number, m.Venue)
			}
		}
		if _, ok := match.ParseStatus(m.Status); !ok {
			return fmt.Errorf("match %d: unknown status %q", m.Number, m.Status)
		}
	}

	for i, s := range ds.Standings {
		if !hasTeam(s.Team) {
			return fmt.Errorf("standings[%d]: unknown team %q", i, s.Team)
		}
	}
	for i, v := range ds.Videos {
		if strings.TrimSpace(v.Title) == "" || strings.TrimSpace(v.YouTubeID) == "" {
			return fmt.Errorf("videos[%d]: title and youtube_id are required", i)
		}
		if v.RelatedMatch != 0 {
			if _, ok := matches[v.RelatedMatch]; !ok {
				return fmt.Errorf("videos[%d]: unknown related_match %d", i, v.RelatedMatch)
			}
		}
		if v.RelatedTeam != "" && !hasTeam(v.RelatedTeam) {
			return fmt.Errorf("videos[%d]: unknown related_team %q", i, v.RelatedTeam)
		}
	}
	return nil
}

// DefaultDataset is the built-in fallback content in seed form.
func DefaultDataset() Dataset {
	var ds Dataset
	for _, v := range fallback.Venues() {
		ds.Venues = append(ds.Venues, Venue{Name: v.Name, City: v.City})
	}
	for _, t := range fallback.Teams() {
		ds.Teams = append(ds.Teams, Team{
			Name:          t.Name,
			ShortName:     t.ShortName,
			PrimaryColor:  t.PrimaryColor,
			MatchesPlayed: t.Stats.MatchesPlayed,
			Wins:          t.Stats.Wins,
			Losses:        t.Stats.Losses,
			Titles:        t.Stats.Titles,
		})
	}

	matchNumbers := make(map[string]int)
	for _, m := range fallback.Matches() {
		matchNumbers[m.UID] = m.Number
		seed := Match{
			Number:        m.Number,
			TeamA:         m.TeamA.ShortName,
			TeamB:         m.TeamB.ShortName,
			Venue:         m.Venue.Name,
			Date:          formatDate(m.ScheduledAt),
			Status:        string(m.Status),
			Result:        m.Result,
			ManOfTheMatch: m.ManOfTheMatch,
		}
		if m.TeamAScore != nil {
			seed.TeamAScore = &Score{Runs: m.TeamAScore.Runs, Wickets: m.TeamAScore.Wickets, Overs: m.TeamAScore.Overs}
		}
		if m.TeamBScore != nil {
			seed.TeamBScore = &Score{Runs: m.TeamBScore.Runs, Wickets: m.TeamBScore.Wickets, Overs: m.TeamBScore.Overs}
		}
		ds.Matches = append(ds.Matches, seed)
	}

	for _, s := range fallback.Standings() {
		ds.Standings = append(ds.Standings, Standing{
			Team:       s.Team.ShortName,
			Position:   s.Position,
			Played:     s.Played,
			Won:        s.Won,
			Lost:       s.Lost,
			Tied:       s.Tied,
			NoResult:   s.NoResult,
			Points:     s.Points,
			NetRunRate: s.NetRunRate,
			Form:       s.Form,
		})
	}
	for _, v := range fallback.Videos() {
		ds.Videos = append(ds.Videos, Video{
			Title:           v.Title,
			YouTubeID:       v.YouTubeID,
			Category:        v.Category,
			Type:            v.Type,
			RelatedMatch:    matchNumbers[v.RelatedMatchUID],
			RelatedTeam:     v.RelatedTeamCode,
			PublishDate:     formatDate(v.PublishedAt),
			ViewCount:       v.ViewCount,
			DurationSeconds: v.DurationSeconds,
			Featured:        v.Featured,
		})
	}
	return ds
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func matchKey(number int) string {
	return "match-" + strconv.Itoa(number)
}
