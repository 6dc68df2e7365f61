package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/cricket-league/internal/platform/logging"
	"github.com/riskibarqy/cricket-league/internal/usecase"
)

// EntryWriter is the subset of the Management API the seeder drives.
type EntryWriter interface {
	CreateEntry(ctx context.Context, contentType string, fields map[string]any) (string, error)
	PublishEntry(ctx context.Context, contentType, uid string) error
}

type Config struct {
	Publish bool
	DryRun  bool
	// Delay is slept before every Management API call.
	Delay   time.Duration
	Workers int
	Out     io.Writer
	Logger  *logging.Logger
	Clock   clockwork.Clock
}

type Report struct {
	Created       map[string]int
	Published     int
	Failed        int
	PublishFailed int
	Skipped       int
}

// Seeder creates CMS entries in dependency order: venues and teams first,
// then matches, then standings and videos. An entry whose reference failed
// to create is skipped.
type Seeder struct {
	writer  EntryWriter
	publish bool
	dryRun  bool
	delay   time.Duration
	workers int
	out     io.Writer
	logger  *logging.Logger
	clock   clockwork.Clock
}

func New(writer EntryWriter, cfg Config) *Seeder {
	s := &Seeder{
		writer:  writer,
		publish: cfg.Publish,
		dryRun:  cfg.DryRun,
		delay:   cfg.Delay,
		workers: cfg.Workers,
		out:     cfg.Out,
		logger:  cfg.Logger,
		clock:   cfg.Clock,
	}
	if s.workers <= 0 {
		s.workers = 2
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	return s
}

type job struct {
	contentType string
	key         string
	title       string
	fields      func(refs *refTable) (map[string]any, error)
}

// refTable maps natural keys ("team:FC", "venue:Lakeside Oval", "match-3")
// to created entry UIDs.
type refTable struct {
	mu   sync.RWMutex
	uids map[string]string
	dry  bool
}

func (r *refTable) put(key, uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uids[key] = uid
}

func (r *refTable) ref(contentType, key string) ([]map[string]any, error) {
	r.mu.RLock()
	uid, ok := r.uids[key]
	r.mu.RUnlock()
	if !ok {
		if r.dry {
			uid = "<" + key + ">"
		} else {
			return nil, fmt.Errorf("reference %s was not created", key)
		}
	}
	return []map[string]any{{"uid": uid, "_content_type_uid": contentType}}, nil
}

func (s *Seeder) Run(ctx context.Context, ds Dataset) (Report, error) {
	if err := ds.Validate(); err != nil {
		return Report{}, err
	}
	if s.writer == nil && !s.dryRun {
		return Report{}, fmt.Errorf("%w: management credentials are required unless -dry-run is set", usecase.ErrNotConfigured)
	}

	refs := &refTable{uids: make(map[string]string), dry: s.dryRun}
	report := Report{Created: make(map[string]int)}
	var errs []error

	phases := [][]job{
		append(venueJobs(ds), teamJobs(ds)...),
		matchJobs(ds),
		append(standingJobs(ds), videoJobs(ds)...),
	}
	for i, phase := range phases {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		s.logger.InfoContext(ctx, "seed phase starting", "phase", i+1, "entries", len(phase))
		phaseErrs, err := s.runPhase(ctx, phase, refs, &report)
		if err != nil {
			return report, err
		}
		errs = append(errs, phaseErrs...)
	}

	return report, errors.Join(errs...)
}

func (s *Seeder) runPhase(ctx context.Context, jobs []job, refs *refTable, report *Report) ([]error, error) {
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		errs    []error
		plan    []string
		workers sync.WaitGroup
	)
	for _, j := range jobs {
		j := j
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			line, jobErr := s.runJob(ctx, j, refs, report, &mu)
			mu.Lock()
			defer mu.Unlock()
			if line != "" {
				plan = append(plan, line)
			}
			if jobErr != nil {
				errs = append(errs, jobErr)
			}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit seed job: %w", err)
		}
	}
	workers.Wait()

	sort.Strings(plan)
	for _, line := range plan {
		_, _ = fmt.Fprintln(s.out, line)
	}
	return errs, nil
}

func (s *Seeder) runJob(ctx context.Context, j job, refs *refTable, report *Report, mu *sync.Mutex) (string, error) {
	fields, err := j.fields(refs)
	if err != nil {
		mu.Lock()
		report.Skipped++
		mu.Unlock()
		s.logger.WarnContext(ctx, "seed entry skipped", "content_type", j.contentType, "key", j.key, "error", err)
		return "", fmt.Errorf("%s %s: %w", j.contentType, j.key, err)
	}
	if _, ok := fields["title"]; !ok {
		fields["title"] = j.title
	}

	if s.dryRun {
		refs.put(j.key, "<"+j.key+">")
		mu.Lock()
		report.Created[j.contentType]++
		mu.Unlock()
		return fmt.Sprintf("would create %s %s (%s)", j.contentType, j.key, j.title), nil
	}

	s.clock.Sleep(s.delay)
	uid, err := s.writer.CreateEntry(ctx, j.contentType, fields)
	if err != nil {
		mu.Lock()
		report.Failed++
		mu.Unlock()
		s.logger.WarnContext(ctx, "seed entry create failed", "content_type", j.contentType, "key", j.key, "error", err)
		return "", fmt.Errorf("create %s %s: %w", j.contentType, j.key, err)
	}
	refs.put(j.key, uid)
	mu.Lock()
	report.Created[j.contentType]++
	mu.Unlock()

	line := fmt.Sprintf("created %s %s uid=%s", j.contentType, j.key, uid)
	if !s.publish {
		return line, nil
	}

	s.clock.Sleep(s.delay)
	if err := s.writer.PublishEntry(ctx, j.contentType, uid); err != nil {
		mu.Lock()
		report.PublishFailed++
		mu.Unlock()
		s.logger.WarnContext(ctx, "seed entry publish failed", "content_type", j.contentType, "uid", uid, "error", err)
		return line + " (publish failed)", nil
	}
	mu.Lock()
	report.Published++
	mu.Unlock()
	return line + " published", nil
}

func venueKey(name string) string { return "venue:" + strings.TrimSpace(name) }

func teamKey(code string) string { return "team:" + strings.ToUpper(strings.TrimSpace(code)) }

func venueJobs(ds Dataset) []job {
	out := make([]job, 0, len(ds.Venues))
	for _, v := range ds.Venues {
		v := v
		out = append(out, job{
			contentType: usecase.ContentTypeVenue,
			key:         venueKey(v.Name),
			title:       v.Name,
			fields: func(*refTable) (map[string]any, error) {
				return map[string]any{"title": v.Name, "venue_name": v.Name, "city": v.City}, nil
			},
		})
	}
	return out
}

func teamJobs(ds Dataset) []job {
	out := make([]job, 0, len(ds.Teams))
	for _, t := range ds.Teams {
		t := t
		out = append(out, job{
			contentType: usecase.ContentTypeTeam,
			key:         teamKey(t.ShortName),
			title:       t.Name,
			fields: func(*refTable) (map[string]any, error) {
				fields := map[string]any{
					"title":          t.Name,
					"team_name":      t.Name,
					"short_name":     strings.ToUpper(strings.TrimSpace(t.ShortName)),
					"matches_played": t.MatchesPlayed,
					"wins":           t.Wins,
					"losses":         t.Losses,
					"titles":         t.Titles,
				}
				if t.PrimaryColor != "" {
					fields["primary_color"] = t.PrimaryColor
				}
				return fields, nil
			},
		})
	}
	return out
}

func matchJobs(ds Dataset) []job {
	out := make([]job, 0, len(ds.Matches))
	for _, m := range ds.Matches {
		m := m
		out = append(out, job{
			contentType: usecase.ContentTypeMatch,
			key:         matchKey(m.Number),
			title:       fmt.Sprintf("Match %d: %s vs %s", m.Number, m.TeamA, m.TeamB),
			fields: func(refs *refTable) (map[string]any, error) {
				teamA, err := refs.ref(usecase.ContentTypeTeam, teamKey(m.TeamA))
				if err != nil {
					return nil, err
				}
				teamB, err := refs.ref(usecase.ContentTypeTeam, teamKey(m.TeamB))
				if err != nil {
					return nil, err
				}
				fields := map[string]any{
					"match_number": m.Number,
					"team_a":       teamA,
					"team_b":       teamB,
					"match_date":   m.Date,
					"status":       m.Status,
				}
				if m.Venue != "" {
					venue, err := refs.ref(usecase.ContentTypeVenue, venueKey(m.Venue))
					if err != nil {
						return nil, err
					}
					fields["venue"] = venue
				}
				addScore(fields, "team_a", m.TeamAScore)
				addScore(fields, "team_b", m.TeamBScore)
				if m.Result != "" {
					fields["result"] = m.Result
				}
				if m.ManOfTheMatch != "" {
					fields["man_of_the_match"] = m.ManOfTheMatch
				}
				return fields, nil
			},
		})
	}
	return out
}

func addScore(fields map[string]any, side string, s *Score) {
	if s == nil {
		return
	}
	fields[side+"_runs"] = s.Runs
	fields[side+"_wickets"] = s.Wickets
	fields[side+"_overs"] = s.Overs
}

func standingJobs(ds Dataset) []job {
	out := make([]job, 0, len(ds.Standings))
	for _, st := range ds.Standings {
		st := st
		out = append(out, job{
			contentType: usecase.ContentTypePointsTable,
			key:         "standing:" + strings.ToUpper(st.Team),
			title:       fmt.Sprintf("%d. %s", st.Position, strings.ToUpper(st.Team)),
			fields: func(refs *refTable) (map[string]any, error) {
				teamRef, err := refs.ref(usecase.ContentTypeTeam, teamKey(st.Team))
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"team":         teamRef,
					"position":     st.Position,
					"played":       st.Played,
					"won":          st.Won,
					"lost":         st.Lost,
					"tied":         st.Tied,
					"no_result":    st.NoResult,
					"points":       st.Points,
					"net_run_rate": st.NetRunRate,
					"recent_form":  strings.Join(st.Form, ","),
				}, nil
			},
		})
	}
	return out
}

func videoJobs(ds Dataset) []job {
	out := make([]job, 0, len(ds.Videos))
	for _, v := range ds.Videos {
		v := v
		out = append(out, job{
			contentType: usecase.ContentTypeVideo,
			key:         "video:" + v.YouTubeID,
			title:       v.Title,
			fields: func(refs *refTable) (map[string]any, error) {
				fields := map[string]any{
					"title":        v.Title,
					"youtube_id":   v.YouTubeID,
					"category":     v.Category,
					"video_type":   v.Type,
					"publish_date": v.PublishDate,
					"view_count":   v.ViewCount,
					"duration":     v.DurationSeconds,
					"featured":     v.Featured,
				}
				if v.RelatedMatch != 0 {
					ref, err := refs.ref(usecase.ContentTypeMatch, matchKey(v.RelatedMatch))
					if err != nil {
						return nil, err
					}
					fields["related_match"] = ref
				}
				if v.RelatedTeam != "" {
					ref, err := refs.ref(usecase.ContentTypeTeam, teamKey(v.RelatedTeam))
					if err != nil {
						return nil, err
					}
					fields["related_team"] = ref
				}
				return fields, nil
			},
		})
	}
	return out
}
