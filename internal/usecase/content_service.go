package usecase

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/cricket-league/internal/domain/article"
	"github.com/riskibarqy/cricket-league/internal/domain/match"
	"github.com/riskibarqy/cricket-league/internal/domain/standing"
	"github.com/riskibarqy/cricket-league/internal/domain/team"
	"github.com/riskibarqy/cricket-league/internal/domain/video"
	"github.com/riskibarqy/cricket-league/internal/infrastructure/fallback"
	"github.com/riskibarqy/cricket-league/internal/normalize"
	"github.com/riskibarqy/cricket-league/internal/platform/cache"
	"github.com/riskibarqy/cricket-league/internal/platform/logging"
)

// Source tells a page which path produced a section.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

type Section[T any] struct {
	Items  []T
	Source Source
}

type PageQuery struct {
	Locale string
	Limit  int
}

type HomePage struct {
	Teams     Section[team.Team]
	Matches   Section[match.Match]
	Standings Section[standing.Entry]
	Headlines Section[article.Article]
}

type TeamsPage struct {
	Teams Section[team.Team]
}

type SchedulePage struct {
	Matches Section[match.Match]
}

type StandingsPage struct {
	Standings Section[standing.Entry]
}

type VideosPage struct {
	Videos Section[video.Video]
}

type NewsPage struct {
	Articles  Section[article.Article]
	Headlines Section[article.Article]
}

type ContentServiceConfig struct {
	Locale       string
	DefaultLimit int
	CacheEnabled bool
	CacheTTL     time.Duration
	Logger       *logging.Logger
}

// ContentService is the failure boundary of every read path: it never returns
// an error. A failed or empty fetch yields the full fallback dataset for that
// section, and each page result is kept for CacheTTL before the next attempt.
type ContentService struct {
	source ContentSource
	news   NewsSource
	stats  VideoStatsSource
	pages  *cache.Store[any]
	locale string
	limit  int
	logger *logging.Logger
}

// NewContentService accepts nil news and stats sources; nil news always
// renders fallback headlines and nil stats skips video enrichment.
func NewContentService(source ContentSource, news NewsSource, stats VideoStatsSource, cfg ContentServiceConfig) *ContentService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	limit := cfg.DefaultLimit
	if limit <= 0 {
		limit = 100
	}

	s := &ContentService{
		source: source,
		news:   news,
		stats:  stats,
		locale: strings.TrimSpace(cfg.Locale),
		limit:  limit,
		logger: logger,
	}
	if cfg.CacheEnabled && cfg.CacheTTL > 0 {
		s.pages = cache.NewStore[any](cfg.CacheTTL, nil)
	}
	return s
}

func (s *ContentService) Home(ctx context.Context, q PageQuery) HomePage {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.Home")
	defer span.End()

	return cachedPage(ctx, s, "home", q, func(ctx context.Context, q ContentQuery) HomePage {
		var page HomePage
		var wg conc.WaitGroup
		wg.Go(func() { page.Teams = s.teams(ctx, q) })
		wg.Go(func() { page.Matches = s.matches(ctx, q) })
		wg.Go(func() { page.Standings = s.standings(ctx, q) })
		wg.Go(func() { page.Headlines = s.headlines(ctx, q.Limit) })
		wg.Wait()
		return page
	})
}

func (s *ContentService) Teams(ctx context.Context, q PageQuery) TeamsPage {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.Teams")
	defer span.End()

	return cachedPage(ctx, s, "teams", q, func(ctx context.Context, q ContentQuery) TeamsPage {
		return TeamsPage{Teams: s.teams(ctx, q)}
	})
}

func (s *ContentService) Schedule(ctx context.Context, q PageQuery) SchedulePage {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.Schedule")
	defer span.End()

	return cachedPage(ctx, s, "schedule", q, func(ctx context.Context, q ContentQuery) SchedulePage {
		return SchedulePage{Matches: s.matches(ctx, q)}
	})
}

func (s *ContentService) Standings(ctx context.Context, q PageQuery) StandingsPage {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.Standings")
	defer span.End()

	return cachedPage(ctx, s, "standings", q, func(ctx context.Context, q ContentQuery) StandingsPage {
		return StandingsPage{Standings: s.standings(ctx, q)}
	})
}

func (s *ContentService) Videos(ctx context.Context, q PageQuery) VideosPage {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.Videos")
	defer span.End()

	return cachedPage(ctx, s, "videos", q, func(ctx context.Context, q ContentQuery) VideosPage {
		section := loadSection(ctx, s, ContentTypeVideo, q, normalize.Video, fallback.Videos, byPublishedDesc(func(v video.Video) *time.Time { return v.PublishedAt }))
		if section.Source == SourceLive {
			s.enrichVideos(ctx, section.Items)
		}
		return VideosPage{Videos: section}
	})
}

func (s *ContentService) News(ctx context.Context, q PageQuery) NewsPage {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.News")
	defer span.End()

	return cachedPage(ctx, s, "news", q, func(ctx context.Context, q ContentQuery) NewsPage {
		var page NewsPage
		var wg conc.WaitGroup
		wg.Go(func() {
			page.Articles = loadSection(ctx, s, ContentTypeArticle, q, normalize.Article, fallback.Articles, byPublishedDesc(articleDate))
		})
		wg.Go(func() { page.Headlines = s.headlines(ctx, q.Limit) })
		wg.Wait()
		return page
	})
}

func (s *ContentService) teams(ctx context.Context, q ContentQuery) Section[team.Team] {
	return loadSection(ctx, s, ContentTypeTeam, q, normalize.Team, fallback.Teams, nil)
}

func (s *ContentService) matches(ctx context.Context, q ContentQuery) Section[match.Match] {
	return loadSection(ctx, s, ContentTypeMatch, q, normalize.Match, fallback.Matches, func(a, b match.Match) int {
		return cmp.Compare(a.Number, b.Number)
	})
}

func (s *ContentService) standings(ctx context.Context, q ContentQuery) Section[standing.Entry] {
	return loadSection(ctx, s, ContentTypePointsTable, q, normalize.Standing, fallback.Standings, func(a, b standing.Entry) int {
		return cmp.Compare(a.Position, b.Position)
	})
}

// headlineLimit keeps news requests inside free-plan page sizes regardless of
// the CMS page limit.
const headlineLimit = 10

func (s *ContentService) headlines(ctx context.Context, limit int) Section[article.Article] {
	if limit <= 0 || limit > headlineLimit {
		limit = headlineLimit
	}
	fallbackSection := Section[article.Article]{Items: fallback.News(), Source: SourceFallback}
	if s.news == nil {
		return fallbackSection
	}

	items, err := s.news.Latest(ctx, limit)
	if err != nil {
		s.logFetchFailure(ctx, "news", err)
		return fallbackSection
	}
	if len(items) == 0 {
		s.logger.InfoContext(ctx, "news feed returned no results, using fallback")
		return fallbackSection
	}

	out := make([]article.Article, 0, len(items))
	for _, item := range items {
		out = append(out, normalize.Headline(item))
	}
	slices.SortStableFunc(out, byPublishedDesc(articleDate))
	return Section[article.Article]{Items: out, Source: SourceLive}
}

// loadSection runs one fetch through the fallback boundary. A nil order
// keeps the remote order.
func loadSection[T any](
	ctx context.Context,
	s *ContentService,
	contentType string,
	q ContentQuery,
	normalizeEntry func(map[string]any) T,
	fallbackItems func() []T,
	order func(a, b T) int,
) Section[T] {
	fallbackSection := func() Section[T] {
		return Section[T]{Items: fallbackItems(), Source: SourceFallback}
	}
	if s.source == nil {
		return fallbackSection()
	}

	q.Include = ReferenceIncludes[contentType]
	entries, err := s.source.Entries(ctx, contentType, q)
	if err != nil {
		s.logFetchFailure(ctx, contentType, err)
		return fallbackSection()
	}
	if len(entries) == 0 {
		s.logger.InfoContext(ctx, "content source returned no entries, using fallback", "content_type", contentType)
		return fallbackSection()
	}

	items := make([]T, 0, len(entries))
	for _, entry := range entries {
		items = append(items, normalizeEntry(entry))
	}
	if order != nil {
		slices.SortStableFunc(items, order)
	}
	return Section[T]{Items: items, Source: SourceLive}
}

func (s *ContentService) logFetchFailure(ctx context.Context, source string, err error) {
	if errors.Is(err, ErrNotConfigured) {
		s.logger.InfoContext(ctx, "content source not configured, using fallback", "content_type", source)
		return
	}
	s.logger.WarnContext(ctx, "content fetch failed, using fallback", "content_type", source, "error", err)
}

func (s *ContentService) enrichVideos(ctx context.Context, items []video.Video) {
	if s.stats == nil || len(items) == 0 {
		return
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.YouTubeID != "" {
			ids = append(ids, item.YouTubeID)
		}
	}
	if len(ids) == 0 {
		return
	}

	stats, err := s.stats.Stats(ctx, ids)
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			s.logger.WarnContext(ctx, "video stats lookup failed, keeping cms values", "videos", len(ids), "error", err)
		}
		return
	}
	for i := range items {
		st, ok := stats[items[i].YouTubeID]
		if !ok {
			continue
		}
		if st.ViewCount > 0 {
			items[i].ViewCount = st.ViewCount
		}
		if st.DurationSeconds > 0 {
			items[i].DurationSeconds = st.DurationSeconds
		}
	}
}

func cachedPage[P any](ctx context.Context, s *ContentService, name string, q PageQuery, load func(context.Context, ContentQuery) P) P {
	query := ContentQuery{Locale: strings.TrimSpace(q.Locale), Limit: q.Limit}
	if query.Locale == "" {
		query.Locale = s.locale
	}
	if query.Limit <= 0 || query.Limit > s.limit {
		query.Limit = s.limit
	}
	if s.pages == nil {
		return load(ctx, query)
	}

	// The shared load outlives a cancelled caller.
	key := "page:" + name + ":" + query.Locale + ":" + strconv.Itoa(query.Limit)
	out, err := s.pages.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return load(context.WithoutCancel(ctx), query), nil
	})
	page, ok := out.(P)
	if err != nil || !ok {
		return load(ctx, query)
	}
	return page
}

func articleDate(a article.Article) *time.Time {
	return a.PublishedAt
}

// byPublishedDesc orders newest first with undated items last.
func byPublishedDesc[T any](date func(T) *time.Time) func(a, b T) int {
	return func(a, b T) int {
		da, db := date(a), date(b)
		switch {
		case da == nil && db == nil:
			return 0
		case da == nil:
			return 1
		case db == nil:
			return -1
		default:
			return db.Compare(*da)
		}
	}
}
