package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/riskibarqy/cricket-league/internal/domain/match"
	"github.com/riskibarqy/cricket-league/internal/infrastructure/fallback"
)

func TestContentService_EmptyResultsUseFullFallback(t *testing.T) {
	ctx := context.Background()
	svc := NewContentService(newFakeSource(), nil, nil, ContentServiceConfig{})

	teams := svc.Teams(ctx, PageQuery{})
	assert.Equal(t, SourceFallback, teams.Teams.Source)
	assert.Equal(t, fallback.Teams(), teams.Teams.Items)

	schedule := svc.Schedule(ctx, PageQuery{})
	assert.Equal(t, SourceFallback, schedule.Matches.Source)
	assert.Equal(t, fallback.Matches(), schedule.Matches.Items)

	standings := svc.Standings(ctx, PageQuery{})
	assert.Equal(t, SourceFallback, standings.Standings.Source)
	assert.Equal(t, fallback.Standings(), standings.Standings.Items)

	videos := svc.Videos(ctx, PageQuery{})
	assert.Equal(t, SourceFallback, videos.Videos.Source)
	assert.Equal(t, fallback.Videos(), videos.Videos.Items)

	news := svc.News(ctx, PageQuery{})
	assert.Equal(t, SourceFallback, news.Articles.Source)
	assert.Equal(t, fallback.Articles(), news.Articles.Items)
	assert.Equal(t, SourceFallback, news.Headlines.Source)
	assert.Equal(t, fallback.News(), news.Headlines.Items)
}

func TestContentService_NilSourceUsesFallback(t *testing.T) {
	svc := NewContentService(nil, nil, nil, ContentServiceConfig{})

	page := svc.Home(context.Background(), PageQuery{})
	assert.Equal(t, fallback.Teams(), page.Teams.Items)
	assert.Equal(t, fallback.Matches(), page.Matches.Items)
	assert.Equal(t, fallback.Standings(), page.Standings.Items)
	assert.Equal(t, fallback.News(), page.Headlines.Items)
}

func TestContentService_FetchErrorLogsWarnAndFallsBack(t *testing.T) {
	logger, logs := observedLogger()
	source := newFakeSource()
	source.errs[ContentTypeTeam] = errors.New("connection reset")
	svc := NewContentService(source, nil, nil, ContentServiceConfig{Logger: logger})

	page := svc.Teams(context.Background(), PageQuery{})
	assert.Equal(t, SourceFallback, page.Teams.Source)
	assert.Equal(t, fallback.Teams(), page.Teams.Items)

	warned := logs.FilterMessage("content fetch failed, using fallback").All()
	require.Len(t, warned, 1)
	assert.Equal(t, zapcore.WarnLevel, warned[0].Level)
	assert.Equal(t, ContentTypeTeam, warned[0].ContextMap()["content_type"])
}

func TestContentService_NotConfiguredLogsInfo(t *testing.T) {
	logger, logs := observedLogger()
	source := newFakeSource()
	source.errs[ContentTypeMatch] = fmt.Errorf("%w: credentials missing", ErrNotConfigured)
	svc := NewContentService(source, nil, nil, ContentServiceConfig{Logger: logger})

	page := svc.Schedule(context.Background(), PageQuery{})
	assert.Equal(t, SourceFallback, page.Matches.Source)

	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, 1, logs.FilterMessage("content source not configured, using fallback").Len())
}

func TestContentService_LiveEntriesAreNormalizedAndSorted(t *testing.T) {
	source := newFakeSource()
	source.entries[ContentTypeMatch] = []map[string]any{
		{"uid": "m3", "match_number": 3},
		{"uid": "m1", "match_number": 1, "team_a_runs": 160, "team_a_wickets": 6, "team_a_overs": 20.0},
		{"uid": "m2", "match_number": 2, "status": "live"},
	}
	source.entries[ContentTypePointsTable] = []map[string]any{
		{"uid": "p2", "position": 2, "team": []any{map[string]any{"short_name": "SS"}}},
		{"uid": "p5", "position": 5, "team": []any{map[string]any{"short_name": "WW"}}},
		{"uid": "p1", "position": 1, "team": []any{map[string]any{"short_name": "FC"}}},
	}
	svc := NewContentService(source, nil, nil, ContentServiceConfig{})
	ctx := context.Background()

	schedule := svc.Schedule(ctx, PageQuery{})
	require.Equal(t, SourceLive, schedule.Matches.Source)
	require.Len(t, schedule.Matches.Items, 3)
	assert.Equal(t, []string{"m1", "m2", "m3"}, []string{
		schedule.Matches.Items[0].UID, schedule.Matches.Items[1].UID, schedule.Matches.Items[2].UID,
	})
	assert.Equal(t, match.StatusCompleted, schedule.Matches.Items[0].Status)
	assert.Nil(t, schedule.Matches.Items[2].TeamAScore)
	assert.Equal(t, []string{"team_a", "team_b", "venue"}, source.query(ContentTypeMatch).Include)

	standings := svc.Standings(ctx, PageQuery{})
	require.Equal(t, SourceLive, standings.Standings.Source)
	assert.Equal(t, 1, standings.Standings.Items[0].Position)
	assert.True(t, standings.Standings.Items[0].Qualified)
	assert.False(t, standings.Standings.Items[2].Qualified)
	assert.Equal(t, "FC", standings.Standings.Items[0].Team.ShortName)
}

func TestContentService_LocaleAndLimitDefaults(t *testing.T) {
	source := newFakeSource()
	svc := NewContentService(source, nil, nil, ContentServiceConfig{Locale: "en-us", DefaultLimit: 50})
	ctx := context.Background()

	svc.Teams(ctx, PageQuery{Limit: 500})
	assert.Equal(t, ContentQuery{Locale: "en-us", Limit: 50}, source.query(ContentTypeTeam))

	svc.Teams(ctx, PageQuery{Locale: "hi-in", Limit: 10})
	assert.Equal(t, ContentQuery{Locale: "hi-in", Limit: 10}, source.query(ContentTypeTeam))
}

func TestContentService_HomeSectionsFallBackIndependently(t *testing.T) {
	source := newFakeSource()
	source.entries[ContentTypeTeam] = []map[string]any{{"uid": "t1", "short_name": "FC"}}
	source.errs[ContentTypeMatch] = errors.New("timeout")
	news := &fakeNews{items: []map[string]any{{"article_id": "n1", "title": "Live headline"}}}
	svc := NewContentService(source, news, nil, ContentServiceConfig{})

	page := svc.Home(context.Background(), PageQuery{})
	assert.Equal(t, SourceLive, page.Teams.Source)
	assert.Equal(t, "Flame Chargers", page.Teams.Items[0].Name)
	assert.Equal(t, SourceFallback, page.Matches.Source)
	assert.Equal(t, fallback.Matches(), page.Matches.Items)
	assert.Equal(t, SourceFallback, page.Standings.Source)
	assert.Equal(t, SourceLive, page.Headlines.Source)
	assert.Equal(t, "n1", page.Headlines.Items[0].UID)
}

func TestContentService_HeadlinesUseOwnLimit(t *testing.T) {
	news := &fakeNews{items: []map[string]any{{"article_id": "n1", "title": "Live headline"}}}
	svc := NewContentService(nil, news, nil, ContentServiceConfig{DefaultLimit: 100})

	svc.Home(context.Background(), PageQuery{})
	svc.News(context.Background(), PageQuery{Limit: 3})

	assert.Equal(t, []int{10, 3}, news.limits)
}

func TestContentService_NewsErrorFallsBack(t *testing.T) {
	svc := NewContentService(nil, &fakeNews{err: errors.New("quota")}, nil, ContentServiceConfig{})

	page := svc.News(context.Background(), PageQuery{})
	assert.Equal(t, SourceFallback, page.Headlines.Source)
	assert.Equal(t, fallback.News(), page.Headlines.Items)
}

func TestContentService_CachesPagesWithinTTL(t *testing.T) {
	source := newFakeSource()
	source.entries[ContentTypeTeam] = []map[string]any{{"uid": "t1", "short_name": "SS"}}
	svc := NewContentService(source, nil, nil, ContentServiceConfig{CacheEnabled: true, CacheTTL: time.Hour})
	ctx := context.Background()

	first := svc.Teams(ctx, PageQuery{})
	second := svc.Teams(ctx, PageQuery{})
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.callCount(ContentTypeTeam))

	svc.Teams(ctx, PageQuery{Locale: "fr-fr"})
	assert.Equal(t, 2, source.callCount(ContentTypeTeam))
}

func TestContentService_CachesFallbackResultsToo(t *testing.T) {
	source := newFakeSource()
	source.errs[ContentTypeTeam] = errors.New("down")
	svc := NewContentService(source, nil, nil, ContentServiceConfig{CacheEnabled: true, CacheTTL: time.Hour})
	ctx := context.Background()

	svc.Teams(ctx, PageQuery{})
	svc.Teams(ctx, PageQuery{})
	assert.Equal(t, 1, source.callCount(ContentTypeTeam))
}

func TestContentService_EnrichesLiveVideosOnly(t *testing.T) {
	source := newFakeSource()
	source.entries[ContentTypeVideo] = []map[string]any{
		{"uid": "v1", "title": "Old", "youtube_id": "yt1", "view_count": 10, "publish_date": "2026-01-01"},
		{"uid": "v2", "title": "New", "youtube_id": "yt2", "publish_date": "2026-02-01"},
		{"uid": "v3", "title": "Undated", "youtube_id": "yt3"},
	}
	stats := &fakeStats{stats: map[string]VideoStats{
		"yt1": {ViewCount: 5000, DurationSeconds: 95},
	}}
	svc := NewContentService(source, nil, stats, ContentServiceConfig{})

	page := svc.Videos(context.Background(), PageQuery{})
	require.Equal(t, SourceLive, page.Videos.Source)
	require.Len(t, page.Videos.Items, 3)
	assert.Equal(t, "v2", page.Videos.Items[0].UID)
	assert.Equal(t, "v1", page.Videos.Items[1].UID)
	assert.Equal(t, "v3", page.Videos.Items[2].UID)
	assert.Equal(t, int64(5000), page.Videos.Items[1].ViewCount)
	assert.Equal(t, 95, page.Videos.Items[1].DurationSeconds)

	fallbackStats := &fakeStats{}
	fallbackSvc := NewContentService(newFakeSource(), nil, fallbackStats, ContentServiceConfig{})
	fallbackPage := fallbackSvc.Videos(context.Background(), PageQuery{})
	assert.Equal(t, fallback.Videos(), fallbackPage.Videos.Items)
	assert.Zero(t, fallbackStats.calls)
}

func TestContentService_EnrichmentFailureKeepsCMSValues(t *testing.T) {
	source := newFakeSource()
	source.entries[ContentTypeVideo] = []map[string]any{
		{"uid": "v1", "youtube_id": "yt1", "view_count": 42},
	}
	svc := NewContentService(source, nil, &fakeStats{err: errors.New("quota exceeded")}, ContentServiceConfig{})

	page := svc.Videos(context.Background(), PageQuery{})
	assert.Equal(t, int64(42), page.Videos.Items[0].ViewCount)
}
