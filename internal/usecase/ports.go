package usecase

import (
	"context"
	"time"
)

// CMS content type UIDs.
const (
	ContentTypeTeam        = "team"
	ContentTypeVenue       = "venue"
	ContentTypeMatch       = "match"
	ContentTypePointsTable = "points_table"
	ContentTypeVideo       = "video"
	ContentTypeArticle     = "article"
)

// ReferenceIncludes lists the references each content type expands inline.
var ReferenceIncludes = map[string][]string{
	ContentTypeMatch:       {"team_a", "team_b", "venue"},
	ContentTypePointsTable: {"team"},
	ContentTypeVideo:       {"related_match", "related_team"},
}

type ContentQuery struct {
	Locale  string
	Limit   int
	Include []string
}

// ContentSource reads raw entries of one content type. Implementations return
// ErrNotConfigured without a network call when credentials are missing, and
// never substitute data of their own.
type ContentSource interface {
	Entries(ctx context.Context, contentType string, query ContentQuery) ([]map[string]any, error)
}

// NewsSource returns raw headline objects from the news feed.
type NewsSource interface {
	Latest(ctx context.Context, limit int) ([]map[string]any, error)
}

type VideoStats struct {
	ViewCount       int64
	DurationSeconds int
}

// VideoStatsSource looks up platform statistics keyed by video id.
type VideoStatsSource interface {
	Stats(ctx context.Context, videoIDs []string) (map[string]VideoStats, error)
}

type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// EmailSender returns the provider's message id.
type EmailSender interface {
	Send(ctx context.Context, email Email) (string, error)
}

// JobEnqueuer schedules an HTTP callback to this service.
type JobEnqueuer interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}
