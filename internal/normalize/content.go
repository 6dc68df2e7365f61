package normalize

import (
	"github.com/riskibarqy/cricket-league/internal/domain/article"
	"github.com/riskibarqy/cricket-league/internal/domain/team"
	"github.com/riskibarqy/cricket-league/internal/domain/video"
	"github.com/riskibarqy/cricket-league/internal/platform/loosemap"
)

func Video(entry map[string]any) video.Video {
	published := ParseDate(loosemap.String(entry, "publish_date", "published_at", "date"))
	youtubeID := loosemap.String(entry, "youtube_id", "video_id")
	views, _ := loosemap.Float(entry, "view_count", "views")

	out := video.Video{
		UID:             uid(entry),
		Title:           loosemap.String(entry, "title"),
		YouTubeID:       youtubeID,
		Category:        loosemap.String(entry, "category"),
		Type:            loosemap.String(entry, "video_type", "type"),
		PublishedAt:     published,
		DateDisplay:     DisplayDate(published),
		ViewCount:       int64(views),
		DurationSeconds: loosemap.IntOr(entry, 0, "duration", "duration_seconds"),
		Featured:        loosemap.Bool(entry, "featured", "is_featured"),
		ThumbnailURL:    fileURL(entry, "thumbnail"),
	}
	if out.ThumbnailURL == "" {
		out.ThumbnailURL = video.ThumbnailURL(youtubeID)
	}
	if ref := loosemap.Map(entry, "related_match"); ref != nil {
		out.RelatedMatchUID = uid(ref)
	}
	if ref := loosemap.Map(entry, "related_team"); ref != nil {
		out.RelatedTeamCode = Team(ref).ShortName
	} else if code, ok := team.ResolveShortCode(loosemap.String(entry, "related_team")); ok {
		out.RelatedTeamCode = code
	}
	return out
}

func Article(entry map[string]any) article.Article {
	published := ParseDate(loosemap.String(entry, "publish_date", "published_at", "date"))
	author := loosemap.String(entry, "author")
	if author == "" {
		author = loosemap.String(loosemap.Map(entry, "author"), "title", "name")
	}
	return article.Article{
		UID:         uid(entry),
		Title:       loosemap.String(entry, "title"),
		Excerpt:     loosemap.String(entry, "excerpt", "summary"),
		Body:        loosemap.String(entry, "body", "content"),
		Author:      author,
		PublishedAt: published,
		DateDisplay: DisplayDate(published),
		Category:    loosemap.String(entry, "category"),
		ImageURL:    fileURL(entry, "featured_image", "image"),
	}
}

// Headline maps one newsdata.io result. The link doubles as the UID since the
// feed has no stable identifier.
func Headline(item map[string]any) article.Article {
	published := ParseDate(loosemap.String(item, "pubDate", "pub_date"))
	category := loosemap.Strings(item, "category")
	out := article.Article{
		UID:         loosemap.String(item, "article_id", "link"),
		Title:       loosemap.String(item, "title"),
		Excerpt:     loosemap.String(item, "description"),
		Author:      firstOf(loosemap.Strings(item, "creator")),
		PublishedAt: published,
		DateDisplay: DisplayDate(published),
		Category:    firstOf(category),
		ImageURL:    loosemap.String(item, "image_url"),
		Link:        loosemap.String(item, "link"),
		Source:      loosemap.String(item, "source_name", "source_id"),
	}
	return out
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
