package video

import (
	"strings"
	"time"
)

type Video struct {
	UID             string
	Title           string
	YouTubeID       string
	Category        string
	Type            string
	RelatedMatchUID string
	RelatedTeamCode string
	PublishedAt     *time.Time
	DateDisplay     string
	ViewCount       int64
	DurationSeconds int
	Featured        bool
	ThumbnailURL    string
}

// ThumbnailURL derives the platform thumbnail from a video id.
func ThumbnailURL(youtubeID string) string {
	id := strings.TrimSpace(youtubeID)
	if id == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
