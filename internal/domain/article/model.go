package article

import "time"

// Article covers both CMS stories and headlines from the news feed. Link and
// Source are set only for the latter.
type Article struct {
	UID         string
	Title       string
	Excerpt     string
	Body        string
	Author      string
	PublishedAt *time.Time
	DateDisplay string
	Category    string
	ImageURL    string
	Link        string
	Source      string
}
