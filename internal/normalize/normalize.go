// Package normalize maps raw CMS and news entries onto the view models pages
// render. Nothing here fails: every absent or malformed field has a default.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-league/internal/platform/loosemap"
)

const (
	DisplayDateLayout = "Jan 2, 2006"
	DateTBD           = "TBD"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate accepts the date forms the CMS and the news feed emit.
func ParseDate(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}
	return nil
}

// DisplayDate renders t as "Jan 2, 2006" in its own offset, or TBD.
func DisplayDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return DateTBD
	}
	return t.Format(DisplayDateLayout)
}

// Overs renders an overs value without arithmetic: 18.4 stays "18.4" because
// the digit after the point counts balls.
func Overs(raw any) string {
	switch v := raw.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return strings.TrimSpace(v)
	default:
		return ""
	}
}

func uid(entry map[string]any) string {
	return loosemap.String(entry, "uid")
}

func fileURL(entry map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := entry[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		default:
			if url := loosemap.String(loosemap.AsMap(v), "url", "href"); url != "" {
				return url
			}
		}
	}
	return ""
}
