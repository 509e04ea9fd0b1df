package archive

import (
	"encoding/json"
	"time"
)

const archiveTimestampLayout = "2006-01-02 15:04:05"

// Writing mirrors a single content item as returned by /api/writings.
type Writing struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	ContentType       string `json:"content_type"`
	Content           string `json:"content"`
	WordCount         int    `json:"word_count"`
	CharacterCount    int    `json:"character_count"`
	LineCount         int    `json:"line_count"`
	Mood              string `json:"mood"`
	ExplicitContent   bool   `json:"explicit_content"`
	PublicationStatus string `json:"publication_status"`
	Notes             string `json:"notes"`
	FileTimestamp     string `json:"file_timestamp"`
	Tags              []Tag  `json:"tags"`
}

// ParsedTimestamp returns the file timestamp as time.Time when possible.
func (w Writing) ParsedTimestamp() time.Time {
	return parseTime(w.FileTimestamp)
}

// Tag labels a writing. Name is unique per name; UsageCount is only
// populated by the tag listing endpoint.
type Tag struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	TagType    string `json:"tag_type"`
	UsageCount int    `json:"usage_count"`
}

// WritingPage mirrors the pagination envelope list endpoints return.
type WritingPage struct {
	Items []Writing `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Pages int       `json:"pages"`
}

// TypeCount carries per-content-type counts inside Stats.
type TypeCount struct {
	Count    int `json:"count"`
	Explicit int `json:"explicit"`
}

// TagCount is a tag usage entry in the stats top-tags list.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats mirrors the aggregate snapshot from /api/stats. The client treats
// it as read-only and re-fetches it per visit.
type Stats struct {
	TotalWritings                 int                  `json:"total_writings"`
	TotalWords                    int                  `json:"total_words"`
	AverageWords                  float64              `json:"average_words"`
	ContentTypeDistribution       map[string]TypeCount `json:"content_type_distribution"`
	PublicationStatusDistribution map[string]int       `json:"publication_status_distribution"`
	TopTags                       []TagCount           `json:"top_tags"`
}

// HealthStatus mirrors the /health liveness payload.
type HealthStatus struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	TotalWritings int    `json:"total_writings"`
	Error         string `json:"error"`
}

// Healthy reports whether the backend declared itself healthy.
func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}

// tagList decodes the tag endpoint, which has returned both a bare array
// and a {"tags": [...]} wrapper across backend versions.
type tagList []Tag

func (t *tagList) UnmarshalJSON(data []byte) error {
	var bare []Tag
	if err := json.Unmarshal(data, &bare); err == nil {
		*t = bare
		return nil
	}
	var wrapped struct {
		Tags []Tag `json:"tags"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*t = wrapped.Tags
	return nil
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(archiveTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
