// Package render converts archive writings into display fragments. All
// functions are pure: the same writing always produces the same fragment,
// so re-rendering after a gate toggle is safe and cheap.
package render

import (
	"fmt"
	"strings"
	"time"

	"muse/internal/archive"
)

// excerptLen is the raw character budget for card excerpts. Truncation is
// by rune count, not word boundaries, matching the archive's own snippets.
const excerptLen = 150

const dateLayout = "Jan 2, 2006"

// Card is the compact fragment used in dashboard, browse and search grids.
// Explicit is always set for explicit writings; whether the card is shown
// at all is the gate's decision, not the card's.
type Card struct {
	Title     string
	TypeBadge string
	Explicit  bool
	Excerpt   string
	WordCount int
	Date      string
	TagNames  []string
}

// NewCard builds the card fragment for a writing.
func NewCard(w archive.Writing) Card {
	return Card{
		Title:     Sanitize(w.Title),
		TypeBadge: TitleCase(w.ContentType),
		Explicit:  w.ExplicitContent,
		Excerpt:   Excerpt(Sanitize(w.Content)),
		WordCount: w.WordCount,
		Date:      FormatDate(w.ParsedTimestamp()),
		TagNames:  tagNames(w.Tags),
	}
}

// FullView is the reader fragment: title, a metadata line, tags, and the
// body split into paragraphs according to the content type.
type FullView struct {
	Title      string
	Meta       string
	TagNames   []string
	Paragraphs []string
}

// NewFullView builds the reader fragment for a writing.
func NewFullView(w archive.Writing) FullView {
	meta := []string{TitleCase(w.ContentType)}
	if w.WordCount > 0 {
		meta = append(meta, fmt.Sprintf("%d words", w.WordCount))
	}
	if date := FormatDate(w.ParsedTimestamp()); date != "" {
		meta = append(meta, date)
	}
	if status := strings.TrimSpace(w.PublicationStatus); status != "" {
		meta = append(meta, TitleCase(status))
	}
	if mood := strings.TrimSpace(w.Mood); mood != "" {
		meta = append(meta, Sanitize(mood))
	}
	return FullView{
		Title:      Sanitize(w.Title),
		Meta:       strings.Join(meta, " · "),
		TagNames:   tagNames(w.Tags),
		Paragraphs: FormatBody(w.ContentType, Sanitize(w.Content)),
	}
}

// Excerpt returns the first 150 characters of body, with an ellipsis
// appended only when something was cut. The result is always a prefix of
// the input.
func Excerpt(body string) string {
	runes := []rune(body)
	if len(runes) <= excerptLen {
		return body
	}
	return string(runes[:excerptLen]) + "..."
}

// verseTypes are rendered line by line rather than paragraph by paragraph.
var verseTypes = map[string]struct{}{
	"poetry": {},
	"song":   {},
}

// FormatBody splits a writing body into display paragraphs.
//
// Verse types split on single newlines, with blank lines preserved as a
// single-space paragraph so the vertical rhythm of the piece survives.
// Dialogue splits on blank-line-delimited blocks without trimming, keeping
// speaker indentation intact. Everything else splits on double newlines
// with each paragraph trimmed.
func FormatBody(contentType, body string) []string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	if _, ok := verseTypes[contentType]; ok {
		lines := strings.Split(body, "\n")
		paragraphs := make([]string, 0, len(lines))
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				paragraphs = append(paragraphs, " ")
				continue
			}
			paragraphs = append(paragraphs, line)
		}
		return paragraphs
	}

	blocks := strings.Split(body, "\n\n")
	paragraphs := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if contentType == "dialogue" {
			if block != "" {
				paragraphs = append(paragraphs, block)
			}
			continue
		}
		trimmed := strings.TrimSpace(block)
		if trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

// FormatDate renders a timestamp for display. Zero times yield "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// Sanitize strips terminal escape sequences and non-printing control
// characters from archive content. Newlines and tabs survive; nothing the
// archive returns can move the cursor or restyle the screen.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inEscape := false
	for _, r := range s {
		if inEscape {
			// CSI/OSC parameter bytes; a letter or BEL terminates.
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == 0x07 {
				inEscape = false
			}
			continue
		}
		switch {
		case r == 0x1b:
			inEscape = true
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			// drop other C0 controls
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TitleCase converts a snake_case or lowercase label to Title Case.
func TitleCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}

func tagNames(tags []archive.Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		if name := Sanitize(strings.TrimSpace(tag.Name)); name != "" {
			names = append(names, name)
		}
	}
	return names
}
