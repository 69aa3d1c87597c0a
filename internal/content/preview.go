package content

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// PreviewRules bounds the excerpt. Text longer than MaxLen runes is cut at a
// sentence end or word break found after BreakAfter, else hard-cut.
type PreviewRules struct {
	MaxLen     int
	BreakAfter int
}

func DefaultPreviewRules() PreviewRules {
	return PreviewRules{MaxLen: 200, BreakAfter: 150}
}

const ellipsis = "..."

var (
	reHeadingMarks = regexp.MustCompile(`#{1,6}\s*`)
	reColonBold    = regexp.MustCompile(`:\*\*\s*`)
	reGluedStar    = regexp.MustCompile(`([a-z])\*([A-Z])`)
	reStarRun      = regexp.MustCompile(`\*{2,}`)
	reStarSpan     = regexp.MustCompile(`\*([^*]*)\*`)
	reTickSpan     = regexp.MustCompile("`([^`]*)`")
	reOrdinalLine  = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]*`)
	reSpaces       = regexp.MustCompile(`\s+`)
)

// Summarizer produces markup-free excerpts for list views.
type Summarizer struct {
	rules PreviewRules
}

func NewSummarizer(r PreviewRules) *Summarizer {
	return &Summarizer{rules: r}
}

var defaultSummarizer = NewSummarizer(DefaultPreviewRules())

// Preview returns the excerpt of raw using the default rules.
func Preview(raw string) string {
	return defaultSummarizer.Preview(raw)
}

func (s *Summarizer) Preview(raw string) string {
	clean := Plain(raw)
	runes := []rune(clean)
	if len(runes) <= s.rules.MaxLen {
		return clean
	}

	cut := runes[:s.rules.MaxLen]
	lastDot, lastSpace := -1, -1
	for i, r := range cut {
		switch r {
		case '.':
			lastDot = i
		case ' ':
			lastSpace = i
		}
	}
	switch {
	case lastDot > s.rules.BreakAfter:
		return string(cut[:lastDot+1])
	case lastSpace > s.rules.BreakAfter:
		return string(cut[:lastSpace]) + ellipsis
	default:
		return string(cut) + ellipsis
	}
}

// Plain strips heading, emphasis, code, bullet and ordinal markup and
// collapses whitespace. Hyphens inside words are kept.
func Plain(raw string) string {
	s := reHeadingMarks.ReplaceAllString(raw, "")
	s = reColonBold.ReplaceAllString(s, ": ")
	s = reGluedStar.ReplaceAllString(s, "$1 $2")
	s = reStarRun.ReplaceAllString(s, "")
	s = reStarSpan.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "*", "")
	s = reTickSpan.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "`", "")
	s = strings.ReplaceAll(s, "•", "")
	s = reOrdinalLine.ReplaceAllString(s, "")
	s = stripDashBullets(s)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripDashBullets drops dashes that start a line or follow whitespace.
func stripDashBullets(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := true
	for _, r := range s {
		if r == '-' && prevSpace {
			continue
		}
		b.WriteRune(r)
		prevSpace = unicode.IsSpace(r)
	}
	return b.String()
}

// ReadingMinutes estimates reading time at 200 words per minute.
func ReadingMinutes(raw string) int {
	words := len(strings.Fields(raw))
	return max(1, int(math.Ceil(float64(words)/200)))
}
