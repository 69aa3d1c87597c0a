// Package content turns raw generated article text into display blocks and
// plain-text previews.
package content

import (
	"html"
	"html/template"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Kind int

const (
	KindHeading Kind = iota + 1
	KindSubheading
	KindParagraph
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindSubheading:
		return "subheading"
	case KindParagraph:
		return "paragraph"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

type ListItem struct {
	Text string
	HTML template.HTML
}

// Block is one renderable unit. Level is only set for headings and counts the
// marker run; HTML is the escaped paragraph with inline emphasis applied.
type Block struct {
	Kind  Kind
	Level int
	Text  string
	HTML  template.HTML
	Items []ListItem
}

// DisplayLevel is the HTML heading rank used to render the block.
func (b Block) DisplayLevel() int {
	switch b.Kind {
	case KindHeading:
		return min(b.Level+1, 6)
	case KindSubheading:
		return 3
	default:
		return 0
	}
}

// Rules holds the heuristic thresholds of the classifier chain.
type Rules struct {
	// Subheadings from short paragraphs must be shorter than ShortMax runes
	// and longer than ShortMin runes.
	ShortMax int
	ShortMin int
	// ListIntroducers are phrases that turn a paragraph into a list section.
	ListIntroducers []string
}

func DefaultRules() Rules {
	return Rules{
		ShortMax:        100,
		ShortMin:        5,
		ListIntroducers: []string{"Benefits:", "How to use it:"},
	}
}

var (
	reEmphasisRun  = regexp.MustCompile(`\*{3,}`)
	reStarBullet   = regexp.MustCompile(`(?m)^[ \t]*\*[ \t]+`)
	reDeepHeading  = regexp.MustCompile(`(?m)^[ \t]*#{3,}[ \t]+`)
	reBlankRun     = regexp.MustCompile(`\n{3,}`)
	reParagraphGap = regexp.MustCompile(`\n\s*\n`)
	reHeadingRun   = regexp.MustCompile(`^#+`)
	reHeadingStrip = regexp.MustCompile(`^#+\s*`)
	reOrdinal      = regexp.MustCompile(`^\*?\*?\d+\.\s*\*?\*?`)
	reBold         = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic       = regexp.MustCompile(`\*(.+?)\*`)
	reCode         = regexp.MustCompile("`(.+?)`")
)

// classifier inspects one trimmed paragraph. It reports false when the
// paragraph is not its shape.
type classifier func(p string, r Rules) ([]Block, bool)

// Structurer applies an ordered classifier chain; the first match wins.
type Structurer struct {
	rules       Rules
	classifiers []classifier
}

func NewStructurer(r Rules) *Structurer {
	return &Structurer{
		rules: r,
		classifiers: []classifier{
			classifyHeading,
			classifyBoldLine,
			classifyOrdinal,
			classifyShort,
			classifyList,
			classifyParagraph,
		},
	}
}

var defaultStructurer = NewStructurer(DefaultRules())

// Structure splits raw content into display blocks using the default rules.
func Structure(raw string) []Block {
	return defaultStructurer.Structure(raw)
}

func (s *Structurer) Structure(raw string) []Block {
	var blocks []Block
	for _, section := range reParagraphGap.Split(normalize(raw), -1) {
		p := strings.TrimSpace(section)
		if p == "" {
			continue
		}
		for _, c := range s.classifiers {
			if out, ok := c(p, s.rules); ok {
				blocks = append(blocks, out...)
				break
			}
		}
	}
	return blocks
}

func normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = reEmphasisRun.ReplaceAllString(s, "**")
	s = reStarBullet.ReplaceAllString(s, "• ")
	s = reDeepHeading.ReplaceAllString(s, "")
	s = reBlankRun.ReplaceAllString(s, "\n\n")
	return s
}

func classifyHeading(p string, _ Rules) ([]Block, bool) {
	if !strings.HasPrefix(p, "#") {
		return nil, false
	}
	level := len(reHeadingRun.FindString(p))
	text := reHeadingStrip.ReplaceAllString(p, "")
	return []Block{{Kind: KindHeading, Level: level, Text: text}}, true
}

func classifyBoldLine(p string, _ Rules) ([]Block, bool) {
	inner, ok := boldInner(p)
	if !ok || strings.Contains(p, "\n") || strings.TrimSpace(inner) == "" {
		return nil, false
	}
	return []Block{subheading(inner)}, true
}

func classifyOrdinal(p string, _ Rules) ([]Block, bool) {
	if !reOrdinal.MatchString(p) {
		return nil, false
	}
	text := reOrdinal.ReplaceAllString(p, "")
	text = strings.TrimSuffix(text, "**")
	return []Block{subheading(text)}, true
}

func classifyShort(p string, r Rules) ([]Block, bool) {
	n := utf8.RuneCountInString(p)
	if n >= r.ShortMax || n <= r.ShortMin {
		return nil, false
	}
	if !isUpper(p) && !strings.HasSuffix(p, ":") {
		return nil, false
	}
	return []Block{subheading(p)}, true
}

func classifyList(p string, r Rules) ([]Block, bool) {
	lines := nonBlankLines(p)
	if !looksLikeList(p, len(lines), r) {
		return nil, false
	}

	var (
		out     []Block
		pending []ListItem
	)
	flush := func() {
		if len(pending) > 0 {
			out = append(out, Block{Kind: KindList, Items: pending})
			pending = nil
		}
	}

	for i, line := range lines {
		if isBulletLine(line, i) {
			text := unwrapBold(strings.TrimSpace(stripBullet(line)))
			if text != "" {
				pending = append(pending, ListItem{Text: text, HTML: boldOnly(text)})
			}
			continue
		}
		flush()
		if strings.HasSuffix(line, ":") || hasIntroducerPrefix(line, r) {
			out = append(out, subheading(line))
		} else {
			out = append(out, Block{Kind: KindParagraph, Text: line, HTML: boldOnly(line)})
		}
	}
	flush()
	return out, len(out) > 0
}

func classifyParagraph(p string, _ Rules) ([]Block, bool) {
	return []Block{{Kind: KindParagraph, Text: p, HTML: inline(p)}}, true
}

func looksLikeList(p string, lineCount int, r Rules) bool {
	if strings.Contains(p, "•") || strings.Contains(p, "\n-") {
		return true
	}
	if strings.Contains(p, "*") && lineCount > 1 {
		return true
	}
	for _, phrase := range r.ListIntroducers {
		if strings.Contains(p, phrase) {
			return true
		}
	}
	return false
}

func hasIntroducerPrefix(line string, r Rules) bool {
	lower := strings.ToLower(line)
	for _, phrase := range r.ListIntroducers {
		if strings.HasPrefix(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

func isBulletLine(line string, idx int) bool {
	if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-") {
		return true
	}
	return idx > 0 && !strings.HasSuffix(line, ":")
}

// stripBullet removes one leading bullet glyph. A leading "**" is bold, not a
// bullet, and is kept.
func stripBullet(line string) string {
	switch {
	case strings.HasPrefix(line, "•"):
		return strings.TrimPrefix(line, "•")
	case strings.HasPrefix(line, "-"):
		return strings.TrimPrefix(line, "-")
	case strings.HasPrefix(line, "*") && !strings.HasPrefix(line, "**"):
		return strings.TrimPrefix(line, "*")
	}
	return line
}

func nonBlankLines(p string) []string {
	raw := strings.Split(p, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// boldInner returns the text of s when s is wrapped in exactly one "**" pair.
func boldInner(s string) (string, bool) {
	if len(s) < 4 || !strings.HasPrefix(s, "**") || !strings.HasSuffix(s, "**") {
		return "", false
	}
	inner := s[2 : len(s)-2]
	if strings.Contains(inner, "**") {
		return "", false
	}
	return inner, true
}

func unwrapBold(s string) string {
	if inner, ok := boldInner(s); ok {
		return strings.TrimSpace(inner)
	}
	return s
}

func subheading(text string) Block {
	return Block{Kind: KindSubheading, Text: strings.TrimSpace(strings.ReplaceAll(text, "**", ""))}
}

// isUpper reports whether s has at least one letter and no lower-case ones.
func isUpper(s string) bool {
	letters := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters = true
		}
	}
	return letters
}

func boldOnly(s string) template.HTML {
	out := reBold.ReplaceAllString(html.EscapeString(s), "<strong>$1</strong>")
	return template.HTML(out)
}

// inline applies bold, italic and code markup. Code spans are cut out first
// so their contents are escaped but never emphasized.
func inline(s string) template.HTML {
	var b strings.Builder
	last := 0
	for _, m := range reCode.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(emphasis(s[last:m[0]]))
		b.WriteString("<code>" + html.EscapeString(s[m[2]:m[3]]) + "</code>")
		last = m[1]
	}
	b.WriteString(emphasis(s[last:]))
	return template.HTML(b.String())
}

func emphasis(s string) string {
	out := html.EscapeString(s)
	out = reBold.ReplaceAllString(out, "<strong>$1</strong>")
	return reItalic.ReplaceAllString(out, "<em>$1</em>")
}
