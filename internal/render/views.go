package render

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"
	"time"

	"blogsmith/internal/article/model"
	"blogsmith/internal/content"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	ViewStructured = "structured"
	ViewMarkdown   = "markdown"
)

// Card is one article in the home page list.
type Card struct {
	Article        model.Article
	Preview        string
	ReadingMinutes int
}

type HomeView struct {
	Search      string
	Cards       []Card
	Total       int
	TotalBlogs  int
	Error       string
	StickyError bool
	Suggestions []string
}

type DetailView struct {
	Article  model.Article
	View     string
	Body     template.HTML
	Headings []Heading
}

// Views executes the embedded page templates.
type Views struct {
	tmpl *template.Template
}

func NewViews() (*Views, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"date": FormatDate,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	return &Views{tmpl: tmpl}, nil
}

func (v *Views) Home(w io.Writer, data HomeView) error {
	return v.tmpl.ExecuteTemplate(w, "home.html", data)
}

func (v *Views) Detail(w io.Writer, data DetailView) error {
	return v.tmpl.ExecuteTemplate(w, "detail.html", data)
}

func (v *Views) NotFound(w io.Writer) error {
	return v.tmpl.ExecuteTemplate(w, "notfound.html", nil)
}

// FormatDate renders a timestamp like "January 2, 2006".
func FormatDate(t time.Time) string {
	return t.UTC().Format("January 2, 2006")
}

// Blocks renders structured content blocks as HTML.
func Blocks(blocks []content.Block) template.HTML {
	var b strings.Builder
	for _, blk := range blocks {
		switch blk.Kind {
		case content.KindHeading, content.KindSubheading:
			lvl := blk.DisplayLevel()
			fmt.Fprintf(&b, "<h%d class=\"%s\">%s</h%d>\n", lvl, blk.Kind, html.EscapeString(blk.Text), lvl)
		case content.KindList:
			b.WriteString("<ul>\n")
			for _, item := range blk.Items {
				fmt.Fprintf(&b, "<li>%s</li>\n", item.HTML)
			}
			b.WriteString("</ul>\n")
		default:
			fmt.Fprintf(&b, "<p>%s</p>\n", blk.HTML)
		}
	}
	return template.HTML(b.String())
}
