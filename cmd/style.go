package cmd

import (
	"fmt"
	"sort"
	"strings"

	"blogsmith/internal/article/model"
	"blogsmith/internal/content"
	"blogsmith/internal/render"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("#7aa2f7")
	colorMuted  = lipgloss.Color("#6b7280")

	titleStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	subStyle     = lipgloss.NewStyle().Bold(true)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1).
			Width(80)
)

func renderList(res model.ListResult) string {
	if res.TotalBlogs == 0 {
		return "No blog posts yet. Run `blogsmith generate <topic>` to create one."
	}
	if res.Total == 0 {
		return "No posts found."
	}

	var b strings.Builder
	for _, a := range res.Blogs {
		card := strings.Join([]string{
			titleStyle.Render(a.Title),
			metaStyle.Render(fmt.Sprintf("%s · %s · ~%d min read · %s",
				render.FormatDate(a.CreatedAt), a.Topic, content.ReadingMinutes(a.Content), a.ID)),
			content.Preview(a.Content),
		}, "\n")
		b.WriteString(cardStyle.Render(card))
		b.WriteString("\n")
	}
	footer := fmt.Sprintf("Showing %d of %d (%d total)", len(res.Blogs), res.Total, res.TotalBlogs)
	if res.HasMore {
		footer += fmt.Sprintf(", next page at --offset %d", res.Offset+res.Limit)
	}
	b.WriteString(metaStyle.Render(footer))
	return b.String()
}

// renderArticle prints the structured body, or the stored text when raw.
func renderArticle(a model.Article, raw bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.Title) + "\n")
	b.WriteString(metaStyle.Render(render.FormatDate(a.CreatedAt)+" · "+a.Topic+" · "+a.ID) + "\n\n")
	if raw {
		b.WriteString(a.Content)
		return b.String()
	}

	for _, blk := range content.Structure(a.Content) {
		switch blk.Kind {
		case content.KindHeading:
			b.WriteString(headingStyle.Render(blk.Text))
		case content.KindSubheading:
			b.WriteString(subStyle.Render(blk.Text))
		case content.KindList:
			for i, item := range blk.Items {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString("  • " + content.Plain(item.Text))
			}
		default:
			b.WriteString(content.Plain(blk.Text))
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStats(st model.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Articles: %d\n", st.TotalBlogs)
	fmt.Fprintf(&b, "Unique topics: %d\n", st.UniqueTopics)
	fmt.Fprintf(&b, "Average length: %d characters\n", st.AverageContentLength)
	if st.LatestBlog != nil {
		fmt.Fprintf(&b, "Latest: %s (%s)\n", st.LatestBlog.Title, render.FormatDate(st.LatestBlog.CreatedAt))
		fmt.Fprintf(&b, "Oldest: %s (%s)\n", st.OldestBlog.Title, render.FormatDate(st.OldestBlog.CreatedAt))
	}

	topics := make([]string, 0, len(st.TopicDistribution))
	for t := range st.TopicDistribution {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool {
		ci, cj := st.TopicDistribution[topics[i]], st.TopicDistribution[topics[j]]
		if ci != cj {
			return ci > cj
		}
		return topics[i] < topics[j]
	})
	for _, t := range topics {
		fmt.Fprintf(&b, "  %-30s %d\n", t, st.TopicDistribution[t])
	}
	return strings.TrimRight(b.String(), "\n")
}
