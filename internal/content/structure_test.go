package content

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructureHeadingThenBoldParagraph(t *testing.T) {
	blocks := Structure("## Title\n\nSome **bold** text")

	require.Len(t, blocks, 2)
	assert.Equal(t, KindHeading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].Level)
	assert.Equal(t, 3, blocks[0].DisplayLevel())
	assert.Equal(t, "Title", blocks[0].Text)

	assert.Equal(t, KindParagraph, blocks[1].Kind)
	assert.Equal(t, template.HTML("Some <strong>bold</strong> text"), blocks[1].HTML)
}

func TestStructureHeadingDisplayLevelIsCapped(t *testing.T) {
	blocks := Structure("######Deep")
	require.Len(t, blocks, 1)
	assert.Equal(t, 6, blocks[0].Level)
	assert.Equal(t, 6, blocks[0].DisplayLevel())
	assert.Equal(t, "Deep", blocks[0].Text)
}

func TestStructureDropsDeepHeadingMarkers(t *testing.T) {
	blocks := Structure("### Getting started:")
	require.Len(t, blocks, 1)
	assert.Equal(t, KindSubheading, blocks[0].Kind)
	assert.Equal(t, "Getting started:", blocks[0].Text)
}

func TestStructureNeverFails(t *testing.T) {
	assert.Empty(t, Structure(""))
	assert.Empty(t, Structure("\n\n   \n\n"))
	assert.NotPanics(t, func() { Structure("**\n*\n`\n#") })
}

func TestStructurePreservesOrder(t *testing.T) {
	raw := "# One\n\nfirst paragraph here\n\n## Two\n\nsecond paragraph here"
	blocks := Structure(raw)

	var texts []string
	for _, b := range blocks {
		texts = append(texts, b.Text)
	}
	assert.Equal(t, []string{"One", "first paragraph here", "Two", "second paragraph here"}, texts)
}

func TestStructureCollapsesBlankLines(t *testing.T) {
	blocks := Structure("alpha paragraph\r\n\r\n\r\n\r\n\r\nbeta paragraph")
	require.Len(t, blocks, 2)
	assert.Equal(t, "alpha paragraph", blocks[0].Text)
	assert.Equal(t, "beta paragraph", blocks[1].Text)
}

func TestClassifiers(t *testing.T) {
	r := DefaultRules()

	t.Run("bold line", func(t *testing.T) {
		out, ok := classifyBoldLine("**Key Takeaways**", r)
		require.True(t, ok)
		assert.Equal(t, Block{Kind: KindSubheading, Text: "Key Takeaways"}, out[0])

		_, ok = classifyBoldLine("**one** and **two**", r)
		assert.False(t, ok)
		_, ok = classifyBoldLine("**a\nb**", r)
		assert.False(t, ok)
	})

	t.Run("ordinal", func(t *testing.T) {
		out, ok := classifyOrdinal("**1. Why it matters**", r)
		require.True(t, ok)
		assert.Equal(t, "Why it matters", out[0].Text)

		out, ok = classifyOrdinal("2. Plain step", r)
		require.True(t, ok)
		assert.Equal(t, "Plain step", out[0].Text)

		_, ok = classifyOrdinal("Step 2. later", r)
		assert.False(t, ok)
	})

	t.Run("short", func(t *testing.T) {
		_, ok := classifyShort("KEY POINTS", r)
		assert.True(t, ok)
		_, ok = classifyShort("Consider these options:", r)
		assert.True(t, ok)
		_, ok = classifyShort("TOO:", r)
		assert.False(t, ok, "five runes or fewer")
		_, ok = classifyShort("12345678", r)
		assert.False(t, ok, "no letters")
		_, ok = classifyShort(strings.Repeat("A", 100), r)
		assert.False(t, ok, "too long")
		_, ok = classifyShort("a normal sentence", r)
		assert.False(t, ok)
	})

	t.Run("paragraph", func(t *testing.T) {
		out, ok := classifyParagraph("use `go test` with *care* & <b>", r)
		require.True(t, ok)
		assert.Equal(t, template.HTML("use <code>go test</code> with <em>care</em> &amp; &lt;b&gt;"), out[0].HTML)

		out, _ = classifyParagraph("run `a*b*c` or `**x**` then *done*", r)
		assert.Equal(t, template.HTML("run <code>a*b*c</code> or <code>**x**</code> then <em>done</em>"), out[0].HTML)

		out, _ = classifyParagraph("`<tag>` stays escaped", r)
		assert.Equal(t, template.HTML("<code>&lt;tag&gt;</code> stays escaped"), out[0].HTML)
	})
}

func TestStructureListWithIntroducer(t *testing.T) {
	raw := "Here is why this matters\n- **Speed**: faster builds\n- Safety first\nBenefits:\n- cheaper"
	blocks := Structure(raw)

	require.Len(t, blocks, 4)
	assert.Equal(t, KindParagraph, blocks[0].Kind)
	assert.Equal(t, "Here is why this matters", blocks[0].Text)

	assert.Equal(t, KindList, blocks[1].Kind)
	require.Len(t, blocks[1].Items, 2)
	assert.Equal(t, "**Speed**: faster builds", blocks[1].Items[0].Text)
	assert.Equal(t, template.HTML("<strong>Speed</strong>: faster builds"), blocks[1].Items[0].HTML)
	assert.Equal(t, "Safety first", blocks[1].Items[1].Text)

	assert.Equal(t, KindSubheading, blocks[2].Kind)
	assert.Equal(t, "Benefits:", blocks[2].Text)

	assert.Equal(t, KindList, blocks[3].Kind)
	assert.Equal(t, "cheaper", blocks[3].Items[0].Text)
}

func TestStructureNormalizesStarBullets(t *testing.T) {
	blocks := Structure("Options\n* first\n  *\tsecond")
	require.Len(t, blocks, 2)
	assert.Equal(t, KindParagraph, blocks[0].Kind)
	require.Equal(t, KindList, blocks[1].Kind)
	assert.Equal(t, []ListItem{
		{Text: "first", HTML: "first"},
		{Text: "second", HTML: "second"},
	}, blocks[1].Items)
}

func TestStructureKeepsBoldOpenerAtLineStart(t *testing.T) {
	blocks := Structure("*** bold ***")
	require.Len(t, blocks, 1)
	assert.Equal(t, Block{Kind: KindSubheading, Text: "bold"}, blocks[0])

	blocks = Structure("** Note ** rest")
	require.Len(t, blocks, 1)
	assert.Equal(t, KindParagraph, blocks[0].Kind)
	assert.Equal(t, template.HTML("<strong> Note </strong> rest"), blocks[0].HTML)
}

func TestStructureCollapsesEmphasisRuns(t *testing.T) {
	blocks := Structure("a ***loud*** word")
	require.Len(t, blocks, 1)
	assert.Equal(t, template.HTML("a <strong>loud</strong> word"), blocks[0].HTML)
}

func TestCustomRules(t *testing.T) {
	s := NewStructurer(Rules{ShortMax: 10, ShortMin: 1})
	blocks := s.Structure("Pros and cons:")
	require.Len(t, blocks, 1)
	assert.Equal(t, KindParagraph, blocks[0].Kind)
}
