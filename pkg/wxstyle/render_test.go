package wxstyle

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yockii/wx_publisher/pkg/mdtree"
	"github.com/yockii/wx_publisher/pkg/theme"
)

const sample = "# 标题\n\n" +
	"正文 **加粗** *斜体* `code` [链接](https://example.com)\n\n" +
	"## 二级\n\n" +
	"> 引用内容\n\n" +
	"- 一\n- 二\n\n" +
	"1. 甲\n2. 乙\n\n" +
	"| a | b |\n|:-:|--:|\n| 1 | 2 |\n\n| 3 | 4 |\n\n" +
	"![图](https://img.example.com/a.png)\n\n" +
	"```go\nfunc main() {}\n```\n\n" +
	"---\n"

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderDeterministic(t *testing.T) {
	for _, th := range theme.List() {
		a := Render(mdtree.Parse(sample), th)
		b := Render(mdtree.Parse(sample), th)
		assert.Equal(t, a, b, th.ID)
	}
}

func TestRenderNoStylingLeakage(t *testing.T) {
	src := sample + "\n<script>alert(1)</script>\n\n<style>p{}</style>\n\n[x](javascript:alert(1))\n"
	for _, th := range theme.List() {
		out := Render(mdtree.Parse(src), th)
		assert.NotContains(t, out, "<style", th.ID)
		assert.NotContains(t, out, "<script", th.ID)
		assert.NotContains(t, out, "class=", th.ID)
		assert.NotContains(t, out, "javascript:", th.ID)
	}
}

func TestRenderRootWrappedOnce(t *testing.T) {
	th := theme.Default()
	out := Render(mdtree.Parse(sample), th)
	doc := mustDoc(t, out)
	root := doc.Find("body > section")
	require.Equal(t, 1, root.Length())
	st, _ := root.Attr("style")
	assert.Contains(t, st, "background-color: "+th.SecondaryColor)
	assert.True(t, strings.HasPrefix(out, "<section "))
	assert.True(t, strings.HasSuffix(out, "</section>"))
}

func TestRenderEmpty(t *testing.T) {
	out := Render(mdtree.Parse(""), theme.Default())
	doc := mustDoc(t, out)
	assert.Equal(t, 1, doc.Find("section").Length())
	assert.Equal(t, 0, doc.Find("section").Children().Length())
	assert.NotPanics(t, func() { Render(nil, theme.Default()) })
}

func TestRenderEveryElementStyled(t *testing.T) {
	doc := mustDoc(t, Render(mdtree.Parse(sample), theme.Default()))
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		switch name {
		case "thead", "tbody", "tr", "br":
			return
		}
		// 高亮 span 不一定带颜色
		if name == "span" && s.ParentsFiltered("pre").Length() > 0 {
			return
		}
		st, ok := s.Attr("style")
		assert.True(t, ok && st != "", "element %s has no style", name)
	})
}

func TestRenderImageWrappedOnce(t *testing.T) {
	tree := mdtree.Parse("![a](a.png)\n\ntext ![b](b.png) more")
	th := theme.Default()
	first := Render(tree, th)
	second := Render(tree, th)
	assert.Equal(t, first, second)

	doc := mustDoc(t, second)
	imgs := doc.Find("img")
	require.Equal(t, 2, imgs.Length())
	imgs.Each(func(_ int, img *goquery.Selection) {
		parent := img.Parent()
		assert.Equal(t, "section", goquery.NodeName(parent))
		st, _ := parent.Attr("style")
		assert.Contains(t, st, "text-align: center")
		assert.Equal(t, 0, parent.ParentsFiltered("section[style*='text-align: center']").Length())
	})
}

func TestRenderInlineVsBlockCode(t *testing.T) {
	doc := mustDoc(t, Render(mdtree.Parse("inline `x` here\n\n```\nblock\n```\n"), theme.Default()))
	inline, _ := doc.Find("p code").Attr("style")
	block, _ := doc.Find("pre code").Attr("style")
	require.NotEmpty(t, inline)
	require.NotEmpty(t, block)
	assert.NotEqual(t, inline, block)
	assert.Contains(t, inline, "padding: 3px 8px")
	assert.NotContains(t, block, "padding")
}

func TestRenderEscapesAndEntities(t *testing.T) {
	out := Render(mdtree.Parse(`a \*not em\* b`), theme.Default())
	assert.Contains(t, out, "a *not em* b")
	assert.NotContains(t, out, `\*`)
	assert.NotContains(t, out, "<em")

	out = Render(mdtree.Parse("AT&amp;T &copy; 1 &lt; 2"), theme.Default())
	assert.Contains(t, out, "AT&amp;T")
	assert.NotContains(t, out, "&amp;amp;")
	assert.NotContains(t, out, "&amp;copy;")
	assert.Equal(t, "AT&T \u00a9 1 < 2", mustDoc(t, out).Find("p").Text())
}

func TestRenderHighlight(t *testing.T) {
	out := Render(mdtree.Parse("```go\npackage main\n```\n"), theme.Default())
	doc := mustDoc(t, out)
	assert.Equal(t, "package main", doc.Find("pre code").Text())
	assert.Greater(t, doc.Find("pre code span").Length(), 0)

	plain := Render(mdtree.Parse("```nosuchlang\n<b>x</b>\n```\n"), theme.Default())
	assert.Contains(t, plain, "&lt;b&gt;x&lt;/b&gt;")
	assert.Equal(t, 0, mustDoc(t, plain).Find("pre code span").Length())
}

func TestRenderTable(t *testing.T) {
	th := theme.Default()
	doc := mustDoc(t, Render(mdtree.Parse("| a | b |\n|:-:|--:|\n| 1 | 2 |\n\n| 3 | 4 |\n\n| 5 | 6 |\n"), th))
	require.Equal(t, 1, doc.Find("table").Length())
	assert.Equal(t, 3, doc.Find("tbody tr").Length())

	thStyle, _ := doc.Find("th").First().Attr("style")
	assert.Contains(t, thStyle, "background-color: "+th.PrimaryColor)
	assert.Contains(t, thStyle, "color: #ffffff")
	assert.Contains(t, thStyle, "text-align: center")

	rows := doc.Find("tbody tr")
	first, _ := rows.Eq(0).Find("td").First().Attr("style")
	second, _ := rows.Eq(1).Find("td").First().Attr("style")
	third, _ := rows.Eq(2).Find("td").First().Attr("style")
	assert.NotEqual(t, first, second)
	assert.Equal(t, first, third)

	right, _ := rows.Eq(0).Find("td").Eq(1).Attr("style")
	assert.Contains(t, right, "text-align: right")
}

func TestRenderLists(t *testing.T) {
	th := theme.Default()
	doc := mustDoc(t, Render(mdtree.Parse("- a\n- b\n\ntext\n\n3. c\n4. d\n"), th))
	bullets := doc.Find("ul > li > span")
	require.Equal(t, 2, bullets.Length())
	assert.Equal(t, "●", bullets.First().Text())
	st, _ := bullets.First().Attr("style")
	assert.Contains(t, st, "position: absolute")

	ol := doc.Find("ol")
	start, _ := ol.Attr("start")
	assert.Equal(t, "3", start)
	assert.Equal(t, 0, ol.Find("span").Length())
	assert.Equal(t, 0, doc.Find("li p").Length())
}

func TestRenderQuoteVariants(t *testing.T) {
	src := "> 名言"

	bar := mustDoc(t, Render(mdtree.Parse(src), theme.Resolve("professional")))
	st, _ := bar.Find("blockquote").Attr("style")
	assert.Contains(t, st, "border-left: 4px solid")

	pull := mustDoc(t, Render(mdtree.Parse(src), theme.Resolve("insight")))
	st, _ = pull.Find("blockquote").Attr("style")
	assert.NotContains(t, st, "border-left")
	assert.Contains(t, st, "border-top")
	assert.Contains(t, st, "border-bottom")
	assert.Contains(t, st, "text-align: center")

	split := theme.Resolve("insight")
	split.QuoteStyle = theme.QuoteBar
	st, _ = mustDoc(t, Render(mdtree.Parse(src), split)).Find("blockquote").Attr("style")
	assert.Contains(t, st, "border-left")
}

func TestRenderParagraphIndent(t *testing.T) {
	indented, _ := mustDoc(t, Render(mdtree.Parse("段落"), theme.Resolve("insight"))).Find("p").Attr("style")
	assert.Contains(t, indented, "text-indent: 2em")
	assert.Contains(t, indented, "letter-spacing: 1px")

	flat, _ := mustDoc(t, Render(mdtree.Parse("段落"), theme.Resolve("professional"))).Find("p").Attr("style")
	assert.NotContains(t, flat, "text-indent")
	assert.Contains(t, flat, "letter-spacing: 0.5px")
}

func TestRenderStrongUsesHeadingColor(t *testing.T) {
	th := theme.Resolve("tech")
	st, _ := mustDoc(t, Render(mdtree.Parse("**粗**"), th)).Find("strong").Attr("style")
	assert.Contains(t, st, "color: "+th.HeadingColor)
}

func TestRenderMarkdownRejectsBinary(t *testing.T) {
	_, err := RenderMarkdown("\xff\xfe", theme.Default())
	assert.ErrorIs(t, err, mdtree.ErrInvalidInput)

	out, err := RenderMarkdown("# ok", theme.Default())
	require.NoError(t, err)
	assert.Contains(t, out, "<h1 ")
}

func TestRenderDoesNotMutateTree(t *testing.T) {
	tree := mdtree.Parse(sample)
	blocks := len(tree.Blocks)
	Render(tree, theme.Default())
	Render(tree, theme.Resolve("dark"))
	assert.Equal(t, blocks, len(tree.Blocks))
}
