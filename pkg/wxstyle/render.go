package wxstyle

import (
	"strconv"
	"strings"

	"github.com/yockii/wx_publisher/pkg/mdtree"
	"github.com/yockii/wx_publisher/pkg/theme"
)

type scope int

const (
	scopeBody scope = iota
	scopeQuote
	scopeList
)

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")

var textEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;")

type renderer struct {
	sheet *Sheet
	dark  bool
	b     strings.Builder
}

// Render 将文档树渲染为只带内联样式的 HTML 片段，不修改文档树
func Render(doc *mdtree.Document, th theme.Theme) string {
	r := &renderer{sheet: NewSheet(th), dark: th.Dark()}
	r.open("section", r.sheet.Root)
	if doc != nil {
		r.blocks(doc.Blocks, scopeBody)
	}
	r.b.WriteString("</section>")
	return r.b.String()
}

// RenderMarkdown 解析并渲染 Markdown 文本
func RenderMarkdown(src string, th theme.Theme) (string, error) {
	if err := mdtree.Validate(src); err != nil {
		return "", err
	}
	return Render(mdtree.Parse(src), th), nil
}

func (r *renderer) open(tag, style string) {
	r.b.WriteString("<" + tag + ` style="` + attrEscaper.Replace(style) + `">`)
}

func (r *renderer) close(tag string) {
	r.b.WriteString("</" + tag + ">")
}

func (r *renderer) blocks(blocks []mdtree.Block, sc scope) {
	for _, b := range blocks {
		r.block(b, sc)
	}
}

func (r *renderer) block(b mdtree.Block, sc scope) {
	s := r.sheet
	switch b := b.(type) {
	case *mdtree.Paragraph:
		switch {
		case sc == scopeList && b.Tight:
			r.inlines(b.Children)
		case sc == scopeList:
			r.open("p", s.ListParagraph)
			r.inlines(b.Children)
			r.close("p")
		case sc == scopeQuote:
			r.open("p", s.QuoteParagraph)
			r.inlines(b.Children)
			r.close("p")
		default:
			r.open("p", s.Paragraph)
			r.inlines(b.Children)
			r.close("p")
		}
	case *mdtree.Heading:
		level := clampLevel(b.Level)
		tag := "h" + strconv.Itoa(level)
		r.open(tag, s.Headings[level])
		r.inlines(b.Children)
		r.close(tag)
	case *mdtree.List:
		r.list(b)
	case *mdtree.BlockQuote:
		r.open("blockquote", s.Quote)
		r.blocks(b.Children, scopeQuote)
		r.close("blockquote")
	case *mdtree.CodeBlock:
		r.open("pre", s.Pre)
		r.open("code", s.PreCode)
		r.b.WriteString(highlight(strings.TrimSuffix(b.Text, "\n"), b.Language, r.dark))
		r.close("code")
		r.close("pre")
	case *mdtree.HorizontalRule:
		r.open("hr", s.HR)
	case *mdtree.Image:
		r.open("section", s.ImageWrap)
		r.img(b.Src, b.Alt, b.Title)
		r.close("section")
	case *mdtree.Table:
		r.table(b)
	}
}

func (r *renderer) list(l *mdtree.List) {
	s := r.sheet
	if l.Ordered {
		r.b.WriteString(`<ol style="` + attrEscaper.Replace(s.OL) + `"`)
		if l.Start > 1 {
			r.b.WriteString(` start="` + strconv.Itoa(l.Start) + `"`)
		}
		r.b.WriteString(">")
		for _, item := range l.Items {
			r.open("li", s.OrderedItem)
			r.blocks(item.Children, scopeList)
			r.close("li")
		}
		r.close("ol")
		return
	}
	r.open("ul", s.UL)
	for _, item := range l.Items {
		r.open("li", s.BulletItem)
		r.open("span", s.Bullet)
		r.b.WriteString("●")
		r.close("span")
		r.blocks(item.Children, scopeList)
		r.close("li")
	}
	r.close("ul")
}

func (r *renderer) table(t *mdtree.Table) {
	s := r.sheet
	align := func(i int) mdtree.Align {
		if i < len(t.Align) {
			return t.Align[i]
		}
		return mdtree.AlignNone
	}
	r.open("section", s.TableWrap)
	r.open("table", s.Table)
	r.b.WriteString("<thead><tr>")
	for i, cell := range t.Header.Cells {
		r.open("th", s.Cell(true, 0, align(i)))
		r.inlines(cell.Children)
		r.close("th")
	}
	r.b.WriteString("</tr></thead><tbody>")
	for ri, row := range t.Rows {
		r.b.WriteString("<tr>")
		for i, cell := range row.Cells {
			r.open("td", s.Cell(false, ri, align(i)))
			r.inlines(cell.Children)
			r.close("td")
		}
		r.b.WriteString("</tr>")
	}
	r.b.WriteString("</tbody></table></section>")
}

func (r *renderer) inlines(nodes []mdtree.Inline) {
	s := r.sheet
	for _, n := range nodes {
		switch n := n.(type) {
		case *mdtree.Text:
			r.b.WriteString(textEscaper.Replace(n.Value))
		case *mdtree.LineBreak:
			r.b.WriteString("<br>")
		case *mdtree.Emphasis:
			r.open("em", s.Em)
			r.inlines(n.Children)
			r.close("em")
		case *mdtree.Strong:
			r.open("strong", s.Strong)
			r.inlines(n.Children)
			r.close("strong")
		case *mdtree.Strikethrough:
			r.open("del", s.Del)
			r.inlines(n.Children)
			r.close("del")
		case *mdtree.InlineCode:
			r.open("code", s.InlineCode)
			r.b.WriteString(textEscaper.Replace(n.Text))
			r.close("code")
		case *mdtree.Link:
			r.b.WriteString(`<a href="` + attrEscaper.Replace(safeURL(n.Href)) + `"`)
			if n.Title != "" {
				r.b.WriteString(` title="` + attrEscaper.Replace(n.Title) + `"`)
			}
			r.b.WriteString(` style="` + attrEscaper.Replace(s.Link) + `">`)
			r.inlines(n.Children)
			r.close("a")
		case *mdtree.InlineImage:
			r.open("span", s.InlineImage)
			r.img(n.Src, n.Alt, n.Title)
			r.close("span")
		}
	}
}

func (r *renderer) img(src, alt, title string) {
	r.b.WriteString(`<img src="` + attrEscaper.Replace(safeURL(src)) + `" alt="` + attrEscaper.Replace(alt) + `"`)
	if title != "" {
		r.b.WriteString(` title="` + attrEscaper.Replace(title) + `"`)
	}
	r.b.WriteString(` style="` + attrEscaper.Replace(r.sheet.Image) + `">`)
}

// safeURL 过滤可执行脚本的链接
func safeURL(u string) string {
	s := strings.TrimSpace(u)
	lower := strings.ToLower(strings.Join(strings.Fields(s), ""))
	for _, prefix := range []string{"javascript:", "vbscript:", "data:text/html"} {
		if strings.HasPrefix(lower, prefix) {
			return "#"
		}
	}
	return s
}
