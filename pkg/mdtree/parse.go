package mdtree

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrInvalidInput 输入不是合法的 UTF-8 文本
var ErrInvalidInput = errors.New("mdtree: input is not valid UTF-8 text")

// Validate 检查输入是否可以转换
func Validate(src string) error {
	if !utf8.ValidString(src) || strings.ContainsRune(src, 0) {
		return ErrInvalidInput
	}
	return nil
}

// Parse 将 Markdown 解析为文档树，任意输入都不会失败
func Parse(src string) *Document {
	source := []byte(RepairTables(src))
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Strikethrough),
	)
	root := md.Parser().Parse(text.NewReader(source))

	c := &converter{source: source}
	doc := &Document{Blocks: c.blocks(root)}
	PromoteImages(doc)
	return doc
}

type converter struct {
	source []byte
}

func (c *converter) blocks(parent ast.Node) []Block {
	var out []Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := c.block(n); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (c *converter) block(n ast.Node) Block {
	switch n := n.(type) {
	case *ast.Heading:
		return &Heading{Level: n.Level, Children: c.inlines(n)}
	case *ast.Paragraph:
		return &Paragraph{Children: c.inlines(n)}
	case *ast.TextBlock:
		return &Paragraph{Children: c.inlines(n), Tight: true}
	case *ast.List:
		list := &List{Ordered: n.IsOrdered(), Start: n.Start}
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			list.Items = append(list.Items, &ListItem{Children: c.blocks(item)})
		}
		return list
	case *ast.Blockquote:
		return &BlockQuote{Children: c.blocks(n)}
	case *ast.FencedCodeBlock:
		return &CodeBlock{Language: string(n.Language(c.source)), Text: c.lines(n)}
	case *ast.CodeBlock:
		return &CodeBlock{Text: c.lines(n)}
	case *ast.ThematicBreak:
		return &HorizontalRule{}
	case *ast.HTMLBlock:
		// 原始 HTML 按文本输出，由渲染器转义
		raw := c.lines(n)
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(c.source))
		}
		raw = strings.TrimRight(raw, "\n")
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		return &Paragraph{Children: []Inline{&Text{Value: raw}}}
	case *east.Table:
		return c.table(n)
	default:
		if !n.HasChildren() {
			return nil
		}
		children := c.inlines(n)
		if len(children) == 0 {
			return nil
		}
		return &Paragraph{Children: children}
	}
}

func (c *converter) table(n *east.Table) *Table {
	t := &Table{Align: make([]Align, len(n.Alignments))}
	for i, a := range n.Alignments {
		switch a {
		case east.AlignLeft:
			t.Align[i] = AlignLeft
		case east.AlignCenter:
			t.Align[i] = AlignCenter
		case east.AlignRight:
			t.Align[i] = AlignRight
		}
	}
	for r := n.FirstChild(); r != nil; r = r.NextSibling() {
		var row TableRow
		for cell := r.FirstChild(); cell != nil; cell = cell.NextSibling() {
			row.Cells = append(row.Cells, TableCell{Children: c.inlines(cell)})
		}
		if _, ok := r.(*east.TableHeader); ok {
			t.Header = row
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (c *converter) inlines(parent ast.Node) []Inline {
	var out []Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = c.inline(out, n)
	}
	return mergeText(out)
}

func (c *converter) inline(out []Inline, n ast.Node) []Inline {
	switch n := n.(type) {
	case *ast.Text:
		value := n.Segment.Value(c.source)
		if !n.IsRaw() {
			value = unescape(value)
		}
		out = append(out, &Text{Value: string(value)})
		if n.HardLineBreak() || n.SoftLineBreak() {
			out = append(out, &LineBreak{})
		}
	case *ast.String:
		out = append(out, &Text{Value: string(n.Value)})
	case *ast.CodeSpan:
		out = append(out, &InlineCode{Text: c.plain(n, false)})
	case *ast.Emphasis:
		if n.Level >= 2 {
			out = append(out, &Strong{Children: c.inlines(n)})
		} else {
			out = append(out, &Emphasis{Children: c.inlines(n)})
		}
	case *east.Strikethrough:
		out = append(out, &Strikethrough{Children: c.inlines(n)})
	case *ast.Link:
		out = append(out, &Link{
			Href:     string(unescape(n.Destination)),
			Title:    string(unescape(n.Title)),
			Children: c.inlines(n),
		})
	case *ast.AutoLink:
		out = append(out, &Link{
			Href:     string(n.URL(c.source)),
			Children: []Inline{&Text{Value: string(n.Label(c.source))}},
		})
	case *ast.Image:
		out = append(out, &InlineImage{
			Alt:   c.plain(n, true),
			Src:   string(unescape(n.Destination)),
			Title: string(unescape(n.Title)),
		})
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(c.source))
		}
		out = append(out, &Text{Value: b.String()})
	default:
		if n.HasChildren() {
			out = append(out, c.inlines(n)...)
		}
	}
	return out
}

// plain 拼接子树中的全部文本，resolve 为 false 时保留转义和实体原样（行内代码）
func (c *converter) plain(n ast.Node, resolve bool) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			value := t.Segment.Value(c.source)
			if resolve && !t.IsRaw() {
				value = unescape(value)
			}
			b.Write(value)
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// unescape 处理反斜杠转义和 HTML 实体，与 goldmark 的 HTML 输出一致
func unescape(b []byte) []byte {
	if len(b) == 0 {
		return b
	}
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}

func (c *converter) lines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(c.source))
	}
	return b.String()
}

func mergeText(nodes []Inline) []Inline {
	if len(nodes) < 2 {
		return nodes
	}
	out := nodes[:1]
	for _, n := range nodes[1:] {
		if t, ok := n.(*Text); ok {
			if prev, ok := out[len(out)-1].(*Text); ok {
				prev.Value += t.Value
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
