package mdtree

import "strings"

// PromoteImages 将段落中的图片提升为独立的图片块，重复调用结果不变
func PromoteImages(doc *Document) {
	doc.Blocks = promote(doc.Blocks)
}

func promote(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		switch b := b.(type) {
		case *Paragraph:
			out = append(out, splitParagraph(b)...)
		case *BlockQuote:
			b.Children = promote(b.Children)
			out = append(out, b)
		case *List:
			for _, item := range b.Items {
				item.Children = promote(item.Children)
			}
			out = append(out, b)
		default:
			out = append(out, b)
		}
	}
	return out
}

func splitParagraph(p *Paragraph) []Block {
	hasImage := false
	for _, in := range p.Children {
		if _, ok := in.(*InlineImage); ok {
			hasImage = true
			break
		}
	}
	if !hasImage {
		return []Block{p}
	}

	var out []Block
	var run []Inline
	flush := func() {
		run = trimBreaks(run)
		if len(run) > 0 {
			out = append(out, &Paragraph{Children: run, Tight: p.Tight})
		}
		run = nil
	}
	for _, in := range p.Children {
		if img, ok := in.(*InlineImage); ok {
			flush()
			out = append(out, &Image{Alt: img.Alt, Src: img.Src, Title: img.Title})
			continue
		}
		run = append(run, in)
	}
	flush()
	return out
}

// trimBreaks 去掉首尾的换行与空白文本
func trimBreaks(nodes []Inline) []Inline {
	blank := func(n Inline) bool {
		switch n := n.(type) {
		case *LineBreak:
			return true
		case *Text:
			return strings.TrimSpace(n.Value) == ""
		}
		return false
	}
	for len(nodes) > 0 && blank(nodes[0]) {
		nodes = nodes[1:]
	}
	for len(nodes) > 0 && blank(nodes[len(nodes)-1]) {
		nodes = nodes[:len(nodes)-1]
	}
	return nodes
}
