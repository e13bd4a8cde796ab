package mdtree

// Kind 节点类型，取值为封闭集合
type Kind int

const (
	KindParagraph Kind = iota + 1
	KindHeading
	KindList
	KindListItem
	KindTable
	KindBlockQuote
	KindCodeBlock
	KindHorizontalRule
	KindImage

	KindText
	KindLineBreak
	KindEmphasis
	KindStrong
	KindStrikethrough
	KindInlineCode
	KindLink
	KindInlineImage
)

// Node 文档树节点
type Node interface {
	Kind() Kind
}

// Block 块级节点
type Block interface {
	Node
	block()
}

// Inline 行内节点
type Inline interface {
	Node
	inline()
}

// Document 一次转换对应的文档树，块按源文顺序排列
type Document struct {
	Blocks []Block
}

// Paragraph 段落；Tight 表示紧凑列表项中的文本，渲染时不输出 <p>
type Paragraph struct {
	Children []Inline
	Tight    bool
}

type Heading struct {
	Level    int
	Children []Inline
}

type List struct {
	Ordered bool
	Start   int
	Items   []*ListItem
}

type ListItem struct {
	Children []Block
}

// Align 表格列对齐方式
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

type TableCell struct {
	Children []Inline
}

type TableRow struct {
	Cells []TableCell
}

type Table struct {
	Align  []Align
	Header TableRow
	Rows   []TableRow
}

type BlockQuote struct {
	Children []Block
}

type CodeBlock struct {
	Language string
	Text     string
}

type HorizontalRule struct{}

// Image 独立成块的图片
type Image struct {
	Alt   string
	Src   string
	Title string
}

type Text struct {
	Value string
}

type LineBreak struct{}

type Emphasis struct {
	Children []Inline
}

type Strong struct {
	Children []Inline
}

type Strikethrough struct {
	Children []Inline
}

type InlineCode struct {
	Text string
}

type Link struct {
	Href     string
	Title    string
	Children []Inline
}

// InlineImage 出现在标题、链接、表格等行内上下文中的图片
type InlineImage struct {
	Alt   string
	Src   string
	Title string
}

func (*Paragraph) Kind() Kind      { return KindParagraph }
func (*Heading) Kind() Kind        { return KindHeading }
func (*List) Kind() Kind           { return KindList }
func (*ListItem) Kind() Kind       { return KindListItem }
func (*Table) Kind() Kind          { return KindTable }
func (*BlockQuote) Kind() Kind     { return KindBlockQuote }
func (*CodeBlock) Kind() Kind      { return KindCodeBlock }
func (*HorizontalRule) Kind() Kind { return KindHorizontalRule }
func (*Image) Kind() Kind          { return KindImage }
func (*Text) Kind() Kind           { return KindText }
func (*LineBreak) Kind() Kind      { return KindLineBreak }
func (*Emphasis) Kind() Kind       { return KindEmphasis }
func (*Strong) Kind() Kind         { return KindStrong }
func (*Strikethrough) Kind() Kind  { return KindStrikethrough }
func (*InlineCode) Kind() Kind     { return KindInlineCode }
func (*Link) Kind() Kind           { return KindLink }
func (*InlineImage) Kind() Kind    { return KindInlineImage }

func (*Paragraph) block()      {}
func (*Heading) block()        {}
func (*List) block()           {}
func (*Table) block()          {}
func (*BlockQuote) block()     {}
func (*CodeBlock) block()      {}
func (*HorizontalRule) block() {}
func (*Image) block()          {}

func (*Text) inline()          {}
func (*LineBreak) inline()     {}
func (*Emphasis) inline()      {}
func (*Strong) inline()        {}
func (*Strikethrough) inline() {}
func (*InlineCode) inline()    {}
func (*Link) inline()          {}
func (*InlineImage) inline()   {}

// PlainText 返回行内节点的纯文本
func PlainText(nodes []Inline) string {
	var s string
	for _, n := range nodes {
		switch n := n.(type) {
		case *Text:
			s += n.Value
		case *LineBreak:
			s += "\n"
		case *InlineCode:
			s += n.Text
		case *InlineImage:
			s += n.Alt
		case *Emphasis:
			s += PlainText(n.Children)
		case *Strong:
			s += PlainText(n.Children)
		case *Strikethrough:
			s += PlainText(n.Children)
		case *Link:
			s += PlainText(n.Children)
		}
	}
	return s
}
