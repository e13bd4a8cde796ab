package wxstyle

import (
	"strconv"
	"strings"

	"github.com/yockii/wx_publisher/pkg/mdtree"
	"github.com/yockii/wx_publisher/pkg/theme"
)

const (
	monoFont  = "'JetBrains Mono', 'Fira Code', 'SF Mono', Consolas, monospace"
	serifFont = "'Noto Serif SC', 'Source Han Serif CN', Georgia, serif"
)

var (
	headingSizes   = [7]int{0, 26, 22, 19, 17, 15, 14}
	headingMargins = [7]string{"", "36px 0 20px", "30px 0 16px", "24px 0 14px", "20px 0 12px", "16px 0 10px", "14px 0 8px"}
)

// style 有序的 CSS 声明列表
type style []string

func (s style) set(prop, value string) style {
	return append(s, prop+": "+value+";")
}

func (s style) String() string {
	return strings.Join(s, " ")
}

// Sheet 一次渲染使用的全部元素样式，由主题唯一确定
type Sheet struct {
	Root           string
	Headings       [7]string
	Paragraph      string
	QuoteParagraph string
	ListParagraph  string
	Link           string
	ImageWrap      string
	InlineImage    string
	Image          string
	Pre            string
	PreCode        string
	InlineCode     string
	Quote          string
	UL             string
	OL             string
	BulletItem     string
	OrderedItem    string
	Bullet         string
	TableWrap      string
	Table          string
	TH             string
	TDEven         string
	TDOdd          string
	HR             string
	Strong         string
	Em             string
	Del            string
}

// NewSheet 根据主题计算各元素样式
func NewSheet(th theme.Theme) *Sheet {
	lh := formatFloat(th.LineHeight)
	spacing := formatFloat(th.Spacing()) + "px"

	s := &Sheet{}
	s.Root = style{}.
		set("padding", "24px 20px").
		set("background-color", th.SecondaryColor).
		set("font-family", th.FontFamily).
		set("color", th.TextColor).
		set("line-height", lh).String()

	for level := 1; level <= 6; level++ {
		s.Headings[level] = HeadingStyle(level, th)
	}

	p := style{}.
		set("margin", "0 0 20px 0").
		set("padding", "0").
		set("font-size", "16px").
		set("line-height", lh).
		set("color", th.TextColor).
		set("text-align", "justify").
		set("font-family", th.FontFamily).
		set("letter-spacing", spacing)
	if th.ParagraphIndent {
		p = p.set("text-indent", "2em")
	}
	s.Paragraph = p.String()

	s.ListParagraph = style{}.
		set("margin", "0 0 8px 0").
		set("padding", "0").
		set("font-size", "16px").
		set("line-height", lh).
		set("color", th.TextColor).
		set("font-family", th.FontFamily).
		set("letter-spacing", spacing).String()

	s.Link = style{}.
		set("color", th.LinkColor).
		set("text-decoration", "none").
		set("border-bottom", "1px solid "+theme.Tint(th.LinkColor, "50")).
		set("word-break", "break-all").String()

	s.Image = style{}.
		set("max-width", "100%").
		set("height", "auto").
		set("display", "block").
		set("margin", "20px auto").
		set("border-radius", "8px").
		set("box-shadow", "0 4px 12px rgba(0,0,0,0.1)").String()
	s.ImageWrap = style{}.
		set("text-align", "center").
		set("margin", "24px 0").String()
	s.InlineImage = style{}.
		set("display", "block").
		set("text-align", "center").String()

	s.Pre = style{}.
		set("background-color", th.CodeBg).
		set("padding", "20px").
		set("border-radius", "10px").
		set("overflow-x", "auto").
		set("margin", "20px 0").
		set("font-family", monoFont).
		set("font-size", "13px").
		set("line-height", "1.6").
		set("border", "1px solid "+theme.Tint(th.PrimaryColor, "20")).String()
	s.PreCode = style{}.
		set("color", th.TextColor).
		set("font-family", "inherit").
		set("white-space", "pre").String()
	s.InlineCode = style{}.
		set("background-color", th.CodeBg).
		set("padding", "3px 8px").
		set("border-radius", "4px").
		set("font-family", monoFont).
		set("font-size", "14px").
		set("color", th.PrimaryColor).
		set("border", "1px solid "+theme.Tint(th.PrimaryColor, "30")).String()

	s.Quote, s.QuoteParagraph = quoteStyles(th)

	s.UL = style{}.
		set("margin", "20px 0").
		set("padding-left", "0").
		set("list-style", "none").
		set("color", th.TextColor).String()
	s.OL = style{}.
		set("margin", "20px 0").
		set("padding-left", "24px").
		set("color", th.TextColor).String()
	item := style{}.
		set("margin", "12px 0").
		set("line-height", lh).
		set("font-size", "16px").
		set("color", th.TextColor)
	s.OrderedItem = item.String()
	s.BulletItem = append(style{}, item...).
		set("padding-left", "24px").
		set("position", "relative").String()
	s.Bullet = style{}.
		set("position", "absolute").
		set("left", "0").
		set("top", "0").
		set("color", th.PrimaryColor).
		set("font-weight", "bold").String()

	s.TableWrap = style{}.
		set("overflow-x", "auto").
		set("margin", "24px 0").String()
	s.Table = style{}.
		set("width", "100%").
		set("border-collapse", "collapse").
		set("font-size", "14px").
		set("border-radius", "8px").
		set("overflow", "hidden").
		set("box-shadow", "0 2px 8px rgba(0,0,0,0.06)").String()
	s.TH = style{}.
		set("border", "1px solid "+theme.Tint(th.PrimaryColor, "30")).
		set("padding", "14px 16px").
		set("background-color", th.PrimaryColor).
		set("color", "#ffffff").
		set("font-weight", "600").String()
	td := func(bg string) string {
		return style{}.
			set("border", "1px solid "+theme.Tint(th.PrimaryColor, "20")).
			set("padding", "12px 16px").
			set("color", th.TextColor).
			set("background-color", bg).String()
	}
	s.TDEven = td(th.SecondaryColor)
	s.TDOdd = td(theme.Tint(th.PrimaryColor, "08"))

	s.HR = style{}.
		set("border", "none").
		set("height", "1px").
		set("background", "linear-gradient(to right, transparent, "+theme.Tint(th.PrimaryColor, "50")+", transparent)").
		set("margin", "32px 0").String()

	s.Strong = style{}.
		set("font-weight", "700").
		set("color", th.HeadingColor).String()
	s.Em = style{}.
		set("font-style", "italic").String()
	s.Del = style{}.
		set("text-decoration", "line-through").String()
	return s
}

// Cell 表格单元格样式，按列对齐追加 text-align
func (s *Sheet) Cell(header bool, row int, align mdtree.Align) string {
	base := s.TH
	if !header {
		base = s.TDEven
		if row%2 == 1 {
			base = s.TDOdd
		}
	}
	switch align {
	case mdtree.AlignCenter:
		return base + " text-align: center;"
	case mdtree.AlignRight:
		return base + " text-align: right;"
	default:
		return base + " text-align: left;"
	}
}

func quoteStyles(th theme.Theme) (quote, para string) {
	if th.Quote() == theme.QuotePullquote {
		quote = style{}.
			set("margin", "32px 0").
			set("padding", "20px 24px").
			set("border-top", "2px solid "+th.BlockquoteBorder).
			set("border-bottom", "2px solid "+th.BlockquoteBorder).
			set("text-align", "center").
			set("color", th.TextColor).String()
		para = style{}.
			set("margin", "0").
			set("padding", "0").
			set("font-size", "18px").
			set("line-height", "1.8").
			set("color", th.HeadingColor).
			set("font-style", "italic").
			set("font-family", serifFont).
			set("text-align", "center").
			set("text-indent", "0").String()
		return quote, para
	}
	quote = style{}.
		set("margin", "24px 0").
		set("padding", "16px 20px").
		set("border-left", "4px solid "+th.BlockquoteBorder).
		set("background-color", th.BlockquoteBg).
		set("border-radius", "0 8px 8px 0").
		set("color", th.TextColor).String()
	para = style{}.
		set("margin", "0").
		set("padding", "0").
		set("font-size", "15px").
		set("line-height", "1.7").
		set("color", th.TextColor).
		set("font-style", "italic").
		set("text-indent", "0").String()
	return quote, para
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// HeadingFontSize 标题字号，级别越高字号越小
func HeadingFontSize(level int, th theme.Theme) int {
	level = clampLevel(level)
	if level == 1 && th.HeadingStyle == theme.HeadingEditorial {
		return 30
	}
	return headingSizes[level]
}

// HeadingStyle 标题样式，只有一、二级标题带装饰
func HeadingStyle(level int, th theme.Theme) string {
	level = clampLevel(level)
	weight := "700"
	if th.HeadingStyle == theme.HeadingMinimal && level <= 2 {
		weight = "600"
	}
	s := style{}.
		set("margin", headingMargins[level]).
		set("padding", "0").
		set("font-size", strconv.Itoa(HeadingFontSize(level, th))+"px").
		set("font-weight", weight).
		set("color", th.HeadingColor).
		set("line-height", "1.4").
		set("font-family", th.FontFamily)
	if level > 2 {
		return s.String()
	}

	switch th.HeadingStyle {
	case theme.HeadingUnderline:
		s = s.set("padding-bottom", "10px").
			set("border-bottom", "2px solid "+th.PrimaryColor)
	case theme.HeadingBackground:
		s = s.set("background", "linear-gradient(to right, "+theme.Tint(th.PrimaryColor, "15")+", transparent)").
			set("padding", "12px 16px").
			set("border-radius", "6px")
	case theme.HeadingBorderLeft:
		s = s.set("padding", "4px 0 4px 16px").
			set("border-left", "4px solid "+th.PrimaryColor).
			set("background", "linear-gradient(to right, "+theme.Tint(th.PrimaryColor, "10")+", transparent)")
	case theme.HeadingMinimal:
		s = s.set("letter-spacing", "1px")
	case theme.HeadingEditorial:
		if level == 1 {
			s = s.set("text-align", "center").
				set("font-family", serifFont).
				set("letter-spacing", "2px").
				set("padding-bottom", "16px").
				set("border-bottom", "1px solid "+th.Accent())
		} else {
			s = s.set("padding-top", "12px").
				set("border-top", "2px solid "+th.Accent())
		}
	}
	return s.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
