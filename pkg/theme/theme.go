package theme

import (
	"strconv"
	"strings"
)

// HeadingStyle 一级、二级标题的装饰样式
type HeadingStyle string

const (
	HeadingNormal     HeadingStyle = "normal"
	HeadingUnderline  HeadingStyle = "underline"
	HeadingBackground HeadingStyle = "background"
	HeadingBorderLeft HeadingStyle = "border-left"
	HeadingMinimal    HeadingStyle = "minimal"
	HeadingEditorial  HeadingStyle = "editorial"
)

// Valid 是否为支持的标题样式
func (s HeadingStyle) Valid() bool {
	switch s {
	case HeadingNormal, HeadingUnderline, HeadingBackground, HeadingBorderLeft, HeadingMinimal, HeadingEditorial:
		return true
	}
	return false
}

// QuoteStyle 引用块样式
type QuoteStyle string

const (
	QuoteBar       QuoteStyle = "bar"
	QuotePullquote QuoteStyle = "pullquote"
)

func (s QuoteStyle) Valid() bool {
	return s == QuoteBar || s == QuotePullquote
}

// DefaultLetterSpacing 未设置字间距时使用的值，单位 px
const DefaultLetterSpacing = 0.5

// Theme 主题，只包含值类型字段，按值传递即可保证不可变
type Theme struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	PrimaryColor     string       `json:"primary_color"`
	SecondaryColor   string       `json:"secondary_color"`
	AccentColor      string       `json:"accent_color,omitempty"`
	TextColor        string       `json:"text_color"`
	HeadingColor     string       `json:"heading_color"`
	LinkColor        string       `json:"link_color"`
	CodeBg           string       `json:"code_bg"`
	BlockquoteBorder string       `json:"blockquote_border"`
	BlockquoteBg     string       `json:"blockquote_bg"`
	FontFamily       string       `json:"font_family"`
	HeadingStyle     HeadingStyle `json:"heading_style"`
	QuoteStyle       QuoteStyle   `json:"quote_style,omitempty"`
	ParagraphIndent  bool         `json:"paragraph_indent"`
	LineHeight       float64      `json:"line_height"`
	LetterSpacing    float64      `json:"letter_spacing,omitempty"`
}

// Accent 强调色，未设置时使用主色
func (t Theme) Accent() string {
	if t.AccentColor != "" {
		return t.AccentColor
	}
	return t.PrimaryColor
}

// Quote 实际生效的引用样式，未设置时 editorial 标题对应 pullquote
func (t Theme) Quote() QuoteStyle {
	if t.QuoteStyle.Valid() {
		return t.QuoteStyle
	}
	if t.HeadingStyle == HeadingEditorial {
		return QuotePullquote
	}
	return QuoteBar
}

// Spacing 实际生效的字间距
func (t Theme) Spacing() float64 {
	if t.LetterSpacing > 0 {
		return t.LetterSpacing
	}
	return DefaultLetterSpacing
}

// Dark 背景色是否为深色
func (t Theme) Dark() bool {
	r, g, b, ok := parseHex(t.SecondaryColor)
	if !ok {
		return false
	}
	lum := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
	return lum < 128
}

// Tint 给 #rrggbb 或 #rgb 颜色追加两位十六进制透明度，其他写法原样返回
func Tint(color, alpha string) string {
	c := strings.TrimSpace(color)
	if _, _, _, ok := parseHex(c); !ok {
		return c
	}
	if len(c) == 4 {
		c = "#" + string([]byte{c[1], c[1], c[2], c[2], c[3], c[3]})
	}
	return c + alpha
}

func parseHex(c string) (r, g, b uint8, ok bool) {
	c = strings.TrimSpace(c)
	if !strings.HasPrefix(c, "#") {
		return 0, 0, 0, false
	}
	h := c[1:]
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// RGB 解析 #rrggbb 或 #rgb 颜色
func RGB(color string) (r, g, b uint8, ok bool) {
	return parseHex(color)
}
