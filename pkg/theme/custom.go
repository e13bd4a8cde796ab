package theme

import (
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"
)

// Partial 部分主题，nil 字段表示未提供
type Partial struct {
	Name             *string
	Description      *string
	PrimaryColor     *string
	SecondaryColor   *string
	AccentColor      *string
	TextColor        *string
	HeadingColor     *string
	LinkColor        *string
	CodeBg           *string
	BlockquoteBorder *string
	BlockquoteBg     *string
	FontFamily       *string
	HeadingStyle     *string
	QuoteStyle       *string
	ParagraphIndent  *bool
	LineHeight       *float64
	LetterSpacing    *float64
}

// Empty 是否没有任何字段
func (p Partial) Empty() bool {
	return p == Partial{}
}

// Merge 将部分主题逐字段覆盖到 base 上，不合法的字段保留 base 的值
func Merge(base Theme, p Partial) Theme {
	t := base
	setStr(&t.Name, p.Name)
	setStr(&t.Description, p.Description)
	setStr(&t.PrimaryColor, p.PrimaryColor)
	setStr(&t.SecondaryColor, p.SecondaryColor)
	setStr(&t.AccentColor, p.AccentColor)
	setStr(&t.TextColor, p.TextColor)
	setStr(&t.HeadingColor, p.HeadingColor)
	setStr(&t.LinkColor, p.LinkColor)
	setStr(&t.CodeBg, p.CodeBg)
	setStr(&t.BlockquoteBorder, p.BlockquoteBorder)
	setStr(&t.BlockquoteBg, p.BlockquoteBg)
	setStr(&t.FontFamily, p.FontFamily)

	if p.HeadingStyle != nil {
		if hs := HeadingStyle(strings.ToLower(strings.TrimSpace(*p.HeadingStyle))); hs.Valid() {
			t.HeadingStyle = hs
		}
	}
	if p.QuoteStyle != nil {
		if qs := QuoteStyle(strings.ToLower(strings.TrimSpace(*p.QuoteStyle))); qs.Valid() {
			t.QuoteStyle = qs
		}
	}
	if p.ParagraphIndent != nil {
		t.ParagraphIndent = *p.ParagraphIndent
	}
	if p.LineHeight != nil && *p.LineHeight > 0 && *p.LineHeight <= 5 {
		t.LineHeight = *p.LineHeight
	}
	if p.LetterSpacing != nil && *p.LetterSpacing >= 0 && *p.LetterSpacing <= 10 {
		t.LetterSpacing = *p.LetterSpacing
	}
	return t
}

func setStr(dst *string, v *string) {
	if v == nil {
		return
	}
	if s := strings.TrimSpace(*v); s != "" {
		*dst = s
	}
}

// ParsePartial 从 AI 返回的文本中解析部分主题，无法解析时返回空的 Partial
func ParsePartial(raw string) Partial {
	s := extractJSON(raw)
	if !gjson.Valid(s) {
		repaired, err := jsonrepair.JSONRepair(s)
		if err != nil {
			return Partial{}
		}
		s = repaired
	}
	if !gjson.Valid(s) {
		return Partial{}
	}
	r := gjson.Parse(s)
	if !r.IsObject() {
		return Partial{}
	}
	return Partial{
		Name:             str(r, "name"),
		Description:      str(r, "description"),
		PrimaryColor:     str(r, "primary_color"),
		SecondaryColor:   str(r, "secondary_color"),
		AccentColor:      str(r, "accent_color"),
		TextColor:        str(r, "text_color"),
		HeadingColor:     str(r, "heading_color"),
		LinkColor:        str(r, "link_color"),
		CodeBg:           str(r, "code_bg"),
		BlockquoteBorder: str(r, "blockquote_border"),
		BlockquoteBg:     str(r, "blockquote_bg"),
		FontFamily:       str(r, "font_family"),
		HeadingStyle:     str(r, "heading_style"),
		QuoteStyle:       str(r, "quote_style"),
		ParagraphIndent:  boolean(r, "paragraph_indent"),
		LineHeight:       num(r, "line_height"),
		LetterSpacing:    num(r, "letter_spacing"),
	}
}

// FromJSON 由 JSON 描述合成主题，缺失或类型不符的字段使用默认主题的值
func FromJSON(raw string) Theme {
	t := Merge(Default(), ParsePartial(raw))
	t.ID = CustomID
	return t
}

// extractJSON 去掉 markdown 代码块包裹，截取第一个对象
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "json"))
	}
	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			return s[start : end+1]
		}
		return s[start:]
	}
	return s
}

func str(r gjson.Result, key string) *string {
	v := r.Get(key)
	if v.Type != gjson.String {
		return nil
	}
	s := v.Str
	return &s
}

func num(r gjson.Result, key string) *float64 {
	v := r.Get(key)
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Num
	return &f
}

func boolean(r gjson.Result, key string) *bool {
	v := r.Get(key)
	if !v.IsBool() {
		return nil
	}
	b := v.Bool()
	return &b
}
