package wxstyle

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	lightCodeStyle = "github"
	darkCodeStyle  = "monokai"
)

// highlight 代码高亮，输出带内联颜色的 span；未知语言输出转义后的纯文本
func highlight(code, lang string, dark bool) string {
	if lang == "" {
		return textEscaper.Replace(code)
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return textEscaper.Replace(code)
	}
	iter, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return textEscaper.Replace(code)
	}

	name := lightCodeStyle
	if dark {
		name = darkCodeStyle
	}
	st := styles.Get(name)

	var b strings.Builder
	for _, tok := range iter.Tokens() {
		css := tokenCSS(st.Get(tok.Type))
		if css == "" {
			b.WriteString(textEscaper.Replace(tok.Value))
			continue
		}
		b.WriteString(`<span style="` + css + `">`)
		b.WriteString(textEscaper.Replace(tok.Value))
		b.WriteString("</span>")
	}
	return b.String()
}

func tokenCSS(e chroma.StyleEntry) string {
	var s style
	if e.Colour.IsSet() {
		s = s.set("color", e.Colour.String())
	}
	if e.Bold == chroma.Yes {
		s = s.set("font-weight", "bold")
	}
	if e.Italic == chroma.Yes {
		s = s.set("font-style", "italic")
	}
	return s.String()
}
