package mdmeta

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultSummaryLength 默认摘要长度（字符数）
const DefaultSummaryLength = 120

var (
	imageSyntax = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	linkSyntax  = regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`)
	markSyntax  = regexp.MustCompile("[#*`_~>\\-]")
	imageURL    = regexp.MustCompile(`!\[.*?\]\((.*?)\)`)
)

// Metadata 文章元信息
type Metadata struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Images  []string `json:"images"`
	Content string   `json:"content"`
}

// Extract 提取标题、摘要、图片列表以及去掉标题后的正文
func Extract(src string, maxLen int) Metadata {
	title, content := Title(src)
	return Metadata{
		Title:   title,
		Summary: Summary(content, maxLen),
		Images:  Images(src),
		Content: content,
	}
}

// Title 取第一个一级标题作为标题，正文为其后的内容；
// 没有一级标题时取第一个非空行，正文为该行之后的内容
func Title(src string) (title, content string) {
	lines := strings.Split(strings.TrimSpace(strings.ReplaceAll(src, "\r\n", "\n")), "\n")
	start := 0
	for i, line := range lines {
		s := strings.TrimSpace(line)
		if strings.HasPrefix(s, "# ") && !strings.HasPrefix(s, "## ") {
			title = strings.TrimSpace(s[2:])
			start = i + 1
			break
		}
	}
	if title == "" {
		for i, line := range lines {
			if s := strings.TrimSpace(line); s != "" {
				title = strings.TrimSpace(strings.TrimLeft(s, "#"))
				start = i + 1
				break
			}
		}
	}
	content = strings.TrimSpace(strings.Join(lines[start:], "\n"))
	return title, content
}

// Summary 去掉 Markdown 标记并截断，超长时追加省略号
func Summary(content string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSummaryLength
	}
	text := imageSyntax.ReplaceAllString(content, "")
	text = linkSyntax.ReplaceAllString(text, "$1")
	text = markSyntax.ReplaceAllString(text, "")
	text = strings.Join(strings.Fields(text), " ")

	if utf8.RuneCountInString(text) > maxLen {
		return string([]rune(text)[:maxLen]) + "..."
	}
	return text
}

// Images 按出现顺序返回全部图片地址，不去重
func Images(src string) []string {
	images := make([]string, 0)
	for _, m := range imageURL.FindAllStringSubmatch(src, -1) {
		images = append(images, m[1])
	}
	return images
}
