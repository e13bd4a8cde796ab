package service

import "strings"

// Prompts AI 提示词，占位符写作 {name}
type Prompts struct {
	Article string `json:"article_prompt"`
	Layout  string `json:"layout_prompt"`
	Cover   string `json:"cover_prompt"`
}

// DefaultPrompts 默认提示词，配置为空时使用
func DefaultPrompts() *Prompts {
	return &Prompts{
		Article: defaultArticlePrompt,
		Layout:  defaultLayoutPrompt,
		Cover:   defaultCoverPrompt,
	}
}

// WithDefaults 用默认值补齐为空的提示词
func (p *Prompts) WithDefaults() *Prompts {
	out := *p
	d := DefaultPrompts()
	if strings.TrimSpace(out.Article) == "" {
		out.Article = d.Article
	}
	if strings.TrimSpace(out.Layout) == "" {
		out.Layout = d.Layout
	}
	if strings.TrimSpace(out.Cover) == "" {
		out.Cover = d.Cover
	}
	return &out
}

// fillPrompt 替换占位符，{{ 与 }} 视为转义的花括号
func fillPrompt(tpl string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2+4)
	pairs = append(pairs, "{{", "{", "}}", "}")
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

const defaultArticlePrompt = `## Role: 资深微信公众号爆款写手 (李继刚风格 1.0)

## Profile:
你是一位擅长深刻洞察、逻辑严密、表达富有节奏感的顶尖自媒体人。你的文章不仅有深度，更能引发情绪共鸣，排版精美。

## Rules:
1. **核心逻辑**：保留原文核心观点，不遗漏任何重要细节。
2. **深度扩展**：对每个观点进行多维度的论证，加入金句、案例或数据支撑。
3. **语言风格**：{style}
4. **结构规范**：
    - 使用 # 一级标题作为文章标题
    - 开篇必须引人入胜（金句开场或深刻提问）
    - 章节间使用 ## 二级标题，逻辑层层递进
    - 结尾必须有力，提供行动指南或深刻总结
5. **格式**：直接输出 Markdown 格式，不要任何解释说明。

## Content:
请基于以下内容进行创作：
---
{content}
---`

const defaultLayoutPrompt = `根据以下风格描述，生成一组公众号专属的 CSS 配置（JSON格式）：

风格描述：{style_description}

请返回以下格式的 JSON（只返回 JSON，不要其他内容）：
{{
    "primary_color": "#主题色",
    "secondary_color": "#背景色",
    "text_color": "#正文颜色",
    "heading_color": "#标题颜色",
    "link_color": "#链接颜色",
    "code_bg": "#代码背景",
    "blockquote_border": "#引用边框",
    "blockquote_bg": "#引用背景色",
    "font_family": "字体集",
    "heading_style": "normal/underline/background/border-left",
    "paragraph_indent": true/false,
    "line_height": 1.8
}}`

const defaultCoverPrompt = `你是一位顶尖的视觉设计师。请根据文章信息，设计一个极具视觉张力的公众号封面图描述词（中英双语）。

文章标题：{title}
文章摘要：{summary}
视觉风格要求：{style}

要求：
1. 描述必须具体、视觉化、充满电影感或设计感。
2. 不要出现文字。
3. 直接输出描述词，不超过 60 字。`

const chatSystemPrompt = "你是一个微信公众号文章发布助手，帮助用户分析文章、推荐排版风格、建议封面图风格。请用友好专业的语气交流。"

const rewriteSystemPrompt = `你是一位资深的微信公众号爆款文章写手，擅长将素材改写成引人入胜、传播力强的优质长文。

## 你的任务
{length_hint}，确保内容完整、有深度、有价值。

## 写作要求

### 1. 文章结构（必须完整）
- **标题**：一个吸引眼球的标题（使用 # 一级标题）
- **引言**：用一个引人入胜的开头抓住读者（可以是故事、问题、数据或金句）
- **正文**：分成 3-5 个清晰的章节，每个章节用 ## 二级标题
- **每个章节**：包含论点、论据、案例或数据支撑，段落丰富
- **结尾**：有力的总结，给读者留下深刻印象或行动指引

### 2. 内容质量
- 保留原文的所有核心观点，一个都不能丢
- 每个观点都要展开论述，不能一笔带过
- 适当补充相关的案例、数据、引用来增强说服力
- 逻辑清晰，层层递进，让读者有收获感

### 3. 语言风格
- 专业但不晦涩，通俗易懂
- 有节奏感，长短句结合
- 适当使用金句、比喻、排比增强可读性
- 段落不要太长，方便手机阅读

### 4. 格式规范
- 使用 Markdown 格式
- 一级标题 # 只用于文章主标题
- 二级标题 ## 用于章节
- 三级标题 ### 用于小节（如需要）
- 重点内容可用 **加粗** 强调
- 列表用 - 或数字

## 重要提醒
- 文章必须完整，从头写到尾，不能中途截断
- 不要输出任何解释说明，直接输出完整的 Markdown 文章
- 字数要充实，宁多勿少`

// 封面绘图的主题风格描述
var coverStylePrompts = map[string]string{
	"professional": "现代简约商务风格，蓝色渐变背景，科技感，专业干净",
	"elegant":      "优雅文艺风格，紫色调，柔和温暖，艺术感",
	"vibrant":      "活力动感风格，橙色调，明亮热情，几何图形",
	"dark":         "极客暗黑风格，深色背景，霓虹绿色点缀，赛博朋克",
	"minimal":      "极简黑白风格，简洁大方，留白设计，高级感",
}

func coverStylePrompt(themeID string) string {
	if s, ok := coverStylePrompts[themeID]; ok {
		return s
	}
	return coverStylePrompts["professional"]
}

// rewriteLengthHint 按原文长度决定扩写要求
func rewriteLengthHint(runes int) string {
	switch {
	case runes < 200:
		return "请将内容扩展成一篇 1500-2500 字的深度文章"
	case runes < 500:
		return "请将内容扩展成一篇 2000-3000 字的完整文章"
	default:
		return "请将内容改写成一篇不少于 2500 字的完整文章，保留所有要点并适当扩展"
	}
}
