package theme

// DefaultID 默认主题
const DefaultID = "professional"

// CustomID 运行时合成主题使用的标识，不会进入内置目录
const CustomID = "custom"

const (
	fontSans  = "-apple-system, BlinkMacSystemFont, 'PingFang SC', 'Microsoft YaHei', sans-serif"
	fontSerif = "'Noto Serif SC', 'Source Han Serif', Georgia, serif"
	fontApple = "-apple-system, BlinkMacSystemFont, 'Helvetica Neue', sans-serif"
)

var builtins = []Theme{
	{
		ID: "insight", Name: "📰 深度洞察", Description: "经济学人/财新风格，大留白、克制配色，适合商业深度长文",
		PrimaryColor: "#1a1a1a", SecondaryColor: "#ffffff", AccentColor: "#c41e3a",
		TextColor: "#2d2d2d", HeadingColor: "#0d0d0d", LinkColor: "#c41e3a",
		CodeBg: "#f7f7f7", BlockquoteBorder: "#c41e3a", BlockquoteBg: "#fafafa",
		FontFamily:   "'Noto Serif SC', 'Source Han Serif CN', Georgia, 'Times New Roman', serif",
		HeadingStyle: HeadingEditorial, ParagraphIndent: true, LineHeight: 2.0, LetterSpacing: 1,
	},
	{
		ID: "professional", Name: "💼 商务蓝", Description: "现代商务风，适合技术文章、深度分析",
		PrimaryColor: "#2563eb", SecondaryColor: "#ffffff", AccentColor: "#3b82f6",
		TextColor: "#374151", HeadingColor: "#1e3a5f", LinkColor: "#2563eb",
		CodeBg: "#f1f5f9", BlockquoteBorder: "#3b82f6", BlockquoteBg: "#eff6ff",
		FontFamily:   fontSans,
		HeadingStyle: HeadingBorderLeft, LineHeight: 1.9,
	},
	{
		ID: "corporate", Name: "🏢 企业灰", Description: "沉稳灰色，适合企业公告、正式通知",
		PrimaryColor: "#424242", SecondaryColor: "#fafafa",
		TextColor: "#212121", HeadingColor: "#212121", LinkColor: "#1565c0",
		CodeBg: "#eeeeee", BlockquoteBorder: "#9e9e9e", BlockquoteBg: "#f5f5f5",
		FontFamily:   "'PingFang SC', 'Microsoft YaHei', sans-serif",
		HeadingStyle: HeadingUnderline, LineHeight: 1.75,
	},
	{
		ID: "tech", Name: "🚀 科技紫", Description: "渐变紫色，适合科技、AI、产品类",
		PrimaryColor: "#7c3aed", SecondaryColor: "#faf5ff",
		TextColor: "#1f2937", HeadingColor: "#7c3aed", LinkColor: "#8b5cf6",
		CodeBg: "#f3e8ff", BlockquoteBorder: "#a78bfa", BlockquoteBg: "#ede9fe",
		FontFamily:   "'Inter', -apple-system, sans-serif",
		HeadingStyle: HeadingBackground, LineHeight: 1.8,
	},
	{
		ID: "dark", Name: "🌙 极客暗黑", Description: "深色背景，霓虹绿色，程序员最爱",
		PrimaryColor: "#10b981", SecondaryColor: "#111827",
		TextColor: "#e5e7eb", HeadingColor: "#34d399", LinkColor: "#6ee7b7",
		CodeBg: "#1f2937", BlockquoteBorder: "#10b981", BlockquoteBg: "#1f2937",
		FontFamily:   "'JetBrains Mono', 'Fira Code', monospace",
		HeadingStyle: HeadingBorderLeft, LineHeight: 1.75,
	},
	{
		ID: "cyber", Name: "⚡ 赛博朋克", Description: "霓虹粉蓝，未来科技感",
		PrimaryColor: "#ec4899", SecondaryColor: "#0f172a",
		TextColor: "#cbd5e1", HeadingColor: "#f472b6", LinkColor: "#22d3ee",
		CodeBg: "#1e293b", BlockquoteBorder: "#06b6d4", BlockquoteBg: "#1e293b",
		FontFamily:   "'Space Grotesk', 'Noto Sans SC', sans-serif",
		HeadingStyle: HeadingBackground, LineHeight: 1.7,
	},
	{
		ID: "elegant", Name: "🎨 优雅紫", Description: "淡紫色调，适合散文、随笔、生活类",
		PrimaryColor: "#6b5b95", SecondaryColor: "#fef7ff",
		TextColor: "#4a4a4a", HeadingColor: "#6b5b95", LinkColor: "#9b8bb8",
		CodeBg: "#f9f4ff", BlockquoteBorder: "#d8b4fe", BlockquoteBg: "#faf5ff",
		FontFamily:   fontSerif,
		HeadingStyle: HeadingNormal, ParagraphIndent: true, LineHeight: 2.0,
	},
	{
		ID: "warm", Name: "☀️ 暖阳橙", Description: "温暖橙色，适合美食、旅行、生活分享",
		PrimaryColor: "#ea580c", SecondaryColor: "#fffbeb",
		TextColor: "#431407", HeadingColor: "#c2410c", LinkColor: "#ea580c",
		CodeBg: "#fef3c7", BlockquoteBorder: "#fb923c", BlockquoteBg: "#ffedd5",
		FontFamily:   "'ZCOOL XiaoWei', 'Noto Sans SC', sans-serif",
		HeadingStyle: HeadingNormal, LineHeight: 1.9,
	},
	{
		ID: "fresh", Name: "🌿 清新绿", Description: "自然绿色，适合健康、环保、户外类",
		PrimaryColor: "#059669", SecondaryColor: "#f0fdf4",
		TextColor: "#166534", HeadingColor: "#047857", LinkColor: "#10b981",
		CodeBg: "#dcfce7", BlockquoteBorder: "#34d399", BlockquoteBg: "#ecfdf5",
		FontFamily:   "'Noto Sans SC', -apple-system, sans-serif",
		HeadingStyle: HeadingBorderLeft, LineHeight: 1.85,
	},
	{
		ID: "romantic", Name: "🌸 浪漫粉", Description: "柔和粉色，适合情感、女性话题",
		PrimaryColor: "#db2777", SecondaryColor: "#fdf2f8",
		TextColor: "#831843", HeadingColor: "#be185d", LinkColor: "#ec4899",
		CodeBg: "#fce7f3", BlockquoteBorder: "#f472b6", BlockquoteBg: "#fbcfe8",
		FontFamily:   "'LXGW WenKai', 'Noto Serif SC', serif",
		HeadingStyle: HeadingNormal, ParagraphIndent: true, LineHeight: 2.0,
	},
	{
		ID: "minimalist", Name: "⬜ 极简白", Description: "纯净黑白，大量留白，高级感",
		PrimaryColor: "#18181b", SecondaryColor: "#ffffff",
		TextColor: "#3f3f46", HeadingColor: "#18181b", LinkColor: "#18181b",
		CodeBg: "#f4f4f5", BlockquoteBorder: "#d4d4d8", BlockquoteBg: "#fafafa",
		FontFamily:   "'Inter', 'Noto Sans SC', sans-serif",
		HeadingStyle: HeadingMinimal, LineHeight: 2.0,
	},
	{
		ID: "newspaper", Name: "📰 报纸风", Description: "复古报纸排版，适合新闻、评论",
		PrimaryColor: "#1c1917", SecondaryColor: "#fafaf9",
		TextColor: "#292524", HeadingColor: "#0c0a09", LinkColor: "#78716c",
		CodeBg: "#f5f5f4", BlockquoteBorder: "#a8a29e", BlockquoteBg: "#f5f5f4",
		FontFamily:   fontSerif,
		HeadingStyle: HeadingUnderline, ParagraphIndent: true, LineHeight: 1.9,
	},
	{
		ID: "notion", Name: "📝 Notion 风", Description: "清爽简洁，适合笔记、教程类",
		PrimaryColor: "#2563eb", SecondaryColor: "#ffffff",
		TextColor: "#37352f", HeadingColor: "#37352f", LinkColor: "#2563eb",
		CodeBg: "#f7f6f3", BlockquoteBorder: "#e5e5e5", BlockquoteBg: "#f7f6f3",
		FontFamily:   "-apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif",
		HeadingStyle: HeadingNormal, LineHeight: 1.7,
	},
	{
		ID: "wechat_official", Name: "📱 微信官方", Description: "模仿微信官方文章风格",
		PrimaryColor: "#07c160", SecondaryColor: "#ffffff",
		TextColor: "#3d3d3d", HeadingColor: "#000000", LinkColor: "#576b95",
		CodeBg: "#f2f2f2", BlockquoteBorder: "#07c160", BlockquoteBg: "#f2f2f2",
		FontFamily:   fontApple,
		HeadingStyle: HeadingNormal, LineHeight: 1.75,
	},
	{
		ID: "zhihu", Name: "🔵 知乎风", Description: "知乎蓝，适合知识分享、问答",
		PrimaryColor: "#0066ff", SecondaryColor: "#ffffff",
		TextColor: "#1a1a1a", HeadingColor: "#1a1a1a", LinkColor: "#0066ff",
		CodeBg: "#f6f6f6", BlockquoteBorder: "#0066ff", BlockquoteBg: "#f6f6f6",
		FontFamily:   fontApple,
		HeadingStyle: HeadingNormal, LineHeight: 1.8,
	},
	{
		ID: "xiaohongshu", Name: "📕 小红书风", Description: "小红书红，适合种草、分享",
		PrimaryColor: "#ff2442", SecondaryColor: "#fffaf0",
		TextColor: "#333333", HeadingColor: "#ff2442", LinkColor: "#ff2442",
		CodeBg: "#fff5f5", BlockquoteBorder: "#ff6b81", BlockquoteBg: "#fff0f3",
		FontFamily:   "'PingFang SC', 'Noto Sans SC', sans-serif",
		HeadingStyle: HeadingBackground, LineHeight: 1.9,
	},
	{
		ID: "futurism", Name: "🌌 赛博 2.0", Description: "高度视觉化，荧光描边与科技装饰",
		PrimaryColor: "#00f2ff", SecondaryColor: "#0a0a0c", AccentColor: "#ff00e5",
		TextColor: "#e0e0e0", HeadingColor: "#00f2ff", LinkColor: "#00f2ff",
		CodeBg: "#16161a", BlockquoteBorder: "#ff00e5", BlockquoteBg: "#16161a",
		FontFamily:   "'Space Grotesk', 'JetBrains Mono', monospace",
		HeadingStyle: HeadingBackground, LineHeight: 1.7,
	},
	{
		ID: "magazine", Name: "📖 艺术杂志", Description: "优雅衬线体，大留白排版",
		PrimaryColor: "#1a1a1a", SecondaryColor: "#ffffff", AccentColor: "#c19a6b",
		TextColor: "#333333", HeadingColor: "#000000", LinkColor: "#c19a6b",
		CodeBg: "#f9f9f9", BlockquoteBorder: "#c19a6b", BlockquoteBg: "#fcfaf4",
		FontFamily:   fontSerif,
		HeadingStyle: HeadingEditorial, ParagraphIndent: true, LineHeight: 2.2,
	},
	{
		ID: "minimalist_notion", Name: "📝 精致 Notion", Description: "极致呼吸感，单色精致美学",
		PrimaryColor: "#2f2e2b", SecondaryColor: "#ffffff", AccentColor: "#ebeced",
		TextColor: "#37352f", HeadingColor: "#1a1a1a", LinkColor: "#2563eb",
		CodeBg: "#f7f6f3", BlockquoteBorder: "#ebeced", BlockquoteBg: "#f7f6f3",
		FontFamily:   "-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif",
		HeadingStyle: HeadingMinimal, LineHeight: 1.8,
	},
}

// catalog 启动时构建，之后只读
var catalog = func() map[string]Theme {
	m := make(map[string]Theme, len(builtins))
	for _, t := range builtins {
		m[t.ID] = t
	}
	return m
}()

// Lookup 按标识查找内置主题
func Lookup(id string) (Theme, bool) {
	t, ok := catalog[id]
	return t, ok
}

// Resolve 按标识解析主题，未知标识返回默认主题
func Resolve(id string) Theme {
	if t, ok := Lookup(id); ok {
		return t
	}
	return Default()
}

// Default 默认主题
func Default() Theme {
	return catalog[DefaultID]
}

// List 按目录顺序返回全部内置主题
func List() []Theme {
	out := make([]Theme, len(builtins))
	copy(out, builtins)
	return out
}
