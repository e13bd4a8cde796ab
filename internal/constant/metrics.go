package constant

// 渲染指标中的主题来源
const (
	ThemeSourceCatalog = "catalog"
	ThemeSourceInline  = "inline"
	ThemeSourceAI      = "ai"
)

// 外部服务名称，用于日志与指标
const (
	UpstreamDeepSeek = "deepseek"
	UpstreamGroq     = "groq"
	UpstreamPoe      = "poe"
	UpstreamImgBB    = "imgbb"
	UpstreamWeChat   = "wechat"
	UpstreamIPLookup = "ip_lookup"
)
