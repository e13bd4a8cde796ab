package constant

import (
	"errors"
	"net/http"

	"github.com/yockii/wx_publisher/pkg/mdtree"
)

// 自定义错误
var (
	// 通用错误
	ErrInternalError    = errors.New("内部错误")
	ErrInvalidParams    = errors.New("参数错误")
	ErrUnauthorized     = errors.New("请先登录")
	ErrDatabaseError    = errors.New("数据库错误")
	ErrRecordNotFound   = errors.New("记录不存在")
	ErrSerializeError   = errors.New("序列化错误")
	ErrDeserializeError = errors.New("反序列化错误")
	ErrCacheError       = errors.New("缓存错误")
	ErrTooManyRequests  = errors.New("请求过于频繁")
	ErrFileNotFound     = errors.New("文件不存在")

	// 内容相关错误
	ErrContentEmpty          = errors.New("内容不能为空")
	ErrStyleDescriptionEmpty = errors.New("请提供风格描述")
	ErrUnsupportedFormat     = errors.New("不支持的文件格式，请上传 .txt, .md, .docx 或 .pdf 文件")
	ErrFileEmpty             = errors.New("没有上传文件")

	// 配置相关错误
	ErrDeepSeekNotConfigured = errors.New("请先配置 DeepSeek API Key")
	ErrGroqNotConfigured     = errors.New("请先在设置中配置 Groq API Key（免费获取：console.groq.com）")
	ErrImgBBNotConfigured    = errors.New("请先配置 ImgBB API Key")
	ErrPoeNotConfigured      = errors.New("未配置 POE API Key")
	ErrWeChatNotConfigured   = errors.New("请先配置微信公众号 AppID 和 AppSecret")

	// 外部服务错误
	ErrUpstream     = errors.New("外部服务调用失败")
	ErrNoCoverImage = errors.New("缺少封面图 media_id")
)

var errorCodes = []struct {
	err  error
	code int
}{
	{ErrInvalidParams, http.StatusBadRequest},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrRecordNotFound, http.StatusNotFound},
	{ErrFileNotFound, http.StatusNotFound},
	{ErrTooManyRequests, http.StatusTooManyRequests},
	{ErrContentEmpty, http.StatusBadRequest},
	{ErrStyleDescriptionEmpty, http.StatusBadRequest},
	{ErrUnsupportedFormat, http.StatusBadRequest},
	{ErrFileEmpty, http.StatusBadRequest},
	{mdtree.ErrInvalidInput, http.StatusBadRequest},
	{ErrDeepSeekNotConfigured, http.StatusBadRequest},
	{ErrGroqNotConfigured, http.StatusBadRequest},
	{ErrImgBBNotConfigured, http.StatusBadRequest},
	{ErrPoeNotConfigured, http.StatusBadRequest},
	{ErrWeChatNotConfigured, http.StatusBadRequest},
	{ErrNoCoverImage, http.StatusBadRequest},
	{ErrUpstream, http.StatusBadGateway},
}

// GetErrorCode 获取错误对应的HTTP状态码，支持被包装的错误
func GetErrorCode(err error) int {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return http.StatusInternalServerError
}
