package docparse

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/unidoc/unioffice/document"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/pkg/util"
)

const paragraphSeparator = "\n\n"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrInvalidEncoding 文本文件不是合法的 UTF-8
var ErrInvalidEncoding = fmt.Errorf("文件不是 UTF-8 编码: %w", constant.ErrInvalidParams)

// Supported 是否支持该文件类型
func Supported(filename string) bool {
	switch util.Ext(filename) {
	case "txt", "md", "docx", "pdf":
		return true
	}
	return false
}

// Extract 按扩展名提取文件中的文本
func Extract(filename string, data []byte) (string, error) {
	switch util.Ext(filename) {
	case "txt", "md":
		return decodeText(data)
	case "docx":
		return extractDocx(data)
	case "pdf":
		return extractPDF(data)
	default:
		return "", constant.ErrUnsupportedFormat
	}
}

func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}

// extractDocx 按段落读取 docx 正文，跳过空段落
func extractDocx(data []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docx 文件损坏: %v: %w", err, constant.ErrInvalidParams)
	}

	paragraphs := make([]string, 0)
	for _, para := range doc.Paragraphs() {
		var text strings.Builder
		for _, run := range para.Runs() {
			text.WriteString(run.Text())
		}
		if s := text.String(); strings.TrimSpace(s) != "" {
			paragraphs = append(paragraphs, s)
		}
	}
	return strings.Join(paragraphs, paragraphSeparator), nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf 文件损坏: %v: %w", err, constant.ErrInvalidParams)
	}
	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("读取 pdf 第 %d 页失败: %v: %w", i, err, constant.ErrInvalidParams)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, paragraphSeparator), nil
}
