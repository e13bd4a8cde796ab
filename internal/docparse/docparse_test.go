package docparse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/document"

	"github.com/yockii/wx_publisher/internal/constant"
)

// newDocx 每个元素是一个段落，段落内按 run 拆分
func newDocx(t *testing.T, paragraphs ...[]string) []byte {
	t.Helper()
	doc := document.New()
	for _, runs := range paragraphs {
		para := doc.AddParagraph()
		for _, r := range runs {
			para.AddRun().AddText(r)
		}
	}
	buf := &bytes.Buffer{}
	require.NoError(t, doc.Save(buf))
	return buf.Bytes()
}

func TestExtractText(t *testing.T) {
	text, err := Extract("note.MD", []byte("\xEF\xBB\xBF# 标题\n正文"))
	require.NoError(t, err)
	assert.Equal(t, "# 标题\n正文", text)

	text, err = Extract("a.txt", []byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, "plain", text)

	_, err = Extract("a.txt", []byte{0xff, 0xfe, 0x00})
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	assert.ErrorIs(t, err, constant.ErrInvalidParams)
}

func TestExtractDocx(t *testing.T) {
	data := newDocx(t,
		[]string{"第一段", "，继续"},
		[]string{"   "},
		[]string{"第二段"},
		nil,
		[]string{"A & B"},
	)
	text, err := Extract("report.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "第一段，继续\n\n第二段\n\nA & B", text)
}

func TestExtractDocxInvalid(t *testing.T) {
	_, err := Extract("a.docx", []byte("not a zip"))
	assert.ErrorIs(t, err, constant.ErrInvalidParams)
}

func TestExtractPDFInvalid(t *testing.T) {
	_, err := Extract("a.pdf", []byte("%PDF-garbage"))
	assert.ErrorIs(t, err, constant.ErrInvalidParams)
}

func TestUnsupported(t *testing.T) {
	_, err := Extract("a.pptx", []byte("x"))
	assert.ErrorIs(t, err, constant.ErrUnsupportedFormat)
	assert.False(t, Supported("a.exe"))
	assert.True(t, Supported("A.PDF"))
}
