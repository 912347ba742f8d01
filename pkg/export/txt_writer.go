package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/chengus/transcribe-audio/pkg/models"
)

// TXTWriter 负责将合并后的段落写出为纯文本格式，每个段落一行
type TXTWriter struct {
	w io.Writer
}

// NewTXTWriter 创建一个新的TXT写入器
func NewTXTWriter(w io.Writer) *TXTWriter {
	return &TXTWriter{w: w}
}

// WriteChunk 写出一行段落文本
func (t *TXTWriter) WriteChunk(chunk models.Chunk) error {
	_, err := fmt.Fprintf(t.w, "%s\n", strings.TrimSpace(chunk.Text))
	return err
}

// TranscriptBuilder 构建完整的转录文本，段落之间用单个空格连接
type TranscriptBuilder struct {
	builder strings.Builder
}

// Append 追加一个段落的文本
func (b *TranscriptBuilder) Append(chunk models.Chunk) {
	text := strings.TrimSpace(chunk.Text)
	if b.builder.Len() > 0 {
		b.builder.WriteString(" ")
	}
	b.builder.WriteString(text)
}

// String 返回已构建的完整转录文本
func (b *TranscriptBuilder) String() string {
	return b.builder.String()
}
