package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/chengus/transcribe-audio/pkg/models"
)

// SRTWriter 负责将合并后的段落逐条写出为SRT字幕格式
type SRTWriter struct {
	w     io.Writer
	index int // 已写出的条目数，SRT序号从1开始
}

// NewSRTWriter 创建一个新的SRT写入器
func NewSRTWriter(w io.Writer) *SRTWriter {
	return &SRTWriter{w: w}
}

// WriteChunk 写出一条SRT字幕条目
//
// 每条条目依次为：序号、时间范围、文本、空行
func (s *SRTWriter) WriteChunk(chunk models.Chunk) error {
	s.index++

	start := FormatTimestamp(chunk.StartCS)
	end := FormatTimestamp(chunk.EndCS)
	text := strings.TrimSpace(chunk.Text)

	_, err := fmt.Fprintf(s.w, "%d\n%s --> %s\n%s\n\n", s.index, start, end, text)
	return err
}

// GenerateSRTContent 生成完整的SRT格式内容字符串
func GenerateSRTContent(chunks []models.Chunk) string {
	var builder strings.Builder

	writer := NewSRTWriter(&builder)
	for _, chunk := range chunks {
		// 写入strings.Builder不会失败
		_ = writer.WriteChunk(chunk)
	}

	return builder.String()
}
