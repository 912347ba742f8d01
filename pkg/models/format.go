package models

// OutputFormat 表示输出格式选项
type OutputFormat string

// 支持的输出格式常量
const (
	FormatSRT  OutputFormat = "srt"  // 仅输出SRT字幕文件
	FormatTXT  OutputFormat = "txt"  // 仅输出纯文本文件
	FormatBoth OutputFormat = "both" // 同时输出SRT和TXT
)

// WantSRT 判断是否需要输出SRT字幕文件
func (f OutputFormat) WantSRT() bool {
	return f == FormatSRT || f == FormatBoth
}

// WantTXT 判断是否需要输出TXT文本文件
func (f OutputFormat) WantTXT() bool {
	return f == FormatTXT || f == FormatBoth
}

// IsValid 判断输出格式是否为合法取值
func (f OutputFormat) IsValid() bool {
	return f == FormatSRT || f == FormatTXT || f == FormatBoth
}
