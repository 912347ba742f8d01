package export

import (
	"path/filepath"
	"strings"
)

// OutputPaths 输出文件路径集合，未请求的格式对应空字符串
type OutputPaths struct {
	SRT string // SRT字幕文件路径
	TXT string // TXT文本文件路径
}

// DeriveOutputPaths 根据输入音频路径推导输出文件路径
//
// 输出文件与输入文件同目录同名，仅扩展名不同；输入路径没有
// 父目录时使用当前目录
func DeriveOutputPaths(audioPath string, writeSRT, writeTXT bool) OutputPaths {
	baseName := filepath.Base(audioPath)
	stem := strings.TrimSuffix(baseName, filepath.Ext(baseName))

	parent := filepath.Dir(audioPath)
	if parent == "" {
		parent = "."
	}

	var paths OutputPaths
	if writeSRT {
		paths.SRT = filepath.Join(parent, stem+".srt")
	}
	if writeTXT {
		paths.TXT = filepath.Join(parent, stem+".txt")
	}

	return paths
}
