package engine

import (
	"os"
	"strings"

	"github.com/chengus/transcribe-audio/pkg/export"
	"github.com/chengus/transcribe-audio/pkg/merger"
	"github.com/chengus/transcribe-audio/pkg/models"
	"github.com/chengus/transcribe-audio/pkg/utils"
)

// Options 单次转录输出的参数
type Options struct {
	Format           models.OutputFormat // 输出格式 (srt, txt, both)
	MaxSegmentLength int                 // 单条字幕最大时长（秒），0表示不限制
	MaxCharsPerSeg   int                 // 单条字幕最大字符数，0表示不限制
}

// Transcribe 将原始识别段落合并并写出请求的输出文件，返回完整转录文本
//
// 整个过程为单次遍历：空白段落先被过滤，剩余段落按限制合并，
// 然后在一次遍历中同时写出SRT条目、TXT行并构建转录文本。
// 输出文件写在音频文件旁边，同名且扩展名为.srt/.txt。
// 所有请求的输出文件在写入开始前创建；写入中途失败时已写出的
// 内容原样保留，不做清理
func Transcribe(segments []models.RawSegment, audioPath string, opts Options) (string, error) {
	if !opts.Format.IsValid() {
		return "", NewInvalidFormatError(string(opts.Format))
	}

	writeSRT := opts.Format.WantSRT()
	writeTXT := opts.Format.WantTXT()

	// 过滤空白段落，识别器偶尔会输出纯空白的段落
	filtered := FilterSegments(segments)

	// 合并段落
	chunks := merger.Merge(filtered, merger.Options{
		MaxSegmentLength: opts.MaxSegmentLength,
		MaxCharsPerSeg:   opts.MaxCharsPerSeg,
	})

	// 先创建所有请求的输出文件，任何一个创建失败都直接终止
	paths := export.DeriveOutputPaths(audioPath, writeSRT, writeTXT)

	var srtWriter *export.SRTWriter
	if paths.SRT != "" {
		file, err := os.Create(paths.SRT)
		if err != nil {
			return "", NewIOError("create", paths.SRT, err)
		}
		defer file.Close()
		srtWriter = export.NewSRTWriter(file)
	}

	var txtWriter *export.TXTWriter
	if paths.TXT != "" {
		file, err := os.Create(paths.TXT)
		if err != nil {
			return "", NewIOError("create", paths.TXT, err)
		}
		defer file.Close()
		txtWriter = export.NewTXTWriter(file)
	}

	// 单次遍历：写出字幕条目和文本行，同时构建转录文本
	var transcript export.TranscriptBuilder

	for _, chunk := range chunks {
		transcript.Append(chunk)

		if srtWriter != nil {
			if err := srtWriter.WriteChunk(chunk); err != nil {
				return "", NewIOError("write", paths.SRT, err)
			}
		}

		if txtWriter != nil {
			if err := txtWriter.WriteChunk(chunk); err != nil {
				return "", NewIOError("write", paths.TXT, err)
			}
		}
	}

	if paths.SRT != "" {
		utils.Info("已导出SRT字幕: %s", paths.SRT)
	}
	if paths.TXT != "" {
		utils.Info("已导出TXT文本: %s", paths.TXT)
	}

	return transcript.String(), nil
}

// FilterSegments 过滤掉去除空白后为空的段落，其余段落原样保留
func FilterSegments(segments []models.RawSegment) []models.RawSegment {
	var filtered []models.RawSegment

	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		filtered = append(filtered, models.RawSegment{
			StartCS: seg.StartCS,
			EndCS:   seg.EndCS,
			Text:    text,
		})
	}

	return filtered
}
