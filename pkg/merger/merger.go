package merger

import (
	"unicode/utf8"

	"github.com/chengus/transcribe-audio/pkg/models"
	"github.com/chengus/transcribe-audio/pkg/utils"
)

// Options 段落合并选项
type Options struct {
	MaxSegmentLength int // 单个段落最大时长（秒），0表示不限制
	MaxCharsPerSeg   int // 单个段落最大字符数，0表示不限制
}

// Merge 将原始识别段落按时长和字符数限制贪心合并为输出段落
//
// 合并过程为单次正向遍历：维护一个"当前"段落，对每个原始段落
// 先计算合并后的候选段落，两个限制都满足才吸收，否则结束当前
// 段落并以该原始段落开始新的段落。原始段落永远不会被丢弃或拆分，
// 即使单个段落本身已经超出限制，它也会独立成段输出。
func Merge(segments []models.RawSegment, opts Options) []models.Chunk {
	useDurationLimit := opts.MaxSegmentLength > 0
	maxDurationCS := int64(opts.MaxSegmentLength) * 100 // 秒 -> 厘秒
	useCharLimit := opts.MaxCharsPerSeg > 0

	var chunks []models.Chunk
	var current *models.Chunk

	for _, seg := range segments {
		if current == nil {
			// 第一个段落，直接作为当前段落
			current = &models.Chunk{
				StartCS: seg.StartCS,
				EndCS:   seg.EndCS,
				Text:    seg.Text,
			}
			continue
		}

		// 尝试将段落追加到当前段落
		// 时长始终从当前段落的原始起点量到候选段落的终点，
		// 即段落"时长"是墙钟跨度，而不是各段时长之和
		durationOK := true
		if useDurationLimit {
			durationOK = seg.EndCS-current.StartCS <= maxDurationCS
		}

		newText := seg.Text
		if current.Text != "" {
			newText = current.Text + " " + seg.Text
		}

		charsOK := true
		if useCharLimit {
			charsOK = utf8.RuneCountInString(newText) <= opts.MaxCharsPerSeg
		}

		if durationOK && charsOK {
			// 吸收该段落，扩展当前段落
			current.EndCS = seg.EndCS
			current.Text = newText
		} else {
			// 结束当前段落，以该段落开始新的段落
			chunks = append(chunks, *current)
			current = &models.Chunk{
				StartCS: seg.StartCS,
				EndCS:   seg.EndCS,
				Text:    seg.Text,
			}
		}
	}

	// 输出最后一个未结束的段落
	if current != nil {
		chunks = append(chunks, *current)
	}

	utils.Debug("段落合并完成: %d 个原始段落 -> %d 个输出段落", len(segments), len(chunks))

	return chunks
}
