package models

// RawSegment 表示识别器输出的一个原始文本段落，时间单位为厘秒（1/100秒）
type RawSegment struct {
	StartCS int64  `json:"start_cs"` // 开始时间（厘秒）
	EndCS   int64  `json:"end_cs"`   // 结束时间（厘秒），不小于StartCS
	Text    string `json:"text"`     // 识别出的文本内容，已去除首尾空白且非空
}

// Chunk 表示合并后的一个输出段落，是字幕/文本输出的基本单位
type Chunk struct {
	StartCS int64  `json:"start_cs"` // 开始时间（厘秒），取自第一个被合并的原始段落
	EndCS   int64  `json:"end_cs"`   // 结束时间（厘秒），取自最后一个被合并的原始段落
	Text    string `json:"text"`     // 合并后的文本，原始段落之间用单个空格连接
}

// DurationCS 返回段落的时间跨度（厘秒）
func (c *Chunk) DurationCS() int64 {
	return c.EndCS - c.StartCS
}
