package models

// Result 单个文件的处理结果统计信息
type Result struct {
	FilePath      string            `json:"file_path"`       // 处理的音频文件路径
	Service       string            `json:"service"`         // 使用的识别服务
	Transcript    string            `json:"transcript"`      // 完整转录文本
	OutputFiles   map[string]string `json:"output_files"`    // 输出文件路径（srt/txt）
	SegmentCount  int               `json:"segment_count"`   // 原始识别段数
	ChunkCount    int               `json:"chunk_count"`     // 合并后的段落数
	ProcessTimeMs int64             `json:"process_time_ms"` // 处理时间（毫秒）
}
