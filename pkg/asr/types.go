package asr

import (
	"context"

	"github.com/chengus/transcribe-audio/pkg/models"
)

// ProgressCallback 是进度回调函数，用于通知识别过程的进度
type ProgressCallback func(percent int, message string)

// Recognizer 定义了语音识别服务的接口
//
// 识别服务被当作黑盒处理：输入音频，输出带厘秒时间戳的原始
// 段落序列。识别失败原样返回给调用方
type Recognizer interface {
	// Recognize 执行识别并返回原始段落序列
	Recognize(ctx context.Context, callback ProgressCallback) ([]models.RawSegment, error)
}
