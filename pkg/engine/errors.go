package engine

import "fmt"

// ErrorKind 引擎错误类别，调用方可以按类别分支处理
type ErrorKind int

// 错误类别常量
const (
	KindInvalidFormat ErrorKind = iota // 输出格式参数非法
	KindIOFailure                      // 输出文件创建或写入失败
	KindUpstream                       // 上游识别阶段失败
)

// String 返回错误类别的名称
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindIOFailure:
		return "IOFailure"
	case KindUpstream:
		return "Upstream"
	default:
		return "Unknown"
	}
}

// EngineError 引擎错误，携带类别和可读的详细信息
type EngineError struct {
	Kind   ErrorKind // 错误类别
	Path   string    // 相关文件路径（IO错误时）
	Op     string    // 失败的操作（IO错误时）
	Detail string    // 人类可读的详细信息
	Cause  error     // 底层错误
}

// Error 实现error接口
func (e *EngineError) Error() string {
	msg := e.Detail
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s %s)", msg, e.Op, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}
	return msg
}

// Unwrap 支持error chain
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// NewInvalidFormatError 创建输出格式非法错误，错误信息包含非法值和三个合法取值
func NewInvalidFormatError(format string) *EngineError {
	return &EngineError{
		Kind:   KindInvalidFormat,
		Detail: fmt.Sprintf("无效的输出格式: %q，支持的格式为 srt、txt、both", format),
	}
}

// NewIOError 创建输出文件IO错误
func NewIOError(op, path string, cause error) *EngineError {
	return &EngineError{
		Kind:   KindIOFailure,
		Path:   path,
		Op:     op,
		Detail: "输出文件操作失败",
		Cause:  cause,
	}
}

// NewUpstreamError 创建上游识别错误，底层错误原样保留在Cause中
func NewUpstreamError(detail string, cause error) *EngineError {
	return &EngineError{
		Kind:   KindUpstream,
		Detail: detail,
		Cause:  cause,
	}
}
