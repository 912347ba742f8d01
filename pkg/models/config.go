package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Config 表示应用程序的配置
type Config struct {
	MediaFolder      string  `json:"media_folder"`       // 音频文件所在文件夹
	OutputFormat     string  `json:"output_format"`      // 输出格式 (srt, txt, both)
	MaxSegmentLength int     `json:"max_segment_length"` // 单条字幕最大时长（秒），0表示不限制
	MaxCharsPerSeg   int     `json:"max_chars_per_seg"`  // 单条字幕最大字符数，0表示不限制
	ASRService       string  `json:"asr_service"`        // 识别服务名称 (whisper, auto)
	ASRServerURL     string  `json:"asr_server_url"`     // 识别服务地址
	UseCache         bool    `json:"use_cache"`          // 是否缓存识别结果
	CacheDir         string  `json:"cache_dir"`          // 识别结果缓存目录
	WatchMode        bool    `json:"watch_mode"`         // 是否启用监听模式
	ShowProgress     bool    `json:"show_progress"`      // 显示进度条
	MaxRetries       int     `json:"max_retries"`        // 识别请求最大重试次数
	RetryDelay       float64 `json:"retry_delay"`        // 重试延迟（秒）
	LogLevel         string  `json:"log_level"`          // 日志级别
	LogFile          string  `json:"log_file"`           // 日志文件
}

// ConfigValidationError 表示配置验证错误
type ConfigValidationError struct {
	Field   string
	Message string
}

func (e *ConfigValidationError) Error() string {
	msg := fmt.Sprintf("配置验证错误: %s - %s", e.Field, e.Message)
	logrus.Error(msg)
	return msg
}

// NewDefaultConfig 创建默认配置
func NewDefaultConfig() *Config {
	return &Config{
		MediaFolder:      "./media",
		OutputFormat:     string(FormatBoth),
		MaxSegmentLength: 6,
		MaxCharsPerSeg:   0,
		ASRService:       "whisper",
		ASRServerURL:     "http://127.0.0.1:8178/inference",
		UseCache:         true,
		CacheDir:         "./cache",
		WatchMode:        false,
		ShowProgress:     true,
		MaxRetries:       3,
		RetryDelay:       1.0,
		LogLevel:         "INFO",
		LogFile:          "",
	}
}

// Validate 验证配置是否有效
func (c *Config) Validate() error {
	// 验证文件夹路径
	if err := ensureDirExists(c.MediaFolder); err != nil {
		return &ConfigValidationError{"MediaFolder", err.Error()}
	}

	// 验证输出格式
	if !OutputFormat(c.OutputFormat).IsValid() {
		return &ConfigValidationError{"OutputFormat", "必须是 srt、txt 或 both"}
	}

	// 验证数值范围
	if c.MaxSegmentLength < 0 {
		return &ConfigValidationError{"MaxSegmentLength", "不能为负数"}
	}

	if c.MaxCharsPerSeg < 0 {
		return &ConfigValidationError{"MaxCharsPerSeg", "不能为负数"}
	}

	if c.MaxRetries < 1 || c.MaxRetries > 10 {
		return &ConfigValidationError{"MaxRetries", "必须在1-10之间"}
	}

	if c.RetryDelay < 0.1 || c.RetryDelay > 10.0 {
		return &ConfigValidationError{"RetryDelay", "必须在0.1-10.0秒之间"}
	}

	return nil
}

// LoadFromFile 从文件加载配置
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("读取配置文件失败: %v", err)
		return err
	}

	err = json.Unmarshal(data, c)
	if err != nil {
		logrus.Errorf("解析配置文件失败: %v", err)
		return err
	}

	if err := c.Validate(); err != nil {
		logrus.Errorf("配置验证失败: %v", err)
		return err
	}

	return nil
}

// SaveToFile 保存配置到文件
func (c *Config) SaveToFile(path string) error {
	// 确保目录存在
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logrus.Errorf("创建目录失败: %v", err)
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		logrus.Errorf("序列化配置失败: %v", err)
		return err
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		logrus.Errorf("写入配置文件失败: %v", err)
		return err
	}

	return nil
}

// Update 批量更新配置
func (c *Config) Update(updates map[string]interface{}) error {
	// 保存当前配置（用于回滚）
	tempConfig := *c

	// 将更新序列化为JSON再反序列化到结构体中
	// 这种方式处理map到struct的转换较为方便
	updateBytes, err := json.Marshal(updates)
	if err != nil {
		logrus.Errorf("序列化更新数据失败: %v", err)
		return err
	}

	err = json.Unmarshal(updateBytes, c)
	if err != nil {
		// 回滚配置
		*c = tempConfig
		logrus.Errorf("应用配置更新失败: %v", err)
		return err
	}

	// 验证配置
	if err := c.Validate(); err != nil {
		// 回滚配置
		*c = tempConfig
		return err
	}

	return nil
}

// Reset 重置为默认配置
func (c *Config) Reset() {
	defaultConfig := NewDefaultConfig()
	*c = *defaultConfig
}

// 确保目录存在，如果不存在则创建
func ensureDirExists(path string) error {
	if path == "" {
		return nil // 空路径视为可选
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0755)
	}

	return nil
}
