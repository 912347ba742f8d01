package models

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	// 验证默认值是否正确设置
	assert.Equal(t, "./media", config.MediaFolder)
	assert.Equal(t, "both", config.OutputFormat)
	assert.Equal(t, 6, config.MaxSegmentLength)
	assert.Equal(t, 0, config.MaxCharsPerSeg)
	assert.Equal(t, "whisper", config.ASRService)
	assert.True(t, config.UseCache)
	assert.Equal(t, 3, config.MaxRetries)
	assert.False(t, config.WatchMode)
}

func TestConfigValidate(t *testing.T) {
	// 测试有效配置
	config := NewDefaultConfig()
	config.MediaFolder = t.TempDir()
	err := config.Validate()
	assert.NoError(t, err)

	// 测试无效的输出格式
	config.OutputFormat = "mp4"
	err = config.Validate()
	assert.Error(t, err)
	configErr, ok := err.(*ConfigValidationError)
	assert.True(t, ok)
	assert.Equal(t, "OutputFormat", configErr.Field)

	// 恢复有效值并测试另一个字段
	config.OutputFormat = "srt"
	config.MaxSegmentLength = -1
	err = config.Validate()
	assert.Error(t, err)
	configErr, ok = err.(*ConfigValidationError)
	assert.True(t, ok)
	assert.Equal(t, "MaxSegmentLength", configErr.Field)

	// 测试无效的MaxRetries
	config.MaxSegmentLength = 6
	config.MaxRetries = 0
	err = config.Validate()
	assert.Error(t, err)
	configErr, ok = err.(*ConfigValidationError)
	assert.True(t, ok)
	assert.Equal(t, "MaxRetries", configErr.Field)
}

func TestConfigSaveAndLoad(t *testing.T) {
	// 创建临时文件用于测试
	tempFile := "./test_config.json"
	defer os.Remove(tempFile) // 测试结束后清理

	// 创建并保存配置
	originalConfig := NewDefaultConfig()
	originalConfig.MediaFolder = t.TempDir()
	originalConfig.OutputFormat = "txt"
	originalConfig.MaxSegmentLength = 10
	originalConfig.MaxCharsPerSeg = 42

	err := originalConfig.SaveToFile(tempFile)
	assert.NoError(t, err)

	// 从文件加载配置
	loadedConfig := NewDefaultConfig()
	err = loadedConfig.LoadFromFile(tempFile)
	assert.NoError(t, err)

	// 验证加载的配置是否与原始配置匹配
	assert.Equal(t, originalConfig.MediaFolder, loadedConfig.MediaFolder)
	assert.Equal(t, originalConfig.OutputFormat, loadedConfig.OutputFormat)
	assert.Equal(t, originalConfig.MaxSegmentLength, loadedConfig.MaxSegmentLength)
	assert.Equal(t, originalConfig.MaxCharsPerSeg, loadedConfig.MaxCharsPerSeg)
}

func TestConfigUpdate(t *testing.T) {
	config := NewDefaultConfig()
	config.MediaFolder = t.TempDir()

	// 有效更新
	updates := map[string]interface{}{
		"output_format":      "srt",
		"max_segment_length": 15,
		"use_cache":          false,
	}

	err := config.Update(updates)
	assert.NoError(t, err)
	assert.Equal(t, "srt", config.OutputFormat)
	assert.Equal(t, 15, config.MaxSegmentLength)
	assert.False(t, config.UseCache)

	// 无效更新
	invalidUpdates := map[string]interface{}{
		"max_retries": 20, // 超出最大值10
	}

	err = config.Update(invalidUpdates)
	assert.Error(t, err)
	assert.Equal(t, 3, config.MaxRetries) // 应该保持原值
}

func TestConfigReset(t *testing.T) {
	config := NewDefaultConfig()

	// 修改配置
	config.OutputFormat = "txt"
	config.MaxRetries = 5
	config.UseCache = false

	// 重置为默认值
	config.Reset()

	// 验证是否重置为默认值
	assert.Equal(t, "both", config.OutputFormat)
	assert.Equal(t, 3, config.MaxRetries)
	assert.True(t, config.UseCache)
}

func TestOutputFormat(t *testing.T) {
	// 验证三种合法格式
	assert.True(t, OutputFormat("srt").IsValid())
	assert.True(t, OutputFormat("txt").IsValid())
	assert.True(t, OutputFormat("both").IsValid())
	assert.False(t, OutputFormat("json").IsValid())
	assert.False(t, OutputFormat("").IsValid())

	// 验证输出开关
	assert.True(t, FormatSRT.WantSRT())
	assert.False(t, FormatSRT.WantTXT())
	assert.False(t, FormatTXT.WantSRT())
	assert.True(t, FormatTXT.WantTXT())
	assert.True(t, FormatBoth.WantSRT())
	assert.True(t, FormatBoth.WantTXT())
}
