package asr

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/chengus/transcribe-audio/pkg/models"
	"github.com/chengus/transcribe-audio/pkg/utils"
)

// BaseRecognizer 提供识别服务的公共功能：音频加载和结果缓存
type BaseRecognizer struct {
	AudioPath  string // 音频文件路径
	FileBinary []byte // 文件二进制内容
	CRC32Hex   string // 文件CRC32校验和（十六进制）
	UseCache   bool   // 是否使用缓存
	CacheDir   string // 缓存目录
}

// NewBaseRecognizer 创建一个新的BaseRecognizer实例
func NewBaseRecognizer(audioPath string, useCache bool, cacheDir string) (*BaseRecognizer, error) {
	base := &BaseRecognizer{
		AudioPath: audioPath,
		UseCache:  useCache,
		CacheDir:  cacheDir,
	}

	if err := base.loadFile(); err != nil {
		return nil, err
	}

	base.calculateCRC32()
	return base, nil
}

// loadFile 加载音频文件到内存
func (b *BaseRecognizer) loadFile() error {
	if _, err := os.Stat(b.AudioPath); err != nil {
		return fmt.Errorf("无效的音频路径: %s", b.AudioPath)
	}

	utils.Debug("从文件读取音频数据: %s", b.AudioPath)

	data, err := os.ReadFile(b.AudioPath)
	if err != nil {
		return fmt.Errorf("读取音频文件失败: %w", err)
	}
	b.FileBinary = data

	return nil
}

// calculateCRC32 计算文件的CRC32校验和，作为缓存键的一部分
func (b *BaseRecognizer) calculateCRC32() {
	sum := crc32.ChecksumIEEE(b.FileBinary)
	b.CRC32Hex = fmt.Sprintf("%08x", sum)
	utils.Debug("计算的CRC32校验和: %s", b.CRC32Hex)
}

// GetCacheKey 获取缓存键名
func (b *BaseRecognizer) GetCacheKey(prefix string) string {
	return fmt.Sprintf("%s-%s.json", prefix, b.CRC32Hex)
}

// LoadFromCache 从缓存加载识别结果
func (b *BaseRecognizer) LoadFromCache(cacheKey string) ([]models.RawSegment, bool) {
	if !b.UseCache || b.CacheDir == "" {
		return nil, false
	}

	cacheFilePath := filepath.Join(b.CacheDir, cacheKey)

	var segments []models.RawSegment
	found, err := utils.LoadJSONFile(cacheFilePath, &segments)
	if err != nil {
		utils.Warn("读取缓存文件失败: %v", err)
		return nil, false
	}
	if !found {
		utils.Debug("缓存文件不存在: %s", cacheFilePath)
		return nil, false
	}

	return segments, true
}

// SaveToCache 保存识别结果到缓存
func (b *BaseRecognizer) SaveToCache(cacheKey string, segments []models.RawSegment) error {
	if !b.UseCache || b.CacheDir == "" {
		return nil
	}

	// 确保缓存目录存在
	if err := os.MkdirAll(b.CacheDir, 0755); err != nil {
		return fmt.Errorf("创建缓存目录失败: %w", err)
	}

	cacheFilePath := filepath.Join(b.CacheDir, cacheKey)
	return utils.SaveJSONFile(cacheFilePath, segments)
}
