package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// AudioFile 表示一个待转录的音频文件
type AudioFile struct {
	Path      string    // 文件路径
	Name      string    // 文件名
	Ext       string    // 文件扩展名
	Size      int64     // 文件大小（字节）
	ModTime   time.Time // 修改时间
	Processed bool      // 是否已处理
}

// MediaScanner 用于扫描待转录的音频文件
type MediaScanner struct {
	AudioExtensions []string
}

// NewMediaScanner 创建新的媒体扫描器
func NewMediaScanner() *MediaScanner {
	return &MediaScanner{
		AudioExtensions: []string{".wav", ".mp3", ".m4a", ".flac", ".ogg", ".aac"},
	}
}

// ScanDirectory 扫描指定目录中的音频文件
func (s *MediaScanner) ScanDirectory(dir string) ([]AudioFile, error) {
	var audioFiles []AudioFile

	logrus.Infof("开始扫描目录: %s", dir)

	// 读取目录内容（非递归）
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		// 跳过目录和隐藏文件
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		ext := strings.ToLower(filepath.Ext(path))

		if !s.IsAudioFile(ext) {
			continue
		}

		// 获取文件信息
		info, err := entry.Info()
		if err != nil {
			logrus.Warnf("获取文件信息失败: %v", err)
			continue
		}

		audioFiles = append(audioFiles, AudioFile{
			Path:      path,
			Name:      entry.Name(),
			Ext:       ext,
			Size:      info.Size(),
			ModTime:   info.ModTime(),
			Processed: false,
		})
	}

	logrus.Infof("扫描完成，共找到 %d 个音频文件", len(audioFiles))

	return audioFiles, nil
}

// IsAudioFile 检查扩展名是否为支持的音频格式
func (s *MediaScanner) IsAudioFile(ext string) bool {
	ext = strings.ToLower(ext)
	for _, audioExt := range s.AudioExtensions {
		if ext == audioExt {
			return true
		}
	}
	return false
}

// FilterNewFiles 根据已处理记录过滤出新文件
func (s *MediaScanner) FilterNewFiles(files []AudioFile, processedPaths map[string]bool) []AudioFile {
	var newFiles []AudioFile

	for _, file := range files {
		if !processedPaths[file.Path] {
			newFiles = append(newFiles, file)
		}
	}

	logrus.Infof("过滤后剩余 %d 个新文件需要处理", len(newFiles))

	return newFiles
}
