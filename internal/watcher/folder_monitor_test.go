package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// fakeProcessor 测试用的转录处理器
type fakeProcessor struct {
	mu         sync.Mutex
	processed  []string
	recognized map[string]bool
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{recognized: make(map[string]bool)}
}

func (p *fakeProcessor) ProcessFile(filePath string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed = append(p.processed, filePath)
	return true
}

func (p *fakeProcessor) IsRecognizedFile(filePath string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.recognized[filePath]
}

func (p *fakeProcessor) processedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.processed)
}

func TestIsTargetFile(t *testing.T) {
	tempDir := t.TempDir()

	monitor, err := NewFolderMonitor(tempDir, []string{".wav", ".mp3"}, nil, time.Second)
	if err != nil {
		t.Fatalf("创建监控器失败: %v", err)
	}
	defer monitor.watcher.Close()

	// 创建测试文件
	wavPath := filepath.Join(tempDir, "audio.wav")
	if err := os.WriteFile(wavPath, []byte("data"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	txtPath := filepath.Join(tempDir, "note.txt")
	if err := os.WriteFile(txtPath, []byte("data"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	if !monitor.isTargetFile(wavPath) {
		t.Error("期望.wav文件被识别为目标文件")
	}
	if monitor.isTargetFile(txtPath) {
		t.Error("期望.txt文件不被识别为目标文件")
	}
	if monitor.isTargetFile(tempDir) {
		t.Error("期望目录不被识别为目标文件")
	}
	if monitor.isTargetFile(filepath.Join(tempDir, "no_such.wav")) {
		t.Error("期望不存在的文件不被识别为目标文件")
	}
}

func TestTranscribeEventHandler(t *testing.T) {
	processor := newFakeProcessor()
	handler := &transcribeEventHandler{processor: processor}

	// 新文件触发处理
	handler.OnFileCreated("/path/to/new.wav")
	if processor.processedCount() != 1 {
		t.Fatalf("期望处理1个文件，实际处理 %d 个", processor.processedCount())
	}

	// 已处理的文件被跳过
	processor.recognized["/path/to/done.wav"] = true
	handler.OnFileCreated("/path/to/done.wav")
	if processor.processedCount() != 1 {
		t.Fatalf("已处理文件不应再次处理，实际处理 %d 个", processor.processedCount())
	}

	// 删除事件不会panic
	handler.OnFileDeleted("/path/to/new.wav")
}

func TestMonitorDetectsNewFile(t *testing.T) {
	tempDir := t.TempDir()
	processor := newFakeProcessor()

	// 使用很短的去抖时间以加速测试
	handler := &transcribeEventHandler{processor: processor}
	monitor, err := NewFolderMonitor(tempDir, []string{".wav"}, handler, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("创建监控器失败: %v", err)
	}

	if err := monitor.Start(); err != nil {
		t.Fatalf("启动监控失败: %v", err)
	}
	defer monitor.Stop()

	// 写入一个新的音频文件
	audioPath := filepath.Join(tempDir, "new_audio.wav")
	if err := os.WriteFile(audioPath, []byte("RIFF data"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	// 等待去抖定时器触发
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if processor.processedCount() > 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	if processor.processedCount() == 0 {
		t.Fatal("期望监控器检测到新文件并触发处理")
	}
}
