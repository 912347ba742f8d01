package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/chengus/transcribe-audio/pkg/utils"
)

// FileEventHandler 是处理文件事件的接口
type FileEventHandler interface {
	OnFileCreated(filePath string)
	OnFileDeleted(filePath string)
}

// FolderMonitor 监控文件夹中新增的音频文件
type FolderMonitor struct {
	watcher        *fsnotify.Watcher
	folderPath     string
	fileExtensions []string
	handler        FileEventHandler
	debounceTime   time.Duration
	pendingFiles   map[string]*time.Timer
	mutex          sync.Mutex
	stopChan       chan struct{}
}

// NewFolderMonitor 创建新的文件夹监控器
func NewFolderMonitor(folderPath string, extensions []string, handler FileEventHandler, debounceTime time.Duration) (*FolderMonitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监控器失败: %w", err)
	}

	monitor := &FolderMonitor{
		watcher:        watcher,
		folderPath:     folderPath,
		fileExtensions: extensions,
		handler:        handler,
		debounceTime:   debounceTime,
		pendingFiles:   make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}

	return monitor, nil
}

// Start 开始监控文件夹
func (m *FolderMonitor) Start() error {
	// 确保文件夹存在
	if err := os.MkdirAll(m.folderPath, 0755); err != nil {
		return fmt.Errorf("创建文件夹失败: %w", err)
	}

	// 添加要监控的文件夹
	if err := m.watcher.Add(m.folderPath); err != nil {
		return fmt.Errorf("添加监控文件夹失败: %w", err)
	}

	// 启动监控协程
	go m.watchLoop()

	utils.Info("开始监控文件夹: %s", m.folderPath)
	return nil
}

// Stop 停止监控
func (m *FolderMonitor) Stop() {
	close(m.stopChan)
	m.watcher.Close()
	utils.Info("停止监控文件夹: %s", m.folderPath)

	// 取消所有待处理的文件定时器
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, timer := range m.pendingFiles {
		timer.Stop()
	}
}

// watchLoop 监控循环
func (m *FolderMonitor) watchLoop() {
	for {
		select {
		case <-m.stopChan:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			m.handleFileEvent(event)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			utils.Error("监控文件夹时出错: %v", err)
		}
	}
}

// 处理文件事件
func (m *FolderMonitor) handleFileEvent(event fsnotify.Event) {
	// 删除事件直接通知处理器
	if event.Op&fsnotify.Remove != 0 {
		if m.handler != nil {
			m.handler.OnFileDeleted(event.Name)
		}
		return
	}

	// 其余只处理创建和写入事件
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	filePath := event.Name
	if !m.isTargetFile(filePath) {
		return
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// 取消已存在的定时器，文件仍在写入时推迟处理
	if timer, exists := m.pendingFiles[filePath]; exists {
		timer.Stop()
	}

	// 创建新的定时器
	m.pendingFiles[filePath] = time.AfterFunc(m.debounceTime, func() {
		m.processFile(filePath)
	})

	utils.Debug("检测到文件变化: %s", filePath)
}

// 判断是否为目标文件类型
func (m *FolderMonitor) isTargetFile(filePath string) bool {
	// 检查是否为常规文件
	fileInfo, err := os.Stat(filePath)
	if err != nil || fileInfo.IsDir() {
		return false
	}

	// 检查扩展名
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, targetExt := range m.fileExtensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}

// 处理文件
func (m *FolderMonitor) processFile(filePath string) {
	m.mutex.Lock()
	delete(m.pendingFiles, filePath)
	m.mutex.Unlock()

	// 检查文件是否仍然存在
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return
	}

	utils.Info("准备处理文件: %s", filePath)
	if m.handler != nil {
		m.handler.OnFileCreated(filePath)
	}
}

// TranscribeHandler 是监控模式下处理新音频文件的接口
type TranscribeHandler interface {
	ProcessFile(filePath string) bool
	IsRecognizedFile(filePath string) bool
}

// transcribeEventHandler 将文件事件转发给转录处理器
type transcribeEventHandler struct {
	processor TranscribeHandler
}

func (h *transcribeEventHandler) OnFileCreated(filePath string) {
	// 已处理过的文件不再重复转录
	if h.processor.IsRecognizedFile(filePath) {
		utils.Debug("文件已处理过，跳过: %s", filePath)
		return
	}

	if ok := h.processor.ProcessFile(filePath); !ok {
		utils.Warn("监控模式处理文件失败: %s", filePath)
	}
}

func (h *transcribeEventHandler) OnFileDeleted(filePath string) {
	utils.Debug("文件已删除: %s", filePath)
}

// StartMediaFolderMonitoring 开始监控音频文件夹并自动转录新文件，返回停止函数
func StartMediaFolderMonitoring(mediaFolder string, processor TranscribeHandler, extensions []string) (func(), error) {
	handler := &transcribeEventHandler{processor: processor}

	monitor, err := NewFolderMonitor(mediaFolder, extensions, handler, 5*time.Second)
	if err != nil {
		return nil, err
	}

	if err := monitor.Start(); err != nil {
		return nil, err
	}

	// 返回停止函数
	return func() {
		monitor.Stop()
	}, nil
}
