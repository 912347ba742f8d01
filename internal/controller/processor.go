package controller

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/chengus/transcribe-audio/internal/ui"
	"github.com/chengus/transcribe-audio/internal/watcher"
	"github.com/chengus/transcribe-audio/pkg/asr"
	"github.com/chengus/transcribe-audio/pkg/engine"
	"github.com/chengus/transcribe-audio/pkg/merger"
	"github.com/chengus/transcribe-audio/pkg/models"
	"github.com/chengus/transcribe-audio/pkg/scanner"
	"github.com/chengus/transcribe-audio/pkg/utils"
)

// ProcessorController 处理器控制器，协调各个组件工作
type ProcessorController struct {
	// 配置
	Config *models.Config

	// UI组件
	ProgressManager *ui.ProgressManager

	// 处理组件
	Scanner      *scanner.MediaScanner
	Selector     *asr.Selector
	ErrorHandler *utils.ErrorHandler

	// 上下文控制
	ctx        context.Context
	cancelFunc context.CancelFunc

	// 状态数据
	Stats struct {
		StartTime       time.Time
		TotalFiles      int
		SuccessfulFiles int
		FailedFiles     int
	}

	// 已处理文件记录
	processedFiles map[string]bool

	// 资源管理
	cleanup []func() // 清理函数列表
	mu      sync.Mutex
}

// NewProcessorController 创建处理器控制器
func NewProcessorController(configFile string, logLevel string, logFile string) (*ProcessorController, error) {
	// 创建上下文，支持取消
	ctx, cancel := context.WithCancel(context.Background())

	// 初始化控制器
	pc := &ProcessorController{
		Config:         models.NewDefaultConfig(),
		ctx:            ctx,
		cancelFunc:     cancel,
		processedFiles: make(map[string]bool),
	}

	// 初始化日志
	if err := utils.InitLogger(logLevel, logFile); err != nil {
		cancel()
		return nil, fmt.Errorf("初始化日志失败: %v", err)
	}

	// 加载配置
	if configFile != "" {
		if err := pc.Config.LoadFromFile(configFile); err != nil {
			utils.Warn("配置加载失败: %v，将使用默认配置", err)
		}
	}

	// 日志初始化后再创建ProgressManager
	pc.ProgressManager = ui.NewProgressManager(pc.Config.ShowProgress)

	// 初始化组件
	pc.initComponents()

	// 注册信号处理
	pc.setupSignalHandlers()

	return pc, nil
}

// 初始化所有组件
func (pc *ProcessorController) initComponents() {
	pc.Scanner = scanner.NewMediaScanner()
	pc.ErrorHandler = utils.NewErrorHandler(pc.Config.MaxRetries, pc.Config.RetryDelay)

	// 初始化识别服务选择器
	pc.Selector = asr.NewSelector()
	pc.registerRecognizers()
}

// 注册识别服务
func (pc *ProcessorController) registerRecognizers() {
	pc.Selector.RegisterService("whisper",
		func(audioPath string, config *models.Config) (asr.Recognizer, error) {
			return asr.NewWhisperASR(audioPath, config.ASRServerURL, config.UseCache, config.CacheDir)
		},
		10,
	)
}

// ProcessMedia 扫描媒体目录并处理所有音频文件
func (pc *ProcessorController) ProcessMedia() ([]models.Result, error) {
	pc.Stats.StartTime = time.Now()

	files, err := pc.Scanner.ScanDirectory(pc.Config.MediaFolder)
	if err != nil {
		return nil, fmt.Errorf("扫描媒体目录失败: %w", err)
	}

	newFiles := pc.Scanner.FilterNewFiles(files, pc.processedFiles)

	var results []models.Result
	for i, file := range newFiles {
		fmt.Printf("\n[%d/%d] 处理文件: %s (%s)\n",
			i+1, len(newFiles), file.Name, utils.FormatFileSize(file.Size))

		result, err := pc.TranscribeFile(file.Path)
		if err != nil {
			color.Red("处理失败: %v", err)
			pc.Stats.FailedFiles++
			continue
		}

		color.Green("转录完成: %d 个段落", result.ChunkCount)
		fmt.Printf("处理用时: %s\n", utils.FormatTimeDuration(float64(result.ProcessTimeMs)/1000))

		results = append(results, *result)
		pc.Stats.SuccessfulFiles++
	}

	pc.Stats.TotalFiles = len(newFiles)

	return results, nil
}

// TranscribeFile 处理单个音频文件：识别、合并段落并写出请求的输出文件
func (pc *ProcessorController) TranscribeFile(audioPath string) (*models.Result, error) {
	startTime := time.Now()
	taskID := uuid.New().String()[:8]

	utils.WithFields(map[string]interface{}{
		"task": taskID,
		"file": filepath.Base(audioPath),
	}).Info("开始转录任务")

	// 创建进度条
	barID := "asr_" + taskID
	pc.ProgressManager.CreateProgressBar(barID, 100, "识别 "+filepath.Base(audioPath), "准备中...")

	progressCallback := func(percent int, message string) {
		pc.ProgressManager.UpdateProgressBar(barID, percent, message)
	}

	// 执行识别，失败时重试由ErrorHandler负责
	var segments []models.RawSegment
	var serviceName string

	err := pc.ErrorHandler.Retry("识别 "+filepath.Base(audioPath), func() error {
		ctx, cancel := context.WithTimeout(pc.ctx, 10*time.Minute)
		defer cancel()

		var runErr error
		segments, serviceName, runErr = pc.Selector.Run(
			ctx, audioPath, pc.Config.ASRService, pc.Config, progressCallback)
		return runErr
	})
	if err != nil {
		pc.ProgressManager.CompleteProgressBar(barID, "识别失败")
		return nil, engine.NewUpstreamError("语音识别失败", err)
	}

	pc.ProgressManager.CompleteProgressBar(barID, "识别完成")

	// 合并段落并写出输出文件
	transcript, err := engine.Transcribe(segments, audioPath, engine.Options{
		Format:           models.OutputFormat(pc.Config.OutputFormat),
		MaxSegmentLength: pc.Config.MaxSegmentLength,
		MaxCharsPerSeg:   pc.Config.MaxCharsPerSeg,
	})
	if err != nil {
		return nil, err
	}

	// 记录为已处理
	pc.mu.Lock()
	pc.processedFiles[audioPath] = true
	pc.mu.Unlock()

	// 组装结果
	format := models.OutputFormat(pc.Config.OutputFormat)
	outputFiles := make(map[string]string)
	if format.WantSRT() {
		outputFiles["srt"] = replaceExt(audioPath, ".srt")
	}
	if format.WantTXT() {
		outputFiles["txt"] = replaceExt(audioPath, ".txt")
	}

	chunks := merger.Merge(engine.FilterSegments(segments), merger.Options{
		MaxSegmentLength: pc.Config.MaxSegmentLength,
		MaxCharsPerSeg:   pc.Config.MaxCharsPerSeg,
	})

	result := &models.Result{
		FilePath:      audioPath,
		Service:       serviceName,
		Transcript:    transcript,
		OutputFiles:   outputFiles,
		SegmentCount:  len(segments),
		ChunkCount:    len(chunks),
		ProcessTimeMs: time.Since(startTime).Milliseconds(),
	}

	return result, nil
}

// ProcessFile 实现watcher.TranscribeHandler接口
func (pc *ProcessorController) ProcessFile(filePath string) bool {
	_, err := pc.TranscribeFile(filePath)
	if err != nil {
		utils.Error("监控模式处理失败: %v", err)
		return false
	}
	return true
}

// IsRecognizedFile 实现watcher.TranscribeHandler接口
func (pc *ProcessorController) IsRecognizedFile(filePath string) bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.processedFiles[filePath]
}

// StartWatchMode 启动监控模式，自动转录新出现的音频文件
func (pc *ProcessorController) StartWatchMode() error {
	// 确保目录存在
	os.MkdirAll(pc.Config.MediaFolder, 0755)

	stopMonitor, err := watcher.StartMediaFolderMonitoring(
		pc.Config.MediaFolder,
		pc,
		pc.Scanner.AudioExtensions,
	)
	if err != nil {
		return err
	}
	pc.addCleanup(stopMonitor)

	utils.Info("监控已启动，按Ctrl+C退出...")

	// 等待终止信号
	return pc.waitForTermination()
}

// PrintStats 打印处理统计信息
func (pc *ProcessorController) PrintStats() {
	elapsed := time.Since(pc.Stats.StartTime)

	fmt.Println("\n处理统计:")
	fmt.Printf("- 总文件数: %d\n", pc.Stats.TotalFiles)
	fmt.Printf("- 成功: %d\n", pc.Stats.SuccessfulFiles)
	fmt.Printf("- 失败: %d\n", pc.Stats.FailedFiles)
	fmt.Printf("- 总用时: %s\n", utils.FormatTimeDuration(elapsed.Seconds()))

	// 输出服务统计信息
	stats := pc.Selector.GetStats()
	utils.Info("识别服务统计信息:")
	for name, stat := range stats {
		utils.Info("%s: 调用次数=%v, 成功率=%v, 可用=%v",
			name, stat["count"], stat["success_rate"], stat["available"])
	}
}

// 添加清理函数
func (pc *ProcessorController) addCleanup(cleanup func()) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.cleanup = append(pc.cleanup, cleanup)
}

// Cleanup 执行所有清理
func (pc *ProcessorController) Cleanup() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	// 逆序执行清理函数
	for i := len(pc.cleanup) - 1; i >= 0; i-- {
		pc.cleanup[i]()
	}

	// 清理进度条
	if pc.ProgressManager != nil {
		pc.ProgressManager.CloseAll("已完成")
	}

	// 恢复日志设置
	utils.DisableTerminalProgress()
}

// 设置中断处理
func (pc *ProcessorController) setupSignalHandlers() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		utils.Info("接收到中断信号，正在停止...")
		pc.cancelFunc() // 取消上下文
	}()
}

// 等待终止信号
func (pc *ProcessorController) waitForTermination() error {
	<-pc.ctx.Done()
	return nil
}

// 替换文件扩展名
func replaceExt(path, newExt string) string {
	base := path[:len(path)-len(filepath.Ext(path))]
	return base + newExt
}
