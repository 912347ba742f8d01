package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/chengus/transcribe-audio/internal/controller"
	"github.com/chengus/transcribe-audio/pkg/models"
	"github.com/chengus/transcribe-audio/pkg/utils"
)

var (
	mediaDir   = flag.String("media", "./media", "音频文件目录")
	configFile = flag.String("config", "", "配置文件路径")
	format     = flag.String("format", "", "输出格式 (srt, txt, both)")
	maxLen     = flag.Int("max-segment-length", -1, "单条字幕最大时长（秒），0表示不限制")
	maxChars   = flag.Int("max-chars", -1, "单条字幕最大字符数，0表示不限制")
	serverURL  = flag.String("server", "", "Whisper服务地址")
	watchMode  = flag.Bool("watch", false, "监控模式，自动处理新增的音频文件")
	logLevel   = flag.String("log-level", "info", "日志级别 (debug, info, warn, error)")
	logFile    = flag.String("log-file", "", "日志文件路径")
)

func main() {
	// 解析命令行参数
	flag.Parse()

	// 校正日志级别
	_, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		*logLevel = "info"
	}

	// 打印欢迎信息
	printWelcome()

	// 创建控制器（内部完成日志和配置初始化）
	pc, err := controller.NewProcessorController(*configFile, *logLevel, *logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer pc.Cleanup()

	// 命令行参数覆盖配置
	applyFlags(pc.Config)

	if err := pc.Config.Validate(); err != nil {
		color.Red("配置无效: %v", err)
		os.Exit(1)
	}

	// 监控模式
	if *watchMode || pc.Config.WatchMode {
		color.Cyan("监控目录: %s", pc.Config.MediaFolder)
		if err := pc.StartWatchMode(); err != nil {
			logrus.Fatalf("启动监控模式失败: %v", err)
		}
		return
	}

	// 批处理模式
	results, err := pc.ProcessMedia()
	if err != nil {
		logrus.Fatalf("%v", err)
	}

	if len(results) == 0 {
		utils.Info("没有找到待处理的音频文件，程序退出")
		return
	}

	// 打印结果摘要
	fmt.Println("\n转录结果:")
	fmt.Println("--------------------")
	for _, result := range results {
		fmt.Printf("%s [%s]\n", result.FilePath, result.Service)
		for format, path := range result.OutputFiles {
			fmt.Printf("  %s -> %s\n", format, path)
		}
	}
	fmt.Println("--------------------")

	pc.PrintStats()

	fmt.Println("\n所有文件处理完成!")
}

func printWelcome() {
	// 使用彩色输出打印欢迎信息
	fmt.Println()
	color.Cyan("================================")
	color.Cyan("   音频转录工具 - Go 实现版本   ")
	color.Cyan("================================")
	fmt.Println()
}

// 用命令行参数覆盖配置文件中的设置
func applyFlags(config *models.Config) {
	if *mediaDir != "./media" {
		config.MediaFolder = *mediaDir
	}

	if *format != "" {
		config.OutputFormat = *format
	}

	if *maxLen >= 0 {
		config.MaxSegmentLength = *maxLen
	}

	if *maxChars >= 0 {
		config.MaxCharsPerSeg = *maxChars
	}

	if *serverURL != "" {
		config.ASRServerURL = *serverURL
	}

	// 确保目录存在
	os.MkdirAll(config.MediaFolder, 0755)
}
