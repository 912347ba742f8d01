package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/chengus/transcribe-audio/pkg/models"
	"github.com/chengus/transcribe-audio/pkg/utils"
)

// WhisperASR 通过HTTP调用本地whisper推理服务的识别实现
type WhisperASR struct {
	*BaseRecognizer
	ServerURL string // 推理服务地址
	Client    *http.Client
}

// NewWhisperASR 创建whisper识别实例
func NewWhisperASR(audioPath, serverURL string, useCache bool, cacheDir string) (*WhisperASR, error) {
	base, err := NewBaseRecognizer(audioPath, useCache, cacheDir)
	if err != nil {
		return nil, err
	}

	return &WhisperASR{
		BaseRecognizer: base,
		ServerURL:      serverURL,
		Client:         &http.Client{Timeout: 10 * time.Minute},
	}, nil
}

// whisperResponse 推理服务的响应结构
type whisperResponse struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"` // 开始时间（秒）
		End   float64 `json:"end"`   // 结束时间（秒）
		Text  string  `json:"text"`
	} `json:"segments"`
	Error string `json:"error"`
}

// Recognize 实现Recognizer接口
func (w *WhisperASR) Recognize(ctx context.Context, callback ProgressCallback) ([]models.RawSegment, error) {
	// 检查是否有缓存
	cacheKey := w.GetCacheKey("WhisperASR")
	if w.UseCache {
		if segments, ok := w.LoadFromCache(cacheKey); ok {
			utils.Info("从缓存加载whisper识别结果")
			return segments, nil
		}
	}

	// 显示进度
	if callback != nil {
		callback(50, "正在识别...")
	}

	// 提交识别请求
	result, err := w.submit(ctx)
	if err != nil {
		return nil, fmt.Errorf("whisper识别请求失败: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("whisper服务返回错误: %s", result.Error)
	}

	// 处理结果
	segments := w.makeSegments(result)

	// 显示进度
	if callback != nil {
		callback(100, "识别完成")
	}

	// 缓存结果
	if w.UseCache {
		if err := w.SaveToCache(cacheKey, segments); err != nil {
			utils.Warn("保存whisper识别结果到缓存失败: %v", err)
		}
	}

	return segments, nil
}

// submit 提交识别请求
func (w *WhisperASR) submit(ctx context.Context) (*whisperResponse, error) {
	// 创建multipart表单
	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	// 添加表单字段
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("写入表单字段失败: %w", err)
	}

	// 添加文件
	part, err := writer.CreateFormFile("file", filepath.Base(w.AudioPath))
	if err != nil {
		return nil, fmt.Errorf("创建表单文件失败: %w", err)
	}
	if _, err := part.Write(w.FileBinary); err != nil {
		return nil, fmt.Errorf("写入文件数据失败: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("关闭表单写入器失败: %w", err)
	}

	// 创建请求
	req, err := http.NewRequestWithContext(ctx, "POST", w.ServerURL, &requestBody)
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	// 发送请求
	resp, err := w.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送识别请求失败: %w", err)
	}
	defer resp.Body.Close()

	// 读取响应
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("识别服务返回状态 %d: %s", resp.StatusCode, string(body))
	}

	// 解析JSON
	var result whisperResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("解析响应JSON失败: %w", err)
	}

	return &result, nil
}

// makeSegments 将响应转换为原始段落序列，秒转换为厘秒并过滤空白段落
func (w *WhisperASR) makeSegments(resp *whisperResponse) []models.RawSegment {
	var segments []models.RawSegment

	for _, item := range resp.Segments {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}

		segments = append(segments, models.RawSegment{
			StartCS: int64(item.Start*100 + 0.5),
			EndCS:   int64(item.End*100 + 0.5),
			Text:    text,
		})
	}

	return segments
}
