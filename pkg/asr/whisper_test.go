package asr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chengus/transcribe-audio/pkg/models"
)

// 创建一个测试用的音频文件
func createTestAudio(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	err := os.WriteFile(path, []byte("RIFF fake wav data"), 0644)
	assert.NoError(t, err)

	return path
}

func TestNewWhisperASR(t *testing.T) {
	audioPath := createTestAudio(t)

	recognizer, err := NewWhisperASR(audioPath, "http://127.0.0.1:8178/inference", false, "")
	assert.NoError(t, err)
	assert.NotEmpty(t, recognizer.CRC32Hex)
	assert.NotEmpty(t, recognizer.FileBinary)

	// 不存在的文件应该报错
	_, err = NewWhisperASR("./no_such_file.wav", "http://127.0.0.1:8178/inference", false, "")
	assert.Error(t, err)
}

func TestWhisperRecognize(t *testing.T) {
	// 模拟whisper推理服务
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"text": "你好 世界",
			"segments": [
				{"start": 0.0, "end": 1.5, "text": " 你好"},
				{"start": 1.5, "end": 3.0, "text": "世界"},
				{"start": 3.0, "end": 3.5, "text": "   "}
			]
		}`))
	}))
	defer server.Close()

	audioPath := createTestAudio(t)
	recognizer, err := NewWhisperASR(audioPath, server.URL, false, "")
	assert.NoError(t, err)

	var lastPercent int
	segments, err := recognizer.Recognize(context.Background(), func(percent int, message string) {
		lastPercent = percent
	})

	assert.NoError(t, err)
	assert.Equal(t, 100, lastPercent)

	// 空白段落被过滤，时间转换为厘秒，文本去除首尾空白
	assert.Equal(t, []models.RawSegment{
		{StartCS: 0, EndCS: 150, Text: "你好"},
		{StartCS: 150, EndCS: 300, Text: "世界"},
	}, segments)
}

func TestWhisperRecognizeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	audioPath := createTestAudio(t)
	recognizer, err := NewWhisperASR(audioPath, server.URL, false, "")
	assert.NoError(t, err)

	_, err = recognizer.Recognize(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestWhisperRecognizeCache(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.Write([]byte(`{"segments": [{"start": 0, "end": 1, "text": "缓存测试"}]}`))
	}))
	defer server.Close()

	audioPath := createTestAudio(t)
	cacheDir := t.TempDir()

	// 第一次识别请求服务并写入缓存
	first, err := NewWhisperASR(audioPath, server.URL, true, cacheDir)
	assert.NoError(t, err)
	segments, err := first.Recognize(context.Background(), nil)
	assert.NoError(t, err)
	assert.Len(t, segments, 1)
	assert.Equal(t, 1, callCount)

	// 第二次识别直接命中缓存，不再请求服务
	second, err := NewWhisperASR(audioPath, server.URL, true, cacheDir)
	assert.NoError(t, err)
	cached, err := second.Recognize(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, segments, cached)
	assert.Equal(t, 1, callCount)
}
