package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chengus/transcribe-audio/pkg/models"
)

// 测试用的标准段落序列
func testSegments() []models.RawSegment {
	return []models.RawSegment{
		{StartCS: 0, EndCS: 150, Text: "Hello"},
		{StartCS: 150, EndCS: 300, Text: "world"},
		{StartCS: 300, EndCS: 700, Text: "this is long"},
	}
}

func TestTranscribeInvalidFormat(t *testing.T) {
	// 非法输出格式应该在任何处理发生前失败
	_, err := Transcribe(testSegments(), "test.wav", Options{Format: "mp3"})

	assert.Error(t, err)
	var engineErr *EngineError
	assert.True(t, errors.As(err, &engineErr))
	assert.Equal(t, KindInvalidFormat, engineErr.Kind)

	// 错误信息必须包含非法值和三个合法取值
	assert.Contains(t, err.Error(), "mp3")
	assert.Contains(t, err.Error(), "srt")
	assert.Contains(t, err.Error(), "txt")
	assert.Contains(t, err.Error(), "both")

	// 不应该产生任何输出文件
	assert.NoFileExists(t, "test.srt")
	assert.NoFileExists(t, "test.txt")
}

func TestTranscribeBoth(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "lecture.wav")

	transcript, err := Transcribe(testSegments(), audioPath, Options{
		Format:           models.FormatBoth,
		MaxSegmentLength: 3,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Hello world this is long", transcript)

	// SRT文件内容
	srtData, err := os.ReadFile(filepath.Join(dir, "lecture.srt"))
	assert.NoError(t, err)
	expectedSRT := "1\n" +
		"00:00:00,000 --> 00:00:03,000\n" +
		"Hello world\n" +
		"\n" +
		"2\n" +
		"00:00:03,000 --> 00:00:07,000\n" +
		"this is long\n" +
		"\n"
	assert.Equal(t, expectedSRT, string(srtData))

	// TXT文件内容，每个段落一行
	txtData, err := os.ReadFile(filepath.Join(dir, "lecture.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "Hello world\nthis is long\n", string(txtData))
}

func TestTranscribeSRTOnly(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "audio.wav")

	transcript, err := Transcribe(testSegments(), audioPath, Options{Format: models.FormatSRT})

	assert.NoError(t, err)
	assert.Equal(t, "Hello world this is long", transcript)
	assert.FileExists(t, filepath.Join(dir, "audio.srt"))
	assert.NoFileExists(t, filepath.Join(dir, "audio.txt"))
}

func TestTranscribeTXTOnly(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "audio.wav")

	transcript, err := Transcribe(testSegments(), audioPath, Options{Format: models.FormatTXT})

	assert.NoError(t, err)
	assert.Equal(t, "Hello world this is long", transcript)
	assert.NoFileExists(t, filepath.Join(dir, "audio.srt"))
	assert.FileExists(t, filepath.Join(dir, "audio.txt"))
}

func TestTranscribeEmptyInput(t *testing.T) {
	// 空段落序列应该产生空转录文本和空的输出文件，而不是错误
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "empty.wav")

	transcript, err := Transcribe(nil, audioPath, Options{Format: models.FormatBoth})

	assert.NoError(t, err)
	assert.Equal(t, "", transcript)

	srtData, err := os.ReadFile(filepath.Join(dir, "empty.srt"))
	assert.NoError(t, err)
	assert.Empty(t, srtData)

	txtData, err := os.ReadFile(filepath.Join(dir, "empty.txt"))
	assert.NoError(t, err)
	assert.Empty(t, txtData)
}

func TestTranscribeIdempotent(t *testing.T) {
	// 相同输入与参数重复调用应产生字节级相同的输出
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "repeat.wav")
	opts := Options{Format: models.FormatBoth, MaxSegmentLength: 3, MaxCharsPerSeg: 20}

	first, err := Transcribe(testSegments(), audioPath, opts)
	assert.NoError(t, err)
	firstSRT, _ := os.ReadFile(filepath.Join(dir, "repeat.srt"))
	firstTXT, _ := os.ReadFile(filepath.Join(dir, "repeat.txt"))

	second, err := Transcribe(testSegments(), audioPath, opts)
	assert.NoError(t, err)
	secondSRT, _ := os.ReadFile(filepath.Join(dir, "repeat.srt"))
	secondTXT, _ := os.ReadFile(filepath.Join(dir, "repeat.txt"))

	assert.Equal(t, first, second)
	assert.Equal(t, firstSRT, secondSRT)
	assert.Equal(t, firstTXT, secondTXT)
}

func TestTranscribeCreateFailure(t *testing.T) {
	// 输出目录不存在时创建文件失败，错误应携带路径和操作信息
	audioPath := filepath.Join(t.TempDir(), "no_such_dir", "audio.wav")

	_, err := Transcribe(testSegments(), audioPath, Options{Format: models.FormatSRT})

	assert.Error(t, err)
	var engineErr *EngineError
	assert.True(t, errors.As(err, &engineErr))
	assert.Equal(t, KindIOFailure, engineErr.Kind)
	assert.Equal(t, "create", engineErr.Op)
	assert.Contains(t, engineErr.Path, "audio.srt")
}

func TestFilterSegments(t *testing.T) {
	segments := []models.RawSegment{
		{StartCS: 0, EndCS: 100, Text: "有内容"},
		{StartCS: 100, EndCS: 200, Text: "   "},
		{StartCS: 200, EndCS: 300, Text: ""},
		{StartCS: 300, EndCS: 400, Text: "  两边有空白  "},
	}

	filtered := FilterSegments(segments)

	assert.Len(t, filtered, 2)
	assert.Equal(t, "有内容", filtered[0].Text)
	assert.Equal(t, "两边有空白", filtered[1].Text)
	assert.Equal(t, int64(300), filtered[1].StartCS)
}

func TestEngineErrorKinds(t *testing.T) {
	// 错误类别名称
	assert.Equal(t, "InvalidFormat", KindInvalidFormat.String())
	assert.Equal(t, "IOFailure", KindIOFailure.String())
	assert.Equal(t, "Upstream", KindUpstream.String())

	// 上游错误原样保留底层错误
	cause := errors.New("模型加载失败")
	err := NewUpstreamError("识别阶段失败", cause)
	assert.Equal(t, KindUpstream, err.Kind)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "识别阶段失败")
	assert.Contains(t, err.Error(), "模型加载失败")
}
