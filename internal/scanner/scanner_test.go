package scanner

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mycloc/internal/languages"
	"mycloc/internal/logging"
	"mycloc/internal/model"
)

// writeFixtureFile 是测试辅助函数，用于在临时目录快速落地测试文件。
func writeFixtureFile(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func languageStats(t *testing.T, result model.ScanResult, language string) model.LanguageStats {
	t.Helper()

	stats, ok := result.Stats.Get(language)
	require.True(t, ok, "missing language %s", language)
	return stats
}

// TestScanSingleFile 验证 scan 支持“直接传单文件路径”。
func TestScanSingleFile(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "single.py")

	writeFixtureFile(t, filePath, strings.Join([]string{
		`"""module doc"""`,
		"",
		"# top comment",
		"print('hi')",
	}, "\n"))

	service := NewService(languages.NewRegistry(), Options{})
	result, err := service.ScanPath(filePath)
	require.NoError(t, err)

	assert.True(t, result.SingleFile)
	require.Len(t, result.Files, 1)
	assert.Equal(t, model.FileResult{
		Path:     "single.py",
		Language: "Python",
		Counts:   model.Counts{Blank: 1, Comment: 2, Code: 1},
	}, result.Files[0])
	assert.Equal(t, int64(1), result.Stats.Total().Files)
}

// TestScanDirectoryAggregation 验证目录扫描后的语言汇总与 SUM 行。
func TestScanDirectoryAggregation(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "app.py"), "a = 1\nb = 2\nprint(a + b)\n")
	writeFixtureFile(t, filepath.Join(tempDir, "nested", "Empty.java"), "\n  \n")

	service := NewService(languages.NewRegistry(), Options{})
	result, err := service.ScanPath(tempDir)
	require.NoError(t, err)

	assert.False(t, result.SingleFile)
	assert.Equal(t, model.LanguageStats{Language: "Python", Files: 1, Counts: model.Counts{Code: 3}},
		languageStats(t, result, "Python"))
	assert.Equal(t, model.LanguageStats{Language: "Java", Files: 1, Counts: model.Counts{Blank: 2}},
		languageStats(t, result, "Java"))

	total := result.Stats.Total()
	assert.Equal(t, int64(2), total.Files)
	assert.Equal(t, model.Counts{Blank: 2, Code: 3}, total.Counts)

	rows := result.Stats.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Python", rows[0].Language)
	assert.Equal(t, "Java", rows[1].Language)
}

// TestScanDirectoryVisitsEveryFileOnce 验证未识别的文件归入 Other，且每个文件只计一次。
func TestScanDirectoryVisitsEveryFileOnce(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "main.py"), "x = 1")
	writeFixtureFile(t, filepath.Join(tempDir, "web", "Main.java"), "class Main {}")
	writeFixtureFile(t, filepath.Join(tempDir, "README.txt"), "not a source file\n\n# still code")
	writeFixtureFile(t, filepath.Join(tempDir, "deep", "er", "notes.md"), "line")

	service := NewService(languages.NewRegistry(), Options{})
	result, err := service.ScanPath(tempDir)
	require.NoError(t, err)

	paths := make([]string, 0, len(result.Files))
	for _, item := range result.Files {
		paths = append(paths, item.Path)
	}
	assert.Equal(t, []string{"README.txt", "deep/er/notes.md", "main.py", "web/Main.java"}, paths)

	other := languageStats(t, result, "Other")
	assert.Equal(t, int64(2), other.Files)
	assert.Equal(t, model.Counts{Blank: 1, Code: 3}, other.Counts)

	rows := result.Stats.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "Other", rows[len(rows)-1].Language)
}

// TestScanMissingPath 验证根路径不存在时整体失败且不产生部分结果。
func TestScanMissingPath(t *testing.T) {
	service := NewService(languages.NewRegistry(), Options{})

	result, err := service.ScanPath(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPathNotFound))
	assert.Nil(t, result.Stats)
	assert.Empty(t, result.Files)

	_, err = service.ScanPath("   ")
	assert.ErrorIs(t, err, ErrPathNotFound)
}

// TestScanSkipsInvalidEncoding 验证非 UTF-8 文件只被跳过并记录，扫描继续。
func TestScanSkipsInvalidEncoding(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "good.py"), "x = 1\n")
	writeFixtureFile(t, filepath.Join(tempDir, "bad.py"), "x = '\xff'\n")

	var logs bytes.Buffer
	service := NewService(languages.NewRegistry(), Options{Logger: logging.New(&logs, logging.ParseLevel("info"))})
	result, err := service.ScanPath(tempDir)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "good.py", result.Files[0].Path)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "bad.py", result.Errors[0].Path)
	assert.Equal(t, "not a valid UTF-8 encoding", result.Errors[0].Kind)
	assert.Equal(t, "bad.py: content is not valid UTF-8: invalid byte at offset 5", result.Errors[0].Error)
	assert.Equal(t, int64(1), languageStats(t, result, "Python").Files)

	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), "path=bad.py")
}

// TestScanSkipsUnreadableFile 验证无权限文件被跳过。root 用户不受权限限制，跳过该用例。
func TestScanSkipsUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	tempDir := t.TempDir()
	locked := filepath.Join(tempDir, "locked.java")
	writeFixtureFile(t, locked, "class Locked {}")
	writeFixtureFile(t, filepath.Join(tempDir, "Open.java"), "class Open {}")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o644) })

	service := NewService(languages.NewRegistry(), Options{})
	result, err := service.ScanPath(tempDir)
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "locked.java", result.Errors[0].Path)
	assert.Equal(t, "no read permission", result.Errors[0].Kind)
	assert.Equal(t, int64(1), languageStats(t, result, "Java").Files)
}

// TestProcessMissingFileIsSkipped 验证读取时已消失的文件记录为不可读并写入日志。
func TestProcessMissingFileIsSkipped(t *testing.T) {
	var logs bytes.Buffer
	service := NewService(languages.NewRegistry(), Options{Logger: logging.New(&logs, logging.ParseLevel("info"))})

	item := service.processFile(scanTask{
		absolutePath: filepath.Join(t.TempDir(), "gone.py"),
		displayPath:  "gone.py",
	})
	require.Nil(t, item.fileResult)
	require.NotNil(t, item.fileError)
	assert.ErrorIs(t, item.fileError, ErrFileUnreadable)
	assert.Equal(t, "not exist", item.fileError.reason())

	service.logFileError(item.fileError)
	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), "path=gone.py")
	assert.Contains(t, logs.String(), `kind="not exist"`)
}

// TestScanSymlinkedRootDirectory 验证根路径为指向目录的符号链接时仍会遍历其中文件。
func TestScanSymlinkedRootDirectory(t *testing.T) {
	tempDir := t.TempDir()
	realDir := filepath.Join(tempDir, "real")
	writeFixtureFile(t, filepath.Join(realDir, "a.py"), "x = 1\n")

	link := filepath.Join(tempDir, "link")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}

	for _, workers := range []int{1, 4} {
		result, err := NewService(languages.NewRegistry(), Options{Workers: workers}).ScanPath(link)
		require.NoError(t, err)

		assert.False(t, result.SingleFile)
		require.Len(t, result.Files, 1, "workers=%d", workers)
		assert.Equal(t, "a.py", result.Files[0].Path)
		assert.Equal(t, int64(1), result.Stats.Total().Files)
	}
}

// TestScanIsIdempotent 验证两次扫描互不累计。
func TestScanIsIdempotent(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "a.py"), "# c\nx = 1\n")
	writeFixtureFile(t, filepath.Join(tempDir, "B.java"), "/* c */\nint y;\n")

	service := NewService(languages.NewRegistry(), Options{})
	first, err := service.ScanPath(tempDir)
	require.NoError(t, err)
	second, err := service.ScanPath(tempDir)
	require.NoError(t, err)

	assert.Equal(t, first.Stats.Rows(), second.Stats.Rows())
	assert.Equal(t, first.Stats.Total(), second.Stats.Total())
	assert.Equal(t, int64(2), second.Stats.Total().Files)
}

// TestScanConcurrentMatchesSequential 验证并发扫描与顺序扫描结果一致。
func TestScanConcurrentMatchesSequential(t *testing.T) {
	tempDir := t.TempDir()
	for i, name := range []string{"a", "b", "c", "d", "e", "f"} {
		writeFixtureFile(t, filepath.Join(tempDir, name, name+".py"), strings.Repeat("x = 1\n# c\n\n", i+1))
		writeFixtureFile(t, filepath.Join(tempDir, name, strings.ToUpper(name)+".java"), "/*\n doc\n*/\nclass X {}\n")
		writeFixtureFile(t, filepath.Join(tempDir, name, "notes.txt"), "plain\n")
	}

	registry := languages.NewRegistry()
	sequential, err := NewService(registry, Options{Workers: 1}).ScanPath(tempDir)
	require.NoError(t, err)
	concurrent, err := NewService(registry, Options{Workers: 4}).ScanPath(tempDir)
	require.NoError(t, err)

	assert.Equal(t, sequential.Files, concurrent.Files)
	assert.Equal(t, sequential.Stats.Rows(), concurrent.Stats.Rows())
	assert.Equal(t, int64(18), concurrent.Stats.Total().Files)
}

// TestScanSkipVendored 验证开启 SkipVendored 后跳过第三方目录。
func TestScanSkipVendored(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "app.py"), "x = 1\n")
	writeFixtureFile(t, filepath.Join(tempDir, "vendor", "lib.py"), "y = 2\n")
	writeFixtureFile(t, filepath.Join(tempDir, "node_modules", "pkg", "index.java"), "class I {}\n")

	registry := languages.NewRegistry()

	all, err := NewService(registry, Options{}).ScanPath(tempDir)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Stats.Total().Files)

	filtered, err := NewService(registry, Options{SkipVendored: true}).ScanPath(tempDir)
	require.NoError(t, err)
	require.Len(t, filtered.Files, 1)
	assert.Equal(t, "app.py", filtered.Files[0].Path)
}

func TestFileErrorMessage(t *testing.T) {
	err := &FileError{Path: "x.py", Kind: ErrFileUnreadable, Err: os.ErrNotExist}
	assert.Equal(t, "x.py: file unreadable: file does not exist", err.Error())
	assert.ErrorIs(t, err, ErrFileUnreadable)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "not exist", err.reason())

	encodingErr := &FileError{Path: "y.py", Kind: languages.ErrEncodingInvalid}
	assert.Equal(t, "y.py: content is not valid UTF-8", encodingErr.Error())
	assert.ErrorIs(t, encodingErr, languages.ErrEncodingInvalid)
}
