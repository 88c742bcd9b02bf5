// Package scanner 提供路径遍历与结果累计能力。
// 该层负责目录遍历、文件读取、错误隔离和结果聚合，不负责行分类细节。
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-enry/go-enry/v2"

	"mycloc/internal/languages"
	"mycloc/internal/logging"
	"mycloc/internal/model"
)

var (
	// ErrPathNotFound 表示扫描根路径不存在，整次扫描失败。
	ErrPathNotFound = errors.New("path not found")
	// ErrFileUnreadable 表示单个文件或目录无法读取，只跳过该项。
	ErrFileUnreadable = errors.New("file unreadable")
)

// FileError 是单文件失败，Kind 为 ErrFileUnreadable 或 languages.ErrEncodingInvalid。
type FileError struct {
	Path string
	Kind error
	Err  error
}

func (e *FileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	if errors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *FileError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// reason 给出面向用户的简短原因。
func (e *FileError) reason() string {
	switch {
	case errors.Is(e.Kind, languages.ErrEncodingInvalid):
		return "not a valid UTF-8 encoding"
	case errors.Is(e.Err, fs.ErrPermission):
		return "no read permission"
	case errors.Is(e.Err, fs.ErrNotExist):
		return "not exist"
	default:
		return "i/o error"
	}
}

// Options 控制扫描行为。
type Options struct {
	// Workers 为 1 时顺序扫描；大于 1 时使用 worker 池并发分类。
	Workers int
	// SkipVendored 为 true 时跳过 go-enry 识别为第三方依赖的目录与文件。
	SkipVendored bool
	Logger       *slog.Logger
}

// Service 是扫描服务对象。
type Service struct {
	registry *languages.Registry
	options  Options
	logger   *slog.Logger
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
}

// workerResult 表示单个文件的处理产物，二者必有其一。
type workerResult struct {
	fileResult *model.FileResult
	fileError  *FileError
}

// NewService 创建扫描服务。
func NewService(registry *languages.Registry, options Options) *Service {
	if options.Workers <= 0 {
		options.Workers = 1
	}
	logger := options.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		registry: registry,
		options:  options,
		logger:   logger,
	}
}

// ScanPath 扫描目录或单文件。
// 只有根路径不存在时返回错误；单文件失败被记录到结果中并跳过。
// 每次调用都使用全新的累计器，重复扫描不会互相影响。
func (s *Service) ScanPath(targetPath string) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return result, fmt.Errorf("%w: empty path", ErrPathNotFound)
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("%w: %s", ErrPathNotFound, trimmedPath)
		}
		return result, fmt.Errorf("stat path: %w", err)
	}

	// 根路径本身是符号链接时先解析，根以下的符号链接仍不跟随。
	walkRoot := absoluteTarget
	if info.IsDir() {
		resolved, resolveErr := filepath.EvalSymlinks(absoluteTarget)
		if resolveErr != nil {
			return result, fmt.Errorf("resolve symlinks: %w", resolveErr)
		}
		walkRoot = resolved
	}

	result.ScannedPath = absoluteTarget
	result.SingleFile = !info.IsDir()
	result.Files = make([]model.FileResult, 0)
	result.Errors = make([]model.ScanError, 0)
	result.Stats = model.NewAggregateStats(s.registry.Names())

	collect := func(item workerResult) {
		if item.fileResult != nil {
			result.Files = append(result.Files, *item.fileResult)
			result.Stats.Add(*item.fileResult)
		}
		if item.fileError != nil {
			s.logFileError(item.fileError)
			result.Errors = append(result.Errors, model.ScanError{
				Path:  item.fileError.Path,
				Kind:  item.fileError.reason(),
				Error: item.fileError.Error(),
			})
		}
	}

	if result.SingleFile {
		collect(s.processFile(scanTask{
			absolutePath: absoluteTarget,
			displayPath:  filepath.Base(absoluteTarget),
		}))
	} else if s.options.Workers == 1 {
		s.walkDirectory(walkRoot, func(task scanTask) {
			collect(s.processFile(task))
		}, collect)
	} else {
		s.scanConcurrently(walkRoot, collect)
	}

	sortResult(&result)
	return result, nil
}

// scanConcurrently 由 worker 池并发分类，唯一的收集者负责写入累计器。
func (s *Service) scanConcurrently(root string, collect func(workerResult)) {
	tasks := make(chan scanTask, s.options.Workers*4)
	results := make(chan workerResult, s.options.Workers*4)

	var workerGroup sync.WaitGroup
	for i := 0; i < s.options.Workers; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			for task := range tasks {
				results <- s.processFile(task)
			}
		}()
	}

	go func() {
		defer close(tasks)
		s.walkDirectory(root, func(task scanTask) {
			tasks <- task
		}, func(item workerResult) {
			results <- item
		})
	}()

	go func() {
		workerGroup.Wait()
		close(results)
	}()

	for item := range results {
		collect(item)
	}
}

// walkDirectory 遍历目录，把每个普通文件交给 visit；
// 无法读取的目录交给 fail 记录后跳过，遍历继续。
func (s *Service) walkDirectory(root string, visit func(scanTask), fail func(workerResult)) {
	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		relativePath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relativePath = path
		}
		displayPath := filepath.ToSlash(relativePath)

		if walkErr != nil {
			fail(workerResult{fileError: &FileError{Path: displayPath, Kind: ErrFileUnreadable, Err: walkErr}})
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if path != root && s.options.SkipVendored && enry.IsVendor(displayPath+"/") {
				s.logger.Debug("skip vendored directory", slog.String("path", displayPath))
				return fs.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		if s.options.SkipVendored && enry.IsVendor(displayPath) {
			s.logger.Debug("skip vendored file", slog.String("path", displayPath))
			return nil
		}

		visit(scanTask{absolutePath: path, displayPath: displayPath})
		return nil
	})
}

// processFile 读取文件、解析语言并分类。
func (s *Service) processFile(task scanTask) workerResult {
	file, openErr := os.Open(task.absolutePath)
	if openErr != nil {
		return workerResult{fileError: &FileError{Path: task.displayPath, Kind: ErrFileUnreadable, Err: openErr}}
	}

	profile := s.registry.Resolve(task.displayPath)
	fileResult, classifyErr := languages.ClassifyReader(task.displayPath, file, profile)
	closeErr := file.Close()

	if classifyErr != nil {
		if errors.Is(classifyErr, languages.ErrEncodingInvalid) {
			return workerResult{fileError: &FileError{Path: task.displayPath, Kind: languages.ErrEncodingInvalid, Err: classifyErr}}
		}
		return workerResult{fileError: &FileError{Path: task.displayPath, Kind: ErrFileUnreadable, Err: classifyErr}}
	}

	if closeErr != nil {
		return workerResult{fileError: &FileError{Path: task.displayPath, Kind: ErrFileUnreadable, Err: closeErr}}
	}

	s.logger.Debug("classified file",
		slog.String("path", task.displayPath),
		slog.String("language", fileResult.Language),
		slog.Int64("lines", fileResult.Sum()),
	)
	return workerResult{fileResult: &fileResult}
}

// logFileError 在遍历边界统一记录单文件失败。
func (s *Service) logFileError(fileErr *FileError) {
	attrs := []any{
		slog.String("path", fileErr.Path),
		slog.String("kind", fileErr.reason()),
	}
	if fileErr.Err != nil {
		attrs = append(attrs, slog.String("error", fileErr.Err.Error()))
	}
	s.logger.Error("skip file", attrs...)
}

// sortResult 让明细输出与遍历/并发顺序无关。
func sortResult(result *model.ScanResult) {
	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})
}
