package languages

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"mycloc/internal/model"
)

// ErrEncodingInvalid 表示文件内容不是合法 UTF-8。
var ErrEncodingInvalid = errors.New("content is not valid UTF-8")

// Category 是单行的分类结果。
type Category int

const (
	Blank Category = iota
	Comment
	Code
)

func (c Category) String() string {
	switch c {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case Code:
		return "code"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// State 是分类器的跨行状态：当前打开的块注释在 Profile.Blocks 中的下标，
// 或 StateNormal。
type State int

// StateNormal 表示不在块注释内。
const StateNormal State = -1

// InBlock 判断是否处于打开的块注释中。
func (s State) InBlock() bool {
	return s != StateNormal
}

// Step 对单行做一次状态转移，返回该行分类与新状态。
//
// 规则按优先级依次判断，命中即返回：
//  1. 空白行（块注释内的空白行也算空白）
//  2. 已在块注释内：算注释，命中当前块的结束规则则回到 StateNormal
//  3. 同一行开闭的块注释
//  4. 打开块注释（按 Blocks 顺序取第一个命中的类型）
//  5. 单行注释
//  6. 代码
func Step(state State, line string, profile *Profile) (Category, State) {
	if profile.Blank.MatchString(line) {
		return Blank, state
	}

	if state.InBlock() {
		if int(state) < len(profile.Blocks) && profile.Blocks[state].End.MatchString(line) {
			return Comment, StateNormal
		}
		return Comment, state
	}

	for _, kind := range profile.Blocks {
		if kind.Inline != nil && kind.Inline.MatchString(line) {
			return Comment, StateNormal
		}
	}

	for idx, kind := range profile.Blocks {
		if kind.Start.MatchString(line) {
			return Comment, State(idx)
		}
	}

	if profile.LineComment != nil && profile.LineComment.MatchString(line) {
		return Comment, StateNormal
	}

	return Code, StateNormal
}

// Classify 按顺序对所有行做状态折叠，生成单文件结果。
// 结尾仍未闭合的块注释不会报错，剩余非空行全部记为注释。
func Classify(path string, lines []string, profile *Profile) model.FileResult {
	result := model.FileResult{Path: path, Language: profile.Name}

	state := StateNormal
	for _, line := range lines {
		var category Category
		category, state = Step(state, line, profile)

		switch category {
		case Blank:
			result.Blank++
		case Comment:
			result.Comment++
		default:
			result.Code++
		}
	}

	return result
}

// ClassifyReader 读取全部内容、校验编码后执行 Classify。
func ClassifyReader(path string, reader io.Reader, profile *Profile) (model.FileResult, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return model.FileResult{}, err
	}
	if offset := invalidUTF8Offset(content); offset >= 0 {
		return model.FileResult{}, fmt.Errorf("%w: invalid byte at offset %d", ErrEncodingInvalid, offset)
	}
	return Classify(path, SplitLines(string(content)), profile), nil
}

// invalidUTF8Offset 返回第一个非法 UTF-8 字节的偏移，内容合法时返回 -1。
func invalidUTF8Offset(content []byte) int {
	for offset := 0; offset < len(content); {
		r, size := utf8.DecodeRune(content[offset:])
		if r == utf8.RuneError && size <= 1 {
			return offset
		}
		offset += size
	}
	return -1
}

// SplitLines 按行切分文本。
// 兼容 \n、\r\n 与单独的 \r；末尾换行不会产生额外空行，空文本返回 0 行。
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSuffix(content, "\n")

	return strings.Split(content, "\n")
}
