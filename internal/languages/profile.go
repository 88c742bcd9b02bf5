package languages

import "regexp"

// BlockKind 描述一种块注释定界符。
// 同一语言可以有多种互斥的块注释（例如 Python 的 """ 与 '''），
// 每一种都有自己的起止匹配规则，并在状态机中独立跟踪。
type BlockKind struct {
	// Delimiter 仅用于展示，例如 `"""` 或 `/*`。
	Delimiter string
	// Inline 匹配“起止定界符位于同一行”的整行块注释。
	Inline *regexp.Regexp
	// Start 匹配打开块注释的行。
	Start *regexp.Regexp
	// End 匹配关闭块注释的行。
	End *regexp.Regexp
}

// Profile 是单个语言的注释/空行语法描述，只包含数据，不包含逻辑。
// 构造完成后只读，可被多个 goroutine 共享。
type Profile struct {
	Name string
	// Extensions 仅用于 language 子命令展示。
	Extensions []string
	// FileName 匹配文件基础名；为 nil 表示兜底语言，只能通过排除法命中。
	FileName *regexp.Regexp
	Blank    *regexp.Regexp
	// LineComment 为 nil 表示该语言不识别单行注释。
	LineComment *regexp.Regexp
	// LineMarker 是单行注释标记，仅用于展示。
	LineMarker string
	Blocks     []BlockKind
}

// IsFallback 判断是否为兜底语言。
func (p *Profile) IsFallback() bool {
	return p.FileName == nil
}

// MatchesFile 判断基础文件名是否属于该语言。
func (p *Profile) MatchesFile(baseName string) bool {
	return p.FileName != nil && p.FileName.MatchString(baseName)
}

var blankPattern = regexp.MustCompile(`^\s*$`)

// PythonProfile 返回内置 Python 语法。
func PythonProfile() *Profile {
	return &Profile{
		Name:        "Python",
		Extensions:  []string{".py", ".pyw"},
		FileName:    regexp.MustCompile(`^.*\.(py|pyw)$`),
		Blank:       blankPattern,
		LineComment: regexp.MustCompile(`^\s*#`),
		LineMarker:  "#",
		Blocks: []BlockKind{
			{
				Delimiter: `"""`,
				Inline:    regexp.MustCompile(`^\s*""".*?"""`),
				Start:     regexp.MustCompile(`^\s*"""`),
				End:       regexp.MustCompile(`"""\s*$`),
			},
			{
				Delimiter: `'''`,
				Inline:    regexp.MustCompile(`^\s*'''.*?'''`),
				Start:     regexp.MustCompile(`^\s*'''`),
				End:       regexp.MustCompile(`'''\s*$`),
			},
		},
	}
}

// JavaProfile 返回内置 Java 语法。
func JavaProfile() *Profile {
	return &Profile{
		Name:        "Java",
		Extensions:  []string{".java", ".jav"},
		FileName:    regexp.MustCompile(`^.*\.(java|jav)$`),
		Blank:       blankPattern,
		LineComment: regexp.MustCompile(`^\s*//`),
		LineMarker:  "//",
		Blocks: []BlockKind{
			{
				Delimiter: "/*",
				Inline:    regexp.MustCompile(`^\s*/\*.*\*/\s*$`),
				Start:     regexp.MustCompile(`^\s*/\*`),
				End:       regexp.MustCompile(`\*/\s*$`),
			},
		},
	}
}

// OtherProfile 返回兜底语言：只区分空行与代码行。
func OtherProfile() *Profile {
	return &Profile{
		Name:  "Other",
		Blank: blankPattern,
	}
}
