// Package model 定义 mycloc 的核心数据模型。
// 这些结构会被分类器、扫描器、输出层和命令层共同使用。
package model

// Counts 表示一组行级统计值。
//
// 注意：
// - 每一行只会落入 Blank/Comment/Code 中的一个分类
// - 因此 Sum() 恒等于文件总行数
type Counts struct {
	Blank   int64 `json:"blank"`
	Comment int64 `json:"comment"`
	Code    int64 `json:"code"`
}

// Add 将另一个统计结果叠加到当前对象。
func (c *Counts) Add(other Counts) {
	c.Blank += other.Blank
	c.Comment += other.Comment
	c.Code += other.Code
}

// Sum 返回三类行数之和。
func (c Counts) Sum() int64 {
	return c.Blank + c.Comment + c.Code
}

// FileResult 表示单文件分类结果。
// 结果按值传递，生成后不再修改。
type FileResult struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Counts
}

// ScanError 记录单文件扫描失败信息。
// 设计为“错误不阻断全量扫描”，便于大仓库分析时容错。
type ScanError struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// ScanResult 是 scan 命令的完整输出模型。
// 包含文件级明细、语言级汇总和错误列表。
type ScanResult struct {
	ScannedPath string          `json:"scanned_path"`
	SingleFile  bool            `json:"single_file"`
	Files       []FileResult    `json:"files"`
	Stats       *AggregateStats `json:"languages"`
	Errors      []ScanError     `json:"errors"`
}
