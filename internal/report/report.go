// Package report 提供 mycloc 的输出能力。
// 当前实现支持固定宽度表格、go-pretty 边框表格和 JSON 格式（含文件导出）。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mycloc/internal/model"
)

// 固定宽度表格：语言列左对齐 15 字符，数值列右对齐 15 字符，列间一个空格。
const (
	columnWidth = 15
	ruleWidth   = 95
)

var (
	headers = []string{"Language", "files", "blank", "comment", "code", "sum"}
	rule    = strings.Repeat("-", ruleWidth)
)

// tableWriter 记录第一个写入错误，后续写入直接跳过。
type tableWriter struct {
	out io.Writer
	err error
}

func (t *tableWriter) line(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *tableWriter) header() {
	t.line("")
	t.line("%s", rule)
	t.line("%-*s %*s %*s %*s %*s %*s",
		columnWidth, headers[0],
		columnWidth, headers[1],
		columnWidth, headers[2],
		columnWidth, headers[3],
		columnWidth, headers[4],
		columnWidth, headers[5],
	)
	t.line("%s", rule)
}

func (t *tableWriter) row(language string, files int64, counts model.Counts) {
	t.line("%-*s %*d %*d %*d %*d %*d",
		columnWidth, language,
		columnWidth, files,
		columnWidth, counts.Blank,
		columnWidth, counts.Comment,
		columnWidth, counts.Code,
		columnWidth, counts.Sum(),
	)
}

// PrintSingle 输出单文件结果。
func PrintSingle(writer io.Writer, result model.FileResult) error {
	tw := &tableWriter{out: writer}
	tw.header()
	tw.row(result.Language, 1, result.Counts)
	tw.line("%s", rule)
	return tw.err
}

// PrintSummary 输出多文件汇总：每个有文件的语言一行，最后是 SUM 行。
func PrintSummary(writer io.Writer, stats *model.AggregateStats) error {
	tw := &tableWriter{out: writer}
	tw.header()
	for _, item := range stats.Rows() {
		tw.row(item.Language, item.Files, item.Counts)
	}
	total := stats.Total()
	tw.line("%s", rule)
	tw.row(total.Language, total.Files, total.Counts)
	tw.line("%s", rule)
	return tw.err
}

// PrintPretty 使用 go-pretty 输出带边框的汇总表。
func PrintPretty(writer io.Writer, result model.ScanResult) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(result.ScannedPath)

	row := make(table.Row, 0, len(headers))
	for _, item := range headers {
		row = append(row, item)
	}
	tw.AppendHeader(row)

	for _, item := range result.Stats.Rows() {
		tw.AppendRow(table.Row{item.Language, item.Files, item.Blank, item.Comment, item.Code, item.Sum()})
	}
	total := result.Stats.Total()
	tw.AppendFooter(table.Row{total.Language, total.Files, total.Blank, total.Comment, total.Code, total.Sum()})

	configs := make([]table.ColumnConfig, 0, len(headers)-1)
	for number := 2; number <= len(headers); number++ {
		configs = append(configs, table.ColumnConfig{Number: number, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)

	if _, err := io.WriteString(writer, tw.Render()+"\n"); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// PrintErrors 列出被跳过的文件。没有错误时不输出。
func PrintErrors(writer io.Writer, scanErrors []model.ScanError) error {
	if len(scanErrors) == 0 {
		return nil
	}

	tw := &tableWriter{out: writer}
	tw.line("")
	tw.line("%s", color.New(color.FgRed, color.Bold).Sprintf("[ERROR] %d file(s) skipped", len(scanErrors)))
	for _, item := range scanErrors {
		tw.line("  %s (%s): %s", item.Path, item.Kind, item.Error)
	}
	return tw.err
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(append(content, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile 将 JSON 结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(path string, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}
