package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mycloc/internal/languages"
)

// placeholder 用于没有对应注释语法的列。
const placeholder = "-"

// newLanguageCmd 创建 language 子命令。
// 按解析顺序展示已注册语言的后缀与注释语法，兜底语言在最后。
func newLanguageCmd(registry *languages.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示已注册语言的后缀与注释语法",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if _, err := fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS\tLINE COMMENT\tBLOCK COMMENT"); err != nil {
				return err
			}

			for _, item := range registry.Languages() {
				row := []string{
					item.Name,
					orPlaceholder(strings.Join(item.Extensions, ", "), "(fallback)"),
					orPlaceholder(item.LineComment, placeholder),
					orPlaceholder(strings.Join(item.BlockComments, " "), placeholder),
				}
				if _, err := fmt.Fprintln(writer, strings.Join(row, "\t")); err != nil {
					return err
				}
			}
			return writer.Flush()
		},
	}
}

func orPlaceholder(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
