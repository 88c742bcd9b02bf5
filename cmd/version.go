package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"mycloc/internal/languages"
)

// newVersionCmd 创建 version 子命令，同时列出本构建内置的语言。
// 命令示例：mycloc version
func newVersionCmd(version string, registry *languages.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本号与内置语言",
		Run: func(cmd *cobra.Command, _ []string) {
			names := registry.Names()
			cmd.Printf("mycloc version %s (%d languages: %s)\n", version, len(names), strings.Join(names, ", "))
		},
	}
}
