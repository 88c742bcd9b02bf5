// Package cmd 提供 mycloc 的命令行入口与子命令编排。
package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mycloc/internal/config"
	"mycloc/internal/languages"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	cfg := config.Load()
	if cfg.NoColor {
		color.NoColor = true
	}

	registry := languages.NewRegistry()
	rootCmd := newRootCmd(version, registry, cfg)
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, registry *languages.Registry, cfg config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mycloc",
		Short: "统计空行、注释行与代码行",
		Long: "mycloc 按语言统计文件或目录中的空行（blank）、注释行（comment）与代码行（code），\n" +
			"区分单行注释与块注释，输出固定宽度的汇总表。",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newVersionCmd(version, registry))
	rootCmd.AddCommand(newLanguageCmd(registry))
	rootCmd.AddCommand(newScanCmd(registry, cfg))

	return rootCmd
}
