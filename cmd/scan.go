package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mycloc/internal/config"
	"mycloc/internal/languages"
	"mycloc/internal/logging"
	"mycloc/internal/report"
	"mycloc/internal/scanner"
)

// scanOptions 存放 scan 命令的可配置参数。
type scanOptions struct {
	format       string
	output       string
	workers      int
	skipVendored bool
	logLevel     string
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	mycloc scan .
//	mycloc scan ./project --format json --output result.json
func newScanCmd(registry *languages.Registry, cfg config.Config) *cobra.Command {
	options := scanOptions{
		format:       cfg.Format,
		output:       cfg.Output,
		workers:      cfg.Workers,
		skipVendored: cfg.SkipVendored,
		logLevel:     cfg.LogLevel,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录或文件并输出行数统计",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(strings.TrimSpace(options.format))
			if format != "table" && format != "json" && format != "pretty" {
				return errors.New("unsupported format, allowed values: table, json, pretty")
			}

			if options.workers <= 0 {
				return errors.New("workers must be greater than 0")
			}

			service := scanner.NewService(registry, scanner.Options{
				Workers:      options.workers,
				SkipVendored: options.skipVendored,
				Logger:       logging.New(cmd.ErrOrStderr(), logging.ParseLevel(options.logLevel)),
			})

			result, err := service.ScanPath(args[0])
			if err != nil {
				return err
			}

			if format != "json" {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "\nAnalyzing the Path: %s\n", args[0]); err != nil {
					return err
				}
			}

			switch format {
			case "table":
				switch {
				case result.SingleFile && len(result.Files) == 0:
					// 单文件读取失败时没有可展示的统计，只输出错误。
				case result.SingleFile:
					err = report.PrintSingle(cmd.OutOrStdout(), result.Files[0])
				default:
					err = report.PrintSummary(cmd.OutOrStdout(), result.Stats)
				}
				if err != nil {
					return err
				}
				return report.PrintErrors(cmd.ErrOrStderr(), result.Errors)
			case "pretty":
				if err := report.PrintPretty(cmd.OutOrStdout(), result); err != nil {
					return err
				}
				return report.PrintErrors(cmd.ErrOrStderr(), result.Errors)
			case "json":
				if err := report.PrintJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}

				outputPath := strings.TrimSpace(options.output)
				if outputPath == "" {
					outputPath = "output.json"
				}
				if err := report.WriteJSONFile(outputPath, result); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "\nJSON exported to %s\n", outputPath)
				return nil
			default:
				return errors.New("unsupported format")
			}
		},
	}

	scanCmd.Flags().StringVar(&options.format, "format", options.format, "输出格式: table、pretty 或 json")
	scanCmd.Flags().StringVar(&options.output, "output", options.output, "json 导出文件路径，默认 output.json")
	scanCmd.Flags().IntVar(&options.workers, "workers", options.workers, "并发 worker 数量，1 为顺序扫描")
	scanCmd.Flags().BoolVar(&options.skipVendored, "skip-vendored", options.skipVendored, "跳过 vendor、node_modules 等第三方目录")
	scanCmd.Flags().StringVar(&options.logLevel, "log-level", options.logLevel, "日志级别: debug、info、warn、error")

	return scanCmd
}
