// Package logging 构造 mycloc 使用的结构化日志。
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel 解析 debug/info/warn/error，无法识别时返回 info。
func ParseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// New 创建文本格式的 slog.Logger。
// 时间戳被省略，便于终端阅读与测试断言。
func New(writer io.Writer, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) == 0 && attr.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return attr
		},
	}
	return slog.New(slog.NewTextHandler(writer, options))
}

// Discard 返回丢弃全部输出的 logger，用于测试与未配置日志的调用方。
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
