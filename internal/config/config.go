// Package config 读取 mycloc 的运行时默认配置。
// 配置来源依次为 .env 文件与进程环境变量，命令行参数在 cmd 层覆盖这里的值。
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config 是 scan 命令各参数的默认值。
type Config struct {
	Format       string
	Output       string
	Workers      int
	SkipVendored bool
	LogLevel     string
	NoColor      bool
}

// Load 加载 .env（不存在时忽略）并从环境变量构造配置。
func Load() Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv 使用给定的查找函数构造配置，便于测试注入。
func FromEnv(getenv func(string) string) Config {
	return Config{
		Format:       strings.ToLower(firstNonEmpty(strings.TrimSpace(getenv("MYCLOC_FORMAT")), "table")),
		Output:       firstNonEmpty(strings.TrimSpace(getenv("MYCLOC_OUTPUT")), "output.json"),
		Workers:      parsePositiveInt(getenv("MYCLOC_WORKERS"), 1),
		SkipVendored: parseBool(getenv("MYCLOC_SKIP_VENDORED"), false),
		LogLevel:     firstNonEmpty(strings.TrimSpace(getenv("MYCLOC_LOG_LEVEL")), "info"),
		NoColor:      getenv("NO_COLOR") != "",
	}
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseBool(raw string, fallback bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
