package model

import "encoding/json"

// LanguageStats 表示某个语言的累计结果。
type LanguageStats struct {
	Language string `json:"language"`
	Files    int64  `json:"files"`
	Counts
}

// AggregateStats 按语言累计一次扫描的统计值。
//
// 行顺序在创建时由调用方给出（注册顺序，Other 在最后），
// 之后只会追加未预置的语言。计数只增不减。
type AggregateStats struct {
	order  []string
	byName map[string]*LanguageStats
}

// NewAggregateStats 创建按给定语言顺序预置行的累计器。
func NewAggregateStats(languages []string) *AggregateStats {
	stats := &AggregateStats{
		order:  make([]string, 0, len(languages)),
		byName: make(map[string]*LanguageStats, len(languages)),
	}
	for _, name := range languages {
		stats.row(name)
	}
	return stats
}

// row 返回语言对应的行，不存在时追加到末尾。
func (s *AggregateStats) row(language string) *LanguageStats {
	item, ok := s.byName[language]
	if !ok {
		item = &LanguageStats{Language: language}
		s.byName[language] = item
		s.order = append(s.order, language)
	}
	return item
}

// Add 把一个文件结果累加到对应语言：文件数 +1，行数叠加。
func (s *AggregateStats) Add(result FileResult) {
	item := s.row(result.Language)
	item.Files++
	item.Counts.Add(result.Counts)
}

// Get 返回某个语言的累计值。
func (s *AggregateStats) Get(language string) (LanguageStats, bool) {
	item, ok := s.byName[language]
	if !ok {
		return LanguageStats{}, false
	}
	return *item, true
}

// Rows 返回至少统计到一个文件的语言行，保持创建时的顺序。
func (s *AggregateStats) Rows() []LanguageStats {
	rows := make([]LanguageStats, 0, len(s.order))
	for _, name := range s.order {
		item := s.byName[name]
		if item.Files > 0 {
			rows = append(rows, *item)
		}
	}
	return rows
}

// Total 返回所有语言的合计，Language 字段固定为 SUM。
func (s *AggregateStats) Total() LanguageStats {
	total := LanguageStats{Language: "SUM"}
	for _, name := range s.order {
		item := s.byName[name]
		total.Files += item.Files
		total.Counts.Add(item.Counts)
	}
	return total
}

// MarshalJSON 以有序数组形式导出非空语言行。
func (s *AggregateStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Rows())
}
