package languages

import (
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// resolveCacheSize 是基础文件名解析缓存的容量。
const resolveCacheSize = 4096

// LanguageDescriptor 用于对外展示语言及后缀信息。
type LanguageDescriptor struct {
	Name        string
	Extensions  []string
	LineComment string
	// BlockComments 是各块注释的起始定界符，按匹配优先级排列。
	BlockComments []string
}

// Registry 管理语言注册顺序与文件名解析。
//
// 解析规则为“按注册顺序第一个命中”，都不命中时返回兜底语言。
// 注册只应发生在启动阶段；之后 Resolve 可被并发调用。
type Registry struct {
	profiles []*Profile
	fallback *Profile
	cache    *lru.Cache[string, *Profile]
}

// NewRegistry 创建并注册所有内置语言。
func NewRegistry() *Registry {
	return NewRegistryWith(OtherProfile(), PythonProfile(), JavaProfile())
}

// NewRegistryWith 使用给定兜底语言和有序语言列表创建注册中心。
func NewRegistryWith(fallback *Profile, profiles ...*Profile) *Registry {
	cache, err := lru.New[string, *Profile](resolveCacheSize)
	if err != nil {
		panic(err)
	}

	registry := &Registry{
		fallback: fallback,
		cache:    cache,
	}
	for _, profile := range profiles {
		registry.Register(profile)
	}
	return registry
}

// Register 在兜底语言之前追加一个语言。
// 更具体的文件名规则应当先注册。
func (r *Registry) Register(profile *Profile) {
	r.profiles = append(r.profiles, profile)
	r.cache.Purge()
}

// Resolve 根据基础文件名（不含目录）查找语言。
func (r *Registry) Resolve(filename string) *Profile {
	base := filepath.Base(filename)
	if profile, ok := r.cache.Get(base); ok {
		return profile
	}

	profile := r.fallback
	for _, candidate := range r.profiles {
		if candidate.MatchesFile(base) {
			profile = candidate
			break
		}
	}

	r.cache.Add(base, profile)
	return profile
}

// Fallback 返回兜底语言。
func (r *Registry) Fallback() *Profile {
	return r.fallback
}

// Names 返回全部语言名，注册顺序，兜底语言在最后。
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles)+1)
	for _, profile := range r.profiles {
		names = append(names, profile.Name)
	}
	return append(names, r.fallback.Name)
}

// Languages 返回已注册语言清单，顺序同 Names。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, 0, len(r.profiles)+1)
	for _, profile := range append(append([]*Profile(nil), r.profiles...), r.fallback) {
		blocks := make([]string, 0, len(profile.Blocks))
		for _, kind := range profile.Blocks {
			blocks = append(blocks, kind.Delimiter)
		}
		result = append(result, LanguageDescriptor{
			Name:          profile.Name,
			Extensions:    append([]string(nil), profile.Extensions...),
			LineComment:   profile.LineMarker,
			BlockComments: blocks,
		})
	}
	return result
}
