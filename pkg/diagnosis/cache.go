package diagnosis

import (
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/types"
)

// resultCache memoizes reports by device and complete input set. A nil
// *resultCache is a disabled cache.
type resultCache struct {
	lru *lru.Cache[string, Report]
}

func newResultCache(size int) (*resultCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[string, Report](size)
	if err != nil {
		return nil, err
	}
	return &resultCache{lru: c}, nil
}

func (c *resultCache) get(key string) (Report, bool) {
	if c == nil {
		return Report{}, false
	}
	r, ok := c.lru.Get(key)
	if !ok {
		return Report{}, false
	}
	return r.clone(), true
}

func (c *resultCache) add(key string, r Report) {
	if c == nil {
		return
	}
	c.lru.Add(key, r.clone())
}

func (c *resultCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// cacheKey is "device|name=value|..." with inputs sorted by name.
func cacheKey(d types.Device, inputs map[string]float64) string {
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(string(d))
	for _, name := range names {
		b.WriteByte('|')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(inputs[name], 'g', -1, 64))
	}
	return b.String()
}
