package planner

import (
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/alexanderramin/aionboard/internal/domain"
)

const DefaultCacheSize = 256

// CachedGenerator memoizes plans by normalized input. Generation is
// deterministic, so a cached plan is identical to a fresh one.
type CachedGenerator struct {
	next   PlanGenerator
	cache  *lru.Cache[string, domain.Plan]
	onLook func(hit bool)
}

// CacheOption configures a CachedGenerator.
type CacheOption func(*CachedGenerator)

// WithLookupHook registers a callback invoked on every cache lookup.
func WithLookupHook(fn func(hit bool)) CacheOption {
	return func(c *CachedGenerator) { c.onLook = fn }
}

// NewCachedGenerator wraps next with an LRU of the given size. A
// non-positive size falls back to DefaultCacheSize.
func NewCachedGenerator(next PlanGenerator, size int, opts ...CacheOption) (*CachedGenerator, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, domain.Plan](size)
	if err != nil {
		return nil, fmt.Errorf("creating plan cache: %w", err)
	}
	c := &CachedGenerator{next: next, cache: cache}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Generate returns a clone of the cached plan, generating it on a miss.
func (c *CachedGenerator) Generate(in Input) domain.Plan {
	key := cacheKey(in)
	if plan, ok := c.cache.Get(key); ok {
		c.observe(true)
		return plan.Clone()
	}
	c.observe(false)
	plan := c.next.Generate(in)
	c.cache.Add(key, plan.Clone())
	return plan
}

// Len returns the number of cached plans.
func (c *CachedGenerator) Len() int {
	return c.cache.Len()
}

// Purge drops every cached plan.
func (c *CachedGenerator) Purge() {
	c.cache.Purge()
}

func (c *CachedGenerator) observe(hit bool) {
	if c.onLook != nil {
		c.onLook(hit)
	}
}

type cacheKeyFields struct {
	Persona     domain.Persona `json:"p"`
	WorkType    string         `json:"w"`
	Frequency   string         `json:"f"`
	TimeWasters []string       `json:"t"`
}

// cacheKey ignores Goal and tag order, neither of which changes the plan.
// Time wasters are free text, so the fields are JSON-encoded rather than
// joined with a separator that could appear inside them.
func cacheKey(in Input) string {
	key, _ := json.Marshal(cacheKeyFields{
		Persona:     in.Persona,
		WorkType:    in.WorkType,
		Frequency:   in.Frequency,
		TimeWasters: normalizeTags(in.TimeWasters),
	})
	return string(key)
}
