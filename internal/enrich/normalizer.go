// Package enrich implements the per-transaction enrichment stages: text
// normalization, payment-rail noise attenuation, payment-provider
// identification, and city/state extraction. Stages are pure functions over
// description text except for the normalizer's memoization cache.
package enrich

import (
	"regexp"
	"strings"
	"sync"
)

// NormalizerConfig controls description normalization behavior
type NormalizerConfig struct {
	// KeepTrailingDigits retains the last four digits of a digit run that
	// terminates the description (card/account suffixes); all other digit
	// runs are removed regardless
	KeepTrailingDigits bool `json:"keep_trailing_digits"`
}

// DefaultNormalizerConfig returns the default normalization policy
func DefaultNormalizerConfig() *NormalizerConfig {
	return &NormalizerConfig{
		KeepTrailingDigits: true,
	}
}

// DescriptionNormalizer is the capability interface for swappable
// normalization strategies (e.g. phonetic matching).
type DescriptionNormalizer interface {
	Normalize(input string) string
}

// NormalizerCache memoizes normalization results for the lifetime of one run.
// It is safe for concurrent use; partition one cache per worker to avoid lock
// contention in parallel enrichment.
type NormalizerCache struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewNormalizerCache creates an empty cache
func NewNormalizerCache() *NormalizerCache {
	return &NormalizerCache{
		entries: make(map[string]string),
	}
}

func (c *NormalizerCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *NormalizerCache) put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Len returns the number of memoized entries
func (c *NormalizerCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

var (
	punctuationReplacer = strings.NewReplacer(
		"'", "",
		"*", " ",
		"-", " ",
		".", " ",
		",", " ",
		"#", " ",
	)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// TextNormalizer canonicalizes raw merchant descriptions: uppercase,
// punctuation replaced, digit runs dropped, whitespace collapsed. Normalize
// is idempotent: Normalize(Normalize(x)) == Normalize(x).
type TextNormalizer struct {
	config *NormalizerConfig
	cache  *NormalizerCache
}

// NewTextNormalizer creates a normalizer with an injected cache; pass a fresh
// cache per run (or per worker when parallelized)
func NewTextNormalizer(config *NormalizerConfig, cache *NormalizerCache) *TextNormalizer {
	if config == nil {
		config = DefaultNormalizerConfig()
	}
	if cache == nil {
		cache = NewNormalizerCache()
	}
	return &TextNormalizer{
		config: config,
		cache:  cache,
	}
}

// Normalize returns the canonical form of a raw description
func (n *TextNormalizer) Normalize(input string) string {
	if cached, ok := n.cache.get(input); ok {
		return cached
	}

	normalized := strings.ToUpper(input)
	normalized = punctuationReplacer.Replace(normalized)
	normalized = collapseWhitespace(normalized)
	normalized = stripDigitRuns(normalized, n.config.KeepTrailingDigits)
	normalized = collapseWhitespace(normalized)

	n.cache.put(input, normalized)
	return normalized
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// stripDigitRuns removes embedded numeric IDs. When keepTrailing is set, a
// digit run that ends the string keeps its last four digits so card/account
// suffixes survive.
func stripDigitRuns(s string, keepTrailing bool) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if !isDigit(s[i]) {
			b.WriteByte(s[i])
			i++
			continue
		}

		runEnd := i
		for runEnd < len(s) && isDigit(s[runEnd]) {
			runEnd++
		}

		if keepTrailing && runEnd == len(s) {
			keepFrom := runEnd - 4
			if keepFrom < i {
				keepFrom = i
			}
			b.WriteString(s[keepFrom:runEnd])
		}

		i = runEnd
	}

	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
