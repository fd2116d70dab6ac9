package local

import "sync"

// embeddingCache keeps hypothesis embeddings per model. Hypotheses depend only
// on the taxonomy and template, so entries never expire.
type embeddingCache struct {
	entries map[string][]float64
	mu      sync.RWMutex
}

func newEmbeddingCache() *embeddingCache {
	return &embeddingCache{entries: make(map[string][]float64)}
}

func cacheKey(model, hypothesis string) string {
	return model + "\x00" + hypothesis
}

func (c *embeddingCache) get(model, hypothesis string) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.entries[cacheKey(model, hypothesis)]
	return vec, ok
}

func (c *embeddingCache) set(model, hypothesis string, vec []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(model, hypothesis)] = vec
}

func (c *embeddingCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
