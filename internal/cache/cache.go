// internal/cache/cache.go
// Package cache keeps the most recent analysis per message for the display
// layer. It replaces the old process-global "last analysis" slot: verdicts
// are keyed by message id, expire after a TTL, and reads are safe from
// concurrent handlers.
package cache

import (
	"errors"
	"sync"
	"time"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
)

var (
	ErrNotFound = errors.New("verdict not found in cache")
	ErrExpired  = errors.New("cached verdict has expired")
)

type entry struct {
	result    models.AnalysisResult
	expiresAt time.Time
}

// VerdictCache is an in-memory TTL cache of analysis results.
type VerdictCache struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]entry
}

// NewVerdictCache creates a cache whose entries expire after ttl.
func NewVerdictCache(ttl time.Duration) *VerdictCache {
	return &VerdictCache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Set stores the verdict for a message id.
func (c *VerdictCache) Set(id string, result models.AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = entry{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Get returns the cached verdict for a message id. Expired entries are
// removed on access.
func (c *VerdictCache) Get(id string) (models.AnalysisResult, error) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok {
		return models.AnalysisResult{}, ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, id)
		c.mu.Unlock()
		return models.AnalysisResult{}, ErrExpired
	}
	return e.result, nil
}

// Delete drops the verdict for a message id, if present.
func (c *VerdictCache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Len reports the number of entries currently held, expired or not.
func (c *VerdictCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
