package mdblock

import (
	"container/list"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultSectionCacheSize is the capacity used when NewSectionCache gets a
// non-positive size.
const DefaultSectionCacheSize = 512

// SectionCache is an LRU cache of unresolved block trees keyed by the hash of
// a section's bytes. Trees are copied on the way in and out, so callers may
// resolve or edit what they get.
//
// Parse results depend on parser options; share a cache only between parsers
// configured alike.
type SectionCache struct {
	mu      sync.RWMutex
	maxSize int
	entries map[uint64]*list.Element
	lruList *list.List
}

type sectionEntry struct {
	key   uint64
	nodes []*Node
}

// NewSectionCache creates a cache holding at most maxSize sections.
func NewSectionCache(maxSize int) *SectionCache {
	if maxSize <= 0 {
		maxSize = DefaultSectionCacheSize
	}
	return &SectionCache{
		maxSize: maxSize,
		entries: make(map[uint64]*list.Element),
		lruList: list.New(),
	}
}

func sectionKey(section []byte) uint64 {
	return xxhash.Sum64(section)
}

// Get returns a copy of the nodes stored under key. Accessing an entry
// moves it to the front of the LRU list.
func (c *SectionCache) Get(key uint64) ([]*Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.lruList.MoveToFront(elem)
	return cloneNodes(elem.Value.(*sectionEntry).nodes), true
}

// Put stores a copy of nodes under key and reports whether the least
// recently used entry was evicted to make room.
func (c *SectionCache) Put(key uint64, nodes []*Node) bool {
	stored := cloneNodes(nodes)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.lruList.MoveToFront(elem)
		elem.Value.(*sectionEntry).nodes = stored
		return false
	}
	evicted := false
	if c.lruList.Len() >= c.maxSize {
		evicted = c.evictOldest()
	}
	c.entries[key] = c.lruList.PushFront(&sectionEntry{key: key, nodes: stored})
	return evicted
}

// evictOldest removes the least recently used entry. Must be called with
// the lock held.
func (c *SectionCache) evictOldest() bool {
	oldest := c.lruList.Back()
	if oldest == nil {
		return false
	}
	delete(c.entries, oldest.Value.(*sectionEntry).key)
	c.lruList.Remove(oldest)
	return true
}

// Len returns the number of cached sections.
func (c *SectionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *SectionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[uint64]*list.Element)
	c.lruList.Init()
}

func cloneNodes(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
