package utils

import (
	"container/list"
	"regexp"
	"sync"
)

// cached pairs a pattern with its compiled form inside the recency list.
type cached struct {
	pattern string
	re      *regexp.Regexp
}

// LRUCache implements a thread-safe LRU cache for compiled regular expressions
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	elems    map[string]*list.Element
	recency  *list.List
}

/**************************************************************************************************
** NewLRUCache creates a new LRU cache for compiled regular expressions.
**
** @param capacity - Maximum number of cached patterns before evicting LRU
** @return *LRUCache - Initialized LRU cache instance
**************************************************************************************************/
func NewLRUCache(capacity int) *LRUCache {
	return &LRUCache{
		capacity: capacity,
		elems:    make(map[string]*list.Element),
		recency:  list.New(),
	}
}

/**************************************************************************************************
** Get retrieves a compiled regex from the cache and marks it as most recently used.
**
** @param pattern - Regex pattern string key
** @return *regexp.Regexp - Compiled regex if present
** @return bool - True if found in cache
**************************************************************************************************/
func (c *LRUCache) Get(pattern string) (*regexp.Regexp, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.elems[pattern]
	if !ok {
		return nil, false
	}
	c.recency.MoveToFront(elem)
	return elem.Value.(*cached).re, true
}

/**************************************************************************************************
** Put inserts or updates a compiled regex in the cache, evicting the LRU entry if at capacity.
**
** @param pattern - Regex pattern string key
** @param regex - Compiled regex to store
**************************************************************************************************/
func (c *LRUCache) Put(pattern string, regex *regexp.Regexp) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.elems[pattern]; ok {
		elem.Value.(*cached).re = regex
		c.recency.MoveToFront(elem)
		return
	}

	if len(c.elems) >= c.capacity {
		if oldest := c.recency.Back(); oldest != nil {
			delete(c.elems, oldest.Value.(*cached).pattern)
			c.recency.Remove(oldest)
		}
	}
	c.elems[pattern] = c.recency.PushFront(&cached{pattern: pattern, re: regex})
}

// Default cache instance. Grouping and date patterns come from configuration, so the set of
// distinct patterns per process stays tiny; the cap only guards against pathological configs.
var defaultCache = NewLRUCache(128)

/**************************************************************************************************
** RegexCompile compiles a regular expression pattern and caches the result using the default
** LRU cache. The grouper resolves its pattern through this on every phase listing, so repeat
** listings reuse the compiled form.
**
** @param pattern - The regex pattern to compile
** @return *regexp.Regexp - Compiled regex
** @return error - Compilation error, if any
**************************************************************************************************/
func RegexCompile(pattern string) (*regexp.Regexp, error) {
	if re, ok := defaultCache.Get(pattern); ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	defaultCache.Put(pattern, re)
	return re, nil
}
