package inference

import (
	"container/list"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/varlens/internal/types"
)

// defaultMemoSize bounds the per-engine memoization cache. The same
// (name, value) pairs repeat across frames and collection cycles, so a
// small cache carries most of the win.
const defaultMemoSize = 1024

// memoCache is a thread-safe LRU of inference results keyed by a
// 64-bit hash of the call inputs.
type memoCache struct {
	maxSize int
	mu      sync.Mutex
	items   map[uint64]*list.Element
	order   *list.List
}

type memoEntry struct {
	key   uint64
	label string
}

func newMemoCache(maxSize int) *memoCache {
	if maxSize <= 0 {
		maxSize = defaultMemoSize
	}
	return &memoCache{
		maxSize: maxSize,
		items:   make(map[uint64]*list.Element),
		order:   list.New(),
	}
}

// memoKey hashes the full inference input. The separator byte keeps
// ("ab","c") and ("a","bc") from colliding.
func memoKey(name, raw string, ctx types.TypeContext) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(name)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(raw)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(ctx.DeclaredType)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(ctx.ParentType)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(ctx.ScopeName)
	return d.Sum64()
}

func (c *memoCache) get(key uint64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*memoEntry).label, true
	}
	return "", false
}

func (c *memoCache) set(key uint64, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*memoEntry).label = label
		return
	}

	elem := c.order.PushFront(&memoEntry{key: key, label: label})
	c.items[key] = elem

	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*memoEntry).key)
		}
	}
}
