package porter

import (
	"context"
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
)

// copierKey is the ordered (source, target) shape pair.
type copierKey struct {
	source reflect.Type
	target reflect.Type
}

// copiers lives for the whole process. Entries are never evicted: the number
// of distinct shape pairs is bounded by the program's types.
var copiers = xsync.NewMapOf[copierKey, *Copier]()

// CopierFor returns the cached Copier for the shape pair, compiling it on
// first use. Safe for concurrent use without a cache-wide lock: callers
// racing on a new pair may each compile a copier, but only one is
// published and every caller gets a fully built instance.
func CopierFor(source, target reflect.Type) (*Copier, error) {
	key := copierKey{source: indirect(source), target: indirect(target)}

	// Fast path: already compiled
	if c, ok := copiers.Load(key); ok {
		cacheHits.Inc()
		return c, nil
	}
	cacheMisses.Inc()

	// Slow path: compile outside the map, then publish
	c, err := Compile(source, target)
	if err != nil {
		return nil, err
	}

	actual, loaded := copiers.LoadOrStore(key, c)
	if !loaded {
		emitCopierCompiled(context.Background(), c.source, c.target, len(c.steps))
	}
	return actual, nil
}

// CachedCopiers returns the number of compiled copiers in the cache.
func CachedCopiers() int {
	return copiers.Size()
}

// Reset clears the copier cache.
// This is primarily useful for test isolation.
func Reset() {
	copiers.Clear()
}

func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
