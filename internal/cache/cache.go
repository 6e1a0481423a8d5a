// Package cache is a read-through cache for list lookups keyed by entity
// kind and scope. Loads for the same key are de-duplicated through
// singleflight, so a burst of readers after an invalidation costs one
// database query. Mutating service operations invalidate explicitly.
package cache

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

// Kind identifies which entity listing a cached value holds.
type Kind int

const (
	KindAssets Kind = iota
	KindSequences
	KindShots
	KindDepartments
	KindTasks
	KindSetVariants
	KindVariants
	KindVersions
	KindFiles
)

// Scope narrows a listing to one owning row. Ids from different tables can
// collide, so scopes drawn from a tagged union carry the union tag; plain
// single-table scopes leave it empty.
type Scope struct {
	Kind string
	ID   int64
}

// RootScope is the scope for unscoped listings (all assets, all sequences).
var RootScope = Scope{}

// ScopeID is the scope for listings owned by a single fixed table.
func ScopeID(id int64) Scope { return Scope{ID: id} }

// ParentScope keys a listing by a department-parent reference.
func ParentScope(ref types.ParentRef) Scope {
	return Scope{Kind: string(ref.Kind), ID: ref.ID}
}

// VersionScope keys a listing by a version scope reference.
func VersionScope(s types.VersionScope) Scope {
	return Scope{Kind: string(s.Kind), ID: s.ID}
}

type key struct {
	kind  Kind
	scope Scope
}

type Cache struct {
	mu      sync.RWMutex
	entries map[key]interface{}
	group   singleflight.Group
	log     *logger.Logger
}

func New(baseLog *logger.Logger) *Cache {
	return &Cache{
		entries: make(map[key]interface{}),
		log:     baseLog.With("component", "cache"),
	}
}

// Get returns the cached value for (kind, scope), calling loader on a miss.
// Concurrent misses on the same key share a single loader call.
func (c *Cache) Get(ctx context.Context, kind Kind, scope Scope, loader func(context.Context) (interface{}, error)) (interface{}, error) {
	k := key{kind: kind, scope: scope}

	c.mu.RLock()
	v, ok := c.entries[k]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	sfKey := strconv.Itoa(int(kind)) + ":" + scope.Kind + ":" + strconv.FormatInt(scope.ID, 10)
	v, err, _ := c.group.Do(sfKey, func() (interface{}, error) {
		c.mu.RLock()
		v, ok := c.entries[k]
		c.mu.RUnlock()
		if ok {
			return v, nil
		}

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[k] = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate drops the cached value for (kind, scope).
func (c *Cache) Invalidate(kind Kind, scope Scope) {
	c.mu.Lock()
	delete(c.entries, key{kind: kind, scope: scope})
	c.mu.Unlock()
}

// InvalidateKind drops every cached value of the given kind.
func (c *Cache) InvalidateKind(kind Kind) {
	c.mu.Lock()
	for k := range c.entries {
		if k.kind == kind {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// GetList is a typed wrapper over Get for slice-valued listings.
func GetList[T any](ctx context.Context, c *Cache, kind Kind, scope Scope, loader func(context.Context) ([]T, error)) ([]T, error) {
	v, err := c.Get(ctx, kind, scope, func(ctx context.Context) (interface{}, error) {
		return loader(ctx)
	})
	if err != nil {
		return nil, err
	}
	list, ok := v.([]T)
	if !ok {
		// A kind reused with a different element type is a programming
		// error; reload without caching rather than panic.
		return loader(ctx)
	}
	return list, nil
}
