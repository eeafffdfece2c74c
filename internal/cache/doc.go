// Package cache provides the generic LRU cache the scene renderer keeps its
// plans in.
//
// Entries are ordered by last access. When Set pushes the cache past its
// soft limit, the least recently used quarter is dropped
// and the eviction hook, if any, sees every dropped entry.
//
//	plans := cache.New[string, *ggplan.Plan](512)
//	plans.OnEvict(func(name string, _ *ggplan.Plan) { log.Println("evicted", name) })
//	plans.Set(name, build(name))
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
