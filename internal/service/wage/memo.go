package wage

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// memo caches built views by parameter tuple. Views are never mutated after
// they are built, so one instance is shared by every caller.
type memo struct {
	mu    sync.RWMutex
	views map[string]any
	group singleflight.Group
}

func newMemo() *memo {
	return &memo{views: make(map[string]any)}
}

func (m *memo) get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.views[key]
	return v, ok
}

func (m *memo) size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.views)
}

// cached returns the view stored under key, building it once on a miss.
// Failed builds are not stored. A nil memo always builds.
func cached[T any](m *memo, key string, build func() (T, error)) (T, error) {
	if m == nil {
		return build()
	}

	if v, ok := m.get(key); ok {
		return v.(T), nil
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		if v, ok := m.get(key); ok {
			return v, nil
		}

		view, err := build()
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.views[key] = view
		m.mu.Unlock()
		return view, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}
