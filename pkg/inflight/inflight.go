// Package inflight enforces at most one in-flight mutation per
// resource+id, replacing the per-form submit guards of the original
// dashboard with one shared policy.
package inflight

import "golang.org/x/sync/singleflight"

// Group deduplicates concurrent mutations by key. A duplicate submitted
// while the first call is still running shares that call's outcome instead
// of issuing a second request.
type Group struct {
	sf singleflight.Group
}

// New returns an empty mutation group.
func New() *Group {
	return &Group{}
}

// Do runs fn under the given key, collapsing concurrent duplicates.
func (g *Group) Do(key string, fn func() (interface{}, error)) (interface{}, error) {
	v, err, _ := g.sf.Do(key, fn)
	return v, err
}
