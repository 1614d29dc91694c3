package qa

import "fmt"

// fetchGuard tracks the entities currently being resolved within one
// resolution pass. When a cross-manager fetch re-enters an id already in
// progress, the owning manager hands back an id-only placeholder instead of
// recursing, so a referential cycle cannot blow the stack.
type fetchGuard struct {
	inProgress map[string]struct{}
}

func newFetchGuard() *fetchGuard {
	return &fetchGuard{inProgress: make(map[string]struct{})}
}

func guardKey(kind string, id int64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// enter marks an entity as being resolved. It reports false when the entity
// is already in progress, in which case the caller must not recurse.
func (g *fetchGuard) enter(kind string, id int64) bool {
	key := guardKey(kind, id)
	if _, busy := g.inProgress[key]; busy {
		return false
	}
	g.inProgress[key] = struct{}{}
	return true
}

func (g *fetchGuard) leave(kind string, id int64) {
	delete(g.inProgress, guardKey(kind, id))
}
