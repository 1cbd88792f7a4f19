package sim

import "fmt"

// HandlerFunc handles a contact between two live entities, given in the
// category order the route was declared with.
type HandlerFunc func(a, b *Entity)

// Contact is a raw overlap between two entities in no particular order.
type Contact struct {
	A, B Handle
}

type route struct {
	a, b Category
	fn   HandlerFunc
}

// Router dispatches contacts to handlers by category pair.
type Router struct {
	lookup func(Handle) *Entity
	routes []route
	pairs  [numCategories][numCategories]bool
}

// NewRouter creates a router that resolves handles with lookup. lookup
// must return nil for destroyed entities.
func NewRouter(lookup func(Handle) *Entity) *Router {
	return &Router{lookup: lookup}
}

// Handle registers fn for contacts between categories a and b. Registering
// the same pair twice in either order panics.
func (r *Router) Handle(a, b Category, fn HandlerFunc) {
	if r.pairs[a][b] {
		panic(fmt.Sprintf("sim: route %s/%s already registered", a, b))
	}
	r.pairs[a][b] = true
	r.pairs[b][a] = true
	r.routes = append(r.routes, route{a: a, b: b, fn: fn})
}

// Interested reports whether any route covers the pair.
func (r *Router) Interested(a, b Category) bool {
	return r.pairs[a][b]
}

// Collides reports whether category c takes part in any route.
func (r *Router) Collides(c Category) bool {
	for other := Category(0); other < numCategories; other++ {
		if r.pairs[c][other] {
			return true
		}
	}
	return false
}

// Dispatch runs the matching route for c. Contacts involving an entity
// destroyed earlier in the tick are ignored. It reports whether a handler ran.
func (r *Router) Dispatch(c Contact) bool {
	for _, rt := range r.routes {
		ea, eb := r.lookup(c.A), r.lookup(c.B)
		if ea == nil || eb == nil {
			return false
		}
		switch {
		case ea.category == rt.a && eb.category == rt.b:
			rt.fn(ea, eb)
			return true
		case ea.category == rt.b && eb.category == rt.a:
			rt.fn(eb, ea)
			return true
		}
	}
	return false
}
