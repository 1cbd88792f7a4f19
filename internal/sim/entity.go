package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-roids/internal/core"
	"github.com/vovakirdan/tui-roids/internal/world"
)

// Category tags an entity for collision dispatch and wrap eligibility.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryPlayer
	CategoryPlayerShot
	CategoryAsteroid
	CategoryUFO
	CategoryUFOShot
	CategoryFragment
	numCategories
)

func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryPlayerShot:
		return "player-shot"
	case CategoryAsteroid:
		return "asteroid"
	case CategoryUFO:
		return "ufo"
	case CategoryUFOShot:
		return "ufo-shot"
	case CategoryFragment:
		return "fragment"
	default:
		return "none"
	}
}

// SizeClass is the asteroid size. Smaller classes have larger values.
type SizeClass uint8

const (
	SizeHuge SizeClass = iota
	SizeBig
	SizeMed
	SizeSmall
)

var sizeNames = [...]string{"huge", "big", "med", "small"}

func (s SizeClass) String() string {
	if int(s) < len(sizeNames) {
		return sizeNames[s]
	}
	return "unknown"
}

// Next returns the size of the children produced by a split.
// Small asteroids do not split.
func (s SizeClass) Next() (SizeClass, bool) {
	if s >= SizeSmall {
		return s, false
	}
	return s + 1, true
}

// Handle identifies an entity slot. A handle goes stale once the entity
// is destroyed, even if the slot is reused.
type Handle struct {
	index uint32
	gen   uint32
}

// Valid reports whether h was ever issued. Stale handles are still valid.
func (h Handle) Valid() bool {
	return h.gen != 0
}

func (h Handle) String() string {
	return fmt.Sprintf("%d.%d", h.index, h.gen)
}

// Entity is a simulated object. Category, archetype, size, radius and
// shape are fixed by the archetype factory; everything else is transient
// and cleared by Reset.
type Entity struct {
	world.Body

	handle    Handle
	category  Category
	archetype string
	size      SizeClass
	small     bool
	radius    float64
	shape     []core.Vec2

	Spin      float64 // Radians per second
	Lifetime  float64 // Seconds left; only counted when Expires is set
	Expires   bool
	Dynamic   bool   // Held entities neither move nor fly
	Owner     Handle // Shooter of a shot
	Hit       bool   // Shot has scored
	Thrusting bool
	shots     int // UFO shots in flight
	alive     bool
}

// ArchetypeKey returns the pool grouping key.
func (e *Entity) ArchetypeKey() string { return e.archetype }

// Reset clears transient state before the entity is pooled.
func (e *Entity) Reset() {
	e.Body.Clear()
	e.handle = Handle{}
	e.Spin = 0
	e.Lifetime = 0
	e.Expires = false
	e.Dynamic = false
	e.Owner = Handle{}
	e.Hit = false
	e.Thrusting = false
	e.shots = 0
	e.alive = false
}

// Handle returns the entity handle.
func (e *Entity) Handle() Handle { return e.handle }

// Category returns the entity category.
func (e *Entity) Category() Category { return e.category }

// Size returns the asteroid size class.
func (e *Entity) Size() SizeClass { return e.size }

// Small reports whether a UFO is the small variant.
func (e *Entity) Small() bool { return e.small }

// Radius returns the collision radius.
func (e *Entity) Radius() float64 { return e.radius }

// Shape returns the outline vertices relative to the entity center.
// The slice is shared and must not be modified.
func (e *Entity) Shape() []core.Vec2 { return e.shape }

// Alive reports whether the entity is in play.
func (e *Entity) Alive() bool { return e.alive }

// View returns a read-only copy for collaborators.
func (e *Entity) View() EntityView {
	return EntityView{
		Handle:    e.handle,
		Category:  e.category,
		Size:      e.size,
		Small:     e.small,
		Pos:       e.Pos,
		Rotation:  e.Rotation,
		Radius:    e.radius,
		Shape:     e.shape,
		OnScreen:  e.OnScreen,
		Thrusting: e.Thrusting,
	}
}

// Archetype keys.
const (
	archetypePlayerNormal = "player-normal"
	archetypePlayerRetro  = "player-retro"
	archetypePlayerShot   = "shot-player"
	archetypeUFOBig       = "ufo-big"
	archetypeUFOSmall     = "ufo-small"
	archetypeUFOShot      = "shot-ufo"
	archetypeFragment     = "fragment"
)

func asteroidArchetype(size SizeClass, variant int) string {
	return fmt.Sprintf("asteroid-%s-%d", size, variant)
}

const asteroidVertices = 11

// asteroidShape builds a jagged outline. Shapes depend only on the variant
// so a pooled asteroid and a fresh one look the same.
func asteroidShape(variant int, radius float64) []core.Vec2 {
	rng := rand.New(rand.NewSource(int64(variant)*7919 + 1))
	shape := make([]core.Vec2, asteroidVertices)
	for i := range shape {
		a := 2 * math.Pi * float64(i) / asteroidVertices
		shape[i] = core.FromAngle(a, radius*(0.75+0.25*rng.Float64()))
	}
	return shape
}

func shipShape(radius float64) []core.Vec2 {
	return []core.Vec2{
		core.V(radius, 0),
		core.FromAngle(0.8*math.Pi, radius),
		core.V(-radius*0.4, 0),
		core.FromAngle(-0.8*math.Pi, radius),
	}
}

func ufoShape(radius float64) []core.Vec2 {
	return []core.Vec2{
		core.V(-radius, 0),
		core.V(-radius*0.4, -radius*0.4),
		core.V(radius*0.4, -radius*0.4),
		core.V(radius, 0),
		core.V(radius*0.4, radius*0.35),
		core.V(-radius*0.4, radius*0.35),
	}
}
