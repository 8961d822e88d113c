// Package accessory picks the orbital decoration drawn around a planet.
package accessory

import (
	"fmt"
	"strings"

	"cogentcore.org/lab/base/randx"
)

// Accessory is one orbital decoration variant.
type Accessory int

const (
	None Accessory = iota
	Rings
	AsteroidBelt
	Rocket
	UFO
	RingsRocket
	BeltUFO
)

var names = [...]string{
	None:         "none",
	Rings:        "rings",
	AsteroidBelt: "asteroid-belt",
	Rocket:       "rocket",
	UFO:          "ufo",
	RingsRocket:  "rings+rocket",
	BeltUFO:      "belt+ufo",
}

// All lists every variant in table order.
var All = []Accessory{None, Rings, AsteroidBelt, Rocket, UFO, RingsRocket, BeltUFO}

func (a Accessory) String() string {
	if a >= 0 && int(a) < len(names) {
		return names[a]
	}
	return fmt.Sprintf("Accessory(%d)", int(a))
}

// Parse returns the variant with the given name. "belt" and "asteroids"
// are accepted for AsteroidBelt.
func Parse(s string) (Accessory, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "belt", "asteroids":
		return AsteroidBelt, nil
	}
	for i, n := range names {
		if n == s {
			return Accessory(i), nil
		}
	}
	return None, fmt.Errorf("unknown accessory %q", s)
}

// HasRings reports whether the variant draws a ring disc.
func (a Accessory) HasRings() bool { return a == Rings || a == RingsRocket }

// HasBelt reports whether the variant draws an asteroid belt.
func (a Accessory) HasBelt() bool { return a == AsteroidBelt || a == BeltUFO }

// HasRocket reports whether the variant draws a rocket.
func (a Accessory) HasRocket() bool { return a == Rocket || a == RingsRocket }

// HasUFO reports whether the variant draws a UFO.
func (a Accessory) HasUFO() bool { return a == UFO || a == BeltUFO }

// Band is one row of the choice table: a draw below Upper (and not below
// the previous row's Upper) selects Variant.
type Band struct {
	Variant Accessory
	Upper   float64
}

// Table is a cumulative weighted-choice table.
type Table []Band

// DefaultTable holds the default weights: none .25, rings .20, belt .15
// and .10 for each of the remaining variants.
var DefaultTable = Table{
	{None, 0.25},
	{Rings, 0.45},
	{AsteroidBelt, 0.60},
	{Rocket, 0.70},
	{UFO, 0.80},
	{RingsRocket, 0.90},
	{BeltUFO, 1.00},
}

// NewTable builds a cumulative table from per-variant weights. The
// weights are normalized; zero weights drop the variant.
func NewTable(weights map[Accessory]float64) (Table, error) {
	var total float64
	for a, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("negative weight %v for %s", w, a)
		}
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("accessory weights sum to zero")
	}
	var t Table
	var sum float64
	for _, a := range All {
		w := weights[a]
		if w == 0 {
			continue
		}
		sum += w
		t = append(t, Band{a, sum / total})
	}
	return t, nil
}

// Pick maps one uniform draw u in [0,1) to a variant. The last row
// absorbs floating point shortfall.
func (t Table) Pick(u float64) Accessory {
	for _, b := range t {
		if u < b.Upper {
			return b.Variant
		}
	}
	if len(t) == 0 {
		return None
	}
	return t[len(t)-1].Variant
}

// Choose draws one variant with rnd. A nil rnd uses the global source.
func (t Table) Choose(rnd randx.Rand) Accessory {
	if rnd == nil {
		rnd = randx.NewGlobalRand()
	}
	return t.Pick(rnd.Float64())
}

// Choose draws from DefaultTable.
func Choose(rnd randx.Rand) Accessory {
	return DefaultTable.Choose(rnd)
}

// Seeded returns the variant a fresh generator with the given seed picks
// first, so a seed always names the same accessory.
func Seeded(seed int64) Accessory {
	return Choose(randx.NewSysRand(seed))
}
