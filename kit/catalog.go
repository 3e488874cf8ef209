package kit

import (
	"fmt"
	"math"

	"github.com/johw/assembly-rl/transform"
)

// Slot is one object position within a kit variant: which shape goes there
// and its goal pose in kit-local coordinates (z-rotation only).
type Slot struct {
	Shape   int
	GoalPos transform.Vec3
	GoalRot float64
}

// Variant is one kit layout. All environments assigned to it share it;
// it is never mutated after the catalog is built.
type Variant struct {
	Slots []Slot
	// candidate kit-local staging offsets for the episode's target object
	StartProposals []transform.Vec3
}

// Catalog holds every kit variant plus the per-shape rotational symmetry
// table. Built once at startup, read-only afterwards.
type Catalog struct {
	variants []Variant
	symmetry []float64
}

// NewCatalog validates the layout data and builds the catalog. All variants
// must have the same number of slots so per-environment state can live in
// dense (numEnvs x K) tables.
func NewCatalog(variants []Variant, symmetry []float64) (*Catalog, error) {
	if len(variants) == 0 {
		return nil, fmt.Errorf("kit catalog: no variants")
	}
	for s, period := range symmetry {
		if period <= 0 || period > 2*math.Pi {
			return nil, fmt.Errorf("kit catalog: shape %d has symmetry period %v, want (0, 2pi]", s, period)
		}
	}
	numSlots := len(variants[0].Slots)
	if numSlots == 0 {
		return nil, fmt.Errorf("kit catalog: variant 0 has no slots")
	}
	for i, v := range variants {
		if len(v.Slots) != numSlots {
			return nil, fmt.Errorf("kit catalog: variant %d has %d slots, variant 0 has %d", i, len(v.Slots), numSlots)
		}
		if len(v.StartProposals) == 0 {
			return nil, fmt.Errorf("kit catalog: variant %d has no start proposals", i)
		}
		for j, slot := range v.Slots {
			if slot.Shape < 0 || slot.Shape >= len(symmetry) {
				return nil, fmt.Errorf("kit catalog: variant %d slot %d references unknown shape %d", i, j, slot.Shape)
			}
		}
	}
	return &Catalog{variants: variants, symmetry: symmetry}, nil
}

// NumVariants returns the number of kit layouts.
func (c *Catalog) NumVariants() int {
	return len(c.variants)
}

// NumSlots returns K, the number of object slots per kit (same for all
// variants).
func (c *Catalog) NumSlots() int {
	return len(c.variants[0].Slots)
}

// NumShapes returns the number of distinct shape types.
func (c *Catalog) NumShapes() int {
	return len(c.symmetry)
}

func (c *Catalog) Variant(i int) *Variant {
	return &c.variants[i]
}

// Symmetry returns the rotational symmetry period of a shape type.
func (c *Catalog) Symmetry(shape int) float64 {
	return c.symmetry[shape]
}
