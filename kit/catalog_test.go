package kit

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/johw/assembly-rl/transform"
)

func validVariant() Variant {
	return Variant{
		Slots: []Slot{
			{Shape: 0, GoalPos: transform.Vec3{X: 0.1}, GoalRot: 0},
			{Shape: 1, GoalPos: transform.Vec3{Y: 0.1}, GoalRot: 1.2},
		},
		StartProposals: []transform.Vec3{{X: -0.2, Y: 0.1, Z: 0.05}},
	}
}

func TestNewCatalog(t *testing.T) {
	c, err := NewCatalog([]Variant{validVariant()}, []float64{math.Pi, 2 * math.Pi})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.NumVariants() != 1 || c.NumSlots() != 2 || c.NumShapes() != 2 {
		t.Errorf("wrong catalog dimensions: %d variants, %d slots, %d shapes",
			c.NumVariants(), c.NumSlots(), c.NumShapes())
	}
	if c.Symmetry(0) != math.Pi {
		t.Errorf("wrong symmetry for shape 0: %v", c.Symmetry(0))
	}
}

func TestNewCatalogRejectsBadLayouts(t *testing.T) {
	symmetry := []float64{math.Pi, 2 * math.Pi}

	if _, err := NewCatalog(nil, symmetry); err == nil {
		t.Errorf("expected error for empty variant list")
	}

	noStaging := validVariant()
	noStaging.StartProposals = nil
	if _, err := NewCatalog([]Variant{noStaging}, symmetry); err == nil {
		t.Errorf("expected error for empty staging list")
	}

	badShape := validVariant()
	badShape.Slots[1].Shape = 7
	if _, err := NewCatalog([]Variant{badShape}, symmetry); err == nil {
		t.Errorf("expected error for unknown shape id")
	}

	if _, err := NewCatalog([]Variant{validVariant()}, []float64{0, math.Pi}); err == nil {
		t.Errorf("expected error for zero symmetry period")
	}
	if _, err := NewCatalog([]Variant{validVariant()}, []float64{math.Pi, 3 * math.Pi}); err == nil {
		t.Errorf("expected error for symmetry period above 2pi")
	}

	mismatched := validVariant()
	mismatched.Slots = mismatched.Slots[:1]
	if _, err := NewCatalog([]Variant{validVariant(), mismatched}, symmetry); err == nil {
		t.Errorf("expected error for slot count mismatch across variants")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	episodes := `{"config": {"symmetry": [6.283185307179586, 3.141592653589793]}}`
	if err := os.WriteFile(filepath.Join(dir, "episodes.json"), []byte(episodes), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "kits"), 0755); err != nil {
		t.Fatal(err)
	}
	kitJSON := `{
		"objects": [
			{"object_id": 1, "pos": [0.1, 0.0, 0.0], "rot": 0.5},
			{"object_id": 0, "pos": [0.0, 0.1, 0.0], "rot": 0.0}
		],
		"start_pos_proposal": [[-0.2, 0.1, 0.05], [-0.2, -0.1, 0.05]]
	}`
	if err := os.WriteFile(filepath.Join(dir, "kits", "kit_00.json"), []byte(kitJSON), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.NumVariants() != 1 || c.NumSlots() != 2 {
		t.Fatalf("wrong dimensions: %d variants, %d slots", c.NumVariants(), c.NumSlots())
	}
	v := c.Variant(0)
	if v.Slots[0].Shape != 1 || v.Slots[0].GoalRot != 0.5 {
		t.Errorf("slot 0 parsed wrong: %+v", v.Slots[0])
	}
	if len(v.StartProposals) != 2 || v.StartProposals[1].Y != -0.1 {
		t.Errorf("start proposals parsed wrong: %+v", v.StartProposals)
	}
}
