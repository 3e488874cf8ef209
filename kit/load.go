package kit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/johw/assembly-rl/transform"
)

type episodesFile struct {
	Config struct {
		Symmetry []float64 `json:"symmetry"`
	} `json:"config"`
}

type kitFile struct {
	Objects []struct {
		ObjectID int        `json:"object_id"`
		Pos      [3]float64 `json:"pos"`
		Rot      float64    `json:"rot"`
	} `json:"objects"`
	StartPosProposal [][3]float64 `json:"start_pos_proposal"`
}

// Load builds a catalog from an asset directory: episodes.json supplies the
// per-shape symmetry table, kits/kit_NN.json supply the variants (sorted by
// their numeric suffix).
func Load(assetDir string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Join(assetDir, "episodes.json"))
	if err != nil {
		return nil, fmt.Errorf("kit catalog: %w", err)
	}
	var episodes episodesFile
	if err := json.Unmarshal(data, &episodes); err != nil {
		return nil, fmt.Errorf("kit catalog: parsing episodes.json: %w", err)
	}

	kitDir := filepath.Join(assetDir, "kits")
	entries, err := os.ReadDir(kitDir)
	if err != nil {
		return nil, fmt.Errorf("kit catalog: %w", err)
	}
	paths := make([]string, 0)
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			paths = append(paths, filepath.Join(kitDir, e.Name()))
		}
	}
	sort.Slice(paths, func(i, j int) bool {
		return kitIndex(paths[i]) < kitIndex(paths[j])
	})

	variants := make([]Variant, 0, len(paths))
	for _, p := range paths {
		v, err := loadVariant(p)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return NewCatalog(variants, episodes.Config.Symmetry)
}

func loadVariant(path string) (Variant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Variant{}, fmt.Errorf("kit catalog: %w", err)
	}
	var kf kitFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return Variant{}, fmt.Errorf("kit catalog: parsing %s: %w", path, err)
	}
	v := Variant{
		Slots:          make([]Slot, 0, len(kf.Objects)),
		StartProposals: make([]transform.Vec3, 0, len(kf.StartPosProposal)),
	}
	for _, o := range kf.Objects {
		v.Slots = append(v.Slots, Slot{
			Shape:   o.ObjectID,
			GoalPos: transform.Vec3{X: o.Pos[0], Y: o.Pos[1], Z: o.Pos[2]},
			GoalRot: o.Rot,
		})
	}
	for _, p := range kf.StartPosProposal {
		v.StartProposals = append(v.StartProposals, transform.Vec3{X: p[0], Y: p[1], Z: p[2]})
	}
	return v, nil
}

// kit files are named kit_NN.json
func kitIndex(path string) int {
	stem := strings.TrimSuffix(filepath.Base(path), ".json")
	parts := strings.Split(stem, "_")
	n, _ := strconv.Atoi(parts[len(parts)-1])
	return n
}
