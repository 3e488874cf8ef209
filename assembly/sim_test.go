package assembly

import (
	"testing"

	"github.com/johw/assembly-rl/transform"
)

func TestWorldGraspCarryRelease(t *testing.T) {
	w := NewWorld(1, 2, transform.Vec3{X: 0.55, Z: 0.007})

	// park the object right under the grip point
	grip := w.gripPoint(0)
	w.WritePose(Object(0), 0, grip.Add(transform.Vec3{Z: -0.01}), transform.Identity)
	before, _ := w.BodyPose(Object(0), 0)

	grasp := [][]float64{{0, 0, 0, 0, 1}}
	w.Advance(grasp)
	if w.attached[0] != 0 {
		t.Fatalf("grasp did not attach the nearby object, attached=%d", w.attached[0])
	}

	carry := [][]float64{{0.1, 0, 0.05, 0.3, 1}}
	w.Advance(carry)
	got, rot := w.BodyPose(Object(0), 0)
	want := before.Add(transform.Vec3{X: 0.1, Z: 0.05})
	if got.Sub(want).Norm() > 1e-12 {
		t.Errorf("attached object at %+v, want %+v", got, want)
	}
	if yaw := transform.EulerZ(rot); yaw < 0.29 || yaw > 0.31 {
		t.Errorf("attached object yaw %v, want 0.3", yaw)
	}

	release := [][]float64{{0, 0, 0, 0, 0}}
	w.Advance(release)
	if w.attached[0] != -1 {
		t.Errorf("release did not detach the object")
	}
	w.Advance([][]float64{{0.1, 0, 0, 0, 0}})
	after, _ := w.BodyPose(Object(0), 0)
	if after != got {
		t.Errorf("detached object moved with the wrist")
	}
}

func TestWorldWritePoseDetaches(t *testing.T) {
	w := NewWorld(1, 1, transform.Vec3{X: 0.55, Z: 0.007})
	w.WritePose(Object(0), 0, w.gripPoint(0), transform.Identity)
	w.Advance([][]float64{{0, 0, 0, 0, 1}})
	if w.attached[0] != 0 {
		t.Fatalf("grasp did not attach the object")
	}
	// a pose write (a reset) invalidates the grasp
	w.WritePose(Object(0), 0, w.Origin(0), transform.Identity)
	if w.attached[0] != -1 {
		t.Errorf("pose write left a stale grasp")
	}
}
