package mesh

import (
	"errors"
	"testing"
)

// affine is a Projector that scales and shifts coordinates.
type affine struct{}

func (affine) Forward(lon, lat float64) (float64, float64) {
	return 2*lon + 1000, 3*lat - 500
}

func TestConvertToUTM(t *testing.T) {
	msh := mustBuild(t, coneMap(t, 9, 40, 10), 2, true, Options{})
	if _, err := msh.Refine(1, true); err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	var before []Triangle
	for _, tri := range msh.All() {
		before = append(before, *tri)
	}

	if err := msh.ConvertToUTM(affine{}); err != nil {
		t.Fatalf("ConvertToUTM failed: %v", err)
	}
	if !msh.UTM() || !msh.Map().UTM {
		t.Error("mesh should be marked as projected")
	}

	for i, tri := range msh.All() {
		for k, v := range tri.Vertices {
			old := before[i].Vertices[k]
			x, y := affine{}.Forward(old.X, old.Y)
			if v.X != x || v.Y != y || v.Z != old.Z || v.Border != old.Border {
				t.Fatalf("triangle %d vertex %d = %+v, want (%v, %v, %v)", i, k, v, x, y, old.Z)
			}
		}
	}
	assertConsistent(t, msh)
}

func TestConvertToUTM_Twice(t *testing.T) {
	msh := mustBuild(t, flatMap(t, 3, 3, 0), 1, true, Options{})
	if err := msh.ConvertToUTM(affine{}); err != nil {
		t.Fatalf("ConvertToUTM failed: %v", err)
	}
	projected := *msh.Triangle(0)

	err := msh.ConvertToUTM(affine{})
	if !errors.Is(err, ErrAlreadyUTM) {
		t.Fatalf("expected ErrAlreadyUTM, got %v", err)
	}
	if *msh.Triangle(0) != projected {
		t.Error("second conversion changed coordinates")
	}
}

func TestRefine_AfterUTM(t *testing.T) {
	msh := mustBuild(t, coneMap(t, 9, 40, 10), 2, true, Options{})
	if err := msh.ConvertToUTM(affine{}); err != nil {
		t.Fatalf("ConvertToUTM failed: %v", err)
	}

	before := msh.Len()
	if _, err := msh.Refine(1, true); !errors.Is(err, ErrAlreadyUTM) {
		t.Errorf("expected ErrAlreadyUTM, got %v", err)
	}
	if msh.Len() != before {
		t.Error("refining a projected mesh must not change it")
	}
}
