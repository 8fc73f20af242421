package detection

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewCorners(t *testing.T) {
	pts := []r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}

	c, err := NewCorners(pts)
	if err != nil {
		t.Fatalf("NewCorners failed: %v", err)
	}

	want := Corners{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("NewCorners() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewCorners_WrongCount(t *testing.T) {
	for _, n := range []int{0, 3, 5} {
		_, err := NewCorners(make([]r2.Vec, n))
		if !errors.Is(err, ErrCornerCount) {
			t.Errorf("n=%d: expected ErrCornerCount, got %v", n, err)
		}
	}
}

func TestCenterOf(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	tests := []struct {
		name    string
		corners Corners
		want    r2.Vec
	}{
		{
			name:    "axis aligned square",
			corners: Corners{{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 200, Y: 200}, {X: 100, Y: 200}},
			want:    r2.Vec{X: 150, Y: 150},
		},
		{
			name:    "rotated square",
			corners: Corners{{X: 50, Y: 0}, {X: 100, Y: 50}, {X: 50, Y: 100}, {X: 0, Y: 50}},
			want:    r2.Vec{X: 50, Y: 50},
		},
		{
			name: "perspective quad uses diagonal intersection",
			// Diagonals: (0,0)-(4,4) and (4,0)-(0,2) meet at (4/3, 4/3)
			corners: Corners{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 2}},
			want:    r2.Vec{X: 4.0 / 3, Y: 4.0 / 3},
		},
		{
			name:    "collapsed quad falls back to centroid",
			corners: Corners{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}, {X: 6, Y: 0}},
			want:    r2.Vec{X: 3, Y: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CenterOf(tt.corners)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("CenterOf() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
