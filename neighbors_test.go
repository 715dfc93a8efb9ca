/*
Copyright © 2017 the TopIdx authors.
This file is part of TopIdx.

TopIdx is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

TopIdx is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with TopIdx.  If not, see <http://www.gnu.org/licenses/>.
*/

package topidx

import "testing"

// The slope weighting depends on the even slots being the diagonal
// neighbors and the odd slots the cardinal ones, and on all 8 offsets
// being distinct unit steps.
func TestNeighborTable(t *testing.T) {
	if len(neighborOffsets) != 8 {
		t.Fatalf("neighbor table has %d entries, want 8", len(neighborOffsets))
	}
	seen := make(map[[2]int]bool)
	for n, o := range neighborOffsets {
		if o.dx < -1 || o.dx > 1 || o.dy < -1 || o.dy > 1 || (o.dx == 0 && o.dy == 0) {
			t.Errorf("slot %d: offset (%d,%d) is not a unit step", n, o.dx, o.dy)
		}
		if seen[[2]int{o.dx, o.dy}] {
			t.Errorf("slot %d: offset (%d,%d) repeats", n, o.dx, o.dy)
		}
		seen[[2]int{o.dx, o.dy}] = true
		wantDiagonal := n%2 == 0
		if o.diagonal != wantDiagonal {
			t.Errorf("slot %d: diagonal = %v, want %v", n, o.diagonal, wantDiagonal)
		}
		if isDiag := o.dx != 0 && o.dy != 0; isDiag != o.diagonal {
			t.Errorf("slot %d: offset (%d,%d) mislabeled diagonal=%v", n, o.dx, o.dy, o.diagonal)
		}
	}
}

// Off-grid and out-of-basin neighbors take on the center cell's
// elevation so the basin edge never looks downslope.
func TestNeighborElevations(t *testing.T) {
	g := testGrid(t, 2, 2, []float64{
		1, 2,
		3, 4,
	})
	maskOut(g, CellLoc{X: 1, Y: 1}) // cell (1,1) is outside the basin
	if g.InBasin(1, 1) {
		t.Fatal("cell (1,1) should be outside the basin")
	}

	var elev [NDirs]float64
	g.neighborElevations(0, 0, 1., &elev)
	for n, o := range neighborOffsets {
		xn, yn := 0+o.dx, 0+o.dy
		want := 1. // flattened
		switch {
		case xn == 1 && yn == 0:
			want = 2.
		case xn == 0 && yn == 1:
			want = 3.
		case xn == 1 && yn == 1:
			// masked out, stays flattened
		}
		if elev[n] != want {
			t.Errorf("slot %d (offset %d,%d): elevation = %g, want %g", n, o.dx, o.dy, elev[n], want)
		}
	}
}
