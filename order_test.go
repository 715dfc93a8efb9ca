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

func TestElevationOrder(t *testing.T) {
	g := testGrid(t, 3, 2, []float64{
		5, 9, 2,
		9, 1, 7,
	})
	maskOut(g, CellLoc{X: 1, Y: 1}) // exclude cell (1,1), elevation 1

	order := g.ElevationOrder()
	if len(order) != 5 {
		t.Fatalf("order has %d cells, want 5", len(order))
	}
	for i, c := range order {
		if !g.InBasin(c.X, c.Y) {
			t.Errorf("ordered cell %d (%d,%d) is outside the basin", i, c.X, c.Y)
		}
		if i > 0 {
			prev := g.Elev.Get(order[i-1].Y, order[i-1].X)
			if g.Elev.Get(c.Y, c.X) > prev {
				t.Errorf("cell %d is higher than its predecessor", i)
			}
		}
	}
	// The two cells at elevation 9 tie; the stable sort keeps their
	// row-major order.
	if order[0] != (CellLoc{X: 1, Y: 0}) || order[1] != (CellLoc{X: 0, Y: 1}) {
		t.Errorf("tied cells out of row-major order: %v, %v", order[0], order[1])
	}
}
