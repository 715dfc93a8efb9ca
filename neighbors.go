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

// NDirs is the number of flow directions in the supported neighbor
// stencil.
const NDirs = 8

// neighborOffset locates one of a cell's 8 neighbors. The diagonal
// flag selects the anisotropic slope and contour-length weights.
type neighborOffset struct {
	dx, dy   int
	diagonal bool
}

// The neighbors of cell (x, y) are numbered around the compass
// starting from the corner at (x-1, y+1), so slots 0, 2, 4, and 6 are
// the diagonal neighbors and slots 1, 3, 5, and 7 are the cardinal
// ones. Distribution routing and the slope weighting both depend on
// these positions, so the table must stay fixed-size and in this
// exact order.
var neighborOffsets = [NDirs]neighborOffset{
	{-1, 1, true},
	{0, 1, false},
	{1, 1, true},
	{1, 0, false},
	{1, -1, true},
	{0, -1, false},
	{-1, -1, true},
	{-1, 0, false},
}

// neighborElevations fills elev with the elevations of the 8 neighbors
// of cell (x, y), whose own elevation is celev. Neighbors that fall
// off the grid or outside the basin mask are given the center cell's
// elevation, so the cell never drains through them: the basin edge is
// treated as flat rather than as a falling boundary.
func (g *FineGrid) neighborElevations(x, y int, celev float64, elev *[NDirs]float64) {
	for n, o := range neighborOffsets {
		xn, yn := x+o.dx, y+o.dy
		if g.InBasin(xn, yn) {
			elev[n] = g.Elev.Get(yn, xn)
		} else {
			elev[n] = celev
		}
	}
}
