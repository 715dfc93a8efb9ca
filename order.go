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

import "sort"

// A CellLoc addresses one grid cell by column (X) and row (Y).
type CellLoc struct {
	X, Y int
}

// ElevationOrder returns the in-basin cells sorted by descending
// elevation, the processing order CalcTopoIndex requires. The sort is
// stable, so cells of equal elevation keep their row-major order and
// repeated calls give identical results.
func (g *FineGrid) ElevationOrder() []CellLoc {
	order := make([]CellLoc, 0, g.Nx*g.Ny)
	for y := 0; y < g.Ny; y++ {
		for x := 0; x < g.Nx; x++ {
			if g.Mask.Get(y, x) != 0 {
				order = append(order, CellLoc{X: x, Y: y})
			}
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return g.Elev.Get(order[i].Y, order[i].X) > g.Elev.Get(order[j].Y, order[j].X)
	})
	return order
}
