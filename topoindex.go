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

import (
	"errors"
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// Fractions of the cell size contributed to a cell's drainage contour
// by each downslope diagonal and cardinal neighbor (Wolock and McCabe
// 1995).
const (
	diagonalContourFrac = 0.4
	cardinalContourFrac = 0.6
)

var (
	// ErrUnsupportedStencil is returned when a grid is configured
	// with a neighbor stencil other than the 8-direction one.
	ErrUnsupportedStencil = errors.New("topidx: only the 8-direction neighbor stencil is supported")

	// ErrDegenerateTanBeta is returned when finalization encounters
	// an in-basin cell with a non-positive drainage gradient, which
	// would make the index undefined. It indicates a defect in the
	// sweep, since the flat-area gradient should prevent it.
	ErrDegenerateTanBeta = errors.New("topidx: non-positive tanβ for an in-basin cell")
)

// Diagnostics holds the accumulator grids of a topographic index
// calculation after it has finished, for auditing and map output.
type Diagnostics struct {
	// A is the area of hillslope draining through each cell per unit
	// contour [m²]. Every in-basin cell starts with its own footprint
	// and receives the apportioned area of its upslope neighbors.
	A *sparse.DenseArray

	// TanBeta is each cell's drainage gradient: the sum over its
	// downslope transitions of slope times the contour length of the
	// shared boundary [m].
	TanBeta *sparse.DenseArray

	// ContourLength is the total boundary length each cell drains
	// through [m]. It does not enter the index; it is kept for map
	// output and audit.
	ContourLength *sparse.DenseArray
}

// CalcTopoIndex calculates the topographic wetness index ln(a/tanβ)
// for every cell in order, which must hold exactly the in-basin cells
// sorted by strictly descending elevation. The index is written to
// g.TopoIndex and the accumulator grids are returned for diagnostics.
//
// The ordering requirement is what makes a single sweep sufficient:
// every cell that drains into cell k is processed before k, so k's
// contributing area is complete by the time k apportions it among its
// own downslope neighbors. The sweep is sequential for the same
// reason.
func (g *FineGrid) CalcTopoIndex(order []CellLoc) (*Diagnostics, error) {
	switch g.NDirs {
	case 8:
		// The only supported stencil.
	case 4:
		return nil, fmt.Errorf("%v: 4-direction grids are not implemented", ErrUnsupportedStencil)
	default:
		return nil, fmt.Errorf("%v: got %d directions", ErrUnsupportedStencil, g.NDirs)
	}
	for _, c := range order {
		if !g.InBasin(c.X, c.Y) {
			return nil, fmt.Errorf("topidx: ordered cell (%d,%d) is outside the basin", c.X, c.Y)
		}
	}

	d := &Diagnostics{
		A:             sparse.ZerosDense(g.Ny, g.Nx),
		TanBeta:       sparse.ZerosDense(g.Ny, g.Nx),
		ContourLength: sparse.ZerosDense(g.Ny, g.Nx),
	}
	cellArea := g.Dmass * g.Dmass
	lengthDiagonal := math.Sqrt(2. * g.Dmass * g.Dmass)

	// Every ordered cell contributes at least its own footprint.
	for _, c := range order {
		d.A.Set(cellArea, c.Y, c.X)
	}

	var neighborElev, deltaA [NDirs]float64
	for _, c := range order {
		celev := g.Elev.Get(c.Y, c.X)
		g.neighborElevations(c.X, c.Y, celev, &neighborElev)

		// Accumulate slope-weighted contour length over the
		// downslope transitions. deltaA holds the area flux headed
		// for each downslope neighbor, scaled by the cell's full
		// gradient below.
		notLower := 0
		for n, o := range neighborOffsets {
			if neighborElev[n] >= celev {
				notLower++
				continue
			}
			var slope, contour float64
			if o.diagonal {
				slope = (celev - neighborElev[n]) / lengthDiagonal
				contour = diagonalContourFrac * g.Dmass
			} else {
				slope = (celev - neighborElev[n]) / g.Dmass
				contour = cardinalContourFrac * g.Dmass
			}
			d.ContourLength.AddVal(contour, c.Y, c.X)
			d.TanBeta.AddVal(slope*contour, c.Y, c.X)
			deltaA[n] = d.A.Get(c.Y, c.X) * slope * contour
		}

		if notLower == NDirs {
			// No downslope neighbor. Assign the gradient a flat
			// area would have if it dropped half the DEM's vertical
			// precision toward each of its 8 neighbors, so the
			// index stays finite. The cell retains its area.
			d.TanBeta.Set(g.flatTanBeta(lengthDiagonal), c.Y, c.X)
			continue
		}

		// Apportion the cell's accumulated area among its downslope
		// neighbors. Dividing each flux by the cell's own total
		// gradient makes the fluxes sum to the full area, so the
		// cell passes on everything that drains through it.
		tanbeta := d.TanBeta.Get(c.Y, c.X)
		for n := range neighborOffsets {
			if neighborElev[n] >= celev {
				continue
			}
			if err := route(d.A, c, n, deltaA[n]/tanbeta); err != nil {
				return nil, err
			}
		}
	}

	g.TopoIndex = sparse.ZerosDense(g.Ny, g.Nx)
	for _, c := range order {
		tanbeta := d.TanBeta.Get(c.Y, c.X)
		if tanbeta <= 0 {
			return nil, fmt.Errorf("%v (%d,%d)", ErrDegenerateTanBeta, c.X, c.Y)
		}
		g.TopoIndex.Set(math.Log(d.A.Get(c.Y, c.X)/tanbeta), c.Y, c.X)
	}
	return d, nil
}

// flatTanBeta is the drainage gradient assigned to cells with no
// downslope neighbor: half the vertical resolution of the elevation
// data divided by the distance to each of the 4 diagonal and 4
// cardinal neighbor centers. The 4+4 split applies even to edge
// cells missing some of those neighbors.
func (g *FineGrid) flatTanBeta(lengthDiagonal float64) float64 {
	return float64(NDirs/2)*(0.5*g.VertRes/lengthDiagonal) +
		float64(NDirs/2)*(0.5*g.VertRes/g.Dmass)
}

// route adds area flux v to the neighbor of cell c in slot n. A slot
// outside the neighbor table is a programming error and aborts the
// calculation rather than misrouting area.
func route(a *sparse.DenseArray, c CellLoc, n int, v float64) error {
	if n < 0 || n >= NDirs {
		return fmt.Errorf("topidx: routing slot %d for cell (%d,%d) is outside the neighbor table", n, c.X, c.Y)
	}
	o := neighborOffsets[n]
	a.AddVal(v, c.Y+o.dy, c.X+o.dx)
	return nil
}
