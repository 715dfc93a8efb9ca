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

// Package topidx calculates the multiple-flow-direction topographic
// wetness index ln(a/tanβ) of Wolock and McCabe (1995), an extension of
// the TOPMODEL topographic index of Beven and Kirkby (1979). The index
// is used to redistribute soil moisture from a coarse hydrologic grid
// to a fine terrain grid: cells with a large upslope contributing area
// relative to their local drainage gradient are the wettest.
package topidx

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// Version gives the version number.
const Version = "1.0.0"

// A FineGrid is the fine-resolution terrain grid that the topographic
// index is calculated on. Rows are indexed by y and columns by x, with
// row 0 being the northernmost row, matching the row order of the
// ESRI ASCII raster format. Xorig and Yorig are the coordinates of the
// lower-left corner of the grid.
type FineGrid struct {
	Nx, Ny int // grid dimensions [cells]

	// Dmass is the cell size [m]. Cells must be square; grids with
	// different x and y resolutions are not supported.
	Dmass float64

	Xorig, Yorig float64 // lower-left corner coordinates [m]

	// VertRes is the vertical precision of the elevation data [m].
	// It is only used when calculating the drainage gradient of cells
	// with no downslope neighbor.
	VertRes float64

	// NDirs is the number of flow directions each cell drains through.
	// Only the 8-direction stencil is supported.
	NDirs int

	Elev *sparse.DenseArray // cell elevations [m]

	// Mask is the basin mask; 0 = outside the basin. Cells start
	// outside and are included by setting a nonzero value. Note that
	// the sparse array's Set drops zero values, so a cell can only be
	// taken back out of the basin by clearing its Elements entry
	// directly.
	Mask *sparse.DenseArrayInt

	// TopoIndex is the calculated topographic wetness index
	// [ln(m)]. It is (re)allocated and filled by CalcTopoIndex and is
	// only defined for cells inside the basin.
	TopoIndex *sparse.DenseArray
}

// NewFineGrid initializes a terrain grid with the given dimensions,
// cell size, lower-left corner coordinates, and elevation precision.
// The elevation and mask grids are allocated but left zero-valued.
func NewFineGrid(nx, ny int, dmass, xorig, yorig, vertRes float64) (*FineGrid, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("topidx: invalid grid dimensions %d×%d", nx, ny)
	}
	if dmass <= 0 {
		return nil, fmt.Errorf("topidx: invalid cell size %g", dmass)
	}
	if vertRes <= 0 {
		return nil, fmt.Errorf("topidx: invalid vertical resolution %g", vertRes)
	}
	return &FineGrid{
		Nx:      nx,
		Ny:      ny,
		Dmass:   dmass,
		Xorig:   xorig,
		Yorig:   yorig,
		VertRes: vertRes,
		NDirs:   NDirs,
		Elev:    sparse.ZerosDense(ny, nx),
		Mask:    sparse.ZerosDenseInt(ny, nx),
	}, nil
}

// inBounds reports whether (x, y) lies within the grid.
func (g *FineGrid) inBounds(x, y int) bool {
	return x >= 0 && x < g.Nx && y >= 0 && y < g.Ny
}

// InBasin reports whether cell (x, y) lies within the grid and inside
// the basin mask.
func (g *FineGrid) InBasin(x, y int) bool {
	return g.inBounds(x, y) && g.Mask.Get(y, x) != 0
}

// NumCells returns the number of cells inside the basin mask.
func (g *FineGrid) NumCells() int {
	n := 0
	for _, m := range g.Mask.Elements {
		if m != 0 {
			n++
		}
	}
	return n
}

// Bounds returns the spatial extent of the grid.
func (g *FineGrid) Bounds() *geom.Bounds {
	b := geom.NewBoundsPoint(geom.Point{X: g.Xorig, Y: g.Yorig})
	b.Extend(geom.NewBoundsPoint(geom.Point{
		X: g.Xorig + float64(g.Nx)*g.Dmass,
		Y: g.Yorig + float64(g.Ny)*g.Dmass,
	}))
	return b
}

// CellPolygon returns the square polygon covered by cell (x, y).
func (g *FineGrid) CellPolygon(x, y int) geom.Polygon {
	xmin := g.Xorig + float64(x)*g.Dmass
	xmax := xmin + g.Dmass
	ymax := g.Yorig + float64(g.Ny-y)*g.Dmass
	ymin := ymax - g.Dmass
	return geom.Polygon{{
		{X: xmin, Y: ymin},
		{X: xmax, Y: ymin},
		{X: xmax, Y: ymax},
		{X: xmin, Y: ymax},
		{X: xmin, Y: ymin},
	}}
}
