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
	"bufio"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/sparse"
	goshp "github.com/jonas-p/go-shp"
	"gonum.org/v1/gonum/floats"
)

// ReadASCIIGrid reads an elevation grid in the ESRI ASCII raster
// format: a six-line header (ncols, nrows, xllcorner, yllcorner,
// cellsize, NODATA_value) followed by row-major cell values with the
// northernmost row first. Cells holding the NODATA value are marked
// as outside the basin. vertRes is the vertical precision of the
// elevation data.
func ReadASCIIGrid(r io.Reader, vertRes float64) (*FineGrid, error) {
	br := bufio.NewReader(r)
	header := make(map[string]float64)
	for i := 0; i < 6; i++ {
		var key string
		var val float64
		if _, err := fmt.Fscan(br, &key, &val); err != nil {
			return nil, fmt.Errorf("topidx: reading ASCII grid header: %v", err)
		}
		header[strings.ToLower(key)] = val
	}
	for _, key := range []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value"} {
		if _, ok := header[key]; !ok {
			return nil, fmt.Errorf("topidx: ASCII grid header is missing %s", key)
		}
	}

	g, err := NewFineGrid(int(header["ncols"]), int(header["nrows"]),
		header["cellsize"], header["xllcorner"], header["yllcorner"], vertRes)
	if err != nil {
		return nil, err
	}
	nodata := header["nodata_value"]
	for y := 0; y < g.Ny; y++ {
		for x := 0; x < g.Nx; x++ {
			var v float64
			if _, err := fmt.Fscan(br, &v); err != nil {
				return nil, fmt.Errorf("topidx: reading ASCII grid cell (%d,%d): %v", x, y, err)
			}
			if v == nodata {
				continue
			}
			g.Elev.Set(v, y, x)
			g.Mask.Set(1, y, x)
		}
	}
	return g, nil
}

// WriteASCIIGrid writes field, which must share the grid's shape, as
// an ESRI ASCII raster. Cells outside the basin are written as "0.",
// matching the NODATA value in the header.
func (g *FineGrid) WriteASCIIGrid(w io.Writer, field *sparse.DenseArray) error {
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "ncols %11d\n", g.Nx)
	fmt.Fprintf(b, "nrows %11d\n", g.Ny)
	fmt.Fprintf(b, "xllcorner %.1f\n", g.Xorig)
	fmt.Fprintf(b, "yllcorner %.1f\n", g.Yorig)
	fmt.Fprintf(b, "cellsize %.0f\n", g.Dmass)
	fmt.Fprintf(b, "NODATA_value %d\n", 0)
	for y := 0; y < g.Ny; y++ {
		for x := 0; x < g.Nx; x++ {
			if g.InBasin(x, y) {
				fmt.Fprintf(b, "%2.3f ", field.Get(y, x))
			} else {
				fmt.Fprint(b, "0. ")
			}
		}
		fmt.Fprintln(b)
	}
	return b.Flush()
}

// LogInvTanBeta returns a grid of ln(1/tanβ), a drainage-gradient map
// useful for diagnosing the index calculation.
func (d *Diagnostics) LogInvTanBeta(g *FineGrid) *sparse.DenseArray {
	out := sparse.ZerosDense(g.Ny, g.Nx)
	for y := 0; y < g.Ny; y++ {
		for x := 0; x < g.Nx; x++ {
			if g.InBasin(x, y) {
				out.Set(math.Log(1./d.TanBeta.Get(y, x)), y, x)
			}
		}
	}
	return out
}

// WriteShapefile writes the calculated index and the accumulator
// grids to a polygon shapefile with one record per in-basin cell.
// g.TopoIndex must already have been filled by CalcTopoIndex.
func (d *Diagnostics) WriteShapefile(fileName string, g *FineGrid) error {
	vars := []string{"TopoIndex", "Area", "TanBeta", "Contour"}
	fields := make([]goshp.Field, len(vars))
	for i, v := range vars {
		fields[i] = goshp.FloatField(v, 14, 8)
	}

	// remove extension and replace it with .shp
	fileBase := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	fileName = fileBase + ".shp"
	shape, err := shp.NewEncoderFromFields(fileName, goshp.POLYGON, fields...)
	if err != nil {
		return fmt.Errorf("topidx: creating output shapefile: %v", err)
	}
	for y := 0; y < g.Ny; y++ {
		for x := 0; x < g.Nx; x++ {
			if !g.InBasin(x, y) {
				continue
			}
			err = shape.EncodeFields(g.CellPolygon(x, y),
				g.TopoIndex.Get(y, x), d.A.Get(y, x),
				d.TanBeta.Get(y, x), d.ContourLength.Get(y, x))
			if err != nil {
				return fmt.Errorf("topidx: writing output shapefile: %v", err)
			}
		}
	}
	shape.Close()
	return nil
}

// A Summary reduces a finished calculation to a few whole-grid
// numbers for logging and sanity checks.
type Summary struct {
	Cells              int     // in-basin cells
	TotalArea          float64 // summed contributing area [m²]
	MaxArea            float64 // largest contributing area [m²]
	MinIndex, MaxIndex float64 // topographic index range
}

// Summarize reduces the accumulator grids and the calculated index
// over the basin.
func (d *Diagnostics) Summarize(g *FineGrid) Summary {
	s := Summary{
		TotalArea: floats.Sum(d.A.Elements),
		MaxArea:   floats.Max(d.A.Elements),
		MinIndex:  math.Inf(1),
		MaxIndex:  math.Inf(-1),
	}
	for y := 0; y < g.Ny; y++ {
		for x := 0; x < g.Nx; x++ {
			if !g.InBasin(x, y) {
				continue
			}
			s.Cells++
			v := g.TopoIndex.Get(y, x)
			s.MinIndex = math.Min(s.MinIndex, v)
			s.MaxIndex = math.Max(s.MaxIndex, v)
		}
	}
	if s.Cells == 0 {
		s.MinIndex, s.MaxIndex = 0, 0
	}
	return s
}
