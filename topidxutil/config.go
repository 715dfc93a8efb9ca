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

// Package topidxutil holds the configuration and command-line
// interface for the TopIdx topographic wetness index calculator.
package topidxutil

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the configuration for one calculation run.
type Config struct {
	// DEMFile is the path to the fine-resolution elevation grid in
	// ESRI ASCII raster format. Cells holding the raster's NODATA
	// value are treated as outside the basin.
	// Can include environment variables.
	DEMFile string

	// VerticalResolution is the vertical precision of the elevation
	// data [m]. If zero, it defaults to 1.
	VerticalResolution float64

	// OutputFile is the path of the shapefile the calculated index
	// and the accumulator grids are written to.
	// Can include environment variables.
	OutputFile string

	// TopoIndexMap is an optional path for an ESRI ASCII raster of
	// the calculated index. If empty, no raster is written.
	// Can include environment variables.
	TopoIndexMap string

	// LogTanBetaMap is an optional path for an ESRI ASCII raster of
	// ln(1/tanβ), for diagnosing the drainage-gradient accumulation.
	// If empty, no raster is written. Can include environment
	// variables.
	LogTanBetaMap string
}

// ReadConfig reads a TOML configuration file, expands environment
// variables in the paths it holds, and applies defaults.
func ReadConfig(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("the configuration file you specified, %s, does not appear to exist. Please check the file name and location and try again: %v", filename, err)
	}
	defer f.Close()
	c := new(Config)
	if _, err := toml.DecodeReader(f, c); err != nil {
		return nil, fmt.Errorf("there has been an error parsing the configuration file: %v", err)
	}

	c.DEMFile = os.ExpandEnv(c.DEMFile)
	c.OutputFile = os.ExpandEnv(c.OutputFile)
	c.TopoIndexMap = os.ExpandEnv(c.TopoIndexMap)
	c.LogTanBetaMap = os.ExpandEnv(c.LogTanBetaMap)

	if c.DEMFile == "" {
		return nil, fmt.Errorf("you need to specify an elevation grid in the configuration file (for example: DEMFile = \"dem.asc\")")
	}
	if c.VerticalResolution == 0 {
		c.VerticalResolution = 1.
	}
	if c.VerticalResolution < 0 {
		return nil, fmt.Errorf("the configured VerticalResolution (%g) must be positive", c.VerticalResolution)
	}
	if c.OutputFile == "" {
		c.OutputFile = "topoindex.shp"
	}
	return c, nil
}
