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

package topidxutil

import (
	"fmt"
	"os"
	"time"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hydromodel/topidx"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})

	Root.PersistentFlags().StringVar(&configFile, "config", "./topidx.toml",
		"configuration file location")
	Root.AddCommand(runCmd, versionCmd)
}

var configFile string

// Root is the main command.
var Root = &cobra.Command{
	Use:   "topidx",
	Short: "A topographic wetness index calculator.",
	Long: `TopIdx calculates the topographic wetness index ln(a/tanβ)
(Beven and Kirkby 1979; Wolock and McCabe 1995) of a fine-resolution
elevation grid, for redistributing soil moisture from a coarse
hydrologic grid to the fine terrain grid.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("TopIdx v%s\n", topidx.Version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Calculate the topographic wetness index.",
	Long: `run reads the elevation grid specified in the configuration
file, sweeps it in order of descending elevation to distribute each
cell's contributing area among its downslope neighbors, and writes the
resulting index to a shapefile and optional diagnostic rasters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(configFile)
	},
}

// Run performs a calculation as configured in the file at configFile.
func Run(configFile string) error {
	cfg, err := ReadConfig(configFile)
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.DEMFile)
	if err != nil {
		return fmt.Errorf("opening the elevation grid: %v", err)
	}
	g, err := topidx.ReadASCIIGrid(f, cfg.VerticalResolution)
	f.Close()
	if err != nil {
		return err
	}
	b := g.Bounds()
	logger.WithFields(logrus.Fields{
		"nx":    g.Nx,
		"ny":    g.Ny,
		"cells": g.NumCells(),
		"xmin":  b.Min.X,
		"ymin":  b.Min.Y,
		"xmax":  b.Max.X,
		"ymax":  b.Max.Y,
	}).Info("loaded elevation grid")

	diag, err := g.CalcTopoIndex(g.ElevationOrder())
	if err != nil {
		return err
	}
	s := diag.Summarize(g)
	logger.WithFields(logrus.Fields{
		"cells":     s.Cells,
		"totalArea": s.TotalArea,
		"maxArea":   s.MaxArea,
		"minIndex":  s.MinIndex,
		"maxIndex":  s.MaxIndex,
	}).Info("calculated topographic index")

	if err := diag.WriteShapefile(cfg.OutputFile, g); err != nil {
		return err
	}
	logger.WithField("file", cfg.OutputFile).Info("wrote output shapefile")

	if cfg.TopoIndexMap != "" {
		if err := writeASCII(cfg.TopoIndexMap, g, g.TopoIndex); err != nil {
			return err
		}
		logger.WithField("file", cfg.TopoIndexMap).Info("wrote topographic index raster")
	}
	if cfg.LogTanBetaMap != "" {
		if err := writeASCII(cfg.LogTanBetaMap, g, diag.LogInvTanBeta(g)); err != nil {
			return err
		}
		logger.WithField("file", cfg.LogTanBetaMap).Info("wrote ln(1/tanβ) raster")
	}
	return nil
}

func writeASCII(filename string, g *topidx.FineGrid, field *sparse.DenseArray) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating raster file: %v", err)
	}
	defer f.Close()
	if err := g.WriteASCIIGrid(f, field); err != nil {
		return fmt.Errorf("writing raster file %s: %v", filename, err)
	}
	return nil
}
