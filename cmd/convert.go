package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/county-enrich/internal/boundary"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a cartographic boundary shapefile to GeoJSON",
	Long: `Reads a Census cartographic boundary shapefile (cb_*_us_county_*.shp) and
writes the county boundary GeoJSON the enrich command consumes, carrying the
STATEFP, COUNTYFP and NAME attributes.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		shpPath, _ := cmd.Flags().GetString("shapefile")
		if shpPath == "" {
			return eris.New("convert: --shapefile is required")
		}
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = cfg.Input.Path
		}

		fc, err := boundary.FromShapefile(shpPath)
		if err != nil {
			return eris.Wrap(err, "convert")
		}

		if err := boundary.Write(output, fc); err != nil {
			return eris.Wrap(err, "convert: write output")
		}

		zap.L().Info("shapefile converted",
			zap.Int("features", len(fc.Features)),
			zap.String("output", output),
		)
		fmt.Printf("Converted %d counties\n", len(fc.Features))
		fmt.Printf("Saved to %s\n", output)
		return nil
	},
}

func init() {
	convertCmd.Flags().String("shapefile", "", "path to the county boundary .shp file")
	convertCmd.Flags().String("output", "", "GeoJSON output path (default: input.path from config)")
	rootCmd.AddCommand(convertCmd)
}
