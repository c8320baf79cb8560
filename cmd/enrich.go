package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/county-enrich/internal/boundary"
	"github.com/sells-group/county-enrich/internal/census"
	"github.com/sells-group/county-enrich/internal/enrich"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich county boundaries with population and density",
	Long: `Loads the county boundary GeoJSON, fetches ACS 5-year total population for
every county from the Census Data API, joins the two on the STATEFP+COUNTYFP
FIPS code, derives approximate area (km2) and population density, and writes
the enriched collection. Any stage failure aborts the run before the output
file is touched.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts := enrichOptions{
			Input:  cfg.Input.Path,
			Output: cfg.Output.Path,
			Census: census.Config{
				BaseURL: cfg.Census.BaseURL,
				Year:    cfg.Census.Year,
				Key:     cfg.Census.Key,
				Timeout: time.Duration(cfg.Census.TimeoutSecs) * time.Second,
			},
		}
		if v, _ := cmd.Flags().GetString("input"); v != "" {
			opts.Input = v
		}
		if v, _ := cmd.Flags().GetString("output"); v != "" {
			opts.Output = v
		}
		if v, _ := cmd.Flags().GetInt("year"); v != 0 {
			opts.Census.Year = v
		}

		return runEnrich(ctx, opts)
	},
}

// enrichOptions carries everything a single pipeline run needs; nothing
// is read from process state past this point.
type enrichOptions struct {
	Input  string
	Output string
	Census census.Config
}

// runEnrich executes the pipeline stages in order: load boundaries,
// fetch populations, join and derive, write.
func runEnrich(ctx context.Context, opts enrichOptions) error {
	log := zap.L().With(zap.String("command", "enrich"))

	fc, err := boundary.Load(opts.Input)
	if err != nil {
		return eris.Wrap(err, "enrich: load boundaries")
	}
	log.Info("boundaries loaded",
		zap.String("path", opts.Input),
		zap.Int("features", len(fc.Features)),
	)

	table, err := census.NewClient(opts.Census).FetchCountyPopulations(ctx)
	if err != nil {
		return eris.Wrap(err, "enrich: fetch populations")
	}

	out := enrich.Enrich(fc, table)

	if err := boundary.Write(opts.Output, out); err != nil {
		return eris.Wrap(err, "enrich: write output")
	}

	log.Info("counties enriched",
		zap.Int("features", len(out.Features)),
		zap.String("output", opts.Output),
	)
	fmt.Printf("Processed %d counties\n", len(out.Features))
	fmt.Printf("Saved to %s\n", opts.Output)
	return nil
}

func init() {
	enrichCmd.Flags().String("input", "", "boundary GeoJSON path (default: from config)")
	enrichCmd.Flags().String("output", "", "enriched GeoJSON path (default: from config)")
	enrichCmd.Flags().Int("year", 0, "ACS 5-year reference year (default: from config)")
	rootCmd.AddCommand(enrichCmd)
}
