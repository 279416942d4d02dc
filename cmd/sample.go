package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/materiality/internal/sample"
)

var sampleOpts sample.Config //nolint:gochecknoglobals // flag values

var sampleCmd = &cobra.Command{ //nolint:gochecknoglobals // cobra command
	Use:   "sample",
	Short: "Generate synthetic analyses",
	Long:  `Generates analyses with random tiers and scores. With --submit they are posted to a running service, otherwise printed as JSON.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		analyses := sample.NewGenerator(sampleOpts).Analyses(max(sampleOpts.Count, 1))
		if sampleOpts.BaseURL == "" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if len(analyses) == 1 {
				return enc.Encode(analyses[0])
			}
			return enc.Encode(analyses)
		}

		rep, err := sample.Submit(cmd.Context(), sampleOpts, analyses)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(os.Stdout, "Submitted %d analyses (%d accepted, %d duplicate, %d failed)\n",
			rep.Submitted, rep.Accepted, rep.Duplicate, rep.Failed)
		return err
	},
}

func init() {
	f := sampleCmd.Flags()
	f.IntVarP(&sampleOpts.Topics, "topics", "n", sample.DefaultTopics, "topics per analysis")
	f.IntVar(&sampleOpts.Count, "count", sample.DefaultCount, "number of analyses")
	f.StringVar(&sampleOpts.BaseURL, "submit", "", "service base URL to post analyses to")
	f.IntVar(&sampleOpts.Workers, "workers", 0, "concurrent submitters (defaults to NumCPU)")
	f.DurationVar(&sampleOpts.Timeout, "timeout", sample.DefaultTimeout, "per request timeout")
	f.Uint64Var(&sampleOpts.Seed, "seed", 0, "random seed (0 for time based)")
	rootCmd.AddCommand(sampleCmd)
}
