package cli

import (
	"context"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ktmeaton/rebar-sub000/internal/dataset"
	"github.com/ktmeaton/rebar-sub000/internal/linelist"
	"github.com/ktmeaton/rebar-sub000/internal/rbrconfig"
	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
	"github.com/ktmeaton/rebar-sub000/internal/recombination"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
	"github.com/ktmeaton/rebar-sub000/internal/version"
)

func newRunCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <dataset-dir>",
		Short: "search an alignment or population list for recombination against a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: mkRunE(c, func(c *Command, args []string) error {
			return runSearch(c, args[0])
		}),
	}

	cmd.Flags().String(string(flagAlignment), "", "FASTA alignment of query sequences")
	cmd.Flags().StringArray(string(flagPopulation), nil, "population labels already present in the dataset, in place of --alignment")
	cmd.Flags().String(string(flagOutput), "linelist.tsv", "linelist output path")
	cmd.Flags().String(string(flagConfig), "", "optional YAML recombination-parameter file")
	cmd.Flags().Int(string(flagMinParents), 0, "override min_parents (0 keeps the config/default value)")
	cmd.Flags().Int(string(flagMaxParents), 0, "override max_parents (0 keeps the config/default value)")
	cmd.Flags().Int(string(flagMinSubs), 0, "override min_subs (0 keeps the config/default value)")
	cmd.Flags().Int(string(flagMinLength), 0, "override min_length (0 keeps the config/default value)")
	cmd.Flags().Bool(string(flagNaive), false, "disable edge-case overrides and descendant exclusion")
	return cmd
}

// runSearch loads datasetDir, builds the query set from either
// --alignment or --populations, and runs recombination.Run over the
// query stream using a fixed worker pool sized by --threads, per
// spec.md §5's "parallel worker threads over the query stream; one
// query is assigned to one worker for its entire lifetime."
func runSearch(c *Command, datasetDir string) error {
	flags := c.Flags()

	params := recombination.DefaultParams()
	if configPath := flagConfig.String(flags); configPath != "" {
		cfg, err := rbrconfig.Load(configPath)
		if err != nil {
			return err
		}
		params = cfg.Apply(params)
	}
	if v := flagMinParents.Int(flags); v != 0 {
		params.MinParents = v
	}
	if v := flagMaxParents.Int(flags); v != 0 {
		params.MaxParents = v
	}
	if v := flagMinSubs.Int(flags); v != 0 {
		params.MinSubs = v
	}
	if v := flagMinLength.Int(flags); v != 0 {
		params.MinLength = v
	}
	if flagNaive.Bool(flags) {
		params.Naive = true
	}

	d, err := dataset.Load(datasetDir, sequence.DNA, params.Mask)
	if err != nil {
		return err
	}

	var queries []*sequence.Record
	if alignment := flagAlignment.String(flags); alignment != "" {
		queries, err = d.LoadQueries(alignment, params.Mask)
	} else {
		queries, err = d.LoadQueryPopulations(flagPopulation.StringArray(flags))
	}
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return rbrerr.New(rbrerr.BadFasta, "no query sequences given: pass --alignment or --populations")
	}

	out, err := os.Create(flagOutput.String(flags))
	if err != nil {
		return rbrerr.Wrap(rbrerr.IO, err, "creating linelist output")
	}
	defer out.Close()
	writer, err := linelist.NewWriter(out)
	if err != nil {
		return err
	}

	threads := flagThreads.Int(flags)
	if threads < 1 {
		threads = 1
	}

	results := runWorkerPool(context.Background(), d, queries, params, threads, c)

	toolVersion := version.ToolVersion()
	for _, result := range results {
		row := linelist.FromResult(result, queryByID(queries, result.SequenceID), string(d.Attributes.Name), d.Attributes.Tag.String(), toolVersion)
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// runWorkerPool fans queries out across threads goroutines and returns
// every non-nil recombination.Result, in no particular order (spec.md
// §5: "none across queries").
func runWorkerPool(ctx context.Context, d *dataset.Dataset, queries []*sequence.Record, params recombination.Params, threads int, c *Command) []*recombination.Result {
	jobs := make(chan *sequence.Record)
	var mu sync.Mutex
	var results []*recombination.Result

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for query := range jobs {
				result, err := recombination.Run(ctx, d, query, params)
				if err != nil && result == nil {
					c.logger.Warn("recombination search failed", "query", query.ID, "err", err)
					continue
				}
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}

	for _, q := range queries {
		jobs <- q
	}
	close(jobs)
	wg.Wait()

	return results
}

func queryByID(queries []*sequence.Record, id string) *sequence.Record {
	for _, q := range queries {
		if q.ID == id {
			return q
		}
	}
	return nil
}
