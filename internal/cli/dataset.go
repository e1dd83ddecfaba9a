package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ktmeaton/rebar-sub000/internal/dataset"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
	"github.com/ktmeaton/rebar-sub000/internal/version"
)

func newDatasetCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "inspect and materialize recombination-search datasets",
	}
	cmd.AddCommand(newDatasetListCmd(c))
	cmd.AddCommand(newDatasetDownloadCmd(c))
	return cmd
}

func newDatasetListCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "print datasets compatible with this build, from a local datasets directory",
		RunE: mkRunE(c, func(c *Command, args []string) error {
			datasetsDir := flagDatasets.String(c.Flags())
			catalogue, err := dataset.ListCatalogue(datasetsDir, version.ToolVersion())
			if err != nil {
				return err
			}
			w := c.OutOrStdout()
			for _, entry := range catalogue {
				status := "compatible"
				if !entry.Compatible {
					status = "incompatible: " + entry.Reason
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", entry.Attributes.Name, entry.Attributes.Tag, entry.Dir, status)
			}
			c.logger.Info("listed datasets", "dir", datasetsDir, "count", len(catalogue))
			return nil
		}),
	}
	cmd.Flags().String(string(flagDatasets), ".", "directory of local dataset subdirectories")
	return cmd
}

func newDatasetDownloadCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <source-dir>",
		Short: "materialize a dataset into an output directory",
		Args:  cobra.ExactArgs(1),
		RunE: mkRunE(c, func(c *Command, args []string) error {
			sourceDir := args[0]
			outputDir := flagOutput.String(c.Flags())

			d, err := dataset.Load(sourceDir, sequence.DNA, sequence.Mask{})
			if err != nil {
				return err
			}
			if err := d.Save(outputDir); err != nil {
				return err
			}
			c.logger.Info("materialized dataset", "source", sourceDir, "output", outputDir)
			return nil
		}),
	}
	cmd.Flags().String(string(flagOutput), "", "directory to materialize the dataset into")
	cmd.MarkFlagRequired(string(flagOutput))
	return cmd
}
