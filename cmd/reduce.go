package cmd

import (
	"github.com/FranziskaReden/bacillus-project/internal/superaln"
	"github.com/spf13/cobra"
)

// reduceCmd removes near-duplicate genomes from the super-alignment and
// re-slices the result back into per-gene alignments
var reduceCmd = &cobra.Command{
	Use:                        "reduce",
	Short:                      "Remove near-duplicate genomes and re-slice per-gene alignments",
	Run:                        superaln.ReduceCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Remove near-duplicate genomes from the super-alignment. Two channels feed the
removal step: curated merge groups (genomes known to be the same sample under
different assembly labels) and pairs whose measured identity reaches the
threshold. For a threshold pair the genome with fewer gap characters, i.e.
more data, survives.

Writes superalignment_reduced.fna and one re-sliced alignment per gene into
the output folder. Genomes without any data for a gene are left out of that
gene's file.`,
}

// set flags
func init() {
	rootCmd.AddCommand(reduceCmd)

	reduceCmd.Flags().StringP("out", "o", "", "folder holding the super-alignment artifacts")
	reduceCmd.Flags().StringP("groups", "g", "", "curated merge groups <JSON>")
	reduceCmd.Flags().Float64P("threshold", "t", 0.99, "identity at which two genomes count as duplicates")
}
