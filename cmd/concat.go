package cmd

import (
	"github.com/FranziskaReden/bacillus-project/internal/superaln"
	"github.com/spf13/cobra"
)

// concatCmd builds the concatenated super-alignment and its partition table
// from a folder of per-gene alignments
var concatCmd = &cobra.Command{
	Use:                        "concat",
	Short:                      "Concatenate per-gene alignments into a super-alignment",
	Run:                        superaln.ConcatCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Concatenate all per-gene multiple sequence alignments in a folder into one
super-alignment. Genomes missing from a gene alignment are filled with gap
characters over that gene's columns.

Writes superalignment.fna and partitions.txt into the output folder. The
partition table records, per gene, which columns of the super-alignment it
occupies and is reused by the identity and reduce commands.`,
}

// set flags
func init() {
	rootCmd.AddCommand(concatCmd)

	concatCmd.Flags().StringP("folder", "f", "", "input folder with per-gene alignments <FASTA>")
	concatCmd.Flags().StringP("out", "o", "", "output folder for the super-alignment artifacts")
}
