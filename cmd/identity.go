package cmd

import (
	"github.com/FranziskaReden/bacillus-project/internal/superaln"
	"github.com/spf13/cobra"
)

// identityCmd computes the pairwise identity matrix over all genomes in the
// persisted super-alignment
var identityCmd = &cobra.Command{
	Use:                        "identity",
	Short:                      "Compute the pairwise genome identity matrix",
	Run:                        superaln.IdentityCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Compute the normalized identity between every pair of genomes in the
super-alignment, gene partition by gene partition. A gene for which either
genome holds no data is excluded from that pair's score entirely.

This is the expensive part of the pipeline (quadratic in the number of
genomes); raise --workers to spread pairs over a worker pool. Writes
identity_matrix.tsv into the output folder. Pairs at or above the identity
threshold are reported as likely duplicates.`,
}

// set flags
func init() {
	rootCmd.AddCommand(identityCmd)

	identityCmd.Flags().StringP("out", "o", "", "folder holding superalignment.fna and partitions.txt")
	identityCmd.Flags().IntP("workers", "w", 1, "number of workers computing pairwise identities")
	identityCmd.Flags().Bool("quiet", false, "suppress the progress bar")
}
