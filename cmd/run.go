package cmd

import (
	"github.com/FranziskaReden/bacillus-project/internal/superaln"
	"github.com/spf13/cobra"
)

// runCmd executes concat, identity and reduce back to back
var runCmd = &cobra.Command{
	Use:                        "run",
	Short:                      "Run the whole pipeline: concat, identity, reduce",
	Run:                        superaln.RunCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Run all three pipeline stages in order. Each stage reads the previous stage's
persisted artifacts from the output folder rather than passing state in
memory, so a finished stage can also be rerun on its own later.`,
}

// set flags
func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("folder", "f", "", "input folder with per-gene alignments <FASTA>")
	runCmd.Flags().StringP("out", "o", "", "output folder for all pipeline artifacts")
	runCmd.Flags().StringP("groups", "g", "", "curated merge groups <JSON>")
	runCmd.Flags().IntP("workers", "w", 1, "number of workers computing pairwise identities")
	runCmd.Flags().Float64P("threshold", "t", 0.99, "identity at which two genomes count as duplicates")
	runCmd.Flags().Bool("quiet", false, "suppress the progress bar")
}
