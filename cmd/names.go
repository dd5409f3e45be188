package cmd

import (
	"github.com/FranziskaReden/bacillus-project/internal/superaln"
	"github.com/spf13/cobra"
)

// namesCmd resolves genome accessions to genus:species display names
var namesCmd = &cobra.Command{
	Use:                        "names [accession] ... [accessionN]",
	Short:                      "Look up display names for genome accessions",
	Run:                        superaln.NamesCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Resolve genome accessions against a taxonomy table (tab separated, with
accession, genus and species columns) and print one genus:species display
name per accession. Accessions missing from the table are printed unchanged.

The display names are only meant for labelling downstream plots and tables;
no other command depends on them.`,
}

// set flags
func init() {
	rootCmd.AddCommand(namesCmd)

	namesCmd.Flags().StringP("taxonomy", "t", "", "taxonomy table <TSV>")
}
