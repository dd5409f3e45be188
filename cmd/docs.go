package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// docsCmd generates Markdown documentation for every command
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate Markdown docs for the superaln commands",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := cmd.Flags().GetString("dir")
		if err != nil {
			log.Fatalf("failed to parse dir flag: %v", err)
		}
		if err := doc.GenMarkdownTree(rootCmd, dir); err != nil {
			log.Fatalf("failed to generate docs: %v", err)
		}
	},
}

// set flags
func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().StringP("dir", "d", "./docs", "directory to write the Markdown files to")
}
