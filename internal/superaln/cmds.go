package superaln

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/FranziskaReden/bacillus-project/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Persisted artifact names, shared by every stage
const (
	SuperAlignmentFile = "superalignment.fna"
	PartitionsFile     = "partitions.txt"
	MatrixFile         = "identity_matrix.tsv"
	ReducedFile        = "superalignment_reduced.fna"
)

// ConcatCmd runs the concat command: build and persist the super-alignment
func ConcatCmd(cmd *cobra.Command, args []string) {
	c := config.New()
	folder := mustString(cmd, "folder")
	out := mustString(cmd, "out")

	if err := BuildSuperAlignment(folder, out, c); err != nil {
		log.Fatalf("%v", err)
	}
}

// IdentityCmd runs the identity command: build and persist the identity matrix
func IdentityCmd(cmd *cobra.Command, args []string) {
	c := config.New()
	overrideFlags(cmd, c)
	out := mustString(cmd, "out")

	if err := BuildIdentityMatrix(out, c); err != nil {
		log.Fatalf("%v", err)
	}
}

// ReduceCmd runs the reduce command: remove near-duplicates and re-slice
func ReduceCmd(cmd *cobra.Command, args []string) {
	c := config.New()
	overrideFlags(cmd, c)
	out := mustString(cmd, "out")

	if err := RemoveCloseGenomes(out, c); err != nil {
		log.Fatalf("%v", err)
	}
}

// RunCmd runs all three stages back to back, each re-reading the previous
// stage's persisted artifacts
func RunCmd(cmd *cobra.Command, args []string) {
	c := config.New()
	overrideFlags(cmd, c)
	folder := mustString(cmd, "folder")
	out := mustString(cmd, "out")

	if err := BuildSuperAlignment(folder, out, c); err != nil {
		log.Fatalf("%v", err)
	}
	if err := BuildIdentityMatrix(out, c); err != nil {
		log.Fatalf("%v", err)
	}
	if err := RemoveCloseGenomes(out, c); err != nil {
		log.Fatalf("%v", err)
	}
}

// NamesCmd resolves accessions against the taxonomy table and prints one
// display name per line
func NamesCmd(cmd *cobra.Command, args []string) {
	table := mustString(cmd, "taxonomy")
	if table == "" {
		log.Fatalf("no taxonomy table passed [-t]")
	}

	taxonomy, err := ReadTaxonomy(table)
	if err != nil {
		log.Fatalf("%v", err)
	}
	for _, accession := range args {
		fmt.Println(taxonomy.DisplayName(accession))
	}
}

// BuildSuperAlignment reads every per-gene alignment in the folder, builds
// the super-alignment and persists it with its partition table.
func BuildSuperAlignment(folder, out string, c *config.Config) error {
	files, err := collectAlignments(folder, c.Input.AlignmentExt)
	if err != nil {
		return err
	}
	log.Infof("concatenating %d gene alignments...", len(files))

	sa, partitions, err := Assemble(files, c.Input.GeneSuffix)
	if err != nil {
		return err
	}
	log.Infof("super-alignment has %d genomes over %d columns", len(sa.Taxa), sa.Length)

	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}
	if err := writeSuperAlignment(filepath.Join(out, SuperAlignmentFile), sa); err != nil {
		return err
	}
	return atomicWrite(filepath.Join(out, PartitionsFile), func(w io.Writer) error {
		return writePartitions(w, partitions)
	})
}

// BuildIdentityMatrix reloads the persisted super-alignment and partition
// table, computes all pairwise identities and persists the matrix.
func BuildIdentityMatrix(out string, c *config.Config) error {
	sa, err := readSuperAlignment(filepath.Join(out, SuperAlignmentFile))
	if err != nil {
		return err
	}
	partitions, err := ReadPartitions(filepath.Join(out, PartitionsFile))
	if err != nil {
		return err
	}

	log.Infof("calculating pairwise identities between %d genomes...", len(sa.Taxa))
	m, err := BuildMatrix(sa, partitions, BuildOptions{
		Workers:       c.Workers,
		WarnThreshold: c.Reduce.Threshold,
		Progress:      !c.Quiet,
	})
	if err != nil {
		return err
	}

	return m.WriteTSV(filepath.Join(out, MatrixFile))
}

// RemoveCloseGenomes reloads the matrix and super-alignment, removes
// near-duplicate genomes and re-slices the reduced alignment into one file
// per gene.
func RemoveCloseGenomes(out string, c *config.Config) error {
	m, err := ReadMatrixTSV(filepath.Join(out, MatrixFile))
	if err != nil {
		return err
	}
	sa, err := readSuperAlignment(filepath.Join(out, SuperAlignmentFile))
	if err != nil {
		return err
	}
	groups, err := ReadMergeGroups(c.Reduce.MergeGroups)
	if err != nil {
		return err
	}

	res, err := Resolve(m, sa, groups, c.Reduce)
	if err != nil {
		return err
	}
	reduced, err := res.Apply(sa)
	if err != nil {
		return err
	}
	log.Infof("removed %d of %d genomes", len(sa.Taxa)-len(reduced.Taxa), len(sa.Taxa))

	if err := writeSuperAlignment(filepath.Join(out, ReducedFile), reduced); err != nil {
		return err
	}

	// partitions come back from their textual form, not from memory
	partitions, err := ReadPartitions(filepath.Join(out, PartitionsFile))
	if err != nil {
		return err
	}
	return writeGeneSlices(out, reduced, partitions)
}

// collectAlignments returns the sorted per-gene alignment paths in a folder
func collectAlignments(folder, ext string) ([]string, error) {
	if folder == "" {
		return nil, fmt.Errorf("no alignment folder passed [-f]")
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read alignment folder: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ext) {
			files = append(files, filepath.Join(folder, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s alignments found in %s", ext, folder)
	}
	sort.Strings(files)

	return files, nil
}

// mustString reads a string flag off a cobra command
func mustString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		log.Fatalf("failed to parse %s flag: %v", name, err)
	}
	return value
}

// overrideFlags layers explicitly set command line flags over the settings
// file values in the config
func overrideFlags(cmd *cobra.Command, c *config.Config) {
	if cmd.Flags().Changed("workers") {
		c.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("threshold") {
		c.Reduce.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	if cmd.Flags().Changed("groups") {
		c.Reduce.MergeGroups, _ = cmd.Flags().GetString("groups")
	}
	if cmd.Flags().Changed("quiet") {
		c.Quiet, _ = cmd.Flags().GetBool("quiet")
	}
}
