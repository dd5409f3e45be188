package superaln

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// SuperAlignment is the concatenation of every gene alignment: one sequence
// per known genome, gap-filled over the genes a genome is missing from, all
// sequences of identical length.
type SuperAlignment struct {
	// Taxa is the fixed genome ordering used by every downstream stage
	Taxa []string

	// Seqs maps each taxon to its concatenated sequence
	Seqs map[string]string

	// Length is the total alignment width, the sum of all gene widths
	Length int
}

// Assemble concatenates the given gene alignment files into a
// SuperAlignment and the ordered partition list. Files are processed in the
// order given; the caller sorts them so that partition coordinates are
// deterministic. geneSuffix is stripped from a file's base name to get the
// gene short name recorded in its partition.
func Assemble(files []string, geneSuffix string) (*SuperAlignment, []Partition, error) {
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no alignment files given: %w", ErrInputFormat)
	}

	// first pass: the union of all genome labels across every file
	registry := map[string]bool{}
	for _, file := range files {
		aln, err := readAlignment(file)
		if err != nil {
			return nil, nil, err
		}
		for _, name := range aln.Taxa {
			registry[name] = true
		}
	}

	taxa := make([]string, 0, len(registry))
	for name := range registry {
		taxa = append(taxa, name)
	}
	sort.Strings(taxa)

	// second pass: append each gene's columns to every genome, gap-filling
	// the genomes a gene has no record for
	grown := make(map[string]*strings.Builder, len(taxa))
	for _, name := range taxa {
		grown[name] = &strings.Builder{}
	}

	var partitions []Partition
	seen := map[string]bool{}
	currentPosition := 0
	for _, file := range files {
		aln, err := readAlignment(file)
		if err != nil {
			return nil, nil, err
		}

		gene := geneShortName(file, geneSuffix)
		if seen[gene] {
			return nil, nil, fmt.Errorf("duplicate gene name %s from %s: %w", gene, file, ErrInputFormat)
		}
		seen[gene] = true

		partitions = append(partitions, Partition{
			Gene:  gene,
			Start: currentPosition,
			End:   currentPosition + aln.Width,
		})

		gapFill := strings.Repeat(string(GapChar), aln.Width)
		for _, name := range taxa {
			if seq, ok := aln.Seqs[name]; ok {
				grown[name].WriteString(seq)
			} else {
				grown[name].WriteString(gapFill)
			}
		}

		currentPosition += aln.Width
	}

	sa := &SuperAlignment{
		Taxa:   taxa,
		Seqs:   make(map[string]string, len(taxa)),
		Length: currentPosition,
	}
	for _, name := range taxa {
		sa.Seqs[name] = grown[name].String()
	}

	return sa, partitions, nil
}

// geneShortName strips the configured suffix from an alignment file name.
// A file the suffix does not apply to keeps its extension-less base name.
func geneShortName(file, geneSuffix string) string {
	base := filepath.Base(file)
	if geneSuffix != "" && strings.HasSuffix(base, geneSuffix) {
		return strings.TrimSuffix(base, geneSuffix)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
