// Package superaln builds a concatenated super-alignment from per-gene
// alignments, computes pairwise genome identities over it and removes
// near-duplicate genomes before re-slicing the result back into per-gene
// alignment files.
package superaln

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// GapChar fills alignment columns for which a genome holds no data
const GapChar = '-'

func init() {
	// aligned sequences carry gaps and ambiguity codes
	seq.ValidateSeq = false
}

// GeneAlignment is one gene's multiple sequence alignment: a taxon to
// sequence mapping in which every sequence has the same width. The taxa
// present may be a subset of the genomes known to the whole run.
type GeneAlignment struct {
	// Taxa are the genome labels, sorted for deterministic iteration
	Taxa []string

	// Seqs maps each taxon to its aligned, uppercased sequence
	Seqs map[string]string

	// Width is the shared sequence length
	Width int
}

// readAlignment reads one FASTA alignment file into a GeneAlignment.
// It fails on an empty or unparseable file and when sequence widths differ,
// which the assembler's partition bookkeeping relies on.
func readAlignment(path string) (*GeneAlignment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open alignment: %w", err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("alignment %s is empty: %w", path, ErrInputFormat)
	}

	reader, err := fastx.NewReader(nil, path, "")
	if err != nil {
		return nil, fmt.Errorf("failed to open alignment %s: %v: %w", path, err, ErrInputFormat)
	}
	defer reader.Close()

	aln := &GeneAlignment{Seqs: map[string]string{}}
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to parse alignment %s: %v: %w", path, err, ErrInputFormat)
		}

		name := string(record.ID)
		if _, dup := aln.Seqs[name]; dup {
			return nil, fmt.Errorf("failed to parse alignment %s: duplicate record %s: %w", path, name, ErrInputFormat)
		}
		aln.Taxa = append(aln.Taxa, name)
		aln.Seqs[name] = strings.ToUpper(string(record.Seq.Seq))
	}

	if len(aln.Taxa) == 0 {
		return nil, fmt.Errorf("failed to parse alignment %s: no sequence records: %w", path, ErrInputFormat)
	}
	sort.Strings(aln.Taxa)

	aln.Width = len(aln.Seqs[aln.Taxa[0]])
	for _, name := range aln.Taxa {
		if l := len(aln.Seqs[name]); l != aln.Width {
			return nil, fmt.Errorf(
				"alignment %s: record %s is %d wide, first record is %d: %w",
				path, name, l, aln.Width, ErrLengthMismatch,
			)
		}
	}

	return aln, nil
}

// allGaps reports whether a sequence slice carries no data at all
func allGaps(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != GapChar {
			return false
		}
	}
	return true
}

// countGaps returns the number of gap characters in a sequence
func countGaps(s string) int {
	return strings.Count(s, string(GapChar))
}
